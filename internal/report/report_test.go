package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/ypbank-tools/internal/comparer"
	"github.com/ginjaninja78/ypbank-tools/internal/types"
)

func comparison() *comparer.Result {
	first := []types.Transaction{
		{TxID: 1000000000000000001, TxType: types.Deposit, ToUserID: 9223372036854775807, Amount: -9223372036854775808, Timestamp: 1633036860000, Status: types.Success, Description: "Record, \"one\"", Format: types.YpBankBin},
		{TxID: 2, TxType: types.Withdrawal, FromUserID: 7, Amount: 30, Timestamp: 1700000010, Status: types.Pending, Description: "", Format: types.YpBankBin},
	}
	second := []types.Transaction{
		{TxID: 1000000000000000001, TxType: types.Deposit, ToUserID: 9223372036854775807, Amount: -9223372036854775808, Timestamp: 1633036860000, Status: types.Success, Description: "Record, \"one\"", Format: types.YpBankCsv},
	}
	return comparer.Records(first, second)
}

func TestWriteComparisonRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	result := comparison()

	require.NoError(t, WriteComparison(path, result, DefaultSheetNames()))

	first, err := ReadRecords(path, "First")
	require.NoError(t, err)
	assert.Equal(t, result.First, first)

	second, err := ReadRecords(path, "Second")
	require.NoError(t, err)
	assert.Equal(t, result.Second, second)
}

func TestWriteComparisonSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, WriteComparison(path, comparison(), DefaultSheetNames()))

	rows, err := ReadSheet(path, SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Metric", "Value"},
		{"First records", "2"},
		{"Second records", "1"},
		{"Equal", "false"},
		{"Mismatches", "2"},
	}, rows)

	rows, err = ReadSheet(path, MismatchesSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"INDEX", "IN_FIRST", "IN_SECOND", "FIELDS"},
		{"0", "true", "true", "FORMAT"},
		{"1", "true", "false"},
	}, rows)
}

func TestWriteComparisonRecordHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, WriteComparison(path, comparison(), SheetNames{First: "Left", Second: "Right"}))

	rows, err := ReadSheet(path, "Left")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, append(append([]string{}, types.Columns...), FormatColumn), rows[0])

	_, err = ReadSheet(path, "First")
	require.Error(t, err)
}

func TestWriteComparisonSheetNameClash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	err := WriteComparison(path, comparison(), SheetNames{First: "Summary", Second: "Second"})
	require.Error(t, err)

	err = WriteComparison(path, comparison(), SheetNames{First: "Same", Second: "Same"})
	require.Error(t, err)

	assert.NoFileExists(t, path)
}

func TestReadSheetMissingFile(t *testing.T) {
	_, err := ReadSheet(filepath.Join(t.TempDir(), "missing.xlsx"), SummarySheet)
	require.Error(t, err)
}
