package dispatch

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/ypbank-tools/internal/csvparser"
	"github.com/ginjaninja78/ypbank-tools/internal/types"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func sample() []types.Transaction {
	return []types.Transaction{
		{TxID: 1, TxType: types.Deposit, ToUserID: 100, Amount: 1000, Timestamp: 1700000000, Status: types.Success, Description: "Initial deposit"},
		{TxID: 2, TxType: types.Transfer, FromUserID: 100, ToUserID: 200, Amount: -250, Timestamp: 1700000060, Status: types.Pending, Description: "Friend payment"},
	}
}

func tagged(txs []types.Transaction, format types.Format) []types.Transaction {
	out := make([]types.Transaction, len(txs))
	for i, tx := range txs {
		tx.Format = format
		out[i] = tx
	}
	return out
}

func TestWriteThenRead(t *testing.T) {
	for _, format := range types.Formats {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer

			n, err := Write(&buf, sample(), format)
			require.NoError(t, err)
			assert.Equal(t, buf.Len(), n)

			decoded, err := Read(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, tagged(sample(), format), decoded)
		})
	}
}

func TestWriteBinarySize(t *testing.T) {
	var buf bytes.Buffer

	n, err := Write(&buf, sample(), types.YpBankBin)

	require.NoError(t, err)
	assert.Equal(t, 137, n)
	assert.Equal(t, "YPBN", buf.String()[:4])
}

func TestWriteFlushFailure(t *testing.T) {
	_, err := Write(failingWriter{}, sample(), types.YpBankCsv)

	require.Error(t, err)
	assert.True(t, types.IsEncode(err))
	assert.Contains(t, err.Error(), "disk full")
}

func TestWriteInvalidRecord(t *testing.T) {
	var buf bytes.Buffer
	txs := []types.Transaction{{TxID: 5, Status: types.Status(7)}}

	_, err := Write(&buf, txs, types.YpBankText)

	require.Error(t, err)
	assert.True(t, types.IsEncode(err))
	assert.Zero(t, buf.Len())
}

func TestUnknownFormat(t *testing.T) {
	_, err := Read(strings.NewReader(""), types.Format(42))
	require.Error(t, err)
	assert.True(t, types.IsDecode(err))

	_, err = Write(&bytes.Buffer{}, sample(), types.Format(42))
	require.Error(t, err)
	assert.True(t, types.IsEncode(err))
}

func TestReadCSVHeaderStrategies(t *testing.T) {
	doc := csvparser.HeaderLine + "   \n" + `1,DEPOSIT,0,1,2,3,SUCCESS,"a"` + "\n"

	txs, err := Read(strings.NewReader(doc), types.YpBankCsv, WithStrictCSVHeader())
	require.NoError(t, err)
	assert.Len(t, txs, 1)

	_, err = Read(strings.NewReader(""), types.YpBankCsv, WithStrictCSVHeader())
	require.Error(t, err)
	assert.Equal(t, "CSV is empty", err.Error())

	_, err = Read(strings.NewReader(""), types.YpBankCsv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid CSV header")
}

func TestReadEmptyInput(t *testing.T) {
	for _, format := range []types.Format{types.YpBankBin, types.YpBankText} {
		txs, err := Read(strings.NewReader(""), format)
		require.NoError(t, err)
		assert.Empty(t, txs)
	}
}

func TestReadIsFormatSensitive(t *testing.T) {
	var buf bytes.Buffer
	_, err := Write(&buf, sample(), types.YpBankText)
	require.NoError(t, err)

	_, err = Read(bytes.NewReader(buf.Bytes()), types.YpBankBin)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid MAGIC")
}

func TestReadRejectsInvalidUTF8BeforeBinaryOutput(t *testing.T) {
	docs := map[types.Format]string{
		types.YpBankCsv:  csvparser.HeaderLine + "\n1,DEPOSIT,0,1,2,3,SUCCESS,\"bad\xff\"\n",
		types.YpBankText: "TX_ID: 1\nTX_TYPE: DEPOSIT\nFROM_USER_ID: 0\nTO_USER_ID: 1\nAMOUNT: 2\nTIMESTAMP: 3\nSTATUS: SUCCESS\nDESCRIPTION: \"bad\xff\"\n",
	}

	for format, doc := range docs {
		t.Run(format.String(), func(t *testing.T) {
			_, err := Read(strings.NewReader(doc), format)
			require.Error(t, err)
			assert.True(t, types.IsDecode(err))
			assert.Contains(t, err.Error(), "invalid UTF-8 in DESCRIPTION")
		})
	}
}

func TestTextToBinaryKeepsUnicode(t *testing.T) {
	doc := "TX_ID: 1\nTX_TYPE: DEPOSIT\nFROM_USER_ID: 0\nTO_USER_ID: 1\nAMOUNT: 2\nTIMESTAMP: 3\nSTATUS: SUCCESS\nDESCRIPTION: \"Caf\u00e9 \U0001F680\"\n"
	txs, err := Read(strings.NewReader(doc), types.YpBankText)
	require.NoError(t, err)

	var bin bytes.Buffer
	_, err = Write(&bin, txs, types.YpBankBin)
	require.NoError(t, err)

	decoded, err := Read(&bin, types.YpBankBin)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "Caf\u00e9 \U0001F680", decoded[0].Description)
}
