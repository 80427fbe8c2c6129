// =============================================================================
// YPBank Transaction Tools - CSV Parser Module
// =============================================================================
//
// This module parses YpBankCsv documents. The layout is fixed:
//
//   TX_ID,TX_TYPE,FROM_USER_ID,TO_USER_ID,AMOUNT,TIMESTAMP,STATUS,DESCRIPTION
//   1,DEPOSIT,0,100,1000,1700000000,SUCCESS,"Initial deposit"
//
// Two decode entry points exist and they validate the header differently:
//
//   ParseLines / ParseStrict
//     Line oriented. The first line, trimmed, must equal the header line
//     byte for byte. Every following non-blank line is one record.
//
//   Parse
//     Stream oriented, on encoding/csv. The header row is parsed into
//     fields and compared column by column. Quoted fields may span lines.
//     Rows made only of empty fields are skipped.
//
// Both share field parsing (ParseRecord) and both stop at the first bad row.
//
// =============================================================================

package csvparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ginjaninja78/ypbank-tools/internal/types"
	"github.com/ginjaninja78/ypbank-tools/pkg/utils"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// Headers is the expected header row, column by column.
var Headers = types.Columns

// HeaderLine is the canonical header line, without a line terminator.
var HeaderLine = strings.Join(Headers, ",")

// fieldCount is the number of columns every record must have.
const fieldCount = 8

// =============================================================================
// STREAM-ORIENTED PARSER
// =============================================================================

// Parse reads a CSV document from r.
//
// PARAMETERS:
//   - r: The CSV document, header row first.
//
// RETURNS:
//   - The records in document order, each tagged YpBankCsv.
//   - A decode error naming the row on the first bad row.
//
// Row numbers are physical line numbers taken from the reader (1-based,
// header is line 1). A record after a quoted field that spans lines, or after
// a skipped blank line, is numbered by the line it starts on rather than by
// its position among the records.
//
// An empty document has no header row and fails the header check.
func Parse(r io.Reader) ([]types.Transaction, error) {
	csvReader := csv.NewReader(r)
	configureReader(csvReader)

	header, err := csvReader.Read()
	if err != nil && err != io.EOF {
		return nil, types.NewDecodeErrorf("failed to read CSV header: %v", err)
	}
	if !equalHeaders(header) {
		return nil, types.NewDecodeErrorf("invalid CSV header: expected %q, got %q", Headers, header)
	}

	transactions := []types.Transaction{}
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, types.NewDecodeError(parseErr.Err.Error()).
					AtLine("CSV parse error on row", parseErr.StartLine)
			}
			return nil, types.NewDecodeErrorf("failed to read CSV: %v", err)
		}

		line, _ := csvReader.FieldPos(0)

		if isRowEmpty(row) {
			continue
		}

		tx, err := ParseRecord(row)
		if err != nil {
			return nil, types.AsDecode(err).AtLine("field error on row", line)
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

// configureReader sets up the CSV reader for the YpBankCsv dialect.
//
// The field count is checked by ParseRecord so the error can name the
// expected and actual counts.
func configureReader(reader *csv.Reader) {
	reader.Comma = ','
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = false
	reader.TrimLeadingSpace = false
	reader.ReuseRecord = false
}

// equalHeaders compares a parsed header row against Headers positionally.
func equalHeaders(header []string) bool {
	if len(header) != len(Headers) {
		return false
	}
	for i, name := range Headers {
		if header[i] != name {
			return false
		}
	}
	return true
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// LINE-ORIENTED PARSER
// =============================================================================

// ParseStrict reads the whole of r and decodes it with ParseLines.
func ParseStrict(r io.Reader) ([]types.Transaction, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, types.NewDecodeErrorf("failed to read CSV: %v", err)
	}
	return ParseLines(utils.SplitLines(string(content)))
}

// ParseLines decodes a CSV document that has already been split into lines.
//
// PARAMETERS:
//   - lines: The document lines. lines[0] must be the header line.
//
// RETURNS:
//   - The records, each tagged YpBankCsv.
//   - "CSV is empty" when there are no lines at all.
//   - "invalid header: ..." when the first line is not the header line.
//   - "error parsing line N: ..." for the first bad record line.
//
// A quoted description containing a newline cannot be decoded here because
// the split has already happened. Use Parse for such documents.
func ParseLines(lines []string) ([]types.Transaction, error) {
	if len(lines) == 0 {
		return nil, types.NewDecodeError("CSV is empty")
	}

	header := lines[0]
	if strings.TrimSpace(header) != HeaderLine {
		return nil, types.NewDecodeErrorf("invalid header: expected '%s', got '%s'", HeaderLine, header)
	}

	transactions := make([]types.Transaction, 0, len(lines)-1)
	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tx, err := ParseLine(line)
		if err != nil {
			// +2: one for the header, one for 1-based numbering.
			return nil, types.AsDecode(err).AtLine("error parsing line", i+2)
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

// ParseLine decodes exactly one CSV record from a single line.
func ParseLine(line string) (types.Transaction, error) {
	csvReader := csv.NewReader(strings.NewReader(line))
	configureReader(csvReader)

	row, err := csvReader.Read()
	if err == io.EOF {
		return types.Transaction{}, types.NewDecodeError("empty CSV line")
	}
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			err = parseErr.Err
		}
		return types.Transaction{}, types.NewDecodeErrorf("malformed CSV line: %v", err)
	}

	return ParseRecord(row)
}

// =============================================================================
// FIELD PARSING
// =============================================================================

// ParseRecord converts one row of exactly eight fields, in column order, to a
// Transaction tagged YpBankCsv.
func ParseRecord(row []string) (types.Transaction, error) {
	if len(row) != fieldCount {
		return types.Transaction{}, types.NewDecodeErrorf("expected %d fields, got %d", fieldCount, len(row))
	}

	txID, err := parseUint(row[0], "TX_ID")
	if err != nil {
		return types.Transaction{}, err
	}
	txType, err := types.ParseTxType(row[1])
	if err != nil {
		return types.Transaction{}, err
	}
	fromUserID, err := parseUint(row[2], "FROM_USER_ID")
	if err != nil {
		return types.Transaction{}, err
	}
	toUserID, err := parseUint(row[3], "TO_USER_ID")
	if err != nil {
		return types.Transaction{}, err
	}
	amount, err := strconv.ParseInt(row[4], 10, 64)
	if err != nil {
		return types.Transaction{}, invalidField("AMOUNT", row[4])
	}
	timestamp, err := parseUint(row[5], "TIMESTAMP")
	if err != nil {
		return types.Transaction{}, err
	}
	status, err := types.ParseStatus(row[6])
	if err != nil {
		return types.Transaction{}, err
	}
	if err := types.CheckDescription(row[7]); err != nil {
		return types.Transaction{}, err
	}

	return types.Transaction{
		TxID:        txID,
		TxType:      txType,
		FromUserID:  fromUserID,
		ToUserID:    toUserID,
		Amount:      amount,
		Timestamp:   timestamp,
		Status:      status,
		Description: row[7],
		Format:      types.YpBankCsv,
	}, nil
}

func parseUint(value, field string) (uint64, error) {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, invalidField(field, value)
	}
	return n, nil
}

func invalidField(field, value string) error {
	return types.NewDecodeError(fmt.Sprintf("invalid %s: %q", field, value))
}
