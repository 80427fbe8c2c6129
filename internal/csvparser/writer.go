package csvparser

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/ypbank-tools/internal/types"
)

// FormatRecord renders one record as a CSV line without a line terminator.
// DESCRIPTION is always quoted, with embedded quotes doubled.
func FormatRecord(tx types.Transaction) (string, error) {
	if !tx.TxType.Valid() {
		return "", types.NewEncodeErrorf("tx %d: invalid TX_TYPE: %d", tx.TxID, tx.TxType.Code())
	}
	if !tx.Status.Valid() {
		return "", types.NewEncodeErrorf("tx %d: invalid STATUS: %d", tx.TxID, tx.Status.Code())
	}

	fields := []string{
		strconv.FormatUint(tx.TxID, 10),
		tx.TxType.String(),
		strconv.FormatUint(tx.FromUserID, 10),
		strconv.FormatUint(tx.ToUserID, 10),
		strconv.FormatInt(tx.Amount, 10),
		strconv.FormatUint(tx.Timestamp, 10),
		tx.Status.String(),
		quote(tx.Description),
	}
	return strings.Join(fields, ","), nil
}

// Encode renders the header line followed by one line per record. Every line,
// the last included, ends with "\n".
func Encode(transactions []types.Transaction) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(HeaderLine)
	sb.WriteByte('\n')

	for _, tx := range transactions {
		line, err := FormatRecord(tx)
		if err != nil {
			return nil, err
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	return []byte(sb.String()), nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
