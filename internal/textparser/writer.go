package textparser

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/ypbank-tools/internal/types"
)

// FormatRecord renders one block of eight KEY: value lines, without a trailing
// newline. DESCRIPTION is wrapped in quotes and its content is written as is.
func FormatRecord(tx types.Transaction) (string, error) {
	if !tx.TxType.Valid() {
		return "", types.NewEncodeErrorf("tx %d: invalid TX_TYPE: %d", tx.TxID, tx.TxType.Code())
	}
	if !tx.Status.Valid() {
		return "", types.NewEncodeErrorf("tx %d: invalid STATUS: %d", tx.TxID, tx.Status.Code())
	}

	return fmt.Sprintf(
		"TX_ID: %d\n"+
			"TX_TYPE: %s\n"+
			"FROM_USER_ID: %d\n"+
			"TO_USER_ID: %d\n"+
			"AMOUNT: %d\n"+
			"TIMESTAMP: %d\n"+
			"STATUS: %s\n"+
			"DESCRIPTION: \"%s\"",
		tx.TxID,
		tx.TxType,
		tx.FromUserID,
		tx.ToUserID,
		tx.Amount,
		tx.Timestamp,
		tx.Status,
		tx.Description,
	), nil
}

// Encode joins the blocks with one blank line between consecutive records and
// nothing after the last.
func Encode(transactions []types.Transaction) ([]byte, error) {
	blocks := make([]string, 0, len(transactions))
	for _, tx := range transactions {
		block, err := FormatRecord(tx)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return []byte(strings.Join(blocks, "\n\n")), nil
}
