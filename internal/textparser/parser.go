// =============================================================================
// YPBank Transaction Tools - Text Parser Module
// =============================================================================
//
// This module parses YpBankText documents: one block of KEY: value lines per
// record.
//
//   # Record 1 (Deposit)
//   TX_ID: 1
//   TX_TYPE: DEPOSIT
//   FROM_USER_ID: 0
//   TO_USER_ID: 100
//   AMOUNT: 1000
//   TIMESTAMP: 1700000000
//   STATUS: SUCCESS
//   DESCRIPTION: "Initial deposit"
//
// A blank line or a line starting with '#' closes the current block. Comment
// text is discarded. DESCRIPTION loses one surrounding pair of quotes when
// present; doubled quotes inside are kept as they are.
//
// =============================================================================

package textparser

import (
	"io"
	"strconv"
	"strings"

	"github.com/ginjaninja78/ypbank-tools/internal/types"
	"github.com/ginjaninja78/ypbank-tools/pkg/utils"
)

// Keys lists the required keys in canonical order.
var Keys = types.Columns

// Parse reads the whole of r and decodes every block.
//
// RETURNS:
//   - The records in document order, each tagged YpBankText.
//     Empty input yields an empty slice.
//   - A decode error on the first bad line or block.
func Parse(r io.Reader) ([]types.Transaction, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, types.NewDecodeErrorf("failed to read text: %v", err)
	}
	return ParseLines(utils.SplitLines(string(content)))
}

// ParseLines groups lines into blocks and decodes each block.
//
// Keys and values are split at the first ':' and trimmed. A later duplicate
// of a key inside one block replaces the earlier value.
func ParseLines(lines []string) ([]types.Transaction, error) {
	transactions := []types.Transaction{}
	current := make(map[string]string)

	flush := func() error {
		if len(current) == 0 {
			return nil
		}
		tx, err := ParseFields(current)
		if err != nil {
			return err
		}
		transactions = append(transactions, tx)
		current = make(map[string]string)
		return nil
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			return nil, types.NewDecodeErrorf("invalid key-value on line %d: %s", i+1, line).
				WithLine(i + 1)
		}
		current[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return transactions, nil
}

// ParseFields builds one record from a block's key/value pairs.
//
// Required keys are checked in canonical order, so the first missing one is
// the one reported.
func ParseFields(fields map[string]string) (types.Transaction, error) {
	for _, key := range Keys {
		if _, ok := fields[key]; !ok {
			return types.Transaction{}, types.NewDecodeErrorf("missing field: %s", key)
		}
	}

	txID, err := parseUint(fields, "TX_ID")
	if err != nil {
		return types.Transaction{}, err
	}
	txType, err := types.ParseTxType(fields["TX_TYPE"])
	if err != nil {
		return types.Transaction{}, err
	}
	fromUserID, err := parseUint(fields, "FROM_USER_ID")
	if err != nil {
		return types.Transaction{}, err
	}
	toUserID, err := parseUint(fields, "TO_USER_ID")
	if err != nil {
		return types.Transaction{}, err
	}
	amount, err := strconv.ParseInt(fields["AMOUNT"], 10, 64)
	if err != nil {
		return types.Transaction{}, types.NewDecodeErrorf("invalid AMOUNT: %q", fields["AMOUNT"])
	}
	timestamp, err := parseUint(fields, "TIMESTAMP")
	if err != nil {
		return types.Transaction{}, err
	}
	status, err := types.ParseStatus(fields["STATUS"])
	if err != nil {
		return types.Transaction{}, err
	}
	description := unquote(fields["DESCRIPTION"])
	if err := types.CheckDescription(description); err != nil {
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
		Description: description,
		Format:      types.YpBankText,
	}, nil
}

func parseUint(fields map[string]string, key string) (uint64, error) {
	n, err := strconv.ParseUint(fields[key], 10, 64)
	if err != nil {
		return 0, types.NewDecodeErrorf("invalid %s: %q", key, fields[key])
	}
	return n, nil
}

// unquote strips exactly one surrounding pair of double quotes.
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
