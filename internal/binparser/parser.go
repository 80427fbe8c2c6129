// =============================================================================
// YPBank Transaction Tools - Binary Parser Module
// =============================================================================
//
// This module decodes the YpBankBin wire format. Each record is framed as:
//
//   +--------+-------------+----------------------+
//   | "YPBN" | body length | body                 |
//   | 4 B    | u32 BE      | body length bytes    |
//   +--------+-------------+----------------------+
//
// Body fields, all big-endian:
//   tx_id:u64 tx_type:u8 from_user_id:u64 to_user_id:u64 amount:i64
//   timestamp:u64 status:u8 description_len:u32 description:[]byte
//
// A stream that ends exactly on a record boundary is complete. Anything else
// that ends early is a truncated record.
//
// =============================================================================

package binparser

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/ginjaninja78/ypbank-tools/internal/types"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// Magic opens every framed record.
var Magic = [4]byte{'Y', 'P', 'B', 'N'}

const (
	// headerSize is magic + body length.
	headerSize = 8

	// fixedBodySize is every body field before the description bytes.
	fixedBodySize = 8 + 1 + 8 + 8 + 8 + 8 + 1 + 4
)

// =============================================================================
// STREAM DECODING
// =============================================================================

// Parse reads framed records until the stream ends.
//
// RETURNS:
//   - The records in stream order, each tagged YpBankBin.
//   - A decode error naming the failing record (1-indexed) on the first
//     problem. Nothing decoded before the failure is returned.
func Parse(r io.Reader) ([]types.Transaction, error) {
	reader := bufio.NewReader(r)
	transactions := []types.Transaction{}

	for index := 1; ; index++ {
		var magic [4]byte
		n, err := io.ReadFull(reader, magic[:])
		if err == io.EOF {
			// Clean end on a record boundary.
			break
		}
		if err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, types.NewDecodeErrorf("record %d: truncated MAGIC (%d of 4 bytes)", index, n)
			}
			return nil, types.NewDecodeErrorf("record %d: failed to read MAGIC: %v", index, err)
		}
		if magic != Magic {
			return nil, types.NewDecodeErrorf("record %d: invalid MAGIC number: % x", index, magic[:])
		}

		var size [4]byte
		if _, err := io.ReadFull(reader, size[:]); err != nil {
			return nil, types.NewDecodeErrorf("record %d: failed to read record size: %v", index, err)
		}
		bodyLen := binary.BigEndian.Uint32(size[:])

		// Read through a limit so a corrupt length cannot force a huge
		// allocation before the stream runs out.
		body, err := io.ReadAll(io.LimitReader(reader, int64(bodyLen)))
		if err != nil {
			return nil, types.NewDecodeErrorf("record %d: failed to read body: %v", index, err)
		}
		if len(body) != int(bodyLen) {
			return nil, types.NewDecodeErrorf("record %d: truncated body: expected %d bytes, got %d", index, bodyLen, len(body))
		}

		tx, err := ParseBody(body)
		if err != nil {
			return nil, types.AsDecode(err).AtLine("record", index)
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

// =============================================================================
// BODY DECODING
// =============================================================================

// ParseBody decodes a single record body (the bytes after magic and length).
//
// The description length is checked against the remaining body before any
// description byte is read.
func ParseBody(body []byte) (types.Transaction, error) {
	cur := &cursor{buf: body}

	txID, err := cur.u64("TX_ID")
	if err != nil {
		return types.Transaction{}, err
	}

	typeCode, err := cur.u8("TX_TYPE")
	if err != nil {
		return types.Transaction{}, err
	}
	txType, err := types.TxTypeFromCode(typeCode)
	if err != nil {
		return types.Transaction{}, err
	}

	fromUserID, err := cur.u64("FROM_USER_ID")
	if err != nil {
		return types.Transaction{}, err
	}
	toUserID, err := cur.u64("TO_USER_ID")
	if err != nil {
		return types.Transaction{}, err
	}

	rawAmount, err := cur.u64("AMOUNT")
	if err != nil {
		return types.Transaction{}, err
	}

	timestamp, err := cur.u64("TIMESTAMP")
	if err != nil {
		return types.Transaction{}, err
	}

	statusCode, err := cur.u8("STATUS")
	if err != nil {
		return types.Transaction{}, err
	}
	status, err := types.StatusFromCode(statusCode)
	if err != nil {
		return types.Transaction{}, err
	}

	descLen, err := cur.u32("DESCRIPTION length")
	if err != nil {
		return types.Transaction{}, err
	}
	if uint64(descLen) > uint64(cur.remaining()) {
		return types.Transaction{}, types.NewDecodeErrorf(
			"DESCRIPTION length %d exceeds body (%d bytes left)", descLen, cur.remaining())
	}
	desc := string(cur.take(int(descLen)))
	if err := types.CheckDescription(desc); err != nil {
		return types.Transaction{}, err
	}

	return types.Transaction{
		TxID:        txID,
		TxType:      txType,
		FromUserID:  fromUserID,
		ToUserID:    toUserID,
		Amount:      int64(rawAmount),
		Timestamp:   timestamp,
		Status:      status,
		Description: desc,
		Format:      types.YpBankBin,
	}, nil
}

// =============================================================================
// CURSOR
// =============================================================================

// cursor reads big-endian fields from a body without going past its end.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.pos
}

func (c *cursor) need(n int, field string) error {
	if c.remaining() < n {
		return types.NewDecodeErrorf("body too short for %s: need %d bytes at offset %d, have %d",
			field, n, c.pos, c.remaining())
	}
	return nil
}

func (c *cursor) take(n int) []byte {
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b
}

func (c *cursor) u8(field string) (uint8, error) {
	if err := c.need(1, field); err != nil {
		return 0, err
	}
	return c.take(1)[0], nil
}

func (c *cursor) u32(field string) (uint32, error) {
	if err := c.need(4, field); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(c.take(4)), nil
}

func (c *cursor) u64(field string) (uint64, error) {
	if err := c.need(8, field); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(c.take(8)), nil
}
