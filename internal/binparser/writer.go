package binparser

import (
	"encoding/binary"
	"math"

	"github.com/ginjaninja78/ypbank-tools/internal/types"
)

// FormatRecord encodes one transaction as a full framed record: magic, body
// length, body.
func FormatRecord(tx types.Transaction) ([]byte, error) {
	if !tx.TxType.Valid() {
		return nil, types.NewEncodeErrorf("tx %d: invalid TX_TYPE: %d", tx.TxID, tx.TxType.Code())
	}
	if !tx.Status.Valid() {
		return nil, types.NewEncodeErrorf("tx %d: invalid STATUS: %d", tx.TxID, tx.Status.Code())
	}
	if uint64(len(tx.Description)) > math.MaxUint32-fixedBodySize {
		return nil, types.NewEncodeErrorf("tx %d: DESCRIPTION too long for binary format (%d bytes)", tx.TxID, len(tx.Description))
	}

	bodyLen := fixedBodySize + len(tx.Description)
	out := make([]byte, 0, headerSize+bodyLen)

	out = append(out, Magic[:]...)
	out = binary.BigEndian.AppendUint32(out, uint32(bodyLen))

	out = binary.BigEndian.AppendUint64(out, tx.TxID)
	out = append(out, tx.TxType.Code())
	out = binary.BigEndian.AppendUint64(out, tx.FromUserID)
	out = binary.BigEndian.AppendUint64(out, tx.ToUserID)
	out = binary.BigEndian.AppendUint64(out, uint64(tx.Amount))
	out = binary.BigEndian.AppendUint64(out, tx.Timestamp)
	out = append(out, tx.Status.Code())
	out = binary.BigEndian.AppendUint32(out, uint32(len(tx.Description)))
	out = append(out, tx.Description...)

	return out, nil
}

// Encode concatenates the framed records in input order.
func Encode(transactions []types.Transaction) ([]byte, error) {
	var all []byte
	for _, tx := range transactions {
		record, err := FormatRecord(tx)
		if err != nil {
			return nil, err
		}
		all = append(all, record...)
	}
	return all, nil
}
