package binparser

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/ypbank-tools/internal/types"
)

func sampleTransactions() []types.Transaction {
	return []types.Transaction{
		{
			TxID:        1,
			TxType:      types.Deposit,
			FromUserID:  0,
			ToUserID:    100,
			Amount:      1000,
			Timestamp:   1700000000,
			Status:      types.Success,
			Description: "Initial deposit",
			Format:      types.YpBankBin,
		},
		{
			TxID:        2,
			TxType:      types.Transfer,
			FromUserID:  100,
			ToUserID:    200,
			Amount:      500,
			Timestamp:   1700000060,
			Status:      types.Pending,
			Description: "Friend payment",
			Format:      types.YpBankBin,
		},
	}
}

func TestEncodeSize(t *testing.T) {
	// Arrange
	txs := sampleTransactions()

	// Act
	data, err := Encode(txs)

	// Assert
	require.NoError(t, err)
	assert.Len(t, data, 137)
	assert.Equal(t, []byte("YPBN"), data[:4])
	assert.Equal(t, uint32(46+15), binary.BigEndian.Uint32(data[4:8]))
}

func TestFormatRecordLayout(t *testing.T) {
	tx := types.Transaction{
		TxID:        0x0102030405060708,
		TxType:      types.Withdrawal,
		FromUserID:  9,
		ToUserID:    10,
		Amount:      -2,
		Timestamp:   11,
		Status:      types.Failure,
		Description: "ab",
	}

	data, err := FormatRecord(tx)
	require.NoError(t, err)

	expected := []byte{
		'Y', 'P', 'B', 'N',
		0, 0, 0, 48,
		1, 2, 3, 4, 5, 6, 7, 8,
		2,
		0, 0, 0, 0, 0, 0, 0, 9,
		0, 0, 0, 0, 0, 0, 0, 10,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
		0, 0, 0, 0, 0, 0, 0, 11,
		1,
		0, 0, 0, 2,
		'a', 'b',
	}
	assert.Equal(t, expected, data)
}

func TestRoundTrip(t *testing.T) {
	cases := map[string]types.Transaction{
		"plain": sampleTransactions()[0],
		"negative amount": {
			TxID: 7, TxType: types.Transfer, FromUserID: 1, ToUserID: 2,
			Amount: -9223372036854775808, Timestamp: 1, Status: types.Failure,
			Description: "reversal", Format: types.YpBankBin,
		},
		"emoji and combining marks": {
			TxID: 8, TxType: types.Withdrawal, FromUserID: 3, ToUserID: 0,
			Amount: 42, Timestamp: 18446744073709551615, Status: types.Pending,
			Description: "Café 🚀 é \"quoted\", comma\nnewline", Format: types.YpBankBin,
		},
		"empty description": {
			TxID: 9, TxType: types.Deposit, Amount: 0, Status: types.Success,
			Description: "", Format: types.YpBankBin,
		},
	}

	for name, tx := range cases {
		t.Run(name, func(t *testing.T) {
			data, err := FormatRecord(tx)
			require.NoError(t, err)

			decoded, err := Parse(bytes.NewReader(data))
			require.NoError(t, err)
			require.Len(t, decoded, 1)
			assert.Equal(t, tx, decoded[0])
		})
	}
}

func TestRoundTripMany(t *testing.T) {
	txs := sampleTransactions()
	data, err := Encode(txs)
	require.NoError(t, err)

	decoded, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	assert.True(t, types.EqualAll(txs, decoded))
}

func TestParseEmpty(t *testing.T) {
	decoded, err := Parse(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestParseInvalidMagic(t *testing.T) {
	data, err := FormatRecord(sampleTransactions()[0])
	require.NoError(t, err)
	copy(data, "XXXX")

	_, err = Parse(bytes.NewReader(data))

	require.Error(t, err)
	assert.True(t, types.IsDecode(err))
	assert.Contains(t, err.Error(), "invalid MAGIC number")
	assert.Contains(t, err.Error(), "58 58 58 58")
}

func TestParseTruncated(t *testing.T) {
	data, err := FormatRecord(sampleTransactions()[0])
	require.NoError(t, err)

	cases := map[string]struct {
		data []byte
		want string
	}{
		"partial magic":  {data: data[:2], want: "truncated MAGIC"},
		"missing length": {data: data[:6], want: "failed to read record size"},
		"short body":     {data: data[:len(data)-3], want: "truncated body"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(bytes.NewReader(tc.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseBodyDescriptionOverrun(t *testing.T) {
	// Arrange: a body that claims 1000 description bytes but carries 3.
	data, err := FormatRecord(types.Transaction{TxID: 5, Description: "abc"})
	require.NoError(t, err)
	body := data[headerSize:]
	binary.BigEndian.PutUint32(body[fixedBodySize-4:fixedBodySize], 1000)

	// Act
	_, err = ParseBody(body)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DESCRIPTION length 1000 exceeds body")
}

func TestParseBodyInvalidCodes(t *testing.T) {
	data, err := FormatRecord(types.Transaction{TxID: 5})
	require.NoError(t, err)

	badType := append([]byte(nil), data[headerSize:]...)
	badType[8] = 7
	_, err = ParseBody(badType)
	require.Error(t, err)
	assert.Equal(t, "invalid TX_TYPE: 7", err.Error())

	badStatus := append([]byte(nil), data[headerSize:]...)
	badStatus[8+1+8+8+8+8] = 9
	_, err = ParseBody(badStatus)
	require.Error(t, err)
	assert.Equal(t, "invalid STATUS: 9", err.Error())
}

func TestParseBodyInvalidUTF8(t *testing.T) {
	data, err := FormatRecord(types.Transaction{TxID: 5, Description: "ok?"})
	require.NoError(t, err)
	body := data[headerSize:]
	body[len(body)-1] = 0xff

	_, err = ParseBody(body)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid UTF-8 in DESCRIPTION")
	assert.Contains(t, err.Error(), "offset 2")
}

func TestParseBodyTooShort(t *testing.T) {
	_, err := ParseBody([]byte{0, 0, 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "body too short for TX_ID")
}

func TestParseStopsAtFirstBadRecord(t *testing.T) {
	good, err := Encode(sampleTransactions())
	require.NoError(t, err)
	stream := append(good, []byte("NOPE")...)

	decoded, err := Parse(bytes.NewReader(stream))

	require.Error(t, err)
	assert.Nil(t, decoded)
	assert.Contains(t, err.Error(), "record 3")
}
