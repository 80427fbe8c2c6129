// =============================================================================
// YPBank Transaction Tools - Format Dispatch Module
// =============================================================================
//
// This module routes a byte stream to the codec for its format. It performs
// no value transformation: whatever the codec decodes is returned as is, and
// whatever the caller passes is encoded as is.
//
//   YpBankBin  -> binparser
//   YpBankCsv  -> csvparser (positional header check unless strict is set)
//   YpBankText -> textparser
//
// =============================================================================

package dispatch

import (
	"bufio"
	"io"

	"github.com/ginjaninja78/ypbank-tools/internal/binparser"
	"github.com/ginjaninja78/ypbank-tools/internal/csvparser"
	"github.com/ginjaninja78/ypbank-tools/internal/textparser"
	"github.com/ginjaninja78/ypbank-tools/internal/types"
)

// Option tunes how Read decodes.
type Option func(*options)

type options struct {
	strictCSVHeader bool
}

// WithStrictCSVHeader selects the line-oriented CSV decoder, which compares
// the whole trimmed header line instead of the parsed columns.
func WithStrictCSVHeader() Option {
	return func(o *options) {
		o.strictCSVHeader = true
	}
}

// Read decodes every record in r using the codec for format.
//
// RETURNS:
//   - The decoded records, each tagged with format.
//   - A decode error if the input is malformed or the format is unknown.
func Read(r io.Reader, format types.Format, opts ...Option) ([]types.Transaction, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch format {
	case types.YpBankBin:
		return binparser.Parse(r)
	case types.YpBankCsv:
		if o.strictCSVHeader {
			return csvparser.ParseStrict(r)
		}
		return csvparser.Parse(r)
	case types.YpBankText:
		return textparser.Parse(r)
	default:
		return nil, types.NewDecodeErrorf("unsupported format: %d", int(format))
	}
}

// Encode renders records with the codec for format without writing them.
func Encode(transactions []types.Transaction, format types.Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case types.YpBankBin:
		data, err = binparser.Encode(transactions)
	case types.YpBankCsv:
		data, err = csvparser.Encode(transactions)
	case types.YpBankText:
		data, err = textparser.Encode(transactions)
	default:
		return nil, types.NewEncodeErrorf("unsupported format: %d", int(format))
	}
	if err != nil {
		return nil, types.AsEncode(err)
	}
	return data, nil
}

// Write encodes records and writes them to w through a buffer that is
// flushed before Write returns.
//
// RETURNS:
//   - The number of bytes handed to w.
//   - An encode error if encoding, writing or flushing fails.
func Write(w io.Writer, transactions []types.Transaction, format types.Format) (int, error) {
	data, err := Encode(transactions, format)
	if err != nil {
		return 0, err
	}

	buffered := bufio.NewWriter(w)
	n, err := buffered.Write(data)
	if err != nil {
		return n, types.NewEncodeErrorf("failed to write %s output: %v", format, err)
	}
	if err := buffered.Flush(); err != nil {
		return n, types.NewEncodeErrorf("failed to flush %s output: %v", format, err)
	}

	return n, nil
}
