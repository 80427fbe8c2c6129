// =============================================================================
// YPBank Transaction Tools - Converter Module
// =============================================================================
//
// This module contains the conversion pipeline. It moves every record of one
// resource into another resource, possibly in a different format.
//
// CONVERSION PIPELINE:
//   1. Open the source resource
//   2. Decode the whole source with the source format's codec
//   3. Open (create or truncate) the destination resource
//   4. Encode and write the records with the destination format's codec
//   5. Flush and close the destination
//
// The source is fully decoded before the destination is opened, so a decode
// failure never creates or truncates the destination file. There is no
// rollback: a failure while writing may leave a partial destination.
//
// =============================================================================

package converter

import (
	"log/slog"
	"time"

	"github.com/ginjaninja78/ypbank-tools/internal/dispatch"
	"github.com/ginjaninja78/ypbank-tools/internal/types"
	"github.com/ginjaninja78/ypbank-tools/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one conversion.
type Result struct {
	// Source and Destination echo the resources the converter was built with.
	Source      utils.Resource
	Destination utils.Resource

	// Success indicates whether the conversion finished.
	Success bool

	// Error contains the decode or encode error if the conversion failed.
	// This is nil if the conversion was successful.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the conversion.
type ProcessingStats struct {
	// RecordsRead is the number of records decoded from the source.
	RecordsRead int

	// BytesWritten is the number of encoded bytes written to the destination.
	BytesWritten int

	// ProcessingTime is the time taken by the whole pipeline.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter moves records from a source resource to a destination resource.
type Converter struct {
	source       utils.Resource
	sourceFormat types.Format
	dest         utils.Resource
	destFormat   types.Format

	readOptions []dispatch.Option
	logger      Logger
}

// Logger is the logging surface the converter needs. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithReadOptions passes decode options through to dispatch.Read.
func WithReadOptions(opts ...dispatch.Option) Option {
	return func(c *Converter) {
		c.readOptions = append(c.readOptions, opts...)
	}
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - source, sourceFormat: Where to read records and how they are encoded.
//   - dest, destFormat: Where to write records and how to encode them.
//   - opts: Optional logger and decode options.
func New(source utils.Resource, sourceFormat types.Format, dest utils.Resource, destFormat types.Format, opts ...Option) *Converter {
	c := &Converter{
		source:       source,
		sourceFormat: sourceFormat,
		dest:         dest,
		destFormat:   destFormat,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
//
// RETURNS:
//   - A Result struct containing the outcome of the conversion.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		Source:      c.source,
		Destination: c.dest,
	}

	// =========================================================================
	// STEP 1-2: DECODE SOURCE
	// =========================================================================

	c.logger.Debug("converting", "from", c.source.String(), "from_format", c.sourceFormat.String(),
		"to", c.dest.String(), "to_format", c.destFormat.String())

	transactions, err := c.decode()
	if err != nil {
		c.logger.Debug("decode failed", "resource", c.source.String(), "error", err)
		result.Error = err
		return c.finish(result, startTime)
	}

	result.Stats.RecordsRead = len(transactions)
	c.logger.Debug("decoded source", "records", len(transactions))

	// =========================================================================
	// STEP 3-5: ENCODE AND WRITE DESTINATION
	// =========================================================================

	written, err := c.encode(transactions)
	result.Stats.BytesWritten = written
	if err != nil {
		c.logger.Debug("encode failed", "resource", c.dest.String(), "error", err)
		result.Error = err
		return c.finish(result, startTime)
	}

	c.logger.Debug("wrote destination", "bytes", written)

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.Success = true
	return c.finish(result, startTime)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func (c *Converter) decode() ([]types.Transaction, error) {
	reader, err := c.source.OpenReader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return dispatch.Read(reader, c.sourceFormat, c.readOptions...)
}

// encode opens the destination only after decoding succeeded. A failed close
// of a file destination is reported as an encode error.
func (c *Converter) encode(transactions []types.Transaction) (written int, err error) {
	writer, err := c.dest.OpenWriter()
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := writer.Close(); closeErr != nil && err == nil {
			err = types.NewEncodeErrorf("failed to close %s: %v", c.dest, closeErr)
		}
	}()

	return dispatch.Write(writer, transactions, c.destFormat)
}

func (c *Converter) finish(result Result, startTime time.Time) Result {
	result.Stats.ProcessingTime = time.Since(startTime)
	if result.Success {
		c.logger.Debug("conversion complete",
			"records", result.Stats.RecordsRead,
			"bytes", result.Stats.BytesWritten,
			"elapsed", result.Stats.ProcessingTime)
	}
	return result
}
