// =============================================================================
// YPBank Transaction Tools - Comparer Module
// =============================================================================
//
// This module decodes two resources, each in its own format, and decides
// whether they hold the same records in the same order.
//
// EQUALITY:
//   Two records are equal only when all eight fields AND the format they were
//   decoded from match. The same data read from a CSV file and from a binary
//   file therefore never compares equal.
//
// =============================================================================

package comparer

import (
	"github.com/ginjaninja78/ypbank-tools/internal/dispatch"
	"github.com/ginjaninja78/ypbank-tools/internal/types"
	"github.com/ginjaninja78/ypbank-tools/pkg/utils"
)

// Result is the outcome of one comparison.
type Result struct {
	// Equal is true when both sides have the same length and every pair of
	// records at the same index is equal.
	Equal bool

	First  []types.Transaction
	Second []types.Transaction

	// Mismatches lists each index where the sides differ, in order.
	Mismatches []Mismatch
}

// Mismatch describes one index where the two sides differ.
type Mismatch struct {
	// Index is 0-based.
	Index int

	// InFirst and InSecond report which side has a record at Index. When
	// both do, Fields names the differing fields, FORMAT included.
	InFirst  bool
	InSecond bool
	Fields   []string
}

// FirstCount returns the number of records decoded from the first resource.
func (r *Result) FirstCount() int {
	return len(r.First)
}

// SecondCount returns the number of records decoded from the second resource.
func (r *Result) SecondCount() int {
	return len(r.Second)
}

// Compare decodes both resources fully and compares the record sequences.
//
// The first resource is opened, decoded and closed before the second is
// touched.
//
// RETURNS:
//   - The comparison result.
//   - The first open or decode error; no partial comparison is made.
func Compare(first utils.Resource, firstFormat types.Format, second utils.Resource, secondFormat types.Format, opts ...dispatch.Option) (*Result, error) {
	firstRecords, err := load(first, firstFormat, opts)
	if err != nil {
		return nil, err
	}

	secondRecords, err := load(second, secondFormat, opts)
	if err != nil {
		return nil, err
	}

	return Records(firstRecords, secondRecords), nil
}

// Records compares two in-memory record sequences.
func Records(first, second []types.Transaction) *Result {
	result := &Result{
		Equal:  types.EqualAll(first, second),
		First:  first,
		Second: second,
	}

	for i := 0; i < max(len(first), len(second)); i++ {
		switch {
		case i >= len(first):
			result.Mismatches = append(result.Mismatches, Mismatch{Index: i, InSecond: true})
		case i >= len(second):
			result.Mismatches = append(result.Mismatches, Mismatch{Index: i, InFirst: true})
		default:
			if fields := first[i].DiffFields(second[i]); len(fields) > 0 {
				result.Mismatches = append(result.Mismatches, Mismatch{
					Index:    i,
					InFirst:  true,
					InSecond: true,
					Fields:   fields,
				})
			}
		}
	}

	return result
}

func load(res utils.Resource, format types.Format, opts []dispatch.Option) ([]types.Transaction, error) {
	reader, err := res.OpenReader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return dispatch.Read(reader, format, opts...)
}
