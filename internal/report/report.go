// =============================================================================
// YPBank Transaction Tools - Comparison Report
// =============================================================================
//
// This module writes the outcome of a comparison to an XLSX workbook and reads
// record sheets back.
//
// WORKBOOK LAYOUT:
//
//   Summary     | Metric | Value |  (first/second counts, verdict, mismatches)
//   First       | TX_ID | TX_TYPE | ... | DESCRIPTION | FORMAT |  one row per record
//   Second      | same columns as First
//   Mismatches  | INDEX | IN_FIRST | IN_SECOND | FIELDS |
//
// All record values are stored as text cells so 64-bit identifiers and
// amounts keep every digit.
//
// =============================================================================

package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/ypbank-tools/internal/comparer"
	"github.com/ginjaninja78/ypbank-tools/internal/csvparser"
	"github.com/ginjaninja78/ypbank-tools/internal/types"
)

// Fixed sheet names.
const (
	SummarySheet    = "Summary"
	MismatchesSheet = "Mismatches"
)

// FormatColumn is appended to the record columns on the First and Second
// sheets.
const FormatColumn = "FORMAT"

// =============================================================================
// SHEET NAMES
// =============================================================================

// SheetNames holds the configurable names of the two record sheets.
type SheetNames struct {
	First  string
	Second string
}

// DefaultSheetNames returns the default record sheet names.
func DefaultSheetNames() SheetNames {
	return SheetNames{First: "First", Second: "Second"}
}

func (s SheetNames) validate() error {
	names := map[string]bool{SummarySheet: true, MismatchesSheet: true}
	for _, name := range []string{s.First, s.Second} {
		if name == "" {
			return fmt.Errorf("record sheet name must not be empty")
		}
		if names[name] {
			return fmt.Errorf("duplicate sheet name %q", name)
		}
		names[name] = true
	}
	return nil
}

// =============================================================================
// WRITING
// =============================================================================

// WriteComparison saves result as an XLSX workbook at path.
//
// PARAMETERS:
//   - path: Destination file, created or overwritten.
//   - result: The comparison to record.
//   - sheets: Names for the two record sheets.
//
// RETURNS:
//   - An error if the workbook cannot be built or saved.
func WriteComparison(path string, result *comparer.Result, sheets SheetNames) error {
	if err := sheets.validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the summary so it opens first.
	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	for _, name := range []string{sheets.First, sheets.Second, MismatchesSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSummary(f, result, headerStyle); err != nil {
		return err
	}
	if err := writeRecords(f, sheets.First, result.First, headerStyle); err != nil {
		return err
	}
	if err := writeRecords(f, sheets.Second, result.Second, headerStyle); err != nil {
		return err
	}
	if err := writeMismatches(f, result.Mismatches, headerStyle); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, result *comparer.Result, headerStyle int) error {
	rows := [][]any{
		{"Metric", "Value"},
		{"First records", result.FirstCount()},
		{"Second records", result.SecondCount()},
		{"Equal", strconv.FormatBool(result.Equal)},
		{"Mismatches", len(result.Mismatches)},
	}
	return writeRows(f, SummarySheet, rows, headerStyle)
}

func writeRecords(f *excelize.File, sheet string, transactions []types.Transaction, headerStyle int) error {
	header := make([]any, 0, len(types.Columns)+1)
	for _, column := range types.Columns {
		header = append(header, column)
	}
	header = append(header, FormatColumn)

	rows := [][]any{header}
	for _, tx := range transactions {
		rows = append(rows, []any{
			strconv.FormatUint(tx.TxID, 10),
			tx.TxType.String(),
			strconv.FormatUint(tx.FromUserID, 10),
			strconv.FormatUint(tx.ToUserID, 10),
			strconv.FormatInt(tx.Amount, 10),
			strconv.FormatUint(tx.Timestamp, 10),
			tx.Status.String(),
			tx.Description,
			tx.Format.String(),
		})
	}
	return writeRows(f, sheet, rows, headerStyle)
}

func writeMismatches(f *excelize.File, mismatches []comparer.Mismatch, headerStyle int) error {
	rows := [][]any{{"INDEX", "IN_FIRST", "IN_SECOND", "FIELDS"}}
	for _, m := range mismatches {
		rows = append(rows, []any{
			m.Index,
			strconv.FormatBool(m.InFirst),
			strconv.FormatBool(m.InSecond),
			strings.Join(m.Fields, ","),
		})
	}
	return writeRows(f, MismatchesSheet, rows, headerStyle)
}

// writeRows writes rows from A1 down and styles the first one.
func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	return nil
}

// =============================================================================
// READING
// =============================================================================

// ReadSheet returns every row of one sheet of the workbook at path. Trailing
// empty cells of a row are dropped.
func ReadSheet(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	index, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sheet %s: %w", sheet, err)
	}
	if index < 0 {
		return nil, fmt.Errorf("report has no sheet %s", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return rows, nil
}

// ReadRecords reads a First or Second sheet back into records, restoring
// each record's format from the FORMAT column. It exists to verify that a
// saved report matches the comparison it was written from; the CLI never
// reads reports.
func ReadRecords(path, sheet string) ([]types.Transaction, error) {
	rows, err := ReadSheet(path, sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s has no header row", sheet)
	}

	transactions := make([]types.Transaction, 0, len(rows)-1)
	for i, row := range rows[1:] {
		// GetRows drops trailing empty cells.
		for len(row) < len(types.Columns)+1 {
			row = append(row, "")
		}

		tx, err := csvparser.ParseRecord(row[:len(types.Columns)])
		if err != nil {
			return nil, fmt.Errorf("error parsing row %d: %w", i+2, err)
		}
		format, err := types.ParseFormat(row[len(types.Columns)])
		if err != nil {
			return nil, fmt.Errorf("error parsing row %d: %w", i+2, err)
		}
		tx.Format = format
		transactions = append(transactions, tx)
	}
	return transactions, nil
}
