// =============================================================================
// YPBank Transaction Tools - Shared Types
// =============================================================================
//
// This package contains the transaction model shared by every codec and by
// the compare/convert pipelines. Types defined here are used by:
//   - binparser
//   - csvparser
//   - textparser
//   - dispatch
//   - comparer / converter / report
//
// A Transaction is a plain value. Codecs build new values on decode and only
// read them on encode; nothing mutates a decoded record in place.
//
// =============================================================================

package types

import (
	"fmt"
	"unicode/utf8"
)

// =============================================================================
// TRANSACTION TYPE
// =============================================================================

// TxType is the kind of money movement a transaction describes.
type TxType uint8

const (
	Deposit TxType = iota
	Transfer
	Withdrawal
)

// String returns the uppercase token used by the CSV and text formats.
func (t TxType) String() string {
	switch t {
	case Deposit:
		return "DEPOSIT"
	case Transfer:
		return "TRANSFER"
	case Withdrawal:
		return "WITHDRAWAL"
	default:
		return fmt.Sprintf("TxType(%d)", uint8(t))
	}
}

// Code returns the binary wire code of the type.
func (t TxType) Code() uint8 {
	return uint8(t)
}

// Valid reports whether t is one of the declared types.
func (t TxType) Valid() bool {
	return t <= Withdrawal
}

// ParseTxType maps an uppercase token back to a TxType. Matching is exact.
func ParseTxType(token string) (TxType, error) {
	switch token {
	case "DEPOSIT":
		return Deposit, nil
	case "TRANSFER":
		return Transfer, nil
	case "WITHDRAWAL":
		return Withdrawal, nil
	default:
		return 0, NewDecodeErrorf("invalid TX_TYPE: %s", token)
	}
}

// TxTypeFromCode maps a binary wire code to a TxType.
func TxTypeFromCode(code uint8) (TxType, error) {
	t := TxType(code)
	if !t.Valid() {
		return 0, NewDecodeErrorf("invalid TX_TYPE: %d", code)
	}
	return t, nil
}

// =============================================================================
// STATUS
// =============================================================================

// Status is the processing state of a transaction.
type Status uint8

const (
	Success Status = iota
	Failure
	Pending
)

func (s Status) String() string {
	switch s {
	case Success:
		return "SUCCESS"
	case Failure:
		return "FAILURE"
	case Pending:
		return "PENDING"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Code returns the binary wire code of the status.
func (s Status) Code() uint8 {
	return uint8(s)
}

// Valid reports whether s is one of the declared statuses.
func (s Status) Valid() bool {
	return s <= Pending
}

// ParseStatus maps an uppercase token back to a Status. Matching is exact.
func ParseStatus(token string) (Status, error) {
	switch token {
	case "SUCCESS":
		return Success, nil
	case "FAILURE":
		return Failure, nil
	case "PENDING":
		return Pending, nil
	default:
		return 0, NewDecodeErrorf("invalid STATUS: %s", token)
	}
}

// StatusFromCode maps a binary wire code to a Status.
func StatusFromCode(code uint8) (Status, error) {
	s := Status(code)
	if !s.Valid() {
		return 0, NewDecodeErrorf("invalid STATUS: %d", code)
	}
	return s, nil
}

// =============================================================================
// FORMAT
// =============================================================================

// Format identifies one of the three interchange formats. On a Transaction it
// records which codec produced the value.
type Format uint8

const (
	YpBankBin Format = iota
	YpBankCsv
	YpBankText
)

// Formats lists every supported format in CLI order.
var Formats = []Format{YpBankBin, YpBankCsv, YpBankText}

func (f Format) String() string {
	switch f {
	case YpBankBin:
		return "YpBankBin"
	case YpBankCsv:
		return "YpBankCsv"
	case YpBankText:
		return "YpBankText"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ParseFormat accepts the CLI spelling of a format.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown format %q (expected one of YpBankBin, YpBankCsv, YpBankText)", name)
}

// =============================================================================
// TRANSACTION
// =============================================================================

// Transaction represents a single ledger entry.
type Transaction struct {
	// TxID is the unique transaction identifier.
	TxID uint64

	// TxType is the kind of operation.
	TxType TxType

	// FromUserID is the sender. Deposits use 0.
	FromUserID uint64

	// ToUserID is the receiver. Withdrawals use 0.
	ToUserID uint64

	// Amount may be negative (reversals).
	Amount int64

	// Timestamp is in Unix epoch seconds.
	Timestamp uint64

	// Status is the processing state.
	Status Status

	// Description is free text: quotes, commas, newlines and non-ASCII are
	// all legal.
	Description string

	// Format is the codec that last produced this value. It takes part in
	// equality.
	Format Format
}

// Equal compares every field, Format included.
func (t Transaction) Equal(other Transaction) bool {
	return t == other
}

// EqualAll reports whether two sequences hold equal records in the same order.
func EqualAll(a, b []Transaction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// DiffFields returns the column names whose values differ between t and
// other. FORMAT is reported like any other column.
func (t Transaction) DiffFields(other Transaction) []string {
	var fields []string
	if t.TxID != other.TxID {
		fields = append(fields, "TX_ID")
	}
	if t.TxType != other.TxType {
		fields = append(fields, "TX_TYPE")
	}
	if t.FromUserID != other.FromUserID {
		fields = append(fields, "FROM_USER_ID")
	}
	if t.ToUserID != other.ToUserID {
		fields = append(fields, "TO_USER_ID")
	}
	if t.Amount != other.Amount {
		fields = append(fields, "AMOUNT")
	}
	if t.Timestamp != other.Timestamp {
		fields = append(fields, "TIMESTAMP")
	}
	if t.Status != other.Status {
		fields = append(fields, "STATUS")
	}
	if t.Description != other.Description {
		fields = append(fields, "DESCRIPTION")
	}
	if t.Format != other.Format {
		fields = append(fields, "FORMAT")
	}
	return fields
}

// Columns is the canonical field order shared by the CSV header, the text
// block layout and the report sheets.
var Columns = []string{
	"TX_ID",
	"TX_TYPE",
	"FROM_USER_ID",
	"TO_USER_ID",
	"AMOUNT",
	"TIMESTAMP",
	"STATUS",
	"DESCRIPTION",
}

// CheckDescription rejects a DESCRIPTION that is not valid UTF-8, naming the
// byte offset of the first bad sequence.
func CheckDescription(desc string) error {
	if utf8.ValidString(desc) {
		return nil
	}
	offset := 0
	for offset < len(desc) {
		r, size := utf8.DecodeRuneInString(desc[offset:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		offset += size
	}
	return NewDecodeErrorf("invalid UTF-8 in DESCRIPTION: invalid byte sequence at offset %d", offset)
}
