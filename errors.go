package typelite

import (
	"errors"
	"fmt"

	"github.com/typelite/typelite/internal/sqlitec"
)

// A subset of the engine's primary result codes, re-exported so callers
// can classify engine status errors without importing internal packages.
//
// https://www.sqlite.org/rescode.html
const (
	CodeError      = sqlitec.ResError
	CodeBusy       = sqlitec.ResBusy
	CodeLocked     = sqlitec.ResLocked
	CodeReadOnly   = sqlitec.ResReadOnly
	CodeInterrupt  = sqlitec.ResInterrupt
	CodeFull       = sqlitec.ResFull
	CodeCantOpen   = sqlitec.ResCantOpen
	CodeTooBig     = sqlitec.ResTooBig
	CodeConstraint = sqlitec.ResConstraint
	CodeMismatch   = sqlitec.ResMismatch
	CodeMisuse     = sqlitec.ResMisuse
	CodeRange      = sqlitec.ResRange
)

var (
	// ErrConnClosed is returned when an operation is attempted on a
	// closed connection.
	ErrConnClosed = errors.New("typelite: connection is closed")

	// ErrStmtFinalized is returned when an operation is attempted on a
	// finalized statement. This models the illegal state transition as
	// an error kind rather than a crash.
	ErrStmtFinalized = errors.New("typelite: statement is finalized")

	// ErrParamNotFound is returned when binding by a name that does not
	// exist in the compiled SQL. Match errors.Is against it; the wrapped
	// error names the offending parameter.
	ErrParamNotFound = errors.New("typelite: parameter not found")

	// ErrNoRow is returned when a row-producing operation is invoked
	// while the statement has no current row.
	ErrNoRow = errors.New("typelite: no current row")
)

// Error is an engine status error: any non-success status reported by
// the underlying SQLite call other than "row available" or "operation
// complete". It carries the engine's numeric result code and message.
type Error struct {
	// Op is the layer operation that triggered the engine call, such as
	// "prepare" or "step".
	Op string
	// Code is the engine result code, possibly extended.
	Code int
	// Message is the engine's error message, if any.
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("typelite: %s: %s (%d)", e.Op, sqlitec.CodeName(e.Code), e.Code)
	}
	return fmt.Sprintf("typelite: %s: %s (%d): %s", e.Op, sqlitec.CodeName(e.Code), e.Code, e.Message)
}

// Interrupted reports whether the error was caused by an Interrupt call
// aborting the in-flight operation.
func (e *Error) Interrupted() bool {
	return e.Code&0xff == CodeInterrupt
}

// PrimaryCode returns the primary result code with any extended bits
// stripped.
func (e *Error) PrimaryCode() int {
	return e.Code & 0xff
}

// wrapEngine converts an engine-level error into a public *Error that
// preserves the result code. Errors that did not originate from the
// engine are wrapped with the operation name only.
func wrapEngine(op string, err error) error {
	if err == nil {
		return nil
	}
	var engineErr *sqlitec.Error
	if errors.As(err, &engineErr) {
		return &Error{Op: op, Code: engineErr.Code, Message: engineErr.Message}
	}
	return fmt.Errorf("typelite: %s: %w", op, err)
}
