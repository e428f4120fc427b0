package typelite

import (
	"fmt"

	"github.com/orsinium-labs/enum"
	"github.com/typelite/typelite/internal/sqlitec"
)

// stmtState tracks where a statement is in its lifecycle.
type stmtState enum.Member[string]

var (
	stateCompiled  = stmtState{Value: "compiled"}
	stateBound     = stmtState{Value: "bound"}
	stateStepping  = stmtState{Value: "stepping"}
	stateExhausted = stmtState{Value: "exhausted"}
	stateFinalized = stmtState{Value: "finalized"}
)

// Stmt is a compiled statement. Its lifecycle is an explicit state
// machine: compiled, bound after any bind call, stepping once Step has
// produced a row, exhausted when Step reports no more rows, and back to
// compiled after Reset. Bindings survive Reset and are only removed by
// ClearBindings.
//
// Parameter slots are 0-based at this API surface; the translation to
// the engine's 1-based numbering happens internally. A Stmt keeps its
// connection alive until Close is called.
type Stmt struct {
	conn   *Conn
	eng    *sqlitec.Stmt
	sql    string
	state  stmtState
	hasRow bool
}

// SQL returns the text the statement was compiled from.
func (s *Stmt) SQL() string {
	return s.sql
}

// ReadOnly reports whether the statement makes no direct changes to the
// database.
func (s *Stmt) ReadOnly() bool {
	return s.eng.ReadOnly()
}

// ParameterCount returns the number of parameter slots in the compiled
// SQL.
func (s *Stmt) ParameterCount() int {
	return s.eng.BindParameterCount()
}

func (s *Stmt) guard(op string) error {
	if s.state == stateFinalized {
		return fmt.Errorf("%s: %w", op, ErrStmtFinalized)
	}
	return nil
}

// markBound records that at least one parameter slot has been set.
func (s *Stmt) markBound() {
	if s.state == stateCompiled {
		s.state = stateBound
	}
}

// BindInt32 binds a 32-bit integer at the given 0-based index.
func (s *Stmt) BindInt32(index int, value int32) error {
	if err := s.guard("bind"); err != nil {
		return err
	}
	if err := s.eng.BindInt(index+1, int(value)); err != nil {
		return wrapEngine("bind", err)
	}
	s.markBound()
	return nil
}

// BindInt64 binds a 64-bit integer at the given 0-based index.
func (s *Stmt) BindInt64(index int, value int64) error {
	if err := s.guard("bind"); err != nil {
		return err
	}
	if err := s.eng.BindInt64(index+1, value); err != nil {
		return wrapEngine("bind", err)
	}
	s.markBound()
	return nil
}

// BindFloat binds a 64-bit float at the given 0-based index.
func (s *Stmt) BindFloat(index int, value float64) error {
	if err := s.guard("bind"); err != nil {
		return err
	}
	if err := s.eng.BindFloat64(index+1, value); err != nil {
		return wrapEngine("bind", err)
	}
	s.markBound()
	return nil
}

// BindText binds a string at the given 0-based index.
func (s *Stmt) BindText(index int, value string) error {
	if err := s.guard("bind"); err != nil {
		return err
	}
	if err := s.eng.BindText(index+1, value); err != nil {
		return wrapEngine("bind", err)
	}
	s.markBound()
	return nil
}

// BindBlob binds a byte slice at the given 0-based index. A nil slice
// binds NULL.
func (s *Stmt) BindBlob(index int, value []byte) error {
	if err := s.guard("bind"); err != nil {
		return err
	}
	var err error
	if value == nil {
		err = s.eng.BindNull(index + 1)
	} else {
		err = s.eng.BindBlob(index+1, value)
	}
	if err != nil {
		return wrapEngine("bind", err)
	}
	s.markBound()
	return nil
}

// BindNull binds NULL at the given 0-based index.
func (s *Stmt) BindNull(index int) error {
	if err := s.guard("bind"); err != nil {
		return err
	}
	if err := s.eng.BindNull(index + 1); err != nil {
		return wrapEngine("bind", err)
	}
	s.markBound()
	return nil
}

// BindValue binds a Value at the given 0-based index, dispatching on its
// storage class.
func (s *Stmt) BindValue(index int, value Value) error {
	switch value.Type() {
	case TypeInteger:
		return s.BindInt64(index, value.Int64())
	case TypeFloat:
		return s.BindFloat(index, value.Float())
	case TypeText:
		return s.BindText(index, value.Text())
	case TypeBlob:
		return s.BindBlob(index, value.Blob())
	default:
		return s.BindNull(index)
	}
}

// Bind binds the given values to successive parameter slots starting at
// index 0. Accepted types are nil, bool, the signed integer kinds,
// float32, float64, string, []byte, and Value.
func (s *Stmt) Bind(values ...any) error {
	for i, v := range values {
		if err := s.bindAny(i, v); err != nil {
			return err
		}
	}
	return nil
}

// BindAll is like Bind for a pre-built slice of values.
func (s *Stmt) BindAll(values []any) error {
	return s.Bind(values...)
}

func (s *Stmt) bindAny(index int, value any) error {
	switch v := value.(type) {
	case nil:
		return s.BindNull(index)
	case bool:
		if v {
			return s.BindInt64(index, 1)
		}
		return s.BindInt64(index, 0)
	case int:
		return s.BindInt64(index, int64(v))
	case int8:
		return s.BindInt64(index, int64(v))
	case int16:
		return s.BindInt64(index, int64(v))
	case int32:
		return s.BindInt64(index, int64(v))
	case int64:
		return s.BindInt64(index, v)
	case float32:
		return s.BindFloat(index, float64(v))
	case float64:
		return s.BindFloat(index, v)
	case string:
		return s.BindText(index, v)
	case []byte:
		return s.BindBlob(index, v)
	case Value:
		return s.BindValue(index, v)
	default:
		return fmt.Errorf("typelite: bind: unsupported type %T at index %d", value, index)
	}
}

// BindNamed binds a value to the named parameter. The name must match
// the compiled SQL exactly, including its sigil (":param", "@param",
// "$param"). A name absent from the SQL fails with ErrParamNotFound.
func (s *Stmt) BindNamed(name string, value any) error {
	if err := s.guard("bind"); err != nil {
		return err
	}
	slot := s.eng.BindParameterIndex(name)
	if slot == 0 {
		return fmt.Errorf("%w: %q", ErrParamNotFound, name)
	}
	return s.bindAny(slot-1, value)
}

// BindMap binds every entry of the map by parameter name, with the same
// exact-name rule as BindNamed.
func (s *Stmt) BindMap(values map[string]any) error {
	for name, value := range values {
		if err := s.BindNamed(name, value); err != nil {
			return err
		}
	}
	return nil
}

// Step advances the statement by exactly one row. It returns true while
// a row is available and false once the statement is exhausted. Calling
// Step again after exhaustion keeps returning false without touching
// the engine; Reset is required to re-run the statement.
func (s *Stmt) Step() (bool, error) {
	if err := s.guard("step"); err != nil {
		return false, err
	}
	if s.state == stateExhausted {
		return false, nil
	}

	hasRow, err := s.eng.Step()
	if err != nil {
		s.hasRow = false
		return false, wrapEngine("step", err)
	}

	s.hasRow = hasRow
	if hasRow {
		s.state = stateStepping
	} else {
		s.state = stateExhausted
	}
	return hasRow, nil
}

// Execute runs a statement that is expected to produce no rows. If a
// row is produced anyway it is discarded. The statement must be Reset
// before it can be re-run.
func (s *Stmt) Execute() error {
	if err := s.guard("execute"); err != nil {
		return err
	}
	if s.state == stateExhausted {
		return nil
	}

	_, err := s.eng.Step()
	s.hasRow = false
	if err != nil {
		return wrapEngine("execute", err)
	}
	s.state = stateExhausted
	return nil
}

// Reset returns the statement to its initial state so it can be stepped
// again from the first row. Bindings are retained; chain ClearBindings
// for full reuse: stmt.Reset() then stmt.ClearBindings().
func (s *Stmt) Reset() error {
	if err := s.guard("reset"); err != nil {
		return err
	}
	s.hasRow = false
	if err := s.eng.Reset(); err != nil {
		s.state = stateCompiled
		return wrapEngine("reset", err)
	}
	s.state = stateCompiled
	return nil
}

// ClearBindings sets every parameter slot back to NULL. It is
// independent of Reset and does not touch the stepping state: an
// exhausted statement stays exhausted until Reset is called.
func (s *Stmt) ClearBindings() error {
	if err := s.guard("clear bindings"); err != nil {
		return err
	}
	if err := s.eng.ClearBindings(); err != nil {
		return wrapEngine("clear bindings", err)
	}
	return nil
}

// ColumnCount returns the number of result columns. It is valid as soon
// as the statement is compiled, independent of stepping state.
func (s *Stmt) ColumnCount() int {
	return s.eng.ColumnCount()
}

// ColumnName returns the name of the result column at the given index.
func (s *Stmt) ColumnName(index int) string {
	return s.eng.ColumnName(index)
}

// ColumnIndex returns the index of the named result column using exact,
// case-sensitive matching. Case-insensitive lookup is a Snapshot
// concern.
func (s *Stmt) ColumnIndex(name string) (int, bool) {
	for i, n := 0, s.eng.ColumnCount(); i < n; i++ {
		if s.eng.ColumnName(i) == name {
			return i, true
		}
	}
	return 0, false
}

// Row returns a live view over the statement's current row. The view
// reads through the engine on every access and is invalidated by the
// next Step, Reset, or Close.
func (s *Stmt) Row() *Row {
	return &Row{stmt: s}
}

// Snapshot materializes the current row into a statement-independent
// Snapshot. It fails with ErrNoRow if no row is available.
func (s *Stmt) Snapshot() (*Snapshot, error) {
	if err := s.guard("snapshot"); err != nil {
		return nil, err
	}
	if !s.hasRow {
		return nil, ErrNoRow
	}
	return newSnapshot(s), nil
}

// Close finalizes the statement and releases its program handle. It is
// safe to call more than once.
func (s *Stmt) Close() error {
	if s.state == stateFinalized {
		return nil
	}
	s.state = stateFinalized
	s.hasRow = false
	s.conn.removeStmt(s)
	return wrapEngine("finalize", s.eng.Finalize())
}
