package typelite

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/typelite/typelite/internal/sqlitec"
)

// Row is a live view over a statement's current row. Every access reads
// through the engine, so a Row is only valid while the row it was
// obtained for is current: the next Step, Reset, or Close invalidates
// it. Materialize a Snapshot when values must outlive the current step
// or when name-based access is needed.
type Row struct {
	stmt *Stmt
}

// IsNull reports whether the engine stores NULL at the given column.
// Check it before using the non-nilable accessors on columns that may
// be NULL.
func (r *Row) IsNull(index int) bool {
	return r.stmt.eng.ColumnType(index) == sqlitec.StorageNull
}

// Int32 returns the column as a 32-bit integer. The engine's implicit
// conversion rules apply when the stored class differs; NULL reads as
// zero.
func (r *Row) Int32(index int) int32 {
	return int32(r.stmt.eng.ColumnInt(index))
}

// Int64 returns the column as a 64-bit integer. The engine's implicit
// conversion rules apply when the stored class differs; NULL reads as
// zero.
func (r *Row) Int64(index int) int64 {
	return r.stmt.eng.ColumnInt64(index)
}

// Float returns the column as a 64-bit float. The engine's implicit
// conversion rules apply when the stored class differs; NULL reads as
// zero.
func (r *Row) Float(index int) float64 {
	return r.stmt.eng.ColumnFloat64(index)
}

// Text returns the column as a string. The engine's implicit conversion
// rules apply when the stored class differs; NULL reads as empty.
func (r *Row) Text(index int) string {
	return r.stmt.eng.ColumnText(index)
}

// Blob returns the column as a byte slice, or nil for NULL. A present
// zero-length blob reads as an empty, non-nil slice.
func (r *Row) Blob(index int) []byte {
	b := r.stmt.eng.ColumnBlob(index)
	if b == nil && r.stmt.eng.ColumnType(index) == sqlitec.StorageBlob {
		return []byte{}
	}
	return b
}

// GetInt32 is the nilable variant of Int32: it returns false instead of
// zero when the column is NULL.
func (r *Row) GetInt32(index int) (int32, bool) {
	if r.IsNull(index) {
		return 0, false
	}
	return r.Int32(index), true
}

// GetInt64 is the nilable variant of Int64.
func (r *Row) GetInt64(index int) (int64, bool) {
	if r.IsNull(index) {
		return 0, false
	}
	return r.Int64(index), true
}

// GetFloat is the nilable variant of Float.
func (r *Row) GetFloat(index int) (float64, bool) {
	if r.IsNull(index) {
		return 0, false
	}
	return r.Float(index), true
}

// GetText is the nilable variant of Text.
func (r *Row) GetText(index int) (string, bool) {
	if r.IsNull(index) {
		return "", false
	}
	return r.Text(index), true
}

// GetBlob is the nilable variant of Blob.
func (r *Row) GetBlob(index int) ([]byte, bool) {
	if r.IsNull(index) {
		return nil, false
	}
	return r.Blob(index), true
}

// Value materializes a single column into a statement-independent Value
// according to its storage class.
func (r *Row) Value(index int) Value {
	eng := r.stmt.eng
	switch eng.ColumnType(index) {
	case sqlitec.StorageInteger:
		return Int64Value(eng.ColumnInt64(index))
	case sqlitec.StorageFloat:
		return FloatValue(eng.ColumnFloat64(index))
	case sqlitec.StorageText:
		return TextValue(eng.ColumnText(index))
	case sqlitec.StorageBlob:
		return BlobValue(r.Blob(index))
	default:
		return Null
	}
}

// Values materializes every column of the current row.
func (r *Row) Values() []Value {
	n := r.stmt.eng.ColumnCount()
	values := make([]Value, n)
	for i := range values {
		values[i] = r.Value(i)
	}
	return values
}

// Snapshot is a fully materialized copy of one row: an ordered sequence
// of Values plus a name index. It holds no reference to the statement,
// so it stays valid across subsequent Step calls (and after the
// statement is finalized). Name lookup is case-insensitive; duplicate
// column names resolve to the first occurrence.
type Snapshot struct {
	values []Value
	names  []string
	byName map[string]int
}

// newSnapshot scans every column of the statement's current row once.
func newSnapshot(s *Stmt) *Snapshot {
	row := Row{stmt: s}
	n := s.eng.ColumnCount()

	snap := &Snapshot{
		values: make([]Value, n),
		names:  make([]string, n),
		byName: make(map[string]int, n),
	}
	for i := 0; i < n; i++ {
		snap.values[i] = row.Value(i)
		name := s.eng.ColumnName(i)
		snap.names[i] = name
		key := strings.ToLower(name)
		if _, exists := snap.byName[key]; !exists {
			snap.byName[key] = i
		}
	}
	return snap
}

// Len returns the number of columns in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.values)
}

// Name returns the column name at the given index.
func (s *Snapshot) Name(index int) string {
	return s.names[index]
}

// Index resolves a column name case-insensitively to its index.
func (s *Snapshot) Index(name string) (int, bool) {
	i, ok := s.byName[strings.ToLower(name)]
	return i, ok
}

// Value returns the column value at the given index. An index outside
// the snapshot is a caller defect and panics.
func (s *Snapshot) Value(index int) Value {
	if index < 0 || index >= len(s.values) {
		panic(fmt.Sprintf("typelite: column index %d out of range (%d columns)", index, len(s.values)))
	}
	return s.values[index]
}

// Lookup is the nilable named accessor: it returns false when no column
// matches the name.
func (s *Snapshot) Lookup(name string) (Value, bool) {
	i, ok := s.Index(name)
	if !ok {
		return Null, false
	}
	return s.values[i], true
}

// Get returns the value of the named column. A name absent from the row
// indicates a caller/schema mismatch and panics; use Lookup when the
// column may legitimately be missing.
func (s *Snapshot) Get(name string) Value {
	v, ok := s.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("typelite: no column named %q in row %v", name, s.names))
	}
	return v
}

// ScanStruct decodes the snapshot into a struct. Column names are
// matched against the `db` field tag when present, otherwise against
// the field name case-insensitively. Fields without a matching column
// keep their zero value; a `db:"-"` tag skips the field. Pointer fields
// are left nil for NULL columns.
func (s *Snapshot) ScanStruct(dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("typelite: scan destination must be a non-nil struct pointer, got %T", dst)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("typelite: scan destination must point to a struct, got %T", dst)
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Tag.Get("db")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}

		col, ok := s.Index(name)
		if !ok {
			continue
		}
		if err := assignValue(rv.Field(i), s.values[col]); err != nil {
			return fmt.Errorf("typelite: field %s: %w", field.Name, err)
		}
	}
	return nil
}

// assignValue stores a column value into a struct field, converting
// through the convenience layer.
func assignValue(field reflect.Value, v Value) error {
	if field.Kind() == reflect.Pointer {
		if v.IsNull() {
			field.SetZero()
			return nil
		}
		elem := reflect.New(field.Type().Elem())
		if err := assignValue(elem.Elem(), v); err != nil {
			return err
		}
		field.Set(elem)
		return nil
	}

	if v.IsNull() {
		field.SetZero()
		return nil
	}

	switch field.Kind() {
	case reflect.Bool:
		n, ok := v.AsInt64()
		if !ok {
			return fmt.Errorf("cannot convert %s value to bool", v.Type().Value)
		}
		field.SetBool(n != 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := v.AsInt64()
		if !ok {
			return fmt.Errorf("cannot convert %s value to integer", v.Type().Value)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := v.AsInt64()
		if !ok {
			return fmt.Errorf("cannot convert %s value to integer", v.Type().Value)
		}
		field.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		f, ok := v.AsFloat()
		if !ok {
			return fmt.Errorf("cannot convert %s value to float", v.Type().Value)
		}
		field.SetFloat(f)
	case reflect.String:
		str, ok := v.AsText()
		if !ok {
			return fmt.Errorf("cannot convert %s value to string", v.Type().Value)
		}
		field.SetString(str)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.Uint8 {
			return fmt.Errorf("unsupported slice type %s", field.Type())
		}
		if b, ok := v.AsBlob(); ok {
			field.SetBytes(b)
			return nil
		}
		if str, ok := v.AsText(); ok {
			field.SetBytes([]byte(str))
			return nil
		}
		return fmt.Errorf("cannot convert %s value to bytes", v.Type().Value)
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}
