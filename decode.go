package typelite

// RowScanner is implemented by record types that can populate themselves
// from one materialized row.
type RowScanner interface {
	ScanRow(row *Snapshot) error
}

// FetchOne steps the statement once and decodes the row into a fresh T.
// It returns false with no error when the statement is exhausted.
func FetchOne[T any, PT interface {
	*T
	RowScanner
}](stmt *Stmt) (T, bool, error) {
	var out T

	hasRow, err := stmt.Step()
	if err != nil || !hasRow {
		return out, false, err
	}

	snap, err := stmt.Snapshot()
	if err != nil {
		return out, false, err
	}
	if err := PT(&out).ScanRow(snap); err != nil {
		return out, false, err
	}
	return out, true, nil
}

// FetchN repeatedly steps the statement and decodes rows until n
// entities have been produced or the statement is exhausted, whichever
// comes first. A negative n decodes every remaining row.
func FetchN[T any, PT interface {
	*T
	RowScanner
}](stmt *Stmt, n int) ([]T, error) {
	var out []T
	for n < 0 || len(out) < n {
		entity, ok, err := FetchOne[T, PT](stmt)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, entity)
	}
	return out, nil
}

// FetchAll decodes every remaining row of the statement.
func FetchAll[T any, PT interface {
	*T
	RowScanner
}](stmt *Stmt) ([]T, error) {
	return FetchN[T, PT](stmt, -1)
}

// Query prepares the SQL, binds args positionally, and scans every
// result row into a slice of T via Snapshot.ScanStruct. T must be a
// struct; columns map to `db` tags or case-insensitive field names.
func Query[T any](conn *Conn, sql string, args ...any) ([]T, error) {
	stmt, err := conn.Prepare(sql)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	if err := stmt.Bind(args...); err != nil {
		return nil, err
	}

	var out []T
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, err
		}
		if !hasRow {
			return out, nil
		}

		snap, err := stmt.Snapshot()
		if err != nil {
			return nil, err
		}
		var entity T
		if err := snap.ScanStruct(&entity); err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
}

// Get is like Query but decodes at most the first row. The second
// return value reports whether a row was found.
func Get[T any](conn *Conn, sql string, args ...any) (T, bool, error) {
	var out T

	stmt, err := conn.Prepare(sql)
	if err != nil {
		return out, false, err
	}
	defer stmt.Close()

	if err := stmt.Bind(args...); err != nil {
		return out, false, err
	}

	hasRow, err := stmt.Step()
	if err != nil || !hasRow {
		return out, false, err
	}

	snap, err := stmt.Snapshot()
	if err != nil {
		return out, false, err
	}
	if err := snap.ScanStruct(&out); err != nil {
		return out, false, err
	}
	return out, true, nil
}
