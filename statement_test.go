package typelite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestConn(t *testing.T) *Conn {
	t.Helper()
	conn, err := Open(InMemory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestStatement(t *testing.T) {
	t.Run("BindStepRoundTrip", func(t *testing.T) {
		conn := openTestConn(t)
		require.NoError(t, conn.Exec("CREATE TABLE rt (i32 INTEGER, i64 INTEGER, f REAL, t TEXT, b BLOB)"))

		ins, err := conn.Prepare("INSERT INTO rt VALUES (?, ?, ?, ?, ?)")
		require.NoError(t, err)
		defer ins.Close()

		require.NoError(t, ins.BindInt32(0, -7))
		require.NoError(t, ins.BindInt64(1, 1<<40))
		require.NoError(t, ins.BindFloat(2, 2.75))
		require.NoError(t, ins.BindText(3, "hola"))
		require.NoError(t, ins.BindBlob(4, []byte{0xca, 0xfe}))
		require.NoError(t, ins.Execute())

		sel, err := conn.Prepare("SELECT i32, i64, f, t, b FROM rt")
		require.NoError(t, err)
		defer sel.Close()

		hasRow, err := sel.Step()
		require.NoError(t, err)
		require.True(t, hasRow)

		row := sel.Row()
		assert.Equal(t, int32(-7), row.Int32(0))
		assert.Equal(t, int64(1<<40), row.Int64(1))
		assert.Equal(t, 2.75, row.Float(2))
		assert.Equal(t, "hola", row.Text(3))
		assert.Equal(t, []byte{0xca, 0xfe}, row.Blob(4))
	})

	t.Run("StepExactlyNTimesThenFalse", func(t *testing.T) {
		conn := openTestConn(t)
		require.NoError(t, conn.Exec("CREATE TABLE n (v INTEGER)"))
		require.NoError(t, conn.Exec("INSERT INTO n VALUES (1), (2), (3)"))

		stmt, err := conn.Prepare("SELECT v FROM n")
		require.NoError(t, err)
		defer stmt.Close()

		rows := 0
		for {
			hasRow, err := stmt.Step()
			require.NoError(t, err)
			if !hasRow {
				break
			}
			rows++
		}
		assert.Equal(t, 3, rows)

		// Stepping after exhaustion keeps returning false, no error.
		for range 3 {
			hasRow, err := stmt.Step()
			assert.NoError(t, err)
			assert.False(t, hasRow)
		}
	})

	t.Run("ResetReproducesRows", func(t *testing.T) {
		conn := openTestConn(t)
		require.NoError(t, conn.Exec("CREATE TABLE r (v INTEGER)"))
		require.NoError(t, conn.Exec("INSERT INTO r VALUES (10), (20)"))

		stmt, err := conn.Prepare("SELECT v FROM r ORDER BY v")
		require.NoError(t, err)
		defer stmt.Close()

		readAll := func() []int64 {
			var got []int64
			for {
				hasRow, err := stmt.Step()
				require.NoError(t, err)
				if !hasRow {
					break
				}
				got = append(got, stmt.Row().Int64(0))
			}
			return got
		}

		first := readAll()
		require.NoError(t, stmt.Reset())
		second := readAll()
		assert.Equal(t, first, second)
		assert.Equal(t, []int64{10, 20}, second)
	})

	t.Run("ResetKeepsBindingsClearRemovesThem", func(t *testing.T) {
		conn := openTestConn(t)

		stmt, err := conn.Prepare("SELECT ?, ?")
		require.NoError(t, err)
		defer stmt.Close()

		require.NoError(t, stmt.Bind(int64(5), "x"))

		hasRow, err := stmt.Step()
		require.NoError(t, err)
		require.True(t, hasRow)
		assert.Equal(t, int64(5), stmt.Row().Int64(0))

		require.NoError(t, stmt.Reset())
		hasRow, err = stmt.Step()
		require.NoError(t, err)
		require.True(t, hasRow)
		assert.Equal(t, int64(5), stmt.Row().Int64(0))
		assert.Equal(t, "x", stmt.Row().Text(1))

		// Full reuse idiom: Reset then ClearBindings, then bind a subset.
		require.NoError(t, stmt.Reset())
		require.NoError(t, stmt.ClearBindings())
		require.NoError(t, stmt.BindInt64(0, 9))

		hasRow, err = stmt.Step()
		require.NoError(t, err)
		require.True(t, hasRow)
		row := stmt.Row()
		assert.Equal(t, int64(9), row.Int64(0))
		assert.True(t, row.IsNull(1))
	})

	t.Run("ClearBindingsKeepsExhaustionSticky", func(t *testing.T) {
		conn := openTestConn(t)

		stmt, err := conn.Prepare("SELECT ?")
		require.NoError(t, err)
		defer stmt.Close()

		require.NoError(t, stmt.BindInt64(0, 3))

		hasRow, err := stmt.Step()
		require.NoError(t, err)
		require.True(t, hasRow)

		hasRow, err = stmt.Step()
		require.NoError(t, err)
		require.False(t, hasRow)

		// Clearing bindings must not revive an exhausted statement.
		require.NoError(t, stmt.ClearBindings())

		hasRow, err = stmt.Step()
		assert.NoError(t, err)
		assert.False(t, hasRow)

		// Only Reset makes the statement steppable again, now with the
		// cleared slot reading as NULL.
		require.NoError(t, stmt.Reset())
		hasRow, err = stmt.Step()
		require.NoError(t, err)
		require.True(t, hasRow)
		assert.True(t, stmt.Row().IsNull(0))
	})

	t.Run("BindNullRoundTrip", func(t *testing.T) {
		conn := openTestConn(t)

		stmt, err := conn.Prepare("SELECT ?")
		require.NoError(t, err)
		defer stmt.Close()

		require.NoError(t, stmt.BindNull(0))

		hasRow, err := stmt.Step()
		require.NoError(t, err)
		require.True(t, hasRow)

		row := stmt.Row()
		assert.True(t, row.IsNull(0))
		_, ok := row.GetInt64(0)
		assert.False(t, ok)
	})

	t.Run("NamedBindingExactSigil", func(t *testing.T) {
		conn := openTestConn(t)

		stmt, err := conn.Prepare("SELECT :param")
		require.NoError(t, err)
		defer stmt.Close()

		require.NoError(t, stmt.BindNamed(":param", int64(7)))

		err = stmt.BindNamed("param", int64(7))
		assert.ErrorIs(t, err, ErrParamNotFound)

		err = stmt.BindNamed(":other", int64(7))
		assert.ErrorIs(t, err, ErrParamNotFound)

		hasRow, err := stmt.Step()
		require.NoError(t, err)
		require.True(t, hasRow)
		assert.Equal(t, int64(7), stmt.Row().Int64(0))
	})

	t.Run("BindMap", func(t *testing.T) {
		conn := openTestConn(t)

		stmt, err := conn.Prepare("SELECT :a, @b")
		require.NoError(t, err)
		defer stmt.Close()

		require.NoError(t, stmt.BindMap(map[string]any{
			":a": int64(1),
			"@b": "two",
		}))

		hasRow, err := stmt.Step()
		require.NoError(t, err)
		require.True(t, hasRow)
		row := stmt.Row()
		assert.Equal(t, int64(1), row.Int64(0))
		assert.Equal(t, "two", row.Text(1))

		err = stmt.BindMap(map[string]any{":missing": 1})
		assert.ErrorIs(t, err, ErrParamNotFound)
	})

	t.Run("BindValueDispatch", func(t *testing.T) {
		conn := openTestConn(t)

		stmt, err := conn.Prepare("SELECT ?, ?, ?, ?, ?")
		require.NoError(t, err)
		defer stmt.Close()

		require.NoError(t, stmt.Bind(
			Int64Value(1),
			FloatValue(1.5),
			TextValue("txt"),
			BlobValue([]byte{9}),
			Null,
		))

		hasRow, err := stmt.Step()
		require.NoError(t, err)
		require.True(t, hasRow)

		snap, err := stmt.Snapshot()
		require.NoError(t, err)
		assert.Equal(t, TypeInteger, snap.Value(0).Type())
		assert.Equal(t, TypeFloat, snap.Value(1).Type())
		assert.Equal(t, TypeText, snap.Value(2).Type())
		assert.Equal(t, TypeBlob, snap.Value(3).Type())
		assert.Equal(t, TypeNull, snap.Value(4).Type())
	})

	t.Run("BindUnsupportedType", func(t *testing.T) {
		conn := openTestConn(t)

		stmt, err := conn.Prepare("SELECT ?")
		require.NoError(t, err)
		defer stmt.Close()

		err = stmt.Bind(struct{}{})
		assert.Error(t, err)
	})

	t.Run("ColumnIntrospectionBeforeStepping", func(t *testing.T) {
		conn := openTestConn(t)
		require.NoError(t, conn.Exec("CREATE TABLE meta (Name TEXT, Level INTEGER)"))

		stmt, err := conn.Prepare("SELECT Name, Level FROM meta")
		require.NoError(t, err)
		defer stmt.Close()

		assert.Equal(t, 2, stmt.ColumnCount())
		assert.Equal(t, "Name", stmt.ColumnName(0))
		assert.Equal(t, "Level", stmt.ColumnName(1))
		assert.True(t, stmt.ReadOnly())

		i, ok := stmt.ColumnIndex("Level")
		assert.True(t, ok)
		assert.Equal(t, 1, i)

		// Statement-level lookup is exact and case-sensitive.
		_, ok = stmt.ColumnIndex("level")
		assert.False(t, ok)
	})

	t.Run("UseAfterCloseIsErrStmtFinalized", func(t *testing.T) {
		conn := openTestConn(t)

		stmt, err := conn.Prepare("SELECT 1")
		require.NoError(t, err)
		require.NoError(t, stmt.Close())
		require.NoError(t, stmt.Close()) // idempotent

		_, err = stmt.Step()
		assert.ErrorIs(t, err, ErrStmtFinalized)
		assert.ErrorIs(t, stmt.BindInt64(0, 1), ErrStmtFinalized)
		assert.ErrorIs(t, stmt.Reset(), ErrStmtFinalized)
		assert.ErrorIs(t, stmt.ClearBindings(), ErrStmtFinalized)
	})

	t.Run("ExecuteDiscardsUnexpectedRow", func(t *testing.T) {
		conn := openTestConn(t)

		stmt, err := conn.Prepare("SELECT 1")
		require.NoError(t, err)
		defer stmt.Close()

		assert.NoError(t, stmt.Execute())

		// Exhausted until reset.
		hasRow, err := stmt.Step()
		assert.NoError(t, err)
		assert.False(t, hasRow)

		require.NoError(t, stmt.Reset())
		hasRow, err = stmt.Step()
		assert.NoError(t, err)
		assert.True(t, hasRow)
	})

	t.Run("StepErrorCarriesEngineCode", func(t *testing.T) {
		conn := openTestConn(t)
		require.NoError(t, conn.Exec("CREATE TABLE uniq (v INTEGER PRIMARY KEY)"))
		require.NoError(t, conn.Exec("INSERT INTO uniq VALUES (1)"))

		stmt, err := conn.Prepare("INSERT INTO uniq VALUES (1)")
		require.NoError(t, err)
		defer stmt.Close()

		_, err = stmt.Step()
		require.Error(t, err)

		var typed *Error
		require.True(t, errors.As(err, &typed))
		assert.Equal(t, CodeConstraint, typed.PrimaryCode())
		assert.Equal(t, "step", typed.Op)
	})

	t.Run("SnapshotWithoutRowIsErrNoRow", func(t *testing.T) {
		conn := openTestConn(t)

		stmt, err := conn.Prepare("SELECT 1 WHERE 0")
		require.NoError(t, err)
		defer stmt.Close()

		_, err = stmt.Snapshot()
		assert.ErrorIs(t, err, ErrNoRow)

		hasRow, err := stmt.Step()
		require.NoError(t, err)
		require.False(t, hasRow)

		_, err = stmt.Snapshot()
		assert.ErrorIs(t, err, ErrNoRow)
	})
}
