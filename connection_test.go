package typelite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnection(t *testing.T) {
	t.Run("OpenCloseInMemory", func(t *testing.T) {
		conn, err := Open(InMemory)
		require.NoError(t, err)
		assert.NoError(t, conn.Close())
		assert.NoError(t, conn.Close()) // idempotent
	})

	t.Run("OpenOnDisk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.db")

		conn, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, conn.Exec("CREATE TABLE t (v INTEGER)"))
		require.NoError(t, conn.Exec("INSERT INTO t VALUES (1)"))
		require.NoError(t, conn.Close())

		// Reopen read-only and observe the data.
		ro, err := Open(path, ReadOnly())
		require.NoError(t, err)
		defer ro.Close()

		stmt, err := ro.Prepare("SELECT v FROM t")
		require.NoError(t, err)
		defer stmt.Close()

		hasRow, err := stmt.Step()
		require.NoError(t, err)
		require.True(t, hasRow)
		assert.Equal(t, int64(1), stmt.Row().Int64(0))

		err = ro.Exec("INSERT INTO t VALUES (2)")
		require.Error(t, err)
		var typed *Error
		require.ErrorAs(t, err, &typed)
		assert.Equal(t, CodeReadOnly, typed.PrimaryCode())
	})

	t.Run("ReadOnlyMissingFileFails", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "missing.db"), ReadOnly())
		assert.Error(t, err)
	})

	t.Run("WithoutCreateMissingFileFails", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "missing.db"), WithoutCreate())
		assert.Error(t, err)
	})

	t.Run("NamedInMemorySharing", func(t *testing.T) {
		location := NamedInMemory("shared_test_db")

		a, err := Open(location, SharedCache())
		require.NoError(t, err)
		defer a.Close()

		b, err := Open(location, SharedCache())
		require.NoError(t, err)
		defer b.Close()

		require.NoError(t, a.Exec("CREATE TABLE shared (v INTEGER)"))
		require.NoError(t, a.Exec("INSERT INTO shared VALUES (5)"))

		stmt, err := b.Prepare("SELECT v FROM shared")
		require.NoError(t, err)
		defer stmt.Close()

		hasRow, err := stmt.Step()
		require.NoError(t, err)
		require.True(t, hasRow)
		assert.Equal(t, int64(5), stmt.Row().Int64(0))
	})

	t.Run("PostOpenQueries", func(t *testing.T) {
		conn, err := Open(InMemory, WithPostOpenQueries([]string{
			"PRAGMA foreign_keys = ON",
			"CREATE TABLE boot (v INTEGER)",
		}))
		require.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("INSERT INTO boot VALUES (1)"))
	})

	t.Run("PostOpenQueryFailureClosesConn", func(t *testing.T) {
		_, err := Open(InMemory, WithPostOpenQueries([]string{"NOT SQL"}))
		assert.Error(t, err)
	})

	t.Run("LastInsertRowIDAndChanges", func(t *testing.T) {
		conn := openTestConn(t)
		require.NoError(t, conn.Exec("CREATE TABLE ids (id INTEGER PRIMARY KEY, v TEXT)"))

		require.NoError(t, conn.Exec("INSERT INTO ids (v) VALUES ('a')"))
		assert.Equal(t, int64(1), conn.LastInsertRowID())

		require.NoError(t, conn.Exec("INSERT INTO ids (v) VALUES ('b'), ('c')"))
		assert.Equal(t, int64(2), conn.Changes())
		assert.Equal(t, int64(3), conn.TotalChanges())
	})

	t.Run("PrepareOnClosedConn", func(t *testing.T) {
		conn, err := Open(InMemory)
		require.NoError(t, err)
		require.NoError(t, conn.Close())

		_, err = conn.Prepare("SELECT 1")
		assert.ErrorIs(t, err, ErrConnClosed)
		assert.ErrorIs(t, conn.Exec("SELECT 1"), ErrConnClosed)
	})

	t.Run("CloseWithOutstandingStatements", func(t *testing.T) {
		conn, err := Open(InMemory)
		require.NoError(t, err)

		stmt, err := conn.Prepare("SELECT 1")
		require.NoError(t, err)
		assert.Equal(t, 1, conn.openStatements())

		// Permitted: the engine defers the final release until the
		// statement finalizes.
		require.NoError(t, conn.Close())

		hasRow, err := stmt.Step()
		require.NoError(t, err)
		assert.True(t, hasRow)
		assert.Equal(t, int64(1), stmt.Row().Int64(0))

		require.NoError(t, stmt.Close())
		assert.Equal(t, 0, conn.openStatements())
	})

	t.Run("InterruptAbortsRunningStep", func(t *testing.T) {
		conn := openTestConn(t)

		// A bounded but very deep recursive scan keeps a single Step
		// busy long enough to be interrupted from another goroutine.
		stmt, err := conn.Prepare(`
			WITH RECURSIVE c(x) AS (
				SELECT 1 UNION ALL SELECT x + 1 FROM c WHERE x < 10000000000
			)
			SELECT count(*) FROM c
		`)
		require.NoError(t, err)
		defer stmt.Close()

		go func() {
			time.Sleep(50 * time.Millisecond)
			conn.Interrupt()
		}()

		_, err = stmt.Step()
		require.Error(t, err)

		var typed *Error
		require.ErrorAs(t, err, &typed)
		assert.True(t, typed.Interrupted())
		assert.Equal(t, CodeInterrupt, typed.PrimaryCode())
	})

	t.Run("WithTxCommit", func(t *testing.T) {
		conn := openTestConn(t)
		require.NoError(t, conn.Exec("CREATE TABLE tx (v INTEGER)"))

		require.NoError(t, conn.WithTx(func() error {
			return conn.Exec("INSERT INTO tx VALUES (1), (2)")
		}))

		count, found, err := Get[struct{ N int64 }](conn, "SELECT COUNT(*) AS n FROM tx")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, int64(2), count.N)
	})

	t.Run("WithTxRollback", func(t *testing.T) {
		conn := openTestConn(t)
		require.NoError(t, conn.Exec("CREATE TABLE tx (v INTEGER)"))

		wantErr := assert.AnError
		err := conn.WithTx(func() error {
			if err := conn.Exec("INSERT INTO tx VALUES (1)"); err != nil {
				return err
			}
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)

		count, found, err := Get[struct{ N int64 }](conn, "SELECT COUNT(*) AS n FROM tx")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, int64(0), count.N)
	})
}
