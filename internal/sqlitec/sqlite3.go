package sqlitec

/*
#cgo LDFLAGS: -lsqlite3
#include <stdlib.h>
#include <sqlite3.h>

// cgo cannot express the SQLITE_TRANSIENT pointer constant, so the text
// and blob binders are wrapped in plain C helpers.
static int cust_sqlite3_bind_text(sqlite3_stmt *stmt, int slot, const char *value, int n) {
	return sqlite3_bind_text(stmt, slot, value, n, SQLITE_TRANSIENT);
}

static int cust_sqlite3_bind_blob(sqlite3_stmt *stmt, int slot, const void *value, int n) {
	if (n == 0) {
		return sqlite3_bind_zeroblob(stmt, slot, 0);
	}
	return sqlite3_bind_blob(stmt, slot, value, n, SQLITE_TRANSIENT);
}
*/
import "C"
import (
	"errors"
	"unsafe"
)

// Conn represents a high-level connection to a SQLite database.
//
// https://www.sqlite.org/c3ref/sqlite3.html
type Conn struct {
	cDB *C.sqlite3
}

// Stmt represents a prepared statement in SQLite.
//
// https://www.sqlite.org/c3ref/stmt.html
type Stmt struct {
	conn  *Conn
	cStmt *C.sqlite3_stmt
}

// ErrMsg returns the message of the most recent failed call on this
// connection.
//
// https://www.sqlite.org/c3ref/errcode.html
func (conn *Conn) ErrMsg() string {
	if conn.cDB == nil {
		return ""
	}
	return C.GoString(C.sqlite3_errmsg(conn.cDB))
}

// connError builds an Error for the given result code using the
// connection's last error message.
func (conn *Conn) connError(resCode C.int) error {
	return newError(int(resCode), conn.ErrMsg())
}

// Open opens a new SQLite database connection using the given path and
// SQLITE_OPEN_* flags. Pass 0 to use the default read-write-create mode.
//
// https://www.sqlite.org/c3ref/open.html
func Open(filePath string, flags int) (*Conn, error) {
	cFilePath := C.CString(filePath)
	defer C.free(unsafe.Pointer(cFilePath))

	if flags == 0 {
		flags = OpenReadWrite | OpenCreate
	}

	var db *C.sqlite3
	resCode := C.sqlite3_open_v2(cFilePath, &db, C.int(flags), nil)
	if resCode != C.SQLITE_OK {
		err := (&Conn{cDB: db}).connError(resCode)
		_ = C.sqlite3_close(db)
		return nil, err
	}

	C.sqlite3_extended_result_codes(db, 1)
	return &Conn{cDB: db}, nil
}

// Close finalizes the connection to the SQLite database. If prepared
// statements are still outstanding, the connection becomes a zombie and
// the underlying resources are released once the last statement is
// finalized.
//
// https://www.sqlite.org/c3ref/close.html
func (conn *Conn) Close() error {
	if conn.cDB == nil {
		return nil
	}

	// The sqlite3_close_v2() interface is intended for use with host
	// languages that are garbage collected, and where the order in which
	// destructors are called is arbitrary.
	resCode := C.sqlite3_close_v2(conn.cDB)
	if resCode != C.SQLITE_OK {
		return conn.connError(resCode)
	}
	conn.cDB = nil

	return nil
}

// LastInsertRowID returns the row ID of the most recent successful INSERT
// into the database from the current connection.
//
// https://www.sqlite.org/c3ref/last_insert_rowid.html
func (conn *Conn) LastInsertRowID() int64 {
	return int64(C.sqlite3_last_insert_rowid(conn.cDB))
}

// Changes returns the number of rows modified, inserted, or deleted by
// the most recent successful INSERT, UPDATE, or DELETE statement from the
// current connection.
//
// https://www.sqlite.org/c3ref/changes.html
func (conn *Conn) Changes() int64 {
	return int64(C.sqlite3_changes(conn.cDB))
}

// TotalChanges returns the number of rows changed since the connection
// was opened, including changes caused by triggers and foreign key
// actions.
//
// https://www.sqlite.org/c3ref/total_changes.html
func (conn *Conn) TotalChanges() int64 {
	return int64(C.sqlite3_total_changes(conn.cDB))
}

// Interrupt asks the engine to abort any in-flight operation on this
// connection at its earliest opportunity. The interrupted call fails
// with ResInterrupt.
//
// https://www.sqlite.org/c3ref/interrupt.html
func (conn *Conn) Interrupt() {
	if conn.cDB != nil {
		C.sqlite3_interrupt(conn.cDB)
	}
}

// BusyTimeout enables the built-in busy handler, retrying locked
// operations for up to the given number of milliseconds.
//
// https://www.sqlite.org/c3ref/busy_timeout.html
func (conn *Conn) BusyTimeout(ms int) error {
	resCode := C.sqlite3_busy_timeout(conn.cDB, C.int(ms))
	if resCode != C.SQLITE_OK {
		return conn.connError(resCode)
	}
	return nil
}

// Exec executes the given SQL on the SQLite database connection from
// start to finish, without parameter binding and without returning data.
//
// https://www.sqlite.org/c3ref/exec.html
func (conn *Conn) Exec(query string) error {
	cQuery := C.CString(query)
	defer C.free(unsafe.Pointer(cQuery))

	var cErrMsg *C.char
	resCode := C.sqlite3_exec(conn.cDB, cQuery, nil, nil, &cErrMsg)
	if resCode != C.SQLITE_OK {
		msg := C.GoString(cErrMsg)
		C.sqlite3_free(unsafe.Pointer(cErrMsg))
		return newError(int(resCode), msg)
	}

	return nil
}

// Prepare compiles the given SQL query into a prepared statement.
//
// https://www.sqlite.org/c3ref/prepare.html
func (conn *Conn) Prepare(query string) (*Stmt, error) {
	cQuery := C.CString(query)
	defer C.free(unsafe.Pointer(cQuery))

	var cStmt *C.sqlite3_stmt
	resCode := C.sqlite3_prepare_v2(conn.cDB, cQuery, C.int(-1), &cStmt, nil)
	if resCode != C.SQLITE_OK {
		return nil, conn.connError(resCode)
	}
	return &Stmt{conn: conn, cStmt: cStmt}, nil
}

// ReadOnly returns true if the given SQL query is read-only.
//
// https://www.sqlite.org/c3ref/stmt_readonly.html
func (stmt *Stmt) ReadOnly() bool {
	return C.sqlite3_stmt_readonly(stmt.cStmt) != 0
}

// BindParameterCount returns the number of parameter slots in the
// prepared statement.
//
// https://www.sqlite.org/c3ref/bind_parameter_count.html
func (stmt *Stmt) BindParameterCount() int {
	return int(C.sqlite3_bind_parameter_count(stmt.cStmt))
}

// BindParameterIndex returns the 1-based slot of the named parameter, or
// zero if no parameter with that exact name (sigil included) exists in
// the compiled SQL.
//
// https://www.sqlite.org/c3ref/bind_parameter_index.html
func (stmt *Stmt) BindParameterIndex(name string) int {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	return int(C.sqlite3_bind_parameter_index(stmt.cStmt, cName))
}

// BindParameterName returns the name of the parameter in the given
// 1-based slot, or an empty string for positional parameters.
//
// https://www.sqlite.org/c3ref/bind_parameter_name.html
func (stmt *Stmt) BindParameterName(slot int) string {
	return C.GoString(C.sqlite3_bind_parameter_name(stmt.cStmt, C.int(slot)))
}

// stmtError builds an Error for the given result code using the owning
// connection's last error message.
func (stmt *Stmt) stmtError(resCode C.int) error {
	return newError(int(resCode), stmt.conn.ErrMsg())
}

// BindInt binds an int parameter at the given 1-based slot.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindInt(slot int, value int) error {
	if stmt.cStmt == nil {
		return errors.New("cannot bind to a nil statement")
	}

	resCode := C.sqlite3_bind_int(stmt.cStmt, C.int(slot), C.int(value))
	if resCode != C.SQLITE_OK {
		return stmt.stmtError(resCode)
	}
	return nil
}

// BindInt64 binds an int64 parameter at the given 1-based slot.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindInt64(slot int, value int64) error {
	if stmt.cStmt == nil {
		return errors.New("cannot bind to a nil statement")
	}

	resCode := C.sqlite3_bind_int64(stmt.cStmt, C.int(slot), C.sqlite3_int64(value))
	if resCode != C.SQLITE_OK {
		return stmt.stmtError(resCode)
	}
	return nil
}

// BindFloat64 binds a float64 parameter at the given 1-based slot.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindFloat64(slot int, value float64) error {
	if stmt.cStmt == nil {
		return errors.New("cannot bind to a nil statement")
	}

	resCode := C.sqlite3_bind_double(stmt.cStmt, C.int(slot), C.double(value))
	if resCode != C.SQLITE_OK {
		return stmt.stmtError(resCode)
	}
	return nil
}

// BindText binds a string parameter at the given 1-based slot.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindText(slot int, value string) error {
	if stmt.cStmt == nil {
		return errors.New("cannot bind to a nil statement")
	}
	cStr := C.CString(value)
	defer C.free(unsafe.Pointer(cStr))

	resCode := C.cust_sqlite3_bind_text(stmt.cStmt, C.int(slot), cStr, C.int(len(value)))
	if resCode != C.SQLITE_OK {
		return stmt.stmtError(resCode)
	}
	return nil
}

// BindBlob binds a byte slice parameter at the given 1-based slot. An
// empty slice is bound as a zero-length blob, not as NULL.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindBlob(slot int, data []byte) error {
	if stmt.cStmt == nil {
		return errors.New("cannot bind to a nil statement")
	}

	var dataPtr unsafe.Pointer
	if len(data) > 0 {
		dataPtr = unsafe.Pointer(&data[0])
	}

	resCode := C.cust_sqlite3_bind_blob(stmt.cStmt, C.int(slot), dataPtr, C.int(len(data)))
	if resCode != C.SQLITE_OK {
		return stmt.stmtError(resCode)
	}
	return nil
}

// BindNull binds a NULL value at the given 1-based slot.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindNull(slot int) error {
	if stmt.cStmt == nil {
		return errors.New("cannot bind to a nil statement")
	}

	resCode := C.sqlite3_bind_null(stmt.cStmt, C.int(slot))
	if resCode != C.SQLITE_OK {
		return stmt.stmtError(resCode)
	}
	return nil
}

// Step advances the statement to the next row of data, returning true if
// a new row is available, or false if there are no more rows. Any status
// other than SQLITE_ROW and SQLITE_DONE is returned as an error.
//
// https://www.sqlite.org/c3ref/step.html
func (stmt *Stmt) Step() (bool, error) {
	resCode := C.sqlite3_step(stmt.cStmt)

	if resCode == C.SQLITE_DONE {
		return false, nil
	}

	if resCode == C.SQLITE_ROW {
		return true, nil
	}

	return false, stmt.stmtError(resCode)
}

// Reset returns the statement to its initial state, ready to be
// re-stepped. Bindings are not cleared.
//
// https://www.sqlite.org/c3ref/reset.html
func (stmt *Stmt) Reset() error {
	resCode := C.sqlite3_reset(stmt.cStmt)
	if resCode != C.SQLITE_OK {
		return stmt.stmtError(resCode)
	}
	return nil
}

// ClearBindings sets every parameter slot of the statement back to NULL.
//
// https://www.sqlite.org/c3ref/clear_bindings.html
func (stmt *Stmt) ClearBindings() error {
	resCode := C.sqlite3_clear_bindings(stmt.cStmt)
	if resCode != C.SQLITE_OK {
		return stmt.stmtError(resCode)
	}
	return nil
}

// ColumnCount returns the number of columns produced by the statement.
//
// https://www.sqlite.org/c3ref/column_count.html
func (stmt *Stmt) ColumnCount() int {
	return int(C.sqlite3_column_count(stmt.cStmt))
}

// ColumnName returns the name of the column at the given index.
//
// https://www.sqlite.org/c3ref/column_name.html
func (stmt *Stmt) ColumnName(colIndex int) string {
	return C.GoString(C.sqlite3_column_name(stmt.cStmt, C.int(colIndex)))
}

// ColumnDeclType returns the declared type of the column at the given
// index, or an empty string for expressions and subqueries.
//
// https://www.sqlite.org/c3ref/column_decltype.html
func (stmt *Stmt) ColumnDeclType(colIndex int) string {
	return C.GoString(C.sqlite3_column_decltype(stmt.cStmt, C.int(colIndex)))
}

// ColumnType returns the storage class of the value at the given index
// in the current row: one of StorageInteger, StorageFloat, StorageText,
// StorageBlob, or StorageNull. The result is undefined after a type
// conversion has been applied to the same column.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnType(colIndex int) int {
	return int(C.sqlite3_column_type(stmt.cStmt, C.int(colIndex)))
}

// ColumnInt returns the column value at the given index as int.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnInt(colIndex int) int {
	return int(C.sqlite3_column_int(stmt.cStmt, C.int(colIndex)))
}

// ColumnInt64 returns the column value at the given index as int64.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnInt64(colIndex int) int64 {
	return int64(C.sqlite3_column_int64(stmt.cStmt, C.int(colIndex)))
}

// ColumnFloat64 returns the column value at the given index as float64.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnFloat64(colIndex int) float64 {
	return float64(C.sqlite3_column_double(stmt.cStmt, C.int(colIndex)))
}

// ColumnText returns the column value at the given index as a string.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnText(colIndex int) string {
	text := (*C.char)(unsafe.Pointer(C.sqlite3_column_text(stmt.cStmt, C.int(colIndex))))
	if text == nil {
		return ""
	}
	length := C.sqlite3_column_bytes(stmt.cStmt, C.int(colIndex))
	return C.GoStringN(text, length)
}

// ColumnBlob returns the column value at the given index as a byte
// slice. The bytes are copied out of SQLite-owned memory.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnBlob(colIndex int) []byte {
	size := C.sqlite3_column_bytes(stmt.cStmt, C.int(colIndex))
	if size <= 0 {
		return nil
	}
	dataPtr := C.sqlite3_column_blob(stmt.cStmt, C.int(colIndex))
	if dataPtr == nil {
		return nil
	}
	return C.GoBytes(dataPtr, size)
}

// Finalize frees the resources associated with this statement.
//
// https://www.sqlite.org/c3ref/finalize.html
func (stmt *Stmt) Finalize() error {
	if stmt.cStmt == nil {
		return nil
	}

	resCode := C.sqlite3_finalize(stmt.cStmt)
	if resCode != C.SQLITE_OK {
		return stmt.stmtError(resCode)
	}
	stmt.cStmt = nil

	return nil
}
