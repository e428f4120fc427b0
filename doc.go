// Package typelite is a small typed access layer over embedded SQLite.
//
// It wraps the engine's raw statement compilation, parameter binding,
// step-wise row iteration, and column decoding into a statically typed
// API. The engine itself (parsing, planning, storage, transactions) is
// treated as a black box behind the internal C API wrapper.
//
// A typical session compiles SQL into a [Stmt], binds parameters, steps
// row by row, and reads columns either strictly through a live [Row] or
// through a materialized [Snapshot] with case-insensitive named access
// and converting [Value] decoding:
//
//	conn, err := typelite.Open("app.db")
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//
//	stmt, err := conn.Prepare("SELECT name, level FROM players WHERE level >= ?")
//	if err != nil {
//		return err
//	}
//	defer stmt.Close()
//
//	if err := stmt.Bind(80); err != nil {
//		return err
//	}
//	for {
//		hasRow, err := stmt.Step()
//		if err != nil {
//			return err
//		}
//		if !hasRow {
//			break
//		}
//		snap, err := stmt.Snapshot()
//		if err != nil {
//			return err
//		}
//		fmt.Println(snap.Get("Name").String(), snap.Get("LEVEL").String())
//	}
//
// Record types can also be decoded directly, either by implementing
// [RowScanner] and using [FetchOne], [FetchN], and [FetchAll], or with
// the reflection-based [Query] and [Get] helpers.
//
// The layer adds no synchronization of its own: serialize access to a
// connection and its statements yourself, or open the connection with
// [FullMutex] to rely on the engine's serialized threading mode.
package typelite
