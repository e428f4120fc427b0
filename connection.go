package typelite

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/typelite/typelite/internal/sqlitec"
)

// InMemory is the location of a private, connection-scoped in-memory
// database.
const InMemory = ":memory:"

// NamedInMemory returns the location of a shareable in-memory database.
// Connections opened with the same name and shared cache observe the
// same data.
func NamedInMemory(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}

// TempOnDisk is the location of a temporary on-disk database that is
// deleted when the connection closes.
const TempOnDisk = ""

// Option configures how a connection is opened.
type Option func(*openOptions)

type openOptions struct {
	readOnly     bool
	noCreate     bool
	sharedCache  bool
	privateCache bool
	fullMutex    bool
	noMutex      bool
	busyTimeout  time.Duration
	postOpen     []string
	logger       *slog.Logger
}

// ReadOnly opens the database in read-only mode. Opening fails if the
// database file does not already exist.
func ReadOnly() Option {
	return func(o *openOptions) { o.readOnly = true }
}

// WithoutCreate opens the database read-write but fails if the database
// file does not already exist.
func WithoutCreate() Option {
	return func(o *openOptions) { o.noCreate = true }
}

// SharedCache enables shared-cache mode for this connection.
func SharedCache() Option {
	return func(o *openOptions) { o.sharedCache = true }
}

// PrivateCache disables shared-cache mode for this connection even if
// shared cache is enabled globally.
func PrivateCache() Option {
	return func(o *openOptions) { o.privateCache = true }
}

// FullMutex selects the engine's serialized threading mode for this
// connection.
func FullMutex() Option {
	return func(o *openOptions) { o.fullMutex = true }
}

// NoMutex selects the engine's multi-thread mode for this connection.
// The caller is then responsible for serializing access.
func NoMutex() Option {
	return func(o *openOptions) { o.noMutex = true }
}

// WithBusyTimeout enables the engine's built-in busy handler for the
// given duration.
func WithBusyTimeout(d time.Duration) Option {
	return func(o *openOptions) { o.busyTimeout = d }
}

// WithPostOpenQueries sets a slice of statements to be executed right
// after the connection is established, typically PRAGMAs.
func WithPostOpenQueries(queries []string) Option {
	return func(o *openOptions) { o.postOpen = queries }
}

// WithLogger enables debug-level tracing of prepare and exec calls on
// the given structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *openOptions) { o.logger = logger }
}

// Conn owns one engine handle. It compiles SQL into statements, runs
// one-shot statements, and tracks the statements prepared from it so
// the underlying handle is only fully released once they are all
// finalized.
//
// A Conn adds no synchronization around engine calls; serialize access
// yourself unless the connection was opened with FullMutex.
type Conn struct {
	eng    *sqlitec.Conn
	logger *slog.Logger

	mu     sync.Mutex
	stmts  map[*Stmt]struct{}
	closed bool
}

// Open opens a database at the given location. The location may be a
// filesystem path, InMemory, TempOnDisk, a NamedInMemory location, or
// any "file:" URI understood by the engine.
func Open(location string, opts ...Option) (*Conn, error) {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	flags := sqlitec.OpenReadWrite | sqlitec.OpenCreate
	if o.readOnly {
		flags = sqlitec.OpenReadOnly
	} else if o.noCreate {
		flags = sqlitec.OpenReadWrite
	}
	if strings.HasPrefix(location, "file:") {
		flags |= sqlitec.OpenURI
	}
	if o.sharedCache {
		flags |= sqlitec.OpenSharedCache
	}
	if o.privateCache {
		flags |= sqlitec.OpenPrivateCache
	}
	if o.fullMutex {
		flags |= sqlitec.OpenFullMutex
	}
	if o.noMutex {
		flags |= sqlitec.OpenNoMutex
	}

	eng, err := sqlitec.Open(location, flags)
	if err != nil {
		return nil, wrapEngine("open", err)
	}

	conn := &Conn{
		eng:    eng,
		logger: o.logger,
		stmts:  make(map[*Stmt]struct{}),
	}

	if o.busyTimeout > 0 {
		if err := eng.BusyTimeout(int(o.busyTimeout / time.Millisecond)); err != nil {
			_ = eng.Close()
			return nil, wrapEngine("open", err)
		}
	}

	for _, query := range o.postOpen {
		if err := eng.Exec(query); err != nil {
			_ = eng.Close()
			return nil, wrapEngine("open", fmt.Errorf("post-open query %q: %w", query, err))
		}
	}

	if conn.logger != nil {
		conn.logger.Debug("connection opened", "location", location)
	}
	return conn, nil
}

// Exec executes one-shot SQL without parameter binding and without
// returning rows.
func (c *Conn) Exec(sql string) error {
	if err := c.guard(); err != nil {
		return err
	}
	if c.logger != nil {
		c.logger.Debug("exec", "sql", sql)
	}
	return wrapEngine("exec", c.eng.Exec(sql))
}

// Prepare compiles SQL text into a reusable statement. The statement
// holds a reference to this connection, so the engine handle outlives
// the connection's Close until every statement is finalized.
func (c *Conn) Prepare(sql string) (*Stmt, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}

	eng, err := c.eng.Prepare(sql)
	if err != nil {
		return nil, wrapEngine("prepare", err)
	}
	if c.logger != nil {
		c.logger.Debug("prepare", "sql", sql)
	}

	stmt := &Stmt{
		conn:  c,
		eng:   eng,
		sql:   sql,
		state: stateCompiled,
	}

	c.mu.Lock()
	c.stmts[stmt] = struct{}{}
	c.mu.Unlock()

	return stmt, nil
}

// Close closes the connection. Closing with outstanding statements is
// permitted: the engine handle is released once the last statement is
// finalized.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	outstanding := len(c.stmts)
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Debug("connection closing", "outstandingStatements", outstanding)
	}
	return wrapEngine("close", c.eng.Close())
}

// LastInsertRowID returns the rowid of the most recent successful
// INSERT on this connection.
func (c *Conn) LastInsertRowID() int64 {
	return c.eng.LastInsertRowID()
}

// Changes returns the number of rows modified, inserted, or deleted by
// the most recent statement on this connection.
func (c *Conn) Changes() int64 {
	return c.eng.Changes()
}

// TotalChanges returns the number of rows changed since the connection
// was opened.
func (c *Conn) TotalChanges() int64 {
	return c.eng.TotalChanges()
}

// Interrupt asks the engine to abort the in-flight operation on this
// connection at its next opportunity. The interrupted call fails with
// an Error whose Interrupted method reports true.
func (c *Conn) Interrupt() {
	c.eng.Interrupt()
}

// Begin starts a deferred transaction.
func (c *Conn) Begin() error {
	return c.Exec("BEGIN")
}

// BeginImmediate starts an immediate transaction.
func (c *Conn) BeginImmediate() error {
	return c.Exec("BEGIN IMMEDIATE")
}

// Commit saves all changes made within the current transaction.
func (c *Conn) Commit() error {
	return c.Exec("COMMIT")
}

// Rollback aborts the current transaction without saving changes.
func (c *Conn) Rollback() error {
	return c.Exec("ROLLBACK")
}

// WithTx begins a deferred transaction, calls f, commits if f returns
// nil, and rolls back otherwise.
func (c *Conn) WithTx(f func() error) error {
	if err := c.Begin(); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := f(); err != nil {
		if rbErr := c.Rollback(); rbErr != nil {
			return fmt.Errorf("%w, additionally rolling back transaction failed: %w", err, rbErr)
		}
		return err
	}

	if err := c.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (c *Conn) guard() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnClosed
	}
	return nil
}

// removeStmt drops a finalized statement from the outstanding set.
func (c *Conn) removeStmt(s *Stmt) {
	c.mu.Lock()
	delete(c.stmts, s)
	c.mu.Unlock()
}

// openStatements reports how many statements prepared from this
// connection have not been finalized yet.
func (c *Conn) openStatements() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stmts)
}
