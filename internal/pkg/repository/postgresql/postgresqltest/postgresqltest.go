// Package postgresqltest backs a postgresql.Database with a scripted
// in-memory driver so repository queries can run without a server. Each
// statement the repository issues consumes the next scripted Result in
// order; the SQL text the driver received is recorded for assertions.
// bun formats queries client-side, so the recorded text is exactly what
// a real server would receive.
package postgresqltest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
	"sync"

	"geoattend/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// Result is one scripted statement outcome. Rows answers queries,
// RowsAffected answers execs, Err fails the statement.
type Result struct {
	Columns      []string
	Rows         [][]driver.Value
	RowsAffected int64
	Err          error
}

// Recorder holds the script and everything the driver has seen.
type Recorder struct {
	mu      sync.Mutex
	results []Result
	queries []string
}

// Queries returns the SQL statements received so far, in order.
func (r *Recorder) Queries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

func (r *Recorder) next(query string) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queries = append(r.queries, query)
	if len(r.results) == 0 {
		return Result{}, errors.Errorf("unscripted statement: %s", query)
	}
	res := r.results[0]
	r.results = r.results[1:]
	return res, res.Err
}

// NewDatabase returns a Database that replays the given results and the
// Recorder to assert against.
func NewDatabase(results ...Result) (*postgresql.Database, *Recorder) {
	rec := &Recorder{results: results}
	sqldb := sql.OpenDB(connector{rec: rec})
	db := bun.NewDB(sqldb, pgdialect.New())
	return &postgresql.Database{DB: db}, rec
}

type connector struct {
	rec *Recorder
}

func (c connector) Connect(context.Context) (driver.Conn, error) {
	return conn{rec: c.rec}, nil
}

func (c connector) Driver() driver.Driver { return drv{} }

type drv struct{}

func (drv) Open(string) (driver.Conn, error) {
	return nil, errors.New("open by name not supported")
}

type conn struct {
	rec *Recorder
}

func (c conn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements not supported")
}

func (c conn) Close() error { return nil }

func (c conn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

func (c conn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	res, err := c.rec.next(query)
	if err != nil {
		return nil, err
	}
	return &rows{columns: res.Columns, rows: res.Rows}, nil
}

func (c conn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	res, err := c.rec.next(query)
	if err != nil {
		return nil, err
	}
	return driver.RowsAffected(res.RowsAffected), nil
}

type rows struct {
	columns []string
	rows    [][]driver.Value
	idx     int
}

func (r *rows) Columns() []string { return r.columns }

func (r *rows) Close() error { return nil }

func (r *rows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}
