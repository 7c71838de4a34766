package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
)

// fakeDriver предоставляет минимальную реализацию драйвера SQL для перехвата
// выполняемых запросов без реальной БД. Ответы на запросы настраиваются
// через пакетные переменные ниже.
type fakeDriver struct{}

type fakeConn struct{}

type fakeResult struct{}

var (
	// executedQueries хранит все запросы, чтобы проверять их содержимое
	executedQueries []string
	// queryErr, queryCols и queryVals задают ответ на ближайший Query
	queryErr  error
	queryCols []string
	queryVals [][]driver.Value
)

func resetFakeDB() {
	executedQueries = nil
	queryErr = nil
	queryCols = nil
	queryVals = nil
}

func (d *fakeDriver) Open(name string) (driver.Conn, error) { return &fakeConn{}, nil }

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("not implemented")
}
func (c *fakeConn) Close() error              { return nil }
func (c *fakeConn) Begin() (driver.Tx, error) { return nil, errors.New("not implemented") }

func (c *fakeConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	executedQueries = append(executedQueries, query)
	return fakeResult{}, nil
}

func (c *fakeConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	executedQueries = append(executedQueries, query)
	if queryErr != nil {
		return nil, queryErr
	}
	return &fakeRows{cols: queryCols, vals: queryVals}, nil
}

func (fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (fakeResult) RowsAffected() (int64, error) { return 1, nil }

type fakeRows struct {
	cols []string
	vals [][]driver.Value
	idx  int
}

func (r *fakeRows) Columns() []string { return r.cols }
func (r *fakeRows) Close() error      { return nil }
func (r *fakeRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.vals) {
		return io.EOF
	}
	copy(dest, r.vals[r.idx])
	r.idx++
	return nil
}

func init() {
	sql.Register("fake", &fakeDriver{})
}

func openFakeDB(t *testing.T) *DB {
	t.Helper()
	resetFakeDB()
	db, err := sql.Open("fake", "")
	if err != nil {
		t.Fatalf("не удалось открыть фейковую БД: %v", err)
	}
	return NewDB(db)
}
