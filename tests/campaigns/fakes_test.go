package campaigns_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/societyfixer/hustings/pkg/lifecycle"
	"github.com/societyfixer/hustings/pkg/storage"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore records Remove calls and satisfies the storage contract without
// touching a blob service.
type fakeStore struct {
	mu      sync.Mutex
	removed []storage.Ref
}

func (f *fakeStore) Start(lc *lifecycle.Coordinator) error { return nil }

func (f *fakeStore) Upload(ctx context.Context, bucket, key string, reader io.Reader, contentType string) error {
	return nil
}

func (f *fakeStore) Download(ctx context.Context, bucket, key string) (io.ReadCloser, string, error) {
	return nil, "", storage.ErrNotFound
}

func (f *fakeStore) Delete(ctx context.Context, bucket, key string) error { return nil }

func (f *fakeStore) Remove(ctx context.Context, refs []storage.Ref) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, refs...)
}

func (f *fakeStore) Exists(ctx context.Context, bucket, key string) (bool, error) {
	return false, nil
}

func (f *fakeStore) Buckets() []string {
	return []string{"candidate-portraits", "candidate-resumes"}
}

func (f *fakeStore) removedRefs() []storage.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]storage.Ref, len(f.removed))
	copy(out, f.removed)
	return out
}

type classifierFunc func(ctx context.Context, text string) (string, error)

func (f classifierFunc) Classify(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// recordedQuery captures one statement issued against the fake connection.
type recordedQuery struct {
	query string
	args  []driver.Value
}

// fakeConn is a minimal database/sql driver connection serving queued row
// sets. Queries pop the next row set; execs consume execErr once set.
type fakeConn struct {
	mu       sync.Mutex
	rowSets  [][][]driver.Value
	cols     []string
	execErr  error
	rowCount int64
	queries  []recordedQuery
	execs    []recordedQuery
}

func (c *fakeConn) record(nv []driver.NamedValue) []driver.Value {
	vals := make([]driver.Value, len(nv))
	for i, v := range nv {
		vals[i] = v.Value
	}
	return vals
}

func (c *fakeConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queries = append(c.queries, recordedQuery{query: query, args: c.record(args)})

	if len(c.rowSets) == 0 {
		return &fakeRows{cols: c.cols}, nil
	}

	rows := c.rowSets[0]
	c.rowSets = c.rowSets[1:]
	return &fakeRows{cols: c.cols, data: rows}, nil
}

func (c *fakeConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.execs = append(c.execs, recordedQuery{query: query, args: c.record(args)})

	if c.execErr != nil {
		return nil, c.execErr
	}
	return driver.RowsAffected(c.rowCount), nil
}

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements not supported")
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) { return fakeTx{}, nil }

func (c *fakeConn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	return fakeTx{}, nil
}

type fakeTx struct{}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type fakeRows struct {
	cols []string
	data [][]driver.Value
	i    int
}

func (r *fakeRows) Columns() []string { return r.cols }
func (r *fakeRows) Close() error      { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.i >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.i])
	r.i++
	return nil
}

type fakeConnector struct {
	conn *fakeConn
}

func (c fakeConnector) Connect(ctx context.Context) (driver.Conn, error) { return c.conn, nil }
func (c fakeConnector) Driver() driver.Driver                            { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(name string) (driver.Conn, error) { return nil, driver.ErrBadConn }

var campaignColumns = []string{
	"id", "user_id", "candidate_name", "portrait_url", "election_name",
	"election_deadline", "election_region", "scope", "position_name",
	"proposed_policies", "political_party", "gender", "date_of_birth",
	"religion", "resume_url", "contact_email", "social_media_url",
	"created_at", "updated_at",
}

// campaignRow builds a driver row for the standard column order.
func campaignRow(id, owner uuid.UUID, portraitURL, resumeURL string) []driver.Value {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return []driver.Value{
		id.String(),
		owner.String(),
		"Ada Osei",
		portraitURL,
		"City Council 2026",
		nil,
		"Ward 4",
		"Local",
		"Council Member",
		"<p>Lower taxes</p>",
		"Independent",
		"",
		"",
		"",
		resumeURL,
		"ada@example.com",
		"",
		now,
		now,
	}
}

// queueRows appends one row set to be served by the next query.
func queueRows(conn *fakeConn, rows ...[]driver.Value) {
	conn.rowSets = append(conn.rowSets, rows)
}

func newFakeDB(conn *fakeConn) *sql.DB {
	if conn.cols == nil {
		conn.cols = campaignColumns
	}
	if conn.rowCount == 0 {
		conn.rowCount = 1
	}
	return sql.OpenDB(fakeConnector{conn: conn})
}
