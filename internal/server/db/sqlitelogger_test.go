package db

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"testing"
)

// captureHandler records log records for assertion in tests.
type captureHandler struct {
	mu      sync.Mutex
	records []map[string]slog.Value
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *captureHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := make(map[string]slog.Value)
	m["msg"] = slog.StringValue(r.Message)
	r.Attrs(func(a slog.Attr) bool {
		m[a.Key] = a.Value
		return true
	})
	h.records = append(h.records, m)
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }

func (h *captureHandler) WithGroup(name string) slog.Handler { return h }

func (h *captureHandler) sqlRecords() []map[string]slog.Value {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []map[string]slog.Value
	for _, m := range h.records {
		if m["msg"].String() == "sql" {
			out = append(out, m)
		}
	}
	return out
}

func TestLoggingConnector_LogsStatements(t *testing.T) {
	h := &captureHandler{}
	logger := slog.New(h)

	connector, err := NewLoggingConnector(":memory:", logger)
	if err != nil {
		t.Fatalf("NewLoggingConnector: %v", err)
	}
	conn := sql.OpenDB(connector)
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			t.Fatalf("close db: %v", closeErr)
		}
	}()

	if _, err := conn.Exec(`CREATE TABLE t (x INTEGER)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := conn.Exec(`INSERT INTO t (x) VALUES (?)`, 42); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var x int
	if err := conn.QueryRow(`SELECT x FROM t`).Scan(&x); err != nil {
		t.Fatalf("select: %v", err)
	}
	if x != 42 {
		t.Fatalf("x = %d; want 42", x)
	}

	recs := h.sqlRecords()
	if len(recs) < 3 {
		t.Fatalf("got %d sql log records, want at least 3", len(recs))
	}
	var sawInsert bool
	for _, m := range recs {
		if m["sql"].String() == `INSERT INTO t (x) VALUES (?)` {
			sawInsert = true
			if m["op"].String() != "exec" {
				t.Errorf("insert op = %q; want exec", m["op"].String())
			}
		}
	}
	if !sawInsert {
		t.Error("insert statement was not logged")
	}
}

func TestLoggingConnector_NilLoggerUsesDefault(t *testing.T) {
	connector, err := NewLoggingConnector(":memory:", nil)
	if err != nil {
		t.Fatalf("NewLoggingConnector: %v", err)
	}
	if connector == nil {
		t.Fatal("NewLoggingConnector returned nil connector")
	}
}

func TestLoggingDriver_OpenRejected(t *testing.T) {
	d := &loggingDriver{}
	if _, err := d.Open(":memory:"); err == nil {
		t.Fatal("Open should fail; use sql.OpenDB with the connector")
	}
}
