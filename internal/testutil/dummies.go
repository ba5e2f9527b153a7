// Package testutil holds the fakes shared by package tests.
package testutil

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/raysh454/apiprobe/internal/logging"
	"github.com/raysh454/apiprobe/internal/webclient"
)

// ─── Logger ────────────────────────────────────────────────────────────

// LogEntry is one recorded log call.
type LogEntry struct {
	Level  logging.Level
	Msg    string
	Fields []logging.Field
}

// DummyLogger records every call in memory. Children from With share the
// parent's record.
type DummyLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

func (l *DummyLogger) record(level logging.Level, msg string, fields []logging.Field) {
	l.mu.Lock()
	l.entries = append(l.entries, LogEntry{Level: level, Msg: msg, Fields: fields})
	l.mu.Unlock()
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.record(logging.LevelDebug, msg, fields)
}
func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.record(logging.LevelInfo, msg, fields)
}
func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.record(logging.LevelWarn, msg, fields)
}
func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.record(logging.LevelError, msg, fields)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// Messages returns the messages logged at level, oldest first.
func (l *DummyLogger) Messages(level logging.Level) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.entries {
		if e.Level == level {
			out = append(out, e.Msg)
		}
	}
	return out
}

// Entries returns a copy of everything recorded so far.
func (l *DummyLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

// ─── WebClient ─────────────────────────────────────────────────────────

// JSONResponse builds a response the way the nethttp backend would for a
// JSON reply.
func JSONResponse(req *webclient.Request, status int, body string) *webclient.Response {
	return &webclient.Response{
		Request:    req,
		StatusCode: status,
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(body),
		FetchedAt:  time.Now(),
	}
}

// DummyWebClient is a scripted WebClient. Without a Handler every request
// gets 200 `{"ok":true}`.
type DummyWebClient struct {
	ResponseDelay time.Duration
	Handler       func(req *webclient.Request) (*webclient.Response, error)

	mu       sync.Mutex
	Requests []*webclient.Request
}

func (d *DummyWebClient) Do(ctx context.Context, req *webclient.Request) (*webclient.Response, error) {
	if d.ResponseDelay > 0 {
		t := time.NewTimer(d.ResponseDelay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	d.mu.Lock()
	d.Requests = append(d.Requests, req)
	d.mu.Unlock()

	if d.Handler != nil {
		return d.Handler(req)
	}
	return JSONResponse(req, http.StatusOK, `{"ok":true}`), nil
}

// Calls returns how many requests reached the client.
func (d *DummyWebClient) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Requests)
}

func (d *DummyWebClient) Close() error { return nil }
