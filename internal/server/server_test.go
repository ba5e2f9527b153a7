package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/raysh454/apiprobe/internal/catalog"
	"github.com/raysh454/apiprobe/internal/employee"
	"github.com/raysh454/apiprobe/internal/executor"
	"github.com/raysh454/apiprobe/internal/server"
	"github.com/raysh454/apiprobe/internal/testutil"
	"github.com/raysh454/apiprobe/internal/webclient"
)

func newTestServer(t *testing.T, client webclient.WebClient, api http.Handler) *server.Server {
	t.Helper()

	logger := &testutil.DummyLogger{}
	if client == nil {
		client = &testutil.DummyWebClient{}
	}
	s, err := server.NewServer(server.Config{ListenAddr: ":0"}, executor.New(client, logger), catalog.Default(), api, logger)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func doJSON(t *testing.T, s http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON response: %v (body: %s)", err, rec.Body.String())
	}
}

type executeReply struct {
	ID      string `json:"id"`
	OK      bool   `json:"ok"`
	Outcome struct {
		Response *struct {
			StatusCode int `json:"statusCode"`
			Payload    any `json:"payload"`
		} `json:"response"`
		Failure *struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"failure"`
	} `json:"outcome"`
	Rendered string `json:"rendered"`
	Error    string `json:"error"`
}

func TestNewServer_RequiresExecutor(t *testing.T) {
	t.Parallel()
	if _, err := server.NewServer(server.Config{}, nil, nil, nil, nil); err == nil {
		t.Fatal("expected error for nil executor")
	}
}

// ─── CORS ──────────────────────────────────────────────────────────────

func TestServer_CORS_HeaderPresent(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/console/catalog", nil)
	req.Header.Set("Origin", "http://example.test")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("expected CORS origin *, got %q", origin)
	}
}

func TestServer_CORS_Preflight(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/console/execute", nil)
	req.Header.Set("Origin", "http://example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost) {
		t.Errorf("POST not allowed: %q", rec.Header().Get("Access-Control-Allow-Methods"))
	}
}

// ─── Page & catalog ────────────────────────────────────────────────────

func TestServer_IndexAndScript(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil, nil)

	rec := doJSON(t, s, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "apiprobe console") {
		t.Fatalf("index: %d %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, s, http.MethodGet, "/static/app.js", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/ws/console") {
		t.Fatalf("app.js: %d", rec.Code)
	}
}

func TestServer_Catalog(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil, nil)

	rec := doJSON(t, s, http.MethodGet, "/console/catalog", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got struct {
		Methods   []string                      `json:"methods"`
		BaseURL   string                        `json:"baseUrl"`
		Endpoints map[string][]catalog.Endpoint `json:"endpoints"`
		Bodies    map[string]string             `json:"bodies"`
	}
	decodeJSON(t, rec, &got)

	if strings.Join(got.Methods, ",") != "GET,POST,PUT,DELETE" {
		t.Errorf("methods = %v", got.Methods)
	}
	if got.BaseURL != catalog.DefaultBaseURL {
		t.Errorf("baseUrl = %q", got.BaseURL)
	}
	if len(got.Endpoints["GET"]) != 4 {
		t.Errorf("expected 4 GET endpoints, got %d", len(got.Endpoints["GET"]))
	}
	if !strings.Contains(got.Bodies["POST"], "John Doe") {
		t.Errorf("POST sample body = %q", got.Bodies["POST"])
	}
}

// ─── Execute ───────────────────────────────────────────────────────────

func TestServer_Execute_Success(t *testing.T) {
	t.Parallel()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"name":"John Doe"}`))
	}))
	defer upstream.Close()

	client, err := webclient.NewNetHTTPClient(webclient.Config{}, nil, upstream.Client())
	if err != nil {
		t.Fatal(err)
	}
	s := newTestServer(t, client, nil)

	rec := doJSON(t, s, http.MethodPost, "/console/execute",
		`{"method":"post","baseUrl":"`+upstream.URL+`","endpoint":"/employees","body":"{\"a\":1}"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got executeReply
	decodeJSON(t, rec, &got)

	if got.ID == "" {
		t.Error("expected an execution id")
	}
	if !got.OK || got.Outcome.Response == nil || got.Outcome.Response.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected outcome: %+v", got)
	}
	if !strings.Contains(got.Rendered, `"statusCode": 201`) {
		t.Errorf("rendered = %s", got.Rendered)
	}
}

func TestServer_Execute_InvalidBodyIsFailure(t *testing.T) {
	t.Parallel()
	client := &testutil.DummyWebClient{}
	s := newTestServer(t, client, nil)

	rec := doJSON(t, s, http.MethodPost, "/console/execute",
		`{"id":"abc","method":"PUT","endpoint":"/employees/1","body":"{not json"}`)
	var got executeReply
	decodeJSON(t, rec, &got)

	if got.ID != "abc" {
		t.Errorf("id = %q, want caller's id", got.ID)
	}
	if got.Outcome.Failure == nil || got.Outcome.Failure.Kind != "validation" {
		t.Fatalf("expected validation failure, got %+v", got.Outcome)
	}
	if got.Rendered != "Error: "+executor.InvalidBodyMessage {
		t.Errorf("rendered = %q", got.Rendered)
	}
	if client.Calls() != 0 {
		t.Errorf("expected no outbound calls, got %d", client.Calls())
	}
}

func TestServer_Execute_RejectsBadInput(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil, nil)

	if rec := doJSON(t, s, http.MethodPost, "/console/execute", `{`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad JSON: expected 400, got %d", rec.Code)
	}
	rec := doJSON(t, s, http.MethodPost, "/console/execute", `{"method":"PATCH","endpoint":"/x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad method: expected 400, got %d", rec.Code)
	}
}

func TestServer_Execute_DefaultsBaseURL(t *testing.T) {
	t.Parallel()
	client := &testutil.DummyWebClient{}
	s := newTestServer(t, client, nil)

	doJSON(t, s, http.MethodPost, "/console/execute", `{"method":"GET","endpoint":"/health"}`)
	if client.Calls() != 1 {
		t.Fatalf("expected 1 call, got %d", client.Calls())
	}
	if got := client.Requests[0].URL; got != catalog.DefaultBaseURL+"/health" {
		t.Errorf("url = %q", got)
	}
}

// ─── Diff ──────────────────────────────────────────────────────────────

func TestServer_Diff(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil, nil)

	rec := doJSON(t, s, http.MethodPost, "/console/diff", `{"base":"a\nb\n","head":"a\nc\n"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got struct {
		Chunks  []struct{ Type, Content string } `json:"chunks"`
		Unified string                           `json:"unified"`
	}
	decodeJSON(t, rec, &got)
	if len(got.Chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %+v", got.Chunks)
	}
	if got.Unified != "- b\n+ c" {
		t.Errorf("unified = %q", got.Unified)
	}
}

// ─── WebSocket ─────────────────────────────────────────────────────────

func dialConsole(t *testing.T, s http.Handler) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/console", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestServer_ConsoleWS_RepliesAsTheyResolve(t *testing.T) {
	t.Parallel()
	client := &testutil.DummyWebClient{
		Handler: func(req *webclient.Request) (*webclient.Response, error) {
			if strings.HasSuffix(req.URL, "/slow") {
				time.Sleep(200 * time.Millisecond)
			}
			return testutil.JSONResponse(req, http.StatusOK, `{"path":"`+req.URL+`"}`), nil
		},
	}
	conn := dialConsole(t, newTestServer(t, client, nil))

	for _, msg := range []string{
		`{"id":"slow","request":{"method":"GET","baseUrl":"http://x","endpoint":"/slow"}}`,
		`{"id":"fast","request":{"method":"GET","baseUrl":"http://x","endpoint":"/fast"}}`,
	} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var order []string
	for range 2 {
		var got executeReply
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatalf("read: %v", err)
		}
		if !got.OK {
			t.Errorf("reply %s not ok: %s", got.ID, got.Rendered)
		}
		order = append(order, got.ID)
	}
	if strings.Join(order, ",") != "fast,slow" {
		t.Errorf("expected fast reply first, got %v", order)
	}
}

func TestServer_ConsoleWS_BadFrames(t *testing.T) {
	t.Parallel()
	conn := dialConsole(t, newTestServer(t, nil, nil))
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`not json`)); err != nil {
		t.Fatal(err)
	}
	var got executeReply
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Error != "invalid JSON" {
		t.Errorf("error = %q", got.Error)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"id":"x","request":{"method":"HEAD"}}`)); err != nil {
		t.Fatal(err)
	}
	got = executeReply{}
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.ID != "x" || !strings.Contains(got.Error, "unsupported method") {
		t.Errorf("unexpected reply %+v", got)
	}
}

// ─── Demo API ──────────────────────────────────────────────────────────

func TestServer_MountsEmployeeAPIAndSwagger(t *testing.T) {
	t.Parallel()
	store, err := employee.OpenSQLite(":memory:", nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	s := newTestServer(t, nil, employee.NewHandler(store, nil).Routes())

	rec := doJSON(t, s, http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "healthy") {
		t.Fatalf("health: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodGet, "/swagger/doc.json", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/employees/by-number/{number}") {
		t.Fatalf("swagger doc: %d", rec.Code)
	}
}

func TestServer_NoEmployeeAPIByDefault(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil, nil)
	if rec := doJSON(t, s, http.MethodGet, "/api/v1/health", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
