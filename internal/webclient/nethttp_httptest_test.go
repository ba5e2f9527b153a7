package webclient_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/raysh454/apiprobe/internal/logging"
	"github.com/raysh454/apiprobe/internal/webclient"
)

func newNetHTTP(t *testing.T, httpClient *http.Client) *webclient.NetHTTPClient {
	t.Helper()
	client, err := webclient.NewNetHTTPClient(webclient.Config{}, logging.NopLogger{}, httpClient)
	if err != nil {
		t.Fatalf("NewNetHTTPClient: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// echoed is what the employee stand-in saw.
type echoed struct {
	method, path, contentType, body string
}

// newEmployeeStandIn answers every request with status and a JSON body and
// reports what it received on the returned channel.
func newEmployeeStandIn(t *testing.T, status int, reply string) (*httptest.Server, <-chan echoed) {
	t.Helper()
	seen := make(chan echoed, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seen <- echoed{r.Method, r.URL.Path, r.Header.Get("Content-Type"), string(b)}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Request-Path", r.URL.Path)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(ts.Close)
	return ts, seen
}

// ─── Construction ──────────────────────────────────────────────────────

func TestNewNetHTTPClient_NoTimeoutUnlessInjected(t *testing.T) {
	t.Parallel()
	if got := newNetHTTP(t, nil).HTTPClient().Timeout; got != 0 {
		t.Errorf("default client timeout = %v, want none", got)
	}

	custom := &http.Client{Timeout: 3 * time.Second}
	if newNetHTTP(t, custom).HTTPClient() != custom {
		t.Error("injected *http.Client was not used")
	}
}

// ─── Round trips ───────────────────────────────────────────────────────

func TestNetHTTPClient_Do_GetEmployee(t *testing.T) {
	t.Parallel()
	ts, seen := newEmployeeStandIn(t, http.StatusOK, `{"employee":{"id":1}}`)
	client := newNetHTTP(t, ts.Client())

	resp, err := client.Do(context.Background(), &webclient.Request{Method: "get", URL: ts.URL + "/api/v1/employees/1"})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := <-seen
	if got.method != http.MethodGet || got.path != "/api/v1/employees/1" || got.body != "" {
		t.Errorf("server saw %+v", got)
	}
	if resp.StatusCode != http.StatusOK || resp.StatusText() != "OK" {
		t.Errorf("status = %d %q", resp.StatusCode, resp.StatusText())
	}
	if string(resp.Body) != `{"employee":{"id":1}}` {
		t.Errorf("body = %q", resp.Body)
	}
	if resp.Headers.Get("X-Request-Path") != "/api/v1/employees/1" {
		t.Errorf("response headers not kept: %v", resp.Headers)
	}
}

func TestNetHTTPClient_Do_PutSendsBodyAndHeaders(t *testing.T) {
	t.Parallel()
	ts, seen := newEmployeeStandIn(t, http.StatusOK, `{}`)
	client := newNetHTTP(t, ts.Client())

	headers := http.Header{"Content-Type": []string{"application/json"}}
	_, err := client.Do(context.Background(), &webclient.Request{
		Method:  "PUT",
		URL:     ts.URL + "/employees/1",
		Headers: headers,
		Body:    []byte(`{"employee_city":"Los Angeles"}`),
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := <-seen
	want := echoed{http.MethodPut, "/employees/1", "application/json", `{"employee_city":"Los Angeles"}`}
	if got != want {
		t.Errorf("server saw %+v, want %+v", got, want)
	}
	if len(headers) != 1 {
		t.Errorf("caller headers were modified: %v", headers)
	}
}

func TestNetHTTPClient_Do_NonSuccessStatusIsAResponse(t *testing.T) {
	t.Parallel()
	for _, code := range []int{http.StatusCreated, http.StatusBadRequest, http.StatusNotFound, http.StatusConflict, http.StatusInternalServerError} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			t.Parallel()
			ts, _ := newEmployeeStandIn(t, code, `{"error":"x"}`)
			resp, err := newNetHTTP(t, ts.Client()).Do(context.Background(), &webclient.Request{Method: "GET", URL: ts.URL})
			if err != nil {
				t.Fatalf("Do: %v", err)
			}
			if resp.StatusCode != code || resp.StatusText() != http.StatusText(code) {
				t.Errorf("got %d %q", resp.StatusCode, resp.StatusText())
			}
		})
	}
}

func TestNetHTTPClient_Do_ReadsWholeBody(t *testing.T) {
	t.Parallel()
	big := `"` + strings.Repeat("x", 1<<20) + `"`
	ts, _ := newEmployeeStandIn(t, http.StatusOK, big)

	resp, err := newNetHTTP(t, ts.Client()).Do(context.Background(), &webclient.Request{Method: "GET", URL: ts.URL})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(resp.Body) != len(big) {
		t.Errorf("body is %d bytes, want %d", len(resp.Body), len(big))
	}
}

// ─── No response ───────────────────────────────────────────────────────

func TestNetHTTPClient_Do_Errors(t *testing.T) {
	t.Parallel()
	live, _ := newEmployeeStandIn(t, http.StatusOK, `{}`)
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		req     *webclient.Request
		wantErr func(error) bool
	}{
		{"nil request", context.Background(), nil, func(err error) bool { return errors.Is(err, webclient.ErrNilRequest) }},
		{"malformed url", context.Background(), &webclient.Request{Method: "GET", URL: "http://[::1"}, func(err error) bool {
			return strings.HasPrefix(err.Error(), "building request:")
		}},
		{"connection refused", context.Background(), &webclient.Request{Method: "GET", URL: "http://127.0.0.1:1"}, func(err error) bool {
			return strings.HasPrefix(err.Error(), "http do:")
		}},
		{"canceled context", canceled, &webclient.Request{Method: "GET", URL: live.URL}, func(err error) bool {
			return errors.Is(err, context.Canceled)
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			resp, err := newNetHTTP(t, nil).Do(tc.ctx, tc.req)
			if err == nil || resp != nil {
				t.Fatalf("expected an error and no response, got %v, %v", resp, err)
			}
			if !tc.wantErr(err) {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}
