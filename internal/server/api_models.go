package server

import (
	"fmt"

	"github.com/raysh454/apiprobe/internal/catalog"
	"github.com/raysh454/apiprobe/internal/compare"
	"github.com/raysh454/apiprobe/internal/model"
)

// ExecuteRequest is the form snapshot posted by the console page.
type ExecuteRequest struct {
	ID       string `json:"id,omitempty" example:"7d0b6a2e-4c8a-4f43-9a55-3d5f8c1c2b11"`
	Method   string `json:"method" example:"POST"`
	BaseURL  string `json:"baseUrl" example:"http://localhost:5000/api/v1"`
	Endpoint string `json:"endpoint" example:"/employees"`
	Body     string `json:"body,omitempty" example:"{\"employee_number\":\"EMP001\"}"`
}

// Spec converts the form into a RequestSpec, falling back to defaultBase
// when no base URL was entered.
func (r ExecuteRequest) Spec(defaultBase string) (model.RequestSpec, error) {
	m, ok := model.ParseMethod(r.Method)
	if !ok {
		return model.RequestSpec{}, fmt.Errorf("unsupported method %q", r.Method)
	}
	base := r.BaseURL
	if base == "" {
		base = defaultBase
	}
	return model.RequestSpec{
		Method:   m,
		BaseURL:  base,
		Endpoint: r.Endpoint,
		Body:     r.Body,
	}, nil
}

// ExecuteResponse carries one outcome back to the page. OK is the 2xx band
// and only drives styling; Outcome says whether the call itself worked.
type ExecuteResponse struct {
	ID       string        `json:"id"`
	OK       bool          `json:"ok"`
	Outcome  model.Outcome `json:"outcome"`
	Rendered string        `json:"rendered"`
}

func newExecuteResponse(id string, out model.Outcome) ExecuteResponse {
	return ExecuteResponse{
		ID:       id,
		OK:       out.OK(),
		Outcome:  out,
		Rendered: out.Render(),
	}
}

// SocketMessage is one inbound websocket frame on /ws/console.
type SocketMessage struct {
	ID      string         `json:"id,omitempty"`
	Request ExecuteRequest `json:"request"`
}

// SocketError answers a frame that could not be dispatched.
type SocketError struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

// CatalogResponse lists what the console form offers.
type CatalogResponse struct {
	Methods []model.Method `json:"methods"`
	*catalog.Catalog
}

// DiffRequest holds two rendered outcomes to compare.
type DiffRequest struct {
	BaseID string `json:"base_id,omitempty"`
	HeadID string `json:"head_id,omitempty"`
	Base   string `json:"base"`
	Head   string `json:"head"`
}

// DiffResponse is the change set plus a plain-text rendering of it.
type DiffResponse struct {
	compare.Result
	Text string `json:"unified"`
}

// ErrorResponse is a uniform error payload returned by the console endpoints.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid JSON"`
}
