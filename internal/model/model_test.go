package model_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/raysh454/apiprobe/internal/model"
)

func TestParseMethod(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"get", "POST", " put ", "Delete"} {
		if _, ok := model.ParseMethod(in); !ok {
			t.Errorf("ParseMethod(%q) rejected", in)
		}
	}
	if _, ok := model.ParseMethod("PATCH"); ok {
		t.Error("PATCH should not be accepted")
	}
}

func TestRequestSpec_URLConcatenatesVerbatim(t *testing.T) {
	t.Parallel()
	spec := model.RequestSpec{BaseURL: "http://h/api/v1/", Endpoint: "/employees"}
	if got := spec.URL(); got != "http://h/api/v1//employees" {
		t.Errorf("URL() = %q", got)
	}
}

func TestRequestSpec_EffectiveBody(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		spec   model.RequestSpec
		want   string
		wantOK bool
	}{
		{"post with body", model.RequestSpec{Method: model.MethodPost, Body: `{"a":1}`}, `{"a":1}`, true},
		{"put blank body", model.RequestSpec{Method: model.MethodPut, Body: " \n\t"}, "", false},
		{"get ignores body", model.RequestSpec{Method: model.MethodGet, Body: `{"a":1}`}, "", false},
		{"delete ignores body", model.RequestSpec{Method: model.MethodDelete, Body: "junk"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.spec.EffectiveBody()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("EffectiveBody() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestOutcome_RenderFailure(t *testing.T) {
	t.Parallel()
	o := model.Failed(model.FailureValidation, "Invalid JSON in request body")
	if got := o.Render(); got != "Error: Invalid JSON in request body" {
		t.Errorf("Render() = %q", got)
	}
	if o.OK() || o.IsSuccess() {
		t.Error("failure must be neither ok nor success")
	}
}

func TestOutcome_RenderSuccess(t *testing.T) {
	t.Parallel()
	ct := "application/json"
	o := model.Succeeded(model.ResponseView{
		StatusCode:  404,
		StatusText:  "Not Found",
		ContentType: &ct,
		Payload:     map[string]any{"error": "Employee not found"},
	})

	rendered := o.Render()
	if !strings.Contains(rendered, "\n  \"statusCode\": 404") {
		t.Errorf("expected indented statusCode, got:\n%s", rendered)
	}

	var back map[string]any
	if err := json.Unmarshal([]byte(rendered), &back); err != nil {
		t.Fatalf("rendered success is not JSON: %v", err)
	}
	for _, key := range []string{"statusCode", "statusText", "contentType", "payload"} {
		if _, ok := back[key]; !ok {
			t.Errorf("rendered output missing %q", key)
		}
	}
	if !o.IsSuccess() || o.OK() {
		t.Error("404 should be a success outcome that is not ok")
	}
}

func TestResponseView_OKBand(t *testing.T) {
	t.Parallel()
	for code, want := range map[int]bool{199: false, 200: true, 204: true, 299: true, 300: false, 500: false} {
		if got := (model.ResponseView{StatusCode: code}).OK(); got != want {
			t.Errorf("OK() for %d = %v, want %v", code, got, want)
		}
	}
}
