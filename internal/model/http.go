package model

import (
	"strings"
)

// Method is one of the HTTP verbs the console offers.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// Methods lists the accepted methods in display order.
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete}

// ParseMethod upper-cases s and reports whether it is an accepted method.
func ParseMethod(s string) (Method, bool) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Methods {
		if m == known {
			return m, true
		}
	}
	return m, false
}

// RequiresBody reports whether requests with this method carry a body.
func (m Method) RequiresBody() bool {
	return m == MethodPost || m == MethodPut
}

// RequestSpec is a read-only snapshot of one outbound API call as entered
// by the user.
type RequestSpec struct {
	Method   Method `json:"method"`
	BaseURL  string `json:"baseUrl"`
	Endpoint string `json:"endpoint"`
	Body     string `json:"body,omitempty"`
}

// URL concatenates the base URL and endpoint as-is. Slash mismatches are
// the caller's problem.
func (r RequestSpec) URL() string {
	return r.BaseURL + r.Endpoint
}

// EffectiveBody returns the body that would go on the wire. It is only
// present for POST and PUT, and only when non-blank.
func (r RequestSpec) EffectiveBody() (string, bool) {
	if !r.Method.RequiresBody() {
		return "", false
	}
	if strings.TrimSpace(r.Body) == "" {
		return "", false
	}
	return r.Body, true
}
