package model

import (
	json "github.com/goccy/go-json"
)

// ResponseView is the displayable part of a received response.
type ResponseView struct {
	StatusCode int    `json:"statusCode"`
	StatusText string `json:"statusText"`
	// ContentType is nil when the response carried no Content-Type header.
	ContentType *string `json:"contentType"`
	Payload     any     `json:"payload"`
}

// OK reports whether the status code is in the 2xx band. It drives
// presentation only.
func (v ResponseView) OK() bool {
	return v.StatusCode >= 200 && v.StatusCode <= 299
}

// FailureKind classifies why no ResponseView could be produced.
type FailureKind string

const (
	FailureValidation    FailureKind = "validation"
	FailureTransport     FailureKind = "transport"
	FailureResponseParse FailureKind = "response_parse"
)

// Failure carries a human-readable message.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// Outcome is either a Success (Response set) or a Failure (Failure set).
// Exactly one of the two is non-nil.
type Outcome struct {
	Response *ResponseView `json:"response,omitempty"`
	Failure  *Failure      `json:"failure,omitempty"`
}

// Succeeded wraps a ResponseView in an Outcome.
func Succeeded(v ResponseView) Outcome {
	return Outcome{Response: &v}
}

// Failed builds a Failure outcome.
func Failed(kind FailureKind, message string) Outcome {
	return Outcome{Failure: &Failure{Kind: kind, Message: message}}
}

// IsSuccess reports whether a response was received, whatever its status.
func (o Outcome) IsSuccess() bool {
	return o.Response != nil
}

// OK is true for a Success in the 2xx band. A Failure is never OK.
func (o Outcome) OK() bool {
	return o.Response != nil && o.Response.OK()
}

// Render produces the textual output surface: indented JSON for a Success,
// "Error: <message>" for a Failure.
func (o Outcome) Render() string {
	if o.Failure != nil {
		return "Error: " + o.Failure.Message
	}
	if o.Response == nil {
		return "Error: empty outcome"
	}
	out, err := json.MarshalIndent(o.Response, "", "  ")
	if err != nil {
		return "Error: " + err.Error()
	}
	return string(out)
}
