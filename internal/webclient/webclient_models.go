package webclient

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
}

type Response struct {
	Request *Request
	// Status is the status line as net/http reports it, e.g. "404 Not Found".
	Status     string
	StatusCode int
	Headers    http.Header
	Body       []byte
	FetchedAt  time.Time
}

// StatusText returns the reason phrase of the status line, falling back to
// the standard text for the code.
func (r *Response) StatusText() string {
	text := strings.TrimSpace(strings.TrimPrefix(r.Status, strconv.Itoa(r.StatusCode)))
	if text == "" {
		return http.StatusText(r.StatusCode)
	}
	return text
}
