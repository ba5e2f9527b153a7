package webclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/raysh454/apiprobe/internal/logging"
)

// ErrNilRequest is returned by Do when called without a request.
var ErrNilRequest = errors.New("webclient: nil request")

// NetHTTPClient sends requests with a plain *http.Client.
type NetHTTPClient struct {
	client *http.Client
	logger logging.Logger
}

// NewNetHTTPClient wraps httpClient. A nil httpClient gets a client with
// cfg.Timeout, which is no timeout at all by default.
func NewNetHTTPClient(cfg Config, logger logging.Logger, httpClient *http.Client) (*NetHTTPClient, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	c := &NetHTTPClient{
		client: httpClient,
		logger: logger.With(logging.Field{Key: "backend", Value: string(ClientNetHTTP)}),
	}
	c.logger.Debug("nethttp backend ready", logging.Field{Key: "timeout", Value: httpClient.Timeout.String()})
	return c, nil
}

// HTTPClient returns the underlying client.
func (c *NetHTTPClient) HTTPClient() *http.Client {
	return c.client
}

func newHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	hreq, err := http.NewRequestWithContext(ctx, strings.ToUpper(req.Method), req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if req.Headers != nil {
		hreq.Header = req.Headers.Clone()
	}
	return hreq, nil
}

// Do sends req and reads the whole response body. Any status code is a
// response; only a missing response is an error.
func (c *NetHTTPClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	hreq, err := newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	log := c.logger.With(
		logging.Field{Key: "method", Value: hreq.Method},
		logging.Field{Key: "url", Value: req.URL})

	log.Debug("sending request")
	hresp, err := c.client.Do(hreq)
	if err != nil {
		log.Warn("request failed", logging.Field{Key: "error", Value: err.Error()})
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer hresp.Body.Close()

	body, err := io.ReadAll(hresp.Body)
	if err != nil {
		log.Warn("reading response body", logging.Field{Key: "error", Value: err.Error()})
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	log.Debug("response received",
		logging.Field{Key: "status", Value: hresp.StatusCode},
		logging.Field{Key: "bytes", Value: len(body)})

	return &Response{
		Request:    req,
		Status:     hresp.Status,
		StatusCode: hresp.StatusCode,
		Headers:    hresp.Header,
		Body:       body,
		FetchedAt:  time.Now(),
	}, nil
}

// Close drops idle keep-alive connections.
func (c *NetHTTPClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
