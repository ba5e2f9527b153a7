// Package executor turns a RequestSpec into exactly one HTTP exchange and
// folds every possible result into a model.Outcome.
package executor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/raysh454/apiprobe/internal/logging"
	"github.com/raysh454/apiprobe/internal/model"
	"github.com/raysh454/apiprobe/internal/webclient"
)

// InvalidBodyMessage is the failure message for a POST/PUT body that is not
// well-formed JSON.
const InvalidBodyMessage = "Invalid JSON in request body"

// ContentTypeJSON is sent on every request.
const ContentTypeJSON = "application/json"

// Executor is stateless apart from its transport; it is safe for concurrent
// use and imposes no ordering between calls.
type Executor struct {
	client webclient.WebClient
	logger logging.Logger
}

// New returns an Executor that sends requests through client.
func New(client webclient.WebClient, logger logging.Logger) *Executor {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Executor{
		client: client,
		logger: logger.With(logging.Field{Key: "component", Value: "executor"}),
	}
}

// Execute validates spec, performs one request and returns its outcome. It
// never panics and never returns an error: validation, transport and
// response-parse problems all come back as a Failure.
func (e *Executor) Execute(ctx context.Context, spec model.RequestSpec) (out model.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("executor recovered from panic", logging.Field{Key: "panic", Value: fmt.Sprint(r)})
			out = model.Failed(model.FailureTransport, fmt.Sprint(r))
		}
	}()

	body, hasBody := spec.EffectiveBody()
	if hasBody {
		if _, err := parseJSON([]byte(body)); err != nil {
			e.logger.Debug("rejected request body",
				logging.Field{Key: "method", Value: string(spec.Method)},
				logging.Field{Key: "url", Value: spec.URL()},
				logging.Field{Key: "error", Value: err.Error()})
			return model.Failed(model.FailureValidation, InvalidBodyMessage)
		}
	}

	req := &webclient.Request{
		Method:  string(spec.Method),
		URL:     spec.URL(),
		Headers: http.Header{"Content-Type": []string{ContentTypeJSON}},
	}
	if hasBody {
		req.Body = []byte(body)
	}

	start := time.Now()
	e.logger.Debug("dispatching request",
		logging.Field{Key: "method", Value: req.Method},
		logging.Field{Key: "url", Value: req.URL},
		logging.Field{Key: "has_body", Value: hasBody})

	resp, err := e.client.Do(ctx, req)
	if err != nil {
		e.logger.Warn("request failed",
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "error", Value: err.Error()})
		return model.Failed(model.FailureTransport, err.Error())
	}
	if resp == nil {
		return model.Failed(model.FailureTransport, "no response received")
	}

	payload, err := decodePayload(resp)
	if err != nil {
		e.logger.Warn("response body is not JSON",
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "status", Value: resp.StatusCode},
			logging.Field{Key: "error", Value: err.Error()})
		return model.Failed(model.FailureResponseParse, err.Error())
	}

	view := model.ResponseView{
		StatusCode: resp.StatusCode,
		StatusText: resp.StatusText(),
		Payload:    payload,
	}
	if ct := resp.Headers.Get("Content-Type"); ct != "" {
		view.ContentType = &ct
	}

	e.logger.Debug("request completed",
		logging.Field{Key: "url", Value: req.URL},
		logging.Field{Key: "status", Value: resp.StatusCode},
		logging.Field{Key: "elapsed", Value: time.Since(start).String()})

	return model.Succeeded(view)
}

// Dispatch runs Execute on its own goroutine. The channel receives exactly
// one outcome and is then closed. There is no way to cancel a dispatched
// request other than through ctx.
func (e *Executor) Dispatch(ctx context.Context, spec model.RequestSpec) <-chan model.Outcome {
	ch := make(chan model.Outcome, 1)
	go func() {
		defer close(ch)
		ch <- e.Execute(ctx, spec)
	}()
	return ch
}
