package webclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	json "github.com/goccy/go-json"

	"github.com/raysh454/apiprobe/internal/logging"
)

// ChromedpClient runs each request through window.fetch inside a headless
// Chrome tab, so requests are subject to the same CORS rules as the console
// page in a real browser.
type ChromedpClient struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	logger        logging.Logger
}

// fetchResult mirrors the object returned by fetchScript.
type fetchResult struct {
	Status     int               `json:"status"`
	StatusText string            `json:"statusText"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
	Error      string            `json:"error"`
}

const fetchScript = `(async () => {
  try {
    const res = await fetch(%s, {method: %s, headers: %s, body: %s});
    const headers = {};
    res.headers.forEach((v, k) => { headers[k] = v; });
    const body = await res.text();
    return {status: res.status, statusText: res.statusText, headers: headers, body: body};
  } catch (e) {
    return {error: String((e && e.message) || e)};
  }
})()`

// NewChromedpClient starts a browser and keeps it for the client's lifetime.
func NewChromedpClient(cfg Config, logger logging.Logger) (*ChromedpClient, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	componentLogger := logger.With(logging.Field{Key: "backend", Value: string(ClientChromedp)})

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Run with no actions launches the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	componentLogger.Debug("created chromedp webclient", logging.Field{Key: "headless", Value: cfg.Headless})

	return &ChromedpClient{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		logger:        componentLogger,
	}, nil
}

// Do evaluates fetch() in a fresh tab and waits for the promise to settle.
func (c *ChromedpClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	script, err := buildFetchScript(req)
	if err != nil {
		return nil, err
	}

	tabCtx, cancel := chromedp.NewContext(c.browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	method := strings.ToUpper(req.Method)
	c.logger.Debug("sending browser fetch",
		logging.Field{Key: "method", Value: method},
		logging.Field{Key: "url", Value: req.URL})

	var res fetchResult
	err = chromedp.Run(tabCtx, chromedp.Evaluate(script, &res, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
		return p.WithAwaitPromise(true)
	}))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("browser fetch: %w", ctxErr)
		}
		return nil, fmt.Errorf("browser fetch: %w", err)
	}
	if res.Error != "" {
		c.logger.Warn("browser fetch failed",
			logging.Field{Key: "method", Value: method},
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "error", Value: res.Error})
		return nil, fmt.Errorf("browser fetch: %s", res.Error)
	}

	headers := http.Header{}
	for k, v := range res.Headers {
		headers.Set(k, v)
	}

	return &Response{
		Request:    req,
		Status:     strings.TrimSpace(fmt.Sprintf("%d %s", res.Status, res.StatusText)),
		StatusCode: res.Status,
		Headers:    headers,
		Body:       []byte(res.Body),
		FetchedAt:  time.Now(),
	}, nil
}

func (c *ChromedpClient) Close() error {
	c.browserCancel()
	c.allocCancel()
	c.logger.Debug("closing chromedp webclient")
	return nil
}

// buildFetchScript embeds every argument as a JSON literal so nothing from
// the request is interpreted as script.
func buildFetchScript(req *Request) (string, error) {
	headers := map[string]string{}
	for k, vs := range req.Headers {
		headers[k] = strings.Join(vs, ", ")
	}

	var body any
	if len(req.Body) > 0 {
		body = string(req.Body)
	}

	args := []any{req.URL, strings.ToUpper(req.Method), headers, body}
	lits := make([]any, len(args))
	for i, a := range args {
		b, err := json.Marshal(a)
		if err != nil {
			return "", fmt.Errorf("encode fetch argument: %w", err)
		}
		lits[i] = string(b)
	}
	return fmt.Sprintf(fetchScript, lits...), nil
}
