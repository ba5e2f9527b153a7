// Package cli is the apiprobe command line: serve the browser console, send
// a single request, run the terminal form, or list the sample endpoints.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	json "github.com/goccy/go-json"
	"github.com/mattn/go-isatty"

	"github.com/raysh454/apiprobe/internal/app"
	"github.com/raysh454/apiprobe/internal/catalog"
	"github.com/raysh454/apiprobe/internal/console"
	"github.com/raysh454/apiprobe/internal/logging"
	"github.com/raysh454/apiprobe/internal/model"
	"github.com/raysh454/apiprobe/internal/webclient"
)

// Globals are flags shared by every command.
type Globals struct {
	LogLevel string `name:"log-level" env:"APIPROBE_LOG_LEVEL" help:"Minimum log level (debug|info|warn|error). Each command picks its own default."`
	Backend  string `env:"APIPROBE_BACKEND" enum:"nethttp,chromedp" default:"nethttp" help:"Transport backend (nethttp|chromedp)."`
	Headful  bool   `help:"Show the browser window when using the chromedp backend."`
	BaseURL  string `name:"base-url" env:"APIPROBE_BASE_URL" help:"Base URL prepended to every endpoint."`
	Catalog  string `type:"path" env:"APIPROBE_CATALOG" help:"YAML file overriding the sample endpoints and bodies."`
}

// CLI is the kong grammar.
type CLI struct {
	Globals

	Serve     ServeCmd     `cmd:"" help:"Serve the browser console (and the demo employee API)."`
	Exec      ExecCmd      `cmd:"" help:"Send one request and print the formatted outcome."`
	TUI       TUICmd       `cmd:"" name:"tui" help:"Interactive terminal form."`
	Endpoints EndpointsCmd `cmd:"" help:"List the sample endpoints per method."`
}

// env carries process plumbing into command Run methods.
type env struct {
	ctx      context.Context
	stdout   io.Writer
	stderr   io.Writer
	exitCode int
}

// Run parses args, runs the selected command and returns the exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("apiprobe"),
		kong.Description("Exercise a REST API by hand from the browser or the terminal."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintf(stderr, "apiprobe: %v\n", err)
		return 2
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "apiprobe: %v\n", err)
		return 2
	}

	e := &env{ctx: ctx, stdout: stdout, stderr: stderr}
	if err := kctx.Run(e, &cli.Globals); err != nil {
		fmt.Fprintf(stderr, "apiprobe: %v\n", err)
		return 1
	}
	return e.exitCode
}

func (g *Globals) logger(component string, w io.Writer, def logging.Level) logging.Logger {
	level := def
	if g.LogLevel != "" {
		level = logging.ParseLevel(g.LogLevel)
	}
	return logging.NewLogger(component, w, level)
}

func (g *Globals) appConfig() *app.Config {
	cfg := app.DefaultConfig()
	cfg.WebClientCfg.Client = webclient.Client(g.Backend)
	cfg.WebClientCfg.Headless = !g.Headful
	cfg.BaseURL = g.BaseURL
	cfg.CatalogPath = g.Catalog
	return cfg
}

// ─── serve ─────────────────────────────────────────────────────────────

type ServeCmd struct {
	Addr           string   `env:"APIPROBE_ADDR" default:":8080" help:"Listen address."`
	DB             string   `name:"db" env:"APIPROBE_DB" default:"employees.db" help:"Employee database; relative paths live under ~/.config/apiprobe, :memory: keeps nothing."`
	NoDemoAPI      bool     `name:"no-demo-api" help:"Do not mount the demo employee API at /api/v1."`
	AllowedOrigins []string `name:"allowed-origin" help:"CORS origins to allow (default any)."`
}

func (c *ServeCmd) Run(e *env, g *Globals) error {
	cfg := g.appConfig()
	cfg.ServerCfg.ListenAddr = c.Addr
	cfg.ServerCfg.AllowedOrigins = c.AllowedOrigins
	cfg.EmployeeCfg.DatabasePath = c.DB
	cfg.DemoAPI = !c.NoDemoAPI

	a, err := app.NewApplication(cfg, g.logger("apiprobe", e.stderr, logging.LevelInfo))
	if err != nil {
		return err
	}
	defer a.Shutdown(context.Background())

	return a.Serve(e.ctx)
}

// ─── exec ──────────────────────────────────────────────────────────────

type ExecCmd struct {
	Method   string `short:"X" default:"GET" help:"HTTP method (GET|POST|PUT|DELETE)."`
	Endpoint string `short:"e" help:"Endpoint path. Defaults to the first sample for the method."`
	Data     string `short:"d" help:"JSON request body. Defaults to the sample body for POST and PUT."`
	Empty    bool   `help:"Send no body even when the method has a sample."`
	NoColor  bool   `name:"no-color" help:"Never colour the output."`
}

// Run prints the rendered outcome and sets exit code 1 on a Failure. A
// non-2xx response is still a Success.
func (c *ExecCmd) Run(e *env, g *Globals) error {
	m, ok := model.ParseMethod(c.Method)
	if !ok {
		return fmt.Errorf("unsupported method %q", c.Method)
	}

	a, err := app.NewApplication(g.appConfig(), g.logger("apiprobe", e.stderr, logging.LevelWarn))
	if err != nil {
		return err
	}
	defer a.Shutdown(context.Background())

	spec := a.Catalog.Form(m)
	if c.Endpoint != "" {
		spec.Endpoint = c.Endpoint
	}
	switch {
	case c.Empty:
		spec.Body = ""
	case c.Data != "":
		spec.Body = c.Data
	}

	out := a.Executor.Execute(e.ctx, spec)
	rendered := out.Render()
	if !c.NoColor && isTerminal(e.stdout) {
		rendered = console.OutcomeStyle(out).Render(rendered)
	}
	fmt.Fprintln(e.stdout, rendered)

	if !out.IsSuccess() {
		e.exitCode = 1
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// ─── tui ───────────────────────────────────────────────────────────────

type TUICmd struct{}

func (c *TUICmd) Run(e *env, g *Globals) error {
	if !isTerminal(e.stdout) {
		return errors.New("tui needs a terminal; use exec instead")
	}
	// The form owns the screen, so logs only go out when explicitly asked for.
	var logger logging.Logger = logging.NopLogger{}
	if g.LogLevel != "" {
		logger = g.logger("apiprobe", e.stderr, logging.LevelWarn)
	}

	a, err := app.NewApplication(g.appConfig(), logger)
	if err != nil {
		return err
	}
	defer a.Shutdown(context.Background())

	return console.Run(e.ctx, a.Executor, a.Catalog)
}

// ─── endpoints ─────────────────────────────────────────────────────────

type EndpointsCmd struct {
	JSON bool `name:"json" help:"Print the catalog as JSON."`
}

func (c *EndpointsCmd) Run(e *env, g *Globals) error {
	cat := catalog.Default()
	if g.Catalog != "" {
		loaded, err := catalog.LoadFile(g.Catalog)
		if err != nil {
			return err
		}
		cat = loaded
	}
	if g.BaseURL != "" {
		cat.BaseURL = g.BaseURL
	}

	if c.JSON {
		enc := json.NewEncoder(e.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cat)
	}

	fmt.Fprintf(e.stdout, "Base URL: %s\n\n", cat.BaseURL)
	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	for _, m := range model.Methods {
		for _, ep := range cat.EndpointsFor(m) {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", m, ep.Path, ep.Label)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, m := range model.Methods {
		if body := cat.SampleBody(m); body != "" {
			fmt.Fprintf(e.stdout, "\nSample %s body:\n%s\n", m, indentLines(body, "  "))
		}
	}
	return nil
}

func indentLines(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
