package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/raysh454/apiprobe/internal/catalog"
	"github.com/raysh454/apiprobe/internal/employee"
	"github.com/raysh454/apiprobe/internal/executor"
	"github.com/raysh454/apiprobe/internal/logging"
	"github.com/raysh454/apiprobe/internal/server"
	"github.com/raysh454/apiprobe/internal/webclient"
)

// Application is the global runtime state container. It owns the transport,
// the executor and the catalog every front end works from, and, once Serve
// is called, the console server and the demo API store.
type Application struct {
	Config   *Config
	Logger   logging.Logger
	Client   webclient.WebClient
	Executor *executor.Executor
	Catalog  *catalog.Catalog

	store      employee.Store
	httpServer *http.Server
}

// NewApplication builds the transport, executor and catalog from cfg.
func NewApplication(cfg *Config, logger logging.Logger) (*Application, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewStdoutLogger("apiprobe")
	}

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("loading catalog: %w", err)
		}
		cat = loaded
	}
	if cfg.BaseURL != "" {
		cat.BaseURL = cfg.BaseURL
	}

	client, err := webclient.NewWebClient(cfg.WebClientCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("creating webclient: %w", err)
	}

	return &Application{
		Config:   cfg,
		Logger:   logger,
		Client:   client,
		Executor: executor.New(client, logger),
		Catalog:  cat,
	}, nil
}

// Serve runs the console server until ctx is cancelled. Call Shutdown
// afterwards to release the store and transport.
func (a *Application) Serve(ctx context.Context) error {
	if a == nil {
		return errors.New("application is nil")
	}

	var api http.Handler
	if a.Config.DemoAPI {
		store, err := a.openStore()
		if err != nil {
			return err
		}
		a.store = store
		api = employee.NewHandler(store, a.Logger).Routes()
	}

	srv, err := server.NewServer(a.Config.ServerCfg, a.Executor, a.Catalog, api, a.Logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	a.httpServer = srv.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("console listening",
			logging.Field{Key: "addr", Value: a.httpServer.Addr},
			logging.Field{Key: "demo_api", Value: a.Config.DemoAPI},
			logging.Field{Key: "backend", Value: string(a.Config.WebClientCfg.Client)})
		errCh <- a.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(shutdownCtx)
	}
}

func (a *Application) openStore() (*employee.SQLiteStore, error) {
	path, err := a.databasePath()
	if err != nil {
		return nil, err
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			a.Logger.Warn("creating storage directory", logging.Field{Key: "path", Value: path}, logging.Field{Key: "error", Value: err.Error()})
		}
	}
	store, err := employee.OpenSQLite(path, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("opening employee store: %w", err)
	}
	return store, nil
}

// databasePath resolves the employee database against StorageRoot.
func (a *Application) databasePath() (string, error) {
	path := a.Config.EmployeeCfg.DatabasePath
	if path == ":memory:" {
		return path, nil
	}
	path, err := expandPath(path)
	if err != nil {
		return "", fmt.Errorf("expanding database path: %w", err)
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	root, err := expandPath(a.Config.StorageRoot)
	if err != nil {
		return "", fmt.Errorf("expanding storage root path: %w", err)
	}
	return filepath.Join(root, path), nil
}

// Shutdown stops the server, if any, and releases the store and transport.
func (a *Application) Shutdown(ctx context.Context) error {
	if a == nil {
		return errors.New("application is nil")
	}
	a.Logger.Info("application shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var errs []error
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing store: %w", err))
		}
	}
	if a.Client != nil {
		if err := a.Client.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing webclient: %w", err))
		}
	}
	return errors.Join(errs...)
}

func expandPath(p string) (string, error) {
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, p[1:]), nil
	}
	return p, nil
}
