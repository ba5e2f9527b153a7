// Package demoserver runs the employee API on its own, so the console has
// something to talk to at http://localhost:5000/api/v1.
package demoserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/raysh454/apiprobe/internal/employee"
	"github.com/raysh454/apiprobe/internal/logging"

	_ "github.com/raysh454/apiprobe/internal/server/docs" // swagger spec
)

// DemoServer serves the employee API under /api/v1 with its swagger UI.
type DemoServer struct {
	cfg    Config
	store  *employee.SQLiteStore
	router chi.Router
	logger logging.Logger
}

// NewDemoServer opens the employee store and builds the router.
func NewDemoServer(cfg Config, logger logging.Logger) (*DemoServer, error) {
	if logger == nil {
		logger = logging.NewStdoutLogger("demoserver")
	}
	store, err := employee.OpenSQLite(cfg.Employee.DatabasePath, logger)
	if err != nil {
		return nil, err
	}

	s := &DemoServer{
		cfg:    cfg,
		store:  store,
		router: chi.NewRouter(),
		logger: logger,
	}
	s.routes(employee.NewHandler(store, logger))
	return s, nil
}

func (s *DemoServer) routes(api *employee.Handler) {
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := s.router
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}).Handler)

	r.Mount("/api/v1", api.Routes())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusFound)
	})
}

// ServeHTTP implements http.Handler.
func (s *DemoServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("http_request",
		logging.Field{Key: "method", Value: r.Method},
		logging.Field{Key: "path", Value: r.URL.Path})
	s.router.ServeHTTP(w, r)
}

// Start listens on the configured port until the server fails.
func (s *DemoServer) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("demo API listening",
		logging.Field{Key: "base_url", Value: fmt.Sprintf("http://localhost%s/api/v1", addr)},
		logging.Field{Key: "swagger", Value: fmt.Sprintf("http://localhost%s/swagger/index.html", addr)},
		logging.Field{Key: "db", Value: s.cfg.Employee.DatabasePath})

	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases the store.
func (s *DemoServer) Close() error {
	return s.store.Close()
}
