package server

import (
	"bytes"
	"embed"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/raysh454/apiprobe/internal/catalog"
	"github.com/raysh454/apiprobe/internal/executor"
	"github.com/raysh454/apiprobe/internal/logging"
	"github.com/raysh454/apiprobe/internal/model"

	_ "github.com/raysh454/apiprobe/internal/server/docs" // swagger spec
)

//go:embed web
var webFS embed.FS

// Server is the HTTP + WebSocket surface of the console.
type Server struct {
	cfg      Config
	exec     *executor.Executor
	catalog  *catalog.Catalog
	api      http.Handler
	router   chi.Router
	upgrader websocket.Upgrader
	logger   logging.Logger
	newID    func() string
}

// NewServer wires the console around exec. api, when non-nil, is mounted at
// /api/v1 together with its swagger UI.
func NewServer(cfg Config, exec *executor.Executor, cat *catalog.Catalog, api http.Handler, logger logging.Logger) (*Server, error) {
	if exec == nil {
		return nil, errors.New("executor is required")
	}
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		logger = logging.NewStdoutLogger("server")
	}

	s := &Server{
		cfg:     cfg,
		exec:    exec,
		catalog: cat,
		api:     api,
		router:  chi.NewRouter(),
		logger:  logger.With(logging.Field{Key: "component", Value: "server"}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		newID: uuid.NewString,
	}

	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) routes() error {
	r := s.router

	r.Use(middleware.Recoverer)
	r.Use(s.corsHandler().Handler)

	static, err := fs.Sub(webFS, "web")
	if err != nil {
		return err
	}
	r.Get("/", s.handleIndex(static))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	r.Route("/console", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Post("/execute", s.handleExecute)
		r.Post("/diff", s.handleDiff)
	})
	r.Get("/ws/console", s.handleConsoleWS)

	if s.api != nil {
		r.Mount("/api/v1", s.api)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}
	return nil
}

func (s *Server) corsHandler() *cors.Cors {
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields,
				logging.Field{Key: "body_bytes", Value: len(bodyBytes)},
				logging.Field{Key: "body", Value: truncateForLog(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// maxLoggedBody caps how much of a request body goes into the access log.
const maxLoggedBody = 256

func truncateForLog(b []byte) string {
	if len(b) <= maxLoggedBody {
		return string(b)
	}
	return string(b[:maxLoggedBody]) + "…(truncated)"
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // requests may wait on slow APIs
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// --- HTTP handlers ---

func (s *Server) handleIndex(static fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := fs.ReadFile(static, "index.html")
		if err != nil {
			s.logger.Error("reading console page", logging.Field{Key: "error", Value: err.Error()})
			writeError(w, http.StatusInternalServerError, "console page unavailable")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CatalogResponse{Methods: model.Methods, Catalog: s.catalog})
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var body ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("decoding execute body", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	spec, err := body.Spec(s.catalog.BaseURL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := body.ID
	if id == "" {
		id = s.newID()
	}
	// Bound to the caller's connection; there is no other way to stop a request.
	out := s.exec.Execute(r.Context(), spec)
	s.logger.Info("executed request",
		logging.Field{Key: "id", Value: id},
		logging.Field{Key: "method", Value: string(spec.Method)},
		logging.Field{Key: "url", Value: spec.URL()},
		logging.Field{Key: "ok", Value: out.OK()})
	writeJSON(w, http.StatusOK, newExecuteResponse(id, out))
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var body DiffRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("decoding diff body", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	writeJSON(w, http.StatusOK, newDiffResponse(body))
}
