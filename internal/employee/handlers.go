package employee

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/raysh454/apiprobe/internal/logging"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// Handler serves the employee API. Mount Routes under /api/v1.
type Handler struct {
	store  Store
	logger logging.Logger
	now    func() time.Time
}

// NewHandler returns a Handler backed by store.
func NewHandler(store Store, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Handler{
		store:  store,
		logger: logger.With(logging.Field{Key: "component", Value: "employee-api"}),
		now:    time.Now,
	}
}

// Routes returns the API router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/employees", h.handleCreate)
	r.Get("/employees", h.handleList)
	r.Get("/employees/{id}", h.handleGet)
	r.Put("/employees/{id}", h.handleUpdate)
	r.Delete("/employees/{id}", h.handleDelete)
	r.Get("/employees/by-number/{number}", h.handleGetByNumber)
	r.Get("/health", h.handleHealth)
	return r
}

// --- response shapes (also used by the swagger docs) ---

// ErrorResponse is the error payload.
type ErrorResponse struct {
	Error   string `json:"error" example:"Employee not found"`
	Message string `json:"message,omitempty" example:"Failed to retrieve employee"`
}

// ValidationErrorResponse reports per-field validation messages.
type ValidationErrorResponse struct {
	Error    string           `json:"error" example:"Validation error"`
	Messages ValidationErrors `json:"messages"`
}

// EmployeeResponse wraps a single employee.
type EmployeeResponse struct {
	Message  string `json:"message,omitempty" example:"Employee created successfully"`
	Employee View   `json:"employee"`
}

// MessageResponse is a bare message.
type MessageResponse struct {
	Message string `json:"message" example:"Employee deleted successfully"`
}

// Pagination describes a page of results.
type Pagination struct {
	Page    int  `json:"page" example:"1"`
	Pages   int  `json:"pages" example:"3"`
	PerPage int  `json:"per_page" example:"10"`
	Total   int  `json:"total" example:"25"`
	HasPrev bool `json:"has_prev" example:"false"`
	HasNext bool `json:"has_next" example:"true"`
}

// ListResponse is one page of employees.
type ListResponse struct {
	Employees  []View     `json:"employees"`
	Pagination Pagination `json:"pagination"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Message string `json:"message" example:"Employee API is running"`
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

func (h *Handler) writeDBError(w http.ResponseWriter, err error, msg string) {
	h.logger.Error("database error", logging.Field{Key: "error", Value: err.Error()})
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Database error", Message: msg})
}

// readInput decodes and validates the request body, writing the error
// response itself when it returns false.
func (h *Handler) readInput(w http.ResponseWriter, r *http.Request) (Input, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read request body")
		return Input{}, false
	}
	in, verrs, err := ParseInput(body, h.now())
	switch {
	case errors.Is(err, errNoInput):
		writeError(w, http.StatusBadRequest, errNoInput.Error())
		return Input{}, false
	case err != nil:
		h.logger.Warn("decoding employee body", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return Input{}, false
	case len(verrs) > 0:
		writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{Error: "Validation error", Messages: verrs})
		return Input{}, false
	}
	return in, true
}

// pathID parses {id}; anything that is not a non-negative integer does not
// match the route, as with the original int converter.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return v
}

// --- handlers ---

// handleCreate godoc
// @Summary Create an employee
// @Tags employees
// @Accept json
// @Produce json
// @Param employee body object true "Employee fields"
// @Success 201 {object} EmployeeResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /employees [post]
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := h.readInput(w, r)
	if !ok {
		return
	}

	e, err := h.store.Create(r.Context(), in)
	switch {
	case errors.Is(err, ErrDuplicateNumber):
		writeError(w, http.StatusConflict, "Employee number already exists")
		return
	case err != nil:
		h.writeDBError(w, err, "Failed to create employee")
		return
	}

	writeJSON(w, http.StatusCreated, EmployeeResponse{Message: "Employee created successfully", Employee: e.ToView()})
}

// handleList godoc
// @Summary List employees
// @Tags employees
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size, at most 100" default(10)
// @Success 200 {object} ListResponse
// @Failure 500 {object} ErrorResponse
// @Router /employees [get]
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := queryInt(r, "per_page", defaultPerPage)
	if perPage < 1 {
		perPage = defaultPerPage
	}
	perPage = min(perPage, maxPerPage)

	items, total, err := h.store.List(r.Context(), page, perPage)
	if err != nil {
		h.writeDBError(w, err, "Failed to retrieve employees")
		return
	}

	views := make([]View, 0, len(items))
	for _, e := range items {
		views = append(views, e.ToView())
	}
	pages := (total + perPage - 1) / perPage

	writeJSON(w, http.StatusOK, ListResponse{
		Employees: views,
		Pagination: Pagination{
			Page:    page,
			Pages:   pages,
			PerPage: perPage,
			Total:   total,
			HasPrev: page > 1,
			HasNext: page < pages,
		},
	})
}

// handleGet godoc
// @Summary Get an employee by ID
// @Tags employees
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} EmployeeResponse
// @Failure 404 {object} ErrorResponse
// @Router /employees/{id} [get]
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	e, err := h.store.Get(r.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Employee not found")
		return
	case err != nil:
		h.writeDBError(w, err, "Failed to retrieve employee")
		return
	}
	writeJSON(w, http.StatusOK, EmployeeResponse{Employee: e.ToView()})
}

// handleUpdate godoc
// @Summary Replace an employee
// @Tags employees
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param employee body object true "Employee fields"
// @Success 200 {object} EmployeeResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /employees/{id} [put]
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, err := h.store.Get(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "Employee not found")
			return
		}
		h.writeDBError(w, err, "Failed to update employee")
		return
	}

	in, ok := h.readInput(w, r)
	if !ok {
		return
	}

	e, err := h.store.Update(r.Context(), id, in)
	switch {
	case errors.Is(err, ErrDuplicateNumber):
		writeError(w, http.StatusConflict, "Employee number already exists")
		return
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Employee not found")
		return
	case err != nil:
		h.writeDBError(w, err, "Failed to update employee")
		return
	}
	writeJSON(w, http.StatusOK, EmployeeResponse{Message: "Employee updated successfully", Employee: e.ToView()})
}

// handleDelete godoc
// @Summary Delete an employee
// @Tags employees
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /employees/{id} [delete]
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	err := h.store.Delete(r.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Employee not found")
		return
	case err != nil:
		h.writeDBError(w, err, "Failed to delete employee")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Employee deleted successfully"})
}

// handleGetByNumber godoc
// @Summary Get an employee by employee number
// @Tags employees
// @Produce json
// @Param number path string true "Employee number"
// @Success 200 {object} EmployeeResponse
// @Failure 404 {object} ErrorResponse
// @Router /employees/by-number/{number} [get]
func (h *Handler) handleGetByNumber(w http.ResponseWriter, r *http.Request) {
	e, err := h.store.GetByNumber(r.Context(), chi.URLParam(r, "number"))
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Employee not found")
		return
	case err != nil:
		h.writeDBError(w, err, "Failed to retrieve employee")
		return
	}
	writeJSON(w, http.StatusOK, EmployeeResponse{Employee: e.ToView()})
}

// handleHealth godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Message: "Employee API is running"})
}
