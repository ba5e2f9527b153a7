package employee

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/raysh454/apiprobe/internal/logging"
)

//go:embed schema.sql
var schemaFS embed.FS

// Store persists employees. Implementations return ErrNotFound and
// ErrDuplicateNumber rather than driver errors for those cases.
type Store interface {
	Create(ctx context.Context, in Input) (*Employee, error)
	Get(ctx context.Context, id int64) (*Employee, error)
	GetByNumber(ctx context.Context, number string) (*Employee, error)
	List(ctx context.Context, page, perPage int) ([]*Employee, int, error)
	Update(ctx context.Context, id int64, in Input) (*Employee, error)
	Delete(ctx context.Context, id int64) error
	Close() error
}

// SQLiteStore is a Store over a single SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
// ":memory:" gives a throwaway database.
func OpenSQLite(path string, logger logging.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening employee database: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	s, err := NewSQLiteStore(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStore wraps an open database and applies the schema.
func NewSQLiteStore(db *sql.DB, logger logging.Logger) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	if err := applySchema(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{
		db:     db,
		logger: logger.With(logging.Field{Key: "component", Value: "employee-store"}),
		now:    time.Now,
	}, nil
}

func applySchema(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

const selectColumns = `id, employee_number, employee_name, employee_dob, employee_firstname,
	employee_lastname, employee_city, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*Employee, error) {
	var e Employee
	var dob, created, updated string
	if err := row.Scan(&e.ID, &e.Number, &e.Name, &dob, &e.FirstName, &e.LastName, &e.City, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if e.DOB, err = time.Parse(dateLayout, dob); err != nil {
		return nil, fmt.Errorf("parse employee_dob %q: %w", dob, err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at %q: %w", updated, err)
	}
	return &e, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func (s *SQLiteStore) Create(ctx context.Context, in Input) (*Employee, error) {
	now := s.now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx, `INSERT INTO employees
		(employee_number, employee_name, employee_dob, employee_firstname, employee_lastname, employee_city, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Number, in.Name, in.DOB.Format(dateLayout), in.FirstName, in.LastName, in.City, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateNumber
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	s.logger.Info("created employee", logging.Field{Key: "employee_number", Value: in.Number}, logging.Field{Key: "id", Value: id})
	return s.Get(ctx, id)
}

func (s *SQLiteStore) Get(ctx context.Context, id int64) (*Employee, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM employees WHERE id = ?`, id)
	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get employee %d: %w", id, err)
	}
	return e, nil
}

func (s *SQLiteStore) GetByNumber(ctx context.Context, number string) (*Employee, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM employees WHERE employee_number = ?`, number)
	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get employee %q: %w", number, err)
	}
	return e, nil
}

// List returns one page ordered by id together with the total row count.
// page is 1-based.
func (s *SQLiteStore) List(ctx context.Context, page, perPage int) ([]*Employee, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM employees ORDER BY id LIMIT ? OFFSET ?`,
		perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	out := make([]*Employee, 0, perPage)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("list employees: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	return out, total, nil
}

func (s *SQLiteStore) Update(ctx context.Context, id int64, in Input) (*Employee, error) {
	now := s.now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx, `UPDATE employees SET
		employee_number = ?, employee_name = ?, employee_dob = ?, employee_firstname = ?,
		employee_lastname = ?, employee_city = ?, updated_at = ?
		WHERE id = ?`,
		in.Number, in.Name, in.DOB.Format(dateLayout), in.FirstName, in.LastName, in.City, now, id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateNumber
		}
		return nil, fmt.Errorf("update employee %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	s.logger.Info("updated employee", logging.Field{Key: "employee_number", Value: in.Number}, logging.Field{Key: "id", Value: id})
	return s.Get(ctx, id)
}

func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete employee %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	s.logger.Info("deleted employee", logging.Field{Key: "id", Value: id})
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
