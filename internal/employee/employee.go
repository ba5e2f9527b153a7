// Package employee is the demo REST API the console is pointed at by
// default: CRUD over employees backed by SQLite.
package employee

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("employee not found")
	ErrDuplicateNumber = errors.New("employee number already exists")
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05.000000"
)

// Employee is the stored record.
type Employee struct {
	ID        int64
	Number    string
	Name      string
	DOB       time.Time
	FirstName string
	LastName  string
	City      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Input is a validated create/update payload.
type Input struct {
	Number    string
	Name      string
	DOB       time.Time
	FirstName string
	LastName  string
	City      string
}

// View is the JSON shape of an employee in responses.
type View struct {
	ID        int64   `json:"id" example:"1"`
	Number    string  `json:"employee_number" example:"EMP001"`
	Name      string  `json:"employee_name" example:"John Doe"`
	DOB       *string `json:"employee_dob" example:"1990-05-15"`
	FirstName string  `json:"employee_firstname" example:"John"`
	LastName  string  `json:"employee_lastname" example:"Doe"`
	City      string  `json:"employee_city" example:"New York"`
	CreatedAt *string `json:"created_at" example:"2024-01-01T12:00:00.000000"`
	UpdatedAt *string `json:"updated_at" example:"2024-01-01T12:00:00.000000"`
}

// ToView formats dates the way the API has always returned them.
func (e *Employee) ToView() View {
	return View{
		ID:        e.ID,
		Number:    e.Number,
		Name:      e.Name,
		DOB:       formatTime(e.DOB, dateLayout),
		FirstName: e.FirstName,
		LastName:  e.LastName,
		City:      e.City,
		CreatedAt: formatTime(e.CreatedAt, timestampLayout),
		UpdatedAt: formatTime(e.UpdatedAt, timestampLayout),
	}
}

func formatTime(t time.Time, layout string) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(layout)
	return &s
}
