// Package catalog holds the sample endpoints and request bodies offered by
// the console for each method.
package catalog

import (
	json "github.com/goccy/go-json"

	"github.com/raysh454/apiprobe/internal/model"
)

// DefaultBaseURL points at the demo employee API on its usual port.
const DefaultBaseURL = "http://localhost:5000/api/v1"

// Endpoint is one selectable path with a human label.
type Endpoint struct {
	Path  string `json:"path" yaml:"path"`
	Label string `json:"label" yaml:"label"`
}

// Catalog is read-only after construction.
type Catalog struct {
	BaseURL   string                      `json:"baseUrl"`
	Endpoints map[model.Method][]Endpoint `json:"endpoints"`
	Bodies    map[model.Method]string     `json:"bodies"`
}

type sampleEmployee struct {
	Number    string `json:"employee_number"`
	Name      string `json:"employee_name"`
	DOB       string `json:"employee_dob"`
	FirstName string `json:"employee_firstname"`
	LastName  string `json:"employee_lastname"`
	City      string `json:"employee_city"`
}

// Default returns the built-in catalog for the employee API.
func Default() *Catalog {
	return &Catalog{
		BaseURL: DefaultBaseURL,
		Endpoints: map[model.Method][]Endpoint{
			model.MethodGet: {
				{Path: "/employees", Label: "All Employees"},
				{Path: "/employees/1", Label: "Employee by ID (1)"},
				{Path: "/employees/by-number/EMP001", Label: "Employee by Number (EMP001)"},
				{Path: "/health", Label: "Health Check"},
			},
			model.MethodPost: {
				{Path: "/employees", Label: "Create Employee"},
			},
			model.MethodPut: {
				{Path: "/employees/1", Label: "Update Employee (ID: 1)"},
			},
			model.MethodDelete: {
				{Path: "/employees/1", Label: "Delete Employee (ID: 1)"},
			},
		},
		Bodies: map[model.Method]string{
			model.MethodPost: indent(sampleEmployee{
				Number:    "EMP001",
				Name:      "John Doe",
				DOB:       "1990-05-15",
				FirstName: "John",
				LastName:  "Doe",
				City:      "New York",
			}),
			model.MethodPut: indent(sampleEmployee{
				Number:    "EMP001",
				Name:      "John Smith",
				DOB:       "1990-05-15",
				FirstName: "John",
				LastName:  "Smith",
				City:      "Los Angeles",
			}),
		},
	}
}

// EndpointsFor returns the endpoints offered for m, possibly none.
func (c *Catalog) EndpointsFor(m model.Method) []Endpoint {
	return c.Endpoints[m]
}

// SampleBody returns the pre-filled body for m. Methods without a body get "".
func (c *Catalog) SampleBody(m model.Method) string {
	if !m.RequiresBody() {
		return ""
	}
	return c.Bodies[m]
}

// Form returns the form state shown right after the user switches to m: the
// first endpoint selected and the body replaced by the sample.
func (c *Catalog) Form(m model.Method) model.RequestSpec {
	spec := model.RequestSpec{
		Method:  m,
		BaseURL: c.BaseURL,
		Body:    c.SampleBody(m),
	}
	if eps := c.EndpointsFor(m); len(eps) > 0 {
		spec.Endpoint = eps[0].Path
	}
	return spec
}

func indent(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
