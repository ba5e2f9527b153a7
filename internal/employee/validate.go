package employee

import (
	"regexp"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// ValidationErrors maps a field name to its messages. "_schema" holds errors
// about the payload as a whole.
type ValidationErrors map[string][]string

func (v ValidationErrors) add(field, msg string) {
	v[field] = append(v[field], msg)
}

const (
	msgMissing     = "Missing data for required field."
	msgNull        = "Field may not be null."
	msgNotString   = "Not a valid string."
	msgNotDate     = "Not a valid date."
	msgInvalid     = "Invalid value."
	msgUnknown     = "Unknown field."
	msgInvalidType = "Invalid input type."
)

var numberPattern = regexp.MustCompile(`^[A-Za-z0-9\-]+$`)

// errNoInput is returned by ParseInput for an empty or falsy payload.
var errNoInput = &inputError{"No input data provided"}

type inputError struct{ msg string }

func (e *inputError) Error() string { return e.msg }

var inputFields = []string{
	"employee_number",
	"employee_name",
	"employee_dob",
	"employee_firstname",
	"employee_lastname",
	"employee_city",
}

// ParseInput decodes and validates a create/update body. It returns
// errNoInput for a missing or empty payload, a JSON syntax error for
// malformed JSON, and ValidationErrors for everything else.
func ParseInput(body []byte, today time.Time) (Input, ValidationErrors, error) {
	var raw any
	if len(strings.TrimSpace(string(body))) == 0 {
		return Input{}, nil, errNoInput
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return Input{}, nil, err
	}
	if isFalsy(raw) {
		return Input{}, nil, errNoInput
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return Input{}, ValidationErrors{"_schema": {msgInvalidType}}, nil
	}

	errs := ValidationErrors{}
	known := map[string]bool{}
	for _, f := range inputFields {
		known[f] = true
	}
	for k := range obj {
		if !known[k] {
			errs.add(k, msgUnknown)
		}
	}

	var in Input
	in.Number = stringField(obj, "employee_number", errs, func(s string) string {
		if !numberPattern.MatchString(strings.TrimSpace(s)) {
			return "Employee number can only contain letters, numbers, and hyphens"
		}
		return ""
	})
	in.Name = stringField(obj, "employee_name", errs, nil)
	in.FirstName = stringField(obj, "employee_firstname", errs, minLength("First name"))
	in.LastName = stringField(obj, "employee_lastname", errs, minLength("Last name"))
	in.City = stringField(obj, "employee_city", errs, nil)
	in.DOB = dateField(obj, "employee_dob", errs, today)

	if len(errs) > 0 {
		return Input{}, errs, nil
	}
	return in, nil, nil
}

// stringField reads a required, non-blank string and then applies check.
func stringField(obj map[string]any, key string, errs ValidationErrors, check func(string) string) string {
	v, present := obj[key]
	if !present {
		errs.add(key, msgMissing)
		return ""
	}
	if v == nil {
		errs.add(key, msgNull)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		errs.add(key, msgNotString)
		return ""
	}
	if strings.TrimSpace(s) == "" {
		errs.add(key, msgInvalid)
		return ""
	}
	if check != nil {
		if msg := check(s); msg != "" {
			errs.add(key, msg)
			return ""
		}
	}
	return s
}

func minLength(label string) func(string) string {
	return func(s string) string {
		if len([]rune(strings.TrimSpace(s))) < 2 {
			return label + " must be at least 2 characters long"
		}
		return ""
	}
}

func dateField(obj map[string]any, key string, errs ValidationErrors, today time.Time) time.Time {
	v, present := obj[key]
	if !present {
		errs.add(key, msgMissing)
		return time.Time{}
	}
	if v == nil {
		errs.add(key, msgNull)
		return time.Time{}
	}
	s, ok := v.(string)
	if !ok {
		errs.add(key, msgNotDate)
		return time.Time{}
	}
	dob, err := time.Parse(dateLayout, s)
	if err != nil {
		errs.add(key, msgNotDate)
		return time.Time{}
	}

	todayDate := truncateToDate(today)
	if dob.After(todayDate) {
		errs.add(key, "Date of birth cannot be in the future")
		return time.Time{}
	}
	age := todayDate.Sub(dob).Hours() / 24 / 365.25
	switch {
	case age < 16:
		errs.add(key, "Employee must be at least 16 years old")
		return time.Time{}
	case age > 100:
		errs.add(key, "Employee age cannot exceed 100 years")
		return time.Time{}
	}
	return dob
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(x) == 0
	case []any:
		return len(x) == 0
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0
	}
	return false
}
