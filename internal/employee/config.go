package employee

// Config holds configuration for the employee API.
type Config struct {
	// DatabasePath is the SQLite file backing the API. ":memory:" keeps
	// everything in process and loses it on exit.
	DatabasePath string
}

// DefaultConfig returns a Config with development defaults.
func DefaultConfig() Config {
	return Config{
		DatabasePath: "employees.db",
	}
}
