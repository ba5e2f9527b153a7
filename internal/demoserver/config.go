package demoserver

import "github.com/raysh454/apiprobe/internal/employee"

// Config holds configuration for the standalone demo API.
type Config struct {
	// Port is the port on which the demo API listens.
	Port int

	// Employee configures the backing store.
	Employee employee.Config

	// AllowedOrigins lists CORS origins. Empty allows any origin.
	AllowedOrigins []string
}

// DefaultConfig returns a Config matching the console's default base URL.
func DefaultConfig() Config {
	return Config{
		Port:     5000,
		Employee: employee.DefaultConfig(),
	}
}
