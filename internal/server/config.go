package server

type Config struct {
	// ListenAddr is the HTTP listen address for the console server.
	ListenAddr string

	// AllowedOrigins feeds the CORS policy. Empty means any origin.
	AllowedOrigins []string
}

// DefaultConfig returns a Config with development defaults.
func DefaultConfig() Config {
	return Config{
		ListenAddr: ":8080",
	}
}
