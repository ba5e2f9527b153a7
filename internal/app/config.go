package app

import (
	"github.com/raysh454/apiprobe/internal/employee"
	"github.com/raysh454/apiprobe/internal/server"
	"github.com/raysh454/apiprobe/internal/webclient"
)

// Config gathers the per-package configuration that the front ends share.
type Config struct {
	ServerCfg server.Config

	// StorageRoot is where relative database paths are resolved.
	StorageRoot string

	// WebClient configuration
	WebClientCfg webclient.Config

	// Demo employee API configuration
	EmployeeCfg employee.Config

	// DemoAPI mounts the employee API on the console server.
	DemoAPI bool

	// CatalogPath optionally names a YAML catalog replacing the built-in one.
	CatalogPath string

	// BaseURL, when set, overrides the catalog's base URL.
	BaseURL string
}

// DefaultConfig returns a Config populated with sensible development defaults.
func DefaultConfig() *Config {
	return &Config{
		ServerCfg:    server.DefaultConfig(),
		StorageRoot:  "~/.config/apiprobe",
		WebClientCfg: webclient.DefaultConfig(),
		EmployeeCfg:  employee.DefaultConfig(),
		DemoAPI:      true,
	}
}
