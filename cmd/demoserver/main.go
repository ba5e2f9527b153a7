// Command demoserver runs the sample employee API the console targets by default.
// Usage: go run ./cmd/demoserver [port]
// Default port: 5000
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/raysh454/apiprobe/internal/demoserver"
	"github.com/raysh454/apiprobe/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := demoserver.DefaultConfig()

	// Optional: custom port from command line
	if len(args) > 0 {
		port, err := strconv.Atoi(args[0])
		if err != nil || port < 1 || port > 65535 {
			fmt.Fprintf(os.Stderr, "Invalid port: %s\n", args[0])
			return 2
		}
		cfg.Port = port
	}
	if path := os.Getenv("APIPROBE_DB"); path != "" {
		cfg.Employee.DatabasePath = path
	}

	server, err := demoserver.NewDemoServer(cfg, logging.NewStdoutLogger("demoserver"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		return 1
	}
	defer server.Close()

	if err := server.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		return 1
	}
	return 0
}
