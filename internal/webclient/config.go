package webclient

import "time"

type Client string

const (
	ClientNetHTTP  Client = "nethttp"
	ClientChromedp Client = "chromedp"
)

// Config selects and tunes a WebClient backend.
type Config struct {
	Client Client

	// Timeout bounds a whole exchange for the nethttp backend. Zero means no
	// limit, which is the default: the console never gives up on a request.
	Timeout time.Duration

	// Headless runs the chromedp backend without a visible window.
	Headless bool
}

// DefaultConfig returns the nethttp backend with no timeout.
func DefaultConfig() Config {
	return Config{
		Client:   ClientNetHTTP,
		Headless: true,
	}
}
