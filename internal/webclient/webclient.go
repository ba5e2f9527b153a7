package webclient

import (
	"context"
)

// WebClient performs a single HTTP exchange. Implementations return an error
// only when no response was received.
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	Close() error
}
