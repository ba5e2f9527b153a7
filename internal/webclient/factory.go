package webclient

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/raysh454/apiprobe/internal/logging"
)

// ErrUnknownBackend is returned by NewWebClient for a name nobody registered.
var ErrUnknownBackend = errors.New("unknown webclient backend")

// BackendConstructor builds a WebClient for one backend.
type BackendConstructor func(cfg Config, logger logging.Logger) (WebClient, error)

var backends = struct {
	sync.RWMutex
	byName map[Client]BackendConstructor
}{byName: map[Client]BackendConstructor{}}

func normalizeBackend(name Client) Client {
	return Client(strings.ToLower(strings.TrimSpace(string(name))))
}

// RegisterBackend adds or replaces a backend. Names are case-insensitive.
func RegisterBackend(name string, ctor BackendConstructor) {
	key := normalizeBackend(Client(name))
	if key == "" || ctor == nil {
		return
	}
	backends.Lock()
	backends.byName[key] = ctor
	backends.Unlock()
}

// NewWebClient builds the backend cfg.Client names, nethttp when empty.
func NewWebClient(cfg Config, logger logging.Logger) (WebClient, error) {
	name := normalizeBackend(cfg.Client)
	if name == "" {
		name = ClientNetHTTP
	}

	backends.RLock()
	ctor := backends.byName[name]
	backends.RUnlock()
	if ctor == nil {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownBackend, name, strings.Join(ListBackends(), ", "))
	}

	wc, err := ctor(cfg, logger)
	switch {
	case err != nil:
		return nil, fmt.Errorf("starting %s backend: %w", name, err)
	case wc == nil:
		return nil, fmt.Errorf("starting %s backend: constructor returned no client", name)
	}
	return wc, nil
}

// ListBackends returns the registered backend names in order.
func ListBackends() []string {
	backends.RLock()
	defer backends.RUnlock()
	names := make([]string, 0, len(backends.byName))
	for _, k := range slices.Sorted(maps.Keys(backends.byName)) {
		names = append(names, string(k))
	}
	return names
}
