// Package connectivity tracks whether the library server is reachable.
//
// Sync cycles and queue drains consult [Monitor] before touching the
// network; an offline verdict postpones them without burning retry
// attempts. The HTTP implementation probes lazily and caches the verdict
// for the configured interval, so hot paths never wait on the network
// more than once per interval.
package connectivity

import (
	"context"

	"github.com/MKhiriev/go-digi-lib/internal/config"
	"github.com/MKhiriev/go-digi-lib/internal/logger"
)

//go:generate mockgen -source=monitor.go -destination=../mock/connectivity_mock.go -package=mock

// Monitor reports the current network condition.
type Monitor interface {
	// Online reports whether the server was reachable at the last probe.
	// A cached verdict may be up to one probe interval old.
	Online() bool

	// Metered reports whether the current network connection is metered.
	// The client cannot detect this portably; the embedding platform
	// supplies it through configuration.
	Metered() bool
}

// ProbeFunc performs one reachability check. A nil return means online.
type ProbeFunc func(ctx context.Context) error

// NewMonitor builds the Monitor selected by cfg: a static always-online
// monitor when probing is disabled, otherwise an HTTP prober wrapping
// probe.
func NewMonitor(cfg config.Connectivity, probe ProbeFunc, log *logger.Logger) Monitor {
	if cfg.AssumeOnline {
		return NewStatic(true, cfg.Metered)
	}
	return newHTTPMonitor(cfg, probe, log)
}

// Static is a fixed-verdict Monitor for tests and wired deployments.
type Static struct {
	online  bool
	metered bool
}

// NewStatic returns a Monitor that always reports the given state.
func NewStatic(online, metered bool) *Static {
	return &Static{online: online, metered: metered}
}

func (s *Static) Online() bool { return s.online }

func (s *Static) Metered() bool { return s.metered }
