package connectivity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-digi-lib/internal/config"
	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/internal/utils"
)

const probeTimeout = 5 * time.Second

// httpMonitor probes on demand and caches the verdict for one interval.
// Concurrent callers inside the interval, or while a probe is running,
// get the cached verdict instead of stacking probes.
type httpMonitor struct {
	probe    ProbeFunc
	interval time.Duration
	metered  bool

	mu        sync.Mutex
	online    bool
	lastProbe time.Time
	probing   bool

	logger *logger.Logger
}

func newHTTPMonitor(cfg config.Connectivity, probe ProbeFunc, log *logger.Logger) *httpMonitor {
	interval := cfg.ProbeInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	return &httpMonitor{
		probe:    probe,
		interval: interval,
		metered:  cfg.Metered,
		logger:   log,
	}
}

// Online implements [Monitor].
func (m *httpMonitor) Online() bool {
	m.mu.Lock()
	if m.probing || (!m.lastProbe.IsZero() && time.Since(m.lastProbe) < m.interval) {
		online := m.online
		m.mu.Unlock()
		return online
	}
	m.probing = true
	wasOnline := m.online
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	err := m.probe(ctx)
	cancel()

	online := err == nil

	m.mu.Lock()
	m.online = online
	m.lastProbe = time.Now()
	m.probing = false
	m.mu.Unlock()

	if online != wasOnline {
		m.logger.Info().
			Bool("online", online).
			Msg("connectivity changed")
	}

	return online
}

// Metered implements [Monitor].
func (m *httpMonitor) Metered() bool {
	return m.metered
}

// NewURLProbe returns a ProbeFunc that GETs url and treats any 2xx reply
// as reachable. Used when a probe endpoint distinct from the API server
// is configured.
func NewURLProbe(url string) ProbeFunc {
	client := utils.NewHTTPClientWithTimeout(probeTimeout)

	return func(ctx context.Context) error {
		resp, err := client.R().SetContext(ctx).Get(url)
		if err != nil {
			return err
		}
		if resp.IsError() {
			return fmt.Errorf("probe %s: http %d", url, resp.StatusCode())
		}
		return nil
	}
}
