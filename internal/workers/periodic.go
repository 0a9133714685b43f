package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-digi-lib/internal/logger"
)

// periodic runs run on a fixed ticker until its context is cancelled.
// An optional gate short-circuits a tick without invoking run.
type periodic struct {
	lifecycle

	name     string
	interval time.Duration
	gate     func() bool
	run      func(ctx context.Context) error
	logger   *logger.Logger
}

// NewPeriodic creates a worker that calls run every interval. A gate of
// nil means every tick runs. The worker is idle until Start is called.
func NewPeriodic(name string, interval time.Duration, gate func() bool, run func(ctx context.Context) error, log *logger.Logger) Worker {
	return newPeriodic(name, interval, gate, run, log)
}

func newPeriodic(name string, interval time.Duration, gate func() bool, run func(ctx context.Context) error, log *logger.Logger) *periodic {
	return &periodic{name: name, interval: interval, gate: gate, run: run, logger: log}
}

// Start implements Worker. It stops any previously running instance,
// then launches a goroutine that calls run every interval. If interval
// is zero or negative it defaults to one minute. The goroutine exits
// when ctx is cancelled or Stop is called.
func (p *periodic) Start(ctx context.Context) {
	interval := p.interval
	if interval <= 0 {
		interval = time.Minute
	}

	p.launch(ctx, func(ctx context.Context) {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				p.tick(ctx)
			}
		}
	})
}

func (p *periodic) tick(ctx context.Context) {
	if p.gate != nil && !p.gate() {
		return
	}
	if err := p.run(ctx); err != nil {
		// The services log real failures themselves; this records only
		// that the pass did not complete.
		p.logger.Debug().Err(err).Str("worker", p.name).Msg("background pass skipped")
	}
}
