package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/takedown/internal/athlete"
	"github.com/five82/takedown/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
	refreshTimeout      = 10 * time.Second
)

// Poller refreshes a store from a source on a fixed cadence, backing off
// while the source keeps failing.
type Poller struct {
	store    *state.Store
	src      athlete.Source
	interval time.Duration
	logger   *zap.Logger
	trigger  chan struct{}
	done     chan struct{}
}

// StartPoller launches a background goroutine that refreshes the store. It
// returns immediately; the goroutine exits when ctx is cancelled.
func StartPoller(ctx context.Context, store *state.Store, src athlete.Source, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Poller{
		store:    store,
		src:      src,
		interval: interval,
		logger:   logger.Named("poller"),
		trigger:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go p.run(ctx)
	return p
}

// Trigger requests an immediate refresh. Requests made while one is already
// pending are coalesced.
func (p *Poller) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Done is closed once the poller goroutine has exited.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		case <-p.trigger:
		}

		if err := refresh(ctx, p.store, p.src); err != nil {
			if ctx.Err() != nil {
				return
			}
			failures := p.store.Snapshot().ConsecutiveFailures
			wait := calculateBackoff(failures, p.interval)
			p.logger.Warn("catalog refresh failed",
				zap.Error(err),
				zap.Int("failures", failures),
				zap.Duration("retry_in", wait),
			)
			timer.Reset(wait)
			continue
		}
		timer.Reset(p.interval)
	}
}

// calculateBackoff doubles base once per consecutive failure, capped at
// maxBackoff (or base, if base is already longer).
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	ceiling := maxBackoff
	if base > ceiling {
		ceiling = base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= ceiling {
			return ceiling
		}
	}
	return wait
}

func refresh(ctx context.Context, store *state.Store, src athlete.Source) error {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	cat, err := src.FetchCatalog(ctx)
	if err != nil {
		store.Update(nil, err)
		return err
	}
	store.Update(cat, nil)
	return nil
}
