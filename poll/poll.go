// Package poll runs the two refresh cadences the dashboard uses: a fast tick
// for pool stats and the chart, and a slow tick for the worker list.
package poll

import (
	"context"
	"time"

	"xpdesk/log"
)

// FetchFunc performs one refresh. Errors are logged and the cadence keeps
// going; a fetch must respect ctx cancellation.
type FetchFunc func(ctx context.Context) error

// Options configure the two cadences.
type Options struct {
	// FastInterval drives the stats refresh. Defaults to 15s.
	FastInterval time.Duration
	// SlowInterval drives the worker-list refresh. Defaults to 60s.
	SlowInterval time.Duration
}

func (o *Options) applyDefaults() {
	if o.FastInterval <= 0 {
		o.FastInterval = 15 * time.Second
	}
	if o.SlowInterval <= 0 {
		o.SlowInterval = 60 * time.Second
	}
}

// Poller owns the two tickers.
type Poller struct {
	fast FetchFunc
	slow FetchFunc
	opts Options
}

// New creates a poller. Either fetch may be nil, which disables that cadence.
func New(fast, slow FetchFunc, opts Options) *Poller {
	opts.applyDefaults()
	return &Poller{fast: fast, slow: slow, opts: opts}
}

// Run blocks until ctx is cancelled. Both fetches fire immediately on start,
// then on their intervals. Fetch errors are logged and otherwise ignored so a
// flaky pool API never kills the refresh loop.
func (p *Poller) Run(ctx context.Context) {
	p.fire(ctx, "fast", p.fast)
	p.fire(ctx, "slow", p.slow)

	fastTick := time.NewTicker(p.opts.FastInterval)
	defer fastTick.Stop()
	slowTick := time.NewTicker(p.opts.SlowInterval)
	defer slowTick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-fastTick.C:
			p.fire(ctx, "fast", p.fast)
		case <-slowTick.C:
			p.fire(ctx, "slow", p.slow)
		}
	}
}

func (p *Poller) fire(ctx context.Context, name string, fetch FetchFunc) {
	if fetch == nil || ctx.Err() != nil {
		return
	}
	if err := fetch(ctx); err != nil {
		log.WarningLog.Printf("%s poll failed: %v", name, err)
	}
}
