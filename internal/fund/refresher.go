package fund

import (
	"context"
	"sync"
	"time"

	"cosmossdk.io/log"
)

// DefaultRefreshInterval is how often the background refresh fires.
const DefaultRefreshInterval = 30 * time.Second

// Refresher drives periodic snapshot refreshes for the lifetime of a watch
// session. It also fetches the chain tip height once at startup; a failed
// height fetch only degrades the deadline display and is not fatal.
type Refresher struct {
	reader   *Reader
	store    *Store
	interval time.Duration
	logger   log.Logger

	// OnUpdate, when set, is invoked after every successful refresh.
	OnUpdate func(*Snapshot)

	mu      sync.Mutex
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
}

// NewRefresher creates a Refresher. A zero interval selects the default.
func NewRefresher(reader *Reader, store *Store, interval time.Duration, logger log.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Refresher{
		reader:   reader,
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// Start performs the startup height fetch plus an immediate refresh, then
// spawns the periodic loop. It returns the first refresh error, if any; the
// loop runs regardless so a transient failure self-heals on the next tick.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return nil
	}
	r.started = true
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})
	r.mu.Unlock()

	if height, err := r.reader.client.TipHeight(ctx); err != nil {
		r.logger.Warn("tip height unavailable", "err", err)
	} else {
		r.store.SetTipHeight(height)
	}

	firstErr := r.RefreshOnce(ctx)

	go r.loop(ctx)

	return firstErr
}

// RefreshOnce performs a single full refresh. On failure the previous
// snapshot stays in place; there are no automatic retries.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	snap, err := r.reader.FetchAll(ctx)
	if err != nil {
		r.logger.Error("refresh failed", "err", err)
		return err
	}
	r.store.Replace(snap)
	r.logger.Debug("refreshed",
		"campaigns", len(snap.Campaigns),
		"dropped", len(snap.Failed),
	)
	if r.OnUpdate != nil {
		r.OnUpdate(snap)
	}
	return nil
}

func (r *Refresher) loop(ctx context.Context) {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case <-ticker.C:
			// Errors are logged inside; stale state stays on display.
			_ = r.RefreshOnce(ctx)
		}
	}
}

// Stop tears the periodic loop down and waits for it to exit, so no callback
// can fire after Stop returns.
func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.started = false
	close(r.stopCh)
	r.mu.Unlock()

	<-r.doneCh
}
