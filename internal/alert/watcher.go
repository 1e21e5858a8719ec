package alert

import (
	"context"
	"time"

	"github.com/aquamarinepk/aqm"
)

// PendingCounter supplies the number of orders currently pending.
type PendingCounter interface {
	PendingCount(ctx context.Context) (int, error)
}

// Watcher polls the pending-order count on a fixed interval and feeds it to
// the engine. Polling continues while the watcher runs; the engine ignores
// observations whenever it is inactive, so the watcher does not need to
// track which view the operator is on.
type Watcher struct {
	engine   *Engine
	counter  PendingCounter
	interval time.Duration
	logger   aqm.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

const defaultPollInterval = 15 * time.Second

func NewWatcher(engine *Engine, counter PendingCounter, interval time.Duration, logger aqm.Logger) *Watcher {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Watcher{
		engine:   engine,
		counter:  counter,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the polling loop. Implements the lifecycle hook shape used
// by the service runner.
func (w *Watcher) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})

	w.logger.Info("starting pending-order watcher", "interval", w.interval.String())
	go w.run(runCtx)

	return nil
}

// Stop terminates the polling loop and waits for it to drain.
func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel == nil {
		return nil
	}
	w.cancel()

	select {
	case <-w.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("pending-order watcher stopped")
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// Poll runs a single observation immediately, used on view entry so seeding
// does not wait a full interval.
func (w *Watcher) Poll(ctx context.Context) {
	w.poll(ctx)
}

func (w *Watcher) poll(ctx context.Context) {
	if !w.engine.Active() {
		return
	}

	count, err := w.counter.PendingCount(ctx)
	if err != nil {
		// A failed poll is not an alert condition; the baseline stays put.
		w.logger.Debug("pending count poll failed", "error", err)
		return
	}

	w.engine.Observe(count)
}
