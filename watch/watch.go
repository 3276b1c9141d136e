// Package watch provides a generic "poll the input tree, detect change,
// debounce, rebuild" loop. It standardises the reactive pattern a build
// host needs so that every consumer gets consistent intervals, debounce
// windows, and observability for free.
//
// Typical usage:
//
//	w := watch.New(watch.TreeDetector("icons"), watch.Options{Debounce: 500 * time.Millisecond})
//	w.OnChange(ctx, func() error { return pipe.Run(ctx) })
package watch

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Detector reads a fingerprint of the watched input. Two calls that
// return different values mean "something changed". The concrete type
// is deliberately an opaque string — it maps naturally to a content
// digest of a file tree.
type Detector func(ctx context.Context) (string, error)

// Options tunes the watcher behaviour.
type Options struct {
	// Interval is the polling frequency. Default: 1s.
	Interval time.Duration
	// Debounce is the quiet period after a change is detected before
	// the action fires. If more changes arrive during the window the
	// timer resets. 0 means fire immediately. Default: 0.
	Debounce time.Duration
	// Logger overrides the default slog logger.
	Logger *slog.Logger
}

func (o *Options) defaults() {
	if o.Interval <= 0 {
		o.Interval = time.Second
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Watcher polls an input tree for changes and runs an action when a
// change is detected. It is safe for concurrent use.
type Watcher struct {
	detector Detector
	opts     Options

	// mu guards current, the fingerprint of the last successfully
	// processed state.
	mu      sync.Mutex
	current string

	// Counters for observability (exported via Stats).
	checks    atomic.Int64
	changes   atomic.Int64
	errors    atomic.Int64
	rebuilds  atomic.Int64
	rebuildNs atomic.Int64
}

// Stats are point-in-time counters.
type Stats struct {
	Checks          int64         `json:"checks"`
	ChangesDetected int64         `json:"changes_detected"`
	Errors          int64         `json:"errors"`
	Rebuilds        int64         `json:"rebuilds"`
	AvgRebuildTime  time.Duration `json:"avg_rebuild_time"`
}

// New creates a Watcher. Call OnChange to start the loop.
func New(detector Detector, opts Options) *Watcher {
	opts.defaults()
	return &Watcher{detector: detector, opts: opts}
}

// Stats returns the current counters.
func (w *Watcher) Stats() Stats {
	s := Stats{
		Checks:          w.checks.Load(),
		ChangesDetected: w.changes.Load(),
		Errors:          w.errors.Load(),
		Rebuilds:        w.rebuilds.Load(),
	}
	if s.Rebuilds > 0 {
		s.AvgRebuildTime = time.Duration(w.rebuildNs.Load() / s.Rebuilds)
	}
	return s
}

// Fingerprint returns the last successfully processed fingerprint.
func (w *Watcher) Fingerprint() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// OnChange blocks until ctx is cancelled, polling at opts.Interval.
// When the detector reports a new fingerprint and the debounce window
// passes without further changes, action is called.
//
// If action returns an error the fingerprint is NOT advanced — the
// action will be retried on the next poll cycle.
func (w *Watcher) OnChange(ctx context.Context, action func() error) {
	log := w.opts.Logger

	// Seed the initial fingerprint so pre-existing state does not fire.
	if fp, err := w.detector(ctx); err != nil {
		log.Warn("watch: initial fingerprint failed", "error", err)
	} else {
		w.setFingerprint(fp)
	}

	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time
	pending := ""

	log.Info("watch: started", "interval", w.opts.Interval, "debounce", w.opts.Debounce)

	for {
		select {
		case <-ctx.Done():
			log.Info("watch: stopped")
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-ticker.C:
			w.checks.Add(1)
			cur, err := w.detector(ctx)
			if err != nil {
				w.errors.Add(1)
				log.Warn("watch: fingerprint failed", "error", err)
				continue
			}
			if cur != w.Fingerprint() && cur != pending {
				w.changes.Add(1)
				pending = cur

				if w.opts.Debounce <= 0 {
					w.fire(log, action, pending)
					pending = ""
				} else {
					// (Re)start the debounce timer only when the
					// pending fingerprint actually changed, not on
					// every poll cycle.
					if debounceTimer != nil {
						debounceTimer.Stop()
					}
					debounceTimer = time.NewTimer(w.opts.Debounce)
					debounceCh = debounceTimer.C
					log.Debug("watch: change detected, debouncing")
				}
			}

		case <-debounceCh:
			debounceCh = nil
			if pending != "" {
				w.fire(log, action, pending)
				pending = ""
			}
		}
	}
}

func (w *Watcher) fire(log *slog.Logger, action func() error, fp string) {
	log.Info("watch: rebuilding")
	start := time.Now()
	if err := action(); err != nil {
		w.errors.Add(1)
		log.Error("watch: rebuild failed", "error", err)
		return
	}
	elapsed := time.Since(start)
	w.rebuilds.Add(1)
	w.rebuildNs.Add(int64(elapsed))
	w.setFingerprint(fp)
	log.Info("watch: rebuild complete", "duration", elapsed)
}

func (w *Watcher) setFingerprint(fp string) {
	w.mu.Lock()
	w.current = fp
	w.mu.Unlock()
}
