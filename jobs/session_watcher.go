package jobs

import (
	"context"
	"sync"
	"time"

	"drivedash/metrics"
	"drivedash/utils"

	"go.uber.org/zap"
)

// SessionChecker reports whether the held session token has expired.
type SessionChecker interface {
	Expired() bool
}

// SessionWatcher polls the session and calls onExpire once per expiry.
// Signing in again re-arms it.
type SessionWatcher struct {
	checker  SessionChecker
	interval time.Duration
	onExpire func()

	mu       sync.Mutex
	notified bool
}

func NewSessionWatcher(checker SessionChecker, interval time.Duration, onExpire func()) *SessionWatcher {
	return &SessionWatcher{checker: checker, interval: interval, onExpire: onExpire}
}

// Start runs the watcher until ctx is cancelled.
func (w *SessionWatcher) Start(ctx context.Context) {
	if w.interval <= 0 {
		utils.LogInfo("session watcher disabled")
		return
	}
	utils.LogInfo("starting session watcher", zap.Duration("interval", w.interval))

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.Check()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.Check()
			}
		}
	}()
}

// Check runs one poll and reports whether onExpire fired.
func (w *SessionWatcher) Check() bool {
	expired := w.checker.Expired()

	w.mu.Lock()
	fire := expired && !w.notified
	w.notified = expired
	w.mu.Unlock()

	if expired {
		metrics.SetSessionValid(false)
	}
	if fire {
		utils.LogWarning("session expired")
		if w.onExpire != nil {
			w.onExpire()
		}
	}
	return fire
}
