package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SpaceCases_Go/internal/logger"
)

// BaseWorker keeps one deadline timer per id. Timers never fire after
// stopAll has been called.
type BaseWorker struct {
	mu           sync.Mutex
	timers       map[uuid.UUID]*time.Timer
	shutdown     chan struct{}
	shutdownOnce sync.Once
}

func (w *BaseWorker) init() {
	if w.timers == nil {
		w.timers = make(map[uuid.UUID]*time.Timer)
	}
	if w.shutdown == nil {
		w.shutdown = make(chan struct{})
	}
}

// schedule runs fn once after d, replacing any timer already held for id
func (w *BaseWorker) schedule(id uuid.UUID, d time.Duration, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if existing, ok := w.timers[id]; ok {
		existing.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}
		// a timer that was replaced or stopped while firing does nothing
		w.mu.Lock()
		own := w.timers[id] == t
		if own {
			delete(w.timers, id)
		}
		w.mu.Unlock()
		if own {
			fn()
		}
	})
	w.timers[id] = t
}

func (w *BaseWorker) stopTimer(id uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	timer, ok := w.timers[id]
	if ok {
		timer.Stop()
		delete(w.timers, id)
	}
	return ok
}

func (w *BaseWorker) pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}

func (w *BaseWorker) stopping() bool {
	select {
	case <-w.shutdown:
		return true
	default:
		return false
	}
}

// stopAll signals shutdown and cancels every pending timer
func (w *BaseWorker) stopAll(ctx context.Context, workerName string) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgWorkerShuttingDown, "worker", workerName)

	w.shutdownOnce.Do(func() { close(w.shutdown) })

	w.mu.Lock()
	for id, timer := range w.timers {
		timer.Stop()
		log.Debug(LogMsgTimerCancelled, "worker", workerName, "id", id)
	}
	w.timers = make(map[uuid.UUID]*time.Timer)
	w.mu.Unlock()
}
