package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/event"
	"github.com/osse101/SpaceCases_Go/internal/logger"
	"github.com/osse101/SpaceCases_Go/internal/metrics"
)

// SettlementService is the part of the settlement service the worker drives
type SettlementService interface {
	Expire(ctx context.Context, sessionID uuid.UUID) (*domain.SettlementOutcome, error)
	ListOpen(ctx context.Context) ([]domain.Settlement, error)
}

// SettlementWorker auto-sells reserved sessions when their decision window
// closes. Expiries run on a bounded pool; the database latch makes a late
// or duplicate expiry harmless.
type SettlementWorker struct {
	BaseWorker
	service SettlementService
	pool    *Pool

	retryBase time.Duration
	retryMax  time.Duration
}

// NewSettlementWorker creates a worker running expiries on workers goroutines
func NewSettlementWorker(service SettlementService, workers, queueSize int) *SettlementWorker {
	w := &SettlementWorker{
		service:   service,
		pool:      NewPool(workers, queueSize),
		retryBase: DefaultExpiryRetryDelay,
		retryMax:  MaxExpiryRetryDelay,
	}
	w.init()
	return w
}

// Start starts the pool and schedules every session left open by a
// previous run. Sessions already past their deadline expire immediately.
func (w *SettlementWorker) Start(ctx context.Context) error {
	w.pool.Start()

	open, err := w.service.ListOpen(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgFailedToListOpenSettlements, "error", err)
		return fmt.Errorf("%s: %w", LogMsgFailedToListOpenSettlements, err)
	}
	for _, s := range open {
		w.Schedule(s.ID, s.ExpiresAt)
	}
	// the settlement service only counts sessions opened by this process
	metrics.SettlementsPending.Set(float64(len(open)))
	logger.FromContext(ctx).Info(LogMsgSweptOpenSettlements, "count", len(open))
	return nil
}

// Subscribe subscribes the worker to settlement events
func (w *SettlementWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.SettlementOpened, w.handleOpened)
	bus.Subscribe(event.SettlementFinalized, w.handleFinalized)
}

func (w *SettlementWorker) handleOpened(ctx context.Context, e event.Event) error {
	p, err := event.DecodePayload[event.SettlementOpenedPayloadV1](e.Payload)
	if err != nil {
		return err
	}
	w.Schedule(p.SessionID, p.ExpiresAt)
	return nil
}

func (w *SettlementWorker) handleFinalized(ctx context.Context, e event.Event) error {
	p, err := event.DecodePayload[event.SettlementFinalizedPayloadV1](e.Payload)
	if err != nil {
		return err
	}
	w.stopTimer(p.SessionID)
	return nil
}

// Schedule arranges for sessionID to be expired at deadline
func (w *SettlementWorker) Schedule(sessionID uuid.UUID, deadline time.Time) {
	if w.stopping() {
		return
	}
	delay := time.Until(deadline)
	logger.FromContext(context.Background()).Debug(LogMsgSchedulingExpiry, "session_id", sessionID, "delay", delay)

	if delay <= 0 {
		w.stopTimer(sessionID)
		w.enqueue(sessionID, 0)
		return
	}
	w.schedule(sessionID, delay, func() { w.enqueue(sessionID, 0) })
}

// Pending returns the number of armed deadline timers
func (w *SettlementWorker) Pending() int {
	return w.pending()
}

func (w *SettlementWorker) enqueue(sessionID uuid.UUID, attempt int) {
	job := expireJob{
		service:   w.service,
		sessionID: sessionID,
		attempt:   attempt,
		retry:     func(next int) { w.retryExpiry(sessionID, next) },
	}
	if !w.pool.Enqueue(job) {
		logger.FromContext(context.Background()).Warn(LogMsgExpiryDropped, "session_id", sessionID)
	}
}

// retryExpiry re-arms a failed expiry with doubling backoff. It keeps
// trying until the session settles or the worker stops; a finalized event
// cancels the timer like any other.
func (w *SettlementWorker) retryExpiry(sessionID uuid.UUID, attempt int) {
	if w.stopping() {
		return
	}
	delay := w.retryMax
	if attempt < maxBackoffDoublings {
		delay = min(event.CalculateRetryDelay(w.retryBase, attempt), w.retryMax)
	}
	logger.FromContext(context.Background()).Warn(LogMsgExpiryRetryScheduled,
		"session_id", sessionID, "attempt", attempt, "delay", delay)
	w.schedule(sessionID, delay, func() { w.enqueue(sessionID, attempt) })
}

// Shutdown cancels pending timers and waits for running expiries. Sessions
// not yet expired stay reserved and are picked up by the next Start.
func (w *SettlementWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	w.stopAll(ctx, workerNameSettlement)

	done := make(chan struct{})
	go func() {
		w.pool.Stop()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgWorkerShutdownComplete)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgWorkerShutdownTimeout)
		return ctx.Err()
	}
}

type expireJob struct {
	service   SettlementService
	sessionID uuid.UUID
	attempt   int
	retry     func(next int)
}

func (j expireJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgExpiringSettlement, "session_id", j.sessionID)

	_, err := j.service.Expire(ctx, j.sessionID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrSettlementAlreadyFinalized), errors.Is(err, domain.ErrSettlementNotFound):
		log.Debug(LogMsgSettlementAlreadySettled, "session_id", j.sessionID)
		return nil
	default:
		if j.retry != nil {
			j.retry(j.attempt + 1)
		}
		return err
	}
}
