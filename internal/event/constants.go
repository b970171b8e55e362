package event

import "time"

// EventSchemaVersion is stamped on every event this package builds
const EventSchemaVersion = "1.0"

const (
	// RetryQueueBufferSize bounds the events awaiting background retry.
	// Publishes beyond it go straight to the dead-letter file.
	RetryQueueBufferSize = 1000

	DeadLetterFilePermissions = 0644
)

const (
	LogMsgEventPublishFailed    = "settlement event publish failed, queued for retry"
	LogMsgRetryQueueFull        = "retry queue full, dead-lettering settlement event"
	LogMsgDeadLetterWriteFailed = "could not append to dead-letter file"
	LogMsgEventRetryExhausted   = "settlement event retries exhausted"
	LogMsgEventRetryFailed      = "settlement event retry failed"
	LogMsgEventRetrySucceeded   = "settlement event delivered on retry"
	LogMsgEventDroppedShutdown  = "settlement event undeliverable at shutdown"
	LogMsgQueueDrainedShutdown  = "retry queue drained"
	LogMsgShutdownTimeout       = "publisher shutdown deadline exceeded"
	LogMsgEventDeadLettered     = "settlement event dead-lettered"

	errFmtHandlers = "%d handler(s) failed for %s: %v"
)

// CalculateRetryDelay returns base doubled once per prior attempt, so
// attempt 1 waits base, attempt 2 waits 2*base, attempt 3 waits 4*base
func CalculateRetryDelay(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return base << (attempt - 1)
}
