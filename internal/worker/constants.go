package worker

import "time"

// Pool defaults
const (
	DefaultPoolWorkers = 4
	DefaultQueueSize   = 256
)

// Failed expiries are retried after 1s, 2s, 4s, ... up to a minute apart
const (
	DefaultExpiryRetryDelay = time.Second
	MaxExpiryRetryDelay     = time.Minute

	maxBackoffDoublings = 30
)

// Log messages - worker pool
const (
	LogMsgWorkerJobFailed    = "Worker job failed"
	LogMsgWorkerShuttingDown = "Shutting down worker"
	LogMsgTimerCancelled     = "Cancelled pending timer"
)

// Log messages - settlement worker
const (
	LogMsgFailedToListOpenSettlements = "Failed to list open settlements on startup"
	LogMsgSweptOpenSettlements        = "Scheduled open settlements from startup sweep"
	LogMsgSchedulingExpiry            = "Scheduling settlement expiry"
	LogMsgExpiringSettlement          = "Expiring settlement"
	LogMsgSettlementAlreadySettled    = "Settlement already finalized before expiry"
	LogMsgExpiryDropped               = "Expiry dropped, worker stopping"
	LogMsgExpiryRetryScheduled        = "Settlement expiry failed, retry scheduled"
	LogMsgWorkerShutdownComplete      = "Settlement worker shutdown complete"
	LogMsgWorkerShutdownTimeout       = "Settlement worker shutdown timeout, some expiries may still be running"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)

const workerNameSettlement = "settlement worker"
