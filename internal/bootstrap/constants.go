package bootstrap

import "time"

// DirPermission is the permission used when creating the dead-letter directory
const DirPermission = 0755

// Event system defaults, applied when the config leaves a value unset
const (
	EventDefaultMaxRetries     = 5
	EventDefaultRetryDelay     = 2 * time.Second
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages
const (
	LogMsgStarting                   = "Starting SpaceCases"
	LogMsgConfigurationLoaded        = "Configuration loaded"
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMigrationsApplied          = "Database migrations applied"
	LogMsgCatalogInitialized         = "Catalog initialized"
	LogMsgCatalogWatchUnavailable    = "Catalog file watch unavailable"
	LogMsgServicesInitialized        = "Services initialized"
	LogMsgShuttingDown               = "Shutting down"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgWorkerShutdownFailed       = "Settlement worker shutdown failed"
	LogMsgRefresherShutdownFailed    = "Catalog refresher shutdown failed"
	LogMsgPublisherShutdownFailed    = "Resilient publisher shutdown failed"
	LogMsgShuttingDownEventPublisher = "Flushing pending events"
	LogMsgStopped                    = "Server stopped"
)

// Error messages
const (
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	ErrMsgFailedConnectDatabase          = "failed to connect to database"
	ErrMsgFailedMigrate                  = "failed to apply migrations"
	ErrMsgFailedInitialCatalogLoad       = "failed to load catalog"
	ErrMsgFailedScheduleRefresh          = "failed to schedule catalog refresh"
	ErrMsgFailedStartWorker              = "failed to start settlement worker"
)
