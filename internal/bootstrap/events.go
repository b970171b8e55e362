package bootstrap

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/SpaceCases_Go/internal/config"
	"github.com/osse101/SpaceCases_Go/internal/event"
)

// InitializeEventSystem builds the in-process bus that carries settlement
// events to the worker, fronted by a publisher that retries and
// dead-letters what the bus rejects.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	maxRetries := cmp.Or(cfg.EventMaxRetries, EventDefaultMaxRetries)
	retryDelay := cmp.Or(cfg.EventRetryDelay, EventDefaultRetryDelay)
	deadLetter := cmp.Or(cfg.EventDeadLetterPath, EventDefaultDeadLetterPath)

	if err := os.MkdirAll(filepath.Dir(deadLetter), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, maxRetries, retryDelay, deadLetter)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", maxRetries,
		"retry_delay", retryDelay,
		"deadletter_path", deadLetter)
	return bus, publisher, nil
}
