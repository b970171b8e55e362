package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SpaceCases_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Event types
const (
	SettlementOpened    Type = "settlement.opened"
	SettlementFinalized Type = "settlement.finalized"
)

// SettlementOpenedPayloadV1 announces a reserved session and its deadline
type SettlementOpenedPayloadV1 struct {
	SessionID  uuid.UUID `json:"session_id"`
	AccountID  int64     `json:"account_id"`
	Container  string    `json:"container"`
	CatalogRef string    `json:"catalog_ref"`
	AmountPaid int64     `json:"amount_paid"`
	SellPrice  int64     `json:"sell_price"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// SettlementFinalizedPayloadV1 announces the single successful finalization of a session
type SettlementFinalizedPayloadV1 struct {
	SessionID uuid.UUID               `json:"session_id"`
	AccountID int64                   `json:"account_id"`
	Status    domain.SettlementStatus `json:"status"`
	Timestamp int64                   `json:"timestamp"`
}

// NewSettlementOpenedEvent creates a settlement opened event
func NewSettlementOpenedEvent(s domain.Settlement) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SettlementOpened,
		Payload: SettlementOpenedPayloadV1{
			SessionID:  s.ID,
			AccountID:  s.AccountID,
			Container:  s.ContainerName,
			CatalogRef: s.Item.CatalogRef,
			AmountPaid: s.AmountPaid,
			SellPrice:  s.SellPrice,
			ExpiresAt:  s.ExpiresAt,
		},
		Metadata: Metadata{
			"session_id": s.ID.String(),
		},
	}
}

// NewSettlementFinalizedEvent creates a settlement finalized event
func NewSettlementFinalizedEvent(s domain.Settlement) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SettlementFinalized,
		Payload: SettlementFinalizedPayloadV1{
			SessionID: s.ID,
			AccountID: s.AccountID,
			Status:    s.Status,
			Timestamp: time.Now().Unix(),
		},
		Metadata: Metadata{
			"session_id": s.ID.String(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber of the event type synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(errFmtHandlers, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
