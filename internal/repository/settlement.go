package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SpaceCases_Go/internal/domain"
)

// Settlements defines persistence of pending open-container sessions
type Settlements interface {
	CreateSettlement(ctx context.Context, s domain.Settlement) error
	GetSettlement(ctx context.Context, sessionID uuid.UUID) (*domain.Settlement, error)
	ListOpenSettlements(ctx context.Context) ([]domain.Settlement, error)
	// FinalizeSettlement moves a reserved session to status. It returns false
	// when the session was already final, which makes it the single latch
	// every finalization path must pass.
	FinalizeSettlement(ctx context.Context, sessionID uuid.UUID, status domain.SettlementStatus, settledAt time.Time) (bool, error)
}
