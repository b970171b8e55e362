package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/osse101/SpaceCases_Go/internal/domain"
)

const settlementColumns = `session_id, account_id, container_ref, amount_paid, item_kind::text,
	catalog_ref, details, sell_price, status::text, expires_at, created_at, settled_at`

const (
	queryInsertSettlement = `
		INSERT INTO pending_settlements (
			session_id, account_id, container_ref, amount_paid, item_kind,
			catalog_ref, details, sell_price, status, expires_at, created_at
		) VALUES ($1, $2, $3, $4, $5::text::item_kind, $6, $7, $8, $9::text::settlement_status, $10, $11)`

	queryGetSettlement = `SELECT ` + settlementColumns + ` FROM pending_settlements WHERE session_id = $1`

	queryListOpenSettlements = `SELECT ` + settlementColumns + `
		FROM pending_settlements WHERE status = 'reserved'
		ORDER BY expires_at`

	// The status predicate is the latch: of any number of concurrent
	// finalizers exactly one sees a row affected.
	queryFinalizeSettlement = `
		UPDATE pending_settlements
		SET status = $2::text::settlement_status, settled_at = $3
		WHERE session_id = $1 AND status = 'reserved'`
)

func scanSettlement(row pgx.Row) (*domain.Settlement, error) {
	var (
		s       domain.Settlement
		kind    string
		status  string
		details []byte
	)
	err := row.Scan(&s.ID, &s.AccountID, &s.ContainerName, &s.AmountPaid, &kind,
		&s.Item.CatalogRef, &details, &s.SellPrice, &status, &s.ExpiresAt, &s.CreatedAt, &s.SettledAt)
	if err != nil {
		return nil, err
	}
	attrs, err := unmarshalDetails(details)
	if err != nil {
		return nil, err
	}
	s.Item.Kind = domain.ItemKind(kind)
	s.Item.Attributes = attrs
	s.Status = domain.SettlementStatus(status)
	return &s, nil
}

// CreateSettlement inserts a reserved session
func (q queries) CreateSettlement(ctx context.Context, s domain.Settlement) error {
	details, err := marshalDetails(s.Item.Attributes)
	if err != nil {
		return err
	}
	status := s.Status
	if status == "" {
		status = domain.SettlementStatusReserved
	}
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = q.q.Exec(ctx, queryInsertSettlement,
		s.ID, s.AccountID, s.ContainerName, s.AmountPaid, string(s.Item.Kind),
		s.Item.CatalogRef, details, s.SellPrice, string(status), s.ExpiresAt, createdAt)
	if err != nil {
		return mapError(err, ErrMsgFailedToInsertSettlement)
	}
	return nil
}

// GetSettlement reads a session by id
func (q queries) GetSettlement(ctx context.Context, sessionID uuid.UUID) (*domain.Settlement, error) {
	s, err := scanSettlement(q.q.QueryRow(ctx, queryGetSettlement, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSettlementNotFound, sessionID)
		}
		return nil, mapError(err, ErrMsgFailedToGetSettlement)
	}
	return s, nil
}

// ListOpenSettlements returns every reserved session, earliest deadline first
func (q queries) ListOpenSettlements(ctx context.Context) ([]domain.Settlement, error) {
	rows, err := q.q.Query(ctx, queryListOpenSettlements)
	if err != nil {
		return nil, mapError(err, ErrMsgFailedToListSettlements)
	}
	defer rows.Close()

	var open []domain.Settlement
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, mapError(err, ErrMsgFailedToListSettlements)
		}
		open = append(open, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, ErrMsgFailedToListSettlements)
	}
	return open, nil
}

// FinalizeSettlement moves a reserved session to a final status
func (q queries) FinalizeSettlement(ctx context.Context, sessionID uuid.UUID, status domain.SettlementStatus, settledAt time.Time) (bool, error) {
	if !status.IsFinal() {
		return false, fmt.Errorf("%s: %q is not a final status", ErrMsgFailedToFinalizeSettlement, status)
	}
	tag, err := q.q.Exec(ctx, queryFinalizeSettlement, sessionID, string(status), settledAt)
	if err != nil {
		return false, mapError(err, ErrMsgFailedToFinalizeSettlement)
	}
	return tag.RowsAffected() == 1, nil
}
