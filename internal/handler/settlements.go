package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/logger"
	"github.com/osse101/SpaceCases_Go/internal/settlement"
)

// OpenContainerRequest pays for and draws from a container
type OpenContainerRequest struct {
	AccountID int64  `json:"account_id" validate:"required,gt=0"`
	Container string `json:"container" validate:"required,max=128"`
}

// SettlementActionRequest identifies the account deciding a session
type SettlementActionRequest struct {
	AccountID int64 `json:"account_id" validate:"required,gt=0"`
}

// HandleOpenContainer handles POST /containers/open. The drawn item is held
// in a session until it is kept, sold or the window closes.
func HandleOpenContainer(svc settlement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OpenContainerRequest
		if err := DecodeAndValidateRequest(w, r, &req, "Open container"); err != nil {
			return
		}

		session, err := svc.Open(r.Context(), req.AccountID, req.Container)
		if err != nil {
			respondServiceError(w, r, "open", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgContainerOpened,
			"account_id", req.AccountID,
			"session_id", session.ID,
			"item", session.Item.CatalogRef)
		respondJSON(w, r, http.StatusCreated, session)
	}
}

// HandleKeepSettlement handles POST /settlements/{sessionID}/keep
func HandleKeepSettlement(svc settlement.Service) http.HandlerFunc {
	return handleSettlementDecision("keep", svc.Keep)
}

// HandleSellSettlement handles POST /settlements/{sessionID}/sell
func HandleSellSettlement(svc settlement.Service) http.HandlerFunc {
	return handleSettlementDecision("sell", svc.Sell)
}

func handleSettlementDecision(op string, decide func(ctx context.Context, accountID int64, sessionID uuid.UUID) (*domain.SettlementOutcome, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := sessionIDParam(w, r)
		if !ok {
			return
		}
		var req SettlementActionRequest
		if err := DecodeAndValidateRequest(w, r, &req, op); err != nil {
			return
		}

		outcome, err := decide(r.Context(), req.AccountID, sessionID)
		if err != nil {
			respondServiceError(w, r, op, err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgSettlementDone,
			"account_id", req.AccountID,
			"session_id", sessionID,
			"status", outcome.Settlement.Status)
		respondJSON(w, r, http.StatusOK, outcome)
	}
}

// HandleGetSettlement handles GET /settlements/{sessionID}
func HandleGetSettlement(svc settlement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := sessionIDParam(w, r)
		if !ok {
			return
		}

		session, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			respondServiceError(w, r, "get settlement", err)
			return
		}
		respondJSON(w, r, http.StatusOK, session)
	}
}
