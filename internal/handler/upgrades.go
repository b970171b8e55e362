package handler

import (
	"net/http"

	"github.com/osse101/SpaceCases_Go/internal/logger"
	"github.com/osse101/SpaceCases_Go/internal/upgrade"
)

// UpgradeRequest names an owned item and the catalog entry to roll for
type UpgradeRequest struct {
	AccountID int64  `json:"account_id" validate:"required,gt=0"`
	ItemID    int64  `json:"item_id" validate:"required,gt=0"`
	Target    string `json:"target" validate:"required,max=256"`
}

// HandleUpgradeQuote handles POST /upgrades/quote
func HandleUpgradeQuote(svc upgrade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpgradeRequest
		if err := DecodeAndValidateRequest(w, r, &req, "Upgrade quote"); err != nil {
			return
		}

		quote, err := svc.Quote(r.Context(), req.AccountID, req.ItemID, req.Target)
		if err != nil {
			respondServiceError(w, r, "upgrade quote", err)
			return
		}
		respondJSON(w, r, http.StatusOK, quote)
	}
}

// HandleUpgradeExecute handles POST /upgrades/execute. A lost roll consumes
// the item and still answers 200 with success=false.
func HandleUpgradeExecute(svc upgrade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpgradeRequest
		if err := DecodeAndValidateRequest(w, r, &req, "Upgrade execute"); err != nil {
			return
		}

		result, err := svc.Execute(r.Context(), req.AccountID, req.ItemID, req.Target)
		if err != nil {
			respondServiceError(w, r, "upgrade execute", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgUpgradeExecuted,
			"account_id", req.AccountID,
			"item_id", req.ItemID,
			"target", result.Quote.Target.Name,
			"success", result.Success)
		respondJSON(w, r, http.StatusOK, result)
	}
}
