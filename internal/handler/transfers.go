package handler

import (
	"net/http"

	"github.com/osse101/SpaceCases_Go/internal/ledger"
	"github.com/osse101/SpaceCases_Go/internal/logger"
)

// TransferRequest moves money between two accounts. Amount is a decimal
// string such as "12.50".
type TransferRequest struct {
	SenderID    int64  `json:"sender_id" validate:"required,gt=0"`
	RecipientID int64  `json:"recipient_id" validate:"required,gt=0,nefield=SenderID"`
	Amount      string `json:"amount" validate:"required,amount"`
}

// HandleTransfer handles POST /transfers
func HandleTransfer(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TransferRequest
		if err := DecodeAndValidateRequest(w, r, &req, "Transfer"); err != nil {
			return
		}

		amount, err := ledger.ParseAmount(req.Amount)
		if err != nil {
			respondServiceError(w, r, "transfer", err)
			return
		}

		result, err := svc.Transfer(r.Context(), req.SenderID, req.RecipientID, amount)
		if err != nil {
			respondServiceError(w, r, "transfer", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgTransferred,
			"sender", req.SenderID,
			"recipient", req.RecipientID,
			"amount", amount)
		respondJSON(w, r, http.StatusOK, result)
	}
}
