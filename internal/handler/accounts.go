package handler

import (
	"net/http"

	"github.com/osse101/SpaceCases_Go/internal/ledger"
	"github.com/osse101/SpaceCases_Go/internal/logger"
)

// RegisterAccountRequest registers a platform user id as an account
type RegisterAccountRequest struct {
	AccountID int64 `json:"account_id" validate:"required,gt=0"`
}

// BalanceResponse reports a balance in cents along with its dollar rendering
type BalanceResponse struct {
	AccountID int64  `json:"account_id"`
	Balance   int64  `json:"balance"`
	Formatted string `json:"formatted"`
}

// ClaimResponse is returned from the daily claim
type ClaimResponse struct {
	Amount    int64  `json:"amount"`
	Balance   int64  `json:"balance"`
	Streak    int    `json:"streak"`
	Formatted string `json:"formatted"`
}

// HandleRegisterAccount handles POST /accounts/register
func HandleRegisterAccount(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterAccountRequest
		if err := DecodeAndValidateRequest(w, r, &req, "Register account"); err != nil {
			return
		}

		account, err := svc.Register(r.Context(), req.AccountID)
		if err != nil {
			respondServiceError(w, r, "register", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgAccountRegistered, "account_id", account.ID)
		respondJSON(w, r, http.StatusCreated, account)
	}
}

// HandleCloseAccount handles DELETE /accounts/{id}. Items and open sessions
// go with the account.
func HandleCloseAccount(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := accountIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.Close(r.Context(), accountID); err != nil {
			respondServiceError(w, r, "close", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgAccountClosed, "account_id", accountID)
		respondJSON(w, r, http.StatusOK, SuccessResponse{Message: MsgAccountClosed})
	}
}

// HandleGetBalance handles GET /accounts/{id}/balance
func HandleGetBalance(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := accountIDParam(w, r)
		if !ok {
			return
		}

		balance, err := svc.Balance(r.Context(), accountID)
		if err != nil {
			respondServiceError(w, r, "balance", err)
			return
		}

		respondJSON(w, r, http.StatusOK, BalanceResponse{
			AccountID: accountID,
			Balance:   balance,
			Formatted: ledger.FormatAmount(balance),
		})
	}
}

// HandleClaim handles POST /accounts/{id}/claim
func HandleClaim(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := accountIDParam(w, r)
		if !ok {
			return
		}

		result, err := svc.Claim(r.Context(), accountID)
		if err != nil {
			respondServiceError(w, r, "claim", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgRewardClaimed,
			"account_id", accountID,
			"amount", result.Amount,
			"streak", result.Streak)

		respondJSON(w, r, http.StatusOK, ClaimResponse{
			Amount:    result.Amount,
			Balance:   result.Balance,
			Streak:    result.Streak,
			Formatted: ledger.FormatAmount(result.Amount),
		})
	}
}
