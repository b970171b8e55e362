package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response. Code is stable across
// releases; Error is meant for people.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
}

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode before writing headers so an encoding failure can still be reported
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error(LogMsgEncodeFailed, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContext(r.Context()).Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, r, status, ErrorResponse{Error: message, Code: code})
}

// respondServiceError maps err onto a status and code. Server side failures
// are logged with the request id and reported with a generic message.
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := logger.FromContext(r.Context())
	status, code, message := mapServiceError(err)
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceFailed, "operation", op, "error", err)
	} else {
		log.Info(LogMsgServiceRejected, "operation", op, "code", code, "error", err)
	}
	respondError(w, r, status, code, message)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError    = "Something went wrong. Please try again."
	ErrMsgAccountNotFoundError  = "Account not found"
	ErrMsgAccountExistsError    = "Account is already registered"
	ErrMsgNotEnoughMoneyError   = "Not enough money"
	ErrMsgInvalidAmountError    = "Amount is not valid"
	ErrMsgInvalidTransferError  = "Transfer is not valid"
	ErrMsgAlreadyClaimedError   = "Daily reward already claimed. Come back tomorrow."
	ErrMsgInventoryFullError    = "Inventory is full. Sell something first."
	ErrMsgItemNotFoundError     = "You don't have that item"
	ErrMsgUnknownItemError      = "No market data for that item"
	ErrMsgContainerNotFoundErr  = "Container not found"
	ErrMsgCatalogUnavailableErr = "Market data is loading. Please try again shortly."
	ErrMsgUpgradeNotAllowedErr  = "That upgrade is not allowed"
	ErrMsgSettlementNotFoundErr = "Session not found"
	ErrMsgSettlementDoneError   = "That drop has already been settled"
	ErrMsgSettlementExpiredErr  = "Too late to keep that drop"
	ErrMsgConflictError         = "Busy. Please try again."
)

// mapServiceError converts a service error into an HTTP status, a stable
// code and a user-facing message
func mapServiceError(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, CodeAccountNotFound, ErrMsgAccountNotFoundError
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusConflict, CodeAccountExists, ErrMsgAccountExistsError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired, CodeInsufficientFunds, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, CodeInvalidAmount, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInvalidTransfer):
		return http.StatusBadRequest, CodeInvalidTransfer, ErrMsgInvalidTransferError
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusConflict, CodeAlreadyClaimed, ErrMsgAlreadyClaimedError
	case errors.Is(err, domain.ErrInventoryFull):
		return http.StatusConflict, CodeInventoryFull, ErrMsgInventoryFullError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, CodeItemNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrCatalogEntryMissing):
		return http.StatusUnprocessableEntity, CodeCatalogEntryMissing, ErrMsgUnknownItemError
	case errors.Is(err, domain.ErrContainerNotFound):
		return http.StatusNotFound, CodeContainerNotFound, ErrMsgContainerNotFoundErr
	case errors.Is(err, domain.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable, CodeCatalogUnavailable, ErrMsgCatalogUnavailableErr
	case errors.Is(err, domain.ErrUpgradeNotAllowed):
		return http.StatusUnprocessableEntity, CodeUpgradeNotAllowed, ErrMsgUpgradeNotAllowedErr
	case errors.Is(err, domain.ErrSettlementNotFound):
		return http.StatusNotFound, CodeSettlementNotFound, ErrMsgSettlementNotFoundErr
	case errors.Is(err, domain.ErrSettlementAlreadyFinalized):
		return http.StatusConflict, CodeSettlementFinalized, ErrMsgSettlementDoneError
	case errors.Is(err, domain.ErrSettlementExpired):
		return http.StatusGone, CodeSettlementExpired, ErrMsgSettlementExpiredErr
	case errors.Is(err, domain.ErrTxConflict):
		return http.StatusServiceUnavailable, CodeConflict, ErrMsgConflictError
	default:
		return http.StatusInternalServerError, CodeInternal, ErrMsgGenericServerError
	}
}
