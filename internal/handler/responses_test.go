package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpaceCases_Go/internal/domain"
)

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrAccountNotFound, http.StatusNotFound, CodeAccountNotFound},
		{domain.ErrAccountExists, http.StatusConflict, CodeAccountExists},
		{domain.ErrInsufficientFunds, http.StatusPaymentRequired, CodeInsufficientFunds},
		{domain.ErrInvalidAmount, http.StatusBadRequest, CodeInvalidAmount},
		{domain.ErrInvalidTransfer, http.StatusBadRequest, CodeInvalidTransfer},
		{domain.ErrAlreadyClaimed, http.StatusConflict, CodeAlreadyClaimed},
		{domain.ErrInventoryFull, http.StatusConflict, CodeInventoryFull},
		{domain.ErrItemNotFound, http.StatusNotFound, CodeItemNotFound},
		{domain.ErrCatalogEntryMissing, http.StatusUnprocessableEntity, CodeCatalogEntryMissing},
		{domain.ErrContainerNotFound, http.StatusNotFound, CodeContainerNotFound},
		{domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, CodeCatalogUnavailable},
		{domain.ErrUpgradeNotAllowed, http.StatusUnprocessableEntity, CodeUpgradeNotAllowed},
		{domain.ErrSettlementNotFound, http.StatusNotFound, CodeSettlementNotFound},
		{domain.ErrSettlementAlreadyFinalized, http.StatusConflict, CodeSettlementFinalized},
		{domain.ErrSettlementExpired, http.StatusGone, CodeSettlementExpired},
		{domain.ErrTxConflict, http.StatusServiceUnavailable, CodeConflict},
		{domain.ErrInvalidContainer, http.StatusInternalServerError, CodeInternal},
		{errors.New("connection reset by peer"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode+"/"+tt.err.Error(), func(t *testing.T) {
			status, code, message := mapServiceError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, message)

			// wrapping keeps the mapping
			status, code, _ = mapServiceError(fmt.Errorf("session abc: %w", tt.err))
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestRespondServiceError_HidesInternalDetails(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	respondServiceError(w, req, "test", errors.New("pq: relation accounts does not exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeInternal, body.Code)
	assert.Equal(t, ErrMsgGenericServerError, body.Error)
	assert.NotContains(t, w.Body.String(), "relation")
}

func TestRespondJSON_EncodeFailure(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	respondJSON(w, req, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())
}
