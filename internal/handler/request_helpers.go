package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osse101/SpaceCases_Go/internal/logger"
)

// maxRequestBody caps a single JSON body. The server applies a larger
// transport limit on top.
const maxRequestBody = 64 << 10

// DecodeAndValidateRequest decodes a JSON request body into req and validates
// its struct tags. On failure the response has already been written and the
// handler should return.
//
//	var req OpenContainerRequest
//	if err := DecodeAndValidateRequest(w, r, &req, "Open container"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(w http.ResponseWriter, r *http.Request, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		log.Info(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, r, http.StatusBadRequest, CodeInvalidRequest, ErrMsgInvalidRequest)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Info(LogMsgValidationFailed, "action", actionName, "error", err)
		respondJSON(w, r, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Code:   CodeInvalidRequest,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// pathID parses a positive integer URL parameter. On failure a 400 has been
// written and ok is false.
func pathID(w http.ResponseWriter, r *http.Request, param, message string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, r, http.StatusBadRequest, CodeInvalidRequest, message)
		return 0, false
	}
	return id, true
}

func accountIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	return pathID(w, r, "id", ErrMsgInvalidAccountID)
}

func itemIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	return pathID(w, r, "itemID", ErrMsgInvalidItemID)
}

func sessionIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeInvalidRequest, ErrMsgInvalidSessionID)
		return uuid.Nil, false
	}
	return id, true
}

// queryLimit reads an optional positive limit capped at max
func queryLimit(w http.ResponseWriter, r *http.Request, def, max int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		respondError(w, r, http.StatusBadRequest, CodeInvalidRequest, ErrMsgInvalidLimit)
		return 0, false
	}
	if n > max {
		n = max
	}
	return n, true
}
