package http

import (
	"encoding/json"
	"net/http"

	"github.com/cyberacademydev/cyberevents/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidIdentity    = "invalid_identity"
	codeInvalidSchedule    = "invalid_schedule"
	codeInvalidCapacity    = "invalid_capacity"
	codeInvalidSpeakers    = "invalid_speakers"
	codeInvalidSplit       = "invalid_split"
	codeIndexOutOfRange    = "index_out_of_range"
	codeInsufficient       = "insufficient_payment"
	codeCommitmentMismatch = "commitment_mismatch"
	codeTicketNotFound     = "ticket_not_found"
	codeEventNotFound      = "event_not_found"
	codeForbidden          = "forbidden"
	codeOrganizerSignUp    = "organizer_cannot_participate"
	codeAuthRequired       = "auth_required"
	codeInvalidToken       = "invalid_token"
	codeAlreadyCanceled    = "event_already_canceled"
	codeEventCanceled      = "event_canceled"
	codeEventNotCanceled   = "event_not_canceled"
	codeEventStarted       = "event_started"
	codeEventEnded         = "event_ended"
	codeEventNotEnded      = "event_not_ended"
	codeAlreadyClosed      = "event_already_closed"
	codeSoldOut            = "sold_out"
	codeAlreadyParticipate = "already_participated"
	codeTicketFrozen       = "ticket_frozen"
	codeAlreadyFrozen      = "ticket_already_frozen"
	codeTransferFailed     = "transfer_failed"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// respondError maps a domain sentinel to its HTTP status and stable error
// code. Every handler funnels service errors through here so the mapping
// stays in one place.
func respondError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrInvalidRecipient:
		writeError(w, http.StatusBadRequest, codeInvalidIdentity, err.Error())
	case domain.ErrInvalidSchedule:
		writeError(w, http.StatusBadRequest, codeInvalidSchedule, err.Error())
	case domain.ErrInvalidCapacity:
		writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
	case domain.ErrInvalidSpeakers:
		writeError(w, http.StatusBadRequest, codeInvalidSpeakers, err.Error())
	case domain.ErrInvalidSplit:
		writeError(w, http.StatusBadRequest, codeInvalidSplit, err.Error())
	case domain.ErrIndexOutOfRange:
		writeError(w, http.StatusBadRequest, codeIndexOutOfRange, err.Error())
	case domain.ErrInsufficientPayment:
		writeError(w, http.StatusBadRequest, codeInsufficient, err.Error())
	case domain.ErrCommitmentMismatch:
		writeError(w, http.StatusBadRequest, codeCommitmentMismatch, err.Error())
	case domain.ErrUnauthorized:
		writeError(w, http.StatusForbidden, codeForbidden, err.Error())
	case domain.ErrOrganizerCannotParticipate:
		writeError(w, http.StatusForbidden, codeOrganizerSignUp, err.Error())
	case domain.ErrTicketNotFound:
		writeError(w, http.StatusNotFound, codeTicketNotFound, err.Error())
	case domain.ErrEventNotFound:
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case domain.ErrAlreadyCanceled:
		writeError(w, http.StatusConflict, codeAlreadyCanceled, err.Error())
	case domain.ErrEventCanceled:
		writeError(w, http.StatusConflict, codeEventCanceled, err.Error())
	case domain.ErrEventNotCanceled:
		writeError(w, http.StatusConflict, codeEventNotCanceled, err.Error())
	case domain.ErrEventStarted:
		writeError(w, http.StatusConflict, codeEventStarted, err.Error())
	case domain.ErrEventEnded:
		writeError(w, http.StatusConflict, codeEventEnded, err.Error())
	case domain.ErrEventNotEnded:
		writeError(w, http.StatusConflict, codeEventNotEnded, err.Error())
	case domain.ErrAlreadyClosed:
		writeError(w, http.StatusConflict, codeAlreadyClosed, err.Error())
	case domain.ErrSoldOut:
		writeError(w, http.StatusConflict, codeSoldOut, err.Error())
	case domain.ErrAlreadyParticipated:
		writeError(w, http.StatusConflict, codeAlreadyParticipate, err.Error())
	case domain.ErrTicketFrozen:
		writeError(w, http.StatusConflict, codeTicketFrozen, err.Error())
	case domain.ErrAlreadyFrozen:
		writeError(w, http.StatusConflict, codeAlreadyFrozen, err.Error())
	case domain.ErrTransferFailed:
		writeError(w, http.StatusConflict, codeTransferFailed, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
