package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cyberacademydev/cyberevents/internal/domain"
)

// AdminLedger is the minimal interface needed for the privileged ledger
// endpoints.
type AdminLedger interface {
	SetMinter(ctx context.Context, caller, minter domain.Identity) error
	Mint(ctx context.Context, caller, to domain.Identity, eventID uint64, commitment string) (uint64, error)
	Freeze(ctx context.Context, caller domain.Identity, ticketID uint64) error
}

// HandleAdminMinter returns an HTTP handler for POST /admin/minter.
func HandleAdminMinter(svc AdminLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := requirePost(w, r)
		if !ok {
			return
		}
		var req setMinterRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if err := svc.SetMinter(r.Context(), caller, domain.Identity(req.Minter)); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleAdminMint returns an HTTP handler for POST /admin/mint, issuing a
// ticket outside the sign-up flow.
func HandleAdminMint(svc AdminLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := requirePost(w, r)
		if !ok {
			return
		}
		var req mintRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		ticketID, err := svc.Mint(r.Context(), caller, domain.Identity(req.To), req.EventID, req.Commitment)
		if err != nil {
			respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(ticketIDResponse{TicketID: ticketID})
	}
}

// HandleAdminFreeze returns an HTTP handler for POST /admin/freeze.
func HandleAdminFreeze(svc AdminLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := requirePost(w, r)
		if !ok {
			return
		}
		var req freezeRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if err := svc.Freeze(r.Context(), caller, req.TicketID); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type setMinterRequest struct {
	Minter string `json:"minter"`
}

type mintRequest struct {
	To         string `json:"to"`
	EventID    uint64 `json:"event_id"`
	Commitment string `json:"commitment"`
}

type freezeRequest struct {
	TicketID uint64 `json:"ticket_id"`
}
