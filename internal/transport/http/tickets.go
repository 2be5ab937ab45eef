package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/cyberacademydev/cyberevents/internal/domain"
)

// TicketLedger is the minimal interface needed for the owner-facing ticket
// operations and reads.
type TicketLedger interface {
	GetTicket(ticketID uint64) (domain.Ticket, error)
	Transfer(ctx context.Context, caller, from, to domain.Identity, ticketID uint64) error
	TransferChecked(ctx context.Context, caller, from, to domain.Identity, ticketID uint64, data []byte) error
	Approve(ctx context.Context, caller domain.Identity, ticketID uint64, spender domain.Identity) error
	ClearApproval(ctx context.Context, caller domain.Identity, ticketID uint64) error
}

// TicketLifecycle is the minimal interface needed for check-in and refunds.
type TicketLifecycle interface {
	CheckIn(ctx context.Context, caller domain.Identity, ticketID uint64, revealed string) error
	Refund(ctx context.Context, caller domain.Identity, ticketID uint64) error
}

// HandleTicketByID returns an HTTP handler for /tickets/{id} and the action
// routes below it: checkin, refund, transfer, approve and clear-approval.
func HandleTicketByID(ledger TicketLedger, lifecycle TicketLifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID, action, ok := parseTicketPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch action {
		case "":
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			ticket, err := ledger.GetTicket(ticketID)
			if err != nil {
				respondError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(newTicketResponse(ticket))
		case "checkin":
			caller, ok := requirePost(w, r)
			if !ok {
				return
			}
			var req checkInRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if err := lifecycle.CheckIn(r.Context(), caller, ticketID, req.Data); err != nil {
				respondError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		case "refund":
			caller, ok := requirePost(w, r)
			if !ok {
				return
			}
			if err := lifecycle.Refund(r.Context(), caller, ticketID); err != nil {
				respondError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		case "transfer":
			caller, ok := requirePost(w, r)
			if !ok {
				return
			}
			var req transferRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			from := domain.Identity(req.From)
			if from.IsZero() {
				from = caller
			}
			var err error
			if req.Checked {
				err = ledger.TransferChecked(r.Context(), caller, from, domain.Identity(req.To), ticketID, []byte(req.Data))
			} else {
				err = ledger.Transfer(r.Context(), caller, from, domain.Identity(req.To), ticketID)
			}
			if err != nil {
				respondError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		case "approve":
			caller, ok := requirePost(w, r)
			if !ok {
				return
			}
			var req approveRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if err := ledger.Approve(r.Context(), caller, ticketID, domain.Identity(req.Spender)); err != nil {
				respondError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		case "clear-approval":
			caller, ok := requirePost(w, r)
			if !ok {
				return
			}
			if err := ledger.ClearApproval(r.Context(), caller, ticketID); err != nil {
				respondError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

type ticketResponse struct {
	ID             uint64 `json:"id"`
	Owner          string `json:"owner"`
	Approved       string `json:"approved,omitempty"`
	Frozen         bool   `json:"frozen"`
	EventID        uint64 `json:"event_id"`
	DataCommitment string `json:"data_commitment"`
}

func newTicketResponse(ticket domain.Ticket) ticketResponse {
	return ticketResponse{
		ID:             ticket.ID,
		Owner:          string(ticket.Owner),
		Approved:       string(ticket.Approved),
		Frozen:         ticket.Frozen,
		EventID:        ticket.EventID,
		DataCommitment: ticket.DataCommitment,
	}
}

type checkInRequest struct {
	Data string `json:"data"`
}

type transferRequest struct {
	From    string `json:"from,omitempty"`
	To      string `json:"to"`
	Checked bool   `json:"checked,omitempty"`
	Data    string `json:"data,omitempty"`
}

type approveRequest struct {
	Spender string `json:"spender"`
}

func parseTicketPath(path string) (uint64, string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || len(parts) > 3 || parts[0] != "tickets" {
		return 0, "", false
	}
	ticketID, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, "", false
	}
	if len(parts) == 2 {
		return ticketID, "", true
	}
	if parts[2] == "" {
		return 0, "", false
	}
	return ticketID, parts[2], true
}
