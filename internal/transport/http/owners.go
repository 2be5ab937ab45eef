package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/cyberacademydev/cyberevents/internal/domain"
)

// TicketBrowser is the minimal interface needed for the enumeration reads.
type TicketBrowser interface {
	TicketsOf(owner domain.Identity) ([]uint64, error)
	BalanceOf(owner domain.Identity) (int, error)
	TotalSupply() int
	TicketByIndex(index int) (uint64, error)
	TicketOfOwnerByIndex(owner domain.Identity, index int) (uint64, error)
}

// HandleOwnerTickets returns an HTTP handler for /owners/{identity}/tickets.
// With ?index=N it returns the single ticket at that position of the
// owner's enumeration.
func HandleOwnerTickets(browser TicketBrowser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		owner, ok := parseOwnerTicketsPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if raw := r.URL.Query().Get("index"); raw != "" {
			index, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeIndexOutOfRange, "invalid index")
				return
			}
			ticketID, err := browser.TicketOfOwnerByIndex(owner, index)
			if err != nil {
				respondError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(ticketIDResponse{TicketID: ticketID})
			return
		}

		tickets, err := browser.TicketsOf(owner)
		if err != nil {
			respondError(w, err)
			return
		}
		balance, err := browser.BalanceOf(owner)
		if err != nil {
			respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ownerTicketsResponse{
			Owner:   string(owner),
			Balance: balance,
			Tickets: tickets,
		})
	}
}

// HandleSupply returns an HTTP handler for /supply and /supply/{index}.
func HandleSupply(browser TicketBrowser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		switch {
		case len(parts) == 1 && parts[0] == "supply":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(supplyResponse{Total: browser.TotalSupply()})
		case len(parts) == 2 && parts[0] == "supply":
			index, err := strconv.Atoi(parts[1])
			if err != nil {
				writeError(w, http.StatusNotFound, codeNotFound, "not found")
				return
			}
			ticketID, err := browser.TicketByIndex(index)
			if err != nil {
				respondError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(ticketIDResponse{TicketID: ticketID})
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

type ownerTicketsResponse struct {
	Owner   string   `json:"owner"`
	Balance int      `json:"balance"`
	Tickets []uint64 `json:"tickets"`
}

type ticketIDResponse struct {
	TicketID uint64 `json:"ticket_id"`
}

type supplyResponse struct {
	Total int `json:"total"`
}

func parseOwnerTicketsPath(path string) (domain.Identity, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[0] != "owners" || parts[2] != "tickets" {
		return domain.Nobody, false
	}
	if parts[1] == "" {
		return domain.Nobody, false
	}
	return domain.Identity(parts[1]), true
}
