package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cyberacademydev/cyberevents/internal/domain"
)

const defaultRecordLimit = 100

// RecordReader is the minimal interface needed for the record feed.
type RecordReader interface {
	List(ctx context.Context, limit int) ([]domain.Record, error)
	ListByEvent(ctx context.Context, eventID uint64) ([]domain.Record, error)
	ListByTicket(ctx context.Context, ticketID uint64) ([]domain.Record, error)
}

// HandleRecords returns an HTTP handler for the /records feed. The feed can
// be filtered by event_id or ticket_id; unfiltered it returns the newest
// records capped by limit.
func HandleRecords(reader RecordReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		query := r.URL.Query()
		var (
			records []domain.Record
			err     error
		)
		switch {
		case query.Get("event_id") != "":
			eventID, parseErr := strconv.ParseUint(query.Get("event_id"), 10, 64)
			if parseErr != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid event_id")
				return
			}
			records, err = reader.ListByEvent(r.Context(), eventID)
		case query.Get("ticket_id") != "":
			ticketID, parseErr := strconv.ParseUint(query.Get("ticket_id"), 10, 64)
			if parseErr != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid ticket_id")
				return
			}
			records, err = reader.ListByTicket(r.Context(), ticketID)
		default:
			limit := defaultRecordLimit
			if raw := query.Get("limit"); raw != "" {
				limit, err = strconv.Atoi(raw)
				if err != nil || limit <= 0 {
					writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid limit")
					return
				}
			}
			records, err = reader.List(r.Context(), limit)
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		if records == nil {
			records = []domain.Record{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(records)
	}
}
