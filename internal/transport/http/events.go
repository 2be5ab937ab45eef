package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cyberacademydev/cyberevents/internal/domain"
	"github.com/cyberacademydev/cyberevents/internal/registry"
)

// EventAdmin is the minimal interface needed for event creation and
// cancellation.
type EventAdmin interface {
	CreateEvent(ctx context.Context, caller domain.Identity, in registry.CreateInput) (domain.Event, error)
	CancelEvent(ctx context.Context, caller domain.Identity, eventID uint64) error
}

// EventLifecycle is the minimal interface needed for the participant and
// settlement flows.
type EventLifecycle interface {
	SignUp(ctx context.Context, caller domain.Identity, eventID uint64, payment domain.Amount, commitment string) (uint64, error)
	CloseEvent(ctx context.Context, caller domain.Identity, eventID uint64) error
	GetEvent(eventID uint64) (domain.Event, error)
	ListEvents() []domain.Event
	HasParticipated(who domain.Identity, eventID uint64) (bool, error)
}

// HandleEvents returns an HTTP handler for the /events collection.
func HandleEvents(admin EventAdmin, lifecycle EventLifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			events := lifecycle.ListEvents()
			resp := make([]eventResponse, 0, len(events))
			for _, event := range events {
				resp = append(resp, newEventResponse(event))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		case http.MethodPost:
			caller, ok := requireIdentity(w, r)
			if !ok {
				return
			}

			var req createEventRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			in, err := req.toInput()
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidSchedule, err.Error())
				return
			}

			event, err := admin.CreateEvent(r.Context(), caller, in)
			if err != nil {
				respondError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(newEventResponse(event))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleEventByID returns an HTTP handler for /events/{id} and the action
// routes below it: cancel, close, signup and participation.
func HandleEventByID(admin EventAdmin, lifecycle EventLifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, action, ok := parseEventPath(r.URL.Path)
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
			event, err := lifecycle.GetEvent(eventID)
			if err != nil {
				respondError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(newEventResponse(event))
		case "participation":
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			who := domain.Identity(r.URL.Query().Get("who"))
			participated, err := lifecycle.HasParticipated(who, eventID)
			if err != nil {
				respondError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(participationResponse{Participated: participated})
		case "cancel":
			caller, ok := requirePost(w, r)
			if !ok {
				return
			}
			if err := admin.CancelEvent(r.Context(), caller, eventID); err != nil {
				respondError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		case "close":
			caller, ok := requirePost(w, r)
			if !ok {
				return
			}
			if err := lifecycle.CloseEvent(r.Context(), caller, eventID); err != nil {
				respondError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		case "signup":
			caller, ok := requirePost(w, r)
			if !ok {
				return
			}
			var req signUpRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			ticketID, err := lifecycle.SignUp(r.Context(), caller, eventID, domain.Amount(req.Payment), req.Commitment)
			if err != nil {
				respondError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(signUpResponse{TicketID: ticketID})
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

// requirePost rejects non-POST methods and anonymous callers.
func requirePost(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return domain.Nobody, false
	}
	return requireIdentity(w, r)
}

type createEventRequest struct {
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	TicketPrice     int64    `json:"ticket_price"`
	TicketCount     uint64   `json:"ticket_count"`
	CashbackPercent uint8    `json:"cashback_percent"`
	OwnerPercent    uint8    `json:"owner_percent"`
	SpeakersPercent uint8    `json:"speakers_percent"`
	Speakers        []string `json:"speakers"`
	Metadata        metadata `json:"metadata"`
}

type metadata struct {
	Hash         string `json:"hash"`
	HashFunction uint8  `json:"hash_function"`
	HashSize     uint8  `json:"hash_size"`
}

func (r createEventRequest) toInput() (registry.CreateInput, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return registry.CreateInput{}, err
	}
	endTime, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return registry.CreateInput{}, err
	}
	speakers := make([]domain.Identity, 0, len(r.Speakers))
	for _, s := range r.Speakers {
		speakers = append(speakers, domain.Identity(s))
	}
	return registry.CreateInput{
		StartTime:       startTime,
		EndTime:         endTime,
		TicketPrice:     domain.Amount(r.TicketPrice),
		TicketCount:     r.TicketCount,
		CashbackPercent: r.CashbackPercent,
		OwnerPercent:    r.OwnerPercent,
		SpeakersPercent: r.SpeakersPercent,
		Speakers:        speakers,
		Metadata: domain.ContentDescriptor{
			Hash:         r.Metadata.Hash,
			HashFunction: r.Metadata.HashFunction,
			HashSize:     r.Metadata.HashSize,
		},
	}, nil
}

type eventResponse struct {
	ID               uint64    `json:"id"`
	Organizer        string    `json:"organizer"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	TicketPrice      int64     `json:"ticket_price"`
	CashbackPercent  uint8     `json:"cashback_percent"`
	OwnerPercent     uint8     `json:"owner_percent"`
	SpeakersPercent  uint8     `json:"speakers_percent"`
	TicketsRemaining uint64    `json:"tickets_remaining"`
	PaidAmount       int64     `json:"paid_amount"`
	Speakers         []string  `json:"speakers"`
	Canceled         bool      `json:"canceled"`
	Closed           bool      `json:"closed"`
	Metadata         metadata  `json:"metadata"`
}

func newEventResponse(event domain.Event) eventResponse {
	speakers := make([]string, 0, len(event.Speakers))
	for _, s := range event.Speakers {
		speakers = append(speakers, string(s))
	}
	return eventResponse{
		ID:               event.ID,
		Organizer:        string(event.Organizer),
		StartTime:        event.StartTime,
		EndTime:          event.EndTime,
		TicketPrice:      int64(event.TicketPrice),
		CashbackPercent:  event.CashbackPercent,
		OwnerPercent:     event.OwnerPercent,
		SpeakersPercent:  event.SpeakersPercent,
		TicketsRemaining: event.TicketsRemaining,
		PaidAmount:       int64(event.PaidAmount),
		Speakers:         speakers,
		Canceled:         event.Canceled,
		Closed:           event.Closed,
		Metadata: metadata{
			Hash:         event.Metadata.Hash,
			HashFunction: event.Metadata.HashFunction,
			HashSize:     event.Metadata.HashSize,
		},
	}
}

type signUpRequest struct {
	Payment    int64  `json:"payment"`
	Commitment string `json:"commitment"`
}

type signUpResponse struct {
	TicketID uint64 `json:"ticket_id"`
}

type participationResponse struct {
	Participated bool `json:"participated"`
}

func parseEventPath(path string) (uint64, string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || len(parts) > 3 || parts[0] != "events" {
		return 0, "", false
	}
	eventID, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, "", false
	}
	if len(parts) == 2 {
		return eventID, "", true
	}
	if parts[2] == "" {
		return 0, "", false
	}
	return eventID, parts[2], true
}
