package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cyberacademydev/cyberevents/internal/domain"
	"github.com/cyberacademydev/cyberevents/internal/registry"
)

type adminStub struct {
	createErr error
	cancelErr error
	created   registry.CreateInput
	event     domain.Event
}

func (s *adminStub) CreateEvent(_ context.Context, caller domain.Identity, in registry.CreateInput) (domain.Event, error) {
	if s.createErr != nil {
		return domain.Event{}, s.createErr
	}
	s.created = in
	ev := s.event
	ev.Organizer = caller
	return ev, nil
}

func (s *adminStub) CancelEvent(context.Context, domain.Identity, uint64) error {
	return s.cancelErr
}

type lifecycleStub struct {
	signUpErr    error
	closeErr     error
	getErr       error
	ticketID     uint64
	event        domain.Event
	events       []domain.Event
	participated bool
}

func (s *lifecycleStub) SignUp(context.Context, domain.Identity, uint64, domain.Amount, string) (uint64, error) {
	if s.signUpErr != nil {
		return 0, s.signUpErr
	}
	return s.ticketID, nil
}

func (s *lifecycleStub) CloseEvent(context.Context, domain.Identity, uint64) error {
	return s.closeErr
}

func (s *lifecycleStub) GetEvent(uint64) (domain.Event, error) {
	if s.getErr != nil {
		return domain.Event{}, s.getErr
	}
	return s.event, nil
}

func (s *lifecycleStub) ListEvents() []domain.Event { return s.events }

func (s *lifecycleStub) HasParticipated(domain.Identity, uint64) (bool, error) {
	return s.participated, nil
}

const validCreateBody = `{
	"start_time": "2025-06-01T13:00:00Z",
	"end_time": "2025-06-01T14:00:00Z",
	"ticket_price": 200,
	"ticket_count": 100,
	"cashback_percent": 0,
	"owner_percent": 50,
	"speakers_percent": 50,
	"speakers": ["speaker"],
	"metadata": {"hash": "abc", "hash_function": 18, "hash_size": 32}
}`

func TestHandleEvents(t *testing.T) {
	t.Parallel()

	t.Run("create success", func(t *testing.T) {
		admin := &adminStub{event: domain.Event{ID: 1, TicketsRemaining: 100}}
		handler := HandleEvents(admin, &lifecycleStub{})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, asRequest(http.MethodPost, "/events", validCreateBody, "organizer"))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"organizer":"organizer"`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
		if admin.created.TicketPrice != 200 || admin.created.TicketCount != 100 {
			t.Fatalf("unexpected input: %+v", admin.created)
		}
		if !admin.created.StartTime.Equal(time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)) {
			t.Fatalf("unexpected start time: %v", admin.created.StartTime)
		}
	})

	t.Run("create requires authentication", func(t *testing.T) {
		handler := HandleEvents(&adminStub{}, &lifecycleStub{})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, asRequest(http.MethodPost, "/events", validCreateBody, domain.Nobody))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("create failure mapping", func(t *testing.T) {
		cases := []struct {
			name           string
			body           string
			serviceErr     error
			expectedStatus int
		}{
			{"invalid json", `{"start_time":`, nil, http.StatusBadRequest},
			{"unparseable start time", `{"start_time":"tomorrow","end_time":"2025-06-01T14:00:00Z"}`, nil, http.StatusBadRequest},
			{"invalid split", validCreateBody, domain.ErrInvalidSplit, http.StatusBadRequest},
			{"invalid capacity", validCreateBody, domain.ErrInvalidCapacity, http.StatusBadRequest},
			{"not the organizer", validCreateBody, domain.ErrUnauthorized, http.StatusForbidden},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				handler := HandleEvents(&adminStub{createErr: tc.serviceErr}, &lifecycleStub{})
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, asRequest(http.MethodPost, "/events", tc.body, "organizer"))
				if rec.Code != tc.expectedStatus {
					t.Fatalf("expected %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
				}
			})
		}
	})

	t.Run("list", func(t *testing.T) {
		lifecycle := &lifecycleStub{events: []domain.Event{{ID: 1}, {ID: 2}}}
		handler := HandleEvents(&adminStub{}, lifecycle)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, asRequest(http.MethodGet, "/events", "", domain.Nobody))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"id":2`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		handler := HandleEvents(&adminStub{}, &lifecycleStub{})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, asRequest(http.MethodDelete, "/events", "", "organizer"))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})
}

func TestHandleEventByID(t *testing.T) {
	t.Parallel()

	t.Run("get event", func(t *testing.T) {
		lifecycle := &lifecycleStub{event: domain.Event{ID: 7, TicketsRemaining: 3}}
		handler := HandleEventByID(&adminStub{}, lifecycle)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, asRequest(http.MethodGet, "/events/7", "", domain.Nobody))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"tickets_remaining":3`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("get unknown event", func(t *testing.T) {
		handler := HandleEventByID(&adminStub{}, &lifecycleStub{getErr: domain.ErrEventNotFound})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, asRequest(http.MethodGet, "/events/99", "", domain.Nobody))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("sign up success", func(t *testing.T) {
		lifecycle := &lifecycleStub{ticketID: 12}
		handler := HandleEventByID(&adminStub{}, lifecycle)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, asRequest(http.MethodPost, "/events/7/signup", `{"payment":200,"commitment":"c"}`, "alice"))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"ticket_id":12`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("sign up failure mapping", func(t *testing.T) {
		cases := []struct {
			name           string
			serviceErr     error
			expectedStatus int
		}{
			{"sold out", domain.ErrSoldOut, http.StatusConflict},
			{"insufficient payment", domain.ErrInsufficientPayment, http.StatusBadRequest},
			{"already participated", domain.ErrAlreadyParticipated, http.StatusConflict},
			{"event started", domain.ErrEventStarted, http.StatusConflict},
			{"organizer sign-up", domain.ErrOrganizerCannotParticipate, http.StatusForbidden},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				handler := HandleEventByID(&adminStub{}, &lifecycleStub{signUpErr: tc.serviceErr})
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, asRequest(http.MethodPost, "/events/7/signup", `{"payment":200,"commitment":"c"}`, "alice"))
				if rec.Code != tc.expectedStatus {
					t.Fatalf("expected %d, got %d", tc.expectedStatus, rec.Code)
				}
			})
		}
	})

	t.Run("cancel and close", func(t *testing.T) {
		handler := HandleEventByID(&adminStub{}, &lifecycleStub{})

		for _, action := range []string{"cancel", "close"} {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, asRequest(http.MethodPost, "/events/7/"+action, "", "organizer"))
			if rec.Code != http.StatusNoContent {
				t.Fatalf("%s: expected 204, got %d", action, rec.Code)
			}
		}
	})

	t.Run("close before the end maps to conflict", func(t *testing.T) {
		handler := HandleEventByID(&adminStub{}, &lifecycleStub{closeErr: domain.ErrEventNotEnded})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, asRequest(http.MethodPost, "/events/7/close", "", "organizer"))
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("participation", func(t *testing.T) {
		handler := HandleEventByID(&adminStub{}, &lifecycleStub{participated: true})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, asRequest(http.MethodGet, "/events/7/participation?who=alice", "", domain.Nobody))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"participated":true`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("bad paths", func(t *testing.T) {
		handler := HandleEventByID(&adminStub{}, &lifecycleStub{})
		for _, target := range []string{"/events/abc", "/events/7/unknown", "/events/7/signup/extra"} {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, asRequest(http.MethodPost, target, "{}", "alice"))
			if rec.Code != http.StatusNotFound {
				t.Fatalf("%s: expected 404, got %d", target, rec.Code)
			}
		}
	})
}
