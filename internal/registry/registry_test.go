package registry

import (
	"context"
	"testing"
	"time"

	"github.com/cyberacademydev/cyberevents/internal/clock"
	"github.com/cyberacademydev/cyberevents/internal/domain"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func validInput() CreateInput {
	return CreateInput{
		StartTime:       now.Add(time.Hour),
		EndTime:         now.Add(2 * time.Hour),
		TicketPrice:     200,
		TicketCount:     100,
		CashbackPercent: 0,
		OwnerPercent:    50,
		SpeakersPercent: 50,
		Speakers:        []domain.Identity{"speaker"},
		Metadata:        domain.ContentDescriptor{Hash: "9f86d081", HashFunction: 12, HashSize: 20},
	}
}

func TestCreate(t *testing.T) {
	t.Parallel()

	t.Run("stores the record with zeroed mutable state", func(t *testing.T) {
		r := New(clock.NewFixed(now), nil)
		id, err := r.Create(context.Background(), "organizer", validInput())
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if id != 1 {
			t.Fatalf("expected first id 1, got %d", id)
		}

		ev, err := r.Get(id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if ev.Organizer != "organizer" {
			t.Fatalf("expected organizer, got %s", ev.Organizer)
		}
		if ev.TicketsRemaining != 100 || ev.PaidAmount != 0 {
			t.Fatalf("unexpected initial state: %+v", ev)
		}
		if len(ev.Participants) != 0 || ev.Canceled || ev.Closed {
			t.Fatalf("mutable state not zeroed: %+v", ev)
		}
		if ev.Metadata.HashFunction != 12 || ev.Metadata.HashSize != 20 {
			t.Fatalf("metadata descriptor not stored verbatim: %+v", ev.Metadata)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*CreateInput)
			want   error
		}{
			{"start time in the past", func(in *CreateInput) { in.StartTime = now.Add(-time.Minute) }, domain.ErrInvalidSchedule},
			{"start time equals now", func(in *CreateInput) { in.StartTime = now }, domain.ErrInvalidSchedule},
			{"end before start", func(in *CreateInput) { in.EndTime = in.StartTime }, domain.ErrInvalidSchedule},
			{"zero capacity", func(in *CreateInput) { in.TicketCount = 0 }, domain.ErrInvalidCapacity},
			{"no speakers", func(in *CreateInput) { in.Speakers = nil }, domain.ErrInvalidSpeakers},
			{"split above 100", func(in *CreateInput) { in.OwnerPercent, in.SpeakersPercent = 100, 100 }, domain.ErrInvalidSplit},
		}
		for _, tc := range cases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				r := New(clock.NewFixed(now), nil)
				in := validInput()
				tc.mutate(&in)
				if _, err := r.Create(context.Background(), "organizer", in); err != tc.want {
					t.Fatalf("expected %v, got %v", tc.want, err)
				}
			})
		}
	})

	t.Run("split summing to exactly 100 is allowed", func(t *testing.T) {
		r := New(clock.NewFixed(now), nil)
		in := validInput()
		in.OwnerPercent, in.SpeakersPercent = 60, 40
		if _, err := r.Create(context.Background(), "organizer", in); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

func TestCancel(t *testing.T) {
	t.Parallel()

	r := New(clock.NewFixed(now), nil)
	id, err := r.Create(context.Background(), "organizer", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := r.Cancel(context.Background(), 99); err != domain.ErrEventNotFound {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
	if err := r.Cancel(context.Background(), id); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	ev, _ := r.Get(id)
	if !ev.Canceled {
		t.Fatalf("expected canceled event")
	}
	if err := r.Cancel(context.Background(), id); err != domain.ErrAlreadyCanceled {
		t.Fatalf("expected ErrAlreadyCanceled, got %v", err)
	}
}

func TestParticipation(t *testing.T) {
	t.Parallel()

	r := New(clock.NewFixed(now), nil)
	id, err := r.Create(context.Background(), "organizer", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	r.AddParticipant(id, "alice")

	if ok, err := r.HasParticipated("alice", id); err != nil || !ok {
		t.Fatalf("expected alice to have participated (%v)", err)
	}
	if ok, err := r.HasParticipated("bob", id); err != nil || ok {
		t.Fatalf("expected bob not to have participated (%v)", err)
	}
	if _, err := r.HasParticipated(domain.Nobody, id); err != domain.ErrInvalidRecipient {
		t.Fatalf("expected ErrInvalidRecipient, got %v", err)
	}
	if _, err := r.HasParticipated("alice", 99); err != domain.ErrEventNotFound {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}

	ev, _ := r.Get(id)
	if len(ev.Participants) != 1 || ev.Participants[0] != "alice" {
		t.Fatalf("participant list not updated: %v", ev.Participants)
	}
}
