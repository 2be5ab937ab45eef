// Package registry is the catalog of event records: schedule, pricing,
// percentage splits, participant set, speaker list and cancellation state.
package registry

import (
	"context"
	"time"

	"github.com/cyberacademydev/cyberevents/internal/clock"
	"github.com/cyberacademydev/cyberevents/internal/domain"
)

// Registry owns all event records. Like the ledger it is not safe for
// concurrent use; the app layer serializes access.
type Registry struct {
	clock clock.Clock
	rec   domain.Recorder

	nextID       uint64
	events       map[uint64]*domain.Event
	order        []uint64
	participated map[uint64]map[domain.Identity]bool
}

func New(clk clock.Clock, rec domain.Recorder) *Registry {
	if rec == nil {
		rec = domain.NopRecorder{}
	}
	return &Registry{
		clock:        clk,
		rec:          rec,
		events:       make(map[uint64]*domain.Event),
		participated: make(map[uint64]map[domain.Identity]bool),
	}
}

// CreateInput carries everything fixed at event creation.
type CreateInput struct {
	StartTime       time.Time
	EndTime         time.Time
	TicketPrice     domain.Amount
	TicketCount     uint64
	CashbackPercent uint8
	OwnerPercent    uint8
	SpeakersPercent uint8
	Speakers        []domain.Identity
	Metadata        domain.ContentDescriptor
}

// Create validates the input against the current time and stores a new
// event owned by the organizer. The id sequence starts at 1.
func (r *Registry) Create(ctx context.Context, organizer domain.Identity, in CreateInput) (uint64, error) {
	now := r.clock.Now()
	if !in.StartTime.After(now) || !in.EndTime.After(in.StartTime) {
		return 0, domain.ErrInvalidSchedule
	}
	if in.TicketCount == 0 {
		return 0, domain.ErrInvalidCapacity
	}
	if len(in.Speakers) == 0 {
		return 0, domain.ErrInvalidSpeakers
	}
	if int(in.OwnerPercent)+int(in.SpeakersPercent) > 100 {
		return 0, domain.ErrInvalidSplit
	}

	r.nextID++
	id := r.nextID
	speakers := make([]domain.Identity, len(in.Speakers))
	copy(speakers, in.Speakers)
	r.events[id] = &domain.Event{
		ID:               id,
		Organizer:        organizer,
		StartTime:        in.StartTime,
		EndTime:          in.EndTime,
		TicketPrice:      in.TicketPrice,
		CashbackPercent:  in.CashbackPercent,
		OwnerPercent:     in.OwnerPercent,
		SpeakersPercent:  in.SpeakersPercent,
		TicketsRemaining: in.TicketCount,
		Speakers:         speakers,
		Metadata:         in.Metadata,
	}
	r.order = append(r.order, id)
	r.participated[id] = make(map[domain.Identity]bool)

	r.rec.Record(ctx, domain.Record{Kind: domain.RecordEventCreated, EventID: id, To: organizer})
	return id, nil
}

// Cancel marks the event canceled, blocking further sign-up and check-in
// and enabling refunds.
func (r *Registry) Cancel(ctx context.Context, eventID uint64) error {
	ev, err := r.Lookup(eventID)
	if err != nil {
		return err
	}
	if ev.Canceled {
		return domain.ErrAlreadyCanceled
	}
	ev.Canceled = true

	r.rec.Record(ctx, domain.Record{Kind: domain.RecordEventCanceled, EventID: eventID})
	return nil
}

// Lookup returns the live event record. Mutations through it must happen
// under the serialization the app layer provides.
func (r *Registry) Lookup(eventID uint64) (*domain.Event, error) {
	ev, ok := r.events[eventID]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return ev, nil
}

// Get returns a copy of the event record.
func (r *Registry) Get(eventID uint64) (domain.Event, error) {
	ev, err := r.Lookup(eventID)
	if err != nil {
		return domain.Event{}, err
	}
	out := *ev
	out.Participants = append([]domain.Identity(nil), ev.Participants...)
	out.Speakers = append([]domain.Identity(nil), ev.Speakers...)
	return out, nil
}

// Exists reports whether an event with the given id was created.
func (r *Registry) Exists(eventID uint64) bool {
	_, ok := r.events[eventID]
	return ok
}

// List returns copies of all events in creation order.
func (r *Registry) List() []domain.Event {
	out := make([]domain.Event, 0, len(r.order))
	for _, id := range r.order {
		ev, _ := r.Get(id)
		out = append(out, ev)
	}
	return out
}

// HasParticipated reports whether the identity signed up for the event.
func (r *Registry) HasParticipated(who domain.Identity, eventID uint64) (bool, error) {
	if who.IsZero() {
		return false, domain.ErrInvalidRecipient
	}
	if _, ok := r.events[eventID]; !ok {
		return false, domain.ErrEventNotFound
	}
	return r.participated[eventID][who], nil
}

// AddParticipant registers the identity in the event's participant set.
// Validation belongs to the engine; this only mutates state.
func (r *Registry) AddParticipant(eventID uint64, who domain.Identity) {
	ev, ok := r.events[eventID]
	if !ok {
		return
	}
	ev.Participants = append(ev.Participants, who)
	r.participated[eventID][who] = true
}
