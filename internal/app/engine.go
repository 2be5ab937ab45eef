// Package app orchestrates the ticket ledger, the event registry and the
// treasury into the event lifecycle: sign-up, check-in, cancellation,
// refund and closure. The package owns no persistent state of its own.
package app

import (
	"context"
	"sync"

	"github.com/cyberacademydev/cyberevents/internal/access"
	"github.com/cyberacademydev/cyberevents/internal/clock"
	"github.com/cyberacademydev/cyberevents/internal/commit"
	"github.com/cyberacademydev/cyberevents/internal/domain"
	"github.com/cyberacademydev/cyberevents/internal/ledger"
	"github.com/cyberacademydev/cyberevents/internal/registry"
	"github.com/cyberacademydev/cyberevents/internal/treasury"
)

// Payer is the value-transfer primitive the engine settles through. Send
// and SendMany either fully succeed or leave balances unchanged.
type Payer interface {
	Collect(amount domain.Amount)
	Send(to domain.Identity, amount domain.Amount) error
	SendMany(payments []treasury.Payment) error
}

// Engine runs the lifecycle state machine. The mutex serializes every
// state-mutating operation end to end, so each one commits or fails as a
// whole; it is shared with the other services touching the same core.
type Engine struct {
	mu     *sync.RWMutex
	ledger *ledger.Ledger
	events *registry.Registry
	bank   Payer
	roles  *access.Roles
	clock  clock.Clock
	rec    domain.Recorder
}

func NewEngine(mu *sync.RWMutex, l *ledger.Ledger, events *registry.Registry, bank Payer, roles *access.Roles, clk clock.Clock, rec domain.Recorder) *Engine {
	if rec == nil {
		rec = domain.NopRecorder{}
	}
	return &Engine{mu: mu, ledger: l, events: events, bank: bank, roles: roles, clock: clk, rec: rec}
}

// SignUp escrows the caller's payment and mints their ticket. The payment
// must cover the ticket price; any excess is retained, not refunded.
func (e *Engine) SignUp(ctx context.Context, caller domain.Identity, eventID uint64, payment domain.Amount, commitment string) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller.IsZero() {
		return 0, domain.ErrInvalidRecipient
	}
	ev, err := e.events.Lookup(eventID)
	if err != nil {
		return 0, err
	}
	if ev.Canceled {
		return 0, domain.ErrEventCanceled
	}
	now := e.clock.Now()
	if !now.Before(ev.StartTime) {
		return 0, domain.ErrEventStarted
	}
	if ev.TicketsRemaining == 0 {
		return 0, domain.ErrSoldOut
	}
	if payment < ev.TicketPrice {
		return 0, domain.ErrInsufficientPayment
	}
	if caller == ev.Organizer {
		return 0, domain.ErrOrganizerCannotParticipate
	}
	if participated, err := e.events.HasParticipated(caller, eventID); err != nil {
		return 0, err
	} else if participated {
		return 0, domain.ErrAlreadyParticipated
	}

	e.bank.Collect(payment)
	ticketID, err := e.ledger.Mint(ctx, e.roles.Minter(), caller, eventID, commitment)
	if err != nil {
		return 0, err
	}
	ev.TicketsRemaining--
	ev.PaidAmount += payment
	e.events.AddParticipant(eventID, caller)

	e.rec.Record(ctx, domain.Record{Kind: domain.RecordSignUp, EventID: eventID, TicketID: ticketID, From: caller, Amount: payment})
	return ticketID, nil
}

// CheckIn validates the revealed data against the ticket's commitment,
// freezes the ticket and pays the cashback share, if any, back to the
// ticket owner. Organizer only.
func (e *Engine) CheckIn(ctx context.Context, caller domain.Identity, ticketID uint64, revealed string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.roles.IsOrganizer(caller) {
		return domain.ErrUnauthorized
	}
	t, err := e.ledger.Get(ticketID)
	if err != nil {
		return err
	}
	ev, err := e.events.Lookup(t.EventID)
	if err != nil {
		return err
	}
	if !commit.Verify(t.DataCommitment, revealed) {
		return domain.ErrCommitmentMismatch
	}
	if t.Frozen {
		return domain.ErrTicketFrozen
	}
	if ev.Canceled {
		return domain.ErrEventCanceled
	}
	if !e.clock.Now().Before(ev.EndTime) {
		return domain.ErrEventEnded
	}

	// The cashback transfer happens before the freeze: Send is the only
	// step that can fail, and nothing may have mutated by then.
	cashback := ev.TicketPrice * domain.Amount(ev.CashbackPercent) / 100
	if cashback > 0 {
		if err := e.bank.Send(t.Owner, cashback); err != nil {
			return domain.ErrTransferFailed
		}
	}
	if err := e.ledger.Freeze(ctx, e.roles.Minter(), ticketID); err != nil {
		return err
	}
	ev.PaidAmount -= cashback

	e.rec.Record(ctx, domain.Record{Kind: domain.RecordCheckIn, EventID: ev.ID, TicketID: ticketID, From: t.Owner, Amount: cashback})
	return nil
}

// Refund returns the ticket price to the owner of a ticket on a canceled
// event and freezes the ticket. An already-frozen ticket (checked in, or
// refunded before) skips both the transfer and the freeze but still leaves
// a refund record.
func (e *Engine) Refund(ctx context.Context, caller domain.Identity, ticketID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.ledger.Get(ticketID)
	if err != nil {
		return err
	}
	ev, err := e.events.Lookup(t.EventID)
	if err != nil {
		return err
	}
	if !ev.Canceled {
		return domain.ErrEventNotCanceled
	}
	if caller != t.Owner {
		return domain.ErrUnauthorized
	}

	if t.Frozen {
		e.rec.Record(ctx, domain.Record{Kind: domain.RecordRefund, EventID: ev.ID, TicketID: ticketID, To: t.Owner})
		return nil
	}

	if err := e.bank.Send(t.Owner, ev.TicketPrice); err != nil {
		return domain.ErrTransferFailed
	}
	if err := e.ledger.Freeze(ctx, e.roles.Minter(), ticketID); err != nil {
		return err
	}
	ev.PaidAmount -= ev.TicketPrice

	e.rec.Record(ctx, domain.Record{Kind: domain.RecordRefund, EventID: ev.ID, TicketID: ticketID, To: t.Owner, Amount: ev.TicketPrice})
	return nil
}

// CloseEvent distributes the remaining escrow once the event has ended:
// the speaker share splits evenly across the speaker list, integer
// division remainder and the rest go to the organizer. Unsold tickets are
// voided. Organizer only; closing is terminal.
func (e *Engine) CloseEvent(ctx context.Context, caller domain.Identity, eventID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.roles.IsOrganizer(caller) {
		return domain.ErrUnauthorized
	}
	ev, err := e.events.Lookup(eventID)
	if err != nil {
		return err
	}
	if ev.Closed {
		return domain.ErrAlreadyClosed
	}
	if e.clock.Now().Before(ev.EndTime) {
		return domain.ErrEventNotEnded
	}

	total := ev.PaidAmount
	speakerShare := total * domain.Amount(ev.SpeakersPercent) / 100
	perSpeaker := speakerShare / domain.Amount(len(ev.Speakers))
	ownerShare := total - perSpeaker*domain.Amount(len(ev.Speakers))

	payments := make([]treasury.Payment, 0, len(ev.Speakers)+1)
	for _, speaker := range ev.Speakers {
		payments = append(payments, treasury.Payment{To: speaker, Amount: perSpeaker})
	}
	payments = append(payments, treasury.Payment{To: ev.Organizer, Amount: ownerShare})
	if err := e.bank.SendMany(payments); err != nil {
		return domain.ErrTransferFailed
	}

	ev.TicketsRemaining = 0
	ev.PaidAmount = 0
	ev.Closed = true

	e.rec.Record(ctx, domain.Record{Kind: domain.RecordEventClosed, EventID: eventID, To: ev.Organizer, Amount: total})
	return nil
}

// GetEvent returns a copy of the event record.
func (e *Engine) GetEvent(eventID uint64) (domain.Event, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.events.Get(eventID)
}

// ListEvents returns copies of all events in creation order.
func (e *Engine) ListEvents() []domain.Event {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.events.List()
}

// HasParticipated reports whether the identity signed up for the event.
func (e *Engine) HasParticipated(who domain.Identity, eventID uint64) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.events.HasParticipated(who, eventID)
}
