// Package ledger implements the non-fungible ticket registry: sequential id
// assignment, per-owner enumeration, the delegated-approval model and the
// per-ticket freeze flag.
package ledger

import (
	"context"

	"github.com/cyberacademydev/cyberevents/internal/access"
	"github.com/cyberacademydev/cyberevents/internal/domain"
)

// Ack is the value a Receiver returns to acknowledge an incoming ticket.
type Ack uint32

// AckReceived is the only acknowledgment that lets a checked transfer
// commit; anything else aborts it.
const AckReceived Ack = 0x01

// Receiver is the acknowledgment callback for recipients that must confirm
// receipt before a checked transfer commits.
type Receiver interface {
	OnReceive(ctx context.Context, operator, from domain.Identity, ticketID uint64, data []byte) (Ack, error)
}

// Ledger is the ticket ownership registry. It is not safe for concurrent
// use; the app layer serializes access.
//
// Enumeration state is an arena of tickets in mint order plus two index
// maps: ticket id to arena position, and ticket id to position inside its
// owner's list. Removal from an owner's list swaps the victim with the last
// element and truncates, updating the moved element's index in the same
// step. A stale index here corrupts enumeration silently, so the two
// structures only ever change together.
type Ledger struct {
	roles *access.Roles
	rec   domain.Recorder

	nextID     uint64
	arena      []domain.Ticket
	byID       map[uint64]int
	owned      map[domain.Identity][]uint64
	ownedIndex map[uint64]int
	operators  map[domain.Identity]map[domain.Identity]bool
	receivers  map[domain.Identity]Receiver
}

func New(roles *access.Roles, rec domain.Recorder) *Ledger {
	if rec == nil {
		rec = domain.NopRecorder{}
	}
	return &Ledger{
		roles:      roles,
		rec:        rec,
		byID:       make(map[uint64]int),
		owned:      make(map[domain.Identity][]uint64),
		ownedIndex: make(map[uint64]int),
		operators:  make(map[domain.Identity]map[domain.Identity]bool),
		receivers:  make(map[domain.Identity]Receiver),
	}
}

// Mint creates a ticket owned by to. Only the mint authority may mint.
func (l *Ledger) Mint(ctx context.Context, caller, to domain.Identity, eventID uint64, commitment string) (uint64, error) {
	if !l.roles.IsMinter(caller) {
		return 0, domain.ErrUnauthorized
	}
	if to.IsZero() {
		return 0, domain.ErrInvalidRecipient
	}

	l.nextID++
	id := l.nextID
	l.arena = append(l.arena, domain.Ticket{
		ID:             id,
		Owner:          to,
		EventID:        eventID,
		DataCommitment: commitment,
	})
	l.byID[id] = len(l.arena) - 1
	l.appendToOwner(to, id)

	l.rec.Record(ctx, domain.Record{Kind: domain.RecordMint, TicketID: id, EventID: eventID, To: to})
	return id, nil
}

// Freeze marks a ticket as consumed. Any standing approval is cleared first,
// observable as an approval record. Only the mint authority may freeze.
func (l *Ledger) Freeze(ctx context.Context, caller domain.Identity, ticketID uint64) error {
	if !l.roles.IsMinter(caller) {
		return domain.ErrUnauthorized
	}
	t, err := l.get(ticketID)
	if err != nil {
		return err
	}
	if t.Frozen {
		return domain.ErrAlreadyFrozen
	}

	l.clearApproval(ctx, t)
	t.Frozen = true
	l.rec.Record(ctx, domain.Record{Kind: domain.RecordTokenFreeze, TicketID: ticketID, EventID: t.EventID})
	return nil
}

// Approve designates spender as the ticket's approved spender. Only the
// current owner may approve, and never on a frozen ticket.
func (l *Ledger) Approve(ctx context.Context, caller domain.Identity, ticketID uint64, spender domain.Identity) error {
	t, err := l.get(ticketID)
	if err != nil {
		return err
	}
	if spender.IsZero() {
		return domain.ErrInvalidRecipient
	}
	if caller != t.Owner {
		return domain.ErrUnauthorized
	}
	if t.Frozen {
		return domain.ErrTicketFrozen
	}

	t.Approved = spender
	l.rec.Record(ctx, domain.Record{Kind: domain.RecordApproval, TicketID: ticketID, EventID: t.EventID, From: t.Owner, To: spender})
	return nil
}

// ClearApproval resets the ticket's approved spender to nobody. Same
// preconditions as Approve apart from the spender argument.
func (l *Ledger) ClearApproval(ctx context.Context, caller domain.Identity, ticketID uint64) error {
	t, err := l.get(ticketID)
	if err != nil {
		return err
	}
	if caller != t.Owner {
		return domain.ErrUnauthorized
	}
	if t.Frozen {
		return domain.ErrTicketFrozen
	}

	l.clearApproval(ctx, t)
	return nil
}

// SetApprovalForAll grants or revokes operator authority over every ticket
// the caller owns, now and in the future, until revoked.
func (l *Ledger) SetApprovalForAll(ctx context.Context, caller, operator domain.Identity, approved bool) error {
	if operator.IsZero() {
		return domain.ErrInvalidRecipient
	}
	ops := l.operators[caller]
	if ops == nil {
		ops = make(map[domain.Identity]bool)
		l.operators[caller] = ops
	}
	ops[operator] = approved

	l.rec.Record(ctx, domain.Record{Kind: domain.RecordApprovalForAll, From: caller, To: operator, Approved: approved})
	return nil
}

// Transfer moves a ticket from its owner to a new owner. The caller must be
// the owner, the approved spender or an approved operator of from.
func (l *Ledger) Transfer(ctx context.Context, caller, from, to domain.Identity, ticketID uint64) error {
	t, err := l.transferable(caller, from, to, ticketID)
	if err != nil {
		return err
	}
	l.move(ctx, t, from, to)
	return nil
}

// TransferChecked is Transfer with recipient acknowledgment: when a receiver
// callback is registered for to, it must return AckReceived or the transfer
// aborts with no state change.
func (l *Ledger) TransferChecked(ctx context.Context, caller, from, to domain.Identity, ticketID uint64, data []byte) error {
	t, err := l.transferable(caller, from, to, ticketID)
	if err != nil {
		return err
	}
	if recv, ok := l.receivers[to]; ok {
		ack, err := recv.OnReceive(ctx, caller, from, ticketID, data)
		if err != nil || ack != AckReceived {
			return domain.ErrTransferFailed
		}
	}
	l.move(ctx, t, from, to)
	return nil
}

// RegisterReceiver installs an acknowledgment callback for a recipient
// identity. Checked transfers to that identity only commit once the
// callback accepts.
func (l *Ledger) RegisterReceiver(id domain.Identity, r Receiver) {
	l.receivers[id] = r
}

func (l *Ledger) transferable(caller, from, to domain.Identity, ticketID uint64) (*domain.Ticket, error) {
	if from.IsZero() || to.IsZero() {
		return nil, domain.ErrInvalidRecipient
	}
	t, err := l.get(ticketID)
	if err != nil {
		return nil, err
	}
	if t.Frozen {
		return nil, domain.ErrTicketFrozen
	}
	if t.Owner != from {
		return nil, domain.ErrUnauthorized
	}
	if caller != t.Owner && caller != t.Approved && !l.operators[t.Owner][caller] {
		return nil, domain.ErrUnauthorized
	}
	return t, nil
}

// move applies the transfer effects in order: clear approval, detach from
// the old owner's enumeration, reattach under the new owner, record.
func (l *Ledger) move(ctx context.Context, t *domain.Ticket, from, to domain.Identity) {
	l.clearApproval(ctx, t)
	l.removeFromOwner(from, t.ID)
	t.Owner = to
	l.appendToOwner(to, t.ID)
	l.rec.Record(ctx, domain.Record{Kind: domain.RecordTransfer, TicketID: t.ID, EventID: t.EventID, From: from, To: to})
}

func (l *Ledger) clearApproval(ctx context.Context, t *domain.Ticket) {
	t.Approved = domain.Nobody
	l.rec.Record(ctx, domain.Record{Kind: domain.RecordApproval, TicketID: t.ID, EventID: t.EventID, From: t.Owner, To: domain.Nobody})
}

func (l *Ledger) appendToOwner(owner domain.Identity, id uint64) {
	l.ownedIndex[id] = len(l.owned[owner])
	l.owned[owner] = append(l.owned[owner], id)
}

func (l *Ledger) removeFromOwner(owner domain.Identity, id uint64) {
	list := l.owned[owner]
	i := l.ownedIndex[id]
	last := len(list) - 1
	moved := list[last]
	list[i] = moved
	l.ownedIndex[moved] = i
	l.owned[owner] = list[:last]
	delete(l.ownedIndex, id)
}

func (l *Ledger) get(ticketID uint64) (*domain.Ticket, error) {
	i, ok := l.byID[ticketID]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	return &l.arena[i], nil
}
