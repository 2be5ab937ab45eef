package ledger

import "github.com/cyberacademydev/cyberevents/internal/domain"

// TotalSupply returns the number of tickets ever minted.
func (l *Ledger) TotalSupply() int { return len(l.arena) }

// Exists reports whether a ticket with the given id was minted.
func (l *Ledger) Exists(ticketID uint64) bool {
	_, ok := l.byID[ticketID]
	return ok
}

// Get returns a copy of the ticket record.
func (l *Ledger) Get(ticketID uint64) (domain.Ticket, error) {
	t, err := l.get(ticketID)
	if err != nil {
		return domain.Ticket{}, err
	}
	return *t, nil
}

// OwnerOf returns the current owner of the ticket.
func (l *Ledger) OwnerOf(ticketID uint64) (domain.Identity, error) {
	t, err := l.get(ticketID)
	if err != nil {
		return domain.Nobody, err
	}
	return t.Owner, nil
}

// BalanceOf returns how many tickets the owner holds.
func (l *Ledger) BalanceOf(owner domain.Identity) (int, error) {
	if owner.IsZero() {
		return 0, domain.ErrInvalidRecipient
	}
	return len(l.owned[owner]), nil
}

// TicketsOf returns the ids of every ticket the owner holds, in enumeration
// order.
func (l *Ledger) TicketsOf(owner domain.Identity) ([]uint64, error) {
	if owner.IsZero() {
		return nil, domain.ErrInvalidRecipient
	}
	list := l.owned[owner]
	out := make([]uint64, len(list))
	copy(out, list)
	return out, nil
}

// TicketOfOwnerByIndex returns the id at the given position of the owner's
// enumeration.
func (l *Ledger) TicketOfOwnerByIndex(owner domain.Identity, index int) (uint64, error) {
	if owner.IsZero() {
		return 0, domain.ErrInvalidRecipient
	}
	list := l.owned[owner]
	if index < 0 || index >= len(list) {
		return 0, domain.ErrIndexOutOfRange
	}
	return list[index], nil
}

// TicketByIndex returns the id at the given position of the global
// enumeration (mint order).
func (l *Ledger) TicketByIndex(index int) (uint64, error) {
	if index < 0 || index >= len(l.arena) {
		return 0, domain.ErrIndexOutOfRange
	}
	return l.arena[index].ID, nil
}

// IsFrozen reports whether the ticket is frozen.
func (l *Ledger) IsFrozen(ticketID uint64) (bool, error) {
	t, err := l.get(ticketID)
	if err != nil {
		return false, err
	}
	return t.Frozen, nil
}

// EventIDOf returns the event the ticket belongs to.
func (l *Ledger) EventIDOf(ticketID uint64) (uint64, error) {
	t, err := l.get(ticketID)
	if err != nil {
		return 0, err
	}
	return t.EventID, nil
}

// CommitmentOf returns the data commitment stored at mint time.
func (l *Ledger) CommitmentOf(ticketID uint64) (string, error) {
	t, err := l.get(ticketID)
	if err != nil {
		return "", err
	}
	return t.DataCommitment, nil
}

// ApprovedFor returns the ticket's approved spender, Nobody when unset.
func (l *Ledger) ApprovedFor(ticketID uint64) (domain.Identity, error) {
	t, err := l.get(ticketID)
	if err != nil {
		return domain.Nobody, err
	}
	return t.Approved, nil
}

// IsApprovedForAll reports whether operator holds blanket authority over
// owner's tickets.
func (l *Ledger) IsApprovedForAll(owner, operator domain.Identity) (bool, error) {
	if owner.IsZero() || operator.IsZero() {
		return false, domain.ErrInvalidRecipient
	}
	return l.operators[owner][operator], nil
}

// IsApprovedOrOwner reports whether spender may move the ticket: owner,
// approved spender, or approved operator of the owner.
func (l *Ledger) IsApprovedOrOwner(spender domain.Identity, ticketID uint64) (bool, error) {
	if spender.IsZero() {
		return false, domain.ErrInvalidRecipient
	}
	t, err := l.get(ticketID)
	if err != nil {
		return false, err
	}
	return spender == t.Owner || spender == t.Approved || l.operators[t.Owner][spender], nil
}
