package app

import (
	"context"
	"sync"

	"github.com/cyberacademydev/cyberevents/internal/domain"
	"github.com/cyberacademydev/cyberevents/internal/ledger"
)

// LedgerService exposes the owner-facing ledger operations and the public
// read surface, serialized against the engine through the shared mutex.
type LedgerService struct {
	mu     *sync.RWMutex
	ledger *ledger.Ledger
}

func NewLedgerService(mu *sync.RWMutex, l *ledger.Ledger) *LedgerService {
	return &LedgerService{mu: mu, ledger: l}
}

// Transfer moves a ticket to a new owner on behalf of the caller.
func (s *LedgerService) Transfer(ctx context.Context, caller, from, to domain.Identity, ticketID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Transfer(ctx, caller, from, to, ticketID)
}

// TransferChecked is Transfer requiring recipient acknowledgment when the
// recipient has a registered receiver callback.
func (s *LedgerService) TransferChecked(ctx context.Context, caller, from, to domain.Identity, ticketID uint64, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.TransferChecked(ctx, caller, from, to, ticketID, data)
}

// Approve sets the ticket's approved spender.
func (s *LedgerService) Approve(ctx context.Context, caller domain.Identity, ticketID uint64, spender domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Approve(ctx, caller, ticketID, spender)
}

// ClearApproval resets the ticket's approved spender.
func (s *LedgerService) ClearApproval(ctx context.Context, caller domain.Identity, ticketID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.ClearApproval(ctx, caller, ticketID)
}

// SetApprovalForAll grants or revokes operator authority for the caller.
func (s *LedgerService) SetApprovalForAll(ctx context.Context, caller, operator domain.Identity, approved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.SetApprovalForAll(ctx, caller, operator, approved)
}

// GetTicket returns a copy of the ticket record.
func (s *LedgerService) GetTicket(ticketID uint64) (domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Get(ticketID)
}

// TicketsOf returns the ids of every ticket the owner holds.
func (s *LedgerService) TicketsOf(owner domain.Identity) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.TicketsOf(owner)
}

// BalanceOf returns how many tickets the owner holds.
func (s *LedgerService) BalanceOf(owner domain.Identity) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.BalanceOf(owner)
}

// TotalSupply returns the number of tickets ever minted.
func (s *LedgerService) TotalSupply() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.TotalSupply()
}

// TicketByIndex returns the id at a position of the global enumeration.
func (s *LedgerService) TicketByIndex(index int) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.TicketByIndex(index)
}

// TicketOfOwnerByIndex returns the id at a position of the owner's
// enumeration.
func (s *LedgerService) TicketOfOwnerByIndex(owner domain.Identity, index int) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.TicketOfOwnerByIndex(owner, index)
}

// IsApprovedOrOwner reports whether spender may move the ticket.
func (s *LedgerService) IsApprovedOrOwner(spender domain.Identity, ticketID uint64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.IsApprovedOrOwner(spender, ticketID)
}

// IsApprovedForAll reports whether operator holds blanket authority over
// owner's tickets.
func (s *LedgerService) IsApprovedForAll(owner, operator domain.Identity) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.IsApprovedForAll(owner, operator)
}
