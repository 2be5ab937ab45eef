package app

import (
	"context"
	"sync"

	"github.com/cyberacademydev/cyberevents/internal/access"
	"github.com/cyberacademydev/cyberevents/internal/domain"
	"github.com/cyberacademydev/cyberevents/internal/ledger"
	"github.com/cyberacademydev/cyberevents/internal/registry"
)

// AdminService exposes the administrative operations: event creation and
// cancellation for the organizer, minting/freezing for the mint authority,
// and minter reassignment for the admin.
type AdminService struct {
	mu     *sync.RWMutex
	ledger *ledger.Ledger
	events *registry.Registry
	roles  *access.Roles
}

func NewAdminService(mu *sync.RWMutex, l *ledger.Ledger, events *registry.Registry, roles *access.Roles) *AdminService {
	return &AdminService{mu: mu, ledger: l, events: events, roles: roles}
}

// CreateEvent stores a new event owned by the caller. Organizer only.
func (s *AdminService) CreateEvent(ctx context.Context, caller domain.Identity, in registry.CreateInput) (domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.roles.IsOrganizer(caller) {
		return domain.Event{}, domain.ErrUnauthorized
	}
	id, err := s.events.Create(ctx, caller, in)
	if err != nil {
		return domain.Event{}, err
	}
	return s.events.Get(id)
}

// CancelEvent marks the event canceled. Organizer only.
func (s *AdminService) CancelEvent(ctx context.Context, caller domain.Identity, eventID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.roles.IsOrganizer(caller) {
		return domain.ErrUnauthorized
	}
	return s.events.Cancel(ctx, eventID)
}

// SetMinter reassigns the mint authority. Admin only.
func (s *AdminService) SetMinter(_ context.Context, caller, minter domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roles.SetMinter(caller, minter)
}

// Mint creates a ticket outside the sign-up flow. Mint authority only.
func (s *AdminService) Mint(ctx context.Context, caller, to domain.Identity, eventID uint64, commitment string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Mint(ctx, caller, to, eventID, commitment)
}

// Freeze marks a ticket as consumed outside the lifecycle flow. Mint
// authority only.
func (s *AdminService) Freeze(ctx context.Context, caller domain.Identity, ticketID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Freeze(ctx, caller, ticketID)
}
