// Package access holds the capability set for the ledger and lifecycle
// engine: a single mutable mint authority, a fixed organizer and a fixed
// administrative identity. Roles are checked explicitly against a caller
// identity; there is no ambient lookup.
package access

import "github.com/cyberacademydev/cyberevents/internal/domain"

type Roles struct {
	admin     domain.Identity
	organizer domain.Identity
	minter    domain.Identity
}

// NewRoles builds the capability set fixed at construction. The minter can
// be reassigned later through SetMinter; admin and organizer cannot.
func NewRoles(admin, organizer, minter domain.Identity) *Roles {
	return &Roles{admin: admin, organizer: organizer, minter: minter}
}

func (r *Roles) Minter() domain.Identity    { return r.minter }
func (r *Roles) Organizer() domain.Identity { return r.organizer }

func (r *Roles) IsAdmin(id domain.Identity) bool     { return !id.IsZero() && id == r.admin }
func (r *Roles) IsOrganizer(id domain.Identity) bool { return !id.IsZero() && id == r.organizer }
func (r *Roles) IsMinter(id domain.Identity) bool    { return !id.IsZero() && id == r.minter }

// SetMinter reassigns the mint authority. Only the admin may do so, and the
// new minter must be a real identity.
func (r *Roles) SetMinter(caller, minter domain.Identity) error {
	if !r.IsAdmin(caller) {
		return domain.ErrUnauthorized
	}
	if minter.IsZero() {
		return domain.ErrInvalidRecipient
	}
	r.minter = minter
	return nil
}
