package access

import (
	"testing"

	"github.com/cyberacademydev/cyberevents/internal/domain"
)

func TestRoles(t *testing.T) {
	t.Parallel()

	t.Run("initial capabilities", func(t *testing.T) {
		roles := NewRoles("admin", "organizer", "minter")
		if !roles.IsAdmin("admin") || roles.IsAdmin("organizer") {
			t.Fatalf("admin capability misassigned")
		}
		if !roles.IsOrganizer("organizer") || roles.IsOrganizer("minter") {
			t.Fatalf("organizer capability misassigned")
		}
		if !roles.IsMinter("minter") || roles.IsMinter("admin") {
			t.Fatalf("minter capability misassigned")
		}
	})

	t.Run("zero identity never holds a role", func(t *testing.T) {
		roles := NewRoles(domain.Nobody, domain.Nobody, domain.Nobody)
		if roles.IsAdmin(domain.Nobody) || roles.IsOrganizer(domain.Nobody) || roles.IsMinter(domain.Nobody) {
			t.Fatalf("zero identity must not hold any role")
		}
	})

	t.Run("admin reassigns minter", func(t *testing.T) {
		roles := NewRoles("admin", "organizer", "minter")
		if err := roles.SetMinter("admin", "new-minter"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !roles.IsMinter("new-minter") || roles.IsMinter("minter") {
			t.Fatalf("minter not reassigned")
		}
	})

	t.Run("non-admin cannot reassign minter", func(t *testing.T) {
		roles := NewRoles("admin", "organizer", "minter")
		if err := roles.SetMinter("organizer", "new-minter"); err != domain.ErrUnauthorized {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("minter cannot be cleared", func(t *testing.T) {
		roles := NewRoles("admin", "organizer", "minter")
		if err := roles.SetMinter("admin", domain.Nobody); err != domain.ErrInvalidRecipient {
			t.Fatalf("expected ErrInvalidRecipient, got %v", err)
		}
	})
}
