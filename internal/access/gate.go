// Package access enforces ownership and role checks at operation entry.
//
// A mismatch yields ErrAccessDenied, which callers keep distinct from
// ErrNotFound so a denied resource is not mistaken for a missing one.
package access

import (
	"fmt"

	"github.com/hearthway/realty/internal/appointment"
	"github.com/hearthway/realty/internal/auth"
	"github.com/hearthway/realty/internal/domain"
	"github.com/hearthway/realty/internal/property"
	"github.com/hearthway/realty/internal/review"
	"github.com/hearthway/realty/internal/transaction"
	"github.com/hearthway/realty/internal/user"
)

// Gate resolves the caller's profile and compares it against a fetched
// resource's owner keys. Checks never query the resource themselves; the
// caller fetches it first so denied and missing stay distinguishable.
type Gate struct {
	users *user.Store
}

// NewGate creates an access gate over the user store.
func NewGate(users *user.Store) *Gate {
	return &Gate{users: users}
}

// RequireRole denies callers who are unauthenticated or whose role is not
// in the allowed set.
func (g *Gate) RequireRole(ident auth.Identity, roles ...auth.Role) error {
	if !ident.Authenticated {
		return domain.ErrAccessDenied
	}
	for _, role := range roles {
		if ident.Role == role {
			return nil
		}
	}
	return fmt.Errorf("role %s not permitted: %w", ident.Role, domain.ErrAccessDenied)
}

// CanManageProperty allows the listing's own agent and admins to modify or
// delete the property.
func (g *Gate) CanManageProperty(ident auth.Identity, p *property.Detail) error {
	if !ident.Authenticated {
		return domain.ErrAccessDenied
	}
	if ident.IsAdmin() {
		return nil
	}
	if ident.Role != auth.RoleAgent {
		return fmt.Errorf("role %s cannot manage listings: %w", ident.Role, domain.ErrAccessDenied)
	}

	agent, err := g.users.GetAgentByUserID(ident.UserID)
	if err != nil {
		return fmt.Errorf("resolving agent profile: %w", err)
	}
	if agent.ID != p.AgentID {
		return fmt.Errorf("property %d belongs to another agent: %w", p.ID, domain.ErrAccessDenied)
	}
	return nil
}

// CanTouchAppointment allows either participant of the appointment, or an
// admin, to view or modify it.
func (g *Gate) CanTouchAppointment(ident auth.Identity, a *appointment.Appointment) error {
	if !ident.Authenticated {
		return domain.ErrAccessDenied
	}
	if ident.IsAdmin() {
		return nil
	}

	switch ident.Role {
	case auth.RoleClient:
		client, err := g.users.GetClientByUserID(ident.UserID)
		if err != nil {
			return fmt.Errorf("resolving client profile: %w", err)
		}
		if client.ID == a.ClientID {
			return nil
		}
	case auth.RoleAgent:
		agent, err := g.users.GetAgentByUserID(ident.UserID)
		if err != nil {
			return fmt.Errorf("resolving agent profile: %w", err)
		}
		if agent.ID == a.AgentID {
			return nil
		}
	}
	return fmt.Errorf("appointment %d belongs to other participants: %w", a.ID, domain.ErrAccessDenied)
}

// CanViewTransaction allows either party of the deal, or an admin, to see
// the transaction detail.
func (g *Gate) CanViewTransaction(ident auth.Identity, tr *transaction.Detail) error {
	if !ident.Authenticated {
		return domain.ErrAccessDenied
	}
	if ident.IsAdmin() {
		return nil
	}

	switch ident.Role {
	case auth.RoleClient:
		client, err := g.users.GetClientByUserID(ident.UserID)
		if err != nil {
			return fmt.Errorf("resolving client profile: %w", err)
		}
		if client.ID == tr.ClientID {
			return nil
		}
	case auth.RoleAgent:
		agent, err := g.users.GetAgentByUserID(ident.UserID)
		if err != nil {
			return fmt.Errorf("resolving agent profile: %w", err)
		}
		if agent.ID == tr.AgentID {
			return nil
		}
	}
	return fmt.Errorf("transaction %d belongs to other parties: %w", tr.ID, domain.ErrAccessDenied)
}

// CanDeleteReview allows the review's own client and admins to remove it.
func (g *Gate) CanDeleteReview(ident auth.Identity, rv *review.Review) error {
	if !ident.Authenticated {
		return domain.ErrAccessDenied
	}
	if ident.IsAdmin() {
		return nil
	}
	if ident.Role != auth.RoleClient {
		return fmt.Errorf("role %s cannot delete reviews: %w", ident.Role, domain.ErrAccessDenied)
	}

	client, err := g.users.GetClientByUserID(ident.UserID)
	if err != nil {
		return fmt.Errorf("resolving client profile: %w", err)
	}
	if client.ID != rv.ClientID {
		return fmt.Errorf("review %d belongs to another client: %w", rv.ID, domain.ErrAccessDenied)
	}
	return nil
}
