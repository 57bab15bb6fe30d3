// Package family maintains the directed, tri-state sharing permissions
// between a user and their family members.
package family

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/recipeway/recipeway/internal/store"
)

// Status is one direction of a sharing relationship. An edge subject→other
// means "subject permits other to view subject's recipes".
type Status string

const (
	Granted Status = "granted"
	Pending Status = "pending"
	Revoked Status = "revoked"
)

// Edge is a directed consent relation. The two directions of a pair are
// independent and may diverge (one pending while the other is granted).
type Edge struct {
	Subject string `json:"subject"`
	Other   string `json:"other"`
	Status  Status `json:"status"`
}

// ErrUnknownMember is returned by AddMember when the target user has no
// account. The caller prompts differently for it than for a transport
// failure (check the address vs. retry).
var ErrUnknownMember = errors.New("family: no such user")

// PartialWriteError reports that one direction of a consent operation was
// written and the other failed. The pair is now divergent; the fix is to
// re-run the whole operation, never to auto-repair.
type PartialWriteError struct {
	Op        string
	Completed string
	Failed    string
	Err       error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("family: %s wrote %s but failed %s: %v", e.Op, e.Completed, e.Failed, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

// ConsentService is the remote edge storage, one edge per ordered user pair.
type ConsentService interface {
	PutEdge(ctx context.Context, subject, other string, status Status) error
	DeleteEdge(ctx context.Context, subject, other string) error
	ListEdges(ctx context.Context, subject string) ([]Edge, error)
}

// UserDirectory answers whether an account exists for an email address.
type UserDirectory interface {
	UserExists(ctx context.Context, email string) (bool, error)
}

// Registry drives the consent model. Every mutation is a pair of
// independent, non-transactional writes against two user records.
type Registry struct {
	consent ConsentService
	users   UserDirectory
	state   *store.StateStore
}

func NewRegistry(consent ConsentService, users UserDirectory, state *store.StateStore) *Registry {
	return &Registry{consent: consent, users: users, state: state}
}

// AddMember starts sharing with other: self→other is granted immediately,
// other→self is pending until the other side approves.
func (r *Registry) AddMember(ctx context.Context, self, other string) error {
	ok, err := r.users.UserExists(ctx, other)
	if err != nil {
		return fmt.Errorf("family: look up %s: %w", other, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMember, other)
	}

	if err := r.consent.PutEdge(ctx, self, other, Granted); err != nil {
		return fmt.Errorf("family: add member: %w", err)
	}
	if err := r.consent.PutEdge(ctx, other, self, Pending); err != nil {
		return &PartialWriteError{
			Op:        "addMember",
			Completed: self + "→" + other,
			Failed:    other + "→" + self,
			Err:       err,
		}
	}

	r.rememberMember(ctx, other)
	return nil
}

// Approve resolves a pending request: both directions are set to decision
// (Granted to accept, Revoked to reject).
func (r *Registry) Approve(ctx context.Context, self, other string, decision Status) error {
	if err := r.consent.PutEdge(ctx, self, other, decision); err != nil {
		return fmt.Errorf("family: approve: %w", err)
	}
	if err := r.consent.PutEdge(ctx, other, self, decision); err != nil {
		return &PartialWriteError{
			Op:        "approve",
			Completed: self + "→" + other,
			Failed:    other + "→" + self,
			Err:       err,
		}
	}
	if decision == Granted {
		r.rememberMember(ctx, other)
	}
	return nil
}

// Remove deletes the relationship in both directions.
func (r *Registry) Remove(ctx context.Context, self, other string) error {
	if err := r.consent.DeleteEdge(ctx, self, other); err != nil {
		return fmt.Errorf("family: remove: %w", err)
	}
	if err := r.consent.DeleteEdge(ctx, other, self); err != nil {
		return &PartialWriteError{
			Op:        "remove",
			Completed: self + "→" + other,
			Failed:    other + "→" + self,
			Err:       err,
		}
	}

	r.forgetMember(ctx, other)
	return nil
}

// PendingInbox lists requests awaiting self's decision: every edge
// self→other that is still pending.
func (r *Registry) PendingInbox(ctx context.Context, self string) ([]Edge, error) {
	edges, err := r.consent.ListEdges(ctx, self)
	if err != nil {
		return nil, fmt.Errorf("family: pending inbox: %w", err)
	}
	var inbox []Edge
	for _, e := range edges {
		if e.Subject == self && e.Status == Pending {
			inbox = append(inbox, e)
		}
	}
	return inbox, nil
}

// The local member list is display-only state; failures to update it never
// fail the consent operation.
func (r *Registry) rememberMember(ctx context.Context, other string) {
	err := r.state.Update(ctx, func(st *store.State) {
		if !slices.Contains(st.FamilyMembers, other) {
			st.FamilyMembers = append(st.FamilyMembers, other)
		}
	})
	if err != nil {
		log.Printf("family: remember member %s: %v", other, err)
	}
}

func (r *Registry) forgetMember(ctx context.Context, other string) {
	err := r.state.Update(ctx, func(st *store.State) {
		st.FamilyMembers = slices.DeleteFunc(st.FamilyMembers, func(m string) bool {
			return m == other
		})
	})
	if err != nil {
		log.Printf("family: forget member %s: %v", other, err)
	}
}
