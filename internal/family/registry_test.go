package family_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/recipeway/recipeway/internal/family"
	"github.com/recipeway/recipeway/internal/store"
	"github.com/recipeway/recipeway/internal/testutil"
)

type pair struct {
	subject, other string
}

func key(subject, other string) pair { return pair{subject, other} }

// fakeConsent keeps consent edges in a map keyed by ordered pair, with an
// optional hook to fail a specific write.
type fakeConsent struct {
	edges   map[pair]family.Status
	failPut func(subject, other string) error
}

func newFakeConsent() *fakeConsent {
	return &fakeConsent{edges: make(map[pair]family.Status)}
}

func (f *fakeConsent) PutEdge(_ context.Context, subject, other string, status family.Status) error {
	if f.failPut != nil {
		if err := f.failPut(subject, other); err != nil {
			return err
		}
	}
	f.edges[key(subject, other)] = status
	return nil
}

func (f *fakeConsent) DeleteEdge(_ context.Context, subject, other string) error {
	delete(f.edges, key(subject, other))
	return nil
}

func (f *fakeConsent) ListEdges(_ context.Context, subject string) ([]family.Edge, error) {
	var out []family.Edge
	for k, status := range f.edges {
		if k.subject == subject {
			out = append(out, family.Edge{Subject: k.subject, Other: k.other, Status: status})
		}
	}
	return out, nil
}

type fakeDirectory struct {
	known map[string]bool
	err   error
}

func (f *fakeDirectory) UserExists(_ context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.known[email], nil
}

const (
	alice = "alice@example.com"
	bob   = "bob@example.com"
)

func newRegistry(t *testing.T, consent *fakeConsent, dir *fakeDirectory) (*family.Registry, *store.StateStore) {
	t.Helper()
	state := store.NewStateStore(testutil.NewTestDB(t))
	return family.NewRegistry(consent, dir, state), state
}

func TestAddMember_SetsBothDirections(t *testing.T) {
	consent := newFakeConsent()
	reg, state := newRegistry(t, consent, &fakeDirectory{known: map[string]bool{bob: true}})
	ctx := context.Background()

	if err := reg.AddMember(ctx, alice, bob); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if got := consent.edges[key(alice, bob)]; got != family.Granted {
		t.Errorf("alice→bob = %q, want granted", got)
	}
	if got := consent.edges[key(bob, alice)]; got != family.Pending {
		t.Errorf("bob→alice = %q, want pending", got)
	}

	members, err := state.FamilyMembers(ctx)
	if err != nil {
		t.Fatalf("FamilyMembers: %v", err)
	}
	if !slices.Contains(members, bob) {
		t.Errorf("local member list %v missing %s", members, bob)
	}
}

func TestAddMember_UnknownMember(t *testing.T) {
	reg, _ := newRegistry(t, newFakeConsent(), &fakeDirectory{known: map[string]bool{}})

	err := reg.AddMember(context.Background(), alice, "ghost@x.com")
	if !errors.Is(err, family.ErrUnknownMember) {
		t.Fatalf("err = %v, want ErrUnknownMember", err)
	}
}

func TestAddMember_TransportFailureIsNotUnknownMember(t *testing.T) {
	reg, _ := newRegistry(t, newFakeConsent(), &fakeDirectory{err: errors.New("timeout")})

	err := reg.AddMember(context.Background(), alice, bob)
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, family.ErrUnknownMember) {
		t.Fatal("transport failure must not read as unknown member")
	}
}

func TestApprove_SetsBothDirections(t *testing.T) {
	consent := newFakeConsent()
	reg, _ := newRegistry(t, consent, &fakeDirectory{known: map[string]bool{alice: true, bob: true}})
	ctx := context.Background()

	if err := reg.AddMember(ctx, alice, bob); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if err := reg.Approve(ctx, bob, alice, family.Granted); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	if got := consent.edges[key(bob, alice)]; got != family.Granted {
		t.Errorf("bob→alice = %q, want granted", got)
	}
	if got := consent.edges[key(alice, bob)]; got != family.Granted {
		t.Errorf("alice→bob = %q, want granted", got)
	}
}

func TestApprove_Reject(t *testing.T) {
	consent := newFakeConsent()
	reg, _ := newRegistry(t, consent, &fakeDirectory{known: map[string]bool{bob: true}})
	ctx := context.Background()

	if err := reg.AddMember(ctx, alice, bob); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if err := reg.Approve(ctx, bob, alice, family.Revoked); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	if got := consent.edges[key(bob, alice)]; got != family.Revoked {
		t.Errorf("bob→alice = %q, want revoked", got)
	}
	if got := consent.edges[key(alice, bob)]; got != family.Revoked {
		t.Errorf("alice→bob = %q, want revoked", got)
	}
}

func TestRemove_DeletesBothDirections(t *testing.T) {
	consent := newFakeConsent()
	reg, state := newRegistry(t, consent, &fakeDirectory{known: map[string]bool{bob: true}})
	ctx := context.Background()

	if err := reg.AddMember(ctx, alice, bob); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if err := reg.Remove(ctx, alice, bob); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if _, ok := consent.edges[key(alice, bob)]; ok {
		t.Error("alice→bob edge survived removal")
	}
	if _, ok := consent.edges[key(bob, alice)]; ok {
		t.Error("bob→alice edge survived removal")
	}

	members, _ := state.FamilyMembers(ctx)
	if slices.Contains(members, bob) {
		t.Errorf("local member list %v still holds %s", members, bob)
	}
}

func TestAddMember_PartialWrite(t *testing.T) {
	consent := newFakeConsent()
	boom := errors.New("write failed")
	consent.failPut = func(subject, _ string) error {
		if subject == bob {
			return boom
		}
		return nil
	}
	reg, _ := newRegistry(t, consent, &fakeDirectory{known: map[string]bool{bob: true}})

	err := reg.AddMember(context.Background(), alice, bob)
	var partial *family.PartialWriteError
	if !errors.As(err, &partial) {
		t.Fatalf("err = %v, want PartialWriteError", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("PartialWriteError should wrap the write failure, got %v", partial.Err)
	}

	// The divergent first write is left in place: retry, don't repair.
	if got := consent.edges[key(alice, bob)]; got != family.Granted {
		t.Errorf("alice→bob = %q, want the completed write intact", got)
	}
	if _, ok := consent.edges[key(bob, alice)]; ok {
		t.Error("bob→alice should not exist after failed write")
	}
}

func TestPendingInbox(t *testing.T) {
	consent := newFakeConsent()
	reg, _ := newRegistry(t, consent, &fakeDirectory{known: map[string]bool{alice: true, bob: true}})
	ctx := context.Background()

	// Alice invited Bob: Bob's side is pending, Alice's is granted.
	if err := reg.AddMember(ctx, alice, bob); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	inbox, err := reg.PendingInbox(ctx, bob)
	if err != nil {
		t.Fatalf("PendingInbox: %v", err)
	}
	if len(inbox) != 1 || inbox[0].Other != alice || inbox[0].Status != family.Pending {
		t.Errorf("inbox = %+v, want one pending request from %s", inbox, alice)
	}

	inbox, err = reg.PendingInbox(ctx, alice)
	if err != nil {
		t.Fatalf("PendingInbox: %v", err)
	}
	if len(inbox) != 0 {
		t.Errorf("alice's inbox = %+v, want empty", inbox)
	}
}
