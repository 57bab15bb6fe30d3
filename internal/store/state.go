package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/recipeway/recipeway/internal/recipe"
)

// State is the whole client-side document: everything the device persists
// lives in this one JSON blob under one key. There is no schema versioning;
// fields absent from an older blob simply read as zero values.
type State struct {
	Token          string         `json:"token,omitempty"`
	CachedRecipes  *CachedRecipes `json:"cachedRecipes,omitempty"`
	FamilyMembers  []string       `json:"familyMembers,omitempty"`
	FullscreenMode bool           `json:"fullscreenMode,omitempty"`
}

// CachedRecipes is the single persisted snapshot of a viewer's recipe list.
type CachedRecipes struct {
	UserEmail   string          `json:"userEmail"`
	Recipes     []recipe.Record `json:"recipes"`
	LastUpdated time.Time       `json:"lastUpdated"`
	Categories  []string        `json:"categories"`
}

// StateStore persists the state document as one row in the local sqlite
// file. Read-modify-write cycles are serialized so a background reconcile
// cannot interleave with a foreground mutation.
type StateStore struct {
	db *sqlx.DB
	mu sync.Mutex
}

func NewStateStore(db *sqlx.DB) *StateStore {
	return &StateStore{db: db}
}

// Load reads the current state. A missing row or an unreadable blob yields
// an empty state, not an error: local state is a cache and a preference
// bag, and starting over is always acceptable.
func (s *StateStore) Load(ctx context.Context) (*State, error) {
	var raw string
	err := s.db.GetContext(ctx, &raw, `SELECT value FROM state WHERE key = ?`, stateKey)
	if errors.Is(err, sql.ErrNoRows) {
		return &State{}, nil
	}
	if err != nil {
		return nil, err
	}

	var st State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		log.Printf("store: discarding unreadable state blob: %v", err)
		return &State{}, nil
	}
	return &st, nil
}

// Save overwrites the state document.
func (s *StateStore) Save(ctx context.Context, st *State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, stateKey, string(raw), time.Now().UTC())
	return err
}

// Update applies fn to the current state and persists the result as one
// serialized read-modify-write.
func (s *StateStore) Update(ctx context.Context, fn func(*State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.Load(ctx)
	if err != nil {
		return err
	}
	fn(st)
	return s.Save(ctx, st)
}

// Token returns the stored bearer token, empty when not logged in.
func (s *StateStore) Token(ctx context.Context) (string, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	return st.Token, nil
}

func (s *StateStore) SetToken(ctx context.Context, token string) error {
	return s.Update(ctx, func(st *State) { st.Token = token })
}

// FamilyMembers returns the locally remembered member list.
func (s *StateStore) FamilyMembers(ctx context.Context) ([]string, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return st.FamilyMembers, nil
}

func (s *StateStore) SetFullscreen(ctx context.Context, on bool) error {
	return s.Update(ctx, func(st *State) { st.FullscreenMode = on })
}

func (s *StateStore) Fullscreen(ctx context.Context) (bool, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	return st.FullscreenMode, nil
}
