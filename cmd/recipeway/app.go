package main

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/recipeway/recipeway/internal/config"
	"github.com/recipeway/recipeway/internal/db"
	"github.com/recipeway/recipeway/internal/family"
	"github.com/recipeway/recipeway/internal/remote"
	"github.com/recipeway/recipeway/internal/store"
)

// app wires config, local state, and the remote clients for one command
// invocation.
type app struct {
	cfg      *config.Config
	db       *sqlx.DB
	state    *store.StateStore
	cache    *store.CacheStore
	client   *remote.Client
	registry *family.Registry
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.State.Path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(database); err != nil {
		_ = database.Close()
		return nil, err
	}

	state := store.NewStateStore(database)
	token, err := state.Token(ctx)
	if err != nil {
		_ = database.Close()
		return nil, err
	}

	client := remote.New(cfg.Server.Addr, token, cfg.Timeout)

	return &app{
		cfg:      cfg,
		db:       database,
		state:    state,
		cache:    store.NewCacheStore(state),
		client:   client,
		registry: family.NewRegistry(client, client, state),
	}, nil
}

func (a *app) Close() {
	_ = a.db.Close()
}
