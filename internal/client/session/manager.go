package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/itcontroller/internal/client/repositories/storage"
	"github.com/dmitrijs2005/itcontroller/internal/common"
	"github.com/dmitrijs2005/itcontroller/internal/dbx"
)

// Manager persists Credentials in local storage under the it_suite_* keys.
type Manager struct {
	db *sql.DB
}

func NewManager(db *sql.DB) *Manager {
	return &Manager{db: db}
}

func (m *Manager) repo(db dbx.DBTX) storage.Repository {
	return storage.NewSQLiteRepository(db)
}

// Load returns the stored credentials. A missing token yields zero
// Credentials and no error.
func (m *Manager) Load(ctx context.Context) (Credentials, error) {
	r := m.repo(m.db)

	token, err := r.Get(ctx, common.TokenStorageKey)
	if errors.Is(err, common.ErrNotFound) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("load session: %w", err)
	}

	user, err := r.Get(ctx, common.UserStorageKey)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return Credentials{}, fmt.Errorf("load session: %w", err)
	}

	return Credentials{Token: token, Username: user}, nil
}

// Save stores token and user name atomically.
func (m *Manager) Save(ctx context.Context, c Credentials) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := m.repo(tx)
		if err := r.Set(ctx, common.TokenStorageKey, c.Token); err != nil {
			return err
		}
		return r.Set(ctx, common.UserStorageKey, c.Username)
	})
}

// SetUsername replaces the stored user name, e.g. after a profile update.
func (m *Manager) SetUsername(ctx context.Context, username string) error {
	return m.repo(m.db).Set(ctx, common.UserStorageKey, username)
}

// Expire drops the token and keeps the user name, mirroring what happens
// when the server answers 401.
func (m *Manager) Expire(ctx context.Context) error {
	return m.repo(m.db).Delete(ctx, common.TokenStorageKey)
}

// Clear removes every session key (logout).
func (m *Manager) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := m.repo(tx)
		if err := r.Delete(ctx, common.TokenStorageKey); err != nil {
			return err
		}
		return r.Delete(ctx, common.UserStorageKey)
	})
}
