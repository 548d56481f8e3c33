// Package session persists the "current user" choice across restarts using a
// single-key local storage, layered on the user repository's cache.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Ruggero-R/EzSupply/internal/model"
	"github.com/Ruggero-R/EzSupply/internal/store"
)

// Storage is single-key get/set/remove of a serialized value. Get returns
// (nil, nil) when nothing is stored.
type Storage interface {
	Get() ([]byte, error)
	Set(data []byte) error
	Remove() error
}

// Manager resolves and persists the current user.
type Manager struct {
	Storage Storage
	Users   *store.Users
}

// Current returns the persisted user, or nil if none is stored. Read and
// parse failures degrade to nil: losing the session identity must never
// crash the caller, who just gets asked to pick a user again.
func (m *Manager) Current() *model.User {
	data, err := m.Storage.Get()
	if err != nil {
		slog.Warn("failed to read current user, treating as signed out", "error", err)
		return nil
	}
	if data == nil {
		return nil
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		slog.Warn("corrupt current user entry, treating as signed out", "error", err)
		return nil
	}
	return &user
}

// Set persists the given user as current.
func (m *Manager) Set(user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding current user: %w", err)
	}
	if err := m.Storage.Set(data); err != nil {
		return fmt.Errorf("storing current user: %w", err)
	}
	return nil
}

// SetByUsername resolves username through the user cache and persists the
// match as current. An unknown username is an error.
func (m *Manager) SetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := m.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("no user named %q", username)
	}

	if err := m.Set(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Clear removes the persisted user.
func (m *Manager) Clear() error {
	if err := m.Storage.Remove(); err != nil {
		return fmt.Errorf("clearing current user: %w", err)
	}
	return nil
}
