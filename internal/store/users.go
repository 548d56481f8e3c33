package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ruggero-R/EzSupply/internal/docstore"
	"github.com/Ruggero-R/EzSupply/internal/model"
	"github.com/Ruggero-R/EzSupply/internal/refcache"
)

// ErrUsernameTaken is returned by Create before any write is attempted when
// the username already belongs to another user.
var ErrUsernameTaken = errors.New("username already exists")

// Users is the user repository. The user list changes rarely (a household
// gains a member every few years), so the cache has no TTL and is refreshed
// only by explicit invalidation after a mutation.
type Users struct {
	db    docstore.Store
	cache *refcache.Cache[model.User]
}

// NewUsers creates the repository.
func NewUsers(db docstore.Store) *Users {
	r := &Users{db: db}
	r.cache = refcache.New(0, r.fetchAll)
	return r
}

func (r *Users) fetchAll(ctx context.Context) ([]model.User, error) {
	docs, err := r.db.All(ctx, usersCollection)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	users := make([]model.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, decodeUser(doc.ID, doc.Fields))
	}
	return users, nil
}

// List returns all users, served from cache.
func (r *Users) List(ctx context.Context) ([]model.User, error) {
	return r.cache.GetAll(ctx)
}

// Get returns a user by id, or (nil, nil) if it does not exist. Goes straight
// to the store so a stale cache cannot hide a freshly created user.
func (r *Users) Get(ctx context.Context, id string) (*model.User, error) {
	raw, err := r.db.Get(ctx, usersCollection, id)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	user := decodeUser(id, raw)
	return &user, nil
}

// GetByUsername returns the user with the given username, or (nil, nil) if
// none matches. Matching is case-insensitive; the stored username keeps its
// original case.
func (r *Users) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	users, err := r.cache.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return &u, nil
		}
	}
	return nil, nil
}

// Create adds a user and returns its id. Usernames are unique at creation
// time only; there is no store-level constraint.
func (r *Users) Create(ctx context.Context, username string) (string, error) {
	username = strings.TrimSpace(username)

	existing, err := r.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrUsernameTaken
	}

	id, err := r.db.Add(ctx, usersCollection, docstore.Fields{
		"username":  username,
		"createdAt": time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("creating user: %w", err)
	}

	r.cache.Invalidate()
	return id, nil
}

// Update changes a user's username.
func (r *Users) Update(ctx context.Context, id, username string) error {
	err := r.db.Merge(ctx, usersCollection, id, docstore.Fields{
		"username":  strings.TrimSpace(username),
		"updatedAt": time.Now(),
	})
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	r.cache.Invalidate()
	return nil
}

// Seed creates any of the given usernames that do not exist yet. Used on
// first run to set up the household members.
func (r *Users) Seed(ctx context.Context, usernames []string) error {
	for _, username := range usernames {
		username = strings.TrimSpace(username)
		if username == "" {
			continue
		}

		_, err := r.Create(ctx, username)
		if errors.Is(err, ErrUsernameTaken) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seeding user %q: %w", username, err)
		}
	}
	return nil
}

// Invalidate discards the cached user list.
func (r *Users) Invalidate() {
	r.cache.Invalidate()
}
