// Package cache holds the resolve-or-create caches behind the user resolver.
// Entries are never expired: account IRIs are immutable once minted.
package cache

import (
	"context"
	"sync"

	"pushgraph/internal/user/models"
	"pushgraph/pkg/rdf"
)

// InMemoryCache is a process-wide, unbounded user cache.
type InMemoryCache struct {
	mu    sync.RWMutex
	users map[rdf.IRI]models.User
}

func NewInMemory() *InMemoryCache {
	return &InMemoryCache{users: make(map[rdf.IRI]models.User)}
}

// Get returns a copy of the cached user.
func (c *InMemoryCache) Get(_ context.Context, uri rdf.IRI) (*models.User, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.users[uri]
	if !ok {
		return nil, false, nil
	}
	return &u, true, nil
}

// Put stores user. The last writer wins.
func (c *InMemoryCache) Put(_ context.Context, user *models.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[user.URI] = *user
	return nil
}

// Len returns the number of cached users.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.users)
}
