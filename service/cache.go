package service

import (
	"sync"
	"time"

	"github.com/SlickbitTechnologies/ContractFlow/model"
)

// CollectionCache holds the last known contract collection fetched from
// the remote store. It is a convenience read view, never an authoritative
// store: it is only ever replaced wholesale by a refresh, in store order.
type CollectionCache struct {
	mu          sync.RWMutex
	contracts   []model.Contract
	lastRefresh time.Time
}

func NewCollectionCache() *CollectionCache {
	return &CollectionCache{}
}

// Replace swaps in a fresh snapshot. Last refresh wins.
func (c *CollectionCache) Replace(contracts []model.Contract) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contracts = contracts
	c.lastRefresh = time.Now()
}

// All returns a copy of the snapshot, preserving store order.
func (c *CollectionCache) All() []model.Contract {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Contract, len(c.contracts))
	copy(out, c.contracts)
	return out
}

// Count returns the number of contracts in the snapshot.
func (c *CollectionCache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.contracts)
}

// LastRefresh returns when the snapshot was last replaced; zero if never.
func (c *CollectionCache) LastRefresh() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRefresh
}
