// Package registry provides an in-memory implementation of the AddressRegistry interface.
package registry

import (
	"context"
	"sync"

	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/repository"
)

// InMemoryRegistry implements the AddressRegistry interface over a snapshot held in memory.
type InMemoryRegistry struct {
	mu       sync.RWMutex
	chain    string
	snapshot domain.RegistrySnapshot
}

// Compile-time check to ensure InMemoryRegistry implements repository.AddressRegistry
var _ repository.AddressRegistry = (*InMemoryRegistry)(nil)

// NewInMemoryRegistry creates a registry for chain seeded with a copy of seed.
func NewInMemoryRegistry(chain string, seed domain.RegistrySnapshot) *InMemoryRegistry {
	if chain == "" {
		chain = domain.DefaultChain
	}
	return &InMemoryRegistry{
		chain:    chain,
		snapshot: cloneSnapshot(seed),
	}
}

// Load returns a copy of the current snapshot.
func (r *InMemoryRegistry) Load(_ context.Context) (domain.RegistrySnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneSnapshot(r.snapshot), nil
}

// Save replaces the snapshot.
func (r *InMemoryRegistry) Save(_ context.Context, snapshot domain.RegistrySnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshot = cloneSnapshot(snapshot)
	return nil
}

// Classified returns the addresses of category on the configured chain.
func (r *InMemoryRegistry) Classified(_ context.Context, category domain.Category) ([]domain.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshot.Classified(r.chain, category)
}

// RecordPotentialHacker appends address to the potential_hacker set.
func (r *InMemoryRegistry) RecordPotentialHacker(_ context.Context, address domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshot = r.snapshot.WithPotentialHacker(r.chain, address)
	return nil
}

func cloneSnapshot(s domain.RegistrySnapshot) domain.RegistrySnapshot {
	out := make(domain.RegistrySnapshot, len(s))
	for chain, sets := range s {
		out[chain] = domain.ChainAddresses{
			Hacker:          append([]string(nil), sets.Hacker...),
			Protocol:        append([]string(nil), sets.Protocol...),
			MixingService:   append([]string(nil), sets.MixingService...),
			PotentialHacker: append([]string(nil), sets.PotentialHacker...),
		}
	}
	return out
}
