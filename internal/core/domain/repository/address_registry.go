// Package repository defines interfaces for data storage and retrieval operations.
//
//go:generate mockgen -source=$GOFILE -destination=../../mocks/mock_$GOPACKAGE/mock_$GOFILE -package=mock_$GOPACKAGE
package repository

import (
	"context"

	"sechelper/internal/core/domain"
)

// AddressRegistry is the persisted, categorized set of known addresses.
type AddressRegistry interface {
	// Load reads the whole registry document.
	Load(ctx context.Context) (domain.RegistrySnapshot, error)

	// Save overwrites the whole registry document.
	Save(ctx context.Context, snapshot domain.RegistrySnapshot) error

	// Classified returns the addresses of one category of the configured chain.
	Classified(ctx context.Context, category domain.Category) ([]domain.Address, error)

	// RecordPotentialHacker appends address to the potential_hacker set with a full
	// read-modify-write of the document.
	RecordPotentialHacker(ctx context.Context, address domain.Address) error
}
