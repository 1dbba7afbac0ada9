package domain

import (
	"errors"
	"fmt"
)

// DefaultChain is the registry section used when none is configured.
const DefaultChain = "eth"

// ErrUnknownCategory indicates a category name outside the four registry sets.
var ErrUnknownCategory = errors.New("unknown address category")

// Category names one of the four address sets of the registry.
type Category string

// The registry categories. Only CategoryPotentialHacker is written at runtime.
const (
	CategoryHacker          Category = "hacker"
	CategoryProtocol        Category = "protocol"
	CategoryMixingService   Category = "mixing_service"
	CategoryPotentialHacker Category = "potential_hacker"
)

// Categories lists every category in document order.
func Categories() []Category {
	return []Category{CategoryHacker, CategoryProtocol, CategoryMixingService, CategoryPotentialHacker}
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownCategory, s)
}

// ChainAddresses holds the four address sets of one chain. Entries are kept verbatim
// and never deduplicated.
type ChainAddresses struct {
	Hacker          []string `json:"hacker"`
	Protocol        []string `json:"protocol"`
	MixingService   []string `json:"mixing_service"`
	PotentialHacker []string `json:"potential_hacker"`
}

// Get returns the entries of category c.
func (c ChainAddresses) Get(category Category) []string {
	switch category {
	case CategoryHacker:
		return c.Hacker
	case CategoryProtocol:
		return c.Protocol
	case CategoryMixingService:
		return c.MixingService
	case CategoryPotentialHacker:
		return c.PotentialHacker
	default:
		return nil
	}
}

// RegistrySnapshot is the whole persisted registry document keyed by chain identifier.
type RegistrySnapshot map[string]ChainAddresses

// Classified parses the entries of one category of one chain into addresses.
// A chain missing from the snapshot has empty sets.
func (s RegistrySnapshot) Classified(chain string, category Category) ([]Address, error) {
	if _, err := ParseCategory(string(category)); err != nil {
		return nil, err
	}
	raw := s[chain].Get(category)
	addrs := make([]Address, 0, len(raw))
	for _, entry := range raw {
		addr, err := NewAddress(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: registry %s.%s: %w", ErrParse, chain, category, err)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// WithPotentialHacker returns a copy of the snapshot with addr appended to the
// potential_hacker set of chain.
func (s RegistrySnapshot) WithPotentialHacker(chain string, addr Address) RegistrySnapshot {
	out := make(RegistrySnapshot, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	section := out[chain]
	section.PotentialHacker = append(append([]string(nil), section.PotentialHacker...), addr.String())
	out[chain] = section
	return out
}
