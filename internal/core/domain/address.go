// Package domain defines the core domain models of the security watcher.
package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ErrInvalidAddressFormat indicates that the provided string is not a valid Ethereum address format.
var ErrInvalidAddressFormat = errors.New("invalid ethereum address format")

// Basic regex for Ethereum address format validation (0x followed by 40 hex characters).
var ethAddressRegex = regexp.MustCompile("^0x[0-9a-fA-F]{40}$")

// Address represents a validated, lowercase Ethereum address value object.
type Address struct {
	value string
}

// NewAddress creates a new Address value object from a string.
func NewAddress(addr string) (Address, error) {
	cleanAddr := strings.ToLower(strings.TrimSpace(addr))

	if !ethAddressRegex.MatchString(cleanAddr) {
		return Address{}, fmt.Errorf("%w: %s", ErrInvalidAddressFormat, addr)
	}
	return Address{value: cleanAddr}, nil
}

// NewOptionalAddress is NewAddress for fields where an empty string means "no address",
// such as the recipient of a contract creation.
func NewOptionalAddress(addr string) (Address, error) {
	if strings.TrimSpace(addr) == "" {
		return Address{}, nil
	}
	return NewAddress(addr)
}

// String returns the lowercase hex representation of the address.
func (a Address) String() string {
	return a.value
}

// Checksum returns the EIP-55 mixed-case representation used in human-facing output.
func (a Address) Checksum() string {
	if a.IsZero() {
		return ""
	}
	return common.HexToAddress(a.value).Hex()
}

// Common converts the address into the go-ethereum representation.
func (a Address) Common() common.Address {
	return common.HexToAddress(a.value)
}

// IsZero checks if the Address is the zero value (empty).
func (a Address) IsZero() bool {
	return a.value == ""
}

// Equals checks if two Address objects are equal.
func (a Address) Equals(other Address) bool {
	return a.value == other.value
}
