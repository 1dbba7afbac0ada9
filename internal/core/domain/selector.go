package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrInvalidMethodSelector indicates a selector that is not 0x followed by 8 hex characters.
var ErrInvalidMethodSelector = errors.New("invalid method selector")

var selectorRegex = regexp.MustCompile("^0x[0-9a-f]{8}$")

// MethodSelector identifies the invoked contract method: the first 4 bytes of the
// Keccak-256 hash of its textual signature, hex encoded with a 0x prefix.
type MethodSelector struct {
	value string
}

// NewMethodSelectorFromSignature derives the selector of a method signature such as
// "transfer(address,uint256)". The signature is hashed verbatim.
func NewMethodSelectorFromSignature(signature string) MethodSelector {
	hash := crypto.Keccak256([]byte(signature))
	return MethodSelector{value: hexutil.Encode(hash[:4])}
}

// ParseMethodSelector parses a selector reported by a data provider.
// An empty string or a bare "0x" (plain value transfer) yields the zero selector.
func ParseMethodSelector(s string) (MethodSelector, error) {
	clean := strings.ToLower(strings.TrimSpace(s))
	if clean == "" || clean == "0x" {
		return MethodSelector{}, nil
	}
	if !selectorRegex.MatchString(clean) {
		return MethodSelector{}, fmt.Errorf("%w: %s", ErrInvalidMethodSelector, s)
	}
	return MethodSelector{value: clean}, nil
}

// MethodSelectorFromInput takes the selector from the leading 4 bytes of call data.
func MethodSelectorFromInput(input string) MethodSelector {
	clean := strings.ToLower(strings.TrimSpace(input))
	if len(clean) < 10 || !strings.HasPrefix(clean, "0x") {
		return MethodSelector{}
	}
	sel, err := ParseMethodSelector(clean[:10])
	if err != nil {
		return MethodSelector{}
	}
	return sel
}

// String returns the 0x-prefixed hex representation, or "" for the zero selector.
func (s MethodSelector) String() string {
	return s.value
}

// IsZero reports whether no selector is known.
func (s MethodSelector) IsZero() bool {
	return s.value == ""
}

// Equals checks if two selectors are equal.
func (s MethodSelector) Equals(other MethodSelector) bool {
	return s.value == other.value
}

// EventTopic returns topic0 of an event signature such as "Transfer(address,address,uint256)".
func EventTopic(signature string) common.Hash {
	return crypto.Keccak256Hash([]byte(signature))
}
