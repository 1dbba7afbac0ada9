package domain

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// TxSource tells which explorer query produced a transaction.
type TxSource string

const (
	// SourceDirect marks externally signed transactions.
	SourceDirect TxSource = "direct"
	// SourceInternal marks value transfers generated by contract execution.
	SourceInternal TxSource = "internal"
)

var (
	// ErrInvalidTransactionHashFormat indicates invalid transaction hash format.
	ErrInvalidTransactionHashFormat = errors.New("invalid transaction hash format")

	// ErrInvalidWeiValueFormat indicates that the provided string is not a valid Wei value format.
	ErrInvalidWeiValueFormat = errors.New("invalid wei value format")
)

// Basic regex for Transaction Hash format validation (0x followed by 64 hex characters).
var ethTxHashRegex = regexp.MustCompile("^0x[0-9a-fA-F]{64}$")

// TransactionHash represents a validated transaction hash value object.
type TransactionHash struct {
	value string
}

// NewTransactionHash creates a new TransactionHash.
func NewTransactionHash(hash string) (TransactionHash, error) {
	cleanHash := strings.ToLower(strings.TrimSpace(hash))
	if !ethTxHashRegex.MatchString(cleanHash) {
		return TransactionHash{}, fmt.Errorf("%w: %s", ErrInvalidTransactionHashFormat, hash)
	}
	return TransactionHash{value: cleanHash}, nil
}

// String returns the string representation of the transaction hash.
func (th TransactionHash) String() string {
	return th.value
}

// WeiValue is an amount in wei. It keeps arbitrary precision and prints in base 10.
type WeiValue struct {
	value *big.Int
}

// NewWeiValue parses a decimal amount. Explorer responses carry values in base 10;
// a 0x prefix is accepted for node-sourced values.
func NewWeiValue(s string) (WeiValue, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return WeiValue{}, fmt.Errorf("%w: input string is empty", ErrInvalidWeiValueFormat)
	}

	val := new(big.Int)
	var ok bool
	if strings.HasPrefix(trimmed, "0x") || strings.HasPrefix(trimmed, "0X") {
		_, ok = val.SetString(trimmed[2:], 16)
	} else {
		_, ok = val.SetString(trimmed, 10)
	}
	if !ok || val.Sign() < 0 {
		return WeiValue{}, fmt.Errorf("%w: failed to parse '%s'", ErrInvalidWeiValueFormat, trimmed)
	}
	return WeiValue{value: val}, nil
}

// String returns the decimal representation of the value.
func (wv WeiValue) String() string {
	if wv.value == nil {
		return "0"
	}
	return wv.value.String()
}

// BigInt returns a copy of the internal *big.Int value.
func (wv WeiValue) BigInt() *big.Int {
	if wv.value == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(wv.value)
}

// Transaction is the normalized view of a direct or internal transaction touching an address.
type Transaction struct {
	Hash           TransactionHash
	From           Address
	To             Address
	Value          WeiValue
	Input          string
	MethodSelector MethodSelector
	Source         TxSource
}

// Touches reports whether addr is the sender or the recipient of the transaction.
func (t Transaction) Touches(addr Address) bool {
	return t.From.Equals(addr) || (!t.To.IsZero() && t.To.Equals(addr))
}

// TransactionHashes lists the hashes of txs in order.
func TransactionHashes(txs []Transaction) []string {
	hashes := make([]string, 0, len(txs))
	for _, tx := range txs {
		hashes = append(hashes, tx.Hash.String())
	}
	return hashes
}
