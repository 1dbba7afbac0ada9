package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeBlockHeight indicates that an attempt was made to create a negative block height.
	ErrNegativeBlockHeight = errors.New("block height cannot be negative")

	// ErrInvalidBlockRange indicates a range whose start is after its end.
	ErrInvalidBlockRange = errors.New("invalid block range")
)

// BlockHeight is the sequential index of a block, the only clock of the system.
type BlockHeight struct {
	value uint64
}

// NewBlockHeight creates a BlockHeight from a signed number.
func NewBlockHeight(height int64) (BlockHeight, error) {
	if height < 0 {
		return BlockHeight{}, fmt.Errorf("%w: %d", ErrNegativeBlockHeight, height)
	}
	return BlockHeight{value: uint64(height)}, nil
}

// BlockHeightOf wraps an unsigned height as reported by a node.
func BlockHeightOf(height uint64) BlockHeight {
	return BlockHeight{value: height}
}

// Value returns the uint64 representation of the height.
func (h BlockHeight) Value() uint64 {
	return h.value
}

// Sub returns the height n blocks earlier, clamped at genesis.
func (h BlockHeight) Sub(n uint64) BlockHeight {
	if n >= h.value {
		return BlockHeight{}
	}
	return BlockHeight{value: h.value - n}
}

// String returns the decimal representation of the height.
func (h BlockHeight) String() string {
	return fmt.Sprintf("%d", h.value)
}

// BlockArrivalEvent announces that a new block became the chain head.
type BlockArrivalEvent struct {
	Height BlockHeight
}

// BlockRange is an inclusive range of block heights. From == To denotes a single block.
type BlockRange struct {
	From BlockHeight
	To   BlockHeight
}

// NewBlockRange creates a validated inclusive range.
func NewBlockRange(from, to BlockHeight) (BlockRange, error) {
	r := BlockRange{From: from, To: to}
	if err := r.Validate(); err != nil {
		return BlockRange{}, err
	}
	return r, nil
}

// SingleBlock returns the range covering exactly one block.
func SingleBlock(h BlockHeight) BlockRange {
	return BlockRange{From: h, To: h}
}

// TrailingWindow returns the range [head-size, head], clamped at genesis.
func TrailingWindow(head BlockHeight, size uint64) BlockRange {
	return BlockRange{From: head.Sub(size), To: head}
}

// Validate checks that From <= To.
func (r BlockRange) Validate() error {
	if r.From.value > r.To.value {
		return fmt.Errorf("%w: from %d is after to %d", ErrInvalidBlockRange, r.From.value, r.To.value)
	}
	return nil
}
