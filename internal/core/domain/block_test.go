package domain_test

import (
	"errors"
	"testing"

	"sechelper/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlockHeight(t *testing.T) {
	h, err := domain.NewBlockHeight(101)
	require.NoError(t, err)
	assert.Equal(t, uint64(101), h.Value())

	_, err = domain.NewBlockHeight(-1)
	assert.True(t, errors.Is(err, domain.ErrNegativeBlockHeight))
}

func TestNewBlockRange(t *testing.T) {
	r, err := domain.NewBlockRange(domain.BlockHeightOf(5), domain.BlockHeightOf(5))
	require.NoError(t, err, "equal bounds denote a single block")
	assert.Equal(t, domain.SingleBlock(domain.BlockHeightOf(5)), r)

	_, err = domain.NewBlockRange(domain.BlockHeightOf(6), domain.BlockHeightOf(5))
	assert.True(t, errors.Is(err, domain.ErrInvalidBlockRange))
}

func TestTrailingWindow(t *testing.T) {
	r := domain.TrailingWindow(domain.BlockHeightOf(1000), 240)
	assert.Equal(t, uint64(760), r.From.Value())
	assert.Equal(t, uint64(1000), r.To.Value())

	clamped := domain.TrailingWindow(domain.BlockHeightOf(100), 240)
	assert.Equal(t, uint64(0), clamped.From.Value())
	assert.NoError(t, clamped.Validate())
}
