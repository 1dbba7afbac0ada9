package domain_test

import (
	"errors"
	"testing"

	"sechelper/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMethodSelectorFromSignature(t *testing.T) {
	tests := []struct {
		signature string
		want      string
	}{
		{signature: "transfer(address,uint256)", want: "0xa9059cbb"},
		{signature: "approve(address,uint256)", want: "0x095ea7b3"},
		{signature: "balanceOf(address)", want: "0x70a08231"},
		{signature: "removeLiquidity(address,address,uint256,uint256,uint256,address,uint256)", want: "0xbaa2abde"},
	}

	for _, tt := range tests {
		t.Run(tt.signature, func(t *testing.T) {
			got := domain.NewMethodSelectorFromSignature(tt.signature)
			assert.Equal(t, tt.want, got.String())
			assert.True(t, got.Equals(domain.NewMethodSelectorFromSignature(tt.signature)), "derivation must be deterministic")
		})
	}
}

func TestParseMethodSelector(t *testing.T) {
	sel, err := domain.ParseMethodSelector("0xA9059CBB")
	require.NoError(t, err)
	assert.Equal(t, "0xa9059cbb", sel.String())

	for _, empty := range []string{"", "0x", "  "} {
		sel, err := domain.ParseMethodSelector(empty)
		require.NoError(t, err)
		assert.True(t, sel.IsZero(), "input %q", empty)
	}

	_, err = domain.ParseMethodSelector("0xa9059c")
	assert.True(t, errors.Is(err, domain.ErrInvalidMethodSelector))
}

func TestMethodSelectorFromInput(t *testing.T) {
	input := "0xa9059cbb000000000000000000000000aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	assert.Equal(t, "0xa9059cbb", domain.MethodSelectorFromInput(input).String())
	assert.True(t, domain.MethodSelectorFromInput("0x").IsZero())
	assert.True(t, domain.MethodSelectorFromInput("deadbeef00").IsZero())
}

func TestEventTopic(t *testing.T) {
	got := domain.EventTopic("Transfer(address,address,uint256)")
	assert.Equal(t, "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef", got.Hex())
}
