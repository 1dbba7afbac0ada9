package domain_test

import (
	"errors"
	"testing"

	"sechelper/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySnapshot_Classified(t *testing.T) {
	snap := domain.RegistrySnapshot{
		"eth": {
			MixingService: []string{"0xD90E2F925DA726B50C4ED8D0FBA7B2DBFB47FD4E"},
			Hacker:        []string{"not-an-address"},
		},
	}

	mixers, err := snap.Classified("eth", domain.CategoryMixingService)
	require.NoError(t, err)
	require.Len(t, mixers, 1)
	assert.Equal(t, "0xd90e2f925da726b50c4ed8d0fba7b2dbfb47fd4e", mixers[0].String())

	_, err = snap.Classified("eth", domain.CategoryHacker)
	assert.True(t, errors.Is(err, domain.ErrParse))

	empty, err := snap.Classified("bsc", domain.CategoryProtocol)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = snap.Classified("eth", domain.Category("friends"))
	assert.True(t, errors.Is(err, domain.ErrUnknownCategory))
}

func TestRegistrySnapshot_WithPotentialHacker(t *testing.T) {
	addr, err := domain.NewAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	require.NoError(t, err)

	orig := domain.RegistrySnapshot{"eth": {PotentialHacker: []string{addr.String()}}}
	next := orig.WithPotentialHacker("eth", addr)

	assert.Len(t, orig["eth"].PotentialHacker, 1, "original snapshot must not change")
	assert.Equal(t, []string{addr.String(), addr.String()}, next["eth"].PotentialHacker, "duplicates are kept")
}
