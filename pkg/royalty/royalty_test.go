package royalty

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var receiver = common.HexToAddress("0x3333333333333333333333333333333333333333")

func TestRegistry_Default(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.SetDefault(receiver, 1000))

	got, amount := r.RoyaltyInfo(31, big.NewInt(50000))
	assert.Equal(t, receiver, got)
	assert.Equal(t, big.NewInt(5000), amount)
}

func TestRegistry_TokenOverride(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.SetDefault(receiver, 1000))
	require.NoError(t, r.SetToken(32, receiver, 2000))

	_, amount := r.RoyaltyInfo(32, big.NewInt(50000))
	assert.Equal(t, big.NewInt(10000), amount)

	// other tokens still use the default
	_, amount = r.RoyaltyInfo(31, big.NewInt(50000))
	assert.Equal(t, big.NewInt(5000), amount)
}

func TestRegistry_ResetToken(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.SetDefault(receiver, 1000))
	require.NoError(t, r.SetToken(32, receiver, 2000))

	r.ResetToken(32)
	_, amount := r.RoyaltyInfo(32, big.NewInt(50000))
	assert.Equal(t, big.NewInt(5000), amount)
}

func TestRegistry_BadBasisPoints(t *testing.T) {
	r := NewRegistry()
	assert.ErrorIs(t, r.SetDefault(receiver, 10001), ErrBadRoyalty)
	assert.ErrorIs(t, r.SetToken(1, receiver, 10001), ErrBadRoyalty)

	// exact denominator is the implementation ceiling
	assert.NoError(t, r.SetDefault(receiver, 10000))
}

func TestRegistry_Unset(t *testing.T) {
	r := NewRegistry()
	got, amount := r.RoyaltyInfo(1, big.NewInt(50000))
	assert.Equal(t, common.Address{}, got)
	assert.Equal(t, big.NewInt(0), amount)
}
