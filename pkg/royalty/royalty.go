// Package royalty stores default and per-token royalty fractions.
package royalty

import (
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// ErrBadRoyalty is returned when basis points exceed the denominator.
var ErrBadRoyalty = errors.New("royalty fee will exceed sale price")

// feeDenominator: fractions are expressed in basis points of 10000.
const feeDenominator = 10000

// Info is a royalty destination and its fraction.
type Info struct {
	Receiver    common.Address
	BasisPoints uint64
}

// Registry holds the collection default and per-token overrides.
type Registry struct {
	defaultInfo Info
	overrides   map[uint64]Info

	mu sync.RWMutex
}

// NewRegistry creates an empty registry; until a default is set every
// query yields a zero royalty.
func NewRegistry() *Registry {
	return &Registry{overrides: make(map[uint64]Info)}
}

// SetDefault sets the collection-wide royalty.
func (r *Registry) SetDefault(receiver common.Address, basisPoints uint64) error {
	if basisPoints > feeDenominator {
		return ErrBadRoyalty
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultInfo = Info{Receiver: receiver, BasisPoints: basisPoints}
	return nil
}

// SetToken sets an override for one token.
func (r *Registry) SetToken(id uint64, receiver common.Address, basisPoints uint64) error {
	if basisPoints > feeDenominator {
		return ErrBadRoyalty
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[id] = Info{Receiver: receiver, BasisPoints: basisPoints}
	return nil
}

// ResetToken drops a token's override so the default applies again.
func (r *Registry) ResetToken(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.overrides, id)
}

// RoyaltyInfo returns the receiver and amount owed on a sale of id at
// salePrice, using the token's override if present.
func (r *Registry) RoyaltyInfo(id uint64, salePrice *big.Int) (common.Address, *big.Int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.overrides[id]
	if !ok {
		info = r.defaultInfo
	}
	amount := new(big.Int).Mul(salePrice, new(big.Int).SetUint64(info.BasisPoints))
	amount.Div(amount, big.NewInt(feeDenominator))
	return info.Receiver, amount
}
