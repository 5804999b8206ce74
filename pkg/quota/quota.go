// Package quota tracks per-wallet mint counts per phase family.
package quota

import (
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// ErrQuotaExceeded is returned when a wallet would exceed its per-phase
// maximum.
var ErrQuotaExceeded = errors.New("quota exceeded")

// Family groups mint entry points that share one per-wallet counter.
type Family int

const (
	FamilyDev Family = iota
	FamilyPresale
	FamilyPublic
)

// String returns the family's display name.
func (f Family) String() string {
	switch f {
	case FamilyDev:
		return "dev"
	case FamilyPresale:
		return "presale"
	case FamilyPublic:
		return "public"
	default:
		return "unknown"
	}
}

type key struct {
	wallet common.Address
	family Family
}

// Ledger holds the counters. Counts only ever increase; burns do not give
// quota back.
type Ledger struct {
	counts map[key]uint64
	mu     sync.RWMutex
}

// NewLedger creates an empty quota ledger.
func NewLedger() *Ledger {
	return &Ledger{counts: make(map[key]uint64)}
}

// Count returns a wallet's current mint count in a family.
func (l *Ledger) Count(wallet common.Address, family Family) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.counts[key{wallet, family}]
}

// Check reports whether minting qty more would stay within max.
func (l *Ledger) Check(wallet common.Address, family Family, qty, max uint64) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	// Subtraction form so an adversarial qty cannot wrap the sum past max.
	count := l.counts[key{wallet, family}]
	if qty > max || count > max-qty {
		return ErrQuotaExceeded
	}
	return nil
}

// Increment records qty successful mints. The caller is expected to have
// Checked first, inside its own transaction boundary.
func (l *Ledger) Increment(wallet common.Address, family Family, qty uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[key{wallet, family}] += qty
}
