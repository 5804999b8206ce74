// Package supply tracks the token id cursor and the live total supply.
package supply

import (
	"errors"
	"sync"
)

// ErrSupplyExceeded is returned when an allocation would push the total
// supply over the cap in effect.
var ErrSupplyExceeded = errors.New("supply exceeded")

// Ledger owns the monotonically increasing id cursor shared by all phases
// and the count of currently unburned tokens. The cursor never rewinds;
// burned ids are never handed out again.
type Ledger struct {
	nextID      uint64
	totalSupply uint64

	mu sync.RWMutex
}

// NewLedger creates a ledger with the cursor at 1, the first id the
// reference deployment issues.
func NewLedger() *Ledger {
	return &Ledger{nextID: 1}
}

// NextID returns the id the next cursor allocation will start from.
func (l *Ledger) NextID() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.nextID
}

// TotalSupply returns the count of currently unburned tokens.
func (l *Ledger) TotalSupply() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalSupply
}

// SetNextID repositions the cursor. Admins use this between phases to carve
// out disjoint id ranges.
func (l *Ledger) SetNextID(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID = id
}

// Allocate reserves qty consecutive ids from the cursor, checking the cap
// atomically with the cursor advance. Returns the allocated ids in order.
func (l *Ledger) Allocate(qty, cap uint64) ([]uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Subtraction form so an adversarial qty cannot wrap the sum past cap.
	if cap < l.totalSupply || qty > cap-l.totalSupply {
		return nil, ErrSupplyExceeded
	}
	ids := make([]uint64, qty)
	for i := range ids {
		ids[i] = l.nextID + uint64(i)
	}
	l.nextID += qty
	l.totalSupply += qty
	return ids, nil
}

// IssueAt accounts for a mint of one explicitly chosen id (public allowlist
// allocations and owner mints). The cursor is not moved.
func (l *Ledger) IssueAt(cap uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.totalSupply >= cap {
		return ErrSupplyExceeded
	}
	l.totalSupply++
	return nil
}

// Release accounts for a burn. Supply decrements; the cursor stays put so
// the freed id is never reused.
func (l *Ledger) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.totalSupply > 0 {
		l.totalSupply--
	}
}
