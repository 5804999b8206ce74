// Package ledger provides the ownership ledger for issued tokens.
package ledger

import (
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Ownership ledger errors.
var (
	ErrIDAlreadyIssued = errors.New("id already issued")
	ErrNotFound        = errors.New("token not found")
	ErrNotOwner        = errors.New("caller is not owner nor approved")
)

// Reader provides read-only ledger access.
type Reader interface {
	OwnerOf(id uint64) (common.Address, error)
	BalanceOf(owner common.Address) uint64
	Exists(id uint64) bool
	TotalSupply() uint64
	TokenOfOwnerByIndex(owner common.Address, index uint64) (uint64, error)
	TokenByIndex(index uint64) (uint64, error)
}

// Writer provides ledger mutation.
type Writer interface {
	Issue(owner common.Address, id uint64) error
	Burn(id uint64) error
	Approve(caller, spender common.Address, id uint64) error
}

// Ledger combines read and write operations.
type Ledger interface {
	Reader
	Writer
	IsApprovedOrOwner(who common.Address, id uint64) bool
}

// InMemoryLedger implements Ledger with in-memory maps.
type InMemoryLedger struct {
	owners   map[uint64]common.Address
	approved map[uint64]common.Address
	byOwner  map[common.Address][]uint64
	all      []uint64

	mu sync.RWMutex
}

// NewInMemoryLedger creates an empty ownership ledger.
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{
		owners:   make(map[uint64]common.Address),
		approved: make(map[uint64]common.Address),
		byOwner:  make(map[common.Address][]uint64),
	}
}

// OwnerOf returns the current owner of id.
func (l *InMemoryLedger) OwnerOf(id uint64) (common.Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	owner, ok := l.owners[id]
	if !ok {
		return common.Address{}, ErrNotFound
	}
	return owner, nil
}

// BalanceOf returns the number of tokens held by owner.
func (l *InMemoryLedger) BalanceOf(owner common.Address) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint64(len(l.byOwner[owner]))
}

// Exists reports whether id has been issued and not burned.
func (l *InMemoryLedger) Exists(id uint64) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.owners[id]
	return ok
}

// TotalSupply returns the number of live tokens.
func (l *InMemoryLedger) TotalSupply() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint64(len(l.all))
}

// TokenOfOwnerByIndex enumerates an owner's tokens.
func (l *InMemoryLedger) TokenOfOwnerByIndex(owner common.Address, index uint64) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tokens := l.byOwner[owner]
	if index >= uint64(len(tokens)) {
		return 0, ErrNotFound
	}
	return tokens[index], nil
}

// TokenByIndex enumerates all live tokens.
func (l *InMemoryLedger) TokenByIndex(index uint64) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if index >= uint64(len(l.all)) {
		return 0, ErrNotFound
	}
	return l.all[index], nil
}

// Issue creates a new ownership record for id.
func (l *InMemoryLedger) Issue(owner common.Address, id uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.owners[id]; ok {
		return ErrIDAlreadyIssued
	}
	l.owners[id] = owner
	l.byOwner[owner] = append(l.byOwner[owner], id)
	l.all = append(l.all, id)
	return nil
}

// Burn destroys the ownership record for id.
func (l *InMemoryLedger) Burn(id uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	owner, ok := l.owners[id]
	if !ok {
		return ErrNotFound
	}
	delete(l.owners, id)
	delete(l.approved, id)
	l.byOwner[owner] = removeID(l.byOwner[owner], id)
	l.all = removeID(l.all, id)
	return nil
}

// Approve lets a token's owner authorize spender to act on id.
func (l *InMemoryLedger) Approve(caller, spender common.Address, id uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	owner, ok := l.owners[id]
	if !ok {
		return ErrNotFound
	}
	if owner != caller {
		return ErrNotOwner
	}
	l.approved[id] = spender
	return nil
}

// IsApprovedOrOwner reports whether who may act on id.
func (l *InMemoryLedger) IsApprovedOrOwner(who common.Address, id uint64) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	owner, ok := l.owners[id]
	if !ok {
		return false
	}
	return owner == who || l.approved[id] == who
}

// removeID deletes id from a slice with swap-remove, keeping enumeration
// O(1) amortized like the reference ledger.
func removeID(ids []uint64, id uint64) []uint64 {
	for i, v := range ids {
		if v == id {
			ids[i] = ids[len(ids)-1]
			return ids[:len(ids)-1]
		}
	}
	return ids
}
