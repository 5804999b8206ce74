// Package token provides the companion fungible-token ledgers: simple
// owner-minted supplies with an optional hard cap, a pause switch, and
// allowance-based pulls used by the payment rail.
package token

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Ledger manages balances and supply for one fungible token.
type Ledger struct {
	name   string
	symbol string
	owner  common.Address
	cap    *big.Int // nil = uncapped
	paused bool

	balances    map[common.Address]*big.Int
	allowances  map[common.Address]map[common.Address]*big.Int
	totalSupply *big.Int

	mu sync.RWMutex
}

// NewLedger creates a fungible-token ledger. A nil cap means the supply
// is unbounded.
func NewLedger(name, symbol string, owner common.Address, cap *big.Int) *Ledger {
	l := &Ledger{
		name:        name,
		symbol:      symbol,
		owner:       owner,
		balances:    make(map[common.Address]*big.Int),
		allowances:  make(map[common.Address]map[common.Address]*big.Int),
		totalSupply: big.NewInt(0),
	}
	if cap != nil {
		l.cap = new(big.Int).Set(cap)
	}
	return l
}

// Name returns the token name.
func (l *Ledger) Name() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.name
}

// Symbol returns the token symbol.
func (l *Ledger) Symbol() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.symbol
}

// SetNameAndSymbol renames the token. Owner only.
func (l *Ledger) SetNameAndSymbol(caller common.Address, name, symbol string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.owner {
		return ErrUnauthorized
	}
	l.name = name
	l.symbol = symbol
	return nil
}

// Mint creates amount new units for to. Owner only; fails if the cap would
// be exceeded or the ledger is paused.
func (l *Ledger) Mint(caller, to common.Address, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.owner {
		return ErrUnauthorized
	}
	if l.paused {
		return ErrPaused
	}
	if amount.Sign() < 0 {
		return ErrBadAmount
	}
	newSupply := new(big.Int).Add(l.totalSupply, amount)
	if l.cap != nil && newSupply.Cmp(l.cap) > 0 {
		return ErrCapExceeded
	}
	l.credit(to, amount)
	l.totalSupply = newSupply
	return nil
}

// Pause stops transfers and mints. Owner only.
func (l *Ledger) Pause(caller common.Address) error {
	return l.setPaused(caller, true)
}

// Unpause resumes transfers and mints. Owner only.
func (l *Ledger) Unpause(caller common.Address) error {
	return l.setPaused(caller, false)
}

func (l *Ledger) setPaused(caller common.Address, paused bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.owner {
		return ErrUnauthorized
	}
	l.paused = paused
	return nil
}

// Paused reports the pause switch.
func (l *Ledger) Paused() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.paused
}

// BalanceOf returns addr's balance.
func (l *Ledger) BalanceOf(addr common.Address) *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if b, ok := l.balances[addr]; ok {
		return new(big.Int).Set(b)
	}
	return big.NewInt(0)
}

// TotalSupply returns the minted supply.
func (l *Ledger) TotalSupply() *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return new(big.Int).Set(l.totalSupply)
}

// Transfer moves amount from the caller to to.
func (l *Ledger) Transfer(from, to common.Address, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.transfer(from, to, amount)
}

// Approve lets spender pull up to amount from owner's balance.
func (l *Ledger) Approve(owner, spender common.Address, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount.Sign() < 0 {
		return ErrBadAmount
	}
	inner, ok := l.allowances[owner]
	if !ok {
		inner = make(map[common.Address]*big.Int)
		l.allowances[owner] = inner
	}
	inner[spender] = new(big.Int).Set(amount)
	return nil
}

// Allowance returns what spender may still pull from owner.
func (l *Ledger) Allowance(owner, spender common.Address) *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if inner, ok := l.allowances[owner]; ok {
		if a, ok := inner[spender]; ok {
			return new(big.Int).Set(a)
		}
	}
	return big.NewInt(0)
}

// TransferFrom moves amount from from to to on spender's authority,
// consuming allowance.
func (l *Ledger) TransferFrom(spender, from, to common.Address, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	allowance := big.NewInt(0)
	if inner, ok := l.allowances[from]; ok {
		if a, ok := inner[spender]; ok {
			allowance = a
		}
	}
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if err := l.transfer(from, to, amount); err != nil {
		return err
	}
	l.allowances[from][spender] = new(big.Int).Sub(allowance, amount)
	return nil
}

func (l *Ledger) transfer(from, to common.Address, amount *big.Int) error {
	if l.paused {
		return ErrPaused
	}
	if amount.Sign() < 0 {
		return ErrBadAmount
	}
	balance := l.balances[from]
	if balance == nil || balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	l.balances[from] = new(big.Int).Sub(balance, amount)
	l.credit(to, amount)
	return nil
}

func (l *Ledger) credit(to common.Address, amount *big.Int) {
	balance := l.balances[to]
	if balance == nil {
		balance = big.NewInt(0)
	}
	l.balances[to] = new(big.Int).Add(balance, amount)
}
