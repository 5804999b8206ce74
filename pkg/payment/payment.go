// Package payment abstracts how mint payment is checked, collected, and
// withdrawn. Two rails exist: value attached directly to the call, and a
// pre-approved pull from a fungible-token ledger.
package payment

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mintlab/dropforge-go/pkg/token"
)

// Payment errors.
var (
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrTransferFailed      = errors.New("transfer failed")
)

// Rail is the controller's view of a payment mechanism. attached is the
// value carried by the call itself; rails that pull from an external ledger
// ignore it.
type Rail interface {
	SufficientFunds(caller common.Address, attached, amount *big.Int) bool
	Collect(caller common.Address, attached, amount *big.Int) error
	Withdraw(to common.Address, amount *big.Int) error
	Collected() *big.Int
}

// ValueRail settles payment from value attached to the call, debited from
// the caller's native balance. With RetainOverpayment set (the reference
// deployment's behavior) the full attached value is kept; otherwise only
// the required amount is taken.
type ValueRail struct {
	balances  map[common.Address]*big.Int
	collected *big.Int

	// RetainOverpayment keeps any excess attached value instead of
	// refunding it.
	RetainOverpayment bool

	mu sync.Mutex
}

// NewValueRail creates an empty native-value rail that retains overpayment.
func NewValueRail() *ValueRail {
	return &ValueRail{
		balances:          make(map[common.Address]*big.Int),
		collected:         big.NewInt(0),
		RetainOverpayment: true,
	}
}

// Deposit seeds addr with native balance.
func (r *ValueRail) Deposit(addr common.Address, amount *big.Int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.credit(addr, amount)
}

// BalanceOf returns addr's native balance.
func (r *ValueRail) BalanceOf(addr common.Address) *big.Int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.balances[addr]; ok {
		return new(big.Int).Set(b)
	}
	return big.NewInt(0)
}

// SufficientFunds reports whether the attached value covers amount and the
// caller can actually supply it.
func (r *ValueRail) SufficientFunds(caller common.Address, attached, amount *big.Int) bool {
	if attached == nil || attached.Cmp(amount) < 0 {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	balance := r.balances[caller]
	return balance != nil && balance.Cmp(attached) >= 0
}

// Collect debits the caller and adds the payment to the collected balance.
func (r *ValueRail) Collect(caller common.Address, attached, amount *big.Int) error {
	if attached == nil || attached.Cmp(amount) < 0 {
		return ErrInsufficientPayment
	}
	take := amount
	if r.RetainOverpayment {
		take = attached
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	balance := r.balances[caller]
	if balance == nil || balance.Cmp(take) < 0 {
		return ErrInsufficientPayment
	}
	r.balances[caller] = new(big.Int).Sub(balance, take)
	r.collected = new(big.Int).Add(r.collected, take)
	return nil
}

// Withdraw moves amount of the collected balance to to.
func (r *ValueRail) Withdraw(to common.Address, amount *big.Int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if amount.Sign() < 0 || r.collected.Cmp(amount) < 0 {
		return ErrTransferFailed
	}
	r.collected = new(big.Int).Sub(r.collected, amount)
	r.credit(to, amount)
	return nil
}

// Collected returns the undistributed contract balance.
func (r *ValueRail) Collected() *big.Int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return new(big.Int).Set(r.collected)
}

func (r *ValueRail) credit(addr common.Address, amount *big.Int) {
	balance := r.balances[addr]
	if balance == nil {
		balance = big.NewInt(0)
	}
	r.balances[addr] = new(big.Int).Add(balance, amount)
}

// TokenRail settles payment by pulling pre-approved funds from a fungible
// token ledger into a collector account. Attached call value is ignored;
// only the exact amount is ever pulled, so the overpayment question does
// not arise on this rail.
type TokenRail struct {
	ledger    *token.Ledger
	collector common.Address
}

// NewTokenRail creates a rail pulling from ledger into the collector
// account, which stands for the contract's own address.
func NewTokenRail(ledger *token.Ledger, collector common.Address) *TokenRail {
	return &TokenRail{ledger: ledger, collector: collector}
}

// SufficientFunds reports whether the caller has approved and can cover
// amount.
func (r *TokenRail) SufficientFunds(caller common.Address, _ *big.Int, amount *big.Int) bool {
	if r.ledger.Allowance(caller, r.collector).Cmp(amount) < 0 {
		return false
	}
	return r.ledger.BalanceOf(caller).Cmp(amount) >= 0
}

// Collect pulls amount from the caller via allowance.
func (r *TokenRail) Collect(caller common.Address, _ *big.Int, amount *big.Int) error {
	if err := r.ledger.TransferFrom(r.collector, caller, r.collector, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientPayment, err)
	}
	return nil
}

// Withdraw sends amount of the collected tokens to to.
func (r *TokenRail) Withdraw(to common.Address, amount *big.Int) error {
	if err := r.ledger.Transfer(r.collector, to, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	return nil
}

// Collected returns the collector account's balance.
func (r *TokenRail) Collected() *big.Int {
	return r.ledger.BalanceOf(r.collector)
}
