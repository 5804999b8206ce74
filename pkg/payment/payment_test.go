package payment

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintlab/dropforge-go/pkg/token"
)

var (
	buyer     = common.HexToAddress("0x1111111111111111111111111111111111111111")
	owner     = common.HexToAddress("0x2222222222222222222222222222222222222222")
	collector = common.HexToAddress("0x00000000000000000000000000000000000000cc")
)

func TestValueRail_CollectExact(t *testing.T) {
	r := NewValueRail()
	r.Deposit(buyer, big.NewInt(100))

	require.True(t, r.SufficientFunds(buyer, big.NewInt(60), big.NewInt(60)))
	require.NoError(t, r.Collect(buyer, big.NewInt(60), big.NewInt(60)))

	assert.Equal(t, big.NewInt(40), r.BalanceOf(buyer))
	assert.Equal(t, big.NewInt(60), r.Collected())
}

func TestValueRail_Underpayment(t *testing.T) {
	r := NewValueRail()
	r.Deposit(buyer, big.NewInt(100))

	assert.False(t, r.SufficientFunds(buyer, big.NewInt(59), big.NewInt(60)))
	assert.ErrorIs(t, r.Collect(buyer, big.NewInt(59), big.NewInt(60)), ErrInsufficientPayment)
	assert.Equal(t, big.NewInt(100), r.BalanceOf(buyer))
}

func TestValueRail_OverpaymentRetained(t *testing.T) {
	r := NewValueRail()
	r.Deposit(buyer, big.NewInt(100))

	require.NoError(t, r.Collect(buyer, big.NewInt(80), big.NewInt(60)))
	assert.Equal(t, big.NewInt(20), r.BalanceOf(buyer))
	assert.Equal(t, big.NewInt(80), r.Collected())
}

func TestValueRail_OverpaymentRefunded(t *testing.T) {
	r := NewValueRail()
	r.RetainOverpayment = false
	r.Deposit(buyer, big.NewInt(100))

	require.NoError(t, r.Collect(buyer, big.NewInt(80), big.NewInt(60)))
	assert.Equal(t, big.NewInt(40), r.BalanceOf(buyer))
	assert.Equal(t, big.NewInt(60), r.Collected())
}

func TestValueRail_AttachedExceedsBalance(t *testing.T) {
	r := NewValueRail()
	r.Deposit(buyer, big.NewInt(50))

	assert.False(t, r.SufficientFunds(buyer, big.NewInt(60), big.NewInt(60)))
	assert.ErrorIs(t, r.Collect(buyer, big.NewInt(60), big.NewInt(60)), ErrInsufficientPayment)
}

func TestValueRail_Withdraw(t *testing.T) {
	r := NewValueRail()
	r.Deposit(buyer, big.NewInt(100))
	require.NoError(t, r.Collect(buyer, big.NewInt(100), big.NewInt(100)))

	require.NoError(t, r.Withdraw(owner, big.NewInt(70)))
	assert.Equal(t, big.NewInt(70), r.BalanceOf(owner))
	assert.Equal(t, big.NewInt(30), r.Collected())

	assert.ErrorIs(t, r.Withdraw(owner, big.NewInt(31)), ErrTransferFailed)
}

func TestTokenRail_CollectViaAllowance(t *testing.T) {
	ledger := token.NewLedger("MockPay", "PAY", owner, nil)
	require.NoError(t, ledger.Mint(owner, buyer, big.NewInt(1000)))

	r := NewTokenRail(ledger, collector)

	// no approval yet
	assert.False(t, r.SufficientFunds(buyer, nil, big.NewInt(200)))
	assert.ErrorIs(t, r.Collect(buyer, nil, big.NewInt(200)), ErrInsufficientPayment)

	require.NoError(t, ledger.Approve(buyer, collector, big.NewInt(200)))
	require.True(t, r.SufficientFunds(buyer, nil, big.NewInt(200)))
	require.NoError(t, r.Collect(buyer, nil, big.NewInt(200)))

	assert.Equal(t, big.NewInt(800), ledger.BalanceOf(buyer))
	assert.Equal(t, big.NewInt(200), r.Collected())
}

func TestTokenRail_Withdraw(t *testing.T) {
	ledger := token.NewLedger("MockPay", "PAY", owner, nil)
	require.NoError(t, ledger.Mint(owner, buyer, big.NewInt(500)))
	require.NoError(t, ledger.Approve(buyer, collector, big.NewInt(500)))

	r := NewTokenRail(ledger, collector)
	require.NoError(t, r.Collect(buyer, nil, big.NewInt(500)))

	require.NoError(t, r.Withdraw(owner, big.NewInt(500)))
	assert.Equal(t, big.NewInt(500), ledger.BalanceOf(owner))

	assert.ErrorIs(t, r.Withdraw(owner, big.NewInt(1)), ErrTransferFailed)
}
