package backend

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintlab/dropforge-go/pkg/config"
	"github.com/mintlab/dropforge-go/pkg/merkle"
	"github.com/mintlab/dropforge-go/pkg/mint"
)

func TestNew_DefaultConfig(t *testing.T) {
	e, err := New(config.Default())
	require.NoError(t, err)

	assert.Len(t, e.Accounts(), 10)
	assert.Equal(t, e.Accounts()[0].Address, e.Owner())
	assert.Equal(t, "Genesis Wearables", e.Controller().Name())
	require.NotNil(t, e.ValueRail())
	assert.Nil(t, e.PaymentToken())

	// every dev account funded
	for _, acct := range e.Accounts() {
		assert.Equal(t, config.DefaultBalance, e.ValueRail().BalanceOf(acct.Address))
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Port = 0
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_TokenRail(t *testing.T) {
	cfg := config.Default()
	cfg.PaymentRail = "token"
	cfg.PaymentToken = &config.TokenConfig{Name: "MockPay", Symbol: "PAY"}

	e, err := New(cfg)
	require.NoError(t, err)

	require.NotNil(t, e.PaymentToken())
	assert.Nil(t, e.ValueRail())
	assert.Equal(t, config.DefaultBalance, e.PaymentToken().BalanceOf(e.Accounts()[1].Address))
}

func TestNew_AppliesSaleSchedule(t *testing.T) {
	now := time.Now().UTC()
	root := merkle.AddressLeaf(common.HexToAddress("0x01"))

	cfg := config.Default()
	cfg.Sale = &config.SaleConfig{
		Dev: &config.DevPhaseConfig{Start: now.Add(-time.Hour).Unix(), Cap: 50, Price: big.NewInt(7)},
		Earlybird: &config.TierConfig{
			Stages: []config.StageConfig{
				{Start: now.Unix(), Cap: 100},
				{Start: now.Add(time.Hour).Unix(), Cap: 200},
			},
			Price: big.NewInt(11),
		},
		Public: &config.PublicPhaseConfig{Enabled: true, Price: big.NewInt(13)},
		Roots:  map[string]common.Hash{"dev": root},
	}

	e, err := New(cfg)
	require.NoError(t, err)

	dev, ok := e.Controller().Schedule().ResolveDev(now)
	require.True(t, ok)
	assert.Equal(t, uint64(50), dev.Cap)
	assert.Equal(t, big.NewInt(7), dev.Price)

	assert.True(t, e.Controller().PublicMintOpen())
	assert.Equal(t, root, e.Controller().Root(mint.RootDev))
}

func TestNew_BadSaleSchedule(t *testing.T) {
	cfg := config.Default()
	start := time.Now().Unix()
	cfg.Sale = &config.SaleConfig{
		Earlybird: &config.TierConfig{
			// caps may not decrease across stages
			Stages: []config.StageConfig{
				{Start: start, Cap: 200},
				{Start: start + 3600, Cap: 100},
			},
			Price: big.NewInt(1),
		},
	}
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_UnknownRootKind(t *testing.T) {
	cfg := config.Default()
	cfg.Sale = &config.SaleConfig{
		Roots: map[string]common.Hash{"vip": {}},
	}
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestEngine_MarkContract(t *testing.T) {
	e, err := New(config.Default())
	require.NoError(t, err)

	proxy := common.HexToAddress("0x4444444444444444444444444444444444444444")
	assert.False(t, e.IsContract(proxy))
	e.MarkContract(proxy)
	assert.True(t, e.IsContract(proxy))
}
