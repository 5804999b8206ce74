// Package backend assembles the drop engine from configuration.
package backend

import (
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mintlab/dropforge-go/pkg/config"
	"github.com/mintlab/dropforge-go/pkg/ledger"
	"github.com/mintlab/dropforge-go/pkg/mint"
	"github.com/mintlab/dropforge-go/pkg/payment"
	"github.com/mintlab/dropforge-go/pkg/phase"
	"github.com/mintlab/dropforge-go/pkg/token"
)

// collectorAddress stands in for the contract's own account on the token
// payment rail.
var collectorAddress = common.HexToAddress("0x00000000000000000000000000000000000d60f0")

// Engine owns every component of a running drop: the mint controller, the
// ownership ledger, the payment rail, the derived dev accounts, and the
// registry of programmable accounts the caller-origin check rejects.
type Engine struct {
	cfg        *config.Config
	controller *mint.Controller
	tokens     *ledger.InMemoryLedger
	rail       payment.Rail
	valueRail  *payment.ValueRail // nil on the token rail
	payToken   *token.Ledger      // nil on the value rail
	accounts   []config.Account

	contracts map[common.Address]bool
	mu        sync.RWMutex
}

// New builds an engine from cfg, seeds the dev accounts, and applies any
// configured sale schedule.
func New(cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	accounts, err := cfg.DeriveAccounts()
	if err != nil {
		return nil, err
	}
	owner := accounts[0].Address

	e := &Engine{
		cfg:       cfg,
		tokens:    ledger.NewInMemoryLedger(),
		accounts:  accounts,
		contracts: make(map[common.Address]bool),
	}

	switch cfg.PaymentRail {
	case "token":
		e.payToken = token.NewLedger(cfg.PaymentToken.Name, cfg.PaymentToken.Symbol, owner, cfg.PaymentToken.Cap)
		for _, acct := range accounts {
			if err := e.payToken.Mint(owner, acct.Address, cfg.DefaultBalance); err != nil {
				return nil, err
			}
		}
		e.rail = payment.NewTokenRail(e.payToken, collectorAddress)
	default:
		rail := payment.NewValueRail()
		rail.RetainOverpayment = !cfg.RefundOverpayment
		for _, acct := range accounts {
			rail.Deposit(acct.Address, cfg.DefaultBalance)
		}
		e.valueRail = rail
		e.rail = rail
	}

	e.controller = mint.NewController(mint.Config{
		Name:       cfg.Collection.Name,
		Symbol:     cfg.Collection.Symbol,
		Owner:      owner,
		MaxSupply:  cfg.Collection.MaxSupply,
		IsContract: e.IsContract,
	}, e.tokens, e.rail)

	if cfg.Collection.BaseURI != "" {
		if err := e.controller.SetBaseURI(owner, cfg.Collection.BaseURI); err != nil {
			return nil, err
		}
	}
	if cfg.Collection.MysteryBoxURI != "" {
		if err := e.controller.SetMysteryBoxURI(owner, cfg.Collection.MysteryBoxURI); err != nil {
			return nil, err
		}
	}
	if cfg.Sale != nil {
		if err := e.applySale(owner, cfg.Sale); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Engine) applySale(owner common.Address, sale *config.SaleConfig) error {
	if sale.Dev != nil {
		err := e.controller.SetDevMintWindow(owner, phase.DevWindow{
			Start: time.Unix(sale.Dev.Start, 0).UTC(),
			Cap:   sale.Dev.Cap,
			Price: sale.Dev.Price,
		})
		if err != nil {
			return fmt.Errorf("dev window: %w", err)
		}
	}

	tiers := []struct {
		tier phase.Tier
		cfg  *config.TierConfig
	}{
		{phase.TierEarlybird, sale.Earlybird},
		{phase.TierPrivate, sale.Private},
		{phase.TierCommunity, sale.Community},
	}
	for _, tc := range tiers {
		if tc.cfg == nil {
			continue
		}
		w := phase.Window{Price: tc.cfg.Price}
		for _, st := range tc.cfg.Stages {
			w.Stages = append(w.Stages, phase.Stage{
				Start: time.Unix(st.Start, 0).UTC(),
				Cap:   st.Cap,
			})
		}
		if err := e.controller.SetTierWindow(owner, tc.tier, w); err != nil {
			return fmt.Errorf("%s window: %w", tc.tier, err)
		}
	}

	if sale.Public != nil {
		if sale.Public.Price != nil {
			if err := e.controller.SetPublicMintPrice(owner, sale.Public.Price); err != nil {
				return err
			}
		}
		if err := e.controller.SetPublicMint(owner, sale.Public.Enabled); err != nil {
			return err
		}
	}

	kinds := map[string]mint.RootKind{
		"dev":      mint.RootDev,
		"fastpass": mint.RootFastPass,
		"presale":  mint.RootPresale,
		"public":   mint.RootPublic,
	}
	for name, root := range sale.Roots {
		kind, ok := kinds[name]
		if !ok {
			return fmt.Errorf("unknown allowlist %q", name)
		}
		if err := e.controller.SetRoot(owner, kind, root); err != nil {
			return err
		}
	}
	return nil
}

// Controller returns the mint controller.
func (e *Engine) Controller() *mint.Controller {
	return e.controller
}

// Tokens returns the ownership ledger.
func (e *Engine) Tokens() *ledger.InMemoryLedger {
	return e.tokens
}

// Rail returns the active payment rail.
func (e *Engine) Rail() payment.Rail {
	return e.rail
}

// ValueRail returns the native-value rail, or nil when the engine runs on
// the token rail.
func (e *Engine) ValueRail() *payment.ValueRail {
	return e.valueRail
}

// PaymentToken returns the companion payment token, or nil on the value
// rail.
func (e *Engine) PaymentToken() *token.Ledger {
	return e.payToken
}

// Accounts returns the derived dev accounts. Index 0 is the owner.
func (e *Engine) Accounts() []config.Account {
	return e.accounts
}

// Owner returns the collection owner's address.
func (e *Engine) Owner() common.Address {
	return e.accounts[0].Address
}

// MarkContract registers addr as a programmable account, making the
// caller-origin check reject it.
func (e *Engine) MarkContract(addr common.Address) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.contracts[addr] = true
}

// IsContract reports whether addr is a registered programmable account.
func (e *Engine) IsContract(addr common.Address) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.contracts[addr]
}
