// Package mint orchestrates the tiered allocation minting pipeline.
package mint

import (
	"fmt"
	"math"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mintlab/dropforge-go/pkg/ledger"
	"github.com/mintlab/dropforge-go/pkg/merkle"
	"github.com/mintlab/dropforge-go/pkg/payment"
	"github.com/mintlab/dropforge-go/pkg/phase"
	"github.com/mintlab/dropforge-go/pkg/quota"
	"github.com/mintlab/dropforge-go/pkg/royalty"
	"github.com/mintlab/dropforge-go/pkg/supply"
)

// RootKind names the allowlist commitments the controller consults.
type RootKind int

const (
	RootDev RootKind = iota
	RootFastPass
	RootPresale
	RootPublic
)

// String returns the root kind's config name.
func (k RootKind) String() string {
	switch k {
	case RootDev:
		return "dev"
	case RootFastPass:
		return "fastpass"
	case RootPresale:
		return "presale"
	case RootPublic:
		return "public"
	default:
		return "unknown"
	}
}

// Per-wallet maxima of the reference deployment.
const (
	DefaultDevMaxPerWallet     = 2
	DefaultPresaleMaxPerWallet = 5
	DefaultPublicMaxPerWallet  = 5
)

// Config carries the collection's construction parameters.
type Config struct {
	Name   string
	Symbol string
	Owner  common.Address

	// MaxSupply bounds public and owner mints. Zero means unbounded.
	MaxSupply uint64

	// Per-wallet maxima; zero selects the deployment defaults.
	DevMaxPerWallet     uint64
	PresaleMaxPerWallet uint64
	PublicMaxPerWallet  uint64

	// IsContract rejects programmable proxies as callers. Nil allows all.
	IsContract func(common.Address) bool

	// Clock supplies the time for phase resolution. Nil uses time.Now.
	Clock func() time.Time
}

// Controller is the mint engine. Every entry point runs under one mutex so
// a call's effects commit all-or-nothing; all checks precede any mutation.
type Controller struct {
	name          string
	symbol        string
	owner         common.Address
	baseURI       string
	mysteryBoxURI string
	revealed      bool

	publicMint  bool
	publicPrice *big.Int

	maxSupply  uint64
	devMax     uint64
	presaleMax uint64
	publicMax  uint64

	roots      map[RootKind]common.Hash
	schedule   *phase.Schedule
	quotas     *quota.Ledger
	supply     *supply.Ledger
	tokens     ledger.Ledger
	royalties  *royalty.Registry
	rail       payment.Rail
	isContract func(common.Address) bool
	clock      func() time.Time

	mu sync.Mutex
}

// NewController wires a controller around an ownership ledger and a
// payment rail.
func NewController(cfg Config, tokens ledger.Ledger, rail payment.Rail) *Controller {
	c := &Controller{
		name:        cfg.Name,
		symbol:      cfg.Symbol,
		owner:       cfg.Owner,
		publicPrice: big.NewInt(0),
		maxSupply:   cfg.MaxSupply,
		devMax:      cfg.DevMaxPerWallet,
		presaleMax:  cfg.PresaleMaxPerWallet,
		publicMax:   cfg.PublicMaxPerWallet,
		roots:       make(map[RootKind]common.Hash),
		schedule:    phase.NewSchedule(),
		quotas:      quota.NewLedger(),
		supply:      supply.NewLedger(),
		tokens:      tokens,
		royalties:   royalty.NewRegistry(),
		rail:        rail,
		isContract:  cfg.IsContract,
		clock:       cfg.Clock,
	}
	if c.maxSupply == 0 {
		c.maxSupply = math.MaxUint64
	}
	if c.devMax == 0 {
		c.devMax = DefaultDevMaxPerWallet
	}
	if c.presaleMax == 0 {
		c.presaleMax = DefaultPresaleMaxPerWallet
	}
	if c.publicMax == 0 {
		c.publicMax = DefaultPublicMaxPerWallet
	}
	if c.isContract == nil {
		c.isContract = func(common.Address) bool { return false }
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	return c
}

// Schedule exposes the sale schedule for resolution queries.
func (c *Controller) Schedule() *phase.Schedule {
	return c.schedule
}

// DevMint mints qty tokens to to under the developer window. The caller
// must prove membership in the dev list; ids come from the shared cursor.
func (c *Controller) DevMint(caller, to common.Address, qty uint64, value *big.Int, proof []common.Hash) ([]uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkOrigin(caller); err != nil {
		return nil, err
	}
	dev, ok := c.schedule.ResolveDev(c.clock())
	if !ok {
		return nil, ErrNotStarted
	}
	return c.cursorMint(caller, to, qty, value, proof, cursorMintParams{
		price:  dev.Price,
		cap:    dev.Cap,
		root:   c.roots[RootDev],
		family: quota.FamilyDev,
		max:    c.devMax,
	})
}

// PresaleMint mints qty tokens to to under whichever presale tier is
// active. The fast-pass stage checks the fast-pass list; later stages
// check the general presale list. The resolved tier's price applies.
func (c *Controller) PresaleMint(caller, to common.Address, qty uint64, value *big.Int, proof []common.Hash) ([]uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkOrigin(caller); err != nil {
		return nil, err
	}
	active, ok := c.schedule.Resolve(c.clock())
	if !ok {
		return nil, ErrNotStarted
	}
	root := c.roots[RootPresale]
	if active.FastPass {
		root = c.roots[RootFastPass]
	}
	return c.cursorMint(caller, to, qty, value, proof, cursorMintParams{
		price:  active.Price,
		cap:    active.Cap,
		root:   root,
		family: quota.FamilyPresale,
		max:    c.presaleMax,
	})
}

type cursorMintParams struct {
	price  *big.Int
	cap    uint64
	root   common.Hash
	family quota.Family
	max    uint64
}

// cursorMint runs the shared pipeline for cursor-allocated mints. The
// controller mutex is held; nothing mutates until every check has passed.
func (c *Controller) cursorMint(caller, to common.Address, qty uint64, value *big.Int, proof []common.Hash, p cursorMintParams) ([]uint64, error) {
	if qty == 0 {
		return nil, ErrBadMintQuantity
	}

	required := new(big.Int).Mul(p.price, new(big.Int).SetUint64(qty))
	if !c.rail.SufficientFunds(caller, value, required) {
		return nil, ErrInsufficientPayment
	}
	if !merkle.Verify(p.root, proof, merkle.AddressLeaf(caller)) {
		return nil, ErrInvalidProof
	}
	if err := c.quotas.Check(caller, p.family, qty, p.max); err != nil {
		return nil, err
	}
	minted := c.supply.TotalSupply()
	if p.cap < minted || qty > p.cap-minted {
		return nil, ErrSupplyExceeded
	}
	next := c.supply.NextID()
	for i := uint64(0); i < qty; i++ {
		if c.tokens.Exists(next + i) {
			return nil, fmt.Errorf("%w: id %d", ErrIDAlreadyIssued, next+i)
		}
	}

	// all checks passed; commit
	if err := c.rail.Collect(caller, value, required); err != nil {
		return nil, err
	}
	ids, err := c.supply.Allocate(qty, p.cap)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if err := c.tokens.Issue(to, id); err != nil {
			return nil, err
		}
	}
	c.quotas.Increment(caller, p.family, qty)
	return ids, nil
}

// PublicMint mints the caller's pre-assigned token id under the public
// allowlist phase. The proof binds the caller to that specific id.
func (c *Controller) PublicMint(caller, to common.Address, tokenID uint64, value *big.Int, proof []common.Hash) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkOrigin(caller); err != nil {
		return err
	}
	if !c.publicMint {
		return ErrNotStarted
	}
	if !c.rail.SufficientFunds(caller, value, c.publicPrice) {
		return ErrInsufficientPayment
	}
	if !merkle.Verify(c.roots[RootPublic], proof, merkle.AllocationLeaf(caller, tokenID)) {
		return ErrInvalidProof
	}
	if err := c.quotas.Check(caller, quota.FamilyPublic, 1, c.publicMax); err != nil {
		return err
	}
	if c.tokens.Exists(tokenID) {
		return ErrIDAlreadyIssued
	}
	if c.supply.TotalSupply()+1 > c.maxSupply {
		return ErrSupplyExceeded
	}

	if err := c.rail.Collect(caller, value, c.publicPrice); err != nil {
		return err
	}
	if err := c.supply.IssueAt(c.maxSupply); err != nil {
		return err
	}
	if err := c.tokens.Issue(to, tokenID); err != nil {
		return err
	}
	c.quotas.Increment(caller, quota.FamilyPublic, 1)
	return nil
}

// OwnerMint issues an explicitly chosen id to to. Owner only; skips the
// origin, payment, proof, and quota stages entirely.
func (c *Controller) OwnerMint(caller, to common.Address, id uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if caller != c.owner {
		return ErrUnauthorized
	}
	if c.tokens.Exists(id) {
		return ErrIDAlreadyIssued
	}
	if err := c.supply.IssueAt(c.maxSupply); err != nil {
		return err
	}
	return c.tokens.Issue(to, id)
}

// Burn destroys a token. The caller must be its owner or approved.
func (c *Controller) Burn(caller common.Address, id uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tokens.Exists(id) {
		return ErrNotFound
	}
	if !c.tokens.IsApprovedOrOwner(caller, id) {
		return ErrUnauthorized
	}
	if err := c.tokens.Burn(id); err != nil {
		return err
	}
	c.supply.Release()
	return nil
}

func (c *Controller) checkOrigin(caller common.Address) error {
	if c.isContract(caller) {
		return ErrCallerIsContract
	}
	return nil
}

// TokenURI returns the placeholder until the collection is revealed, then
// baseURI + id.
func (c *Controller) TokenURI(id uint64) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tokens.Exists(id) {
		return "", ErrNotFound
	}
	if !c.revealed {
		return c.mysteryBoxURI, nil
	}
	return fmt.Sprintf("%s%d", c.baseURI, id), nil
}

// RoyaltyInfo returns the royalty receiver and amount for a sale of id.
func (c *Controller) RoyaltyInfo(id uint64, salePrice *big.Int) (common.Address, *big.Int) {
	return c.royalties.RoyaltyInfo(id, salePrice)
}

// Name returns the collection name.
func (c *Controller) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

// Symbol returns the collection symbol.
func (c *Controller) Symbol() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.symbol
}

// Owner returns the administrator address.
func (c *Controller) Owner() common.Address {
	return c.owner
}

// TotalSupply returns the live token count.
func (c *Controller) TotalSupply() uint64 {
	return c.supply.TotalSupply()
}

// NextTokenID returns the cursor position.
func (c *Controller) NextTokenID() uint64 {
	return c.supply.NextID()
}

// Revealed reports the metadata reveal switch.
func (c *Controller) Revealed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revealed
}

// PublicMintOpen reports whether the public allowlist phase is enabled.
func (c *Controller) PublicMintOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.publicMint
}

// Quota returns a wallet's consumed quota in a family.
func (c *Controller) Quota(wallet common.Address, family quota.Family) uint64 {
	return c.quotas.Count(wallet, family)
}

// Root returns a configured allowlist commitment.
func (c *Controller) Root(kind RootKind) common.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roots[kind]
}
