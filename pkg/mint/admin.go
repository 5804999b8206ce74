package mint

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mintlab/dropforge-go/pkg/phase"
)

// Owner-gated administrative surface. The ownership check is the only
// validation most setters carry; window setters add the ordering rules
// enforced by the schedule.

func (c *Controller) requireOwner(caller common.Address) error {
	if caller != c.owner {
		return ErrUnauthorized
	}
	return nil
}

// SetNameAndSymbol renames the collection.
func (c *Controller) SetNameAndSymbol(caller common.Address, name, symbol string) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
	c.symbol = symbol
	return nil
}

// SetBaseURI sets the post-reveal metadata prefix.
func (c *Controller) SetBaseURI(caller common.Address, uri string) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURI = uri
	return nil
}

// SetMysteryBoxURI sets the pre-reveal placeholder.
func (c *Controller) SetMysteryBoxURI(caller common.Address, uri string) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mysteryBoxURI = uri
	return nil
}

// SetRevealed flips the metadata reveal switch.
func (c *Controller) SetRevealed(caller common.Address, revealed bool) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revealed = revealed
	return nil
}

// SetPublicMint opens or closes the public allowlist phase.
func (c *Controller) SetPublicMint(caller common.Address, open bool) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.publicMint = open
	return nil
}

// SetPublicMintPrice sets the public phase price.
func (c *Controller) SetPublicMintPrice(caller common.Address, price *big.Int) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	if price == nil || price.Sign() < 0 {
		return ErrBadQuantity
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.publicPrice = new(big.Int).Set(price)
	return nil
}

// SetRoot stores an allowlist commitment. An all-zero root disables the
// list entirely.
func (c *Controller) SetRoot(caller common.Address, kind RootKind, root common.Hash) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roots[kind] = root
	return nil
}

// SetNextTokenID repositions the id cursor, carving out a fresh range for
// the next phase.
func (c *Controller) SetNextTokenID(caller common.Address, id uint64) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	c.supply.SetNextID(id)
	return nil
}

// SetDevMintWindow configures the developer mint phase.
func (c *Controller) SetDevMintWindow(caller common.Address, w phase.DevWindow) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	return c.schedule.SetDevWindow(w)
}

// SetTierWindow configures one presale tier. Ordering violations leave the
// stored window unchanged.
func (c *Controller) SetTierWindow(caller common.Address, tier phase.Tier, w phase.Window) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	return c.schedule.SetWindow(tier, w)
}

// SetDefaultRoyalty sets the collection-wide royalty.
func (c *Controller) SetDefaultRoyalty(caller, receiver common.Address, basisPoints uint64) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	return c.royalties.SetDefault(receiver, basisPoints)
}

// SetTokenRoyalty sets a per-token royalty override.
func (c *Controller) SetTokenRoyalty(caller common.Address, id uint64, receiver common.Address, basisPoints uint64) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	return c.royalties.SetToken(id, receiver, basisPoints)
}

// ResetTokenRoyalty drops a token's override.
func (c *Controller) ResetTokenRoyalty(caller common.Address, id uint64) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	c.royalties.ResetToken(id)
	return nil
}

// Withdraw moves amount of the collected payment to the owner.
func (c *Controller) Withdraw(caller common.Address, amount *big.Int) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rail.Withdraw(c.owner, amount)
}
