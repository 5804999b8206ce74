// Package phase resolves the active sale tier and stage from wall-clock time.
package phase

import (
	"fmt"
	"math/big"
	"sync"
	"time"
)

// Tier identifies one rung of the presale ladder, in opening order.
type Tier int

const (
	TierEarlybird Tier = iota
	TierPrivate
	TierCommunity

	tierCount = 3
)

// String returns the tier's display name.
func (t Tier) String() string {
	switch t {
	case TierEarlybird:
		return "earlybird"
	case TierPrivate:
		return "private"
	case TierCommunity:
		return "community"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Stage is one sub-window of a tier: it opens at Start and raises the
// cumulative supply cap to Cap. Stage 0 is the fast-pass stage and uses the
// fast-pass allowlist; later stages share the general presale allowlist.
type Stage struct {
	Start time.Time
	Cap   uint64
}

// Window is a tier's full schedule. The stage count is not fixed: a simple
// deployment may configure a single stage, the richest observed shape uses
// three. Price applies to every stage of the tier.
type Window struct {
	Stages []Stage
	Price  *big.Int
}

func (w Window) clone() Window {
	c := Window{Stages: make([]Stage, len(w.Stages))}
	copy(c.Stages, w.Stages)
	if w.Price != nil {
		c.Price = new(big.Int).Set(w.Price)
	}
	return c
}

// DevWindow is the developer mint phase, resolved independently of the
// tier ladder.
type DevWindow struct {
	Start time.Time
	Cap   uint64
	Price *big.Int
}

// Active describes the resolved phase a mint call runs under.
type Active struct {
	Tier     Tier
	Stage    int
	Cap      uint64
	Price    *big.Int
	FastPass bool
}

// Schedule holds the configured sale windows. Setters validate ordering at
// configuration time so Resolve never has to.
type Schedule struct {
	tiers [tierCount]Window
	dev   DevWindow

	mu sync.RWMutex
}

// NewSchedule returns an empty schedule; nothing is active until windows
// are configured.
func NewSchedule() *Schedule {
	return &Schedule{}
}

// SetWindow stores a tier's window after validating its internal ordering
// and its ordering against neighboring tiers. On failure the previously
// stored window is left untouched.
func (s *Schedule) SetWindow(tier Tier, w Window) error {
	if tier < 0 || tier >= tierCount {
		return fmt.Errorf("%w: unknown tier %d", ErrBadQuantity, tier)
	}
	if err := validateWindow(w); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Order against the nearest configured tier on each side; in-between
	// tiers may still be unset.
	for prev := tier - 1; prev >= 0; prev-- {
		if len(s.tiers[prev].Stages) == 0 {
			continue
		}
		last := s.tiers[prev].Stages[len(s.tiers[prev].Stages)-1]
		if w.Stages[0].Start.Before(last.Start) {
			return ErrOutOfOrderTier
		}
		break
	}
	for next := tier + 1; next < tierCount; next++ {
		if len(s.tiers[next].Stages) == 0 {
			continue
		}
		if s.tiers[next].Stages[0].Start.Before(w.Stages[len(w.Stages)-1].Start) {
			return ErrOutOfOrderTier
		}
		break
	}

	s.tiers[tier] = w.clone()
	return nil
}

func validateWindow(w Window) error {
	if len(w.Stages) == 0 {
		return fmt.Errorf("%w: no stages", ErrBadQuantity)
	}
	if w.Price == nil || w.Price.Sign() < 0 {
		return fmt.Errorf("%w: bad price", ErrBadQuantity)
	}
	for i, st := range w.Stages {
		if st.Start.IsZero() {
			return ErrBadStartTime
		}
		if st.Cap == 0 {
			return fmt.Errorf("%w: zero cap", ErrBadQuantity)
		}
		if i == 0 {
			continue
		}
		if !w.Stages[i-1].Start.Before(st.Start) {
			return ErrBadStartTime
		}
		if st.Cap < w.Stages[i-1].Cap {
			return fmt.Errorf("%w: cap decreases at stage %d", ErrBadQuantity, i)
		}
	}
	return nil
}

// SetDevWindow stores the developer mint window.
func (s *Schedule) SetDevWindow(w DevWindow) error {
	if w.Start.IsZero() {
		return ErrBadStartTime
	}
	if w.Cap == 0 || w.Price == nil || w.Price.Sign() < 0 {
		return ErrBadQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dev = DevWindow{Start: w.Start, Cap: w.Cap, Price: new(big.Int).Set(w.Price)}
	return nil
}

// Window returns the stored window for a tier.
func (s *Schedule) Window(tier Tier) Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tiers[tier].clone()
}

// DevWindow returns the stored developer window.
func (s *Schedule) DevWindow() DevWindow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.dev
	if d.Price != nil {
		d.Price = new(big.Int).Set(d.Price)
	}
	return d
}

// Resolve returns the presale phase active at now. A later tier whose first
// stage has opened overrides every earlier tier, even if the earlier tier's
// cap is not exhausted. The second return is false when no tier has started.
func (s *Schedule) Resolve(now time.Time) (Active, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for tier := Tier(tierCount - 1); tier >= 0; tier-- {
		w := s.tiers[tier]
		if len(w.Stages) == 0 || now.Before(w.Stages[0].Start) {
			continue
		}
		stage := 0
		for i := len(w.Stages) - 1; i > 0; i-- {
			if !now.Before(w.Stages[i].Start) {
				stage = i
				break
			}
		}
		return Active{
			Tier:  tier,
			Stage: stage,
			Cap:   w.Stages[stage].Cap,
			Price: new(big.Int).Set(w.Price),
			// a single-stage tier uses the shared presale list only
			FastPass: stage == 0 && len(w.Stages) > 1,
		}, true
	}
	return Active{}, false
}

// ResolveDev reports whether the developer mint window is open at now and,
// if so, its cap and price.
func (s *Schedule) ResolveDev(now time.Time) (DevWindow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.dev.Start.IsZero() || now.Before(s.dev.Start) {
		return DevWindow{}, false
	}
	d := s.dev
	d.Price = new(big.Int).Set(d.Price)
	return d, true
}
