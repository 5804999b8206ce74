package mint

import (
	"errors"

	"github.com/mintlab/dropforge-go/pkg/ledger"
	"github.com/mintlab/dropforge-go/pkg/payment"
	"github.com/mintlab/dropforge-go/pkg/phase"
	"github.com/mintlab/dropforge-go/pkg/quota"
	"github.com/mintlab/dropforge-go/pkg/royalty"
	"github.com/mintlab/dropforge-go/pkg/supply"
)

// Controller errors.
var (
	ErrNotStarted       = errors.New("minting is not started yet")
	ErrInvalidProof     = errors.New("invalid merkle proof")
	ErrCallerIsContract = errors.New("caller is a contract")
	ErrUnauthorized     = errors.New("caller is not the owner")
	ErrBadMintQuantity  = errors.New("mint quantity must be positive")
)

// Errors surfaced from collaborating ledgers, re-exported so callers can
// match the whole taxonomy against this package.
var (
	ErrQuotaExceeded       = quota.ErrQuotaExceeded
	ErrSupplyExceeded      = supply.ErrSupplyExceeded
	ErrIDAlreadyIssued     = ledger.ErrIDAlreadyIssued
	ErrNotFound            = ledger.ErrNotFound
	ErrInsufficientPayment = payment.ErrInsufficientPayment
	ErrTransferFailed      = payment.ErrTransferFailed
	ErrBadStartTime        = phase.ErrBadStartTime
	ErrBadQuantity         = phase.ErrBadQuantity
	ErrOutOfOrderTier      = phase.ErrOutOfOrderTier
	ErrBadRoyalty          = royalty.ErrBadRoyalty
)
