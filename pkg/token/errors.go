package token

import "errors"

// Fungible-token ledger errors.
var (
	ErrUnauthorized          = errors.New("caller is not the owner")
	ErrPaused                = errors.New("token is paused")
	ErrCapExceeded           = errors.New("cap exceeded")
	ErrBadAmount             = errors.New("negative amount")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
)
