package phase

import "errors"

// Window configuration errors.
var (
	ErrBadStartTime   = errors.New("bad start time")
	ErrBadQuantity    = errors.New("bad quantity")
	ErrOutOfOrderTier = errors.New("start time should be after previous tier")
)
