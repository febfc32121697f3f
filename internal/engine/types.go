package engine

import "errors"

var (
	// ErrInvalidOrder rejects submissions with a non-positive quantity or
	// price, or an unrecognised side. Raised strictly before any book
	// mutation.
	ErrInvalidOrder = errors.New("invalid order")
	// ErrUnknownTicker rejects operations on tickers outside the fixed
	// universe. Books are never created lazily.
	ErrUnknownTicker = errors.New("unknown ticker")
)
