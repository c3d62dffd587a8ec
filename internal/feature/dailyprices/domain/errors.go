// Package domain defines domain-level errors and the time-range resolver
// for the dailyprices feature.
package domain

import "errors"

// Domain errors for daily price operations.
var (
	// ErrPriceNotFound indicates no bar exists for the given (ticker, time) key.
	ErrPriceNotFound = errors.New("daily price not found")

	// ErrPriceExists indicates a bar already exists for the (ticker, time) key.
	ErrPriceExists = errors.New("daily price for this ticker and time already exists")

	// ErrInvalidTimeRange indicates an unrecognized time range token.
	ErrInvalidTimeRange = errors.New("invalid time range")
)
