// Package domain defines domain-level errors for the securities feature.
package domain

import "errors"

// Domain errors for security operations. These represent business rule
// failures and are mapped to HTTP statuses by the transport layer.
var (
	// ErrSecurityNotFound indicates that no security exists for the given ticker.
	ErrSecurityNotFound = errors.New("security not found")

	// ErrTickerExists indicates a create attempt for a ticker that is already registered.
	ErrTickerExists = errors.New("security with this ticker already exists")

	// ErrIsinExists indicates the ISIN code is already held by another security.
	ErrIsinExists = errors.New("security with this ISIN code already exists")

	// ErrSecurityInUse indicates a delete was rejected because daily price
	// rows still reference the security. Dependents must be removed first.
	ErrSecurityInUse = errors.New("security still has daily price records")
)
