// Package revocation blacklists support tokens before their natural expiry.
// Entries live exactly as long as the token would have: once the token is
// dead anyway there is nothing left to revoke.
package revocation

import (
	"context"
	"time"

	"citizengw/pkg/domain"
)

// Store is the token revocation list shared by all gateway instances.
//
// Implementations must fail closed: any infrastructure error on the check
// path propagates to the caller and is never treated as "not revoked".
type Store interface {
	// Revoke inserts the token with a TTL equal to its remaining validity.
	// The authorized fiscal code is stored as the value for observability.
	// Revoking an already-revoked token is a no-op, not an error.
	Revoke(ctx context.Context, token domain.SupportToken, fiscalCode domain.FiscalCode, ttl time.Duration) error

	// IsRevoked reports whether the token is present in the list.
	IsRevoked(ctx context.Context, token domain.SupportToken) (bool, error)
}
