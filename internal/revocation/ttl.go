package revocation

import (
	"fmt"
	"time"

	"citizengw/pkg/platform/sentinel"
)

// Clock abstracts time for testability.
type Clock func() time.Time

func validateTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive: %w", sentinel.ErrInvalidState)
	}
	return nil
}
