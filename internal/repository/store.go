package repository

import (
	"fmt"

	"github.com/aviora/airline-api/internal/apperrors"
)

// storeError marks a failed store round trip so callers can distinguish an
// unreachable backend from a domain outcome.
func storeError(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
}
