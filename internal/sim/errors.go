package sim

import (
	"errors"

	"github.com/iliyamo/vegas-air-market/internal/repository"
)

// isNotFound reports whether a store error is a not-found condition.
// The simulation treats those as "nothing to do", never as failures.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrFlightNotFound) ||
		errors.Is(err, repository.ErrSeatNotFound)
}
