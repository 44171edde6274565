package repository

import (
	"fmt"

	"auditorium-booking/internal/apperror"
)

// dbError tags a driver error as a persistence failure while keeping it unwrappable.
func dbError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, apperror.ErrPersistence, err)
}
