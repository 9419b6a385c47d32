package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"daily-quest/internal/repository"
)

var (
	// ErrCapacityExceeded rejects a sixth daily selection.
	ErrCapacityExceeded = errors.New("daily selection limit reached")
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	// ErrStorageUnavailable wraps failures of the backing store.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// translate maps repository errors onto the service taxonomy, keeping the cause in the chain.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, repository.ErrDayFull):
		return ErrCapacityExceeded
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidArgument),
		errors.Is(err, ErrCapacityExceeded), errors.Is(err, ErrStorageUnavailable):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
}
