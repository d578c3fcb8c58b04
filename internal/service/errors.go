package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidOverride = errors.New("override is not a valid pricing table")
	ErrDuplicateTier   = errors.New("partner already has a price for this service, complexity and minimum units")
	ErrQuoteNotReady   = errors.New("quote is not ready")
)

// notFound translates gorm's not-found into ErrNotFound, keeping other
// errors as they are.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}
