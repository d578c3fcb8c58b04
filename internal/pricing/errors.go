package pricing

import (
	"errors"
	"fmt"
)

var (
	ErrNoServicePrice    = errors.New("no partner price for service")
	ErrNoPriceTier       = errors.New("no partner price tier for unit volume")
	ErrUnknownService    = errors.New("no margin schedule for service")
	ErrNoMarginTier      = errors.New("no margin tier for unit volume")
	ErrPriceUnitMismatch = errors.New("partner price unit mismatch")
	ErrUnknownProcess    = errors.New("unknown process")
	ErrUnconfiguredCost  = errors.New("cost is not configured")
	ErrServiceNotEnabled = errors.New("service is not enabled on design")
)

// MissingPrerequisitesError is a business precondition the user can fix
// (add units, set a price, assign a partner...). Its message is safe to
// show as-is.
type MissingPrerequisitesError struct {
	Message string
}

func (e *MissingPrerequisitesError) Error() string { return e.Message }

func missingPrerequisite(format string, args ...any) error {
	return &MissingPrerequisitesError{Message: fmt.Sprintf(format, args...)}
}

// IsMissingPrerequisites reports whether err (or anything it wraps) is a
// MissingPrerequisitesError.
func IsMissingPrerequisites(err error) bool {
	var mp *MissingPrerequisitesError
	return errors.As(err, &mp)
}
