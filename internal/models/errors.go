package models

import (
	"errors"
	"fmt"
)

var (
	ErrConflictingBeneficiary = errors.New("assignment names both a personnel and a societaire account")
	ErrIllegalStateTransition = errors.New("illegal state transition")
	ErrUnknownEnumValue       = errors.New("unknown enumeration value")
	ErrInvalidTemporalRange   = errors.New("end date precedes start date")
	ErrInvalidAmount          = errors.New("amount must not be negative")
	ErrInvalidThreshold       = errors.New("threshold must not be negative")
)

func transitionError(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrIllegalStateTransition, from, to)
}

func unknownEnumError(kind, code string) error {
	return fmt.Errorf("%w: %s %q", ErrUnknownEnumValue, kind, code)
}
