package util

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrAlreadyEnrolled   = errors.New("student is already enrolled in this program")
	ErrProgramNotFound   = errors.New("program not found")
	ErrProgressNotFound  = errors.New("progress not found")
	ErrEnrollNotFound    = errors.New("enrollment not found")
	ErrAssessmentMissing = errors.New("assessment not found")
	ErrProfileNotFound   = errors.New("profile not found")

	ErrEmptyMessage    = errors.New("message text and attachment are both empty")
	ErrInvalidConfig   = errors.New("assessment config is malformed")
	ErrInvalidRules    = errors.New("rules document is malformed")
	ErrInvalidStatus   = errors.New("enrollment status transition not allowed")
	ErrTransientStore  = errors.New("datastore temporarily unavailable")
	ErrSettingsUnknown = errors.New("unknown settings key")
)

// IsTransient reports whether a datastore error is worth a bounded retry:
// context deadline expiry and driver-level timeouts, not logic errors.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrTransientStore) {
		return true
	}
	type timeouter interface{ Timeout() bool }
	var t timeouter
	return errors.As(err, &t) && t.Timeout()
}

// IsNotFound collapses gorm's record-not-found with our sentinel variants.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, ErrProgramNotFound) ||
		errors.Is(err, ErrProgressNotFound) ||
		errors.Is(err, ErrEnrollNotFound) ||
		errors.Is(err, ErrAssessmentMissing) ||
		errors.Is(err, ErrProfileNotFound)
}

// IsConflict reports uniqueness violations, translated by gorm or raised
// by our own pre-checks.
func IsConflict(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrAlreadyEnrolled)
}

// IsValidation reports malformed-input errors that the caller can correct.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyMessage) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrInvalidRules) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrSettingsUnknown)
}
