package errs

import "sync"

// Error categories. Every error leaving the usecase layer carries exactly one
// of these so that callers can branch on the category while still rendering
// the specific reason from Error().
var (
	ErrResourceNotFound      = New("resource not found")
	ErrBusinessRuleViolation = New("business rule violation")
	ErrUnauthorized          = New("unauthorized")
	ErrValidation            = New("validation error")
	ErrServiceUnavailable    = New("service unavailable")
)

var categories = []error{
	ErrResourceNotFound,
	ErrBusinessRuleViolation,
	ErrUnauthorized,
	ErrValidation,
	ErrServiceUnavailable,
}

var (
	reasonsMu sync.RWMutex
	reasons   = map[error]error{}
)

// Define returns a reason sentinel that belongs to category. Reasons stay
// unmarked so that two reasons of one category never match each other.
func Define(category error, msg string) error {
	reason := New(msg)
	reasonsMu.Lock()
	reasons[reason] = category
	reasonsMu.Unlock()
	return reason
}

func NotFound(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrResourceNotFound)
}

func BusinessRule(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrBusinessRuleViolation)
}

func Unauthorized(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrUnauthorized)
}

func Validation(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrValidation)
}

func Unavailable(err error, msg string) error {
	return Mark(Wrap(err, msg), ErrServiceUnavailable)
}

// Category returns the category carried by err, either as a mark or through
// a defined reason in its chain, or nil.
func Category(err error) error {
	if err == nil {
		return nil
	}
	for _, c := range categories {
		if isExact(err, c) {
			return c
		}
	}
	reasonsMu.RLock()
	defer reasonsMu.RUnlock()
	for reason, c := range reasons {
		if isExact(err, reason) {
			return c
		}
	}
	return nil
}

func isCategory(err error) bool {
	for _, c := range categories {
		if err == c {
			return true
		}
	}
	return false
}

// Reason builds an error with a specific message that matches both the
// reason sentinel and its category.
func Reason(reason error, format string, args ...any) error {
	err := Mark(Newf(format, args...), reason)
	if c := Category(reason); c != nil {
		err = Mark(err, c)
	}
	return err
}
