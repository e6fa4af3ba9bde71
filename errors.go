package main

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a user-facing failure.
type ErrorCode string

const (
	ErrCodeNameRequired        ErrorCode = "NAME_REQUIRED"
	ErrCodePhoneMissing        ErrorCode = "PHONE_MISSING"
	ErrCodeNoActiveRecord      ErrorCode = "NO_ACTIVE_RECORD"
	ErrCodeRendererUnavailable ErrorCode = "RENDERER_UNAVAILABLE"
	ErrCodeUnknownTier         ErrorCode = "UNKNOWN_TIER"
	ErrCodeInvalidSelection    ErrorCode = "INVALID_SELECTION"
)

// UserError is an error whose Message is shown to the user as-is.
// The operation that returned it made no state change.
type UserError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *UserError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any UserError carrying the same code, so wrapped copies with
// extra details still satisfy errors.Is against the sentinels below.
func (e *UserError) Is(target error) bool {
	t, ok := target.(*UserError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithDetails returns a copy of e with diagnostic details attached.
func (e *UserError) WithDetails(format string, args ...interface{}) *UserError {
	return &UserError{Code: e.Code, Message: e.Message, Details: fmt.Sprintf(format, args...)}
}

var (
	ErrNameRequired = &UserError{
		Code:    ErrCodeNameRequired,
		Message: "Please enter a restaurant name.",
	}
	ErrPhoneMissing = &UserError{
		Code:    ErrCodePhoneMissing,
		Message: "Restaurant contact number is not available.",
	}
	ErrNoActiveRecord = &UserError{
		Code:    ErrCodeNoActiveRecord,
		Message: "Please enter a restaurant name to generate and share the report.",
	}
	ErrRendererUnavailable = &UserError{
		Code:    ErrCodeRendererUnavailable,
		Message: "Could not generate PDF. Please check the restaurant details.",
	}
	ErrUnknownTier = &UserError{
		Code:    ErrCodeUnknownTier,
		Message: "Unknown pricing plan.",
	}
	ErrInvalidSelection = &UserError{
		Code:    ErrCodeInvalidSelection,
		Message: "That suggestion is no longer available.",
	}
)

// UserMessage extracts the user-facing message from err, falling back to a
// generic sentence for internal failures.
func UserMessage(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return "Something went wrong. Please try again."
}
