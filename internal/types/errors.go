package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("requested item not found")

	// ErrRequestShape is returned when a required trip request field is missing.
	ErrRequestShape = errors.New("trip request is missing a required field")
	// ErrCountryResolution is returned when the country code has no known country name.
	ErrCountryResolution = errors.New("could not resolve country name from country code")
	// ErrDecodeFailure marks a generative response that is not a JSON document.
	ErrDecodeFailure = errors.New("generative response is not valid structured output")
	// ErrValidationFailure marks a decoded itinerary rejected by the validator.
	ErrValidationFailure = errors.New("generated itinerary failed validation")
	// ErrThirdPartyLookup is returned when a location lookup service itself fails.
	ErrThirdPartyLookup = errors.New("location lookup service failed")
	// ErrGenerativeService is returned when the generative service cannot be reached.
	ErrGenerativeService = errors.New("generative service request failed")
	// ErrExhaustedRetries is returned once the attempt budget is spent.
	ErrExhaustedRetries = errors.New("could not obtain a valid response from the third party")
)

// RequestShapeError names the missing or unusable request field.
type RequestShapeError struct {
	Field  string
	Reason string // empty when the field is missing
}

func (e *RequestShapeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid value for key in request: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("missing expected key in request: %s", e.Field)
}

func (e *RequestShapeError) Unwrap() error { return ErrRequestShape }

// ValidationFailure carries every error found during one attempt.
type ValidationFailure struct {
	Errors []ValidationError
}

func (e *ValidationFailure) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ve := range e.Errors {
		msgs = append(msgs, ve.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailure, strings.Join(msgs, "; "))
}

func (e *ValidationFailure) Unwrap() error { return ErrValidationFailure }
