package types

// ValidationCategory classifies a validation error.
type ValidationCategory string

const (
	CategoryMissingKey      ValidationCategory = "MissingKey"
	CategoryWrongShape      ValidationCategory = "WrongShape"
	CategoryEmptyField      ValidationCategory = "EmptyField"
	CategoryInvalidLocation ValidationCategory = "InvalidLocation"
)

// ValidationError is one problem found in a generated itinerary. The message is
// written so it can be fed back to the generative service verbatim.
type ValidationError struct {
	Message  string             `json:"message"`
	Category ValidationCategory `json:"category"`
}
