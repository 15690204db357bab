package finder

import (
	"errors"
	"fmt"

	"addressfinder-backend/internal/property"
	"addressfinder-backend/internal/scrapers"
)

// InputError means the request was rejected before anything was fetched.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Describe turns an error from Search or Details into a message fit to show a user.
func Describe(err error) string {
	var inputErr *InputError
	var transportErr *scrapers.TransportError
	var extractErr *property.ExtractionError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &inputErr):
		return "Please enter a valid postcode."
	case errors.Is(err, property.ErrNoMatchingRecord):
		return "No record matches the selected address."
	case errors.As(err, &transportErr):
		return fmt.Sprintf("Failed to retrieve data: %s", transportErr.Error())
	case errors.As(err, &extractErr):
		return fmt.Sprintf("The page did not have the expected layout: %s", extractErr.Error())
	}
	return fmt.Sprintf("Unexpected error: %s", err.Error())
}
