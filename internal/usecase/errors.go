package usecase

// ValidationError is returned by Create/Update when a required field is
// missing or blank. Field names the offending field; the operation has no
// side effects when this is returned.
type ValidationError struct {
	Field   string
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, message: message}
}
