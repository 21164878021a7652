package apperrors

import "errors"

// Pipeline errors
var (
	// ErrInvalidSelector is returned when the semester selector is outside 1-8
	// or otherwise malformed.
	ErrInvalidSelector = errors.New("invalid semester selector")
	// ErrPreconditionFailed is returned when one of the record collections
	// required by the solver is empty.
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrEngineTimedOut is returned when the scheduling engine exceeded its
	// wall-clock bound and was killed.
	ErrEngineTimedOut = errors.New("scheduling engine timed out")
	// ErrNoFeasibleSolution is returned when the engine completed but produced
	// an empty or absent schedule.
	ErrNoFeasibleSolution = errors.New("no feasible solution")
	// ErrEngineContractViolation is returned when the engine exited zero
	// without producing a schedule file.
	ErrEngineContractViolation = errors.New("engine did not produce a schedule file")
	// ErrRenderingFailed is returned when the report renderer failed or did
	// not produce an artifact.
	ErrRenderingFailed = errors.New("rendering failed")
)

// Authentication errors
var (
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")
)

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
)

// CustomError carries a caller-facing message and optional diagnostic detail
// on top of a sentinel error.
type CustomError struct {
	Err     error
	Message string
	Details string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError wrapping a sentinel error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails attaches diagnostic text (engine or renderer output) to the error
func (e *CustomError) WithDetails(details string) *CustomError {
	e.Details = details
	return e
}

// NewPreconditionError creates a precondition failure with a human-readable reason
func NewPreconditionError(message string) error {
	return &CustomError{
		Err:     ErrPreconditionFailed,
		Message: message,
	}
}

// NewInvalidSelectorError creates an invalid selector error with a message
func NewInvalidSelectorError(message string) error {
	return &CustomError{
		Err:     ErrInvalidSelector,
		Message: message,
	}
}
