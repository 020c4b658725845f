package apperrors

import (
	"errors"
	"fmt"
	"strings"

	"estimator/internal/model"
)

var (
	// ErrNoData means the dataset had no rows left after cleaning, or yielded
	// degenerate ranges.
	ErrNoData = errors.New("no data found")
	// ErrScoringFailed masks artifact, shape and scoring problems from callers.
	ErrScoringFailed = errors.New("scoring failed")
	// ErrInvalidArgument is returned for arguments outside a function's domain.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ValidationError carries every field error found in a request.
type ValidationError struct {
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// NewValidationError returns nil when fields is empty.
func NewValidationError(fields []model.FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// AsValidation unwraps a *ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
