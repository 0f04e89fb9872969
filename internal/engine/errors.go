package engine

import (
	"errors"

	"github.com/tartampluch/birthday-left/internal/config"
)

// ErrBeforeBirth is returned when the reference instant precedes the birth instant.
var ErrBeforeBirth = errors.New(config.ErrBeforeBirth)

// ParseError reports an input that could not be parsed or resolved.
// Its message is the underlying cause, unchanged.
type ParseError struct {
	Field string // config.FieldName, config.FieldBirthDate, ...
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseError(field, input string, err error) *ParseError {
	return &ParseError{Field: field, Input: input, Err: err}
}
