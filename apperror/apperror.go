// Package apperror defines the error kinds the service distinguishes.
// Handlers match them with errors.Is / errors.As to pick HTTP statuses.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAuthentication    = errors.New("authentication required")
	ErrAuthorization     = errors.New("authorization denied")
	ErrProfileIncomplete = errors.New("profile incomplete")
	ErrMalformedInput    = errors.New("malformed input")
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateID       = errors.New("duplicate identifier")
	ErrOrgAlreadySet     = errors.New("organization name already set")
)

// RowError is a validation failure for one CSV row. Row is the 1-based line
// number in the original input, counting the header as row 1.
type RowError struct {
	Row     int
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
}

// ValidationError aggregates every row error from one CSV submission so a
// bulk submitter sees all problems in a single pass.
type ValidationError struct {
	Rows []RowError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("CSV parsing errors:\n%s", strings.Join(e.Messages(), "\n"))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Messages returns one formatted message per failed row, in input order.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Rows))
	for _, r := range e.Rows {
		msgs = append(msgs, r.Error())
	}
	return msgs
}
