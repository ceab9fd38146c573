package payload

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode indicates a mode slug outside the catalog.
var ErrUnknownMode = errors.New("unknown mode")

// ErrNotFound indicates no payload has been produced for a mode yet.
var ErrNotFound = errors.New("payload not found")

// ErrInvalid indicates a payload that violates the input contract.
var ErrInvalid = errors.New("invalid payload")

// ValidationError lists the contract violations of one payload.
type ValidationError struct {
	Mode   string
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("payload %q: %s", e.Mode, strings.Join(e.Issues, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}
