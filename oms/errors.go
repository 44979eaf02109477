package oms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wyhar1/execsim/types"
)

// ValidationError rejects a malformed order or amendment. Errors holds the
// error codes of every offending field.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, ", ")
}

func NewValidationError(codes ...string) *ValidationError {
	return &ValidationError{Errors: codes}
}

type NotFoundError struct {
	OrderID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("order %s not found", e.OrderID)
}

// InvalidStateError rejects an operation the current status does not allow.
type InvalidStateError struct {
	OrderID   string
	Operation string
	Status    types.OrderStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("can't %s order %s with status %s", e.Operation, e.OrderID, e.Status)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsInvalidState(err error) bool {
	var target *InvalidStateError
	return errors.As(err, &target)
}
