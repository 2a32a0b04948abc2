package utils

import (
	"reflect"

	"github.com/pkg/errors"
)

// TypeStr returns the name of T, including interface types.
func TypeStr[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// NewUnexpectedTypeError is used when there is a type mismatch.
func NewUnexpectedTypeError[ExpectedT any](actual interface{}) error {
	return errors.Errorf("expected %s but got %T", TypeStr[ExpectedT](), actual)
}

// NewUnknownModelError is used when a kernel model has not been registered.
func NewUnknownModelError(kind, model string) error {
	return errors.Errorf("no %s kernel registered for model %q", kind, model)
}
