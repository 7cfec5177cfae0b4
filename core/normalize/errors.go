package normalize

import (
	"errors"
	"fmt"
)

// ErrNotSerializable indicates a value could not be reduced to a
// serializable form by any capability in the resolution chain.
// Use errors.Is against this sentinel; the concrete error is always
// a *NormalizationError carrying the runtime type name.
var ErrNotSerializable = errors.New("value is not reducible to a serializable form")

// NormalizationError reports the runtime type that failed normalization.
type NormalizationError struct {
	TypeName string
}

// Error implements the error interface.
func (e *NormalizationError) Error() string {
	return fmt.Sprintf("value of type %s is not reducible to a serializable form", e.TypeName)
}

// Unwrap makes the error match ErrNotSerializable via errors.Is.
func (e *NormalizationError) Unwrap() error {
	return ErrNotSerializable
}
