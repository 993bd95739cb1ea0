// Package oaserrors provides structured error types for oasvariant.
//
// Every rewrite pass fails loudly: a document that does not have the shape a
// pass relies on, or a rename that would produce two entries with the same
// identity, aborts the pass and is reported with enough context for a human
// to fix the source document or the rewrite table. There is no recoverable
// tier.
//
// # Error Categories
//
//   - StructuralError: an assumed document shape does not hold (missing field,
//     missing table entry, mismatched schema during a merge)
//   - CollisionError: a rename or hoist would produce two registry entries or
//     two path keys with the same identity
//   - IOError: loading or storing a document failed
//   - ConversionError: the dialect converter reported a critical issue
//
// # Usage with errors.Is
//
//	out, err := remap.Registry(doc, document.SchemasOAS3, table)
//	if errors.Is(err, oaserrors.ErrCollision) {
//	    // two names mapped to the same target
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrStructural indicates the document does not have an assumed shape.
	ErrStructural = errors.New("structural violation")

	// ErrCollision indicates two entries would share the same identity.
	ErrCollision = errors.New("collision")

	// ErrIO indicates a load or store failure at the system boundary.
	ErrIO = errors.New("i/o error")

	// ErrConversion indicates a dialect conversion failure.
	ErrConversion = errors.New("conversion error")
)

// StructuralError represents a violated assumption about the document shape.
type StructuralError struct {
	// Path is the JSON path to the offending node (e.g., "paths./projects.get")
	Path string
	// Message describes what was expected
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *StructuralError) Error() string {
	msg := "structural violation"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *StructuralError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}

// Structuralf builds a StructuralError with a formatted message.
func Structuralf(path, format string, args ...any) *StructuralError {
	return &StructuralError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// CollisionError represents two entries that would share one identity.
type CollisionError struct {
	// Namespace identifies where the collision happened
	// Common values: "paths", "schemas", "definitions", "operationId", "tags"
	Namespace string
	// Name is the identity both entries would have
	Name string
	// Sources lists the original identities that collided, when known
	Sources []string
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *CollisionError) Error() string {
	msg := "collision"
	if e.Namespace != "" {
		msg += " in " + e.Namespace
	}
	if e.Name != "" {
		msg += fmt.Sprintf(": duplicate %q", e.Name)
	}
	if len(e.Sources) > 0 {
		msg += fmt.Sprintf(" (from %q)", e.Sources)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as CollisionError has no underlying cause.
func (e *CollisionError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *CollisionError) Is(target error) bool {
	return target == ErrCollision
}

// IOError represents a load or store failure at the system boundary.
// These are never retried.
type IOError struct {
	// Op is "read" or "write"
	Op string
	// Path is the file path, or "<stdin>"/"<stdout>"
	Path string
	// Cause is the underlying error
	Cause error
}

// Error returns a human-readable error message.
func (e *IOError) Error() string {
	msg := "i/o error"
	if e.Op != "" {
		msg = e.Op + " error"
	}
	if e.Path != "" {
		msg += " on " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *IOError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// ConversionError represents a failure of the dialect converter.
type ConversionError struct {
	// SourceVersion is the source dialect (e.g., "3.0.2")
	SourceVersion string
	// TargetVersion is the target dialect (e.g., "2.0")
	TargetVersion string
	// Path is the JSON path where conversion failed
	Path string
	// Message describes the conversion failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConversionError) Error() string {
	msg := "conversion error"
	if e.SourceVersion != "" && e.TargetVersion != "" {
		msg += fmt.Sprintf(" (%s -> %s)", e.SourceVersion, e.TargetVersion)
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}
