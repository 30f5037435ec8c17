/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownField is returned when a predicate names a field the record type does not have
	ErrUnknownField = errors.New("unknown field")

	// ErrUnsupportedLookup is returned when a lookup cannot be evaluated by the target path
	ErrUnsupportedLookup = errors.New("unsupported lookup")

	// ErrMultipleRecords is returned when a single-record lookup matches more than one record
	ErrMultipleRecords = errors.New("multiple records returned")

	// ErrNoKeyMap is returned when no key map is found for a type
	ErrNoKeyMap = errors.New("no key map found for type")
)

// NotFoundError represents an error when a record is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UnknownFieldError represents a predicate referencing a field the record type lacks
type UnknownFieldError struct {
	Type  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("field %q does not exist on type %s", e.Field, e.Type)
}

func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrUnknownField
}

// UnsupportedLookupError represents a lookup the evaluating path cannot express
type UnsupportedLookupError struct {
	Lookup string
	Path   string
}

func (e *UnsupportedLookupError) Error() string {
	return fmt.Sprintf("lookup %q is not supported by %s", e.Lookup, e.Path)
}

func (e *UnsupportedLookupError) Is(target error) bool {
	return target == ErrUnsupportedLookup
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// MultipleRecordsError represents a single-record lookup with more than one match
type MultipleRecordsError struct {
	Type  string
	Count int
}

func (e *MultipleRecordsError) Error() string {
	return fmt.Sprintf("lookup on %s matched %d records, expected one", e.Type, e.Count)
}

func (e *MultipleRecordsError) Is(target error) bool {
	return target == ErrMultipleRecords
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(recordType, key string) error {
	return &NotFoundError{Type: recordType, Key: key}
}

// NewUnknownFieldError creates a new UnknownFieldError
func NewUnknownFieldError(recordType, field string) error {
	return &UnknownFieldError{Type: recordType, Field: field}
}

// NewUnsupportedLookupError creates a new UnsupportedLookupError
func NewUnsupportedLookupError(lookup, path string) error {
	return &UnsupportedLookupError{Lookup: lookup, Path: path}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewMultipleRecordsError creates a new MultipleRecordsError
func NewMultipleRecordsError(recordType string, count int) error {
	return &MultipleRecordsError{Type: recordType, Count: count}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnknownField checks if an error is an unknown field error
func IsUnknownField(err error) bool {
	return errors.Is(err, ErrUnknownField)
}

// IsUnsupportedLookup checks if an error is an unsupported lookup error
func IsUnsupportedLookup(err error) bool {
	return errors.Is(err, ErrUnsupportedLookup)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMultipleRecords checks if an error is a multiple records error
func IsMultipleRecords(err error) bool {
	return errors.Is(err, ErrMultipleRecords)
}
