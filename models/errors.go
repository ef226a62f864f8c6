package models

import "errors"

// Sentinel errors shared across the store, coordinator, and engine. Callers
// match them with errors.Is.
var (
	// ErrValidation marks bad caller input: empty titles, unknown enum
	// tokens, or struct validation failures.
	ErrValidation = errors.New("validation failed")

	// ErrTaskNotFound is returned when a task id is not present in the store.
	ErrTaskNotFound = errors.New("task not found")

	// ErrDuplicateTaskID is returned when creating a task whose id is
	// already present.
	ErrDuplicateTaskID = errors.New("task id already exists")

	// ErrPersistence marks a failed write to the backing document. It is
	// fatal for the operation that triggered it.
	ErrPersistence = errors.New("persistence failure")

	// ErrIncompleteReview indicates a provider returned no opinion at all,
	// which violates the provider contract.
	ErrIncompleteReview = errors.New("incomplete review: missing opinion")
)
