package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrWorkflowNotFound is returned when the classifier selects a workflow name
// absent from the registry. This is a configuration error: it indicates a
// startup-time classifier/registry mismatch, not user input.
var ErrWorkflowNotFound = errors.New("workflow not registered")

// ErrEmptyMessage is returned when a request carries no usable text.
var ErrEmptyMessage = errors.New("empty message")
