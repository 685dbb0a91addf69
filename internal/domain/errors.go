package domain

import "errors"

var (
	// ErrInvalidInput marks a malformed or empty request; it never reaches the pipeline.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTransientGeneration marks a text generation failure worth retrying
	// (rate limits, server errors, timeouts).
	ErrTransientGeneration = errors.New("transient generation failure")

	// ErrPersistence marks a store failure. Callers degrade instead of failing.
	ErrPersistence = errors.New("persistence failure")

	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
	ErrUnknownPersona  = errors.New("unknown persona")
)
