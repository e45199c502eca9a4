package services

import (
	"errors"
	"fmt"
)

var (
	// ErrQuotaExceeded is returned when the daily quiz limit is reached.
	ErrQuotaExceeded = errors.New("daily quiz limit reached")

	// ErrNoMatch is returned when the movie filters match nothing.
	ErrNoMatch = errors.New("no movie found with given criteria")

	// ErrSessionNotFound covers unknown session ids and double submissions.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidAnswer is returned for answers that cannot be graded, e.g. a
	// trivia option index outside 1..4.
	ErrInvalidAnswer = errors.New("invalid answer option")
)

// GenerationError wraps a transport or model failure from the generation
// backend. The pipeline never retries these.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// MalformedOutputError is raised when the model's reply does not decode into
// the expected schema. It carries the raw reply for diagnosis.
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("model replied with an unexpected format: %v, reply: %s", e.Err, e.Raw)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

// ConfigurationError marks an unknown quiz type, personality, language or
// template key. Unknown keys are rejected, never silently defaulted.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown configuration key: %s", e.Key)
}
