package tournament

import "errors"

var (
	// ErrIncomplete is returned when a request lacks a required field or
	// carries a value that cannot be stored
	ErrIncomplete = errors.New("request is incomplete or invalid")

	// ErrMissingProof is returned when a write is attempted without a proof
	ErrMissingProof = errors.New("proof required")

	// ErrWrongProof is returned when a presented proof does not verify
	ErrWrongProof = errors.New("proof does not verify")

	// ErrNoMoreRounds is returned when every round of a tournament is paired
	ErrNoMoreRounds = errors.New("every round has been paired")

	// ErrByeResult is returned when a result is registered for a bye
	ErrByeResult = errors.New("a bye has no result")
)
