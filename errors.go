package hooks

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrMissingArtifact indicates an expected build artifact was not found
	// on disk. Usually a sign that an earlier toolchain stage failed.
	ErrMissingArtifact = errors.New("hooks: build artifact not found")

	// ErrMissingWallet indicates submit options lacked a wallet.
	ErrMissingWallet = errors.New("hooks: submit options require a wallet")

	// ErrNoCreateCode indicates a deployment was attempted with a payload
	// that has no compiled code attached.
	ErrNoCreateCode = errors.New("hooks: payload has no CreateCode")

	// ErrUnknownTransactionType indicates a transaction type with no wire code.
	ErrUnknownTransactionType = errors.New("hooks: unknown transaction type")
)

// StageError indicates a toolchain stage failed. It carries the captured
// combined output of the external tool for diagnosis.
type StageError struct {
	Stage  Stage
	Output string
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("hooks: stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// SubmitError indicates a submission exhausted its retry budget.
// Err holds the error from the final attempt.
type SubmitError struct {
	Attempts int
	Err      error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("hooks: submission failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// EncodeError indicates a transaction field could not be wire-encoded.
type EncodeError struct {
	Field string
	Err   error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("hooks: encoding field %q: %v", e.Field, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// AddressError indicates an account address could not be decoded.
type AddressError struct {
	Address string
	Err     error
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("hooks: invalid address %q: %v", e.Address, e.Err)
}

func (e *AddressError) Unwrap() error {
	return e.Err
}
