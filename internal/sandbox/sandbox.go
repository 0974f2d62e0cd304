// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sandbox runs destructive pre-processing against a host model
// inside a transaction that is always rolled back.
package sandbox

import (
	"errors"
	"fmt"
)

// ErrSandboxFailure matches every *Error with errors.Is.
var ErrSandboxFailure = errors.New("sandbox failure")

// Transactor is the part of the host model the sandbox drives.
type Transactor interface {
	BeginTransaction(name string) error
	Rollback() error
	Regenerate() error
}

// Stage names the sandbox step that failed.
type Stage string

const (
	StageMutate     Stage = "mutate"
	StageRegenerate Stage = "regenerate"
	StageBody       Stage = "body"
	StageRollback   Stage = "rollback"
)

// Error reports a failure inside the sandbox. The model was rolled back
// before the error was returned unless RollbackErr is set.
type Error struct {
	Name  string
	Stage Stage
	Err   error

	// RollbackErr is set when reverting the mutations also failed.
	RollbackErr error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("sandbox %q failed during %s: %v", e.Name, e.Stage, e.Err)
	if e.RollbackErr != nil {
		msg += fmt.Sprintf(" (rollback failed: %v)", e.RollbackErr)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.RollbackErr != nil {
		return []error{e.Err, e.RollbackErr}
	}
	return []error{e.Err}
}

// Is reports whether target is ErrSandboxFailure.
func (e *Error) Is(target error) bool {
	return target == ErrSandboxFailure
}

// PanicError wraps a value recovered from a panic inside the sandbox.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Run opens a transaction named name, applies mutate, regenerates the
// model, and runs body against the mutated model. The transaction is rolled
// back on every return path, including panics in mutate or body. A failure
// in any step is returned as *Error after the rollback.
func Run[T any](tx Transactor, name string, mutate func() error, body func() (T, error)) (result T, err error) {
	if err := tx.BeginTransaction(name); err != nil {
		var zero T
		return zero, fmt.Errorf("starting transaction %q: %w", name, err)
	}

	stage := StageMutate
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
		rbErr := tx.Rollback()
		if err != nil {
			var zero T
			result = zero
			err = &Error{Name: name, Stage: stage, Err: err, RollbackErr: rbErr}
			return
		}
		if rbErr != nil {
			var zero T
			result = zero
			err = &Error{Name: name, Stage: StageRollback, Err: rbErr}
		}
	}()

	if mutate != nil {
		if err := mutate(); err != nil {
			return result, err
		}
	}

	stage = StageRegenerate
	if err := tx.Regenerate(); err != nil {
		return result, err
	}

	stage = StageBody
	return body()
}
