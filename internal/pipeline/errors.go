package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWorkerCount is returned when fewer than one worker is requested.
	ErrInvalidWorkerCount = errors.New("worker count must be at least 1")
	// ErrInvalidBlockSize is returned when a stream to decrypt is empty or not block-aligned.
	ErrInvalidBlockSize = errors.New("ciphertext is not a positive multiple of block size")
	// ErrTransformFailure is returned when the block primitive fails. It is fatal for the run.
	ErrTransformFailure = errors.New("transform failure")
	// ErrAlreadyRun is returned when an Orchestrator is asked to run a second request.
	ErrAlreadyRun = errors.New("orchestrator already used")
)

// TransformError records which block the primitive failed on.
type TransformError struct {
	Worker int
	Block  int
	Err    error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("%v: worker %d, block %d: %v", ErrTransformFailure, e.Worker, e.Block, e.Err)
}

// Unwrap exposes the primitive's error.
func (e *TransformError) Unwrap() error { return e.Err }

// Is reports ErrTransformFailure as matching, in addition to the wrapped error chain.
func (e *TransformError) Is(target error) bool { return target == ErrTransformFailure }
