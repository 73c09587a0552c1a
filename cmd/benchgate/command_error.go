package main

import (
	"errors"
	"fmt"
)

// Exit codes for the benchgate binary.
const (
	// ExitOK means no missing benchmarks and no regressions.
	ExitOK = 0

	// ExitFailure means the gate failed: missing benchmarks, regressions,
	// or any runtime error (unreadable input, malformed JSON, bad threshold).
	ExitFailure = 1

	// ExitUsage means the positional arguments were wrong.
	ExitUsage = 2
)

// ErrComparisonFailed marks a comparison that completed with a FAIL verdict.
// The report has already been printed by the time this error surfaces, so
// main exits without printing anything further.
var ErrComparisonFailed = errors.New("comparison failed")

// CommandError carries an exit code through the error chain.
//
// # Description
//
// Ties a failed operation to the process exit code main should use.
// Implements the error interface and supports unwrapping, so callers can
// test the underlying cause with errors.Is and errors.As.
//
// # Example
//
//	err := NewCommandError("compare", ExitFailure, loadErr)
//	fmt.Println(err.Error()) // "compare: baseline.json: missing 'benchmarks' key"
//
//	var cmdErr *CommandError
//	if errors.As(err, &cmdErr) {
//	    os.Exit(cmdErr.ExitCode)
//	}
type CommandError struct {
	// Op is the operation that failed (e.g. "compare", "inspect").
	Op string

	// ExitCode is the process exit code main should return.
	ExitCode int

	// Wrapped is the underlying error.
	Wrapped error
}

// Error returns a formatted error message.
func (e *CommandError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Wrapped)
	}
	return e.Op
}

// Unwrap returns the underlying error.
//
// # Description
//
// Enables errors.Is() and errors.As() to work through the error chain.
func (e *CommandError) Unwrap() error {
	return e.Wrapped
}

// NewCommandError creates a CommandError.
//
// # Inputs
//
//   - op: The operation that failed (e.g. "compare")
//   - exitCode: Process exit code for main
//   - wrapped: Underlying error (may be nil)
//
// # Outputs
//
//   - *CommandError: New error carrying the exit code
func NewCommandError(op string, exitCode int, wrapped error) *CommandError {
	return &CommandError{
		Op:       op,
		ExitCode: exitCode,
		Wrapped:  wrapped,
	}
}

// ExitCodeFor resolves the process exit code for an error.
//
// # Description
//
// Walks the error chain looking for a CommandError. Any error without one
// still fails the gate, so the fallback is ExitFailure rather than a
// panic or a silent zero.
//
// # Inputs
//
//   - err: Error returned by command execution (may be nil)
//
// # Outputs
//
//   - int: ExitOK for nil, the carried code for a CommandError,
//     ExitFailure otherwise
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return ExitFailure
}
