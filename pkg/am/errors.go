// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package am

import "fmt"

// ApplyFailure is implemented by errors from Repository.Apply that
// originate in git apply itself (a patch that doesn't apply), as opposed
// to an I/O or process-spawn failure. The run loop uses it to decide
// whether the failure is "expected" (stop cleanly, preserve the session
// for resume) or a hard abort.
type ApplyFailure interface {
	error
	ApplyStderr() string
}

// ExitCode is the process exit status zeta-am's CLI layer should return
// for a given terminal error, mirroring git am's exit code conventions.
type ExitCode int

const (
	ExitOK ExitCode = 0
	// ExitFatal is the exit status for every terminal error: a bad mail
	// format, an unsupported --patch-format, an empty patch, or a patch
	// that failed to apply. git am itself does not distinguish a usage
	// failure from an apply failure in its exit status, so neither do we.
	ExitFatal ExitCode = 128
	// ExitApplyFailed is an alias of ExitFatal kept distinct at the call
	// site so it's clear which failure produced the exit.
	ExitApplyFailed = ExitFatal
)

// ErrExitCode pairs an error with the process exit code it should produce,
// so cmd/zeta-am/main.go never has to re-derive it from the error's shape.
type ErrExitCode struct {
	Err  error
	Code ExitCode
}

func (e *ErrExitCode) Error() string {
	return e.Err.Error()
}

func (e *ErrExitCode) Unwrap() error {
	return e.Err
}

func newExitError(code ExitCode, format string, a ...any) error {
	return &ErrExitCode{Err: fmt.Errorf(format, a...), Code: code}
}
