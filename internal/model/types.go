// Package model defines the domain types for the venvup CLI.
//
// All state is derived at runtime from the filesystem: the venv directory's
// existence, the presence of its interpreter, and the state sidecar written
// after a successful install. There is no database and no daemon — these
// types are transient representations reconstructed on every invocation.
package model

import (
	"fmt"
	"strings"
)

// EnvStatus represents the lifecycle state of a project's virtual
// environment. The state transitions are:
//
//	absent → ready (first run: create + install)
//	ready → stale (requirements manifest edited after install)
//	stale → ready (run --sync, or recreate)
//	ready/stale → broken (venv directory damaged by hand)
//	any → absent (clean)
type EnvStatus string

const (
	// StatusAbsent indicates the venv directory does not exist.
	// The next run will create and populate it.
	StatusAbsent EnvStatus = "absent"

	// StatusReady indicates the venv directory exists, contains an
	// interpreter, and its recorded manifest fingerprint matches the
	// current requirements file.
	StatusReady EnvStatus = "ready"

	// StatusStale indicates the venv exists but the requirements manifest
	// has changed since the last install (or no install was ever recorded).
	// A stale venv is still used as-is by `run`; only --sync acts on it.
	StatusStale EnvStatus = "stale"

	// StatusBroken indicates the venv directory exists but no interpreter
	// is present inside it. This typically happens when the directory was
	// partially deleted or copied without its binaries.
	StatusBroken EnvStatus = "broken"
)

// String returns the string representation of EnvStatus.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands and logging.
func (s EnvStatus) String() string {
	return string(s)
}

// IsValid checks whether the EnvStatus value is one of the
// predefined valid states.
func (s EnvStatus) IsValid() bool {
	switch s {
	case StatusAbsent, StatusReady, StatusStale, StatusBroken:
		return true
	default:
		return false
	}
}

// ParseEnvStatus converts a string to an EnvStatus.
// Returns an error if the string does not match any valid status.
func ParseEnvStatus(s string) (EnvStatus, error) {
	status := EnvStatus(strings.ToLower(s))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid environment status: %q (valid: absent, ready, stale, broken)", s)
	}
	return status, nil
}

// ExitCode defines the CLI exit code contract. These codes let scripts and
// CI systems distinguish which bootstrap step failed. The codes cover only
// venvup's own steps — when the application entrypoint itself exits
// non-zero, its exit code is passed through unchanged.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitPythonNotFound indicates no usable Python interpreter could be
	// located (neither the configured one nor python3/python on PATH).
	ExitPythonNotFound ExitCode = 2

	// ExitCreateFailed indicates the virtual environment could not be
	// created (e.g., `python -m venv` failed or the directory is not
	// writable).
	ExitCreateFailed ExitCode = 3

	// ExitInstallFailed indicates dependency installation into the venv
	// failed (a listed package could not be resolved or pip itself failed).
	ExitInstallFailed ExitCode = 4

	// ExitManifestNotFound indicates the requirements manifest is missing
	// when an install was required.
	ExitManifestNotFound ExitCode = 5

	// ExitEntrypointNotFound indicates the application entrypoint file
	// does not exist at its resolved path.
	ExitEntrypointNotFound ExitCode = 6

	// ExitUserCancelled indicates the user declined an interactive
	// confirmation prompt.
	ExitUserCancelled ExitCode = 7
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
//
// A CLIError with an empty Message is treated as a silent exit: the CLI
// exits with the carried code without printing anything. This is how the
// entrypoint's own exit code is propagated without venvup adding noise.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ExitWith creates a silent CLIError carrying only an exit code.
// Used to propagate the application entrypoint's exit status through the
// cobra error path without printing a redundant error message.
func ExitWith(code ExitCode) *CLIError {
	return &CLIError{Code: code}
}
