// Package model defines the domain types and value objects for the
// venvup CLI.
//
// This package contains pure data structures with no external dependencies.
// The environment status enum (EnvStatus) is a transient value derived from
// on-disk artifacts at runtime — the venv directory, its interpreter, and
// the state sidecar written after an install.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
