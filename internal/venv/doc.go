// Package venv manages Python virtual environment lifecycle for the
// venvup CLI.
//
// This package handles:
//   - Existence and status derivation (absent / ready / stale / broken)
//     from on-disk artifacts only — there is no registry or daemon
//   - Environment creation via `python -m venv`
//   - Dependency installation via the venv's own pip
//   - Activation environment computation (VIRTUAL_ENV, PATH prefix,
//     PYTHONHOME removal) without sourcing any shell script
//   - A small YAML state sidecar written after each install, recording
//     the interpreter version and the manifest fingerprint
//
// The sole state check the bootstrapper consults before reusing an
// environment is directory existence: a present venv is assumed valid and
// never recreated implicitly. Staleness and breakage are reported, and
// acted on only when explicitly requested (--sync, --recreate, clean).
package venv
