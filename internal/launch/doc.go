// Package launch runs the application entrypoint inside an activated
// virtual environment for the venvup CLI.
//
// The entrypoint is executed as `<venv python> <entrypoint> [args…]` with
// the project root as working directory, the activation environment, and
// the parent's standard streams attached, so the application behaves
// exactly as if started from an activated shell.
//
// SIGINT and SIGTERM received by venvup are forwarded to the child, and
// the child's exit code is returned unchanged — venvup is transparent to
// both signals and exit status once the entrypoint is running.
package launch
