// Package project handles project root resolution and the optional
// venvup.jsonc manifest for the venvup CLI.
//
// A project is a directory containing, at minimum, a Python entrypoint and
// a requirements manifest. All paths the bootstrapper touches are anchored
// to the project root at resolve time, so invoking venvup from any working
// directory operates on the same files.
//
// Settings are layered with a fixed precedence: command-line flags override
// the venvup.jsonc manifest, which overrides the built-in defaults
// (venv/, requirements.txt, main.py).
//
// JSONC (JSON with Comments) is supported via github.com/tidwall/jsonc,
// so the manifest can carry comments and trailing commas.
package project
