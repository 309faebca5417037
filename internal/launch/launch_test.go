package launch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/venvup/internal/model"
)

// writeStubInterpreter creates a shell script standing in for the venv
// interpreter. The stub echoes its arguments and selected environment
// variables, and exits with the code carried in STUB_EXIT_CODE, letting
// tests observe the full invocation contract from the outside.
func writeStubInterpreter(t *testing.T) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("stub interpreter scripts are POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "python")
	script := `#!/bin/sh
echo "argv: $@"
echo "cwd: $(pwd)"
echo "venv: $VIRTUAL_ENV"
exit ${STUB_EXIT_CODE:-0}
`
	err := os.WriteFile(path, []byte(script), 0755)
	require.NoError(t, err, "failed to write stub interpreter")
	return path
}

// writeEntrypoint creates an empty entrypoint file (only its existence
// matters to the stub interpreter) and returns its path.
func writeEntrypoint(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "main.py")
	err := os.WriteFile(path, []byte("print('ok')\n"), 0644)
	require.NoError(t, err)
	return path
}

// TestRun verifies the happy path: the entrypoint and its arguments reach
// the interpreter, the working directory and environment are applied, and
// a clean exit yields code 0.
func TestRun(t *testing.T) {
	python := writeStubInterpreter(t)
	projectDir := t.TempDir()
	entrypoint := writeEntrypoint(t, projectDir)

	var out bytes.Buffer
	code, err := Run(context.Background(), python, entrypoint, []string{"--headless", "run"}, Options{
		Dir:    projectDir,
		Env:    []string{"PATH=/usr/bin", "VIRTUAL_ENV=/proj/venv"},
		Stdout: &out,
		Stderr: &out,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	assert.Contains(t, out.String(), "argv: "+entrypoint+" --headless run")
	assert.Contains(t, out.String(), "venv: /proj/venv")
}

// TestRun_ExitCodePassthrough verifies that a non-zero child exit is
// reported as a code, not as an error.
func TestRun_ExitCodePassthrough(t *testing.T) {
	python := writeStubInterpreter(t)
	projectDir := t.TempDir()
	entrypoint := writeEntrypoint(t, projectDir)

	var out bytes.Buffer
	code, err := Run(context.Background(), python, entrypoint, nil, Options{
		Dir:    projectDir,
		Env:    []string{"PATH=/usr/bin", "STUB_EXIT_CODE=7"},
		Stdout: &out,
		Stderr: &out,
	})
	require.NoError(t, err, "a failing entrypoint is the application's business, not a launch error")
	assert.Equal(t, 7, code)
}

// TestRun_MissingEntrypoint verifies the precise exit code when the
// entrypoint file does not exist. The interpreter must not be invoked.
func TestRun_MissingEntrypoint(t *testing.T) {
	python := writeStubInterpreter(t)
	projectDir := t.TempDir()

	var out bytes.Buffer
	_, err := Run(context.Background(), python, filepath.Join(projectDir, "main.py"), nil, Options{
		Dir:    projectDir,
		Stdout: &out,
		Stderr: &out,
	})
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitEntrypointNotFound, cliErr.Code)
	assert.Empty(t, out.String(), "interpreter must not run without an entrypoint")
}

// TestRun_MissingInterpreter verifies the error when the interpreter
// itself cannot be started.
func TestRun_MissingInterpreter(t *testing.T) {
	projectDir := t.TempDir()
	entrypoint := writeEntrypoint(t, projectDir)

	_, err := Run(context.Background(), filepath.Join(t.TempDir(), "no-python"), entrypoint, nil, Options{
		Dir:    projectDir,
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	})
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)
}

// TestRun_WorkingDirectory verifies the child runs from the configured
// project root rather than the test's working directory.
func TestRun_WorkingDirectory(t *testing.T) {
	python := writeStubInterpreter(t)
	projectDir := t.TempDir()
	entrypoint := writeEntrypoint(t, projectDir)

	var out bytes.Buffer
	_, err := Run(context.Background(), python, entrypoint, nil, Options{
		Dir:    projectDir,
		Stdout: &out,
		Stderr: &out,
	})
	require.NoError(t, err)

	// macOS temp dirs sit behind a /private symlink; resolve both sides
	// before comparing.
	resolved, err := filepath.EvalSymlinks(projectDir)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "cwd: "+resolved)
}
