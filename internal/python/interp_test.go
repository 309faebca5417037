package python

import (
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

// writeStubInterpreter creates an executable shell script that mimics
// `python --version` output. Tests drive the real discovery and probing
// code against it instead of mocking, but without requiring Python on
// CI hosts.
func writeStubInterpreter(t *testing.T, dir, name, banner string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("stub interpreter scripts are POSIX shell")
	}

	path := filepath.Join(dir, name)
	script := "#!/bin/sh\necho \"" + banner + "\"\n"
	err := os.WriteFile(path, []byte(script), 0755)
	require.NoError(t, err, "failed to write stub interpreter")
	return path
}

// TestParseVersion verifies banner parsing across the formats real
// interpreters emit.
func TestParseVersion(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected string
		hasError bool
	}{
		{"cpython", "Python 3.12.1\n", "3.12.1", false},
		{"major minor only", "Python 3.9\n", "3.9", false},
		{"trailing build info", "Python 3.11.4 (main, Jun  7 2023)\n", "3.11.4", false},
		{"not python", "GNU bash, version 5.2\n", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, err := parseVersion(tt.output)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, version)
			}
		})
	}
}

// TestFind_Explicit verifies that an explicitly configured interpreter path
// resolves without consulting the candidates list.
func TestFind_Explicit(t *testing.T) {
	stub := writeStubInterpreter(t, t.TempDir(), "custom-python", "Python 3.12.1")

	path, err := Find(stub)
	require.NoError(t, err)
	assert.Equal(t, stub, path)
}

// TestFind_ExplicitMissing verifies the exit code when the configured
// interpreter does not exist.
func TestFind_ExplicitMissing(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "no-such-python"))
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitPythonNotFound, cliErr.Code)
}

// TestFind_PathSearch verifies the python3-before-python candidate order
// using a controlled PATH containing stub binaries.
func TestFind_PathSearch(t *testing.T) {
	dir := t.TempDir()
	python3 := writeStubInterpreter(t, dir, "python3", "Python 3.12.1")
	writeStubInterpreter(t, dir, "python", "Python 2.7.18")

	t.Setenv("PATH", dir)

	path, err := Find("")
	require.NoError(t, err)
	assert.Equal(t, python3, path)
}

// TestFind_NothingOnPath verifies the exit code when PATH holds no
// interpreter at all.
func TestFind_NothingOnPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := Find("")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitPythonNotFound, cliErr.Code)
}

// TestProbe verifies that probing a working interpreter returns its
// parsed version.
func TestProbe(t *testing.T) {
	stub := writeStubInterpreter(t, t.TempDir(), "python3", "Python 3.11.9")

	interp, err := Probe(context.Background(), stub)
	require.NoError(t, err)
	assert.Equal(t, stub, interp.Path)
	assert.Equal(t, "3.11.9", interp.Version)
}

// TestProbe_NotPython verifies that a binary that runs but does not emit a
// Python banner is rejected.
func TestProbe_NotPython(t *testing.T) {
	stub := writeStubInterpreter(t, t.TempDir(), "impostor", "definitely not python")

	_, err := Probe(context.Background(), stub)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitPythonNotFound, cliErr.Code)
}
