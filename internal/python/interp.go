// interp.go implements Python interpreter discovery and version probing.
package python

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/mmr-tortoise/venvup/internal/model"
)

// candidates are the interpreter command names searched on PATH when no
// interpreter is configured explicitly, in priority order. python3 comes
// first because on many systems plain `python` is either absent or an
// alias for a system interpreter that should not own project venvs.
var candidates = []string{"python3", "python"}

// Interpreter describes a located Python interpreter.
type Interpreter struct {
	// Path is the absolute path of the interpreter binary.
	Path string

	// Version is the version reported by `--version`, e.g. "3.12.1".
	Version string
}

// Find locates a Python interpreter binary.
//
// If explicit is non-empty (from --python or the project manifest), it is
// resolved via exec.LookPath, which handles both bare command names and
// paths. Otherwise the candidates list is searched on PATH.
//
// Returns a CLIError with ExitPythonNotFound when nothing usable exists —
// there is no point continuing a first run without an interpreter.
func Find(explicit string) (string, error) {
	if explicit != "" {
		path, err := exec.LookPath(explicit)
		if err != nil {
			return "", model.WrapCLIError(model.ExitPythonNotFound,
				fmt.Sprintf("configured python interpreter %q not found", explicit), err)
		}
		return path, nil
	}

	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", model.NewCLIError(model.ExitPythonNotFound,
		fmt.Sprintf("no python interpreter found on PATH (tried: %s)", strings.Join(candidates, ", ")))
}

// versionRegex matches the interpreter's banner, e.g. "Python 3.12.1".
// The patch component is optional because some distributions report only
// major.minor.
var versionRegex = regexp.MustCompile(`Python (\d+\.\d+(?:\.\d+)?)`)

// Probe runs `<path> --version` and returns the interpreter with its
// parsed version. A failing probe means the binary exists but is not a
// working Python, which is reported with the same exit code as a missing
// interpreter — from the user's perspective both mean "no usable python".
func Probe(ctx context.Context, path string) (Interpreter, error) {
	// Python 2 printed the version banner to stderr; Python 3 prints it
	// to stdout. CombinedOutput covers both.
	cmd := exec.CommandContext(ctx, path, "--version")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Interpreter{}, model.WrapCLIError(model.ExitPythonNotFound,
			fmt.Sprintf("failed to run %s --version", path), err)
	}

	version, err := parseVersion(string(output))
	if err != nil {
		return Interpreter{}, model.WrapCLIError(model.ExitPythonNotFound,
			fmt.Sprintf("%s does not look like a python interpreter", path), err)
	}

	return Interpreter{Path: path, Version: version}, nil
}

// parseVersion extracts the numeric version from a `python --version`
// banner. Returns an error if the output does not contain one.
func parseVersion(output string) (string, error) {
	matches := versionRegex.FindStringSubmatch(output)
	if matches == nil {
		return "", fmt.Errorf("unrecognized version output: %q", strings.TrimSpace(output))
	}
	return matches[1], nil
}
