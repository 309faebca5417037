// project.go implements project root resolution and settings layering.
//
// Resolution is the first step of every command: it pins the project root
// to an absolute directory and anchors every relative path setting to it.
// After Resolve returns, nothing in the codebase depends on the process's
// working directory.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmr-tortoise/venvup/internal/model"
)

// Built-in defaults for the standard project layout. These mirror the
// conventional single-application Python repo: a venv/ directory next to
// requirements.txt and main.py.
const (
	DefaultVenvDir      = "venv"
	DefaultRequirements = "requirements.txt"
	DefaultEntrypoint   = "main.py"
)

// Project holds the fully resolved settings for one bootstrap run.
// All path fields are absolute.
type Project struct {
	// Root is the absolute project root directory. The entrypoint runs
	// with this as its working directory.
	Root string

	// Python is the interpreter used to create the venv. May be empty,
	// in which case python3/python are searched on PATH at creation time.
	Python string

	// VenvDir is the absolute path of the virtual environment directory.
	VenvDir string

	// Requirements is the absolute path of the dependency manifest.
	Requirements string

	// Entrypoint is the absolute path of the application's main script.
	Entrypoint string

	// Args are default entrypoint arguments from the manifest.
	Args []string

	// Env are extra environment variables for the entrypoint process.
	Env map[string]string

	// ConfigPath is the manifest file that was loaded, or empty if the
	// project has none.
	ConfigPath string
}

// Overrides carries command-line flag values into Resolve. Empty fields
// mean "not set on the command line" and fall through to the manifest,
// then to the defaults.
type Overrides struct {
	Python       string
	VenvDir      string
	Requirements string
	Entrypoint   string
}

// Resolve locates the project root and builds a Project with all settings
// layered (flags > manifest > defaults) and all paths anchored to the root.
//
// dir is the root candidate: the --project flag value, or the caller's
// working directory when the flag is unset. Resolve makes it absolute and
// verifies it is an existing directory — every later step depends on that.
func Resolve(dir string, overrides Overrides) (*Project, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to resolve project root", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("project directory not found: %s", root), err)
	}
	if !info.IsDir() {
		return nil, model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("project path is not a directory: %s", root))
	}

	// Load the optional manifest. A missing manifest is the common case
	// and not an error; a present-but-unparseable one is fatal, since
	// silently ignoring it would bootstrap the wrong environment.
	cfg := &Config{}
	configPath := FindConfig(root)
	if configPath != "" {
		cfg, err = LoadConfig(configPath)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError, "invalid project manifest", err)
		}
	}

	p := &Project{
		Root:         root,
		Python:       firstNonEmpty(overrides.Python, cfg.Python),
		VenvDir:      anchor(root, firstNonEmpty(overrides.VenvDir, cfg.Venv, DefaultVenvDir)),
		Requirements: anchor(root, firstNonEmpty(overrides.Requirements, cfg.Requirements, DefaultRequirements)),
		Entrypoint:   anchor(root, firstNonEmpty(overrides.Entrypoint, cfg.Entrypoint, DefaultEntrypoint)),
		Args:         cfg.Args,
		Env:          cfg.Env,
		ConfigPath:   configPath,
	}

	return p, nil
}

// anchor joins a possibly relative path to the project root.
// Absolute paths pass through unchanged, so a manifest can point at a
// shared venv or manifest outside the project tree.
func anchor(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

// firstNonEmpty returns the first non-empty string, implementing the
// flags > manifest > defaults precedence chain.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
