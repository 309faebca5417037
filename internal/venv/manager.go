// manager.go implements virtual environment lifecycle operations for the
// venvup CLI. It provides creation, installation, inspection, and removal
// of a single project's venv directory.
//
// All operations shell out to external tooling (`python -m venv`,
// `python -m pip`) rather than reimplementing any of it. The venv's own
// interpreter runs pip, which guarantees packages land inside the venv
// regardless of what the surrounding shell environment looks like — the
// process-level equivalent of `source venv/bin/activate && pip install`.
package venv

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmr-tortoise/venvup/internal/model"
	"github.com/mmr-tortoise/venvup/internal/python"
)

// Manager provides lifecycle operations for one virtual environment
// directory. It holds only paths — every status query re-reads the
// filesystem, so a Manager never goes stale.
type Manager struct {
	// Dir is the absolute path of the virtual environment directory.
	Dir string

	// BasePython is the interpreter used to create the venv. Only needed
	// for Create; inspection and install use the venv's own interpreter.
	BasePython string

	// Stdout and Stderr receive the streamed output of the external
	// tools (pip progress, venv warnings). Nil values default to the
	// process's own streams. Tests inject buffers here.
	Stdout io.Writer
	Stderr io.Writer
}

// NewManager creates a Manager for the venv at dir, created (when needed)
// with the given base interpreter.
func NewManager(dir, basePython string) *Manager {
	return &Manager{Dir: dir, BasePython: basePython}
}

// Exists reports whether the venv directory exists. Per the bootstrap
// contract this is the only check consulted before reuse — an existing
// directory is assumed to be a valid environment.
func (m *Manager) Exists() bool {
	info, err := os.Stat(m.Dir)
	return err == nil && info.IsDir()
}

// BinDir returns the venv's executable directory: bin/ on POSIX systems,
// Scripts\ on Windows. This is the directory activation prepends to PATH.
func (m *Manager) BinDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(m.Dir, "Scripts")
	}
	return filepath.Join(m.Dir, "bin")
}

// Python returns the path of the venv's own interpreter.
func (m *Manager) Python() string {
	name := "python"
	if runtime.GOOS == "windows" {
		name = "python.exe"
	}
	return filepath.Join(m.BinDir(), name)
}

// Status derives the environment's lifecycle state from the filesystem.
//
// Derivation rules, checked in order:
//   - venv directory missing → absent
//   - venv interpreter missing inside an existing directory → broken
//   - no state sidecar, or recorded manifest fingerprint differs from the
//     current requirements file → stale
//   - otherwise → ready
//
// A missing requirements file is not a status condition: the manifest is
// consumed only on install, so its absence leaves an installed venv ready.
func (m *Manager) Status(requirements string) model.EnvStatus {
	if !m.Exists() {
		return model.StatusAbsent
	}

	if _, err := os.Stat(m.Python()); err != nil {
		return model.StatusBroken
	}

	state, err := m.ReadState()
	if err != nil {
		// No record of an install. The venv may still work (created by
		// hand or by an older tool), but its provenance is unknown.
		return model.StatusStale
	}

	currentHash, err := HashFile(requirements)
	if err != nil {
		// Manifest missing or unreadable — nothing to compare against.
		return model.StatusReady
	}

	if state.RequirementsSHA256 != currentHash {
		return model.StatusStale
	}
	return model.StatusReady
}

// Create builds the virtual environment by running
// `<basePython> -m venv <dir>`.
//
// Returns a CLIError with ExitCreateFailed on any failure, including a
// venv module that ran but produced no interpreter (seen with some
// distribution-packaged pythons missing ensurepip).
func (m *Manager) Create(ctx context.Context) error {
	if m.BasePython == "" {
		return model.NewCLIError(model.ExitCreateFailed, "no base python interpreter configured")
	}

	if err := m.run(ctx, m.BasePython, "-m", "venv", m.Dir); err != nil {
		return model.WrapCLIError(model.ExitCreateFailed,
			fmt.Sprintf("failed to create virtual environment at %s", m.Dir), err)
	}

	// Verify the interpreter actually materialized. A venv directory
	// without an interpreter would make every later step fail with
	// confusing errors, so catch it here with the creation exit code.
	if _, err := os.Stat(m.Python()); err != nil {
		return model.WrapCLIError(model.ExitCreateFailed,
			fmt.Sprintf("virtual environment at %s has no interpreter after creation", m.Dir), err)
	}

	return nil
}

// Install installs dependencies from the requirements manifest into the
// venv by running `<venv python> -m pip install -r <requirements>`, then
// records the install in the state sidecar.
//
// The manifest is checked before pip runs so a missing file gets its own
// exit code (ExitManifestNotFound) instead of surfacing as a generic pip
// failure. Any pip failure maps to ExitInstallFailed.
func (m *Manager) Install(ctx context.Context, requirements string) error {
	if _, err := os.Stat(requirements); err != nil {
		return model.WrapCLIError(model.ExitManifestNotFound,
			fmt.Sprintf("requirements manifest not found: %s", requirements), err)
	}

	if err := m.run(ctx, m.Python(), "-m", "pip", "install", "-r", requirements); err != nil {
		return model.WrapCLIError(model.ExitInstallFailed,
			fmt.Sprintf("failed to install dependencies from %s", requirements), err)
	}

	// Record the install so Status can detect manifest drift later.
	// The version probe and the sidecar write are best-effort: a venv
	// that installed fine but could not be fingerprinted is merely
	// reported stale next time, never broken.
	version := ""
	if interp, err := python.Probe(ctx, m.Python()); err == nil {
		version = interp.Version
	}

	hash, err := HashFile(requirements)
	if err != nil {
		return nil
	}

	state := &State{
		PythonVersion:      version,
		RequirementsSHA256: hash,
		InstalledAt:        time.Now().UTC(),
	}
	if err := m.WriteState(state); err != nil {
		return nil
	}

	return nil
}

// Remove deletes the venv directory and everything in it.
//
// Only the clean command calls this — the bootstrap sequence itself never
// destroys an existing environment.
func (m *Manager) Remove() error {
	if err := os.RemoveAll(m.Dir); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to remove virtual environment at %s", m.Dir), err)
	}
	return nil
}

// run executes an external command, streaming its output to the manager's
// configured writers (default: the process's own streams). Streaming
// matters here: pip installs can take minutes and users need to see
// progress, not a buffered dump after the fact.
func (m *Manager) run(ctx context.Context, name string, args ...string) error {
	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = m.stdout()
	cmd.Stderr = m.stderr()

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", filepath.Base(name), strings.Join(args, " "), err)
	}
	return nil
}

func (m *Manager) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

func (m *Manager) stderr() io.Writer {
	if m.Stderr != nil {
		return m.Stderr
	}
	return os.Stderr
}
