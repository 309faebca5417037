// state.go implements the install state sidecar and manifest
// fingerprinting.
//
// After each successful install, a small YAML file is written inside the
// venv recording the interpreter version, the sha256 of the requirements
// manifest, and the install timestamp. The sidecar lives inside the venv
// directory so that deleting the venv deletes its record with it, and so
// it never clutters the project tree.
//
// The sidecar exists purely for staleness reporting. The bootstrap
// sequence never reads it — a present venv is reused as-is.
package venv

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// StateFileName is the sidecar's filename inside the venv directory.
const StateFileName = "venvup-state.yml"

// stateHeader is prepended to the generated sidecar so anyone poking
// around the venv directory knows what the file is and who owns it.
const stateHeader = "# Generated by venvup after dependency installation. Do not edit.\n"

// State records one completed dependency installation.
type State struct {
	// PythonVersion is the venv interpreter's version at install time,
	// e.g. "3.12.1". May be empty if the probe failed.
	PythonVersion string `yaml:"python_version,omitempty"`

	// RequirementsSHA256 is the hex sha256 of the requirements manifest
	// as installed. Status compares this against the current manifest to
	// detect drift.
	RequirementsSHA256 string `yaml:"requirements_sha256"`

	// InstalledAt is the UTC timestamp of the install.
	InstalledAt time.Time `yaml:"installed_at"`
}

// statePath returns the absolute path of the sidecar file.
func (m *Manager) statePath() string {
	return filepath.Join(m.Dir, StateFileName)
}

// ReadState loads the sidecar. Returns an error if the file is missing or
// unparseable; callers treat both the same way (no usable install record).
func (m *Manager) ReadState() (*State, error) {
	data, err := os.ReadFile(m.statePath())
	if err != nil {
		return nil, fmt.Errorf("failed to read state sidecar: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state sidecar at %s: %w", m.statePath(), err)
	}
	return &state, nil
}

// WriteState serializes the sidecar into the venv directory.
func (m *Manager) WriteState(state *State) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize state sidecar: %w", err)
	}

	content := append([]byte(stateHeader), data...)
	if err := os.WriteFile(m.statePath(), content, 0644); err != nil {
		return fmt.Errorf("failed to write state sidecar: %w", err)
	}
	return nil
}

// HashFile returns the hex sha256 of a file's contents. Used to
// fingerprint the requirements manifest.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
