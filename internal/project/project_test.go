package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolve_Defaults verifies that a project with no manifest and no
// flag overrides resolves to the conventional layout: venv/,
// requirements.txt, and main.py under the project root.
func TestResolve_Defaults(t *testing.T) {
	dir := t.TempDir()

	p, err := Resolve(dir, Overrides{})
	require.NoError(t, err)

	assert.Equal(t, dir, p.Root)
	assert.Equal(t, "", p.Python)
	assert.Equal(t, filepath.Join(dir, "venv"), p.VenvDir)
	assert.Equal(t, filepath.Join(dir, "requirements.txt"), p.Requirements)
	assert.Equal(t, filepath.Join(dir, "main.py"), p.Entrypoint)
	assert.Empty(t, p.ConfigPath)
}

// TestResolve_DirectoryIndependence verifies that relative settings are
// anchored to the project root rather than the process's working directory.
// This is the property that makes venvup safe to invoke from anywhere.
func TestResolve_DirectoryIndependence(t *testing.T) {
	projectDir := t.TempDir()
	otherDir := t.TempDir()

	// Change into an unrelated directory before resolving.
	origWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(otherDir))
	t.Cleanup(func() { _ = os.Chdir(origWD) })

	p, err := Resolve(projectDir, Overrides{Requirements: "reqs/dev.txt"})
	require.NoError(t, err)

	// Every path must live under the project root, not under otherDir.
	assert.Equal(t, filepath.Join(projectDir, "venv"), p.VenvDir)
	assert.Equal(t, filepath.Join(projectDir, "reqs", "dev.txt"), p.Requirements)
	assert.Equal(t, filepath.Join(projectDir, "main.py"), p.Entrypoint)
}

// TestResolve_ManifestOverridesDefaults verifies that manifest settings
// replace the built-in defaults and that relative manifest paths are
// anchored to the root.
func TestResolve_ManifestOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "venvup.jsonc", `{
		// non-standard layout
		"python": "python3.11",
		"venv": ".venv",
		"entrypoint": "src/app.py",
		"args": ["--verbose"]
	}`)

	p, err := Resolve(dir, Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "python3.11", p.Python)
	assert.Equal(t, filepath.Join(dir, ".venv"), p.VenvDir)
	assert.Equal(t, filepath.Join(dir, "src", "app.py"), p.Entrypoint)
	// Unset manifest fields keep their defaults.
	assert.Equal(t, filepath.Join(dir, "requirements.txt"), p.Requirements)
	assert.Equal(t, []string{"--verbose"}, p.Args)
	assert.Equal(t, filepath.Join(dir, "venvup.jsonc"), p.ConfigPath)
}

// TestResolve_FlagsOverrideManifest verifies the full precedence chain:
// command-line flags beat the manifest, which beats the defaults.
func TestResolve_FlagsOverrideManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "venvup.jsonc", `{
		"python": "python3.11",
		"venv": ".venv",
		"entrypoint": "src/app.py"
	}`)

	p, err := Resolve(dir, Overrides{
		Python:     "python3.13",
		Entrypoint: "debug.py",
	})
	require.NoError(t, err)

	// Flag wins.
	assert.Equal(t, "python3.13", p.Python)
	assert.Equal(t, filepath.Join(dir, "debug.py"), p.Entrypoint)
	// No flag: manifest wins.
	assert.Equal(t, filepath.Join(dir, ".venv"), p.VenvDir)
}

// TestResolve_AbsolutePathsPassThrough verifies that absolute settings are
// not re-anchored, so a manifest can point at a venv outside the project.
func TestResolve_AbsolutePathsPassThrough(t *testing.T) {
	dir := t.TempDir()
	sharedVenv := filepath.Join(t.TempDir(), "shared-venv")

	p, err := Resolve(dir, Overrides{VenvDir: sharedVenv})
	require.NoError(t, err)

	assert.Equal(t, sharedVenv, p.VenvDir)
}

// TestResolve_MissingDirectory verifies the error when the project root
// does not exist.
func TestResolve_MissingDirectory(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "no-such-dir"), Overrides{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "project directory not found")
}

// TestResolve_RootIsFile verifies the error when the project root path
// points at a regular file.
func TestResolve_RootIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "somefile")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := Resolve(file, Overrides{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

// TestResolve_BrokenManifestIsFatal verifies that an unparseable manifest
// aborts resolution instead of being silently skipped.
func TestResolve_BrokenManifestIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "venvup.jsonc", `{"venv": `)

	_, err := Resolve(dir, Overrides{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid project manifest")
}
