// Package cli — create.go implements the "venvup create" command.
//
// create performs the bootstrap steps of run without launching anything:
// resolve the project, create the venv if absent, install dependencies.
// It is the command for CI images and provisioning scripts that want the
// environment ready before the application ever starts.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/venvup/internal/project"
	"github.com/mmr-tortoise/venvup/internal/venv"
)

// createFlags holds the flag values for the create command.
type createFlags struct {
	projectFlags
	recreate bool // --recreate: delete and rebuild the venv
	sync     bool // --sync: reinstall when the manifest changed
}

// NewCreateCommand creates the "create" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewCreateCommand() *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create and populate the virtual environment without launching",
		Long: `Create the project's virtual environment and install its dependencies,
without launching the entrypoint.

An existing venv is left untouched unless --recreate or --sync is given.

Examples:
  venvup create
  venvup create --project ~/src/my-app --python python3.12
  venvup create --recreate`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd.Context(), flags)
		},
	}

	bindProjectFlags(cmd, &flags.projectFlags)
	cmd.Flags().BoolVar(&flags.recreate, "recreate", false, "Delete and rebuild the venv")
	cmd.Flags().BoolVar(&flags.sync, "sync", false, "Reinstall dependencies when the manifest changed since the last install")

	return cmd
}

// runCreate is the main logic function for the create command.
func runCreate(ctx context.Context, flags *createFlags) error {
	proj, err := resolveProject(&flags.projectFlags, "")
	if err != nil {
		return err
	}
	VerboseLog("Project root: %s", proj.Root)

	m, created, err := ensureEnvironment(ctx, proj, flags.recreate, flags.sync)
	if err != nil {
		return err
	}

	printBootstrapResult(proj, m, created)
	return nil
}

// printBootstrapResult outputs the bootstrap outcome in text or JSON
// format, depending on the global --json flag. Shared by create and
// `run --no-launch`.
func printBootstrapResult(proj *project.Project, m *venv.Manager, created bool) {
	status := m.Status(proj.Requirements)
	version := ""
	if state, err := m.ReadState(); err == nil {
		version = state.PythonVersion
	}

	if IsJSONOutput() {
		result := struct {
			Project       string `json:"project"`
			Venv          string `json:"venv"`
			Status        string `json:"status"`
			Created       bool   `json:"created"`
			PythonVersion string `json:"pythonVersion,omitempty"`
		}{
			Project:       proj.Root,
			Venv:          proj.VenvDir,
			Status:        status.String(),
			Created:       created,
			PythonVersion: version,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	what := "reused"
	if created {
		what = "created"
	}
	fmt.Printf("Virtual environment %s\n", what)
	fmt.Printf("  Project:  %s\n", proj.Root)
	fmt.Printf("  Venv:     %s\n", displayPath(proj.Root, proj.VenvDir))
	fmt.Printf("  Status:   %s\n", status)
	if version != "" {
		fmt.Printf("  Python:   %s\n", version)
	}
}

// displayPath renders a path relative to the project root when it lives
// inside it, keeping output short for the common venv/ layout while still
// showing full paths for venvs placed elsewhere.
func displayPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
