// Package cli — status.go implements the "venvup status" command.
//
// status reports the environment's lifecycle state (absent, ready, stale,
// broken) together with the resolved paths, without touching anything on
// disk. It is the read-only counterpart of create.
package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/venvup/internal/model"
	"github.com/mmr-tortoise/venvup/internal/venv"
)

// NewStatusCommand creates the "status" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewStatusCommand() *cobra.Command {
	flags := &projectFlags{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the virtual environment's state",
		Long: `Show the project's resolved settings and the virtual environment's state.

Statuses:
  absent   the venv directory does not exist yet
  ready    the venv exists and matches the requirements manifest
  stale    the requirements manifest changed since the last install
  broken   the venv directory exists but has no interpreter

Examples:
  venvup status
  venvup status --project ~/src/my-app --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(flags)
		},
	}

	bindProjectFlags(cmd, flags)

	return cmd
}

// statusReport is the JSON output structure for the status command.
type statusReport struct {
	Project       string     `json:"project"`
	Venv          string     `json:"venv"`
	Requirements  string     `json:"requirements"`
	Entrypoint    string     `json:"entrypoint"`
	Manifest      string     `json:"manifest,omitempty"`
	Status        string     `json:"status"`
	PythonVersion string     `json:"pythonVersion,omitempty"`
	InstalledAt   *time.Time `json:"installedAt,omitempty"`
}

// runStatus is the main logic function for the status command.
func runStatus(flags *projectFlags) error {
	proj, err := resolveProject(flags, "")
	if err != nil {
		return err
	}

	m := venv.NewManager(proj.VenvDir, "")
	status := m.Status(proj.Requirements)

	report := statusReport{
		Project:      proj.Root,
		Venv:         proj.VenvDir,
		Requirements: proj.Requirements,
		Entrypoint:   proj.Entrypoint,
		Manifest:     proj.ConfigPath,
		Status:       status.String(),
	}

	// The install record only exists for a populated venv; its absence is
	// already reflected in the status, so a read failure is not an error.
	if state, err := m.ReadState(); err == nil {
		report.PythonVersion = state.PythonVersion
		if !state.InstalledAt.IsZero() {
			installedAt := state.InstalledAt
			report.InstalledAt = &installedAt
		}
	}

	printStatusReport(&report, status)
	return nil
}

// printStatusReport outputs the report in text or JSON format, depending
// on the global --json flag.
func printStatusReport(report *statusReport, status model.EnvStatus) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Project:       %s\n", report.Project)
	if report.Manifest != "" {
		fmt.Printf("Manifest:      %s\n", report.Manifest)
	}
	fmt.Printf("Venv:          %s\n", report.Venv)
	fmt.Printf("Requirements:  %s\n", report.Requirements)
	fmt.Printf("Entrypoint:    %s\n", report.Entrypoint)
	fmt.Printf("Status:        %s%s\n", report.Status, statusHint(status))
	if report.PythonVersion != "" {
		fmt.Printf("Python:        %s\n", report.PythonVersion)
	}
	if report.InstalledAt != nil {
		fmt.Printf("Installed:     %s\n", report.InstalledAt.Format(time.RFC3339))
	}
}

// statusHint returns a short actionable suffix for non-ready states.
func statusHint(status model.EnvStatus) string {
	switch status {
	case model.StatusAbsent:
		return "  (venvup run will create it)"
	case model.StatusStale:
		return "  (run with --sync to reinstall)"
	case model.StatusBroken:
		return "  (run with --recreate to rebuild)"
	default:
		return ""
	}
}
