// Package cli — run.go implements the "venvup run" command.
//
// run is the primary user-facing operation: the complete bootstrap
// sequence followed by the application launch.
//
// Orchestration steps:
//  1. Resolve the project root and settings (flags > manifest > defaults)
//  2. Check whether the venv directory exists
//  3. If absent: announce once on stdout, create the venv, install
//     dependencies from the requirements manifest
//  4. If present: reuse it as-is (optionally reinstalling under --sync)
//  5. Launch the entrypoint with the activation environment and pass its
//     exit code through unchanged
//
// Every step aborts the sequence on failure with its own exit code — a
// failed creation never falls through to an install against a broken venv.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/venvup/internal/launch"
	"github.com/mmr-tortoise/venvup/internal/model"
	"github.com/mmr-tortoise/venvup/internal/project"
	"github.com/mmr-tortoise/venvup/internal/python"
	"github.com/mmr-tortoise/venvup/internal/venv"
)

// projectFlags holds the settings flags shared by every subcommand that
// resolves a project. They are bound per-command (not persistent) so each
// command's help shows exactly what it honors.
type projectFlags struct {
	project      string // --project: project root (default: current directory)
	python       string // --python: base interpreter for venv creation
	venvDir      string // --venv: venv directory override
	requirements string // --requirements: manifest path override
}

// bindProjectFlags registers the shared project flags on a command.
func bindProjectFlags(cmd *cobra.Command, flags *projectFlags) {
	cmd.Flags().StringVarP(&flags.project, "project", "p", "", "Project directory (default: current directory)")
	cmd.Flags().StringVar(&flags.python, "python", "", "Python interpreter used to create the venv (default: python3 on PATH)")
	cmd.Flags().StringVar(&flags.venvDir, "venv", "", "Virtual environment directory (default: venv)")
	cmd.Flags().StringVar(&flags.requirements, "requirements", "", "Requirements manifest (default: requirements.txt)")
}

// resolveProject turns the shared flags into a resolved Project.
// entrypoint carries the run command's --entrypoint override; commands
// without that flag pass an empty string.
func resolveProject(flags *projectFlags, entrypoint string) (*project.Project, error) {
	dir := flags.project
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
		}
		dir = cwd
	}

	return project.Resolve(dir, project.Overrides{
		Python:       flags.python,
		VenvDir:      flags.venvDir,
		Requirements: flags.requirements,
		Entrypoint:   entrypoint,
	})
}

// runFlags holds the flag values for the run command.
type runFlags struct {
	projectFlags
	entrypoint string // --entrypoint: entrypoint override
	recreate   bool   // --recreate: delete and rebuild the venv first
	sync       bool   // --sync: reinstall when the manifest changed
	noLaunch   bool   // --no-launch: bootstrap only, skip the entrypoint
}

// NewRunCommand creates the "run" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewRunCommand() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [-- args...]",
		Short: "Bootstrap the virtual environment and launch the entrypoint",
		Long: `Bootstrap the project's virtual environment and launch its entrypoint.

On the first run the venv is created and dependencies are installed from
the requirements manifest; later runs reuse the existing venv directly.
Arguments after -- are passed to the entrypoint; without them, the args
from venvup.jsonc (if any) are used.

The process exit code is the entrypoint's own exit code.

Examples:
  venvup run
  venvup run --project ~/src/my-app
  venvup run --sync -- --headless
  venvup run --recreate`,

		// Positional arguments all belong to the entrypoint.
		Args: cobra.ArbitraryArgs,

		// RunE is used instead of Run so we can return errors. Cobra will
		// pass them to the Execute error handler in root.go.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), args, flags)
		},
	}

	bindProjectFlags(cmd, &flags.projectFlags)
	cmd.Flags().StringVar(&flags.entrypoint, "entrypoint", "", "Entrypoint script (default: main.py)")
	cmd.Flags().BoolVar(&flags.recreate, "recreate", false, "Delete and rebuild the venv before launching")
	cmd.Flags().BoolVar(&flags.sync, "sync", false, "Reinstall dependencies when the manifest changed since the last install")
	cmd.Flags().BoolVar(&flags.noLaunch, "no-launch", false, "Bootstrap only, don't launch the entrypoint")

	return cmd
}

// runRun is the main orchestration function for the run command.
func runRun(ctx context.Context, entryArgs []string, flags *runFlags) error {
	// Step 1: Resolve the project. After this point every path is
	// absolute and anchored to the project root, so the caller's working
	// directory no longer matters.
	proj, err := resolveProject(&flags.projectFlags, flags.entrypoint)
	if err != nil {
		return err
	}
	VerboseLog("Project root: %s", proj.Root)
	VerboseLog("Venv: %s", proj.VenvDir)

	// Steps 2-4: Ensure the environment exists and is populated.
	m, created, err := ensureEnvironment(ctx, proj, flags.recreate, flags.sync)
	if err != nil {
		return err
	}

	if flags.noLaunch {
		printBootstrapResult(proj, m, created)
		return nil
	}

	// Step 5: Launch. Command-line args win over manifest args.
	args := entryArgs
	if len(args) == 0 {
		args = proj.Args
	}

	env := m.Environ()
	for k, v := range proj.Env {
		env = append(env, k+"="+v)
	}

	VerboseLog("Launching %s", proj.Entrypoint)
	code, err := launch.Run(ctx, m.Python(), proj.Entrypoint, args, launch.Options{
		Dir: proj.Root,
		Env: env,
	})
	if err != nil {
		return err
	}
	if code != 0 {
		// Pass the application's exit code through without printing
		// anything — the application already said whatever it had to say.
		return model.ExitWith(model.ExitCode(code))
	}
	return nil
}

// ensureEnvironment brings the venv to a usable state and reports whether
// it was created by this call.
//
// The venv is created (with the one-time stdout announcement) and
// populated only when the directory is absent. An existing venv is reused
// as-is; --sync additionally reinstalls when the manifest drifted, and
// recreate removes the venv first so the absent path runs.
func ensureEnvironment(ctx context.Context, proj *project.Project, recreate, sync bool) (*venv.Manager, bool, error) {
	m := venv.NewManager(proj.VenvDir, "")

	if recreate && m.Exists() {
		VerboseLog("Removing existing venv at %s", proj.VenvDir)
		if err := m.Remove(); err != nil {
			return nil, false, err
		}
	}

	if !m.Exists() {
		// First run: locate a base interpreter, announce, create, install.
		// The announcement goes to stdout exactly once, and only when a
		// venv is actually being created.
		pythonPath, err := python.Find(proj.Python)
		if err != nil {
			return nil, false, err
		}
		m.BasePython = pythonPath
		VerboseLog("Base interpreter: %s", pythonPath)

		fmt.Printf("Creating virtual environment in %s...\n", displayPath(proj.Root, proj.VenvDir))

		if err := m.Create(ctx); err != nil {
			return nil, false, err
		}
		if err := m.Install(ctx, proj.Requirements); err != nil {
			return nil, false, err
		}
		return m, true, nil
	}

	if sync && m.Status(proj.Requirements) == model.StatusStale {
		VerboseLog("Manifest changed since last install, syncing")
		if err := m.Install(ctx, proj.Requirements); err != nil {
			return nil, false, err
		}
	}

	return m, false, nil
}
