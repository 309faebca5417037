// Package cli — clean.go implements the "venvup clean" command.
//
// clean removes the virtual environment directory entirely, returning the
// project to its fresh-checkout state. The bootstrap sequence itself never
// destroys an existing venv, so this is the only destructive operation in
// the tool — which is why it prompts for confirmation by default.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/venvup/internal/model"
	"github.com/mmr-tortoise/venvup/internal/venv"
)

// cleanFlags holds the flag values for the clean command.
type cleanFlags struct {
	projectFlags

	// force skips the interactive confirmation prompt when true.
	force bool
}

// NewCleanCommand creates the "clean" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewCleanCommand() *cobra.Command {
	flags := &cleanFlags{}

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the virtual environment",
		Long: `Remove the project's virtual environment directory and everything in it.

The next run will recreate the venv from scratch and reinstall
dependencies. Unless --force is specified, the command prompts for
confirmation.

Examples:
  venvup clean
  venvup clean --force
  venvup clean --project ~/src/my-app`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(flags)
		},
	}

	bindProjectFlags(cmd, &flags.projectFlags)
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Remove without confirmation")

	return cmd
}

// runClean is the main logic function for the clean command.
func runClean(flags *cleanFlags) error {
	proj, err := resolveProject(&flags.projectFlags, "")
	if err != nil {
		return err
	}

	m := venv.NewManager(proj.VenvDir, "")
	if !m.Exists() {
		// Nothing to do; report it rather than failing, so clean is
		// idempotent in scripts.
		fmt.Printf("No virtual environment at %s\n", displayPath(proj.Root, proj.VenvDir))
		return nil
	}

	if !flags.force {
		confirmed, err := promptConfirmation(proj.VenvDir)
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to read user input", err)
		}
		if !confirmed {
			return model.NewCLIError(model.ExitUserCancelled, "operation cancelled by user")
		}
	}

	if err := m.Remove(); err != nil {
		return err
	}

	fmt.Printf("Removed virtual environment at %s\n", displayPath(proj.Root, proj.VenvDir))
	return nil
}

// promptConfirmation asks the user to confirm removal on stderr (stdout
// stays clean for scripting) and reads a yes/no answer from stdin.
func promptConfirmation(venvDir string) (bool, error) {
	fmt.Fprintf(os.Stderr, "Remove virtual environment at %s? [y/N]: ", venvDir)

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
