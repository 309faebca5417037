// launch.go implements entrypoint invocation with inherited streams,
// signal forwarding, and exit-code passthrough.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/mmr-tortoise/venvup/internal/model"
)

// Options configures the entrypoint invocation.
type Options struct {
	// Dir is the working directory for the entrypoint process, normally
	// the project root so the application's relative paths resolve.
	Dir string

	// Env is the complete environment for the entrypoint process,
	// normally the activation environment from the venv package.
	// Nil means inherit the parent's environment unchanged.
	Env []string

	// Stdin, Stdout, and Stderr override the child's standard streams.
	// Nil values default to the parent's own streams. Tests inject
	// buffers here.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the entrypoint with the given interpreter and arguments,
// blocking until the child exits.
//
// The returned int is the child's exit code; it is only meaningful when
// the error is nil. A non-zero child exit is NOT an error here — the
// entrypoint's status belongs to the application, and the CLI layer
// passes it through as the process exit code. Errors are reserved for
// venvup's own failures: a missing entrypoint file (ExitEntrypointNotFound)
// or an interpreter that could not be started at all.
func Run(ctx context.Context, python, entrypoint string, args []string, opts Options) (int, error) {
	// The entrypoint existence check runs before the interpreter so a
	// missing file gets a precise exit code instead of whatever Python
	// prints for an unreadable script argument.
	if _, err := os.Stat(entrypoint); err != nil {
		return 0, model.WrapCLIError(model.ExitEntrypointNotFound,
			fmt.Sprintf("entrypoint not found: %s", entrypoint), err)
	}

	// #nosec G204 — the interpreter and entrypoint come from resolved
	// project settings, not raw user input
	cmd := exec.CommandContext(ctx, python, append([]string{entrypoint}, args...)...)
	cmd.Dir = opts.Dir
	cmd.Env = opts.Env
	cmd.Stdin = reader(opts.Stdin, os.Stdin)
	cmd.Stdout = writer(opts.Stdout, os.Stdout)
	cmd.Stderr = writer(opts.Stderr, os.Stderr)

	if err := cmd.Start(); err != nil {
		return 0, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to start entrypoint %s", entrypoint), err)
	}

	// Forward termination signals to the child instead of dying first.
	// On an interactive Ctrl-C the terminal delivers SIGINT to the whole
	// foreground process group anyway; forwarding covers the non-terminal
	// cases (kill, service managers) and keeps venvup alive long enough
	// to report the child's exit code.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigCh:
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	err := cmd.Wait()
	close(done)
	signal.Stop(sigCh)

	if err != nil {
		// A non-zero child exit surfaces as *exec.ExitError. That is the
		// application's status, not a launch failure.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("entrypoint %s did not run to completion", entrypoint), err)
	}

	return 0, nil
}

// reader returns the override if set, else the fallback.
func reader(override io.Reader, fallback io.Reader) io.Reader {
	if override != nil {
		return override
	}
	return fallback
}

// writer returns the override if set, else the fallback.
func writer(override io.Writer, fallback io.Writer) io.Writer {
	if override != nil {
		return override
	}
	return fallback
}
