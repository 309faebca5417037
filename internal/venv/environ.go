// environ.go implements activation environment computation.
//
// Activation in a shell (`source venv/bin/activate`) does three things that
// matter to a child process: sets VIRTUAL_ENV, prepends the venv's bin
// directory to PATH, and unsets PYTHONHOME. Everything else the activate
// script does (prompt cosmetics, deactivate function) is shell-local.
// Reproducing those three mutations on the child's environment is exactly
// equivalent to running inside an activated shell.
package venv

import (
	"os"
	"strings"
)

// Environ returns the process environment with the venv activated:
// VIRTUAL_ENV set to the venv directory, the venv bin directory prepended
// to PATH, and PYTHONHOME removed.
func (m *Manager) Environ() []string {
	return activationEnviron(os.Environ(), m.Dir, m.BinDir())
}

// activationEnviron applies the activation mutations to a base
// environment. Split out from Environ so tests can exercise it against a
// constructed environment instead of the real one.
func activationEnviron(base []string, venvDir, binDir string) []string {
	out := make([]string, 0, len(base)+2)
	pathSeen := false

	for _, kv := range base {
		key, value, _ := strings.Cut(kv, "=")
		switch {
		case strings.EqualFold(key, "PYTHONHOME"):
			// PYTHONHOME overrides the interpreter's idea of where its
			// standard library lives, which breaks venv interpreters.
			continue
		case key == "VIRTUAL_ENV":
			// Replaced below; dropping it here avoids duplicates when
			// venvup itself runs inside another activated venv.
			continue
		case strings.EqualFold(key, "PATH") && !pathSeen:
			out = append(out, key+"="+binDir+string(os.PathListSeparator)+value)
			pathSeen = true
		default:
			out = append(out, kv)
		}
	}

	if !pathSeen {
		out = append(out, "PATH="+binDir)
	}
	out = append(out, "VIRTUAL_ENV="+venvDir)

	return out
}
