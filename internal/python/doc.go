// Package python locates and probes Python interpreters for the venvup CLI.
//
// Discovery order: an explicitly configured interpreter (flag or manifest)
// wins; otherwise python3 and then python are searched on PATH. The probe
// runs `<python> --version` and parses the reported version, which doubles
// as a sanity check that the binary is actually executable.
//
// The package shells out via os/exec rather than linking any Python
// embedding machinery — venvup only ever needs the interpreter as an
// external tool, the same way it uses pip.
package python
