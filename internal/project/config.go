// config.go handles loading and parsing of the optional venvup.jsonc
// project manifest.
//
// The manifest is entirely optional — a project with the default layout
// (venv/, requirements.txt, main.py) needs no manifest at all. When present,
// it overrides the defaults per field. Unknown fields are silently ignored
// so the format can grow without breaking older binaries.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// ConfigFileNames lists the manifest filenames probed at the project root,
// in priority order. The first one that exists wins.
var ConfigFileNames = []string{"venvup.jsonc", "venvup.json"}

// Config represents the parsed venvup.jsonc manifest. Every field is
// optional; zero values mean "use the default".
//
// Example manifest:
//
//	{
//	  // interpreter used to create the venv
//	  "python": "python3.12",
//	  "venv": ".venv",
//	  "requirements": "requirements.txt",
//	  "entrypoint": "main.py",
//	  "args": ["--headless"],
//	  "env": {"QT_QPA_PLATFORM": "offscreen"}
//	}
type Config struct {
	// Python is the interpreter used to create the virtual environment.
	// Either a bare command name resolved via PATH (e.g., "python3.12")
	// or an absolute path.
	Python string `json:"python,omitempty"`

	// Venv is the virtual environment directory, relative to the
	// project root unless absolute.
	Venv string `json:"venv,omitempty"`

	// Requirements is the dependency manifest path, relative to the
	// project root unless absolute.
	Requirements string `json:"requirements,omitempty"`

	// Entrypoint is the application's main script, relative to the
	// project root unless absolute.
	Entrypoint string `json:"entrypoint,omitempty"`

	// Args are default arguments passed to the entrypoint when the
	// command line supplies none.
	Args []string `json:"args,omitempty"`

	// Env are extra environment variables set for the entrypoint process,
	// layered on top of the activation environment.
	Env map[string]string `json:"env,omitempty"`
}

// FindConfig probes the project root for a manifest file.
// Returns the absolute path of the first match, or an empty string if no
// manifest exists (which is not an error — the manifest is optional).
func FindConfig(root string) string {
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(root, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// LoadConfig reads a manifest file, strips JSONC comments, and parses it
// into a Config struct.
//
// The function uses github.com/tidwall/jsonc to handle JSONC (JSON with
// Comments) format before handing the cleaned bytes to encoding/json.
func LoadConfig(path string) (*Config, error) {
	// os.ReadFile handles the open-read-close lifecycle in a single call.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project manifest: %w", err)
	}

	// Strip JSONC comments (// and /* */) and trailing commas before
	// parsing. Hand-edited manifests frequently contain both.
	cleanJSON := jsonc.ToJSON(data)

	// encoding/json silently ignores fields not defined in the struct,
	// which is the desired behavior for forward compatibility.
	var cfg Config
	if err := json.Unmarshal(cleanJSON, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse project manifest at %s: %w", path, err)
	}

	return &cfg, nil
}
