// Package project locates and loads the srcdep.toml manifest: scan
// settings plus persistent switch overrides.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file srcdep looks for, walking up from the
// start directory.
const ManifestName = "srcdep.toml"

// Manifest is a located, parsed srcdep.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the TOML structure:
//
//	[scan]
//	marker = "///"
//	include = ["*.c", "*.cpp"]
//
//	[switches]
//	READLINE = true
type Config struct {
	Scan     ScanConfig      `toml:"scan"`
	Switches map[string]bool `toml:"switches"`
}

type ScanConfig struct {
	Marker  string   `toml:"marker"`
	Include []string `toml:"include"`
}

// DefaultInclude lists the glob patterns scanned when the manifest
// does not narrow them down.
func DefaultInclude() []string {
	return []string{"*.c", "*.cc", "*.cpp", "*.cxx", "*.h", "*.hpp"}
}

// Find walks up from startDir looking for srcdep.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the manifest. The second result is false when
// no manifest exists, which is not an error.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses one manifest file. Every section is optional.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("scan", "marker") && strings.TrimSpace(cfg.Scan.Marker) == "" {
		return Config{}, fmt.Errorf("%s: [scan].marker must not be blank", path)
	}
	return cfg, nil
}

// Marker returns the configured directive marker, or "" when the
// scanner default should apply.
func (m *Manifest) Marker() string {
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m.Config.Scan.Marker)
}

// Include returns the configured include globs, falling back to
// DefaultInclude.
func (m *Manifest) Include() []string {
	if m == nil || len(m.Config.Scan.Include) == 0 {
		return DefaultInclude()
	}
	return m.Config.Scan.Include
}

// Overrides returns the persistent switch overrides. Never nil.
func (m *Manifest) Overrides() map[string]bool {
	if m == nil || m.Config.Switches == nil {
		return map[string]bool{}
	}
	return m.Config.Switches
}

// StarterManifest is written by `srcdep init`.
const StarterManifest = `# srcdep project manifest

[scan]
# marker = "///"
# include = ["*.c", "*.cc", "*.cpp", "*.cxx", "*.h", "*.hpp"]

[switches]
# READLINE = true
`
