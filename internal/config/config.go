// Package config loads cxxtargs settings from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Settings are the user-tunable defaults of the CLI. Flags given on the
// command line override them.
type Settings struct {
	Output Output `toml:"output" yaml:"output"`
	Parse  Parse  `toml:"parse" yaml:"parse"`
}

type Output struct {
	// Format is the default --format of "cxxtargs parse".
	Format         string `toml:"format" yaml:"format" validate:"oneof=pretty tree diagram json yaml msgpack"`
	Indent         int    `toml:"indent" yaml:"indent" validate:"min=1,max=16"`
	Color          string `toml:"color" yaml:"color" validate:"oneof=auto on off"`
	MaxDiagnostics int    `toml:"max_diagnostics" yaml:"max_diagnostics" validate:"min=0"`
	Timings        bool   `toml:"timings" yaml:"timings"`
}

type Parse struct {
	// Strict makes lines without a with-clause an error instead of a skip.
	Strict bool `toml:"strict" yaml:"strict"`
	// Jobs bounds batch parallelism. 0 means GOMAXPROCS.
	Jobs int `toml:"jobs" yaml:"jobs" validate:"min=0,max=1024"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Output: Output{
			Format:         "pretty",
			Indent:         4,
			Color:          "auto",
			MaxDiagnostics: 100,
		},
	}
}

// Load reads path and decodes it over Default. The format follows the
// extension: .yaml and .yml are YAML, everything else TOML. Unknown keys
// are rejected.
func Load(fs afero.Fs, path string) (Settings, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config: %w", err)
	}

	s := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &s)
	default:
		err = decodeTOML(data, &s)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func decodeTOML(data []byte, s *Settings) error {
	meta, err := toml.Decode(string(data), s)
	if err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config key(s): %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, s *Settings) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// Encode renders s in the format implied by path's extension.
func Encode(s Settings, path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Marshal(s)
	default:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}
