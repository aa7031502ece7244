// Package settings persists a few user choices between runs in a flat
// key-value YAML file.
package settings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	yaml "gopkg.in/yaml.v3"

	"imglink/misc"
)

// Settings are remembered between runs.
type Settings struct {
	BaseURL   string `yaml:"base_url,omitempty"`
	LocalRoot string `yaml:"local_root,omitempty"`
	BaseRoot  string `yaml:"base_root,omitempty"`
}

func (s Settings) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("base_url", s.BaseURL)
	enc.AddString("local_root", s.LocalRoot)
	enc.AddString("base_root", s.BaseRoot)
	return nil
}

// DefaultPath returns settings file location in user configuration
// directory, or in the current directory if there is none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return misc.GetAppName() + "-settings.yaml"
	}
	return filepath.Join(dir, misc.GetAppName(), "settings.yaml")
}

// Load reads settings. Missing, unreadable or corrupt file results in empty
// settings, the program should start regardless.
func Load(path string) Settings {
	var s Settings

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&s); err != nil {
		return Settings{}
	}
	return s
}

// Save writes settings creating directory if necessary. Callers are expected
// to ignore errors.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("unable to marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("unable to write settings: %w", err)
	}
	return nil
}
