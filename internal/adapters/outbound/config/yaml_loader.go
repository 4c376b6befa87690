package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/keyalign/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the project root.
const FileName = ".keyalign.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .keyalign.yaml.
type YAMLLoader struct {
	path string
}

var _ domain.ConfigLoader = (*YAMLLoader)(nil)

// New creates a YAMLLoader that reads FileName from the project root.
func New() *YAMLLoader { return &YAMLLoader{} }

// WithFile creates a YAMLLoader that reads an explicit file instead. An
// empty path behaves like New.
func WithFile(path string) *YAMLLoader { return &YAMLLoader{path: path} }

// fileConfig mirrors the file layout; options are decoded separately because
// they may be a bare string or a mapping.
type fileConfig struct {
	domain.ProjectConfig `yaml:",inline"`
	Options              any `yaml:"options"`
}

// Load reads the configuration for projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	path, name := l.path, l.path
	if path == "" {
		path, name = filepath.Join(projectPath, FileName), FileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && l.path == "" {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, fmt.Errorf("reading %s: %w", name, err)
	}
	return Parse(name, data)
}

// Parse decodes and validates configuration file content.
func Parse(name string, data []byte) (domain.ProjectConfig, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	cfg := fc.ProjectConfig
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", name, err)
	}

	opts, err := DecodeOptions(fc.Options)
	if err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	cfg.Options = opts
	return cfg, nil
}
