package portset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings holds defaults that flags may override.
type Settings struct {
	ConfigPath   string `yaml:"config_path"`
	StateDir     string `yaml:"state_dir"`
	AllowMissing bool   `yaml:"allow_missing"`
	LogLevel     string `yaml:"log_level"`
}

func DefaultSettings() Settings {
	return Settings{
		ConfigPath: DefaultConfigPath,
		StateDir:   DefaultStateDir(),
		LogLevel:   "warn",
	}
}

func DefaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "portset", "config.yaml")
}

// LoadSettings layers defaults, the YAML file at path and PORTSET_* variables.
// A missing file is not an error when path is the default location.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("PORTSET_SETTINGS")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultSettingsPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &s); err != nil {
				return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
		}
	}

	if err := s.applyEnvOverrides(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s *Settings) applyEnvOverrides() error {
	if v := strings.TrimSpace(os.Getenv("PORTSET_CONFIG_PATH")); v != "" {
		s.ConfigPath = v
	}
	if v := strings.TrimSpace(os.Getenv("PORTSET_STATE_DIR")); v != "" {
		s.StateDir = v
	}
	if v := strings.TrimSpace(os.Getenv("PORTSET_ALLOW_MISSING")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PORTSET_ALLOW_MISSING: %w", err)
		}
		s.AllowMissing = b
	}
	return nil
}
