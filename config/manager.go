package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrUnknownKey is returned by Set for keys outside the configuration schema.
var ErrUnknownKey = errors.New("unknown config key")

// Manager reads and edits a single config file. Values come from the
// defaults merged with the file; environment overrides are not consulted,
// so what Manager shows is what the file will contain.
type Manager struct {
	v          *viper.Viper
	configPath string
}

func newFileViper(configPath string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetConfigFile(configPath)
	return v
}

// NewManager creates a manager for configPath. A missing file is not an
// error; the manager then starts from the defaults.
func NewManager(configPath string) (*Manager, error) {
	v := newFileViper(configPath)

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return &Manager{
		v:          v,
		configPath: configPath,
	}, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || os.IsNotExist(err)
}

// Get returns the value for key, or nil when the key does not exist.
func (m *Manager) Get(key string) interface{} {
	return m.v.Get(key)
}

// Set changes key and rewrites the whole config file. The new value must
// leave the configuration valid; otherwise the previous value is kept and
// nothing is written.
func (m *Manager) Set(key string, value interface{}) error {
	if !m.HasKey(key) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	previous := m.v.Get(key)
	m.v.Set(key, value)
	if err := m.Validate(); err != nil {
		m.v.Set(key, previous)
		return err
	}

	return m.persist()
}

func (m *Manager) persist() error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(m.v.AllSettings())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks the current settings against the same rules Load applies.
func (m *Manager) Validate() error {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("error parsing config: %w", err)
	}
	return validate(&cfg)
}

// Reset deletes the config file and returns every key to its default.
func (m *Manager) Reset() error {
	if err := os.Remove(m.configPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config: %w", err)
	}

	m.v = newFileViper(m.configPath)
	return nil
}

// AllSettings returns the defaults merged with the file as a nested map.
func (m *Manager) AllSettings() map[string]interface{} {
	return m.v.AllSettings()
}

// Keys returns every known key in dotted form, sorted.
func (m *Manager) Keys() []string {
	keys := m.v.AllKeys()
	slices.Sort(keys)
	return keys
}

func (m *Manager) ConfigPath() string {
	return m.configPath
}

// HasKey returns true if key is part of the configuration schema.
func (m *Manager) HasKey(key string) bool {
	return m.v.IsSet(key)
}

// ParseValue converts a command-line value into the type stored in the
// file: bool, int, a "[a, b]" list or the string itself.
func ParseValue(value string) interface{} {
	switch value {
	case "true":
		return true
	case "false":
		return false
	}

	if n, err := strconv.Atoi(value); err == nil {
		return n
	}

	if inner, ok := strings.CutPrefix(value, "["); ok {
		if inner, ok = strings.CutSuffix(inner, "]"); ok {
			parts := strings.Split(inner, ",")
			for i, p := range parts {
				parts[i] = strings.TrimSpace(p)
			}
			return parts
		}
	}

	return value
}
