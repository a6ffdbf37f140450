// Package config provides configuration management for sancho with Viper integration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config represents the complete configuration for sancho.
type Config struct {
	Sheet      SheetConfig      `mapstructure:"sheet" yaml:"sheet" json:"sheet"`
	Animation  AnimationConfig  `mapstructure:"animation" yaml:"animation" json:"animation"`
	Appearance AppearanceConfig `mapstructure:"appearance" yaml:"appearance" json:"appearance"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging" json:"logging"`
}

// SheetConfig holds sheet behaviour.
type SheetConfig struct {
	// Edge is fixed for the lifetime of a sheet; reloads do not change it.
	Edge          string  `mapstructure:"edge" yaml:"edge" json:"edge" jsonschema:"enum=left,enum=top,enum=right,enum=bottom"`
	Size          float64 `mapstructure:"size" yaml:"size" json:"size" jsonschema:"minimum=0.1,maximum=1"`
	Open          bool    `mapstructure:"open" yaml:"open" json:"open"`
	CloseOnClick  bool    `mapstructure:"close_on_click" yaml:"close_on_click" json:"close_on_click"`
	CloseOnEscape bool    `mapstructure:"close_on_escape" yaml:"close_on_escape" json:"close_on_escape"`
}

// AnimationConfig holds spring tuning.
type AnimationConfig struct {
	FPS       int     `mapstructure:"fps" yaml:"fps" json:"fps" jsonschema:"minimum=1,maximum=240"`
	Frequency float64 `mapstructure:"frequency" yaml:"frequency" json:"frequency"`
	Damping   float64 `mapstructure:"damping" yaml:"damping" json:"damping"`
}

// AppearanceConfig holds colours for the terminal host.
type AppearanceConfig struct {
	Background      string  `mapstructure:"background" yaml:"background" json:"background"`
	Overlay         string  `mapstructure:"overlay" yaml:"overlay" json:"overlay"`
	OverlayStrength float64 `mapstructure:"overlay_strength" yaml:"overlay_strength" json:"overlay_strength" jsonschema:"minimum=0,maximum=1"`
	Accent          string  `mapstructure:"accent" yaml:"accent" json:"accent"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format" jsonschema:"enum=auto,enum=console,enum=json"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	onError   []func(error)
	logger    zerolog.Logger
	watching  bool
}

// NewManager creates a new configuration manager. An empty path searches the
// user config directory and the working directory for config.{yaml,json,toml}.
func NewManager(path string) (*Manager, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SANCHO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	m := &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
		logger:    zerolog.Nop(),
	}
	m.setDefaults()
	return m, nil
}

// GetConfigDir returns $XDG_CONFIG_HOME/sancho or its platform equivalent.
func GetConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "sancho"), nil
}

// Load loads the configuration from file and environment variables. When no
// explicit path was given a missing config file is not an error.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		defaults := DefaultConfig()
		return &defaults
	}
	configCopy := *m.config
	return &configCopy
}

// Viper exposes the underlying viper instance for flag binding.
func (m *Manager) Viper() *viper.Viper {
	return m.viper
}

// Watch starts watching the config file for changes and reloads automatically.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}
	if m.viper.ConfigFileUsed() == "" {
		return errors.New("no config file to watch")
	}

	m.viper.OnConfigChange(func(e fsnotify.Event) {
		m.handleChange(e)
	})
	m.viper.WatchConfig()

	m.watching = true
	return nil
}

// handleChange reloads the file after a change event. A failed reload keeps
// the previous configuration and is reported to the error callbacks.
func (m *Manager) handleChange(e fsnotify.Event) {
	m.mu.RLock()
	log := m.logger
	m.mu.RUnlock()

	log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config change detected")

	if err := m.reload(); err != nil {
		log.Warn().Err(err).Msg("failed to reload config")

		m.mu.RLock()
		handlers := make([]func(error), len(m.onError))
		copy(handlers, m.onError)
		m.mu.RUnlock()

		for _, handler := range handlers {
			handler(err)
		}
		return
	}

	m.mu.RLock()
	config := m.config
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.RUnlock()

	for _, callback := range callbacks {
		callback(config)
	}
}

// SetLogger sets the logger used by the file watcher
func (m *Manager) SetLogger(logger zerolog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger = logger
}

// OnReloadError registers a callback for reloads that fail to read or validate.
func (m *Manager) OnReloadError(callback func(error)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onError = append(m.onError, callback)
}

// OnConfigChange registers a callback function to be called when config changes.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

func (m *Manager) reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}
	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) decode() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Sheet.Edge = strings.ToLower(strings.TrimSpace(config.Sheet.Edge))

	if err := validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("sheet.edge", defaults.Sheet.Edge)
	m.viper.SetDefault("sheet.size", defaults.Sheet.Size)
	m.viper.SetDefault("sheet.open", defaults.Sheet.Open)
	m.viper.SetDefault("sheet.close_on_click", defaults.Sheet.CloseOnClick)
	m.viper.SetDefault("sheet.close_on_escape", defaults.Sheet.CloseOnEscape)

	m.viper.SetDefault("animation.fps", defaults.Animation.FPS)
	m.viper.SetDefault("animation.frequency", defaults.Animation.Frequency)
	m.viper.SetDefault("animation.damping", defaults.Animation.Damping)

	m.viper.SetDefault("appearance.background", defaults.Appearance.Background)
	m.viper.SetDefault("appearance.overlay", defaults.Appearance.Overlay)
	m.viper.SetDefault("appearance.overlay_strength", defaults.Appearance.OverlayStrength)
	m.viper.SetDefault("appearance.accent", defaults.Appearance.Accent)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.file", defaults.Logging.File)
}
