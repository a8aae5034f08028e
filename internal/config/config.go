// Package config provides configuration management for the touchpad server.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/kataras/golog"

	"remotepad/internal/gesture"
)

// Config represents the application configuration.
type Config struct {
	// General contains server settings.
	General GeneralConfig `json:"general"`

	// Tuning contains the gesture curve constants.
	Tuning gesture.Tuning `json:"tuning"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	// ListenPort is the TCP port the HTTP/WebSocket server binds (default: 8088).
	ListenPort int `json:"listen_port"`

	// StaticDir overrides the embedded touchpad page with an on-disk directory.
	StaticDir string `json:"static_dir,omitempty"`

	// LogLevel is one of golog's levels ("debug", "info", "warn", "error").
	LogLevel string `json:"log_level"`

	// TrayEnabled shows a system tray icon with the touchpad URL.
	TrayEnabled bool `json:"tray_enabled"`

	// DryRun logs actuations instead of injecting input.
	DryRun bool `json:"dry_run"`
}

// DefaultConfig returns a new Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			ListenPort: 8088,
			LogLevel:   "info",
		},
		Tuning: gesture.DefaultTuning(),
	}
}

// Manager handles loading and saving configuration.
type Manager struct {
	mu         sync.Mutex
	configPath string
	config     *Config
	onChanged  func()
	log        *golog.Logger
}

// NewManager creates a manager backed by the per-OS config path.
func NewManager() (*Manager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(configPath), nil
}

// NewManagerAt creates a manager backed by an explicit file path.
func NewManagerAt(path string) *Manager {
	return &Manager{
		configPath: path,
		config:     DefaultConfig(),
		log:        golog.Child("[config]"),
	}
}

// getConfigPath returns the path to the configuration file.
func getConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "remotepad")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "remotepad")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config", "remotepad")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Path returns the file the manager reads and writes.
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration from disk. A missing file leaves the defaults
// in place.
func (m *Manager) Load() error {
	m.mu.Lock()

	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		m.mu.Unlock()
		return nil
	}
	if err != nil {
		m.mu.Unlock()
		return err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		m.mu.Unlock()
		return err
	}
	m.config = cfg
	onChanged := m.onChanged
	m.mu.Unlock()

	if onChanged != nil {
		onChanged()
	}
	return nil
}

// Save writes the configuration to disk.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}

	m.log.Debugf("saving configuration to %s (%d bytes)", m.configPath, len(data))
	return os.WriteFile(m.configPath, data, 0644)
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.config
}

// Set updates the configuration.
func (m *Manager) Set(config Config) {
	m.mu.Lock()
	m.config = &config
	onChanged := m.onChanged
	m.mu.Unlock()

	if onChanged != nil {
		onChanged()
	}
}

// RegisterChangeCallback registers a function to be called when the config
// changes, via Set or a reload from disk.
func (m *Manager) RegisterChangeCallback(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = fn
}
