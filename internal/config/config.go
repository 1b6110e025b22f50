// Package config manages the JSON configuration file in ~/.parley.
// The Config struct is shared read-mostly across the UI; every accessor
// takes the lock so callers never touch fields directly.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/parley-irc/parley/internal/errors"
)

// ServerConfig describes one configured server connection.
type ServerConfig struct {
	Name     string   `json:"name"`               // identity used throughout the UI (e.g. "libera")
	Host     string   `json:"host"`               // hostname to connect to
	Port     int      `json:"port,omitempty"`     // defaults to 6697
	Nick     string   `json:"nick"`               // primary nickname
	Channels []string `json:"channels,omitempty"` // channels joined on connect
}

// BufferSettings controls how conversational buffers render and behave.
type BufferSettings struct {
	Timestamps       bool   `json:"timestamps"`                  // show message timestamps
	TimestampFormat  string `json:"timestamp_format,omitempty"`  // Go layout, defaults to "15:04"
	Nicklist         bool   `json:"nicklist"`                    // show channel nick list
	CompletionSuffix string `json:"completion_suffix,omitempty"` // appended after nick completion, defaults to ": "
	MaxRenderedLines int    `json:"max_rendered_lines,omitempty"`
}

// FileTransferSettings controls the file-transfer panel.
type FileTransferSettings struct {
	DownloadDir string `json:"download_dir,omitempty"`
	AutoAccept  bool   `json:"auto_accept,omitempty"`
}

// Config holds the application configuration
type Config struct {
	Servers      []ServerConfig       `json:"servers"`
	Buffer       BufferSettings       `json:"buffer"`
	FileTransfer FileTransferSettings `json:"file_transfer"`

	Theme                string `json:"theme,omitempty"`                 // UI theme name (e.g. "dark-purple", "nord")
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // desktop notifications on nick highlight

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".parley"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// HistoryDir returns the directory where buffer history files are stored.
func HistoryDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path. Used by Load and by tests.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{
		Servers:  []ServerConfig{},
		filePath: path,
	}
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	// Re-apply defaults for fields the file left zero. Must happen before
	// Validate() since Validate() only reads.
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills zero-valued fields. Not thread-safe; only called during
// single-threaded initialization before the Config is shared.
func (c *Config) applyDefaults() {
	if c.Servers == nil {
		c.Servers = []ServerConfig{}
	}
	for i := range c.Servers {
		if c.Servers[i].Port == 0 {
			c.Servers[i].Port = 6697
		}
	}
	if c.Buffer.TimestampFormat == "" {
		c.Buffer.TimestampFormat = "15:04"
	}
	if c.Buffer.CompletionSuffix == "" {
		c.Buffer.CompletionSuffix = ": "
	}
	if c.Buffer.MaxRenderedLines == 0 {
		c.Buffer.MaxRenderedLines = 500
	}
	if c.FileTransfer.DownloadDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.FileTransfer.DownloadDir = filepath.Join(home, "Downloads")
		}
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	for _, srv := range c.Servers {
		if srv.Name == "" {
			return errors.ConfigInvalid("server with empty name found")
		}
		if seen[srv.Name] {
			return errors.ConfigInvalid(fmt.Sprintf("duplicate server name: %s", srv.Name))
		}
		seen[srv.Name] = true

		if srv.Host == "" {
			return errors.ConfigInvalid(fmt.Sprintf("server %s has empty host", srv.Name))
		}
		if srv.Nick == "" {
			return errors.ConfigInvalid(fmt.Sprintf("server %s has empty nick", srv.Name))
		}
		if srv.Port < 0 || srv.Port > 65535 {
			return errors.ConfigInvalid(fmt.Sprintf("server %s has invalid port %d", srv.Name, srv.Port))
		}
	}

	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// GetServers returns a copy of the configured servers.
func (c *Config) GetServers() []ServerConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()

	servers := make([]ServerConfig, len(c.Servers))
	copy(servers, c.Servers)
	return servers
}

// GetServer returns the config for a named server.
func (c *Config) GetServer(name string) (ServerConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, srv := range c.Servers {
		if srv.Name == name {
			return srv, true
		}
	}
	return ServerConfig{}, false
}

// AddServer adds a server if one with the same name doesn't already exist.
func (c *Config) AddServer(srv ServerConfig) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range c.Servers {
		if s.Name == srv.Name {
			return false
		}
	}
	if srv.Port == 0 {
		srv.Port = 6697
	}
	c.Servers = append(c.Servers, srv)
	return true
}

// RemoveServer removes a server by name.
// Returns true if the server was found and removed, false otherwise.
func (c *Config) RemoveServer(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, s := range c.Servers {
		if s.Name == name {
			c.Servers = append(c.Servers[:i], c.Servers[i+1:]...)
			return true
		}
	}
	return false
}

// GetBuffer returns the buffer settings.
func (c *Config) GetBuffer() BufferSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Buffer
}

// GetFileTransfer returns the file-transfer settings.
func (c *Config) GetFileTransfer() FileTransferSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.FileTransfer
}

// GetTheme returns the configured theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}
