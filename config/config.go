package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents the mipspipe run-time configuration.
type Config struct {
	// Memory settings
	Memory struct {
		TextSize uint32 `toml:"text_size"`
		DataSize uint32 `toml:"data_size"`
	} `toml:"memory"`

	// Execution settings
	Execution struct {
		MaxCycles    uint64 `toml:"max_cycles"`
		StdinMaxRead int    `toml:"stdin_max_read"`
	} `toml:"execution"`

	// Logging settings
	Logging struct {
		Dir     string `toml:"dir"` // empty means "use GetLogPath()'s platform default"
		ToFile  bool   `toml:"to_file"`
		Verbose bool   `toml:"verbose"`
	} `toml:"logging"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	// Memory defaults
	cfg.Memory.TextSize = 0x1000
	cfg.Memory.DataSize = 0x1000

	// Execution defaults
	cfg.Execution.MaxCycles = 1000000
	cfg.Execution.StdinMaxRead = 4096

	// Logging defaults
	cfg.Logging.Dir = ""
	cfg.Logging.ToFile = false
	cfg.Logging.Verbose = false

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "mipspipe")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "mipspipe.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "mipspipe")

	default:
		return "mipspipe.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "mipspipe.toml"
	}

	return filepath.Join(configDir, "mipspipe.toml")
}

// GetLogPath returns the platform-specific log directory path.
func GetLogPath() string {
	var logDir string

	switch runtime.GOOS {
	case "windows":
		logDir = os.Getenv("APPDATA")
		if logDir == "" {
			logDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		logDir = filepath.Join(logDir, "mipspipe", "logs")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "logs"
		}
		logDir = filepath.Join(homeDir, ".local", "share", "mipspipe", "logs")

	default:
		return "logs"
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "logs"
	}

	return logDir
}

// Load loads configuration from path, returning DefaultConfig unchanged if
// path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom loads configuration from the specified file.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
