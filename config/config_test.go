package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Memory.TextSize != 0x1000 {
		t.Errorf("Expected TextSize=0x1000, got %#x", cfg.Memory.TextSize)
	}
	if cfg.Memory.DataSize != 0x1000 {
		t.Errorf("Expected DataSize=0x1000, got %#x", cfg.Memory.DataSize)
	}
	if cfg.Execution.MaxCycles != 1000000 {
		t.Errorf("Expected MaxCycles=1000000, got %d", cfg.Execution.MaxCycles)
	}
	if cfg.Execution.StdinMaxRead != 4096 {
		t.Errorf("Expected StdinMaxRead=4096, got %d", cfg.Execution.StdinMaxRead)
	}
	if cfg.Logging.Dir != "" {
		t.Errorf("Expected empty Dir (platform default via GetLogPath), got %s", cfg.Logging.Dir)
	}
	if cfg.Logging.ToFile {
		t.Error("Expected ToFile=false")
	}
	if cfg.Logging.Verbose {
		t.Error("Expected Verbose=false")
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}
	if filepath.Base(path) != "mipspipe.toml" {
		t.Errorf("Expected path to end with mipspipe.toml, got %s", path)
	}

	switch runtime.GOOS {
	case "darwin", "linux":
		dir := filepath.Dir(path)
		if filepath.Base(dir) != "mipspipe" && path != "mipspipe.toml" {
			t.Errorf("Expected path in mipspipe directory or fallback, got %s", path)
		}
	}
}

func TestGetLogPath(t *testing.T) {
	path := GetLogPath()

	if path == "" {
		t.Error("GetLogPath returned empty string")
	}

	switch runtime.GOOS {
	case "darwin", "linux":
		if filepath.Base(path) != "logs" {
			t.Errorf("Expected path to end with logs, got %s", path)
		}
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if cfg.Execution.MaxCycles != 1000000 {
		t.Error("Expected default config when path is empty")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Execution.MaxCycles = 5000000
	cfg.Execution.StdinMaxRead = 512
	cfg.Logging.ToFile = true
	cfg.Logging.Verbose = true
	cfg.Logging.Dir = "custom-logs"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Execution.MaxCycles != 5000000 {
		t.Errorf("Expected MaxCycles=5000000, got %d", loaded.Execution.MaxCycles)
	}
	if loaded.Execution.StdinMaxRead != 512 {
		t.Errorf("Expected StdinMaxRead=512, got %d", loaded.Execution.StdinMaxRead)
	}
	if !loaded.Logging.ToFile {
		t.Error("Expected ToFile=true")
	}
	if !loaded.Logging.Verbose {
		t.Error("Expected Verbose=true")
	}
	if loaded.Logging.Dir != "custom-logs" {
		t.Errorf("Expected Dir=custom-logs, got %s", loaded.Logging.Dir)
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load should not error on non-existent file: %v", err)
	}

	if cfg.Execution.MaxCycles != 1000000 {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[execution]
max_cycles = "not a number"
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}
