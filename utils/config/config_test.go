package config

import (
	"encoding/json"
	"errors"
	"os"
	"testing"
)

type TestConfig struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type defaultedConfig struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func (c *defaultedConfig) ApplyDefaults() {
	if c.Value == 0 {
		c.Value = 42
	}
}

func (c *defaultedConfig) Validate() error {
	if c.Name == "" {
		return errors.New("name vacío")
	}
	return nil
}

func writeTempConfig(t *testing.T, value any) string {
	t.Helper()
	tempFile, err := os.CreateTemp(t.TempDir(), "testconfig")
	if err != nil {
		t.Fatalf("Failed to create temporary file: %v", err)
	}
	defer tempFile.Close()

	if err := json.NewEncoder(tempFile).Encode(value); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tempFile.Name()
}

func TestSetupConfig(t *testing.T) {
	validConfig := TestConfig{Name: "test", Value: 123}
	path := writeTempConfig(t, validConfig)

	var config TestConfig
	err := setupConfig(path, &config)
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if config != validConfig {
		t.Errorf("Expected config to be %v, got: %v", validConfig, config)
	}
}

func TestSetupConfig_ThrowError(t *testing.T) {
	err := setupConfig("nonexistent.json", &TestConfig{})
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := writeTempConfig(t, map[string]any{"name": "kernel"})

	var config defaultedConfig
	if err := LoadConfig(path, &config); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if config.Value != 42 {
		t.Errorf("Expected default value 42, got %d", config.Value)
	}
}

func TestLoadConfig_ThrowValidationError(t *testing.T) {
	path := writeTempConfig(t, map[string]any{"value": 1})

	var config defaultedConfig
	if err := LoadConfig(path, &config); err == nil {
		t.Error("Expected validation error, got nil")
	}
}

func TestInitConfig_PanicsOnMissingFile(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for non-existent file")
		}
	}()
	InitConfig("nonexistent.json", &TestConfig{})
}
