package models

import "testing"

func TestConfig_ApplyDefaults(t *testing.T) {
	config := Config{PortKernel: 9000}
	config.ApplyDefaults()

	if config.IpKernel != DefaultIpKernel || config.PortKernel != 9000 || config.Prompt != DefaultPrompt || config.LogLevel != DefaultLogLevel {
		t.Errorf("Unexpected config %+v", config)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

func TestConfig_ThrowInvalidPort(t *testing.T) {
	config := Config{PortKernel: 70000}
	if err := config.Validate(); err == nil {
		t.Error("Expected error for port out of range")
	}
}
