package models

import "fmt"

const (
	DefaultIpKernel   = "127.0.0.1"
	DefaultPortKernel = 8001
	DefaultPrompt     = "AuraOS> "
	DefaultLogLevel   = "WARN"
)

type Config struct {
	IpKernel   string `json:"ip_kernel"`
	PortKernel int    `json:"port_kernel"`
	Prompt     string `json:"prompt"`
	LogLevel   string `json:"log_level"`
}

func (config *Config) ApplyDefaults() {
	if config.IpKernel == "" {
		config.IpKernel = DefaultIpKernel
	}
	if config.PortKernel == 0 {
		config.PortKernel = DefaultPortKernel
	}
	if config.Prompt == "" {
		config.Prompt = DefaultPrompt
	}
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}
}

func (config *Config) Validate() error {
	if config.PortKernel <= 0 || config.PortKernel > 65535 {
		return fmt.Errorf("port_kernel fuera de rango: %d", config.PortKernel)
	}
	return nil
}

// Command es una línea ya separada en nombre y argumentos.
type Command struct {
	Name string
	Args []string
}
