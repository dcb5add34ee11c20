package models

import (
	"errors"
	"fmt"
	"strings"

	memoriaModels "github.com/sisoputnfrba/tp-2025-2c-AuraOS/memoria/models"
)

const (
	DefaultIpKernel          = "127.0.0.1"
	DefaultPortKernel        = 8001
	DefaultTotalMemoryKB     = 128 * 1024
	DefaultPageSizeKB        = 4
	DefaultSchedulerAlg      = "RR"
	DefaultQuantum           = 4
	DefaultPageReplacement   = "FIFO"
	DefaultThreadsPerProcess = 1
	DefaultLogLevel          = "INFO"
	DefaultDumpPath          = "./dumps"
	DefaultMaxCycles         = 1000
)

type Config struct {
	IpKernel           string `json:"ip_kernel"`
	PortKernel         int    `json:"port_kernel"`
	TotalMemoryKB      int    `json:"total_memory_kb"`
	PageSizeKB         int    `json:"page_size_kb"`
	SchedulerAlgorithm string `json:"scheduler_algorithm"`
	Quantum            int    `json:"quantum"`
	PageReplacement    string `json:"page_replacement"`
	ThreadsPerProcess  int    `json:"threads_per_process"`
	CycleDelay         int    `json:"cycle_delay"` // ms entre ciclos automáticos, 0 los desactiva
	MaxCycles          int    `json:"max_cycles"`  // tope de ciclos por pedido a /kernel/ciclos
	DumpPath           string `json:"dump_path"`
	LogLevel           string `json:"log_level"`
}

// DefaultConfig devuelve la configuración con todos los valores por defecto.
func DefaultConfig() Config {
	config := Config{}
	config.ApplyDefaults()
	return config
}

// ApplyDefaults completa los campos no informados.
func (config *Config) ApplyDefaults() {
	if config.IpKernel == "" {
		config.IpKernel = DefaultIpKernel
	}
	if config.PortKernel == 0 {
		config.PortKernel = DefaultPortKernel
	}
	if config.TotalMemoryKB == 0 {
		config.TotalMemoryKB = DefaultTotalMemoryKB
	}
	if config.PageSizeKB == 0 {
		config.PageSizeKB = DefaultPageSizeKB
	}
	if config.SchedulerAlgorithm == "" {
		config.SchedulerAlgorithm = DefaultSchedulerAlg
	}
	if config.Quantum == 0 {
		config.Quantum = DefaultQuantum
	}
	if config.PageReplacement == "" {
		config.PageReplacement = DefaultPageReplacement
	}
	if config.ThreadsPerProcess == 0 {
		config.ThreadsPerProcess = DefaultThreadsPerProcess
	}
	if config.MaxCycles == 0 {
		config.MaxCycles = DefaultMaxCycles
	}
	if config.DumpPath == "" {
		config.DumpPath = DefaultDumpPath
	}
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}
}

// Validate chequea rangos y nombres de algoritmos.
func (config *Config) Validate() error {
	var problems []error

	if config.PortKernel < 0 || config.PortKernel > 65535 {
		problems = append(problems, fmt.Errorf("port_kernel fuera de rango: %d", config.PortKernel))
	}
	if config.TotalMemoryKB < 0 {
		problems = append(problems, fmt.Errorf("total_memory_kb negativo: %d", config.TotalMemoryKB))
	}
	if config.PageSizeKB <= 0 {
		problems = append(problems, fmt.Errorf("page_size_kb debe ser positivo: %d", config.PageSizeKB))
	}
	if config.Quantum <= 0 {
		problems = append(problems, fmt.Errorf("quantum debe ser positivo: %d", config.Quantum))
	}
	if config.ThreadsPerProcess <= 0 {
		problems = append(problems, fmt.Errorf("threads_per_process debe ser positivo: %d", config.ThreadsPerProcess))
	}
	if config.MaxCycles <= 0 {
		problems = append(problems, fmt.Errorf("max_cycles debe ser positivo: %d", config.MaxCycles))
	}
	if config.CycleDelay < 0 {
		problems = append(problems, fmt.Errorf("cycle_delay negativo: %d", config.CycleDelay))
	}
	switch strings.ToUpper(config.SchedulerAlgorithm) {
	case "RR", "SJF":
	default:
		problems = append(problems, fmt.Errorf("scheduler_algorithm desconocido: %q", config.SchedulerAlgorithm))
	}
	switch strings.ToUpper(config.PageReplacement) {
	case "FIFO", "LRU":
	default:
		problems = append(problems, fmt.Errorf("page_replacement desconocido: %q", config.PageReplacement))
	}

	return errors.Join(problems...)
}

// MemoryConfig es la parte de la configuración que usa la memoria.
func (config Config) MemoryConfig() memoriaModels.Config {
	return memoriaModels.Config{
		MemorySizeKB:    config.TotalMemoryKB,
		PageSizeKB:      config.PageSizeKB,
		PageReplacement: config.PageReplacement,
	}
}

// CreateProcessRequest es el body para crear un proceso.
type CreateProcessRequest struct {
	Name      string `json:"name"`
	BurstTime int    `json:"burst_time"`
	MemoryKB  int    `json:"memory_kb"`
}

// ProcessRequest identifica un proceso.
type ProcessRequest struct {
	Pid int `json:"pid"`
}

// ThreadRequest identifica un hilo de un proceso.
type ThreadRequest struct {
	Pid int `json:"pid"`
	Tid int `json:"tid"`
}

// CyclesRequest pide correr una cantidad de ciclos del planificador.
type CyclesRequest struct {
	Cycles int `json:"cycles"`
}

// StrategyRequest pide cambiar el algoritmo de planificación.
type StrategyRequest struct {
	Algorithm string `json:"algorithm"`
}

// MemoryAccessRequest pide acceder a una dirección virtual de un proceso.
type MemoryAccessRequest struct {
	Pid            int  `json:"pid"`
	VirtualAddress uint `json:"virtual_address"`
}
