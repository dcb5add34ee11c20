package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/concurrency"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/models"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/scheduler"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/memoria/replacement"
	memoriaServices "github.com/sisoputnfrba/tp-2025-2c-AuraOS/memoria/services"
)

// Kernel agrupa los componentes del sistema. Se construye una sola vez en
// main y se pasa a quien lo necesite.
//
// El planificador y la memoria no son seguros para uso concurrente: todo
// acceso desde goroutines (handlers HTTP, driver de ciclos) pasa por Do.
type Kernel struct {
	config models.Config

	Memory    *memoriaServices.MemoryManager
	Processes *ProcessManager
	Mutexes   *concurrency.MutexManager
	Health    *HealthMonitor

	lock    *concurrency.Mutex
	running atomic.Bool
}

// NewKernel arma memoria, planificador, gestor de procesos y de mutex a
// partir de la configuración.
func NewKernel(config models.Config) (*Kernel, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuración inválida: %w", err)
	}

	pageReplacement, err := replacement.New(config.PageReplacement)
	if err != nil {
		return nil, err
	}
	schedulingAlgorithm, err := scheduler.NewAlgorithm(config.SchedulerAlgorithm)
	if err != nil {
		return nil, err
	}

	memory := memoriaServices.NewMemoryManager(config.MemoryConfig(), pageReplacement)
	planner := scheduler.NewScheduler(schedulingAlgorithm, config.Quantum)
	processes := NewProcessManager(planner, memory, config.ThreadsPerProcess)
	mutexes := concurrency.NewMutexManager()

	return &Kernel{
		config:    config,
		Memory:    memory,
		Processes: processes,
		Mutexes:   mutexes,
		Health:    NewHealthMonitor(processes, mutexes),
		lock:      concurrency.NewMutex(),
	}, nil
}

func (kernel *Kernel) Config() models.Config {
	return kernel.config
}

// Boot marca el kernel como en funcionamiento.
func (kernel *Kernel) Boot() {
	if !kernel.running.CompareAndSwap(false, true) {
		return
	}
	slog.Info(fmt.Sprintf("Kernel iniciado - Memoria: %d KB en %d marcos de %d KB - Reemplazo: %s - Planificador: %s",
		kernel.config.TotalMemoryKB, kernel.Memory.FrameCount(), kernel.config.PageSizeKB,
		kernel.Memory.AlgorithmName(), kernel.Processes.Scheduler().StrategyName()))
}

// Shutdown finaliza todos los procesos y detiene el kernel.
func (kernel *Kernel) Shutdown() {
	if !kernel.running.CompareAndSwap(true, false) {
		return
	}
	_ = kernel.Do(func() error {
		kernel.Processes.TerminateAllProcesses()
		return nil
	})
	slog.Info("Kernel detenido")
}

func (kernel *Kernel) Running() bool {
	return kernel.running.Load()
}

// Do ejecuta fn con el lock del kernel tomado.
func (kernel *Kernel) Do(fn func() error) error {
	kernel.lock.Acquire()
	defer kernel.lock.Release()
	return fn()
}

// RunCycleDriver ejecuta un ciclo del planificador cada delay hasta que se
// cancele ctx o el kernel se detenga.
func (kernel *Kernel) RunCycleDriver(ctx context.Context, delay time.Duration) {
	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	slog.Debug(fmt.Sprintf("Driver de ciclos iniciado cada %v", delay))
	for {
		select {
		case <-ctx.Done():
			slog.Debug("Driver de ciclos detenido")
			return
		case <-ticker.C:
			if !kernel.Running() {
				return
			}
			_ = kernel.Do(func() error {
				kernel.Processes.RunSchedulerCycles(1)
				return nil
			})
		}
	}
}
