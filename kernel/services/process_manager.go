package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/models"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/scheduler"
	memoriaServices "github.com/sisoputnfrba/tp-2025-2c-AuraOS/memoria/services"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/list"
)

var (
	ErrProcessNotFound = errors.New("proceso no encontrado")
	ErrThreadNotFound  = errors.New("hilo no encontrado")
	ErrInvalidProcess  = errors.New("parámetros de proceso inválidos")
)

// ProcessManager es dueño de la lista de procesos. Crea procesos e hilos, los
// registra en el Scheduler y libera su memoria al finalizar.
type ProcessManager struct {
	processes         *list.ArrayList[*models.Process]
	scheduler         *scheduler.Scheduler
	memory            *memoriaServices.MemoryManager
	threadsPerProcess int

	nextPID int
	nextTID int
}

func NewProcessManager(scheduler *scheduler.Scheduler, memory *memoriaServices.MemoryManager, threadsPerProcess int) *ProcessManager {
	if threadsPerProcess < 1 {
		threadsPerProcess = 1
	}
	return &ProcessManager{
		processes:         list.NewArrayList[*models.Process](),
		scheduler:         scheduler,
		memory:            memory,
		threadsPerProcess: threadsPerProcess,
		nextPID:           1,
		nextTID:           1,
	}
}

// CreateProcess crea el proceso con threads_per_process hilos READY y los
// admite en el Scheduler.
func (manager *ProcessManager) CreateProcess(name string, burstTime int, memoryKB int) (*models.Process, error) {
	if burstTime < 0 || memoryKB < 0 {
		return nil, fmt.Errorf("%w: ráfaga %d, memoria %d KB", ErrInvalidProcess, burstTime, memoryKB)
	}

	pid := manager.nextPID
	manager.nextPID++
	process := models.NewProcess(pid, name, burstTime, memoryKB, manager.memory.PageSizeKB())
	for i := 0; i < manager.threadsPerProcess; i++ {
		process.AttachThread(manager.newThread(process))
	}

	manager.processes.Add(process)
	manager.scheduler.AdmitProcessThreads(process)

	slog.Info(fmt.Sprintf("## (%d) Se crea el proceso - Nombre: %s - Ráfaga: %d - Tamaño: %d KB - Hilos: %d",
		pid, name, burstTime, memoryKB, len(process.Threads)))
	return process, nil
}

// SpawnThread agrega un hilo READY a un proceso existente.
func (manager *ProcessManager) SpawnThread(pid int) (*models.Thread, error) {
	process, err := manager.FindProcess(pid)
	if err != nil {
		return nil, err
	}
	if process.State == models.ProcessTerminated {
		return nil, fmt.Errorf("%w: el proceso %d está finalizado", ErrProcessNotFound, pid)
	}

	thread := manager.newThread(process)
	process.AttachThread(thread)
	manager.scheduler.Admit(thread)
	return thread, nil
}

func (manager *ProcessManager) newThread(process *models.Process) *models.Thread {
	tid := manager.nextTID
	manager.nextTID++
	return models.NewThread(tid, process)
}

// TerminateProcess finaliza todos los hilos del proceso, libera su memoria y
// lo saca de la lista.
func (manager *ProcessManager) TerminateProcess(pid int) error {
	process, err := manager.FindProcess(pid)
	if err != nil {
		slog.Warn(fmt.Sprintf("No se puede finalizar el proceso %d: %v", pid, err))
		return err
	}

	for _, thread := range process.Threads {
		manager.scheduler.TerminateThread(thread)
	}
	process.Terminate()

	if !process.HasActiveThreads() {
		manager.reclaim(process)
	}
	return nil
}

// TerminateAllProcesses finaliza todos los procesos registrados.
func (manager *ProcessManager) TerminateAllProcesses() {
	for _, process := range manager.processes.GetAll() {
		_ = manager.TerminateProcess(process.PID)
	}
}

// CleanupTerminatedProcesses libera los procesos que ya no tienen hilos
// activos. Devuelve los PIDs liberados.
func (manager *ProcessManager) CleanupTerminatedProcesses() []int {
	var cleaned []int
	for _, process := range manager.processes.GetAll() {
		if process.HasActiveThreads() {
			continue
		}
		process.State = models.ProcessTerminated
		manager.reclaim(process)
		cleaned = append(cleaned, process.PID)
	}
	return cleaned
}

func (manager *ProcessManager) reclaim(process *models.Process) {
	released := manager.memory.ReleaseProcessMemory(process)
	manager.processes.RemoveWhere(func(p *models.Process) bool {
		return p == process
	})
	slog.Info(fmt.Sprintf("## (%d) Finaliza el proceso - Marcos liberados: %d", process.PID, released))
}

// RunCycle ejecuta un ciclo del planificador y actualiza el estado del
// proceso afectado.
func (manager *ProcessManager) RunCycle() scheduler.CycleResult {
	result := manager.scheduler.RunCycle()
	if result.Thread != nil {
		refreshProcessState(result.Thread.Process)
	}
	return result
}

// RunSchedulerCycles ejecuta n ciclos, con una pasada de limpieza después
// de cada uno.
func (manager *ProcessManager) RunSchedulerCycles(n int) []scheduler.CycleResult {
	results := make([]scheduler.CycleResult, 0, max(n, 0))
	for i := 0; i < n; i++ {
		results = append(results, manager.RunCycle())
		manager.CleanupTerminatedProcesses()
	}
	return results
}

func (manager *ProcessManager) SetSchedulingStrategy(name string) error {
	return manager.scheduler.SetStrategy(name)
}

func (manager *ProcessManager) FindProcess(pid int) (*models.Process, error) {
	process, _, found := manager.processes.Find(func(p *models.Process) bool {
		return p.PID == pid
	})
	if !found {
		return nil, fmt.Errorf("%w: PID %d", ErrProcessNotFound, pid)
	}
	return process, nil
}

func (manager *ProcessManager) FindThread(pid int, tid int) (*models.Thread, error) {
	process, err := manager.FindProcess(pid)
	if err != nil {
		return nil, err
	}
	thread, found := process.FindThread(tid)
	if !found {
		return nil, fmt.Errorf("%w: (%d:%d)", ErrThreadNotFound, pid, tid)
	}
	return thread, nil
}

func (manager *ProcessManager) BlockThread(pid int, tid int) error {
	thread, err := manager.FindThread(pid, tid)
	if err != nil {
		return err
	}
	if err := manager.scheduler.BlockThread(thread); err != nil {
		return err
	}
	refreshProcessState(thread.Process)
	return nil
}

func (manager *ProcessManager) UnblockThread(pid int, tid int) error {
	thread, err := manager.FindThread(pid, tid)
	if err != nil {
		return err
	}
	if err := manager.scheduler.UnblockThread(thread); err != nil {
		return err
	}
	refreshProcessState(thread.Process)
	return nil
}

// TerminateThread finaliza un hilo. Si era el último activo, el proceso se
// libera en la próxima limpieza.
func (manager *ProcessManager) TerminateThread(pid int, tid int) error {
	thread, err := manager.FindThread(pid, tid)
	if err != nil {
		return err
	}
	manager.scheduler.TerminateThread(thread)
	refreshProcessState(thread.Process)
	return nil
}

// AccessMemory accede a una dirección virtual del proceso.
func (manager *ProcessManager) AccessMemory(pid int, virtualAddress uint) (memoriaServices.AccessResult, error) {
	process, err := manager.FindProcess(pid)
	if err != nil {
		return memoriaServices.AccessResult{}, err
	}
	return manager.memory.AccessMemory(process, virtualAddress)
}

// DumpProcessMemory escribe el estado de la tabla de páginas del proceso en dumpDir.
func (manager *ProcessManager) DumpProcessMemory(pid int, dumpDir string) (string, error) {
	process, err := manager.FindProcess(pid)
	if err != nil {
		return "", err
	}
	return manager.memory.DumpProcessMemory(process, dumpDir)
}

// Processes devuelve una copia de la lista de procesos.
func (manager *ProcessManager) Processes() []*models.Process {
	return manager.processes.GetAll()
}

func (manager *ProcessManager) ProcessCount() int {
	return manager.processes.Size()
}

func (manager *ProcessManager) Scheduler() *scheduler.Scheduler {
	return manager.scheduler
}

func (manager *ProcessManager) Memory() *memoriaServices.MemoryManager {
	return manager.memory
}

// ListProcesses arma el listado de procesos e hilos para diagnóstico.
func (manager *ProcessManager) ListProcesses() string {
	processes := manager.processes.GetAll()
	if len(processes) == 0 {
		return "No hay procesos"
	}

	var builder strings.Builder
	for _, process := range processes {
		builder.WriteString(process.String())
		builder.WriteString("\n")
		for _, thread := range process.Threads {
			fmt.Fprintf(&builder, "  %s - Ciclos: %d\n", thread, thread.CyclesRun)
		}
	}
	return strings.TrimSuffix(builder.String(), "\n")
}

// refreshProcessState deriva el estado del proceso del de sus hilos: RUNNING
// si alguno está en CPU o listo, WAITING si todos los activos están
// bloqueados. Un proceso NEW sigue NEW hasta su primer despacho.
func refreshProcessState(process *models.Process) {
	if process == nil || process.State == models.ProcessTerminated {
		return
	}

	running, ready, blocked := 0, 0, 0
	for _, thread := range process.Threads {
		switch thread.State {
		case models.ThreadRunning:
			running++
		case models.ThreadReady:
			ready++
		case models.ThreadBlocked:
			blocked++
		}
	}

	previous := process.State
	switch {
	case running > 0:
		process.State = models.ProcessRunning
	case blocked > 0 && ready == 0:
		process.State = models.ProcessWaiting
	case previous == models.ProcessWaiting && ready > 0:
		process.State = models.ProcessRunning
	}

	if previous != process.State {
		slog.Debug(fmt.Sprintf("## (%d) Pasa del estado %s al estado %s", process.PID, previous, process.State))
	}
}
