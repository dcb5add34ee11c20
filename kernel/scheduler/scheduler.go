package scheduler

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/models"
)

// CycleResult describe lo que pasó en un ciclo del planificador.
type CycleResult struct {
	Idle      bool           `json:"idle"`
	Thread    *models.Thread `json:"-"`
	Preempted bool           `json:"preempted"`
}

func (result CycleResult) String() string {
	if result.Idle {
		return "CPU ociosa"
	}
	if result.Preempted {
		return fmt.Sprintf("(%d:%d) ejecutó y fue desalojado por fin de quantum", result.Thread.PID(), result.Thread.TID)
	}
	return fmt.Sprintf("(%d:%d) ejecutó", result.Thread.PID(), result.Thread.TID)
}

// Scheduler despacha un hilo por ciclo usando el algoritmo activo. No es
// seguro para uso concurrente: quien lo maneje desde varias goroutines tiene
// que serializar las llamadas.
type Scheduler struct {
	algorithm       Algorithm
	quantum         int
	currentThread   *models.Thread
	cyclesInQuantum int

	cycles     int
	idleCycles int
}

func NewScheduler(algorithm Algorithm, quantum int) *Scheduler {
	return &Scheduler{algorithm: algorithm, quantum: quantum}
}

// RunCycle ejecuta un ciclo. Si no hay hilo en CPU toma el próximo del
// algoritmo; si tampoco hay READY el ciclo queda ocioso.
func (scheduler *Scheduler) RunCycle() CycleResult {
	scheduler.cycles++

	if scheduler.currentThread == nil {
		thread, ok := scheduler.algorithm.Next()
		if !ok {
			scheduler.idleCycles++
			slog.Debug("Planificador: no hay hilos en READY, ciclo ocioso")
			return CycleResult{Idle: true}
		}
		scheduler.currentThread = thread
		scheduler.cyclesInQuantum = 0
		slog.Debug(fmt.Sprintf("## (%d:%d) Se despacha el hilo - Algoritmo: %s", thread.PID(), thread.TID, scheduler.algorithm.Name()))
	}

	thread := scheduler.currentThread
	if err := thread.SetState(models.ThreadRunning); err != nil {
		slog.Error(fmt.Sprintf("Planificador: no se pudo ejecutar el hilo: %v", err))
		scheduler.currentThread = nil
		return CycleResult{Idle: true}
	}
	thread.CyclesRun++

	result := CycleResult{Thread: thread}
	if scheduler.algorithm.IsPreemptive() {
		scheduler.cyclesInQuantum++
		if scheduler.cyclesInQuantum >= scheduler.quantum {
			slog.Info(fmt.Sprintf("## (%d:%d) - Desalojado por fin de Quantum", thread.PID(), thread.TID))
			_ = thread.SetState(models.ThreadReady)
			scheduler.algorithm.Requeue(thread)
			scheduler.currentThread = nil
			scheduler.cyclesInQuantum = 0
			result.Preempted = true
		}
	}
	return result
}

// Admit agrega un hilo READY al algoritmo activo.
func (scheduler *Scheduler) Admit(thread *models.Thread) {
	if thread.State != models.ThreadReady {
		slog.Warn(fmt.Sprintf("Planificador: se ignora la admisión del hilo %d en estado %s", thread.TID, thread.State))
		return
	}
	scheduler.algorithm.Admit(thread)
}

// AdmitProcessThreads admite todos los hilos READY del proceso.
func (scheduler *Scheduler) AdmitProcessThreads(process *models.Process) {
	for _, thread := range process.Threads {
		scheduler.Admit(thread)
	}
}

// BlockThread saca al hilo del conjunto READY (o de la CPU) y lo bloquea.
func (scheduler *Scheduler) BlockThread(thread *models.Thread) error {
	if err := thread.SetState(models.ThreadBlocked); err != nil {
		return err
	}
	scheduler.detach(thread)
	return nil
}

// UnblockThread pasa un hilo BLOCKED a READY y lo vuelve a admitir.
func (scheduler *Scheduler) UnblockThread(thread *models.Thread) error {
	if thread.State != models.ThreadBlocked {
		return fmt.Errorf("%w: el hilo %d no está bloqueado (%s)", models.ErrInvalidTransition, thread.TID, thread.State)
	}
	if err := thread.SetState(models.ThreadReady); err != nil {
		return err
	}
	scheduler.algorithm.Admit(thread)
	return nil
}

// TerminateThread finaliza el hilo esté donde esté. Sobre un hilo ya
// finalizado no hace nada.
func (scheduler *Scheduler) TerminateThread(thread *models.Thread) {
	scheduler.detach(thread)
	_ = thread.SetState(models.ThreadTerminated)
}

func (scheduler *Scheduler) detach(thread *models.Thread) {
	scheduler.algorithm.Remove(thread)
	if scheduler.currentThread == thread {
		scheduler.currentThread = nil
		scheduler.cyclesInQuantum = 0
	}
}

// SetStrategy cambia el algoritmo en caliente. Un nombre desconocido se
// rechaza sin tocar el algoritmo activo. Los hilos READY y el que estaba en
// CPU pasan al nuevo algoritmo.
func (scheduler *Scheduler) SetStrategy(name string) error {
	next, err := NewAlgorithm(name)
	if err != nil {
		slog.Warn(fmt.Sprintf("Planificador: %v", err))
		return err
	}

	previous := scheduler.algorithm
	drained := previous.Drain()
	if scheduler.currentThread != nil {
		_ = scheduler.currentThread.SetState(models.ThreadReady)
		drained = append(drained, scheduler.currentThread)
		scheduler.currentThread = nil
		scheduler.cyclesInQuantum = 0
	}

	scheduler.algorithm = next
	for _, thread := range drained {
		next.Admit(thread)
	}

	slog.Info(fmt.Sprintf("Planificador: algoritmo %s reemplazado por %s (%d hilos readmitidos)", previous.Name(), next.Name(), len(drained)))
	return nil
}

func (scheduler *Scheduler) CurrentThread() (*models.Thread, bool) {
	return scheduler.currentThread, scheduler.currentThread != nil
}

func (scheduler *Scheduler) StrategyName() string {
	return scheduler.algorithm.Name()
}

func (scheduler *Scheduler) Quantum() int {
	return scheduler.quantum
}

func (scheduler *Scheduler) ReadyQueueSnapshot() []*models.Thread {
	return scheduler.algorithm.Snapshot()
}

// ReadyCount es la cantidad de hilos esperando en READY.
func (scheduler *Scheduler) ReadyCount() int {
	return len(scheduler.algorithm.Snapshot())
}

// Cycles devuelve los ciclos totales y los ociosos.
func (scheduler *Scheduler) Cycles() (total int, idle int) {
	return scheduler.cycles, scheduler.idleCycles
}

// Status describe el algoritmo, el hilo en CPU y la cola READY.
func (scheduler *Scheduler) Status() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Algoritmo: %s", scheduler.algorithm.Name())
	if scheduler.algorithm.IsPreemptive() {
		fmt.Fprintf(&builder, " (quantum %d)", scheduler.quantum)
	}
	builder.WriteString("\nEn CPU: ")
	if scheduler.currentThread == nil {
		builder.WriteString("ninguno")
	} else {
		fmt.Fprintf(&builder, "(%d:%d)", scheduler.currentThread.PID(), scheduler.currentThread.TID)
	}
	builder.WriteString("\nCola READY: [")
	for i, thread := range scheduler.algorithm.Snapshot() {
		if i > 0 {
			builder.WriteString(", ")
		}
		fmt.Fprintf(&builder, "(%d:%d)", thread.PID(), thread.TID)
	}
	builder.WriteString("]")
	return builder.String()
}
