package models

import (
	"errors"
	"fmt"
	"log/slog"
)

var ErrInvalidTransition = errors.New("transición de estado inválida")

type ThreadState string

const (
	ThreadReady      ThreadState = "READY"
	ThreadRunning    ThreadState = "RUNNING"
	ThreadBlocked    ThreadState = "BLOCKED"
	ThreadTerminated ThreadState = "TERMINATED"
)

// Transiciones válidas desde cada estado. TERMINATED no tiene salida.
var threadTransitions = map[ThreadState][]ThreadState{
	ThreadReady:   {ThreadRunning, ThreadBlocked, ThreadTerminated},
	ThreadRunning: {ThreadReady, ThreadBlocked, ThreadTerminated},
	ThreadBlocked: {ThreadReady, ThreadTerminated},
}

// Thread es la unidad que planifica el Scheduler. Pertenece a un único
// proceso; Process es solo una referencia.
type Thread struct {
	TID     int
	Process *Process
	State   ThreadState

	// ME cuenta cuántas veces el hilo entró a cada estado.
	ME map[ThreadState]int
	// CyclesRun es la cantidad de ciclos de CPU que ejecutó.
	CyclesRun int
}

// NewThread crea un hilo en READY.
func NewThread(tid int, process *Process) *Thread {
	thread := &Thread{
		TID:     tid,
		Process: process,
		State:   ThreadReady,
		ME:      map[ThreadState]int{ThreadReady: 1},
	}
	slog.Debug(fmt.Sprintf("## (%d:%d) Se crea el hilo - Estado : READY", thread.PID(), tid))
	return thread
}

// PID del proceso dueño.
func (thread *Thread) PID() int {
	if thread.Process == nil {
		return 0
	}
	return thread.Process.PID
}

// BurstTime del proceso dueño; es la métrica que ordena SJF.
func (thread *Thread) BurstTime() int {
	if thread.Process == nil {
		return 0
	}
	return thread.Process.BurstTime
}

// CanTransition indica si el hilo puede pasar a next.
func (thread *Thread) CanTransition(next ThreadState) bool {
	for _, allowed := range threadTransitions[thread.State] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SetState cambia el estado del hilo. Pasar al mismo estado no hace nada.
func (thread *Thread) SetState(next ThreadState) error {
	if thread.State == next {
		return nil
	}
	if !thread.CanTransition(next) {
		return fmt.Errorf("%w: hilo %d de %s a %s", ErrInvalidTransition, thread.TID, thread.State, next)
	}

	slog.Info(fmt.Sprintf("## (%d:%d) Pasa del estado %s al estado %s", thread.PID(), thread.TID, thread.State, next))
	thread.State = next
	thread.ME[next]++
	return nil
}

func (thread *Thread) IsTerminated() bool {
	return thread.State == ThreadTerminated
}

func (thread *Thread) String() string {
	return fmt.Sprintf("Thread[TID=%d, PID=%d, Estado=%s]", thread.TID, thread.PID(), thread.State)
}
