package models

import (
	"fmt"

	memoriaModels "github.com/sisoputnfrba/tp-2025-2c-AuraOS/memoria/models"
)

type ProcessState string

const (
	ProcessNew        ProcessState = "NEW"
	ProcessRunning    ProcessState = "RUNNING"
	ProcessWaiting    ProcessState = "WAITING"
	ProcessTerminated ProcessState = "TERMINATED"
)

// Process es dueño de sus hilos y de su tabla de páginas.
type Process struct {
	PID        int
	Name       string
	BurstTime  int // métrica de planificación, no es tiempo real
	MemoryKB   int
	PageSizeKB int
	State      ProcessState
	Threads    []*Thread

	pageTable *memoriaModels.PageTable
}

func NewProcess(pid int, name string, burstTime int, memoryKB int, pageSizeKB int) *Process {
	return &Process{
		PID:        pid,
		Name:       name,
		BurstTime:  burstTime,
		MemoryKB:   memoryKB,
		PageSizeKB: pageSizeKB,
		State:      ProcessNew,
		Threads:    []*Thread{},
		pageTable:  memoriaModels.NewPageTable(),
	}
}

func (process *Process) ProcessID() int {
	return process.PID
}

func (process *Process) PageTable() *memoriaModels.PageTable {
	return process.pageTable
}

// VirtualSizeInPages es ceil(MemoryKB / PageSizeKB).
func (process *Process) VirtualSizeInPages() int {
	if process.PageSizeKB <= 0 || process.MemoryKB <= 0 {
		return 0
	}
	pages := process.MemoryKB / process.PageSizeKB
	if process.MemoryKB%process.PageSizeKB != 0 {
		pages++
	}
	return pages
}

// AttachThread agrega el hilo al proceso y lo apunta a él.
func (process *Process) AttachThread(thread *Thread) {
	thread.Process = process
	process.Threads = append(process.Threads, thread)
}

// FindThread busca un hilo del proceso por TID.
func (process *Process) FindThread(tid int) (*Thread, bool) {
	for _, thread := range process.Threads {
		if thread.TID == tid {
			return thread, true
		}
	}
	return nil, false
}

// HasActiveThreads indica si queda algún hilo sin terminar.
func (process *Process) HasActiveThreads() bool {
	for _, thread := range process.Threads {
		if !thread.IsTerminated() {
			return true
		}
	}
	return false
}

// Terminate marca el proceso como TERMINATED y suelta sus hilos. Sacarlos del
// Scheduler es responsabilidad de quien llama.
func (process *Process) Terminate() {
	process.State = ProcessTerminated
	process.Threads = nil
}

func (process *Process) String() string {
	return fmt.Sprintf("Process{PID=%d, Nombre='%s', Ráfaga=%d, Memoria=%d KB, Páginas=%d, Estado=%s}",
		process.PID, process.Name, process.BurstTime, process.MemoryKB, process.VirtualSizeInPages(), process.State)
}
