package models

import memoriaServices "github.com/sisoputnfrba/tp-2025-2c-AuraOS/memoria/services"

// ThreadResponse es la vista JSON de un hilo.
type ThreadResponse struct {
	Tid       int         `json:"tid"`
	Pid       int         `json:"pid"`
	State     ThreadState `json:"state"`
	CyclesRun int         `json:"cycles_run"`
}

// ProcessResponse es la vista JSON de un proceso y sus hilos.
type ProcessResponse struct {
	Pid       int              `json:"pid"`
	Name      string           `json:"name"`
	BurstTime int              `json:"burst_time"`
	MemoryKB  int              `json:"memory_kb"`
	Pages     int              `json:"pages"`
	Resident  int              `json:"resident_pages"`
	State     ProcessState     `json:"state"`
	Threads   []ThreadResponse `json:"threads"`
}

// KernelStatusResponse resume el estado general del kernel.
type KernelStatusResponse struct {
	Running         bool            `json:"running"`
	Scheduler       string          `json:"scheduler"`
	Quantum         int             `json:"quantum"`
	Processes       int             `json:"processes"`
	ReadyThreads    int             `json:"ready_threads"`
	CurrentThread   *ThreadResponse `json:"current_thread,omitempty"`
	Cycles          int             `json:"cycles"`
	IdleCycles      int             `json:"idle_cycles"`
	TotalFrames     int             `json:"total_frames"`
	FreeFrames      int             `json:"free_frames"`
	PageReplacement string          `json:"page_replacement"`
}

// CycleEntry describe un ciclo ejecutado.
type CycleEntry struct {
	Idle      bool `json:"idle"`
	Pid       int  `json:"pid,omitempty"`
	Tid       int  `json:"tid,omitempty"`
	Preempted bool `json:"preempted"`
}

// CyclesResponse es el resultado de correr ciclos del planificador.
type CyclesResponse struct {
	Cycles   []CycleEntry `json:"cycles"`
	Finished []int        `json:"finished"`
}

// QueueResponse es la foto del planificador.
type QueueResponse struct {
	Algorithm string           `json:"algorithm"`
	Current   *ThreadResponse  `json:"current,omitempty"`
	Ready     []ThreadResponse `json:"ready"`
	Status    string           `json:"status"`
}

// MutexResponse es la vista JSON de un mutex.
type MutexResponse struct {
	Id     int  `json:"id"`
	Locked bool `json:"locked"`
}

// FramesResponse es la foto de la memoria física. Frames lista solo los
// marcos ocupados.
type FramesResponse struct {
	Algorithm       string                      `json:"algorithm"`
	AlgorithmStatus string                      `json:"algorithm_status"`
	TotalFrames     int                         `json:"total_frames"`
	FreeFrames      int                         `json:"free_frames"`
	Map             string                      `json:"map"`
	Frames          []memoriaServices.FrameInfo `json:"frames"`
	Stats           memoriaServices.Metrics     `json:"stats"`
}

// DumpResponse indica dónde quedó el dump de memoria de un proceso.
type DumpResponse struct {
	Pid  int    `json:"pid"`
	Path string `json:"path"`
}

func NewThreadResponse(thread *Thread) ThreadResponse {
	return ThreadResponse{
		Tid:       thread.TID,
		Pid:       thread.PID(),
		State:     thread.State,
		CyclesRun: thread.CyclesRun,
	}
}

func NewThreadResponses(threads []*Thread) []ThreadResponse {
	responses := make([]ThreadResponse, 0, len(threads))
	for _, thread := range threads {
		responses = append(responses, NewThreadResponse(thread))
	}
	return responses
}

func NewProcessResponse(process *Process) ProcessResponse {
	return ProcessResponse{
		Pid:       process.PID,
		Name:      process.Name,
		BurstTime: process.BurstTime,
		MemoryKB:  process.MemoryKB,
		Pages:     process.VirtualSizeInPages(),
		Resident:  process.PageTable().ResidentCount(),
		State:     process.State,
		Threads:   NewThreadResponses(process.Threads),
	}
}
