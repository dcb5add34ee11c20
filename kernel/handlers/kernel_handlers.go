package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/concurrency"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/models"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/scheduler"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/services"
	memoriaServices "github.com/sisoputnfrba/tp-2025-2c-AuraOS/memoria/services"
	webHandlers "github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/web/handlers"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/web/server"
)

// RegisterRoutes registra todos los endpoints del kernel en mux.
func RegisterRoutes(mux *http.ServeMux, kernel *services.Kernel) {
	mux.HandleFunc("GET /", webHandlers.HandshakeHandler("Bienvenido al módulo de Kernel"))
	mux.HandleFunc("GET /kernel", KernelStatusHandler(kernel))

	// Procesos e hilos
	mux.HandleFunc("GET /kernel/procesos", ListProcessesHandler(kernel))
	mux.HandleFunc("POST /kernel/proceso", CreateProcessHandler(kernel))
	mux.HandleFunc("POST /kernel/proceso/{pid}/hilo", SpawnThreadHandler(kernel))
	mux.HandleFunc("POST /kernel/finalizarProceso", FinishProcessHandler(kernel))
	mux.HandleFunc("POST /kernel/hilo/{accion}", ThreadActionHandler(kernel))

	// Planificador
	mux.HandleFunc("POST /kernel/ciclos", RunCyclesHandler(kernel))
	mux.HandleFunc("POST /kernel/planificador", SetStrategyHandler(kernel))
	mux.HandleFunc("GET /kernel/cola", ReadyQueueHandler(kernel))

	// Memoria
	mux.HandleFunc("POST /memoria/acceso", MemoryAccessHandler(kernel))
	mux.HandleFunc("GET /memoria/marcos", FramesHandler(kernel))
	mux.HandleFunc("POST /memoria/dump", DumpMemoryHandler(kernel))

	// Mutex
	mux.HandleFunc("POST /kernel/mutex", CreateMutexHandler(kernel))
	mux.HandleFunc("GET /kernel/mutex/{id}", GetMutexHandler(kernel))
	mux.HandleFunc("POST /kernel/mutex/{id}/{accion}", MutexActionHandler(kernel))
	mux.HandleFunc("DELETE /kernel/mutex/{id}", DestroyMutexHandler(kernel))

	mux.HandleFunc("GET /kernel/salud", HealthHandler(kernel))
}

func KernelStatusHandler(kernel *services.Kernel) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		var status models.KernelStatusResponse
		_ = kernel.Do(func() error {
			planner := kernel.Processes.Scheduler()
			cycles, idle := planner.Cycles()
			status = models.KernelStatusResponse{
				Running:         kernel.Running(),
				Scheduler:       planner.StrategyName(),
				Quantum:         planner.Quantum(),
				Processes:       kernel.Processes.ProcessCount(),
				ReadyThreads:    planner.ReadyCount(),
				Cycles:          cycles,
				IdleCycles:      idle,
				TotalFrames:     kernel.Memory.FrameCount(),
				FreeFrames:      kernel.Memory.FreeFrameCount(),
				PageReplacement: kernel.Memory.AlgorithmName(),
			}
			if current, running := planner.CurrentThread(); running {
				response := models.NewThreadResponse(current)
				status.CurrentThread = &response
			}
			return nil
		})
		server.SendJsonResponse(writer, status)
	}
}

func RunCyclesHandler(kernel *services.Kernel) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		cyclesRequest := models.CyclesRequest{Cycles: 1}
		if request.ContentLength != 0 && !server.DecodeJsonBody(writer, request, &cyclesRequest) {
			return
		}
		if cyclesRequest.Cycles <= 0 {
			server.SendJsonError(writer, http.StatusBadRequest, "la cantidad de ciclos debe ser positiva")
			return
		}
		if maxCycles := kernel.Config().MaxCycles; cyclesRequest.Cycles > maxCycles {
			server.SendJsonError(writer, http.StatusBadRequest, fmt.Sprintf("se pueden pedir como máximo %d ciclos", maxCycles))
			return
		}

		response := models.CyclesResponse{Cycles: []models.CycleEntry{}, Finished: []int{}}
		_ = kernel.Do(func() error {
			for i := 0; i < cyclesRequest.Cycles; i++ {
				response.Cycles = append(response.Cycles, newCycleEntry(kernel.Processes.RunCycle()))
				response.Finished = append(response.Finished, kernel.Processes.CleanupTerminatedProcesses()...)
			}
			return nil
		})

		slog.Debug(fmt.Sprintf("Se ejecutaron %d ciclos", len(response.Cycles)))
		server.SendJsonResponse(writer, response)
	}
}

func newCycleEntry(result scheduler.CycleResult) models.CycleEntry {
	entry := models.CycleEntry{Idle: result.Idle, Preempted: result.Preempted}
	if result.Thread != nil {
		entry.Pid = result.Thread.PID()
		entry.Tid = result.Thread.TID
	}
	return entry
}

func SetStrategyHandler(kernel *services.Kernel) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		var strategyRequest models.StrategyRequest
		if !server.DecodeJsonBody(writer, request, &strategyRequest) {
			return
		}

		var name string
		err := kernel.Do(func() error {
			if err := kernel.Processes.SetSchedulingStrategy(strategyRequest.Algorithm); err != nil {
				return err
			}
			name = kernel.Processes.Scheduler().StrategyName()
			return nil
		})
		if err != nil {
			sendError(writer, err)
			return
		}
		server.SendJsonResponse(writer, map[string]string{"algorithm": name})
	}
}

func ReadyQueueHandler(kernel *services.Kernel) func(http.ResponseWriter, *http.Request) {
	return webHandlers.SnapshotHandler(func() models.QueueResponse {
		var response models.QueueResponse
		_ = kernel.Do(func() error {
			planner := kernel.Processes.Scheduler()
			response = models.QueueResponse{
				Algorithm: planner.StrategyName(),
				Ready:     models.NewThreadResponses(planner.ReadyQueueSnapshot()),
				Status:    planner.Status(),
			}
			if current, running := planner.CurrentThread(); running {
				thread := models.NewThreadResponse(current)
				response.Current = &thread
			}
			return nil
		})
		return response
	})
}

func HealthHandler(kernel *services.Kernel) func(http.ResponseWriter, *http.Request) {
	return webHandlers.SnapshotHandler(func() []services.Anomaly {
		var anomalies []services.Anomaly
		_ = kernel.Do(func() error {
			anomalies = kernel.Health.RunDiagnostics()
			return nil
		})
		return anomalies
	})
}

// sendError traduce los errores del kernel a un status HTTP.
func sendError(writer http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrProcessNotFound),
		errors.Is(err, services.ErrThreadNotFound),
		errors.Is(err, concurrency.ErrMutexNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidProcess),
		errors.Is(err, scheduler.ErrUnknownAlgorithm):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, memoriaServices.ErrUnresolvableFault):
		status = http.StatusConflict
	case errors.Is(err, memoriaServices.ErrOutOfBounds):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		slog.Error(fmt.Sprintf("Error inesperado: %v", err))
	}
	server.SendJsonError(writer, status, err.Error())
}

func pathInt(writer http.ResponseWriter, request *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(request.PathValue(name))
	if err != nil {
		server.SendJsonError(writer, http.StatusBadRequest, fmt.Sprintf("%s inválido: %q", name, request.PathValue(name)))
		return 0, false
	}
	return value, true
}
