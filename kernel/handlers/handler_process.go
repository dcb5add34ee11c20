package handlers

import (
	"net/http"

	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/models"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/services"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/web/server"
)

func ListProcessesHandler(kernel *services.Kernel) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		processes := []models.ProcessResponse{}
		_ = kernel.Do(func() error {
			for _, process := range kernel.Processes.Processes() {
				processes = append(processes, models.NewProcessResponse(process))
			}
			return nil
		})
		server.SendJsonResponse(writer, processes)
	}
}

func CreateProcessHandler(kernel *services.Kernel) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		var processRequest models.CreateProcessRequest
		if !server.DecodeJsonBody(writer, request, &processRequest) {
			return
		}

		var response models.ProcessResponse
		err := kernel.Do(func() error {
			process, err := kernel.Processes.CreateProcess(processRequest.Name, processRequest.BurstTime, processRequest.MemoryKB)
			if err != nil {
				return err
			}
			response = models.NewProcessResponse(process)
			return nil
		})
		if err != nil {
			sendError(writer, err)
			return
		}
		server.SendJsonResponse(writer, response)
	}
}

func SpawnThreadHandler(kernel *services.Kernel) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		pid, ok := pathInt(writer, request, "pid")
		if !ok {
			return
		}

		var response models.ThreadResponse
		err := kernel.Do(func() error {
			thread, err := kernel.Processes.SpawnThread(pid)
			if err != nil {
				return err
			}
			response = models.NewThreadResponse(thread)
			return nil
		})
		if err != nil {
			sendError(writer, err)
			return
		}
		server.SendJsonResponse(writer, response)
	}
}

// FinishProcessHandler finaliza el proceso indicado en el body.
func FinishProcessHandler(kernel *services.Kernel) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		var processRequest models.ProcessRequest
		if !server.DecodeJsonBody(writer, request, &processRequest) {
			return
		}

		err := kernel.Do(func() error {
			return kernel.Processes.TerminateProcess(processRequest.Pid)
		})
		if err != nil {
			sendError(writer, err)
			return
		}
		server.SendJsonResponse(writer, processRequest)
	}
}

// ThreadActionHandler aplica bloquear, desbloquear o finalizar a un hilo.
func ThreadActionHandler(kernel *services.Kernel) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		var action func(pid int, tid int) error
		switch request.PathValue("accion") {
		case "bloquear":
			action = kernel.Processes.BlockThread
		case "desbloquear":
			action = kernel.Processes.UnblockThread
		case "finalizar":
			action = kernel.Processes.TerminateThread
		default:
			server.SendJsonError(writer, http.StatusNotFound, "acción desconocida: "+request.PathValue("accion"))
			return
		}

		var threadRequest models.ThreadRequest
		if !server.DecodeJsonBody(writer, request, &threadRequest) {
			return
		}

		var response models.ThreadResponse
		err := kernel.Do(func() error {
			if err := action(threadRequest.Pid, threadRequest.Tid); err != nil {
				return err
			}
			thread, err := kernel.Processes.FindThread(threadRequest.Pid, threadRequest.Tid)
			if err != nil {
				return err
			}
			response = models.NewThreadResponse(thread)
			return nil
		})
		if err != nil {
			sendError(writer, err)
			return
		}
		server.SendJsonResponse(writer, response)
	}
}
