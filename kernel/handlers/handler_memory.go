package handlers

import (
	"net/http"

	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/models"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/services"
	memoriaServices "github.com/sisoputnfrba/tp-2025-2c-AuraOS/memoria/services"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/web/server"
)

func MemoryAccessHandler(kernel *services.Kernel) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		var accessRequest models.MemoryAccessRequest
		if !server.DecodeJsonBody(writer, request, &accessRequest) {
			return
		}

		var result memoriaServices.AccessResult
		err := kernel.Do(func() error {
			var err error
			result, err = kernel.Processes.AccessMemory(accessRequest.Pid, accessRequest.VirtualAddress)
			return err
		})
		if err != nil {
			sendError(writer, err)
			return
		}
		server.SendJsonResponse(writer, result)
	}
}

func FramesHandler(kernel *services.Kernel) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		var response models.FramesResponse
		_ = kernel.Do(func() error {
			memory := kernel.Memory
			response = models.FramesResponse{
				Algorithm:       memory.AlgorithmName(),
				AlgorithmStatus: memory.AlgorithmStatus(),
				TotalFrames:     memory.FrameCount(),
				FreeFrames:      memory.FreeFrameCount(),
				Map:             memory.FrameMap(),
				Frames:          []memoriaServices.FrameInfo{},
				Stats:           memory.Stats(),
			}
			for _, frame := range memory.Frames() {
				if !frame.Free {
					response.Frames = append(response.Frames, frame)
				}
			}
			return nil
		})
		server.SendJsonResponse(writer, response)
	}
}

// DumpMemoryHandler escribe la tabla de páginas del proceso en dump_path.
func DumpMemoryHandler(kernel *services.Kernel) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		var processRequest models.ProcessRequest
		if !server.DecodeJsonBody(writer, request, &processRequest) {
			return
		}

		var path string
		err := kernel.Do(func() error {
			var err error
			path, err = kernel.Processes.DumpProcessMemory(processRequest.Pid, kernel.Config().DumpPath)
			return err
		})
		if err != nil {
			sendError(writer, err)
			return
		}
		server.SendJsonResponse(writer, models.DumpResponse{Pid: processRequest.Pid, Path: path})
	}
}
