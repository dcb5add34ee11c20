package handlers

import (
	"fmt"
	"net/http"

	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/concurrency"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/models"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/services"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/web/server"
)

func CreateMutexHandler(kernel *services.Kernel) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, mutex := kernel.Mutexes.Create()
		server.SendJsonResponse(writer, models.MutexResponse{Id: id, Locked: mutex.IsLocked()})
	}
}

func GetMutexHandler(kernel *services.Kernel) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, ok := pathInt(writer, request, "id")
		if !ok {
			return
		}
		mutex, found := kernel.Mutexes.Get(id)
		if !found {
			sendError(writer, fmt.Errorf("%w: %d", concurrency.ErrMutexNotFound, id))
			return
		}
		server.SendJsonResponse(writer, models.MutexResponse{Id: id, Locked: mutex.IsLocked()})
	}
}

// MutexActionHandler toma o libera un mutex. Tomar nunca espera: si está
// ocupado responde 409.
func MutexActionHandler(kernel *services.Kernel) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, ok := pathInt(writer, request, "id")
		if !ok {
			return
		}
		mutex, found := kernel.Mutexes.Get(id)
		if !found {
			sendError(writer, fmt.Errorf("%w: %d", concurrency.ErrMutexNotFound, id))
			return
		}

		switch request.PathValue("accion") {
		case "tomar":
			if !mutex.TryAcquire() {
				server.SendJsonError(writer, http.StatusConflict, fmt.Sprintf("el mutex %d está tomado", id))
				return
			}
		case "liberar":
			mutex.Release()
		default:
			server.SendJsonError(writer, http.StatusNotFound, "acción desconocida: "+request.PathValue("accion"))
			return
		}
		server.SendJsonResponse(writer, models.MutexResponse{Id: id, Locked: mutex.IsLocked()})
	}
}

func DestroyMutexHandler(kernel *services.Kernel) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, ok := pathInt(writer, request, "id")
		if !ok {
			return
		}
		if err := kernel.Mutexes.Destroy(id); err != nil {
			sendError(writer, err)
			return
		}
		server.SendJsonResponse(writer, models.MutexResponse{Id: id})
	}
}
