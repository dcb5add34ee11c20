package handlers

import (
	"net/http"

	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/web/server"
)

// HandshakeHandler se usa para chequear la conexión al servidor.
//
// Ejemplo:
//
//	func main() {
//		mux := http.NewServeMux()
//		mux.HandleFunc("GET /kernel", handlers.HandshakeHandler("Kernel en funcionamiento"))
//	}
func HandshakeHandler(message string) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		server.SendJsonResponse(writer, message)
	}
}

// SnapshotHandler responde con el JSON de lo que devuelva snapshot en cada
// request. Sirve para endpoints de solo lectura.
func SnapshotHandler[T any](snapshot func() T) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		server.SendJsonResponse(writer, snapshot())
	}
}
