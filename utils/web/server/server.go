package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// ErrorResponse es el cuerpo que se devuelve cuando una request falla.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// InitServer levanta el servidor sobre el mux dado (nil usa http.DefaultServeMux).
// En caso de no poder levantarlo retorna un error.
//
// Ejemplo:
//
//	func main() {
//		mux := http.NewServeMux()
//		if err := server.InitServer(8001, mux); err != nil {
//			panic(err)
//		}
//	}
func InitServer(port int, handler http.Handler) error {
	addr := ":" + strconv.Itoa(port)

	slog.Info(fmt.Sprintf("Servidor escuchando en el puerto %d", port))
	err := http.ListenAndServe(addr, handler)
	if err != nil {
		slog.Error(fmt.Sprintf("Error al escuchar en el puerto %s: %v", addr, err))
	}
	return err
}

// SendJsonResponse retorna la respuesta del servidor en formato JSON con status 200.
//
// Ejemplo:
//
//	func HandshakeHandler(message string) func(http.ResponseWriter, *http.Request) {
//		return func(writer http.ResponseWriter, request *http.Request) {
//			server.SendJsonResponse(writer, message)
//		}
//	}
func SendJsonResponse(writer http.ResponseWriter, data any) {
	sendJson(writer, http.StatusOK, data)
}

// SendJsonError retorna un ErrorResponse con el status indicado.
func SendJsonError(writer http.ResponseWriter, status int, message string) {
	sendJson(writer, status, ErrorResponse{Status: "error", Message: message})
}

// DecodeJsonBody decodifica el body de la request en target. Si falla responde
// 400 y devuelve false.
func DecodeJsonBody(writer http.ResponseWriter, request *http.Request, target any) bool {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		SendJsonError(writer, http.StatusBadRequest, fmt.Sprintf("body inválido: %v", err))
		return false
	}
	return true
}

func sendJson(writer http.ResponseWriter, status int, data any) {
	response, err := json.Marshal(data)
	if err != nil {
		http.Error(writer, "Error al convertir datos a JSON", http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	writer.Write(response)
}
