package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// InitLogger configura slog para loguear en consola y, si se indica una ruta,
// también en archivo.
//
// Parámetros:
//   - logPath: ubicación del archivo de log. Vacío loguea solo por consola.
//   - logLevel: nivel de logueo definido en el archivo de config.
//
// Ejemplo:
//
//	func main() {
//		if err := log.InitLogger("./logs/kernel.log", "INFO"); err != nil {
//			panic(err)
//		}
//	}
func InitLogger(logPath string, logLevel string) error {
	var writer io.Writer = os.Stdout

	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
		if err != nil {
			return fmt.Errorf("no se pudo abrir el archivo de log %s: %w", logPath, err)
		}
		// Consola y archivo a la vez
		writer = io.MultiWriter(os.Stdout, logFile)
	}

	level, err := ConvertStringToLogLevel(logLevel)
	slog.SetDefault(NewLogger(writer, level))

	// El nivel inválido no es fatal, se avisa y se sigue con INFO
	if err != nil {
		slog.Warn(err.Error())
	}

	slog.Debug("Se ha configurado correctamente el logger.")
	return nil
}

// NewLogger arma un logger de texto sobre writer con el nivel dado.
func NewLogger(writer io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// ConvertStringToLogLevel traduce el nivel del config al tipo slog.Level.
// No distingue mayúsculas de minúsculas.
func ConvertStringToLogLevel(levelStr string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("no existe el nivel %q, se coloca INFO por defecto", levelStr)
	}
}
