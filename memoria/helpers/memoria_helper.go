package helpers

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// CreateDirectory crea el directorio dir si no existía.
func CreateDirectory(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		slog.Error(fmt.Sprintf("Error al crear el directorio %s: %v", dir, err))
		return err
	}

	slog.Debug(fmt.Sprintf("Directorio %s creado o ya existía.", dir))
	return nil
}

// GetDumpName arma el nombre del archivo de dump: <pid>-<timestamp>.dmp
func GetDumpName(pid int) string {
	timestamp := time.Now().Format("20060102-150405.000")
	return fmt.Sprintf("%d-%s.dmp", pid, timestamp)
}
