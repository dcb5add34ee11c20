package services

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/memoria/helpers"
)

// DumpProcessMemory escribe en dumpDir un archivo con la tabla de páginas y
// los marcos del proceso. Devuelve la ruta del archivo creado.
func (manager *MemoryManager) DumpProcessMemory(space AddressSpace, dumpDir string) (string, error) {
	pid := space.ProcessID()
	slog.Info(fmt.Sprintf("## PID: %d - Memory Dump solicitado", pid))

	if err := helpers.CreateDirectory(dumpDir); err != nil {
		return "", err
	}
	dumpFilePath := filepath.Join(dumpDir, helpers.GetDumpName(pid))

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("PID: %d - Páginas virtuales: %d - Tamaño de página: %d KB\n",
		pid, space.VirtualSizeInPages(), manager.config.PageSizeKB))
	builder.WriteString("Tabla de páginas:\n")
	mappings := space.PageTable().Mappings()
	for page := 0; page < space.VirtualSizeInPages(); page++ {
		entry, ok := mappings[page]
		switch {
		case !ok:
			builder.WriteString(fmt.Sprintf("  %d -> sin entrada\n", page))
		case entry.Present:
			builder.WriteString(fmt.Sprintf("  %d -> marco %d\n", page, entry.Frame))
		default:
			builder.WriteString(fmt.Sprintf("  %d -> ausente\n", page))
		}
	}
	builder.WriteString(fmt.Sprintf("Marcos ocupados: %v\n", manager.OwnedFrames(pid)))
	if metrics, ok := manager.ProcessMetrics(pid); ok {
		builder.WriteString(fmt.Sprintf("Accesos: %d - Hits: %d - Page faults: %d - Desalojos: %d\n",
			metrics.Accesses, metrics.Hits, metrics.PageFaults, metrics.Evictions))
	}

	if err := os.WriteFile(dumpFilePath, []byte(builder.String()), 0644); err != nil {
		slog.Error(fmt.Sprintf("error al escribir el archivo de dump: %v", err))
		return "", fmt.Errorf("fallo al escribir el dump del PID %d: %w", pid, err)
	}

	slog.Info(fmt.Sprintf("## PID: %d - Memory Dump completado en %s", pid, dumpFilePath))
	return dumpFilePath, nil
}
