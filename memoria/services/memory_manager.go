package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/memoria/models"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/memoria/replacement"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/list"
)

var (
	ErrOutOfBounds       = errors.New("dirección virtual fuera de los límites del proceso")
	ErrUnresolvableFault = errors.New("page fault sin marco libre ni víctima")
	ErrFrameAlreadyFree  = errors.New("el marco ya está libre")
	ErrInvalidFrame      = errors.New("número de marco inválido")
)

// AddressSpace es lo que la memoria necesita de un proceso.
type AddressSpace interface {
	ProcessID() int
	VirtualSizeInPages() int
	PageTable() *models.PageTable
}

// Metrics cuenta la actividad de memoria, global o por proceso.
type Metrics struct {
	Accesses   int `json:"accesses"`
	Hits       int `json:"hits"`
	PageFaults int `json:"page_faults"`
	Evictions  int `json:"evictions"`
}

// EvictedPage identifica la página desalojada para resolver un page fault.
type EvictedPage struct {
	Frame      int `json:"frame"`
	PID        int `json:"pid"`
	PageNumber int `json:"page_number"`
}

// AccessResult describe cómo se resolvió un acceso exitoso.
type AccessResult struct {
	PID            int          `json:"pid"`
	VirtualAddress uint         `json:"virtual_address"`
	PageNumber     int          `json:"page_number"`
	Frame          int          `json:"frame"`
	Hit            bool         `json:"hit"`
	Evicted        *EvictedPage `json:"evicted,omitempty"`
}

// FrameInfo es la vista de un marco para diagnóstico.
type FrameInfo struct {
	Frame      int  `json:"frame"`
	Free       bool `json:"free"`
	PID        int  `json:"pid,omitempty"`
	PageNumber int  `json:"page_number,omitempty"`
}

// MemoryManager administra la memoria física con paginación bajo demanda.
// No es seguro para uso concurrente: quien lo comparta entre goroutines debe
// serializar las llamadas.
type MemoryManager struct {
	config     models.Config
	frames     []models.Frame
	freeFrames *list.ArrayList[int]
	algorithm  replacement.Algorithm

	// Tabla de páginas de cada proceso con páginas cargadas, para invalidar
	// la entrada del dueño cuando se desaloja uno de sus marcos.
	pageTables map[int]*models.PageTable

	stats   Metrics
	metrics map[int]*Metrics
}

// NewMemoryManager crea floor(MemorySizeKB / PageSizeKB) marcos libres.
func NewMemoryManager(config models.Config, algorithm replacement.Algorithm) *MemoryManager {
	frameCount := config.FrameCount()
	manager := &MemoryManager{
		config:     config,
		frames:     make([]models.Frame, frameCount),
		freeFrames: &list.ArrayList[int]{},
		algorithm:  algorithm,
		pageTables: make(map[int]*models.PageTable),
		metrics:    make(map[int]*Metrics),
	}
	for i := range manager.frames {
		manager.frames[i] = models.NewFrame()
		manager.freeFrames.Add(i)
	}

	slog.Info(fmt.Sprintf("Memoria: %d marcos de %d KB, reemplazo %s", frameCount, config.PageSizeKB, algorithm.Name()))
	return manager
}

// AccessMemory simula el acceso de un proceso a una dirección virtual.
// Devuelve ErrOutOfBounds si la página no pertenece al proceso y
// ErrUnresolvableFault si no hay marco libre ni víctima; en ambos casos no se
// modifica ningún marco.
func (manager *MemoryManager) AccessMemory(space AddressSpace, virtualAddress uint) (AccessResult, error) {
	pid := space.ProcessID()
	result := AccessResult{PID: pid, VirtualAddress: virtualAddress}

	pageSize := manager.config.PageSizeBytes()
	pages := space.VirtualSizeInPages()
	if pageSize == 0 || pages <= 0 || virtualAddress/pageSize >= uint(pages) {
		slog.Warn(fmt.Sprintf("## PID: %d - Acceso inválido a la dirección virtual %d", pid, virtualAddress))
		return result, fmt.Errorf("%w: pid %d, dirección %d", ErrOutOfBounds, pid, virtualAddress)
	}
	pageNumber := int(virtualAddress / pageSize)
	result.PageNumber = pageNumber

	metrics := manager.processMetrics(pid)
	metrics.Accesses++
	manager.stats.Accesses++

	if frameNumber, ok := space.PageTable().Lookup(pageNumber); ok {
		manager.algorithm.OnAccess(frameNumber)
		metrics.Hits++
		manager.stats.Hits++
		result.Frame = frameNumber
		result.Hit = true
		slog.Debug(fmt.Sprintf("## PID: %d - Página %d presente en el marco %d", pid, pageNumber, frameNumber))
		return result, nil
	}

	metrics.PageFaults++
	manager.stats.PageFaults++
	slog.Info(fmt.Sprintf("## PID: %d - Page fault - Página: %d", pid, pageNumber))

	frameNumber, evicted, err := manager.handlePageFault()
	if err != nil {
		slog.Error(fmt.Sprintf("## PID: %d - No se pudo resolver el page fault de la página %d", pid, pageNumber))
		return result, fmt.Errorf("%w: pid %d, página %d", ErrUnresolvableFault, pid, pageNumber)
	}

	manager.loadPageIntoFrame(space, pageNumber, frameNumber)
	result.Frame = frameNumber
	result.Evicted = evicted
	return result, nil
}

// handlePageFault consigue un marco: primero de la lista de libres y si no
// hay, desalojando la víctima del algoritmo.
func (manager *MemoryManager) handlePageFault() (int, *EvictedPage, error) {
	if frameNumber, err := manager.freeFrames.Dequeue(); err == nil {
		return frameNumber, nil, nil
	}

	victim, ok := manager.algorithm.FindVictim()
	if !ok {
		return 0, nil, ErrUnresolvableFault
	}
	return victim, manager.evict(victim), nil
}

// evict libera el marco víctima e invalida la entrada de su dueño.
func (manager *MemoryManager) evict(frameNumber int) *EvictedPage {
	frame := &manager.frames[frameNumber]
	if frame.Free {
		return nil
	}

	evicted := &EvictedPage{Frame: frameNumber, PID: frame.PID, PageNumber: frame.PageNumber}
	if table, ok := manager.pageTables[frame.PID]; ok {
		table.Invalidate(frame.PageNumber)
	}
	manager.processMetrics(frame.PID).Evictions++
	manager.stats.Evictions++

	slog.Info(fmt.Sprintf("## Reemplazo %s - Marco: %d - Sale PID: %d Página: %d",
		manager.algorithm.Name(), frameNumber, frame.PID, frame.PageNumber))

	frame.Release()
	return evicted
}

func (manager *MemoryManager) loadPageIntoFrame(space AddressSpace, pageNumber int, frameNumber int) {
	pid := space.ProcessID()

	manager.frames[frameNumber].Allocate(pid, pageNumber)
	space.PageTable().Map(pageNumber, frameNumber)
	manager.pageTables[pid] = space.PageTable()
	manager.algorithm.OnLoad(frameNumber)

	slog.Info(fmt.Sprintf("## PID: %d - Página %d cargada en el marco %d", pid, pageNumber, frameNumber))
}

// ReleaseProcessMemory libera todos los marcos del proceso y marca ausentes
// sus páginas. Devuelve la cantidad de marcos liberados.
func (manager *MemoryManager) ReleaseProcessMemory(space AddressSpace) int {
	pid := space.ProcessID()
	table := space.PageTable()

	released := 0
	for i := range manager.frames {
		frame := &manager.frames[i]
		if frame.Free || frame.PID != pid {
			continue
		}
		pageNumber := frame.PageNumber
		manager.releaseFrame(i)
		table.Invalidate(pageNumber)
		released++
		slog.Debug(fmt.Sprintf("## PID: %d - Marco %d liberado (página %d)", pid, i, pageNumber))
	}
	delete(manager.pageTables, pid)

	if metrics, ok := manager.metrics[pid]; ok {
		slog.Info(fmt.Sprintf("## PID: %d - Memoria liberada - Marcos: %d - Métricas - Accesos: %d; Hits: %d; Page faults: %d; Desalojos: %d",
			pid, released, metrics.Accesses, metrics.Hits, metrics.PageFaults, metrics.Evictions))
		delete(manager.metrics, pid)
	} else {
		slog.Info(fmt.Sprintf("## PID: %d - Memoria liberada - Marcos: %d", pid, released))
	}
	return released
}

// FreeFrame libera un marco puntual e invalida la página que contenía.
// Liberar un marco libre no hace nada y devuelve ErrFrameAlreadyFree.
func (manager *MemoryManager) FreeFrame(frameNumber int) error {
	if frameNumber < 0 || frameNumber >= len(manager.frames) {
		return fmt.Errorf("%w: %d", ErrInvalidFrame, frameNumber)
	}
	frame := manager.frames[frameNumber]
	if frame.Free {
		slog.Warn(fmt.Sprintf("Memoria: se intentó liberar el marco %d que ya estaba libre", frameNumber))
		return fmt.Errorf("%w: %d", ErrFrameAlreadyFree, frameNumber)
	}

	if table, ok := manager.pageTables[frame.PID]; ok {
		table.Invalidate(frame.PageNumber)
	}
	manager.releaseFrame(frameNumber)
	return nil
}

func (manager *MemoryManager) releaseFrame(frameNumber int) {
	manager.frames[frameNumber].Release()
	manager.freeFrames.Add(frameNumber)
	manager.algorithm.OnFrameFree(frameNumber)
}

func (manager *MemoryManager) processMetrics(pid int) *Metrics {
	metrics, ok := manager.metrics[pid]
	if !ok {
		metrics = &Metrics{}
		manager.metrics[pid] = metrics
	}
	return metrics
}

func (manager *MemoryManager) FrameCount() int {
	return len(manager.frames)
}

func (manager *MemoryManager) FreeFrameCount() int {
	return manager.freeFrames.Size()
}

func (manager *MemoryManager) PageSizeKB() int {
	return manager.config.PageSizeKB
}

func (manager *MemoryManager) AlgorithmName() string {
	return manager.algorithm.Name()
}

func (manager *MemoryManager) AlgorithmStatus() string {
	return manager.algorithm.Status()
}

// Stats devuelve las métricas globales.
func (manager *MemoryManager) Stats() Metrics {
	return manager.stats
}

// ProcessMetrics devuelve las métricas de un proceso con actividad.
func (manager *MemoryManager) ProcessMetrics(pid int) (Metrics, bool) {
	metrics, ok := manager.metrics[pid]
	if !ok {
		return Metrics{}, false
	}
	return *metrics, true
}

// OwnedFrames devuelve los marcos ocupados por el proceso.
func (manager *MemoryManager) OwnedFrames(pid int) []int {
	owned := []int{}
	for i, frame := range manager.frames {
		if !frame.Free && frame.PID == pid {
			owned = append(owned, i)
		}
	}
	return owned
}

// Frames devuelve una copia del estado de todos los marcos.
func (manager *MemoryManager) Frames() []FrameInfo {
	infos := make([]FrameInfo, len(manager.frames))
	for i, frame := range manager.frames {
		infos[i] = FrameInfo{Frame: i, Free: frame.Free}
		if !frame.Free {
			infos[i].PID = frame.PID
			infos[i].PageNumber = frame.PageNumber
		}
	}
	return infos
}

// FrameMap devuelve el mapa de marcos como "[ 1:0 | Vacío | 2:1 ]" (PID:Página).
func (manager *MemoryManager) FrameMap() string {
	var builder strings.Builder
	builder.WriteString("[")
	for i, frame := range manager.frames {
		if frame.Free {
			builder.WriteString(" Vacío ")
		} else {
			builder.WriteString(fmt.Sprintf(" %d:%d ", frame.PID, frame.PageNumber))
		}
		if i < len(manager.frames)-1 {
			builder.WriteString("|")
		}
	}
	builder.WriteString("]")
	return builder.String()
}

// Status arma el resumen legible de la memoria física.
func (manager *MemoryManager) Status() string {
	var builder strings.Builder
	builder.WriteString("--- Estado de la Memoria Física ---\n")
	builder.WriteString(fmt.Sprintf("Total de marcos: %d. Marcos libres: %d.\n", manager.FrameCount(), manager.FreeFrameCount()))
	builder.WriteString("Contenido de los marcos (PID:Página):\n")
	builder.WriteString(manager.FrameMap() + "\n")
	builder.WriteString(manager.AlgorithmStatus() + "\n")
	builder.WriteString(fmt.Sprintf("Accesos: %d - Hits: %d - Page faults: %d - Desalojos: %d\n",
		manager.stats.Accesses, manager.stats.Hits, manager.stats.PageFaults, manager.stats.Evictions))
	return builder.String()
}
