package services

import (
	"fmt"
	"log/slog"

	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/concurrency"
)

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Anomaly es un problema detectado por el HealthMonitor.
type Anomaly struct {
	Severity       Severity `json:"severity"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
}

func (anomaly Anomaly) String() string {
	return fmt.Sprintf("[%s] %s -> Sugerencia: %s", anomaly.Severity, anomaly.Description, anomaly.Recommendation)
}

// HealthMonitor revisa el estado del kernel y reporta anomalías. Solo lee;
// nunca corrige nada.
type HealthMonitor struct {
	processes *ProcessManager
	mutexes   *concurrency.MutexManager
}

func NewHealthMonitor(processes *ProcessManager, mutexes *concurrency.MutexManager) *HealthMonitor {
	return &HealthMonitor{processes: processes, mutexes: mutexes}
}

// RunDiagnostics ejecuta todos los chequeos. Una lista vacía significa que
// el sistema está sano.
func (monitor *HealthMonitor) RunDiagnostics() []Anomaly {
	slog.Debug("Monitor de salud: iniciando escaneo")

	anomalies := []Anomaly{}
	anomalies = append(anomalies, monitor.checkMemory()...)
	anomalies = append(anomalies, monitor.checkIdleCPU()...)
	anomalies = append(anomalies, monitor.checkOrphanProcesses()...)
	anomalies = append(anomalies, monitor.checkLockedMutexes()...)

	slog.Info(fmt.Sprintf("Monitor de salud: escaneo completado, %d anomalías", len(anomalies)))
	return anomalies
}

func (monitor *HealthMonitor) checkMemory() []Anomaly {
	if err := monitor.processes.Memory().Verify(); err != nil {
		return []Anomaly{{
			Severity:       SeverityCritical,
			Description:    fmt.Sprintf("Memoria inconsistente: %v", err),
			Recommendation: "Finalizar los procesos afectados y reiniciar el kernel",
		}}
	}
	return nil
}

func (monitor *HealthMonitor) checkIdleCPU() []Anomaly {
	planner := monitor.processes.Scheduler()
	if _, running := planner.CurrentThread(); running {
		return nil
	}
	if ready := planner.ReadyCount(); ready > 0 {
		return []Anomaly{{
			Severity:       SeverityHigh,
			Description:    fmt.Sprintf("CPU libre con %d hilos en READY", ready),
			Recommendation: "Ejecutar ciclos del planificador",
		}}
	}
	return nil
}

func (monitor *HealthMonitor) checkOrphanProcesses() []Anomaly {
	var anomalies []Anomaly
	for _, process := range monitor.processes.Processes() {
		if !process.HasActiveThreads() {
			anomalies = append(anomalies, Anomaly{
				Severity:       SeverityMedium,
				Description:    fmt.Sprintf("El proceso %d sigue registrado sin hilos activos", process.PID),
				Recommendation: "Ejecutar la limpieza de procesos finalizados",
			})
		}
	}
	return anomalies
}

func (monitor *HealthMonitor) checkLockedMutexes() []Anomaly {
	var anomalies []Anomaly
	for _, id := range monitor.mutexes.LockedIDs() {
		anomalies = append(anomalies, Anomaly{
			Severity:       SeverityLow,
			Description:    fmt.Sprintf("El mutex %d está tomado", id),
			Recommendation: "Verificar que quien lo tomó lo libere",
		})
	}
	return anomalies
}
