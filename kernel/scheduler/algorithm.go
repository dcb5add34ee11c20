package scheduler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/models"
)

var ErrUnknownAlgorithm = errors.New("algoritmo de planificación desconocido")

// Algorithm mantiene el conjunto de hilos READY y decide cuál se despacha.
type Algorithm interface {
	Admit(thread *models.Thread)
	Next() (*models.Thread, bool)
	// Requeue devuelve a READY un hilo al que se le terminó el quantum.
	Requeue(thread *models.Thread)
	Remove(thread *models.Thread) bool
	Snapshot() []*models.Thread
	IsPreemptive() bool
	Drain() []*models.Thread
	Name() string
}

// NewAlgorithm arma el algoritmo a partir de su nombre ("rr" o "sjf", sin
// importar mayúsculas).
func NewAlgorithm(name string) (Algorithm, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "RR":
		return NewRoundRobin(), nil
	case "SJF":
		return NewShortestJobFirst(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

func sameThread(target *models.Thread) func(*models.Thread) bool {
	return func(thread *models.Thread) bool {
		return thread == target
	}
}
