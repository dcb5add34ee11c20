// Package replacement contiene los algoritmos de reemplazo de páginas que usa
// el MemoryManager para elegir la víctima cuando no quedan marcos libres.
package replacement

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownAlgorithm = errors.New("algoritmo de reemplazo desconocido")

// Algorithm sigue los marcos ocupados y decide cuál desalojar.
// Un marco está en el seguimiento desde OnLoad hasta que sale por FindVictim
// u OnFrameFree.
type Algorithm interface {
	// FindVictim saca del seguimiento y devuelve el marco a desalojar.
	// Devuelve false si no hay ninguno.
	FindVictim() (int, bool)
	// OnLoad registra un marco recién cargado.
	OnLoad(frameNumber int)
	// OnAccess registra un acceso a un marco residente.
	OnAccess(frameNumber int)
	// OnFrameFree deja de seguir un marco liberado.
	OnFrameFree(frameNumber int)
	Name() string
	Status() string
	// Tracked devuelve los marcos seguidos, en orden de desalojo.
	Tracked() []int
}

// New crea el algoritmo por nombre: "FIFO" o "LRU", sin importar mayúsculas.
func New(name string) (Algorithm, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "FIFO":
		return NewFIFO(), nil
	case "LRU":
		return NewLRU(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}
