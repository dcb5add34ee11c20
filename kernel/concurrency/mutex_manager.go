package concurrency

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

var ErrMutexNotFound = errors.New("mutex no encontrado")

// MutexManager es el registro de mutex por id. Los ids arrancan en 0 y no se
// reutilizan.
type MutexManager struct {
	mx      sync.RWMutex
	mutexes map[int]*Mutex
	nextID  int
}

func NewMutexManager() *MutexManager {
	return &MutexManager{mutexes: make(map[int]*Mutex)}
}

func (manager *MutexManager) Create() (int, *Mutex) {
	manager.mx.Lock()
	defer manager.mx.Unlock()

	id := manager.nextID
	manager.nextID++
	mutex := NewMutex()
	manager.mutexes[id] = mutex

	slog.Debug(fmt.Sprintf("Se crea el mutex %d", id))
	return id, mutex
}

func (manager *MutexManager) Get(id int) (*Mutex, bool) {
	manager.mx.RLock()
	defer manager.mx.RUnlock()

	mutex, found := manager.mutexes[id]
	return mutex, found
}

// Destroy elimina el mutex del registro. No verifica que esté libre ni que
// nadie lo espere.
func (manager *MutexManager) Destroy(id int) error {
	manager.mx.Lock()
	defer manager.mx.Unlock()

	if _, found := manager.mutexes[id]; !found {
		slog.Warn(fmt.Sprintf("Se intentó destruir el mutex %d que no existe", id))
		return fmt.Errorf("%w: %d", ErrMutexNotFound, id)
	}
	delete(manager.mutexes, id)
	slog.Debug(fmt.Sprintf("Se destruye el mutex %d", id))
	return nil
}

// All devuelve una copia del registro.
func (manager *MutexManager) All() map[int]*Mutex {
	manager.mx.RLock()
	defer manager.mx.RUnlock()

	all := make(map[int]*Mutex, len(manager.mutexes))
	for id, mutex := range manager.mutexes {
		all[id] = mutex
	}
	return all
}

// LockedIDs devuelve los ids de los mutex tomados al momento de consultar.
func (manager *MutexManager) LockedIDs() []int {
	manager.mx.RLock()
	defer manager.mx.RUnlock()

	var ids []int
	for id, mutex := range manager.mutexes {
		if mutex.IsLocked() {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
