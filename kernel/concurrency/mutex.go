package concurrency

import (
	"runtime"
	"sync/atomic"
)

// Mutex es un spinlock: Acquire reintenta el compare-and-set cediendo el
// procesador entre intentos. No registra dueño, no es reentrante y no es
// justo; con contención alta un goroutine puede quedar esperando
// indefinidamente.
type Mutex struct {
	locked atomic.Bool
}

func NewMutex() *Mutex {
	return &Mutex{}
}

// Acquire bloquea hasta tomar el lock.
func (mutex *Mutex) Acquire() {
	for !mutex.locked.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

// TryAcquire intenta tomar el lock una sola vez.
func (mutex *Mutex) TryAcquire() bool {
	return mutex.locked.CompareAndSwap(false, true)
}

// Release libera el lock sin verificar quién lo tiene.
func (mutex *Mutex) Release() {
	mutex.locked.Store(false)
}

// IsLocked es solo una foto del estado, puede cambiar apenas se lee.
func (mutex *Mutex) IsLocked() bool {
	return mutex.locked.Load()
}
