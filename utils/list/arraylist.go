package list

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrEmptyList       = errors.New("list is empty")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// List define las operaciones de una lista ordenada de elementos.
type List[T any] interface {
	Add(item T)                                  // Añade un elemento al final de la lista
	Dequeue() (T, error)                         // Elimina y devuelve el primer elemento de la lista
	Drain() []T                                  // Vacía la lista y devuelve lo que tenía
	Find(predicate func(T) bool) (T, int, bool)  // Busca un elemento dado un predicado
	Get(index int) (T, error)                    // Obtiene un elemento a partir de un índice
	GetAll() []T                                 // Copia de todos los elementos
	Insert(index int, item T) error              // Inserta un elemento en el índice dado
	InsertSorted(item T, less func(a, b T) bool) // Inserta manteniendo el orden de less
	Remove(index int)                            // Elimina el elemento en el índice dado
	RemoveWhere(match func(T) bool) bool         // Elimina el primer elemento que cumple match
	Size() int                                   // Tamaño de la lista
	Sort(less func(a, b T) bool)                 // Ordena la lista de acuerdo al criterio
}

// ArrayList implementa List sobre un slice protegido por un RWMutex.
// El valor cero está listo para usarse.
type ArrayList[T any] struct {
	mu    sync.RWMutex
	items []T
}

// NewArrayList crea una lista con los elementos dados, en ese orden.
func NewArrayList[T any](items ...T) *ArrayList[T] {
	list := &ArrayList[T]{items: make([]T, 0, len(items))}
	list.items = append(list.items, items...)
	return list
}

// Add inserta un elemento al final de la lista.
//
// Ejemplo:
//
//	func main() {
//		queue := &list.ArrayList[int]{}
//		queue.Add(10)
//		queue.Add(20) // [10, 20]
//	}
func (list *ArrayList[T]) Add(item T) {
	list.mu.Lock()
	defer list.mu.Unlock()

	list.items = append(list.items, item)
}

// Dequeue elimina y devuelve el primer elemento de la cola.
// Si la lista está vacía retorna el valor "cero" de T y ErrEmptyList.
func (list *ArrayList[T]) Dequeue() (T, error) {
	list.mu.Lock()
	defer list.mu.Unlock()

	if len(list.items) == 0 {
		var zero T
		return zero, ErrEmptyList
	}
	value := list.items[0]
	list.items = list.items[1:]
	return value, nil
}

// Drain vacía la lista y devuelve sus elementos en orden.
func (list *ArrayList[T]) Drain() []T {
	list.mu.Lock()
	defer list.mu.Unlock()

	drained := list.items
	list.items = nil
	if drained == nil {
		drained = []T{}
	}
	return drained
}

// Find permite buscar un elemento de la lista dado un predicado.
// Devuelve el elemento, su índice y si se encontró.
//
// Ejemplo:
//
//	func main() {
//		numbers := list.NewArrayList(10, 20, 30)
//		number, index, found := numbers.Find(func(n int) bool {
//			return n == 20
//		}) // 20, 1, true
//	}
func (list *ArrayList[T]) Find(predicate func(T) bool) (T, int, bool) {
	list.mu.RLock()
	defer list.mu.RUnlock()

	for i, item := range list.items {
		if predicate(item) {
			return item, i, true
		}
	}
	var zero T
	return zero, -1, false
}

// Get devuelve el elemento en el índice proporcionado.
func (list *ArrayList[T]) Get(index int) (T, error) {
	list.mu.RLock()
	defer list.mu.RUnlock()

	if index < 0 || index >= len(list.items) {
		var zero T
		return zero, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return list.items[index], nil
}

// GetAll retorna una copia de todos los elementos que se encuentran en la lista.
func (list *ArrayList[T]) GetAll() []T {
	list.mu.RLock()
	defer list.mu.RUnlock()

	// Copia para que modificaciones externas no afecten la lista interna
	itemsCopy := make([]T, len(list.items))
	copy(itemsCopy, list.items)
	return itemsCopy
}

// Insert inserta un elemento en el índice proporcionado. Con index == Size()
// equivale a Add.
func (list *ArrayList[T]) Insert(index int, item T) error {
	list.mu.Lock()
	defer list.mu.Unlock()

	return list.insert(index, item)
}

func (list *ArrayList[T]) insert(index int, item T) error {
	if index < 0 || index > len(list.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	list.items = append(list.items, item)
	copy(list.items[index+1:], list.items[index:])
	list.items[index] = item
	return nil
}

// InsertSorted inserta el elemento antes del primero que no sea menor que él,
// de modo que una lista ordenada por less siga ordenada. Entre iguales queda
// después de los ya presentes.
//
// Ejemplo:
//
//	func main() {
//		numbers := list.NewArrayList(10, 30)
//		numbers.InsertSorted(20, func(a, b int) bool { return a < b }) // [10, 20, 30]
//	}
func (list *ArrayList[T]) InsertSorted(item T, less func(a, b T) bool) {
	list.mu.Lock()
	defer list.mu.Unlock()

	index := len(list.items)
	for i, current := range list.items {
		if less(item, current) {
			index = i
			break
		}
	}
	_ = list.insert(index, item)
}

// Remove elimina el elemento en el índice dado. Índices inválidos se ignoran.
func (list *ArrayList[T]) Remove(index int) {
	list.mu.Lock()
	defer list.mu.Unlock()

	if index >= 0 && index < len(list.items) {
		list.items = append(list.items[:index], list.items[index+1:]...)
	}
}

// RemoveWhere elimina el primer elemento que cumple match. Devuelve si
// eliminó alguno.
func (list *ArrayList[T]) RemoveWhere(match func(T) bool) bool {
	list.mu.Lock()
	defer list.mu.Unlock()

	for i, item := range list.items {
		if match(item) {
			list.items = append(list.items[:i], list.items[i+1:]...)
			return true
		}
	}
	return false
}

// Size devuelve el tamaño de la lista.
func (list *ArrayList[T]) Size() int {
	list.mu.RLock()
	defer list.mu.RUnlock()

	return len(list.items)
}

// Sort ordena la lista de acuerdo a less. Es estable: los elementos iguales
// conservan su orden relativo.
func (list *ArrayList[T]) Sort(less func(a, b T) bool) {
	list.mu.Lock()
	defer list.mu.Unlock()

	size := len(list.items)
	for i := 1; i < size; i++ {
		for j := i; j > 0 && less(list.items[j], list.items[j-1]); j-- {
			list.items[j], list.items[j-1] = list.items[j-1], list.items[j]
		}
	}
}
