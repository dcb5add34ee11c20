package replacement

import (
	"container/list"
	"fmt"
)

// LRU desaloja el marco usado hace más tiempo. El frente de la lista es el
// menos recientemente usado y el fondo el más reciente; elements permite
// mover un marco sin recorrer la lista.
type LRU struct {
	order    *list.List
	elements map[int]*list.Element
}

func NewLRU() *LRU {
	return &LRU{
		order:    list.New(),
		elements: make(map[int]*list.Element),
	}
}

func (lru *LRU) FindVictim() (int, bool) {
	front := lru.order.Front()
	if front == nil {
		return 0, false
	}
	frameNumber := front.Value.(int)
	lru.order.Remove(front)
	delete(lru.elements, frameNumber)
	return frameNumber, true
}

func (lru *LRU) OnLoad(frameNumber int) {
	if element, ok := lru.elements[frameNumber]; ok {
		lru.order.MoveToBack(element)
		return
	}
	lru.elements[frameNumber] = lru.order.PushBack(frameNumber)
}

// OnAccess mueve el marco al fondo. Marcos que no se siguen se ignoran.
func (lru *LRU) OnAccess(frameNumber int) {
	if element, ok := lru.elements[frameNumber]; ok {
		lru.order.MoveToBack(element)
	}
}

func (lru *LRU) OnFrameFree(frameNumber int) {
	if element, ok := lru.elements[frameNumber]; ok {
		lru.order.Remove(element)
		delete(lru.elements, frameNumber)
	}
}

func (lru *LRU) Name() string {
	return "LRU (Least Recently Used)"
}

func (lru *LRU) Status() string {
	return fmt.Sprintf("Orden de uso (LRU -> MRU): %v", lru.Tracked())
}

func (lru *LRU) Tracked() []int {
	frames := make([]int, 0, lru.order.Len())
	for element := lru.order.Front(); element != nil; element = element.Next() {
		frames = append(frames, element.Value.(int))
	}
	return frames
}
