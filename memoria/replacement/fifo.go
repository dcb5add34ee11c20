package replacement

import (
	"fmt"

	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/list"
)

// FIFO desaloja el marco cargado hace más tiempo. Ignora los accesos.
type FIFO struct {
	queue *list.ArrayList[int]
}

func NewFIFO() *FIFO {
	return &FIFO{queue: &list.ArrayList[int]{}}
}

func (fifo *FIFO) FindVictim() (int, bool) {
	frameNumber, err := fifo.queue.Dequeue()
	if err != nil {
		return 0, false
	}
	return frameNumber, true
}

func (fifo *FIFO) OnLoad(frameNumber int) {
	fifo.queue.Add(frameNumber)
}

func (fifo *FIFO) OnAccess(int) {}

func (fifo *FIFO) OnFrameFree(frameNumber int) {
	fifo.queue.RemoveWhere(func(tracked int) bool { return tracked == frameNumber })
}

func (fifo *FIFO) Name() string {
	return "FIFO (First-In, First-Out)"
}

func (fifo *FIFO) Status() string {
	return fmt.Sprintf("Orden de salida FIFO: %v", fifo.queue.GetAll())
}

func (fifo *FIFO) Tracked() []int {
	return fifo.queue.GetAll()
}
