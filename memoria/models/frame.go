package models

import "fmt"

// Frame es un marco de la memoria física. Está libre o contiene exactamente
// una página (PID, PageNumber).
type Frame struct {
	Free       bool
	PID        int
	PageNumber int
}

// NewFrame devuelve un marco libre.
func NewFrame() Frame {
	return Frame{Free: true}
}

// Allocate ocupa el marco con la página pageNumber del proceso pid.
func (frame *Frame) Allocate(pid int, pageNumber int) {
	frame.Free = false
	frame.PID = pid
	frame.PageNumber = pageNumber
}

// Release libera el marco.
func (frame *Frame) Release() {
	frame.Free = true
	frame.PID = 0
	frame.PageNumber = 0
}

// Holds indica si el marco contiene la página dada.
func (frame Frame) Holds(pid int, pageNumber int) bool {
	return !frame.Free && frame.PID == pid && frame.PageNumber == pageNumber
}

func (frame Frame) String() string {
	if frame.Free {
		return "[ Free ]"
	}
	return fmt.Sprintf("[P%d, Page %d]", frame.PID, frame.PageNumber)
}
