package scheduler

import (
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/models"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/list"
)

// RoundRobin es una cola FIFO de hilos READY. El quantum lo controla el Scheduler.
type RoundRobin struct {
	queue *list.ArrayList[*models.Thread]
}

func NewRoundRobin() *RoundRobin {
	return &RoundRobin{queue: list.NewArrayList[*models.Thread]()}
}

func (rr *RoundRobin) Admit(thread *models.Thread) {
	if _, _, found := rr.queue.Find(sameThread(thread)); found {
		return
	}
	rr.queue.Add(thread)
}

func (rr *RoundRobin) Next() (*models.Thread, bool) {
	thread, err := rr.queue.Dequeue()
	if err != nil {
		return nil, false
	}
	return thread, true
}

func (rr *RoundRobin) Requeue(thread *models.Thread) {
	rr.Admit(thread)
}

func (rr *RoundRobin) Remove(thread *models.Thread) bool {
	return rr.queue.RemoveWhere(sameThread(thread))
}

func (rr *RoundRobin) Snapshot() []*models.Thread {
	return rr.queue.GetAll()
}

func (rr *RoundRobin) IsPreemptive() bool {
	return true
}

func (rr *RoundRobin) Drain() []*models.Thread {
	return rr.queue.Drain()
}

func (rr *RoundRobin) Name() string {
	return "Round Robin"
}
