package scheduler

import (
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/models"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/list"
)

// ShortestJobFirst ordena los hilos READY por la ráfaga de su proceso y,
// a igual ráfaga, por TID. No es desalojante.
type ShortestJobFirst struct {
	ready *list.ArrayList[*models.Thread]
}

func NewShortestJobFirst() *ShortestJobFirst {
	return &ShortestJobFirst{ready: list.NewArrayList[*models.Thread]()}
}

func shorterJob(a, b *models.Thread) bool {
	if a.BurstTime() != b.BurstTime() {
		return a.BurstTime() < b.BurstTime()
	}
	return a.TID < b.TID
}

func (sjf *ShortestJobFirst) Admit(thread *models.Thread) {
	if _, _, found := sjf.ready.Find(sameThread(thread)); found {
		return
	}
	sjf.ready.InsertSorted(thread, shorterJob)
}

func (sjf *ShortestJobFirst) Next() (*models.Thread, bool) {
	thread, err := sjf.ready.Dequeue()
	if err != nil {
		return nil, false
	}
	return thread, true
}

// Requeue no hace nada: un hilo despachado conserva la CPU hasta bloquearse o terminar.
func (sjf *ShortestJobFirst) Requeue(*models.Thread) {}

func (sjf *ShortestJobFirst) Remove(thread *models.Thread) bool {
	return sjf.ready.RemoveWhere(sameThread(thread))
}

func (sjf *ShortestJobFirst) Snapshot() []*models.Thread {
	return sjf.ready.GetAll()
}

func (sjf *ShortestJobFirst) IsPreemptive() bool {
	return false
}

func (sjf *ShortestJobFirst) Drain() []*models.Thread {
	return sjf.ready.Drain()
}

func (sjf *ShortestJobFirst) Name() string {
	return "SJF (Shortest Job First)"
}
