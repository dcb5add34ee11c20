package scheduler

import (
	"errors"
	"strings"
	"testing"

	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/models"
)

func newProcessWithThreads(pid int, burst int, tids ...int) *models.Process {
	process := models.NewProcess(pid, "p", burst, 8, 4)
	for _, tid := range tids {
		process.AttachThread(models.NewThread(tid, process))
	}
	return process
}

func mustScheduler(t *testing.T, name string, quantum int) *Scheduler {
	t.Helper()
	algorithm, err := NewAlgorithm(name)
	if err != nil {
		t.Fatalf("Expected algorithm %s, got %v", name, err)
	}
	return NewScheduler(algorithm, quantum)
}

func TestNewAlgorithm(t *testing.T) {
	for _, name := range []string{"rr", "RR", "sjf", " Sjf "} {
		if _, err := NewAlgorithm(name); err != nil {
			t.Errorf("Expected %q to be accepted, got %v", name, err)
		}
	}
	if _, err := NewAlgorithm("fifo"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("Expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestRunCycle_IdleWithoutReadyThreads(t *testing.T) {
	scheduler := mustScheduler(t, "rr", 2)

	result := scheduler.RunCycle()

	if !result.Idle || result.Thread != nil {
		t.Errorf("Expected idle cycle, got %+v", result)
	}
	if total, idle := scheduler.Cycles(); total != 1 || idle != 1 {
		t.Errorf("Expected 1 idle cycle, got %d/%d", idle, total)
	}
}

func TestRoundRobin_QuantumTwoScenario(t *testing.T) {
	scheduler := mustScheduler(t, "rr", 2)
	process := newProcessWithThreads(1, 5, 1, 2)
	scheduler.AdmitProcessThreads(process)

	var order []int
	var preempted []bool
	for i := 0; i < 5; i++ {
		result := scheduler.RunCycle()
		if result.Idle {
			t.Fatalf("Unexpected idle cycle %d", i+1)
		}
		order = append(order, result.Thread.TID)
		preempted = append(preempted, result.Preempted)
	}

	expectedOrder := []int{1, 1, 2, 2, 1}
	expectedPreempted := []bool{false, true, false, true, false}
	for i := range expectedOrder {
		if order[i] != expectedOrder[i] || preempted[i] != expectedPreempted[i] {
			t.Fatalf("Expected order %v / preempted %v, got %v / %v", expectedOrder, expectedPreempted, order, preempted)
		}
	}

	first, _ := process.FindThread(1)
	second, _ := process.FindThread(2)
	if first.ME[models.ThreadRunning] != 2 || second.ME[models.ThreadRunning] != 1 {
		t.Errorf("Expected thread 1 dispatched twice and thread 2 once, got %d and %d",
			first.ME[models.ThreadRunning], second.ME[models.ThreadRunning])
	}
	if first.State != models.ThreadRunning || second.State != models.ThreadReady {
		t.Errorf("Expected thread 1 RUNNING and thread 2 READY, got %s and %s", first.State, second.State)
	}
}

func TestRoundRobin_EveryThreadRunsBeforeAnyRepeats(t *testing.T) {
	scheduler := mustScheduler(t, "rr", 3)
	scheduler.AdmitProcessThreads(newProcessWithThreads(1, 0, 1, 2, 3, 4))

	var dispatched []int
	dispatchNext := true
	for i := 0; i < 12; i++ {
		result := scheduler.RunCycle()
		if dispatchNext {
			dispatched = append(dispatched, result.Thread.TID)
		}
		dispatchNext = result.Preempted
	}

	seen := map[int]bool{}
	for _, tid := range dispatched {
		if seen[tid] {
			t.Fatalf("Thread %d dispatched twice in the first round: %v", tid, dispatched)
		}
		seen[tid] = true
	}
	if len(dispatched) != 4 {
		t.Errorf("Expected 4 dispatches in 12 cycles, got %v", dispatched)
	}
}

func TestShortestJobFirst_OrdersByBurstThenTID(t *testing.T) {
	scheduler := mustScheduler(t, "sjf", 2)
	long := newProcessWithThreads(1, 10, 1)
	short := newProcessWithThreads(2, 3, 3, 2)
	medium := newProcessWithThreads(3, 5, 4)
	scheduler.AdmitProcessThreads(long)
	scheduler.AdmitProcessThreads(short)
	scheduler.AdmitProcessThreads(medium)

	var order []int
	for _, thread := range scheduler.ReadyQueueSnapshot() {
		order = append(order, thread.TID)
	}
	expected := []int{2, 3, 4, 1}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("Expected ready order %v, got %v", expected, order)
		}
	}
}

func TestShortestJobFirst_IsNonPreemptive(t *testing.T) {
	scheduler := mustScheduler(t, "sjf", 1)
	scheduler.AdmitProcessThreads(newProcessWithThreads(1, 1, 1))
	scheduler.AdmitProcessThreads(newProcessWithThreads(2, 2, 2))

	for i := 0; i < 5; i++ {
		result := scheduler.RunCycle()
		if result.Thread.TID != 1 || result.Preempted {
			t.Fatalf("Expected thread 1 to keep the CPU, got %+v", result)
		}
	}

	current, _ := scheduler.CurrentThread()
	scheduler.TerminateThread(current)
	if result := scheduler.RunCycle(); result.Thread.TID != 2 {
		t.Errorf("Expected thread 2 after termination, got %+v", result)
	}
}

func TestBlockAndUnblock(t *testing.T) {
	scheduler := mustScheduler(t, "rr", 4)
	process := newProcessWithThreads(1, 0, 1, 2)
	scheduler.AdmitProcessThreads(process)
	first, _ := process.FindThread(1)
	second, _ := process.FindThread(2)

	scheduler.RunCycle()
	if err := scheduler.BlockThread(first); err != nil {
		t.Fatalf("Expected block to succeed, got %v", err)
	}
	if _, running := scheduler.CurrentThread(); running {
		t.Error("Expected CPU to be released after blocking the current thread")
	}

	if err := scheduler.BlockThread(second); err != nil {
		t.Fatalf("Expected READY thread to be blockable, got %v", err)
	}
	if !scheduler.RunCycle().Idle {
		t.Error("Expected idle cycle with every thread blocked")
	}

	if err := scheduler.UnblockThread(second); err != nil {
		t.Fatalf("Expected unblock to succeed, got %v", err)
	}
	if result := scheduler.RunCycle(); result.Thread != second {
		t.Errorf("Expected thread 2 to run after unblock, got %+v", result)
	}
	if err := scheduler.UnblockThread(second); !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition unblocking a running thread, got %v", err)
	}
}

func TestTerminateThread_RemovesFromReadySet(t *testing.T) {
	scheduler := mustScheduler(t, "rr", 2)
	process := newProcessWithThreads(1, 0, 1, 2)
	scheduler.AdmitProcessThreads(process)
	second, _ := process.FindThread(2)

	scheduler.TerminateThread(second)

	if scheduler.ReadyCount() != 1 || second.State != models.ThreadTerminated {
		t.Errorf("Expected thread 2 terminated and out of READY, got %d ready", scheduler.ReadyCount())
	}
	if err := scheduler.BlockThread(second); !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("Expected terminated thread not to be blockable, got %v", err)
	}
}

func TestSetStrategy_HotSwapKeepsEveryThread(t *testing.T) {
	scheduler := mustScheduler(t, "rr", 4)
	long := newProcessWithThreads(1, 9, 1)
	short := newProcessWithThreads(2, 1, 2)
	scheduler.AdmitProcessThreads(long)
	scheduler.AdmitProcessThreads(short)
	scheduler.RunCycle()

	if err := scheduler.SetStrategy("SJF"); err != nil {
		t.Fatalf("Expected swap to succeed, got %v", err)
	}
	if _, running := scheduler.CurrentThread(); running {
		t.Error("Expected current slot to be cleared by the swap")
	}
	ready := scheduler.ReadyQueueSnapshot()
	if len(ready) != 2 || ready[0].TID != 2 || ready[1].TID != 1 {
		t.Fatalf("Expected both threads re-admitted in SJF order, got %v", ready)
	}
	if ready[1].State != models.ThreadReady {
		t.Errorf("Expected interrupted thread back in READY, got %s", ready[1].State)
	}
	if !strings.HasPrefix(scheduler.StrategyName(), "SJF") {
		t.Errorf("Unexpected strategy name %s", scheduler.StrategyName())
	}
}

func TestSetStrategy_UnknownNameHasNoSideEffects(t *testing.T) {
	scheduler := mustScheduler(t, "rr", 4)
	scheduler.AdmitProcessThreads(newProcessWithThreads(1, 0, 1, 2))
	scheduler.RunCycle()

	if err := scheduler.SetStrategy("lottery"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Fatalf("Expected ErrUnknownAlgorithm, got %v", err)
	}
	if scheduler.StrategyName() != "Round Robin" {
		t.Errorf("Expected Round Robin to stay active, got %s", scheduler.StrategyName())
	}
	if current, running := scheduler.CurrentThread(); !running || current.TID != 1 {
		t.Error("Expected thread 1 to keep the CPU")
	}
	if scheduler.ReadyCount() != 1 {
		t.Errorf("Expected 1 ready thread, got %d", scheduler.ReadyCount())
	}
}

func TestStatus(t *testing.T) {
	scheduler := mustScheduler(t, "rr", 2)
	scheduler.AdmitProcessThreads(newProcessWithThreads(4, 0, 7, 8))
	scheduler.RunCycle()

	status := scheduler.Status()
	if !strings.Contains(status, "En CPU: (4:7)") || !strings.Contains(status, "Cola READY: [(4:8)]") {
		t.Errorf("Unexpected status %q", status)
	}
}
