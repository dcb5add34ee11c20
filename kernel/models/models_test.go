package models

import (
	"errors"
	"math"
	"testing"
)

func TestThread_LegalTransitions(t *testing.T) {
	process := NewProcess(1, "init", 0, 4, 4)
	thread := NewThread(1, process)

	steps := []ThreadState{ThreadRunning, ThreadReady, ThreadRunning, ThreadBlocked, ThreadReady, ThreadTerminated}
	for _, next := range steps {
		if err := thread.SetState(next); err != nil {
			t.Fatalf("Expected transition to %s to succeed, got %v", next, err)
		}
	}
	if thread.ME[ThreadRunning] != 2 || thread.ME[ThreadReady] != 3 {
		t.Errorf("Unexpected state counters %v", thread.ME)
	}
}

func TestThread_TerminatedIsFinal(t *testing.T) {
	thread := NewThread(1, NewProcess(1, "init", 0, 4, 4))
	_ = thread.SetState(ThreadTerminated)

	for _, next := range []ThreadState{ThreadReady, ThreadRunning, ThreadBlocked} {
		if err := thread.SetState(next); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Expected ErrInvalidTransition to %s, got %v", next, err)
		}
	}
	if thread.State != ThreadTerminated {
		t.Errorf("Expected TERMINATED, got %s", thread.State)
	}
}

func TestThread_BlockedCannotRunDirectly(t *testing.T) {
	thread := NewThread(1, NewProcess(1, "init", 0, 4, 4))
	_ = thread.SetState(ThreadBlocked)

	if err := thread.SetState(ThreadRunning); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition, got %v", err)
	}
}

func TestProcess_VirtualSizeInPages(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 4: 1, 5: 2, 8: 2, 16: 4}
	for memoryKB, pages := range cases {
		process := NewProcess(1, "p", 0, memoryKB, 4)
		if got := process.VirtualSizeInPages(); got != pages {
			t.Errorf("Expected %d pages for %d KB, got %d", pages, memoryKB, got)
		}
	}
}

func TestProcess_VirtualSizeInPages_HugeMemory(t *testing.T) {
	process := NewProcess(1, "big", 1, math.MaxInt, 4)
	if got := process.VirtualSizeInPages(); got != math.MaxInt/4+1 {
		t.Errorf("Expected %d pages, got %d", math.MaxInt/4+1, got)
	}
}

func TestProcess_ThreadsAndTerminate(t *testing.T) {
	process := NewProcess(2, "shell", 3, 8, 4)
	first := NewThread(10, nil)
	second := NewThread(11, nil)
	process.AttachThread(first)
	process.AttachThread(second)

	if first.PID() != 2 || first.BurstTime() != 3 {
		t.Errorf("Expected attached thread to point to its process, got %v", first)
	}
	if found, ok := process.FindThread(11); !ok || found != second {
		t.Error("Expected to find thread 11")
	}
	if !process.HasActiveThreads() {
		t.Error("Expected active threads")
	}

	_ = first.SetState(ThreadTerminated)
	_ = second.SetState(ThreadTerminated)
	if process.HasActiveThreads() {
		t.Error("Expected no active threads once all are terminated")
	}

	process.Terminate()
	if process.State != ProcessTerminated || len(process.Threads) != 0 {
		t.Errorf("Expected terminated process without threads, got %v", process)
	}
}

func TestConfig_DefaultsAndValidate(t *testing.T) {
	config := DefaultConfig()
	if err := config.Validate(); err != nil {
		t.Fatalf("Expected defaults to be valid, got %v", err)
	}
	if config.MemoryConfig().FrameCount() != 32768 {
		t.Errorf("Expected 32768 frames, got %d", config.MemoryConfig().FrameCount())
	}
	if config.MaxCycles != DefaultMaxCycles {
		t.Errorf("Expected max_cycles %d, got %d", DefaultMaxCycles, config.MaxCycles)
	}

	config.SchedulerAlgorithm = "fcfs"
	config.Quantum = -1
	if err := config.Validate(); err == nil {
		t.Error("Expected validation error")
	}

	config = DefaultConfig()
	config.MaxCycles = -5
	if err := config.Validate(); err == nil {
		t.Error("Expected validation error for negative max_cycles")
	}
}
