package concurrency

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMutex_AcquireFreshSucceeds(t *testing.T) {
	mutex := NewMutex()

	mutex.Acquire()

	if !mutex.IsLocked() {
		t.Error("Expected mutex to be locked")
	}
	if mutex.TryAcquire() {
		t.Error("Expected TryAcquire to fail while locked")
	}
	mutex.Release()
	if mutex.IsLocked() {
		t.Error("Expected mutex to be unlocked after release")
	}
}

func TestMutex_SecondAcquireWaitsForRelease(t *testing.T) {
	mutex := NewMutex()
	mutex.Acquire()

	var acquired atomic.Bool
	done := make(chan struct{})
	go func() {
		mutex.Acquire()
		acquired.Store(true)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	if acquired.Load() {
		t.Fatal("Expected second Acquire to wait while the mutex is held")
	}

	mutex.Release()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected second Acquire to return after Release")
	}
	if !mutex.IsLocked() {
		t.Error("Expected mutex to be held by the second caller")
	}
}

func TestMutex_MutualExclusion(t *testing.T) {
	mutex := NewMutex()
	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				mutex.Acquire()
				counter++
				mutex.Release()
			}
		}()
	}
	wg.Wait()

	if counter != 8000 {
		t.Errorf("Expected 8000, got %d", counter)
	}
}

func TestMutexManager_CreateGetDestroy(t *testing.T) {
	manager := NewMutexManager()

	firstID, first := manager.Create()
	secondID, _ := manager.Create()
	if firstID != 0 || secondID != 1 {
		t.Errorf("Expected ids 0 and 1, got %d and %d", firstID, secondID)
	}

	found, ok := manager.Get(firstID)
	if !ok || found != first {
		t.Error("Expected to find mutex 0")
	}

	first.Acquire()
	if locked := manager.LockedIDs(); len(locked) != 1 || locked[0] != 0 {
		t.Errorf("Expected mutex 0 locked, got %v", locked)
	}

	if err := manager.Destroy(firstID); err != nil {
		t.Fatalf("Expected destroy to succeed, got %v", err)
	}
	if _, ok := manager.Get(firstID); ok {
		t.Error("Expected mutex 0 to be gone")
	}
	if err := manager.Destroy(firstID); !errors.Is(err, ErrMutexNotFound) {
		t.Errorf("Expected ErrMutexNotFound, got %v", err)
	}

	thirdID, _ := manager.Create()
	if thirdID != 2 {
		t.Errorf("Expected ids not to be reused, got %d", thirdID)
	}
	if len(manager.All()) != 2 {
		t.Errorf("Expected 2 mutexes, got %d", len(manager.All()))
	}
}
