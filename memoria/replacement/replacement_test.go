package replacement

import (
	"errors"
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	if algorithm, err := New("fifo"); err != nil || algorithm.Name() != NewFIFO().Name() {
		t.Errorf("Expected FIFO, got %v %v", algorithm, err)
	}
	if algorithm, err := New("LRU"); err != nil || algorithm.Name() != NewLRU().Name() {
		t.Errorf("Expected LRU, got %v %v", algorithm, err)
	}
	if _, err := New("CLOCK"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("Expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestFIFO_VictimIsEarliestLoaded(t *testing.T) {
	fifo := NewFIFO()
	fifo.OnLoad(2)
	fifo.OnLoad(0)
	fifo.OnLoad(1)

	// Los accesos no cambian el orden
	fifo.OnAccess(2)

	victim, ok := fifo.FindVictim()
	if !ok || victim != 2 {
		t.Errorf("Expected victim 2, got %d %v", victim, ok)
	}
	victim, _ = fifo.FindVictim()
	if victim != 0 {
		t.Errorf("Expected victim 0, got %d", victim)
	}
}

func TestFIFO_OnFrameFreeRemovesFrame(t *testing.T) {
	fifo := NewFIFO()
	fifo.OnLoad(0)
	fifo.OnLoad(1)

	fifo.OnFrameFree(0)
	fifo.OnFrameFree(9)

	if !slices.Equal(fifo.Tracked(), []int{1}) {
		t.Errorf("Expected [1], got %v", fifo.Tracked())
	}
}

func TestFIFO_EmptyHasNoVictim(t *testing.T) {
	if _, ok := NewFIFO().FindVictim(); ok {
		t.Error("Expected no victim from an empty FIFO")
	}
}

func TestLRU_VictimIsLeastRecentlyUsed(t *testing.T) {
	lru := NewLRU()
	lru.OnLoad(0)
	lru.OnLoad(1)
	lru.OnLoad(2)

	lru.OnAccess(0)

	if !slices.Equal(lru.Tracked(), []int{1, 2, 0}) {
		t.Fatalf("Expected [1 2 0], got %v", lru.Tracked())
	}

	victim, ok := lru.FindVictim()
	if !ok || victim != 1 {
		t.Errorf("Expected victim 1, got %d %v", victim, ok)
	}

	lru.OnAccess(2)
	victim, _ = lru.FindVictim()
	if victim != 0 {
		t.Errorf("Expected victim 0, got %d", victim)
	}
}

func TestLRU_AccessToUntrackedFrameIsIgnored(t *testing.T) {
	lru := NewLRU()
	lru.OnLoad(3)

	lru.OnAccess(7)

	if !slices.Equal(lru.Tracked(), []int{3}) {
		t.Errorf("Expected [3], got %v", lru.Tracked())
	}
}

func TestLRU_OnFrameFree(t *testing.T) {
	lru := NewLRU()
	lru.OnLoad(0)
	lru.OnLoad(1)

	lru.OnFrameFree(1)
	lru.OnFrameFree(1)

	victim, ok := lru.FindVictim()
	if !ok || victim != 0 {
		t.Errorf("Expected victim 0, got %d %v", victim, ok)
	}
	if _, ok := lru.FindVictim(); ok {
		t.Error("Expected LRU to be empty")
	}
}
