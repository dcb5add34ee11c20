package list

import (
	"errors"
	"testing"
)

func TestArrayList_Add(t *testing.T) {
	list := &ArrayList[int]{}

	list.Add(10)
	list.Add(20)

	if list.Size() != 2 {
		t.Errorf("Expected size 2, got %d", list.Size())
	}
}

func TestArrayList_Remove(t *testing.T) {
	list := NewArrayList(10, 20, 30)

	list.Remove(1)

	if list.Size() != 2 {
		t.Errorf("Expected size 2, got %d", list.Size())
	}

	value, _ := list.Get(1)
	if value != 30 {
		t.Errorf("Expected 30 at index 1, got %d", value)
	}

	list.Remove(7)
	if list.Size() != 2 {
		t.Errorf("Expected out of range remove to be ignored, got size %d", list.Size())
	}
}

func TestArrayList_Sort(t *testing.T) {
	list := NewArrayList(40, 20, 30, 10)

	list.Sort(func(a int, b int) bool {
		return a < b
	})

	expected := []int{10, 20, 30, 40}
	for i, want := range expected {
		value, err := list.Get(i)
		if err != nil || value != want {
			t.Errorf("Expected %d at index %d, got %d", want, i, value)
		}
	}
}

func TestArrayList_Sort_IsStable(t *testing.T) {
	type pair struct{ key, id int }
	list := NewArrayList(pair{2, 1}, pair{1, 2}, pair{2, 3}, pair{1, 4})

	list.Sort(func(a, b pair) bool { return a.key < b.key })

	got := list.GetAll()
	expected := []int{2, 4, 1, 3}
	for i, id := range expected {
		if got[i].id != id {
			t.Fatalf("Expected id %d at index %d, got %+v", id, i, got)
		}
	}
}

func TestArrayList_Dequeue(t *testing.T) {
	list := NewArrayList(10, 20, 30)

	value, err := list.Dequeue()
	if err != nil || value != 10 {
		t.Errorf("Expected 10, got %d", value)
	}

	if list.Size() != 2 {
		t.Errorf("Expected size 2, got %d", list.Size())
	}

	value, err = list.Get(0)
	if err != nil || value != 20 {
		t.Errorf("Expected 20 at index 0, got %d", value)
	}
}

func TestArrayList_Dequeue_ThrowError(t *testing.T) {
	list := &ArrayList[int]{}

	_, err := list.Dequeue()
	if !errors.Is(err, ErrEmptyList) {
		t.Errorf("Expected ErrEmptyList, got %v", err)
	}
}

func TestArrayList_Insert(t *testing.T) {
	list := NewArrayList(10, 20)

	err := list.Insert(1, 30)
	if err != nil {
		t.Errorf("Expected nil, got %v", err)
	}

	value, err := list.Get(1)
	if err != nil || value != 30 {
		t.Errorf("Expected 30 at index 1, got %d", value)
	}

	if err := list.Insert(3, 40); err != nil {
		t.Errorf("Expected insert at the end to succeed, got %v", err)
	}

	if list.Size() != 4 {
		t.Errorf("Expected size 4, got %d", list.Size())
	}
}

func TestArrayList_Insert_ThrowError(t *testing.T) {
	list := NewArrayList(10, 20)

	err := list.Insert(4, 30)
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestArrayList_InsertSorted(t *testing.T) {
	list := &ArrayList[int]{}
	less := func(a, b int) bool { return a < b }

	for _, n := range []int{30, 10, 20, 10, 40} {
		list.InsertSorted(n, less)
	}

	expected := []int{10, 10, 20, 30, 40}
	got := list.GetAll()
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("Expected %v, got %v", expected, got)
		}
	}
}

func TestArrayList_Find(t *testing.T) {
	list := NewArrayList(10, 20, 30)

	number, index, found := list.Find(func(number int) bool {
		return number == 20
	})

	if !found {
		t.Errorf("Expected true, got %v", found)
	}
	if number != 20 || index != 1 {
		t.Errorf("Expected to find 20 at index 1, got %d at %d", number, index)
	}

	_, index, found = list.Find(func(number int) bool { return number == 99 })
	if found || index != -1 {
		t.Errorf("Expected not found with index -1, got %v %d", found, index)
	}
}

func TestArrayList_RemoveWhere(t *testing.T) {
	list := NewArrayList(10, 20, 20, 30)

	if !list.RemoveWhere(func(n int) bool { return n == 20 }) {
		t.Errorf("Expected RemoveWhere to report a removal")
	}
	if list.Size() != 3 {
		t.Errorf("Expected only the first match to be removed, got size %d", list.Size())
	}
	if list.RemoveWhere(func(n int) bool { return n == 99 }) {
		t.Errorf("Expected RemoveWhere to report no removal")
	}
}

func TestArrayList_Drain(t *testing.T) {
	list := NewArrayList(1, 2, 3)

	drained := list.Drain()

	if len(drained) != 3 || drained[0] != 1 || drained[2] != 3 {
		t.Errorf("Expected [1 2 3], got %v", drained)
	}
	if list.Size() != 0 {
		t.Errorf("Expected empty list after Drain, got size %d", list.Size())
	}

	list.Add(4)
	if drained[0] != 1 {
		t.Errorf("Expected drained slice to be independent of the list")
	}
}

func TestArrayList_GetAll_ReturnsCopy(t *testing.T) {
	list := NewArrayList(1, 2)

	items := list.GetAll()
	items[0] = 100

	value, _ := list.Get(0)
	if value != 1 {
		t.Errorf("Expected internal slice untouched, got %d", value)
	}
}
