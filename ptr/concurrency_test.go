//go:build !sharedptr_plain

package ptr

import (
	"sync"
	"testing"
)

// These tests exercise the atomic counter build; they are excluded under
// sharedptr_plain, where concurrent counter access is undefined.

func TestRef_ConcurrentCloneRelease(t *testing.T) {
	calls := 0
	n := 10
	root := AdoptWith(&n, func(*int) { calls++ })

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		h := root.Clone()
		wg.Add(1)
		go func(h Ref[int]) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c := h.Clone()
				if c.Get() != &n {
					t.Error("clone lost the managed pointer")
					return
				}
				c.Release()
			}
			h.Release()
		}(h)
	}
	wg.Wait()

	if calls != 0 {
		t.Fatal("cleanup ran while the root handle was still live")
	}
	if root.UseCount() != 1 {
		t.Fatalf("UseCount after workers = %d, want 1", root.UseCount())
	}

	root.Release()
	if calls != 1 {
		t.Fatalf("cleanup ran %d times, want 1", calls)
	}
}

func TestRef_ConcurrentLastRelease(t *testing.T) {
	for iter := 0; iter < 50; iter++ {
		var mu sync.Mutex
		calls := 0
		n := iter
		root := AdoptWith(&n, func(*int) {
			mu.Lock()
			calls++
			mu.Unlock()
		})

		const workers = 8
		handles := make([]Ref[int], workers)
		for i := range handles {
			handles[i] = root.Clone()
		}
		root.Release()

		var wg sync.WaitGroup
		for i := range handles {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				handles[i].Release()
			}(i)
		}
		wg.Wait()

		if calls != 1 {
			t.Fatalf("iteration %d: cleanup ran %d times, want 1", iter, calls)
		}
	}
}

func TestArr_ConcurrentCloneRelease(t *testing.T) {
	calls := 0
	root := AdoptSliceWith([]int{1, 2, 3}, func([]int) { calls++ })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		h := root.Clone()
		wg.Add(1)
		go func(h Arr[int]) {
			defer wg.Done()
			if h.At(2) != 3 {
				t.Error("shared element read failed")
			}
			h.Release()
		}(h)
	}
	wg.Wait()

	root.Release()
	if calls != 1 {
		t.Fatalf("cleanup ran %d times, want 1", calls)
	}
}
