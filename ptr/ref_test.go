package ptr

import (
	"errors"
	"testing"

	sperrors "github.com/zgrigoryan/shared-pointer/errors"
)

func TestRef_EmptyHandle(t *testing.T) {
	var r Ref[int]

	if r.Valid() {
		t.Fatal("zero Ref should be empty")
	}
	if r.Get() != nil {
		t.Fatal("Get on empty Ref should return nil")
	}
	if r.UseCount() != 0 {
		t.Fatalf("UseCount on empty Ref = %d, want 0", r.UseCount())
	}
	if r.Unique() {
		t.Fatal("empty Ref should not be unique")
	}
}

func TestRef_AdoptNil(t *testing.T) {
	r := Adopt[int](nil)
	if r.Valid() {
		t.Fatal("adopting nil should yield an empty handle")
	}
	if r.UseCount() != 0 {
		t.Fatal("adopting nil should not allocate a control block")
	}
}

func TestRef_CloneAndRelease(t *testing.T) {
	n := 10
	a := Adopt(&n)

	if !a.Valid() {
		t.Fatal("adopted handle should be valid")
	}
	if a.UseCount() != 1 {
		t.Fatalf("UseCount after adopt = %d, want 1", a.UseCount())
	}
	if !a.Unique() {
		t.Fatal("sole owner should be unique")
	}

	b := a.Clone()
	if a.UseCount() != 2 || b.UseCount() != 2 {
		t.Fatalf("UseCount after clone = %d/%d, want 2/2", a.UseCount(), b.UseCount())
	}
	if a.Unique() {
		t.Fatal("shared handle should not be unique")
	}
	if b.Get() != &n {
		t.Fatal("clone should manage the same pointer")
	}

	b.Release()
	if a.UseCount() != 1 {
		t.Fatalf("UseCount after releasing clone = %d, want 1", a.UseCount())
	}
	if b.Valid() {
		t.Fatal("released handle should be empty")
	}

	a.Release()
	if a.Valid() {
		t.Fatal("released handle should be empty")
	}
}

func TestRef_DeleterRunsExactlyOnce(t *testing.T) {
	n := 10
	calls := 0
	var got *int

	a := AdoptWith(&n, func(p *int) {
		calls++
		got = p
	})
	b := a.Clone()
	c := b.Clone()

	a.Release()
	b.Release()
	if calls != 0 {
		t.Fatal("deleter should not run while references remain")
	}

	c.Release()
	if calls != 1 {
		t.Fatalf("deleter ran %d times, want 1", calls)
	}
	if got != &n {
		t.Fatal("deleter should receive the original pointer")
	}
}

func TestRef_Move(t *testing.T) {
	n := 10
	m := Adopt(&n)

	moved := m.Move()
	if m.Valid() {
		t.Fatal("source of a move should be empty")
	}
	if m.UseCount() != 0 {
		t.Fatalf("source UseCount after move = %d, want 0", m.UseCount())
	}
	if !moved.Valid() {
		t.Fatal("destination of a move should be valid")
	}
	if moved.UseCount() != 1 {
		t.Fatalf("destination UseCount after move = %d, want 1", moved.UseCount())
	}
	if moved.Get() != &n {
		t.Fatal("move should transfer the managed pointer")
	}

	moved.Release()
}

func TestRef_MoveDoesNotChangeCount(t *testing.T) {
	n := 10
	a := Adopt(&n)
	b := a.Clone()

	c := b.Move()
	if a.UseCount() != 2 || c.UseCount() != 2 {
		t.Fatalf("UseCount after move = %d/%d, want 2/2", a.UseCount(), c.UseCount())
	}

	c.Release()
	a.Release()
}

func TestRef_ReleaseEmptyIsNoop(t *testing.T) {
	calls := 0
	n := 10
	a := AdoptWith(&n, func(*int) { calls++ })
	a.Release()
	a.Release()
	a.Release()

	if calls != 1 {
		t.Fatalf("deleter ran %d times, want 1", calls)
	}

	var empty Ref[int]
	empty.Release() // must not panic
}

func TestRef_Reset(t *testing.T) {
	first := 1
	second := 2
	calls := 0

	a := AdoptWith(&first, func(*int) { calls++ })
	a.ResetWith(&second, func(*int) { calls++ })

	if calls != 1 {
		t.Fatalf("deleter for first resource ran %d times, want 1", calls)
	}
	if a.Get() != &second {
		t.Fatal("Reset should adopt the new pointer")
	}
	if a.UseCount() != 1 {
		t.Fatalf("UseCount after Reset = %d, want 1", a.UseCount())
	}

	a.Release()
	if calls != 2 {
		t.Fatalf("deleter for second resource ran %d times total, want 2", calls)
	}
}

func TestRef_ResetSamePointerIsNoop(t *testing.T) {
	n := 10
	calls := 0
	a := AdoptWith(&n, func(*int) { calls++ })
	b := a.Clone()

	a.Reset(&n)
	if calls != 0 {
		t.Fatal("reset to the held pointer must not release it")
	}
	if a.UseCount() != 2 {
		t.Fatalf("UseCount after same-pointer reset = %d, want 2", a.UseCount())
	}

	a.Release()
	b.Release()
	if calls != 1 {
		t.Fatalf("deleter ran %d times, want 1", calls)
	}
}

func TestRef_ResetNilReleases(t *testing.T) {
	n := 10
	calls := 0
	a := AdoptWith(&n, func(*int) { calls++ })

	a.Reset(nil)
	if a.Valid() {
		t.Fatal("reset to nil should empty the handle")
	}
	if calls != 1 {
		t.Fatalf("deleter ran %d times, want 1", calls)
	}
}

func TestRef_Set(t *testing.T) {
	x, y := 1, 2
	xCalls, yCalls := 0, 0
	a := AdoptWith(&x, func(*int) { xCalls++ })
	b := AdoptWith(&y, func(*int) { yCalls++ })

	a.Set(b)
	if xCalls != 1 {
		t.Fatal("copy-assignment should release the previous resource")
	}
	if a.Get() != &y {
		t.Fatal("copy-assignment should share the new resource")
	}
	if a.UseCount() != 2 || b.UseCount() != 2 {
		t.Fatalf("UseCount after Set = %d/%d, want 2/2", a.UseCount(), b.UseCount())
	}

	a.Set(a) // self-assignment is a no-op
	if a.UseCount() != 2 {
		t.Fatal("self-assignment must not change the count")
	}

	a.Release()
	b.Release()
	if yCalls != 1 {
		t.Fatalf("deleter for shared resource ran %d times, want 1", yCalls)
	}
}

func TestRef_SetPtr(t *testing.T) {
	x, y := 1, 2
	a := Adopt(&x)
	a.SetPtr(&y)

	if a.Get() != &y {
		t.Fatal("SetPtr should adopt the raw pointer")
	}
	if a.UseCount() != 1 {
		t.Fatalf("UseCount after SetPtr = %d, want 1", a.UseCount())
	}
	a.Release()
}

func TestRef_Swap(t *testing.T) {
	x, y := 1, 2
	a := Adopt(&x)
	b := Adopt(&y)
	c := b.Clone()

	a.Swap(&b)

	if a.Get() != &y || b.Get() != &x {
		t.Fatal("swap should exchange the managed pointers")
	}
	if a.UseCount() != 2 {
		t.Fatalf("a.UseCount after swap = %d, want 2", a.UseCount())
	}
	if b.UseCount() != 1 {
		t.Fatalf("b.UseCount after swap = %d, want 1", b.UseCount())
	}

	a.Release()
	b.Release()
	c.Release()
}

func TestRef_FreeSwap(t *testing.T) {
	x, y := 1, 2
	a := Adopt(&x)
	b := Adopt(&y)

	Swap(&a, &b)
	if a.Get() != &y || b.Get() != &x {
		t.Fatal("free Swap should delegate to handle swap")
	}

	a.Release()
	b.Release()
}

func TestRef_Equal(t *testing.T) {
	x := 1
	y := 1 // equal value, different address
	a := Adopt(&x)
	b := a.Clone()
	c := Adopt(&y)
	var e1, e2 Ref[int]

	if !a.Equal(&a) {
		t.Fatal("handle should equal itself")
	}
	if !a.Equal(&b) {
		t.Fatal("handles sharing one resource should be equal")
	}
	if a.Equal(&c) {
		t.Fatal("handles over different addresses should not be equal, even with equal pointees")
	}
	if !e1.Equal(&e2) {
		t.Fatal("two empty handles should be equal")
	}
	if a.Equal(&e1) {
		t.Fatal("live handle should not equal an empty one")
	}
	if !Equal(&a, &b) {
		t.Fatal("free Equal should delegate to handle equality")
	}

	a.Release()
	b.Release()
	c.Release()
}

func TestRef_ValuePanicsOnEmpty(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Value on empty handle should panic")
		}
		err, ok := r.(*sperrors.Error)
		if !ok {
			t.Fatalf("panic value %T, want *errors.Error", r)
		}
		if !errors.Is(err, sperrors.NilPointer(sperrors.PhaseAccess, "deref")) {
			t.Fatalf("panic error = %v, want access/nil_pointer", err)
		}
	}()

	var r Ref[int]
	_ = r.Value()
}

func TestRef_Value(t *testing.T) {
	n := 10
	a := Adopt(&n)
	if a.Value() != 10 {
		t.Fatalf("Value = %d, want 10", a.Value())
	}
	a.Release()
}

func TestRef_ScenarioAdoptCloneDestroy(t *testing.T) {
	released := false
	n := 10

	a := AdoptWith(&n, func(p *int) {
		if *p != 10 {
			t.Errorf("deleter saw value %d, want 10", *p)
		}
		released = true
	})
	b := a.Clone()

	if a.UseCount() != 2 || b.UseCount() != 2 {
		t.Fatalf("UseCount = %d/%d, want 2/2", a.UseCount(), b.UseCount())
	}

	b.Release()
	if a.UseCount() != 1 {
		t.Fatalf("UseCount after destroying b = %d, want 1", a.UseCount())
	}
	if released {
		t.Fatal("cleanup must wait for the last handle")
	}

	a.Release()
	if !released {
		t.Fatal("cleanup should run when the last handle is destroyed")
	}
}
