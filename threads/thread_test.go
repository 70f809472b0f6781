package threads

import (
	"errors"
	"strings"
	"testing"
)

func TestThreadStates(t *testing.T) {
	th := New(Spec{}, func(th *Thread) error {
		return th.Range(3, func(int) error {
			return nil
		})
	})
	if th.State() != Runnable {
		t.Fatal()
	}
	if s := th.Resume(); s != Suspended {
		t.Fatalf("got %v", s)
	}
	th.Resume()
	if s := th.Resume(); s != Completed {
		t.Fatalf("got %v", s)
	}
	// terminal states are final
	if s := th.Resume(); s != Completed {
		t.Fatalf("got %v", s)
	}
}

func TestThreadError(t *testing.T) {
	th := New(Spec{Name: "Counter.run"}, func(th *Thread) error {
		return th.Budgets.Pop()
	})
	if s := th.Resume(); s != Errored {
		t.Fatalf("got %v", s)
	}
	if !errors.Is(th.Err(), ErrPopBase) {
		t.Fatalf("got %v", th.Err())
	}
	var scriptErr *ScriptError
	if !errors.As(th.Err(), &scriptErr) {
		t.Fatal()
	}
	if len(scriptErr.Locations) != 1 || scriptErr.Locations[0] != "Counter.run" {
		t.Fatalf("got %v", scriptErr.Locations)
	}
	if !strings.Contains(th.Err().Error(), "cannot pop the base") {
		t.Fatalf("got %v", th.Err())
	}
}

func TestThreadPanic(t *testing.T) {
	th := New(Spec{}, func(th *Thread) error {
		th.Range(2, func(int) error {
			return nil
		})
		var m map[string]int
		m["boom"] = 1
		return nil
	})
	th.Resume()
	if s := th.Resume(); s != Errored {
		t.Fatalf("got %v", s)
	}
	var scriptErr *ScriptError
	if !errors.As(th.Err(), &scriptErr) {
		t.Fatalf("got %T", th.Err())
	}
	if len(scriptErr.Locations) == 0 {
		t.Fatal("no locations")
	}
	found := false
	for _, loc := range scriptErr.Locations {
		if strings.Contains(loc, "thread_test.go") {
			found = true
		}
	}
	if !found {
		t.Fatalf("got %v", scriptErr.Locations)
	}
	innermost := scriptErr.Locations[len(scriptErr.Locations)-1]
	if !strings.Contains(innermost, "thread_test.go") || !strings.Contains(innermost, "TestThreadPanic") {
		t.Fatalf("got %v", scriptErr.Locations)
	}
	for _, loc := range scriptErr.Locations {
		if strings.Contains(loc, "runtime.") || strings.Contains(loc, "/threads/thread.go") {
			t.Fatalf("machinery in %v", scriptErr.Locations)
		}
	}
}

func TestThreadPanicValue(t *testing.T) {
	th := New(Spec{}, func(th *Thread) error {
		panic(42)
	})
	if s := th.Resume(); s != Errored {
		t.Fatalf("got %v", s)
	}
	var scriptErr *ScriptError
	if !errors.As(th.Err(), &scriptErr) {
		t.Fatalf("got %T", th.Err())
	}
	if scriptErr.Err.Error() != "panic: 42" {
		t.Fatalf("got %v", scriptErr.Err)
	}
	if len(scriptErr.Locations) == 0 ||
		!strings.Contains(scriptErr.Locations[len(scriptErr.Locations)-1], "thread_test.go") {
		t.Fatalf("got %v", scriptErr.Locations)
	}
}

func TestThreadKill(t *testing.T) {
	var after bool
	th := New(Spec{}, func(th *Thread) error {
		th.Range(10, func(int) error {
			return nil
		})
		after = true
		return nil
	})
	th.Resume()
	th.Kill()
	if th.State() != Completed {
		t.Fatalf("got %v", th.State())
	}
	th.Resume()
	if after {
		t.Fatal("ran after kill")
	}

	// never started
	started := false
	th = New(Spec{}, func(th *Thread) error {
		started = true
		return nil
	})
	th.Kill()
	th.Resume()
	if started || th.State() != Completed {
		t.Fatal()
	}
}

func TestThreadExit(t *testing.T) {
	var after bool
	th := New(Spec{}, func(th *Thread) error {
		th.Exit()
		after = true
		return nil
	})
	if s := th.Resume(); s != Completed {
		t.Fatalf("got %v", s)
	}
	if after {
		t.Fatal()
	}
}

func TestThreadOnDestroyedInstance(t *testing.T) {
	alive := true
	runs := 0
	th := New(Spec{
		Instance: 3,
		Alive: func(id uint64) bool {
			return id == 3 && alive
		},
	}, func(th *Thread) error {
		return th.Range(10, func(int) error {
			runs++
			return nil
		})
	})
	th.Resume()
	alive = false
	if s := th.Resume(); s != Completed {
		t.Fatalf("got %v", s)
	}
	if runs != 1 {
		t.Fatalf("got %d", runs)
	}
	if th.Err() != nil {
		t.Fatal()
	}
}

func TestBatchReleasesBudgetOnError(t *testing.T) {
	boom := errors.New("boom")
	th := New(Spec{}, func(th *Thread) error {
		err := th.BatchN(7, func() error {
			if th.Budgets.Current() != 7 {
				t.Fatal()
			}
			return boom
		})
		if th.Budgets.Depth() != 1 {
			t.Fatal("budget not released")
		}
		return err
	})
	if s := th.Resume(); s != Errored {
		t.Fatalf("got %v", s)
	}
	if !errors.Is(th.Err(), boom) {
		t.Fatal()
	}

	th = New(Spec{}, func(th *Thread) error {
		return th.BatchN(0, func() error {
			return nil
		})
	})
	th.Resume()
	if !errors.Is(th.Err(), ErrInvalidBudget) {
		t.Fatalf("got %v", th.Err())
	}
}
