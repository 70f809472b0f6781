package threads

import "iter"

// Loop is the loop runner for one active loop of a Thread. Compiled loop
// constructs call Step after establishing that another iteration exists and
// before running its body.
type Loop struct {
	thread    *Thread
	epoch     uint64
	remaining int
}

// NewLoop returns a loop runner bound to t. A nil Thread yields a runner that
// never suspends, for loops executed outside any Thread.
func (t *Thread) NewLoop() *Loop {
	return &Loop{
		thread: t,
	}
}

func (l *Loop) Step() {
	if l == nil || l.thread == nil {
		return
	}
	t := l.thread
	if l.epoch != t.epoch {
		// first iteration in this frame-slice
		l.sample()
	}
	if l.remaining <= 0 {
		t.Suspend()
		l.sample()
	}
	l.remaining--
}

func (l *Loop) sample() {
	l.epoch = l.thread.epoch
	l.remaining = l.thread.Budgets.Current()
}

func (t *Thread) Range(n int, body func(i int) error) error {
	loop := t.NewLoop()
	for i := range n {
		loop.Step()
		if err := body(i); err != nil {
			return err
		}
	}
	return nil
}

func (t *Thread) While(cond func() bool, body func() error) error {
	loop := t.NewLoop()
	for cond() {
		loop.Step()
		if err := body(); err != nil {
			return err
		}
	}
	return nil
}

func Each[T any](t *Thread, seq iter.Seq[T], body func(T) error) error {
	loop := t.NewLoop()
	for v := range seq {
		loop.Step()
		if err := body(v); err != nil {
			return err
		}
	}
	return nil
}
