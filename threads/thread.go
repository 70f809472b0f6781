package threads

import (
	"errors"
	"iter"
)

type State uint8

const (
	Runnable State = iota
	Suspended
	Completed
	Errored
)

func (s State) String() string {
	switch s {
	case Runnable:
		return "runnable"
	case Suspended:
		return "suspended"
	case Completed:
		return "completed"
	case Errored:
		return "errored"
	}
	return "unknown"
}

func (s State) Terminal() bool {
	return s == Completed || s == Errored
}

// Origin tags where a failure happened, for report shaping only.
type Origin uint8

const (
	OriginRun Origin = iota
	OriginBuild
)

func (o Origin) String() string {
	if o == OriginBuild {
		return "build"
	}
	return "run"
}

// Body is one invocation of a handler.
type Body func(t *Thread) error

type Spec struct {
	ID       uint64
	Instance uint64
	Handler  int
	Name     string
	// Alive reports whether the instance the Thread runs on still exists.
	Alive func(instance uint64) bool
}

// Thread is a resumable unit of execution. Its continuation is a coroutine
// holding the whole call stack of the handler, so a suspension anywhere inside
// nested calls parks the entire Thread.
type Thread struct {
	ID       uint64
	Instance uint64
	Handler  int
	Name     string
	Budgets  *BudgetStack

	body    Body
	alive   func(uint64) bool
	state   State
	err     error
	epoch   uint64
	running bool
	killed  bool

	yield func(struct{}) bool
	next  func() (struct{}, bool)
	stop  func()
}

var (
	errKilled = errors.New("thread killed")
	errExit   = errors.New("thread exited")
)

func New(spec Spec, body Body) *Thread {
	return &Thread{
		ID:       spec.ID,
		Instance: spec.Instance,
		Handler:  spec.Handler,
		Name:     spec.Name,
		Budgets:  NewBudgetStack(),
		body:     body,
		alive:    spec.Alive,
		state:    Runnable,
	}
}

func (t *Thread) State() State {
	return t.state
}

// Err returns the failure of an Errored Thread.
func (t *Thread) Err() error {
	return t.err
}

// Running reports whether the Thread is the one currently executing.
func (t *Thread) Running() bool {
	return t.running
}

func (t *Thread) run(yield func(struct{}) bool) {
	t.yield = yield
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if p == errKilled || p == errExit {
			t.state = Completed
			return
		}
		t.fail(panicError(p))
	}()
	if err := t.body(t); err != nil {
		t.fail(err)
		return
	}
	t.state = Completed
}

func (t *Thread) fail(err error) {
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		err = &ScriptError{
			Err:       err,
			Locations: []string{t.Name},
		}
	}
	t.err = err
	t.state = Errored
}

// Resume runs the Thread until it suspends or reaches a terminal state. A
// Thread whose instance has been destroyed completes without running any
// further handler code.
func (t *Thread) Resume() State {
	if t.state.Terminal() {
		return t.state
	}
	if t.alive != nil && !t.alive(t.Instance) {
		t.Kill()
		return t.state
	}
	if t.next == nil {
		t.next, t.stop = iter.Pull(t.run)
	}
	t.epoch++
	t.state = Runnable
	t.running = true
	_, ok := t.next()
	t.running = false
	if ok {
		t.state = Suspended
	} else {
		t.release()
	}
	return t.state
}

// Suspend parks the Thread until the next Resume. It must be called from the
// Thread's own body.
func (t *Thread) Suspend() {
	if !t.running {
		panic("threads: Suspend called outside the running thread")
	}
	if t.killed || !t.yield(struct{}{}) {
		panic(errKilled)
	}
}

// Kill discards the continuation without running further handler code.
func (t *Thread) Kill() {
	if t.state.Terminal() {
		return
	}
	if t.running {
		t.Exit()
		return
	}
	t.killed = true
	if t.stop != nil {
		t.stop()
	}
	t.state = Completed
	t.release()
}

// Exit ends the running Thread from inside its own body.
func (t *Thread) Exit() {
	if !t.running {
		t.Kill()
		return
	}
	panic(errExit)
}

func (t *Thread) release() {
	t.next = nil
	t.stop = nil
	t.yield = nil
}
