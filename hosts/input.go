package hosts

import "sync"

type EventKind uint8

const (
	KeyDown EventKind = iota + 1
	KeyUp
	Click
	GreenFlag
	StopAll
	Message
)

func (k EventKind) String() string {
	switch k {
	case KeyDown:
		return "key down"
	case KeyUp:
		return "key up"
	case Click:
		return "click"
	case GreenFlag:
		return "green flag"
	case StopAll:
		return "stop"
	case Message:
		return "broadcast"
	}
	return "unknown"
}

// Event is one piece of host input, applied to the project at the start of
// the next frame.
type Event struct {
	Kind EventKind
	Key  string
	X, Y float64
	Name string
}

// Input collects events from any number of goroutines between frames.
type Input struct {
	mu       sync.Mutex
	events   []Event
	releases []string
}

func NewInput() *Input {
	return new(Input)
}

func (i *Input) Push(ev Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.events = append(i.events, ev)
}

func (i *Input) KeyDown(key string) {
	i.Push(Event{Kind: KeyDown, Key: key})
}

func (i *Input) KeyUp(key string) {
	i.Push(Event{Kind: KeyUp, Key: key})
}

// Press is a key down whose release arrives one frame later, for sources
// like terminals that never report releases.
func (i *Input) Press(key string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.events = append(i.events, Event{Kind: KeyDown, Key: key})
	i.releases = append(i.releases, key)
}

func (i *Input) Click(x, y float64) {
	i.Push(Event{Kind: Click, X: x, Y: y})
}

func (i *Input) GreenFlag() {
	i.Push(Event{Kind: GreenFlag})
}

func (i *Input) Stop() {
	i.Push(Event{Kind: StopAll})
}

func (i *Input) Broadcast(name string) {
	i.Push(Event{Kind: Message, Name: name})
}

// Drain returns the pending events in arrival order. Releases of pressed
// keys become pending for the following drain.
func (i *Input) Drain() []Event {
	i.mu.Lock()
	defer i.mu.Unlock()
	ret := i.events
	i.events = nil
	for _, key := range i.releases {
		i.events = append(i.events, Event{Kind: KeyUp, Key: key})
	}
	i.releases = i.releases[:0]
	return ret
}

func (i *Input) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.events)
}
