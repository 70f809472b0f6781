package hosts

import (
	"sync"
	"testing"
)

func TestInputDrain(t *testing.T) {
	input := NewInput()
	input.KeyDown("a")
	input.Click(1, 2)
	input.Press("b")
	events := input.Drain()
	if len(events) != 3 {
		t.Fatalf("got %+v", events)
	}
	if events[0].Kind != KeyDown || events[0].Key != "a" {
		t.Fatalf("got %+v", events[0])
	}
	if events[1].Kind != Click || events[1].X != 1 || events[1].Y != 2 {
		t.Fatalf("got %+v", events[1])
	}
	if events[2].Kind != KeyDown || events[2].Key != "b" {
		t.Fatalf("got %+v", events[2])
	}

	// the press releases one drain later
	events = input.Drain()
	if len(events) != 1 || events[0].Kind != KeyUp || events[0].Key != "b" {
		t.Fatalf("got %+v", events)
	}
	if events := input.Drain(); len(events) != 0 {
		t.Fatalf("got %+v", events)
	}
}

func TestInputConcurrent(t *testing.T) {
	input := NewInput()
	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 100 {
				input.Broadcast("tick")
			}
		})
	}
	wg.Wait()
	if n := len(input.Drain()); n != 800 {
		t.Fatalf("got %d", n)
	}
}
