package hosts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/reusee/stagecoach/logs"
	"github.com/reusee/stagecoach/projects"
	"github.com/reusee/stagecoach/syncs"
	"golang.org/x/net/websocket"
)

// Command is what feed clients send.
type Command struct {
	Kind string  `json:"kind"`
	Key  string  `json:"key,omitempty"`
	Down bool    `json:"down,omitempty"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
	Name string  `json:"name,omitempty"`
}

var ErrUnknownCommand = errors.New("unknown command")

const (
	maxConcurrentSends  = 8
	frameBuffer         = 2
	defaultWriteTimeout = 5 * time.Second
)

// Feed streams frames to websocket clients and turns their commands into
// Input events.
type Feed struct {
	input        *Input
	logger       logs.Logger
	sends        syncs.Semaphore
	writeTimeout time.Duration

	mu      sync.Mutex
	clients map[*websocket.Conn]*feedClient
}

var _ Sink = new(Feed)

// feedClient owns the writes to one connection. Present only queues frames;
// a client that falls behind skips to the latest frame.
type feedClient struct {
	ws     *websocket.Conn
	addr   string
	frames chan projects.FrameResult
	done   chan struct{}
}

func NewFeed(input *Input, logger logs.Logger) *Feed {
	if logger == nil {
		logger = logs.Discard()
	}
	return &Feed{
		input:        input,
		logger:       logger,
		sends:        syncs.NewSemaphore(maxConcurrentSends),
		writeTimeout: defaultWriteTimeout,
		clients:      make(map[*websocket.Conn]*feedClient),
	}
}

func (f *Feed) Handler() websocket.Handler {
	return f.serve
}

func (f *Feed) serve(ws *websocket.Conn) {
	client := &feedClient{
		ws:     ws,
		addr:   ws.Request().RemoteAddr,
		frames: make(chan projects.FrameResult, frameBuffer),
		done:   make(chan struct{}),
	}
	f.mu.Lock()
	f.clients[ws] = client
	f.mu.Unlock()
	f.logger.Info("feed client connected", "addr", client.addr)
	go f.write(ws.Request().Context(), client)
	defer func() {
		f.remove(client)
		f.logger.Info("feed client disconnected", "addr", client.addr)
	}()

	for {
		var cmd Command
		if err := websocket.JSON.Receive(ws, &cmd); err != nil {
			if !errors.Is(err, io.EOF) {
				f.logger.Warn("feed receive", "addr", client.addr, "error", err)
			}
			return
		}
		if err := f.Apply(cmd); err != nil {
			f.logger.Warn("feed command", "addr", client.addr, "kind", cmd.Kind, "error", err)
		}
	}
}

func (f *Feed) write(ctx context.Context, client *feedClient) {
	for {
		select {
		case <-client.done:
			return
		case frame := <-client.frames:
			if err := f.send(ctx, client, &frame); err != nil {
				f.logger.Warn("feed send", "addr", client.addr, "error", err)
				f.remove(client)
				return
			}
		}
	}
}

func (f *Feed) send(ctx context.Context, client *feedClient, frame *projects.FrameResult) error {
	if err := f.sends.Acquire(ctx); err != nil {
		return err
	}
	defer f.sends.Release()
	if err := client.ws.SetWriteDeadline(time.Now().Add(f.writeTimeout)); err != nil {
		return err
	}
	return websocket.JSON.Send(client.ws, frame)
}

// offer queues frame without blocking, replacing a queued stale frame when
// the buffer is full.
func (c *feedClient) offer(frame projects.FrameResult) bool {
	for range frameBuffer {
		select {
		case c.frames <- frame:
			return true
		default:
		}
		select {
		case <-c.frames:
		default:
		}
	}
	return false
}

// Apply queues the input event a command stands for.
func (f *Feed) Apply(cmd Command) error {
	switch cmd.Kind {
	case "flag":
		f.input.GreenFlag()
	case "stop":
		f.input.Stop()
	case "key":
		if cmd.Down {
			f.input.KeyDown(cmd.Key)
		} else {
			f.input.KeyUp(cmd.Key)
		}
	case "click":
		f.input.Click(cmd.X, cmd.Y)
	case "broadcast":
		f.input.Broadcast(cmd.Name)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Kind)
	}
	return nil
}

func (f *Feed) remove(client *feedClient) {
	f.mu.Lock()
	_, ok := f.clients[client.ws]
	delete(f.clients, client.ws)
	f.mu.Unlock()
	if !ok {
		return
	}
	close(client.done)
	client.ws.Close()
}

// Present queues the frame for every client and returns without waiting for
// the writes. Slow clients skip frames; clients whose writes fail or time out
// are dropped.
func (f *Feed) Present(ctx context.Context, frame projects.FrameResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	clients := make([]*feedClient, 0, len(f.clients))
	for _, client := range f.clients {
		clients = append(clients, client)
	}
	f.mu.Unlock()
	for _, client := range clients {
		if !client.offer(frame) {
			f.logger.Debug("feed frame skipped", "addr", client.addr, "frame", frame.Frame)
		}
	}
	return nil
}

func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}
