package notify

import (
	"context"
	"sync"

	"github.com/JaimeStill/storefront/pkg/lifecycle"
)

// Memory is an in-process broker. Slow subscribers miss messages rather
// than blocking publishers.
type Memory struct {
	mu     sync.Mutex
	subs   map[chan Message]struct{}
	buffer int
	closed bool
}

// NewMemory creates an in-process broker with the given per-subscriber buffer.
func NewMemory(buffer int) *Memory {
	if buffer <= 0 {
		buffer = 16
	}
	return &Memory{
		subs:   make(map[chan Message]struct{}),
		buffer: buffer,
	}
}

func (m *Memory) Publish(ctx context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	for ch := range m.subs {
		select {
		case ch <- msg:
		default:
		}
	}
	return nil
}

func (m *Memory) Subscribe(ctx context.Context) (<-chan Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	ch := make(chan Message, m.buffer)
	m.subs[ch] = struct{}{}

	go func() {
		<-ctx.Done()
		m.remove(ch)
	}()

	return ch, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	for ch := range m.subs {
		delete(m.subs, ch)
		close(ch)
	}
	return nil
}

// Start closes the broker on shutdown.
func (m *Memory) Start(lc *lifecycle.Coordinator) error {
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		m.Close()
	})
	return nil
}

func (m *Memory) remove(ch chan Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.subs[ch]; ok {
		delete(m.subs, ch)
		close(ch)
	}
}
