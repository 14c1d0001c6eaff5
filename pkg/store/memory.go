package store

import (
	"context"
	"sort"
	"sync"
)

// NewMemory returns a Persistence that keeps everything in process memory.
// Watch reports every Set and Remove.
func NewMemory() Persistence {
	return &memory{values: make(map[string]string)}
}

type memory struct {
	mu       sync.Mutex
	values   map[string]string
	watchers []chan Event
}

func (m *memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.notify(key)
	return nil
}

func (m *memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; ok {
		delete(m.values, key)
		m.notify(key)
	}
	return nil
}

func (m *memory) Keys(_ context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *memory) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 64)
	m.mu.Lock()
	m.watchers = append(m.watchers, ch)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, w := range m.watchers {
			if w == ch {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}

// notify must be called with mu held.
func (m *memory) notify(key string) {
	for _, w := range m.watchers {
		select {
		case w <- Event{Type: EventKeyChanged, Key: key}:
		default:
		}
	}
}
