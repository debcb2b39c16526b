package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Memory is a process-local cache with per-entry expiry and LRU eviction
// once maxEntries is reached.
type Memory[V any] struct {
	cfg     MemoryConfig
	index   map[string]*list.Element
	recency *list.List // front = most recently used
	stop    chan struct{}
	mu      sync.Mutex
	closed  bool
}

type memEntry[V any] struct {
	key       string
	value     V
	expiresAt time.Time // zero = never
}

func (e *memEntry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryConfig holds Memory settings. Zero fields take defaults:
// one hour ttl, one minute sweep, unlimited entries. A negative
// SweepInterval disables the sweeper.
type MemoryConfig struct {
	DefaultTTL    time.Duration
	SweepInterval time.Duration
	MaxEntries    int
}

// NewMemory starts a Memory cache. A background sweeper removes expired
// entries until Close is called.
func NewMemory[V any](cfg MemoryConfig) *Memory[V] {
	if cfg.DefaultTTL == 0 {
		cfg.DefaultTTL = time.Hour
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = time.Minute
	}

	m := &Memory[V]{
		cfg:     cfg,
		index:   make(map[string]*list.Element),
		recency: list.New(),
		stop:    make(chan struct{}),
	}
	if cfg.SweepInterval > 0 {
		go m.sweep()
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	var zero V

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return zero, ErrClosed
	}

	el, ok := m.index[key]
	if !ok {
		return zero, ErrNotFound
	}
	e := el.Value.(*memEntry[V])
	if e.expired(time.Now()) {
		m.remove(el)
		return zero, ErrNotFound
	}
	m.recency.MoveToFront(el)
	return e.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.cfg.DefaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if el, ok := m.index[key]; ok {
		e := el.Value.(*memEntry[V])
		e.value, e.expiresAt = value, expiresAt
		m.recency.MoveToFront(el)
		return nil
	}

	if m.cfg.MaxEntries > 0 && len(m.index) >= m.cfg.MaxEntries {
		if oldest := m.recency.Back(); oldest != nil {
			m.remove(oldest)
		}
	}

	m.index[key] = m.recency.PushFront(&memEntry[V]{key: key, value: value, expiresAt: expiresAt})
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if el, ok := m.index[key]; ok {
		m.remove(el)
	}
	return nil
}

func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	clear(m.index)
	m.recency.Init()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.index)
}

// Close stops the sweeper. It is safe to call more than once.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.stop)
	}
	return nil
}

func (m *Memory[V]) sweep() {
	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for el := m.recency.Back(); el != nil; {
				prev := el.Prev()
				if el.Value.(*memEntry[V]).expired(now) {
					m.remove(el)
				}
				el = prev
			}
			m.mu.Unlock()
		}
	}
}

// remove must be called with mu held.
func (m *Memory[V]) remove(el *list.Element) {
	m.recency.Remove(el)
	delete(m.index, el.Value.(*memEntry[V]).key)
}

var _ Cache[any] = (*Memory[any])(nil)
