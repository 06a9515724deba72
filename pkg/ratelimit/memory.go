package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count int
	start time.Time
}

// Memory keeps per-key windows in process. Suitable for a single instance.
type Memory struct {
	mu      sync.Mutex
	windows map[string]*window
	size    time.Duration
	max     int
	now     func() time.Time

	stop chan struct{}
	once sync.Once
}

// NewMemory creates a limiter admitting max requests per key per window and
// starts a janitor that drops expired windows.
func NewMemory(size time.Duration, max int) *Memory {
	return newMemory(size, max, time.Now)
}

func newMemory(size time.Duration, max int, now func() time.Time) *Memory {
	m := &Memory{
		windows: make(map[string]*window),
		size:    size,
		max:     max,
		now:     now,
		stop:    make(chan struct{}),
	}
	go m.janitor(size)
	return m
}

// Allow counts one request for key.
func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.windows[key]
	if w == nil || now.Sub(w.start) >= m.size {
		w = &window{start: now}
		m.windows[key] = w
	}
	d := Decision{Limit: m.max, ResetAt: w.start.Add(m.size)}
	if w.count >= m.max {
		return d, nil
	}
	w.count++
	d.Allowed = true
	d.Remaining = m.max - w.count
	return d, nil
}

// Close stops the janitor.
func (m *Memory) Close() error {
	m.once.Do(func() { close(m.stop) })
	return nil
}

func (m *Memory) janitor(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-t.C:
			m.sweep(m.now())
		}
	}
}

// sweep removes windows that have expired at now.
func (m *Memory) sweep(now time.Time) {
	m.mu.Lock()
	for k, w := range m.windows {
		if now.Sub(w.start) >= m.size {
			delete(m.windows, k)
		}
	}
	m.mu.Unlock()
}

func (m *Memory) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}
