package locks

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrWaitTimeout = errors.New("lock wait timed out")

// Manager hands out one lock per key. Writers against the same key are
// serialized; different keys never contend. Idle locks are reclaimed.
type Manager struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	sem  chan struct{} // capacity 1, full while held
	refs int
}

func NewManager() *Manager {
	return &Manager{
		entries: make(map[string]*entry),
	}
}

// Acquire takes the lock for key, waiting at most wait. It returns a
// release func on success. On timeout it returns ErrWaitTimeout; a
// cancelled context returns ctx.Err().
func (m *Manager) Acquire(ctx context.Context, key string, wait time.Duration) (func(), error) {
	e := m.checkout(key)

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case e.sem <- struct{}{}:
		return func() {
			<-e.sem
			m.checkin(key, e)
		}, nil
	case <-timer.C:
		m.checkin(key, e)
		return nil, ErrWaitTimeout
	case <-ctx.Done():
		m.checkin(key, e)
		return nil, ctx.Err()
	}
}

func (m *Manager) checkout(key string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		m.entries[key] = e
	}
	e.refs++
	return e
}

func (m *Manager) checkin(key string, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(m.entries, key)
	}
}
