// manager.go implements the single owner of the live settings record.
//
// Mutations are applied synchronously and persisted in the background:
// Update returns as soon as the in-memory record changes, and a flusher
// goroutine writes the newest record afterwards. Bursts of mutations
// collapse into one write (last writer wins). A crash between a mutation and
// its flush loses that mutation, which is acceptable for settings.

package settings

import (
	"context"
	"sync"
)

// Manager owns the current Settings and persists every change.
type Manager struct {
	p       Persister
	onError func(error)

	mu      sync.Mutex
	cur     Settings
	version uint64

	saveMu sync.Mutex
	saved  uint64

	kick      chan struct{}
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a Manager.
type Option func(*Manager)

// WithErrorHandler sets the callback for background save failures.
// Failures are never returned to the caller that made the change.
func WithErrorHandler(fn func(error)) Option {
	return func(m *Manager) { m.onError = fn }
}

// NewManager loads the persisted record and starts the flusher.
// A load error still yields a usable manager holding the defaults.
func NewManager(ctx context.Context, p Persister, opts ...Option) (*Manager, error) {
	s, err := Load(ctx, p)
	m := &Manager{
		p:       p,
		onError: func(error) {},
		cur:     s,
		kick:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, o := range opts {
		o(m)
	}
	go m.run()
	return m, err
}

// Current returns a copy of the live record.
func (m *Manager) Current() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

// Update applies fn to the live record and schedules a save.
// If fn returns an error the record is left unchanged.
func (m *Manager) Update(fn func(*Settings) error) error {
	m.mu.Lock()
	next := m.cur
	if err := fn(&next); err != nil {
		m.mu.Unlock()
		return err
	}
	m.cur = next
	m.version++
	m.mu.Unlock()

	m.schedule()
	return nil
}

// Set updates a single field by key.
func (m *Manager) Set(key, value string) error {
	return m.Update(func(s *Settings) error { return s.Set(key, value) })
}

// Replace swaps in a whole record.
func (m *Manager) Replace(s Settings) {
	_ = m.Update(func(cur *Settings) error {
		*cur = s
		return nil
	})
}

// Reset restores the defaults.
func (m *Manager) Reset() {
	m.Replace(Default())
}

// Pending reports whether a change has not been written yet.
func (m *Manager) Pending() bool {
	m.mu.Lock()
	v := m.version
	m.mu.Unlock()

	m.saveMu.Lock()
	defer m.saveMu.Unlock()
	return m.saved < v
}

// Flush writes the live record now if it has unsaved changes.
func (m *Manager) Flush(ctx context.Context) error {
	return m.save(ctx)
}

// Close stops the flusher after writing any pending change.
// Safe to call more than once.
func (m *Manager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		close(m.stop)
		<-m.done
		err = m.save(context.Background())
	})
	return err
}

// schedule wakes the flusher; a wake-up already queued absorbs this one.
func (m *Manager) schedule() {
	select {
	case m.kick <- struct{}{}:
	default:
	}
}

func (m *Manager) run() {
	defer close(m.done)
	for {
		select {
		case <-m.stop:
			return
		case <-m.kick:
			if err := m.save(context.Background()); err != nil {
				m.onError(err)
			}
		}
	}
}

// save snapshots under saveMu so a later save always carries a later record.
func (m *Manager) save(ctx context.Context) error {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.mu.Lock()
	s, v := m.cur, m.version
	m.mu.Unlock()

	if v <= m.saved {
		return nil
	}
	if err := Save(ctx, m.p, s); err != nil {
		return err
	}
	m.saved = v
	return nil
}
