// Package lock provides per-resource mutual exclusion for the reservation core.
//
// A Locker serializes work on one key (e.g. "amenity:3") while leaving other
// keys free, so bookings on different resources proceed in parallel.
package lock

import (
	"context"
	"errors"
	"sync"
)

// ErrNotAcquired is returned when a lock could not be taken before the
// context was done.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker acquires exclusive locks on string keys.
type Locker interface {
	// Lock blocks until the key is held or ctx is done. The returned
	// function releases the lock and must be called exactly once.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Local is an in-process Locker backed by one mutex per key.
// Entries are dropped once no goroutine holds or waits for them.
type Local struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	ch   chan struct{} // buffered(1): holding the token means holding the lock
	refs int
}

// NewLocal creates an empty in-process locker.
func NewLocal() *Local {
	return &Local{locks: make(map[string]*entry)}
}

// Lock acquires key.
func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, errors.Join(ErrNotAcquired, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(key, e)
		})
	}, nil
}

func (l *Local) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

// size returns the number of tracked keys.
func (l *Local) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
