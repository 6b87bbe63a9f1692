package cartlock

import (
	"context"
	"fmt"
	"sync"
)

type localEntry struct {
	ch   chan struct{}
	refs int
}

// LocalLocker is an in-process Locker. Entries are dropped once no caller
// holds or waits for them.
type LocalLocker struct {
	mu      sync.Mutex
	entries map[string]*localEntry
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{entries: make(map[string]*localEntry)}
}

func (l *LocalLocker) Lock(ctx context.Context, customerID string) (Unlock, error) {
	k := key(customerID)

	l.mu.Lock()
	e, ok := l.entries[k]
	if !ok {
		e = &localEntry{ch: make(chan struct{}, 1)}
		l.entries[k] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(k, e)
		return nil, fmt.Errorf("customer %s: %w", customerID, ErrLockTimeout)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(k, e)
		})
	}, nil
}

func (l *LocalLocker) release(k string, e *localEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, k)
	}
}

func (l *LocalLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
