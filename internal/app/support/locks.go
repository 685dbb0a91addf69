package support

import (
	"sync"

	"github.com/PabloGalante/farum-support/internal/domain"
)

// userLocks serialises history read, aggregate and append per user.
// Different users never share a lock. An entry lives only while someone
// holds or waits for it.
type userLocks struct {
	mu    sync.Mutex
	locks map[domain.UserID]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int // holders plus waiters, guarded by userLocks.mu
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[domain.UserID]*userLock)}
}

func (l *userLocks) lock(id domain.UserID) func() {
	l.mu.Lock()
	e, ok := l.locks[id]
	if !ok {
		e = &userLock{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *userLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
