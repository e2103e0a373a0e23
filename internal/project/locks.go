package project

import "sync"

// pathLocks serializes operations on the same target path so that the
// "does it exist" check and the create/delete that follows cannot interleave
// with another call for that path.
type pathLocks struct {
	mu   sync.Mutex
	held map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newPathLocks() *pathLocks {
	return &pathLocks{held: make(map[string]*lockEntry)}
}

// lock blocks until path is free and returns the matching unlock.
func (l *pathLocks) lock(path string) func() {
	l.mu.Lock()
	e, ok := l.held[path]
	if !ok {
		e = &lockEntry{}
		l.held[path] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.held, path)
		}
		l.mu.Unlock()
	}
}
