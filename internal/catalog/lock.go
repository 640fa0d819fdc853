// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import "sync"

// keyLocks serializes work per storage path. The backing store has no
// atomic append or compare-and-swap, so concurrent read-modify-write
// cycles against the same object would silently lose the first writer's
// update; requests for the same path are totally ordered by arrival
// instead. Entries are refcounted and dropped once idle so the table does
// not grow with every path ever touched.
type keyLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyLocks() *keyLocks {
	return &keyLocks{entries: make(map[string]*lockEntry)}
}

// acquire blocks until the caller holds the lock for key and returns the
// release function. Callers must defer the release immediately so it runs
// on every exit path; a leaked entry would deadlock all later requests
// for the same path.
func (l *keyLocks) acquire(key string) (release func()) {
	l.mu.Lock()
	e := l.entries[key]
	if e == nil {
		e = &lockEntry{}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()
			l.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(l.entries, key)
			}
			l.mu.Unlock()
		})
	}
}
