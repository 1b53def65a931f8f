// Package lock provides an in-process keyed mutex. The reservation services
// use it to serialize the check-availability-then-persist sequence per car:
// two concurrent requests for overlapping intervals on the same car must not
// both pass the availability check. Single-node deployments only; a
// multi-node deployment would replace this with a conditional write against
// the booking store.
package lock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyedMutex serializes critical sections per key. Locks for distinct keys
// never contend with each other.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		entries: make(map[string]*entry),
	}
}

// Lock acquires the mutex for key, blocking until it is free.
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key. The entry is dropped once no goroutine
// holds or waits for it, so the map does not grow with the key space.
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		k.mu.Unlock()
		panic("lock: unlock of unlocked key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}

// TryLock acquires the mutex for key without blocking and reports whether it
// succeeded.
func (k *KeyedMutex) TryLock(key string) bool {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	if !e.mu.TryLock() {
		k.mu.Unlock()
		return false
	}
	e.refs++
	k.mu.Unlock()
	return true
}
