// SPDX-License-Identifier: AGPL-3.0-or-later

// Package keylock serializes work on the same key, such as a repository working copy.
package keylock

import "sync"

// Map hands out one mutex per key.
type Map struct {
	locks map[string]*sync.Mutex
	mutex sync.RWMutex
}

// New returns an empty Map.
func New() *Map {
	return &Map{locks: make(map[string]*sync.Mutex)}
}

func (m *Map) keyLock(key string) *sync.Mutex {
	m.mutex.RLock()
	if lock, ok := m.locks[key]; ok {
		m.mutex.RUnlock()
		return lock
	}
	m.mutex.RUnlock()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	// another goroutine may have created it in the meantime
	if lock, ok := m.locks[key]; ok {
		return lock
	}
	lock := &sync.Mutex{}
	m.locks[key] = lock
	return lock
}

// Lock blocks until key is free.
func (m *Map) Lock(key string) {
	m.keyLock(key).Lock()
}

// Unlock releases key.
func (m *Map) Unlock(key string) {
	m.keyLock(key).Unlock()
}

// Do runs fn while holding key.
func (m *Map) Do(key string, fn func()) {
	m.Lock(key)
	defer m.Unlock(key)
	fn()
}
