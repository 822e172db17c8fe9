package concurrency

import (
	"sort"
	"sync"
)

// LockManager handles named locks
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Do runs fn while holding the lock for key.
func (lm *LockManager) Do(key string, fn func() error) error {
	mu := lm.GetLock(key)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

// DoAll runs fn while holding the locks for every distinct key. Locks are
// taken in sorted order so two callers sharing keys cannot deadlock.
func (lm *LockManager) DoAll(keys []string, fn func() error) error {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	var held []*sync.Mutex
	defer func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}()
	for i, k := range sorted {
		if i > 0 && sorted[i-1] == k {
			continue
		}
		mu := lm.GetLock(k)
		mu.Lock()
		held = append(held, mu)
	}
	return fn()
}
