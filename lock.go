package wirebox

import "sync"

// LockManager hands out one mutex per identifier so that concurrent callers
// of the same identifier serialize on its construction instead of building
// it twice. Locks are released once the identifier is cached, the store
// answers every later lookup.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLockManager() *LockManager {
	return &LockManager{
		locks: make(map[string]*sync.Mutex),
	}
}

func (lm *LockManager) GetLockFor(id string) *sync.Mutex {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if lock, exists := lm.locks[id]; exists {
		return lock
	}

	lock := &sync.Mutex{}
	lm.locks[id] = lock
	return lock
}

func (lm *LockManager) ReleaseLock(id string) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	delete(lm.locks, id)
}
