package wirebox

import (
	"sync"

	"github.com/wirebox/wirebox/set"
)

type (
	// Tracker is the cycle guard: it records the identifiers currently
	// mid-resolution. It is owned by exactly one container and is empty
	// before and after every top-level Get call.
	//
	// Enter and Exit are individually synchronized so a container shared
	// across goroutines keeps a coherent stack, but the tracker remains a
	// reentrancy detector, not a concurrency lock.
	Tracker struct {
		mu     sync.Mutex
		active set.Set[string]
		stack  []string
	}
)

func NewTracker() *Tracker {
	return &Tracker{
		active: set.New[string](),
		stack:  make([]string, 0),
	}
}

// Enter marks id as being resolved. If id is already active, it fails with a
// CyclicDependencyError carrying the ordered trace of every identifier on
// the resolution stack at the moment of failure.
func (t *Tracker) Enter(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active.Contains(id) {
		trace := make([]string, 0, len(t.stack)+1)
		trace = append(trace, t.stack...)
		trace = append(trace, id)
		return &CyclicDependencyError{ID: id, Trace: trace}
	}
	t.active.Add(id)
	t.stack = append(t.stack, id)

	return nil
}

// Exit releases id. It must be called on every exit path of a resolution,
// success or failure, so a failed attempt never blocks a later independent
// resolution of the same identifier.
func (t *Tracker) Exit(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.active.Remove(id)
	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.stack[i] == id {
			t.stack = append(t.stack[:i], t.stack[i+1:]...)
			break
		}
	}
}

// Depth reports how many identifiers are currently mid-resolution.
func (t *Tracker) Depth() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.stack)
}
