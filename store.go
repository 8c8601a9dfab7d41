package wirebox

import (
	"errors"
	"fmt"
	"sync"
)

// Store memoizes resolved values per identifier for the lifetime of the
// container. It never evicts, and presence is distinguishable from absence:
// a value resolved to nil is stored and short-circuits future lookups
// without re-invoking its factory.
type Store struct {
	inner sync.Map
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Put(id string, val any) {
	s.inner.Store(id, val)
}

func (s *Store) Get(id string) (val any, found bool) {
	return s.inner.Load(id)
}

// Names lists the identifiers resolved so far, in no particular order.
func (s *Store) Names() []string {
	var names []string
	s.inner.Range(func(id, _ any) bool {
		names = append(names, id.(string))
		return true
	})
	return names
}

// Close closes every stored value implementing Closeable and joins the
// failures.
func (s *Store) Close() error {
	closeErrors := make([]error, 0)
	s.inner.Range(func(id, val any) bool {
		if closeable, ok := val.(Closeable); ok {
			if err := closeable.Close(); err != nil {
				closeErrors = append(
					closeErrors,
					fmt.Errorf("failed to close component %s:\n\t%w", id, err),
				)
			}
		}
		return true // continue iteration
	})

	return errors.Join(closeErrors...)
}
