package result

import "sync"

// Store is the keyed repository of all Result objects for one
// analysis (spec.md §3 "Result store", component C). It is the only
// sink written during the parse phase, so writes are serialized by a
// mutex to satisfy spec.md §5's concurrency constraint.
type Store struct {
	mu   sync.RWMutex
	data map[string]Result
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{data: make(map[string]Result)}
}

// Put inserts or replaces r keyed by its unique name. Collisions are a
// bug, not a policy knob (spec.md §3 invariant 2); Put does not
// silently merge, it simply overwrites, so tests can assert on
// collisions explicitly via Len vs. the set of names produced.
func (s *Store) Put(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[r.UniqueName()] = r
}

// Get returns the Result stored under name, if any.
func (s *Store) Get(name string) (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.data[name]
	return r, ok
}

// All returns a snapshot slice of every Result currently stored.
func (s *Store) All() []Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Result, 0, len(s.data))
	for _, r := range s.data {
		out = append(out, r)
	}
	return out
}

// Files returns every *FileResult currently stored.
func (s *Store) Files() []*FileResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*FileResult, 0, len(s.data))
	for _, r := range s.data {
		if f, ok := r.(*FileResult); ok {
			out = append(out, f)
		}
	}
	return out
}

// Entities returns every *EntityResult currently stored.
func (s *Store) Entities() []*EntityResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*EntityResult, 0, len(s.data))
	for _, r := range s.data {
		if e, ok := r.(*EntityResult); ok {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of results currently stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
