package ecs

import "sync"

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// Store is a generic typed map store for ECS components. No reflect, no
// interface{} — pure generics.
//
// Every mutation made through Set and Remove is appended to a change log.
// Consumers register a Cursor and call Read to obtain the changes since
// their last read; the log prefix consumed by every cursor is compacted
// away. Mutations made through the pointer returned by Get bypass the log
// on purpose: pulling state back from the physics engine every frame must
// not re-trigger the forward synchronization.
//
// A drop hook, when set, runs for each value leaving the store (Remove or
// overwrite by Set). It is how physics handle components release their
// shared ownership when the component disappears.
type Store[T any] struct {
	mu      sync.Mutex
	data    map[EntityID]*T
	log     []Change
	base    uint64 // absolute index of log[0]
	cursors []*Cursor
	drop    func(*T)
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		data: make(map[EntityID]*T, 256),
	}
}

// NewStoreDrop builds a store whose drop hook is invoked for every value
// removed or overwritten.
func NewStoreDrop[T any](drop func(*T)) *Store[T] {
	s := NewStore[T]()
	s.drop = drop
	return s
}

func (s *Store[T]) Set(id EntityID, c *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, exists := s.data[id]
	s.data[id] = c
	if exists {
		if s.drop != nil && old != c {
			s.drop(old)
		}
		s.record(Change{Modified, id})
	} else {
		s.record(Change{Inserted, id})
	}
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.data[id]
	return c, ok
}

func (s *Store[T]) Remove(id EntityID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.data[id]
	if !ok {
		return
	}
	delete(s.data, id)
	if s.drop != nil {
		s.drop(old)
	}
	s.record(Change{Removed, id})
}

func (s *Store[T]) Has(id EntityID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[id]
	return ok
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Each calls fn for every component. The store lock is held for the whole
// iteration; fn must not call back into the store.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.data {
		fn(id, c)
	}
}

// Entities returns the ids currently present, in unspecified order.
func (s *Store[T]) Entities() []EntityID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]EntityID, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids
}

// Register creates a cursor positioned at the current end of the change
// log: it will observe every change made after this call.
func (s *Store[T]) Register() *Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &Cursor{next: s.base + uint64(len(s.log))}
	s.cursors = append(s.cursors, c)
	return c
}

// Read returns the changes appended since the cursor's last read and
// advances the cursor past them.
func (s *Store[T]) Read(c *Cursor) []Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.next < s.base {
		// Should not happen: compaction only discards fully-consumed prefixes.
		c.next = s.base
	}
	pending := s.log[c.next-s.base:]
	out := make([]Change, len(pending))
	copy(out, pending)
	c.next = s.base + uint64(len(s.log))
	s.compact()
	return out
}

func (s *Store[T]) record(ch Change) {
	if len(s.cursors) == 0 {
		return // nobody listening, keep the log empty
	}
	s.log = append(s.log, ch)
}

// compact drops the log prefix every cursor has consumed. Caller holds mu.
func (s *Store[T]) compact() {
	min := s.base + uint64(len(s.log))
	for _, c := range s.cursors {
		if c.next < min {
			min = c.next
		}
	}
	if min == s.base {
		return
	}
	n := min - s.base
	s.log = s.log[:copy(s.log, s.log[n:])]
	s.base = min
}
