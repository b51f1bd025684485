package naive

// arena is generation-checked slot storage. Freed slots are recycled with
// a bumped generation, so a stale tag held past its resource's death can
// never reach the slot's new occupant.
type arena[T any] struct {
	slots []arenaSlot[T]
	free  []uint64
}

type arenaSlot[T any] struct {
	gen  uint64
	live bool
	val  T
}

func (a *arena[T]) alloc(val T) (index, gen uint64) {
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[index]
		s.live = true
		s.val = val
		return index, s.gen
	}
	a.slots = append(a.slots, arenaSlot[T]{live: true, val: val})
	return uint64(len(a.slots) - 1), 0
}

func (a *arena[T]) get(index, gen uint64) (*T, bool) {
	if index >= uint64(len(a.slots)) {
		return nil, false
	}
	s := &a.slots[index]
	if !s.live || s.gen != gen {
		return nil, false
	}
	return &s.val, true
}

func (a *arena[T]) release(index, gen uint64) bool {
	if index >= uint64(len(a.slots)) {
		return false
	}
	s := &a.slots[index]
	if !s.live || s.gen != gen {
		return false
	}
	var zero T
	s.live = false
	s.gen++
	s.val = zero
	a.free = append(a.free, index)
	return true
}

func (a *arena[T]) each(fn func(index uint64, val *T)) {
	for i := range a.slots {
		if a.slots[i].live {
			fn(uint64(i), &a.slots[i].val)
		}
	}
}
