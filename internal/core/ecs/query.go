package ecs

// Each2 iterates over entities that have both component A and B. It walks
// the smaller store and probes the larger one. The two stores must be
// distinct, which holds for any two component types.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() > sb.Len() {
		sb.Each(func(id EntityID, b *B) {
			if a, ok := sa.Get(id); ok {
				fn(id, a, b)
			}
		})
		return
	}
	sa.Each(func(id EntityID, a *A) {
		if b, ok := sb.Get(id); ok {
			fn(id, a, b)
		}
	})
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	Each2(sa, sb, func(id EntityID, a *A, b *B) {
		if c, ok := sc.Get(id); ok {
			fn(id, a, b, c)
		}
	})
}
