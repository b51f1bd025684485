package physics

import "sync/atomic"

// Handle is the shared-ownership wrapper around a resource tag. All clones
// of a handle point at one container; when the last owner releases it, the
// tag is enqueued into the garbage collector exactly once, regardless of
// which goroutine releases last. Holding a handle anywhere keeps the
// backend resource alive; the tag obtained from Get does not.
type Handle[T ResourceTag] struct {
	shared *container[T]
}

type container[T ResourceTag] struct {
	tag  T
	gc   *GarbageCollector
	refs atomic.Int64
}

// BodyHandle tracks the lifetime of a rigid body.
type BodyHandle = Handle[BodyTag]

// AreaHandle tracks the lifetime of an area.
type AreaHandle = Handle[AreaTag]

// ShapeHandle tracks the lifetime of a shape.
type ShapeHandle = Handle[ShapeTag]

// JointHandle tracks the lifetime of a joint.
type JointHandle = Handle[JointTag]

// NewHandle creates the first owner of tag. Only backends call this, right
// after creating the resource the tag identifies.
func NewHandle[T ResourceTag](tag T, gc *GarbageCollector) Handle[T] {
	c := &container[T]{tag: tag, gc: gc}
	c.refs.Store(1)
	return Handle[T]{shared: c}
}

// Clone adds an owner. The clone refers to the same resource; releasing it
// is independent of releasing the original.
func (h Handle[T]) Clone() Handle[T] {
	h.shared.refs.Add(1)
	return h
}

// Get returns the tag without affecting the resource lifetime.
func (h Handle[T]) Get() T {
	return h.shared.tag
}

// Release drops this ownership. Exactly one Release per owner: the handle
// that NewHandle returned plus one per Clone. The last release enqueues the
// tag for backend reclamation.
func (h Handle[T]) Release() {
	if h.shared == nil {
		return
	}
	if h.shared.refs.Add(-1) == 0 {
		enqueueTag(h.shared.gc, h.shared.tag)
	}
}

// Owners reports the current owner count, for diagnostics.
func (h Handle[T]) Owners() int64 {
	if h.shared == nil {
		return 0
	}
	return h.shared.refs.Load()
}
