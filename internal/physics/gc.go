package physics

import "sync"

// GarbageCollector accumulates the tags whose last handle was released,
// one queue per resource kind. It performs no destruction itself: the
// owning backend drains the queues at a cadence it controls, typically once
// per step. Handles may be released from any goroutine, so every queue
// access happens under one lock.
type GarbageCollector struct {
	mu     sync.Mutex
	bodies []BodyTag
	areas  []AreaTag
	shapes []ShapeTag
	joints []JointTag
}

func NewGarbageCollector() *GarbageCollector {
	return &GarbageCollector{}
}

// DrainBodies hands the queued body tags to the caller and empties the queue.
func (gc *GarbageCollector) DrainBodies() []BodyTag {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	out := gc.bodies
	gc.bodies = nil
	return out
}

// DrainAreas hands the queued area tags to the caller and empties the queue.
func (gc *GarbageCollector) DrainAreas() []AreaTag {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	out := gc.areas
	gc.areas = nil
	return out
}

// DrainShapes hands the queued shape tags to the caller and empties the queue.
func (gc *GarbageCollector) DrainShapes() []ShapeTag {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	out := gc.shapes
	gc.shapes = nil
	return out
}

// DrainJoints hands the queued joint tags to the caller and empties the queue.
func (gc *GarbageCollector) DrainJoints() []JointTag {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	out := gc.joints
	gc.joints = nil
	return out
}

// Pending reports how many tags sit in the queues, for diagnostics.
func (gc *GarbageCollector) Pending() int {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return len(gc.bodies) + len(gc.areas) + len(gc.shapes) + len(gc.joints)
}

func enqueueTag[T ResourceTag](gc *GarbageCollector, tag T) {
	gc.mu.Lock()
	tag.enqueue(gc)
	gc.mu.Unlock()
}
