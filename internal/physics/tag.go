// Package physics defines the engine-agnostic surface between the ECS and
// a physics backend: opaque resource tags, shared-ownership handles, the
// garbage collector for released resources, the fixed-step clock, and the
// server interfaces a backend implements.
package physics

// TagForm is the identifier shape a backend picked for a resource tag.
// Backends indexing into flat arrays use the single-value forms; backends
// that recycle slots use the generation+index form to detect stale tags.
type TagForm uint8

const (
	TagU32 TagForm = iota + 1
	TagU64
	TagU32Pair
	TagU64Pair
	TagGenIndex
)

// TagValue is the payload shared by every tag kind. It is comparable,
// usable as a map key, and totally ordered by (Form, A, B).
type TagValue struct {
	Form TagForm
	A, B uint64
}

func (v TagValue) Less(o TagValue) bool {
	if v.Form != o.Form {
		return v.Form < o.Form
	}
	if v.A != o.A {
		return v.A < o.A
	}
	return v.B < o.B
}

// The four tag kinds are distinct types so a body tag cannot be passed
// where a shape tag is expected. Only backends create tags; the bridge
// treats them as opaque.

// BodyTag identifies a rigid body owned by the backend.
type BodyTag struct{ TagValue }

// AreaTag identifies an overlap-sensing area owned by the backend.
type AreaTag struct{ TagValue }

// ShapeTag identifies a collision shape owned by the backend.
type ShapeTag struct{ TagValue }

// JointTag identifies a joint owned by the backend.
type JointTag struct{ TagValue }

func NewBodyTag(form TagForm, a, b uint64) BodyTag {
	return BodyTag{TagValue{Form: form, A: a, B: b}}
}

func NewAreaTag(form TagForm, a, b uint64) AreaTag {
	return AreaTag{TagValue{Form: form, A: a, B: b}}
}

func NewShapeTag(form TagForm, a, b uint64) ShapeTag {
	return ShapeTag{TagValue{Form: form, A: a, B: b}}
}

func NewJointTag(form TagForm, a, b uint64) JointTag {
	return JointTag{TagValue{Form: form, A: a, B: b}}
}

// ResourceTag is the sealed constraint over the four tag kinds. The
// unexported enqueue method routes a released tag into the garbage
// collector queue of its kind and keeps the set of kinds closed.
type ResourceTag interface {
	comparable
	enqueue(gc *GarbageCollector)
}

func (t BodyTag) enqueue(gc *GarbageCollector)  { gc.bodies = append(gc.bodies, t) }
func (t AreaTag) enqueue(gc *GarbageCollector)  { gc.areas = append(gc.areas, t) }
func (t ShapeTag) enqueue(gc *GarbageCollector) { gc.shapes = append(gc.shapes, t) }
func (t JointTag) enqueue(gc *GarbageCollector) { gc.joints = append(gc.joints, t) }
