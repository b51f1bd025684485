package physics

import (
	"github.com/stepwise/physbridge/internal/core/ecs"
	"github.com/stepwise/physbridge/internal/mathx"
)

// CollisionGroup partitions bodies and areas for filtering. Group numbers
// are backend-opaque.
type CollisionGroup uint8

// DefaultCollisionGroup is the group everything belongs to unless told
// otherwise.
const DefaultCollisionGroup CollisionGroup = 1

// AreaDesc holds everything about an area before it is created.
type AreaDesc struct {
	BelongTo    []CollisionGroup
	CollideWith []CollisionGroup
}

// NewAreaDesc returns a description on the default collision group.
func NewAreaDesc() *AreaDesc {
	return &AreaDesc{
		BelongTo:    []CollisionGroup{DefaultCollisionGroup},
		CollideWith: []CollisionGroup{DefaultCollisionGroup},
	}
}

// OverlapKind distinguishes the start and the end of an overlap.
type OverlapKind uint8

const (
	OverlapEnter OverlapKind = iota
	OverlapExit
)

// OverlapEvent reports a body entering or leaving an area during the last
// step. Check each sub-step to avoid missing short-lived overlaps.
type OverlapEvent struct {
	Kind   OverlapKind
	Body   BodyTag
	Entity ecs.EntityID // entity of Body, zero if never associated
}

// AreaServer manipulates overlap-sensing areas.
type AreaServer interface {
	// CreateArea creates an area and returns the first handle to it.
	CreateArea(desc *AreaDesc) AreaHandle

	SetEntity(tag AreaTag, entity ecs.EntityID)
	Entity(tag AreaTag) ecs.EntityID

	// SetShape assigns the area's sensing shape; nil leaves it shapeless.
	SetShape(tag AreaTag, shape *ShapeTag)
	Shape(tag AreaTag) *ShapeTag

	SetTransform(tag AreaTag, pose mathx.Isometry)
	Transform(tag AreaTag) mathx.Isometry

	SetBelongTo(tag AreaTag, groups []CollisionGroup)
	BelongTo(tag AreaTag) []CollisionGroup
	SetCollideWith(tag AreaTag, groups []CollisionGroup)
	CollideWith(tag AreaTag) []CollisionGroup

	OverlapEvents(tag AreaTag) []OverlapEvent
}
