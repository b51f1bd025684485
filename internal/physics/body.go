package physics

import (
	"github.com/stepwise/physbridge/internal/core/ecs"
	"github.com/stepwise/physbridge/internal/mathx"
)

// BodyMode describes how the backend treats a body.
type BodyMode uint8

const (
	// BodyDisabled bodies are ignored by the engine.
	BodyDisabled BodyMode = iota
	// BodyStatic bodies never move.
	BodyStatic
	// BodyDynamic bodies move and are subject to forces.
	BodyDynamic
	// BodyKinematic bodies follow user-set velocities, unaffected by
	// forces and constraints.
	BodyKinematic
)

func (m BodyMode) String() string {
	switch m {
	case BodyDisabled:
		return "disabled"
	case BodyStatic:
		return "static"
	case BodyDynamic:
		return "dynamic"
	case BodyKinematic:
		return "kinematic"
	}
	return "unknown"
}

// RigidBodyDesc holds everything about a body before it is created.
type RigidBodyDesc struct {
	Mode       BodyMode
	Mass       float64
	Friction   float64 // 0..1
	Bounciness float64 // 0..1
}

// ContactEvent is one contact reported by the backend for a body.
type ContactEvent struct {
	Other    BodyTag
	Entity   ecs.EntityID // entity of Other, zero if never associated
	Position mathx.Vec3
	Normal   mathx.Vec3
	Impulse  float64
}

// BodyServer manipulates rigid, static and kinematic bodies.
type BodyServer interface {
	// CreateBody creates a body and returns the first handle to it. The
	// handle can be cloned freely; when every clone is released the body
	// is reclaimed.
	CreateBody(desc *RigidBodyDesc) BodyHandle

	// SetEntity associates the entity that owns this body, so events
	// reported against the tag can be traced back to an entity. Zero
	// clears the association.
	SetEntity(tag BodyTag, entity ecs.EntityID)
	Entity(tag BodyTag) ecs.EntityID

	// SetShape assigns the body's collision shape; nil leaves the body
	// shapeless.
	SetShape(tag BodyTag, shape *ShapeTag)
	Shape(tag BodyTag) *ShapeTag

	SetTransform(tag BodyTag, pose mathx.Isometry)
	Transform(tag BodyTag) mathx.Isometry

	SetMode(tag BodyTag, mode BodyMode)
	Mode(tag BodyTag) BodyMode

	SetFriction(tag BodyTag, friction float64)
	Friction(tag BodyTag) float64
	SetBounciness(tag BodyTag, bounciness float64)
	Bounciness(tag BodyTag) float64

	ClearForces(tag BodyTag)
	ApplyForce(tag BodyTag, force mathx.Vec3)
	ApplyTorque(tag BodyTag, torque mathx.Vec3)
	ApplyForceAtPosition(tag BodyTag, force, position mathx.Vec3)
	ApplyImpulse(tag BodyTag, impulse mathx.Vec3)
	ApplyAngularImpulse(tag BodyTag, impulse mathx.Vec3)
	ApplyImpulseAtPosition(tag BodyTag, impulse, position mathx.Vec3)

	SetLinearVelocity(tag BodyTag, v mathx.Vec3)
	LinearVelocity(tag BodyTag) mathx.Vec3
	SetAngularVelocity(tag BodyTag, v mathx.Vec3)
	AngularVelocity(tag BodyTag) mathx.Vec3
	LinearVelocityAtPosition(tag BodyTag, position mathx.Vec3) mathx.Vec3

	// ContactEvents returns at most max contacts from the last step.
	// Check each sub-step to avoid missing short-lived contacts.
	ContactEvents(tag BodyTag, max int) []ContactEvent
}
