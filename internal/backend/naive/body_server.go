package naive

import (
	"go.uber.org/zap"

	"github.com/stepwise/physbridge/internal/core/ecs"
	"github.com/stepwise/physbridge/internal/mathx"
	"github.com/stepwise/physbridge/internal/physics"
)

type bodyServer struct {
	st *state
}

func (bs *bodyServer) CreateBody(desc *physics.RigidBodyDesc) physics.BodyHandle {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	index, gen := s.bodies.alloc(bodySlot{
		desc: *desc,
		pose: mathx.IsometryIdentity(),
	})
	return physics.NewHandle(physics.NewBodyTag(physics.TagGenIndex, index, gen), s.gc)
}

func (bs *bodyServer) SetEntity(tag physics.BodyTag, entity ecs.EntityID) {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		b.entity = entity
		s.counters.SetEntity++
	}
}

func (bs *bodyServer) Entity(tag physics.BodyTag) ecs.EntityID {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		return b.entity
	}
	return ecs.EntityID(0)
}

func (bs *bodyServer) SetShape(tag physics.BodyTag, shape *physics.ShapeTag) {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		b.shape = shape
		s.counters.SetShape++
	}
}

func (bs *bodyServer) Shape(tag physics.BodyTag) *physics.ShapeTag {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		return b.shape
	}
	return nil
}

func (bs *bodyServer) SetTransform(tag physics.BodyTag, pose mathx.Isometry) {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		b.pose = pose
		s.counters.SetTransform++
	}
}

func (bs *bodyServer) Transform(tag physics.BodyTag) mathx.Isometry {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		return b.pose
	}
	return mathx.IsometryIdentity()
}

func (bs *bodyServer) SetMode(tag physics.BodyTag, mode physics.BodyMode) {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		b.desc.Mode = mode
	}
}

func (bs *bodyServer) Mode(tag physics.BodyTag) physics.BodyMode {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		return b.desc.Mode
	}
	return physics.BodyDisabled
}

func (bs *bodyServer) SetFriction(tag physics.BodyTag, friction float64) {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		b.desc.Friction = friction
	}
}

func (bs *bodyServer) Friction(tag physics.BodyTag) float64 {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		return b.desc.Friction
	}
	return 0
}

func (bs *bodyServer) SetBounciness(tag physics.BodyTag, bounciness float64) {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		b.desc.Bounciness = bounciness
	}
}

func (bs *bodyServer) Bounciness(tag physics.BodyTag) float64 {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		return b.desc.Bounciness
	}
	return 0
}

func (bs *bodyServer) ClearForces(tag physics.BodyTag) {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		b.force = mathx.Vec3{}
		b.torque = mathx.Vec3{}
	}
}

func (bs *bodyServer) ApplyForce(tag physics.BodyTag, force mathx.Vec3) {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		b.force = b.force.Add(force)
	}
}

func (bs *bodyServer) ApplyTorque(tag physics.BodyTag, torque mathx.Vec3) {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		b.torque = b.torque.Add(torque)
	}
}

func (bs *bodyServer) ApplyForceAtPosition(tag physics.BodyTag, force, position mathx.Vec3) {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		b.force = b.force.Add(force)
		arm := position.Sub(b.pose.Translation)
		b.torque = b.torque.Add(arm.Cross(force))
	}
}

func (bs *bodyServer) ApplyImpulse(tag physics.BodyTag, impulse mathx.Vec3) {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok && b.desc.Mass > 0 {
		b.linVel = b.linVel.Add(impulse.Scale(1 / b.desc.Mass))
	}
}

func (bs *bodyServer) ApplyAngularImpulse(tag physics.BodyTag, impulse mathx.Vec3) {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok && b.desc.Mass > 0 {
		// unit inertia tensor; good enough for a backend with no solver
		b.angVel = b.angVel.Add(impulse.Scale(1 / b.desc.Mass))
	}
}

func (bs *bodyServer) ApplyImpulseAtPosition(tag physics.BodyTag, impulse, position mathx.Vec3) {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok && b.desc.Mass > 0 {
		b.linVel = b.linVel.Add(impulse.Scale(1 / b.desc.Mass))
		arm := position.Sub(b.pose.Translation)
		b.angVel = b.angVel.Add(arm.Cross(impulse).Scale(1 / b.desc.Mass))
	}
}

func (bs *bodyServer) SetLinearVelocity(tag physics.BodyTag, v mathx.Vec3) {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		b.linVel = v
	}
}

func (bs *bodyServer) LinearVelocity(tag physics.BodyTag) mathx.Vec3 {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		return b.linVel
	}
	return mathx.Vec3{}
}

func (bs *bodyServer) SetAngularVelocity(tag physics.BodyTag, v mathx.Vec3) {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		b.angVel = v
	}
}

func (bs *bodyServer) AngularVelocity(tag physics.BodyTag) mathx.Vec3 {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		return b.angVel
	}
	return mathx.Vec3{}
}

func (bs *bodyServer) LinearVelocityAtPosition(tag physics.BodyTag, position mathx.Vec3) mathx.Vec3 {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.body(tag); ok {
		arm := position.Sub(b.pose.Translation)
		return b.linVel.Add(b.angVel.Cross(arm))
	}
	return mathx.Vec3{}
}

func (bs *bodyServer) ContactEvents(tag physics.BodyTag, max int) []physics.ContactEvent {
	s := bs.st
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.body(tag)
	if !ok {
		return nil
	}
	if max > s.maxContacts {
		s.log.Debug("contact query clamped", zap.Int("requested", max), zap.Int("max", s.maxContacts))
		max = s.maxContacts
	}
	if len(b.contacts) > max {
		return b.contacts[:max]
	}
	return b.contacts
}
