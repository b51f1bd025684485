package naive

import (
	"github.com/stepwise/physbridge/internal/mathx"
	"github.com/stepwise/physbridge/internal/physics"
)

type worldServer struct {
	st *state
}

// Step drains the garbage collector, then integrates velocities. Dynamic
// bodies accumulate gravity and applied forces; kinematic bodies follow
// their user-set velocities. Static and disabled bodies do not move.
func (w *worldServer) Step() {
	s := w.st
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reclaim()
	dt := s.timeStep
	s.bodies.each(func(_ uint64, b *bodySlot) {
		switch b.desc.Mode {
		case physics.BodyDynamic:
			acc := s.gravity
			if b.desc.Mass > 0 {
				acc = acc.Add(b.force.Scale(1 / b.desc.Mass))
				// unit inertia tensor, same shortcut as the impulses
				b.angVel = b.angVel.Add(b.torque.Scale(dt / b.desc.Mass))
			}
			b.linVel = b.linVel.Add(acc.Scale(dt))
		case physics.BodyKinematic:
			// velocity authored by the user
		default:
			return
		}
		b.pose.Translation = b.pose.Translation.Add(b.linVel.Scale(dt))
		if w := b.angVel.Length(); w > 0 {
			spin := mathx.FromAxisAngle(b.angVel, w*dt)
			b.pose.Rotation = spin.Mul(b.pose.Rotation).Normalize()
		}
		b.force = mathx.Vec3{}
		b.torque = mathx.Vec3{}
	})
	s.counters.Steps++
}

func (w *worldServer) SetTimeStep(dt float64) {
	w.st.mu.Lock()
	defer w.st.mu.Unlock()
	w.st.timeStep = dt
}

func (w *worldServer) SetGravity(g mathx.Vec3) {
	w.st.mu.Lock()
	defer w.st.mu.Unlock()
	w.st.gravity = g
}

func (w *worldServer) Gravity() mathx.Vec3 {
	w.st.mu.Lock()
	defer w.st.mu.Unlock()
	return w.st.gravity
}
