package system

import (
	"time"

	"github.com/stepwise/physbridge/internal/core/dispatch"
	"github.com/stepwise/physbridge/internal/scene"
)

// Stepper advances the backend by one fixed step. It runs inside the
// sub-step loop, after the attachment resolver. The backend time step is
// pushed only when the configured delta actually changed.
type Stepper struct {
	sc       *scene.Scene
	timeStep float64
}

func NewStepper(sc *scene.Scene) *Stepper {
	return &Stepper{sc: sc}
}

func (s *Stepper) Name() string { return "physics_stepper" }

func (s *Stepper) Access() dispatch.Access {
	return dispatch.Access{
		Reads:  []string{scene.ResTime},
		Writes: []string{scene.ResPhysics},
	}
}

func (s *Stepper) Update(_ time.Duration) {
	if dt := s.sc.Time.DeltaSeconds(); s.timeStep != dt {
		s.timeStep = dt
		s.sc.Physics.WorldServer().SetTimeStep(dt)
	}
	s.sc.Physics.WorldServer().Step()
}
