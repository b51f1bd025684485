package system

import (
	"time"

	"github.com/stepwise/physbridge/internal/core/dispatch"
	"github.com/stepwise/physbridge/internal/scene"
)

// Batch is the fixed-step sub-step loop. From the outer schedule's view it
// is one opaque system that writes the clock and the backend; internally
// it banks the frame delta, clamps the bank (the spiral-of-death guard),
// and runs the inner systems — attachment resolution, any in-physics user
// systems, the stepper — once per withdrawn sub-step, strictly in order:
// each sub-step depends on the physical state the previous one produced.
type Batch struct {
	sc    *scene.Scene
	inner []dispatch.System
}

// NewBatch builds the sub-step loop over the given inner systems. The
// inner slice runs in order on every sub-step.
func NewBatch(sc *scene.Scene, inner []dispatch.System) *Batch {
	return &Batch{sc: sc, inner: inner}
}

func (s *Batch) Name() string { return "physics_batch" }

func (s *Batch) Access() dispatch.Access {
	return dispatch.Access{
		Reads:  []string{scene.ResTransforms, scene.ResParents, scene.ResBodies, scene.ResAreas, scene.ResShapes, scene.ResJoints},
		Writes: []string{scene.ResTime, scene.ResPhysics, scene.ResAttachments},
	}
}

func (s *Batch) Update(dt time.Duration) {
	t := s.sc.Time
	t.BeginSubStepping()
	steps := t.Advance(dt.Seconds())
	stepDur := time.Duration(t.DeltaSeconds() * float64(time.Second))
	for i := 0; i < steps; i++ {
		for _, sys := range s.inner {
			sys.Update(stepDur)
		}
	}
	t.EndSubStepping()
}
