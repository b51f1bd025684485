package system

import (
	"time"

	"github.com/stepwise/physbridge/internal/component"
	"github.com/stepwise/physbridge/internal/core/dispatch"
	"github.com/stepwise/physbridge/internal/core/ecs"
	"github.com/stepwise/physbridge/internal/physics"
	"github.com/stepwise/physbridge/internal/scene"
)

// TransformFromPhysics copies body poses out of the backend into Transform
// components once per frame, after the sub-step loop. Only entities that
// already carry a Transform are updated, and bodies with a parent are
// skipped on purpose: their pose is derivative, authored by the attachment
// resolver, not by the backend directly.
//
// Writes go through the component pointer, not Set, so pulling state back
// never re-enters the forward sync's change log. Running twice without an
// intervening step is a no-op.
type TransformFromPhysics struct {
	sc *scene.Scene
}

func NewTransformFromPhysics(sc *scene.Scene) *TransformFromPhysics {
	return &TransformFromPhysics{sc: sc}
}

func (s *TransformFromPhysics) Name() string { return "physics_sync_transform_from" }

func (s *TransformFromPhysics) Access() dispatch.Access {
	return dispatch.Access{
		Reads:  []string{scene.ResBodies, scene.ResParents, scene.ResPhysics},
		Writes: []string{scene.ResTransforms},
	}
}

func (s *TransformFromPhysics) Update(_ time.Duration) {
	ecs.Each2(s.sc.Bodies, s.sc.Transforms, func(e ecs.EntityID, bh *physics.BodyHandle, tr *component.Transform) {
		if s.sc.Parents.Has(e) {
			return
		}
		tr.Local = s.sc.Physics.Bodies().Transform(bh.Get())
	})
}
