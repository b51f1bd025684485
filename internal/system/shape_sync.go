package system

import (
	"time"

	"github.com/stepwise/physbridge/internal/core/dispatch"
	"github.com/stepwise/physbridge/internal/core/ecs"
	"github.com/stepwise/physbridge/internal/physics"
	"github.com/stepwise/physbridge/internal/scene"
)

// ShapeSync keeps body and area shape assignments in step with the ECS:
// giving an entity a shape component is all it takes for its body or area
// to collide with that shape. The dirty set is the union of the body, area
// and shape change logs; a touched entity without a shape component gets
// its backend shape cleared.
type ShapeSync struct {
	sc       *scene.Scene
	bodyCur  *ecs.Cursor
	areaCur  *ecs.Cursor
	shapeCur *ecs.Cursor
}

func NewShapeSync(sc *scene.Scene) *ShapeSync {
	return &ShapeSync{
		sc:       sc,
		bodyCur:  sc.Bodies.Register(),
		areaCur:  sc.Areas.Register(),
		shapeCur: sc.Shapes.Register(),
	}
}

func (s *ShapeSync) Name() string { return "physics_sync_shape" }

func (s *ShapeSync) Access() dispatch.Access {
	return dispatch.Access{
		Reads:  []string{scene.ResBodies, scene.ResAreas, scene.ResShapes},
		Writes: []string{scene.ResPhysics},
	}
}

func (s *ShapeSync) Update(_ time.Duration) {
	dirty := make(map[ecs.EntityID]struct{})
	for _, ch := range s.sc.Bodies.Read(s.bodyCur) {
		dirty[ch.Entity] = struct{}{}
	}
	for _, ch := range s.sc.Areas.Read(s.areaCur) {
		dirty[ch.Entity] = struct{}{}
	}
	for _, ch := range s.sc.Shapes.Read(s.shapeCur) {
		dirty[ch.Entity] = struct{}{}
	}

	for e := range dirty {
		var shape *physics.ShapeTag
		if sh, ok := s.sc.Shapes.Get(e); ok {
			t := sh.Get()
			shape = &t
		}
		if bh, ok := s.sc.Bodies.Get(e); ok {
			s.sc.Physics.Bodies().SetShape(bh.Get(), shape)
		}
		if ah, ok := s.sc.Areas.Get(e); ok {
			s.sc.Physics.Areas().SetShape(ah.Get(), shape)
		}
	}
}
