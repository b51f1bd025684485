// Package system contains the bridge systems: forward synchronization of
// shapes, entities, transforms and joints into the backend, the attachment
// resolver, the fixed-step batch, and the pull of poses back out.
package system

import (
	"time"

	"github.com/stepwise/physbridge/internal/core/dispatch"
	"github.com/stepwise/physbridge/internal/core/ecs"
	"github.com/stepwise/physbridge/internal/scene"
)

// EntitySync tells the backend which entity owns each newly created body
// or area, so backend-originated events (contacts, overlaps) can be
// correlated back to entities.
type EntitySync struct {
	sc       *scene.Scene
	bodyCur  *ecs.Cursor
	areaCur  *ecs.Cursor
}

func NewEntitySync(sc *scene.Scene) *EntitySync {
	return &EntitySync{
		sc:      sc,
		bodyCur: sc.Bodies.Register(),
		areaCur: sc.Areas.Register(),
	}
}

func (s *EntitySync) Name() string { return "physics_sync_entity" }

func (s *EntitySync) Access() dispatch.Access {
	return dispatch.Access{
		Reads:  []string{scene.ResBodies, scene.ResAreas},
		Writes: []string{scene.ResPhysics},
	}
}

func (s *EntitySync) Update(_ time.Duration) {
	for _, ch := range s.sc.Bodies.Read(s.bodyCur) {
		if ch.Kind != ecs.Inserted {
			continue // TODO clear the association on removal
		}
		if h, ok := s.sc.Bodies.Get(ch.Entity); ok {
			s.sc.Physics.Bodies().SetEntity(h.Get(), ch.Entity)
		}
	}
	for _, ch := range s.sc.Areas.Read(s.areaCur) {
		if ch.Kind != ecs.Inserted {
			continue
		}
		if h, ok := s.sc.Areas.Get(ch.Entity); ok {
			s.sc.Physics.Areas().SetEntity(h.Get(), ch.Entity)
		}
	}
}
