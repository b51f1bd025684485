package system

import (
	"time"

	"github.com/stepwise/physbridge/internal/core/dispatch"
	"github.com/stepwise/physbridge/internal/core/ecs"
	"github.com/stepwise/physbridge/internal/mathx"
	"github.com/stepwise/physbridge/internal/scene"
)

// TransformToPhysics pushes entity poses into the backend when a
// transform, body or area component is first inserted.
//
// Known asymmetry: modifications to an already-associated Transform are
// not re-pushed, only fresh insertions are. The upstream hierarchy change
// detection cannot distinguish a local edit from a derived recomputation
// yet, so forwarding Modified events would fight the attachment resolver.
// Insert syncs, modify doesn't; do not "fix" one side without the other.
//
// Parented entities carrying an Attachment are resolved by the attachment
// resolver instead. A parented entity without an Attachment is pushed here
// through its composed ancestor chain, top-down.
type TransformToPhysics struct {
	sc       *scene.Scene
	trCur    *ecs.Cursor
	bodyCur  *ecs.Cursor
	areaCur  *ecs.Cursor
}

func NewTransformToPhysics(sc *scene.Scene) *TransformToPhysics {
	return &TransformToPhysics{
		sc:      sc,
		trCur:   sc.Transforms.Register(),
		bodyCur: sc.Bodies.Register(),
		areaCur: sc.Areas.Register(),
	}
}

func (s *TransformToPhysics) Name() string { return "physics_sync_transform_to" }

func (s *TransformToPhysics) Access() dispatch.Access {
	return dispatch.Access{
		Reads:  []string{scene.ResTransforms, scene.ResParents, scene.ResAttachments, scene.ResBodies, scene.ResAreas},
		Writes: []string{scene.ResPhysics},
	}
}

func (s *TransformToPhysics) Update(_ time.Duration) {
	dirty := make(map[ecs.EntityID]struct{})
	for _, ch := range s.sc.Transforms.Read(s.trCur) {
		if ch.Kind == ecs.Inserted {
			dirty[ch.Entity] = struct{}{}
		}
	}
	for _, ch := range s.sc.Bodies.Read(s.bodyCur) {
		if ch.Kind == ecs.Inserted {
			dirty[ch.Entity] = struct{}{}
		}
	}
	for _, ch := range s.sc.Areas.Read(s.areaCur) {
		if ch.Kind == ecs.Inserted {
			dirty[ch.Entity] = struct{}{}
		}
	}

	for e := range dirty {
		tr, ok := s.sc.Transforms.Get(e)
		if !ok {
			continue
		}
		pose := tr.Local
		if s.sc.Parents.Has(e) {
			if s.sc.Attachments.Has(e) {
				continue // the attachment resolver owns this pose
			}
			pose = s.resolveAncestors(e).Mul(tr.Local)
		}
		if bh, ok := s.sc.Bodies.Get(e); ok {
			s.sc.Physics.Bodies().SetTransform(bh.Get(), pose)
		}
		if ah, ok := s.sc.Areas.Get(e); ok {
			s.sc.Physics.Areas().SetTransform(ah.Get(), pose)
		}
	}
}

// resolveAncestors composes the local poses of e's ancestors, topmost
// first. The climb is iterative and caps at the chain length; a parent
// cycle terminates via the visited set.
func (s *TransformToPhysics) resolveAncestors(e ecs.EntityID) mathx.Isometry {
	world := mathx.IsometryIdentity()
	visited := map[ecs.EntityID]struct{}{e: {}}
	cur, ok := s.sc.Parents.Get(e)
	for ok {
		p := cur.Entity
		if _, seen := visited[p]; seen {
			break
		}
		visited[p] = struct{}{}
		if tr, has := s.sc.Transforms.Get(p); has {
			world = tr.Local.Mul(world)
		}
		cur, ok = s.sc.Parents.Get(p)
	}
	return world
}
