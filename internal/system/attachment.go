package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/stepwise/physbridge/internal/core/dispatch"
	"github.com/stepwise/physbridge/internal/mathx"
	"github.com/stepwise/physbridge/internal/scene"
)

// AttachmentResolver recomputes the cached world pose of every Attachment
// from its parent chain, then pushes the pose to the entity's body or area
// if it carries one. Hierarchy order guarantees a parent's attachment is
// resolved before its children's.
//
// One instance runs in two places: once per frame before the sub-step loop
// (so static chains resolve even when no sub-step happens) and once per
// sub-step inside the loop (so chains under active dynamics follow moving
// bodies). The skip flag deduplicates the seam: the pre-loop run arms it,
// and the first in-loop run — same body state, nothing to recompute — is
// skipped once.
type AttachmentResolver struct {
	sc       *scene.Scene
	log      *zap.Logger
	skipNext bool
}

func NewAttachmentResolver(sc *scene.Scene, log *zap.Logger) *AttachmentResolver {
	return &AttachmentResolver{sc: sc, log: log}
}

func (s *AttachmentResolver) Name() string { return "physics_attachment" }

func (s *AttachmentResolver) Access() dispatch.Access {
	return dispatch.Access{
		Reads:  []string{scene.ResTransforms, scene.ResParents, scene.ResBodies, scene.ResAreas},
		Writes: []string{scene.ResAttachments, scene.ResPhysics},
	}
}

func (s *AttachmentResolver) Update(_ time.Duration) {
	if !s.sc.Time.InSubStep() {
		s.skipNext = true
	} else if s.skipNext {
		s.skipNext = false
		return
	}

	order := s.sc.Hierarchy.All()
	for _, e := range s.sc.Hierarchy.Excluded() {
		s.log.Warn("entity sits on a parent cycle, pose not resolved",
			zap.Uint64("entity", uint64(e)))
	}
	for _, e := range order {
		att, ok := s.sc.Attachments.Get(e)
		if !ok {
			continue
		}
		parent, ok := s.sc.Parents.Get(e)
		if !ok {
			continue
		}

		var parentPose mathx.Isometry
		if bh, ok := s.sc.Bodies.Get(parent.Entity); ok {
			parentPose = s.sc.Physics.Bodies().Transform(bh.Get())
		} else if pa, ok := s.sc.Attachments.Get(parent.Entity); ok {
			// Already resolved this pass: hierarchy order puts parents first.
			parentPose = pa.WorldPose
		} else {
			s.log.Warn("attachment parent is neither a rigid body nor an attachment",
				zap.Uint64("entity", uint64(e)),
				zap.Uint64("parent", uint64(parent.Entity)))
			continue
		}

		if tr, ok := s.sc.Transforms.Get(e); ok {
			att.WorldPose = parentPose.Mul(tr.Local)
		} else {
			att.WorldPose = parentPose
		}

		// A plain entity mid-chain carries no physics resource; caching
		// the pose for its children is all that is needed.
		if ah, ok := s.sc.Areas.Get(e); ok {
			s.sc.Physics.Areas().SetTransform(ah.Get(), att.WorldPose)
		} else if bh, ok := s.sc.Bodies.Get(e); ok {
			s.sc.Physics.Bodies().SetTransform(bh.Get(), att.WorldPose)
		}
	}
}
