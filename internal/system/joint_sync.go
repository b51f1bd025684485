package system

import (
	"time"

	"github.com/stepwise/physbridge/internal/core/dispatch"
	"github.com/stepwise/physbridge/internal/core/ecs"
	"github.com/stepwise/physbridge/internal/physics"
	"github.com/stepwise/physbridge/internal/scene"
)

// JointSync binds bodies to joints: an entity holding both a body handle
// and a joint handle gets its body inserted into the joint. The side table
// remembers which (joint, body) pair each entity contributed, because the
// tags alone carry no trace of the entity once the handles are gone.
//
// Removals are applied before insertions in the same pass, so a Modified
// event (remove+insert in the log) nets out to nothing.
type JointSync struct {
	sc       *scene.Scene
	bodyCur  *ecs.Cursor
	jointCur *ecs.Cursor
	table    []jointEntry
}

type jointEntry struct {
	entity ecs.EntityID
	joint  physics.JointTag
	body   physics.BodyTag
}

func NewJointSync(sc *scene.Scene) *JointSync {
	return &JointSync{
		sc:       sc,
		bodyCur:  sc.Bodies.Register(),
		jointCur: sc.Joints.Register(),
	}
}

func (s *JointSync) Name() string { return "physics_sync_joint" }

func (s *JointSync) Access() dispatch.Access {
	return dispatch.Access{
		Reads:  []string{scene.ResBodies, scene.ResJoints},
		Writes: []string{scene.ResPhysics},
	}
}

// Pairs reports how many (joint, body) bindings are currently tracked.
func (s *JointSync) Pairs() int { return len(s.table) }

func (s *JointSync) Update(_ time.Duration) {
	inserted := make(map[ecs.EntityID]struct{})
	removed := make(map[ecs.EntityID]struct{})
	collect := func(changes []ecs.Change) {
		for _, ch := range changes {
			switch ch.Kind {
			case ecs.Inserted:
				inserted[ch.Entity] = struct{}{}
			case ecs.Modified:
				removed[ch.Entity] = struct{}{}
				inserted[ch.Entity] = struct{}{}
			case ecs.Removed:
				removed[ch.Entity] = struct{}{}
			}
		}
	}
	collect(s.sc.Bodies.Read(s.bodyCur))
	collect(s.sc.Joints.Read(s.jointCur))

	for e := range removed {
		for i, entry := range s.table {
			if entry.entity == e {
				s.sc.Physics.Joints().RemoveRigidBody(entry.joint, entry.body)
				s.table = append(s.table[:i], s.table[i+1:]...)
				break
			}
		}
	}

	for e := range inserted {
		bh, ok := s.sc.Bodies.Get(e)
		if !ok {
			continue
		}
		jh, ok := s.sc.Joints.Get(e)
		if !ok {
			continue
		}
		s.sc.Physics.Joints().InsertRigidBody(jh.Get(), bh.Get())
		s.table = append(s.table, jointEntry{entity: e, joint: jh.Get(), body: bh.Get()})
	}
}
