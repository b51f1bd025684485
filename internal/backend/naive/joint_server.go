package naive

import (
	"go.uber.org/zap"

	"github.com/stepwise/physbridge/internal/mathx"
	"github.com/stepwise/physbridge/internal/physics"
)

type jointServer struct {
	st *state
}

func (js *jointServer) CreateJoint(desc physics.JointDesc, initialPose mathx.Isometry) physics.JointHandle {
	s := js.st
	s.mu.Lock()
	defer s.mu.Unlock()
	index, gen := s.joints.alloc(jointSlot{desc: desc, pose: initialPose})
	return physics.NewHandle(physics.NewJointTag(physics.TagGenIndex, index, gen), s.gc)
}

func (js *jointServer) InsertRigidBody(joint physics.JointTag, body physics.BodyTag) {
	s := js.st
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.joint(joint)
	if !ok {
		return
	}
	if _, ok := s.body(body); !ok {
		return
	}
	if len(j.bodies) >= 2 {
		s.log.Warn("joint already has two bodies, insertion ignored",
			zap.Uint64("joint", joint.A), zap.Uint64("body", body.A))
		return
	}
	j.bodies = append(j.bodies, body)
	s.counters.InsertRigidBody++
}

func (js *jointServer) RemoveRigidBody(joint physics.JointTag, body physics.BodyTag) {
	s := js.st
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.joint(joint)
	if !ok {
		return
	}
	for i, b := range j.bodies {
		if b == body {
			j.bodies = append(j.bodies[:i], j.bodies[i+1:]...)
			s.counters.RemoveRigidBody++
			return
		}
	}
	s.log.Warn("body not bound to joint",
		zap.Uint64("joint", joint.A), zap.Uint64("body", body.A))
}
