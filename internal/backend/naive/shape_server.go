package naive

import (
	"go.uber.org/zap"

	"github.com/stepwise/physbridge/internal/physics"
)

type shapeServer struct {
	st *state
}

func (ss *shapeServer) CreateShape(desc physics.ShapeDesc) physics.ShapeHandle {
	s := ss.st
	s.mu.Lock()
	defer s.mu.Unlock()
	index, gen := s.shapes.alloc(shapeSlot{desc: desc})
	return physics.NewHandle(physics.NewShapeTag(physics.TagGenIndex, index, gen), s.gc)
}

func (ss *shapeServer) UpdateShape(tag physics.ShapeTag, desc physics.ShapeDesc) {
	s := ss.st
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.shapes.get(tag.A, tag.B)
	if !ok {
		s.log.Warn("stale shape tag", zap.Uint64("index", tag.A), zap.Uint64("gen", tag.B))
		return
	}
	sl.desc = desc
}
