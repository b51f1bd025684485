package naive

import (
	"github.com/stepwise/physbridge/internal/core/ecs"
	"github.com/stepwise/physbridge/internal/mathx"
	"github.com/stepwise/physbridge/internal/physics"
)

type areaServer struct {
	st *state
}

func (as *areaServer) CreateArea(desc *physics.AreaDesc) physics.AreaHandle {
	s := as.st
	s.mu.Lock()
	defer s.mu.Unlock()
	index, gen := s.areas.alloc(areaSlot{
		pose:        mathx.IsometryIdentity(),
		belongTo:    append([]physics.CollisionGroup(nil), desc.BelongTo...),
		collideWith: append([]physics.CollisionGroup(nil), desc.CollideWith...),
	})
	return physics.NewHandle(physics.NewAreaTag(physics.TagGenIndex, index, gen), s.gc)
}

func (as *areaServer) SetEntity(tag physics.AreaTag, entity ecs.EntityID) {
	s := as.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.area(tag); ok {
		a.entity = entity
		s.counters.SetEntity++
	}
}

func (as *areaServer) Entity(tag physics.AreaTag) ecs.EntityID {
	s := as.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.area(tag); ok {
		return a.entity
	}
	return ecs.EntityID(0)
}

func (as *areaServer) SetShape(tag physics.AreaTag, shape *physics.ShapeTag) {
	s := as.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.area(tag); ok {
		a.shape = shape
		s.counters.SetShape++
	}
}

func (as *areaServer) Shape(tag physics.AreaTag) *physics.ShapeTag {
	s := as.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.area(tag); ok {
		return a.shape
	}
	return nil
}

func (as *areaServer) SetTransform(tag physics.AreaTag, pose mathx.Isometry) {
	s := as.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.area(tag); ok {
		a.pose = pose
		s.counters.SetTransform++
	}
}

func (as *areaServer) Transform(tag physics.AreaTag) mathx.Isometry {
	s := as.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.area(tag); ok {
		return a.pose
	}
	return mathx.IsometryIdentity()
}

func (as *areaServer) SetBelongTo(tag physics.AreaTag, groups []physics.CollisionGroup) {
	s := as.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.area(tag); ok {
		a.belongTo = append(a.belongTo[:0], groups...)
	}
}

func (as *areaServer) BelongTo(tag physics.AreaTag) []physics.CollisionGroup {
	s := as.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.area(tag); ok {
		return append([]physics.CollisionGroup(nil), a.belongTo...)
	}
	return nil
}

func (as *areaServer) SetCollideWith(tag physics.AreaTag, groups []physics.CollisionGroup) {
	s := as.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.area(tag); ok {
		a.collideWith = append(a.collideWith[:0], groups...)
	}
}

func (as *areaServer) CollideWith(tag physics.AreaTag) []physics.CollisionGroup {
	s := as.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.area(tag); ok {
		return append([]physics.CollisionGroup(nil), a.collideWith...)
	}
	return nil
}

func (as *areaServer) OverlapEvents(tag physics.AreaTag) []physics.OverlapEvent {
	s := as.st
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.area(tag); ok {
		return a.overlaps
	}
	return nil
}
