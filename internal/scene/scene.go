// Package scene owns the shared state every system operates on: the ECS
// world, the physics component stores, the parent hierarchy, the backend
// world and the fixed-step clock.
package scene

import (
	"github.com/stepwise/physbridge/internal/component"
	"github.com/stepwise/physbridge/internal/core/ecs"
	"github.com/stepwise/physbridge/internal/physics"
)

// Resource keys systems declare to the dispatcher. Anything touching a
// store, the backend world or the clock names it here.
const (
	ResTransforms  = "scene.transforms"
	ResParents     = "scene.parents"
	ResAttachments = "scene.attachments"
	ResBodies      = "scene.bodies"
	ResAreas       = "scene.areas"
	ResShapes      = "scene.shapes"
	ResJoints      = "scene.joints"
	ResPhysics     = "scene.physics"
	ResTime        = "scene.time"
)

// Scene aggregates all bridge state. One instance per backend world.
type Scene struct {
	Backend physics.Backend
	World   *ecs.World

	Transforms  *ecs.Store[component.Transform]
	Parents     *ecs.Store[ecs.Parent]
	Attachments *ecs.Store[component.Attachment]

	// The handle stores. Removing a handle component releases that
	// ownership, which is how dead entities surrender backend resources.
	Bodies *ecs.Store[physics.BodyHandle]
	Areas  *ecs.Store[physics.AreaHandle]
	Shapes *ecs.Store[physics.ShapeHandle]
	Joints *ecs.Store[physics.JointHandle]

	Hierarchy *ecs.Hierarchy
	Physics   *physics.World
	Time      *physics.Time
}

// New builds a scene over the world a backend created.
func New(backend physics.Backend) *Scene {
	s := &Scene{
		Backend:     backend,
		World:       ecs.NewWorld(),
		Transforms:  ecs.NewStore[component.Transform](),
		Parents:     ecs.NewStore[ecs.Parent](),
		Attachments: ecs.NewStore[component.Attachment](),
		Bodies:      ecs.NewStoreDrop(func(h *physics.BodyHandle) { h.Release() }),
		Areas:       ecs.NewStoreDrop(func(h *physics.AreaHandle) { h.Release() }),
		Shapes:      ecs.NewStoreDrop(func(h *physics.ShapeHandle) { h.Release() }),
		Joints:      ecs.NewStoreDrop(func(h *physics.JointHandle) { h.Release() }),
		Physics:     backend.CreateWorld(),
		Time:        physics.NewTime(),
	}
	s.Hierarchy = ecs.NewHierarchy(s.Parents)

	reg := s.World.Registry()
	reg.Register(s.Transforms)
	reg.Register(s.Parents)
	reg.Register(s.Attachments)
	reg.Register(s.Bodies)
	reg.Register(s.Areas)
	reg.Register(s.Shapes)
	reg.Register(s.Joints)
	return s
}
