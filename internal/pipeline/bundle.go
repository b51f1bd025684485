// Package pipeline assembles the physics bridge: it wires the component
// stores, the synchronization systems, the fixed-step batch and the
// ordering barriers into one dispatch schedule.
package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/stepwise/physbridge/internal/core/dispatch"
	"github.com/stepwise/physbridge/internal/scene"
	"github.com/stepwise/physbridge/internal/system"
)

// System is what the bundle registers: a dispatch system that also
// declares its access set.
type System interface {
	dispatch.System
	Access() dispatch.Access
}

type userEntry struct {
	sys  System
	deps []string
}

// Bundle configures and builds the physics pipeline.
//
// User systems register in one of three sections. Pre-physics systems run
// before any sub-step and are where forces and pose edits belong.
// In-physics systems run inside the sub-step loop, once per sub-step.
// Post-physics systems run after the loop, where contact and overlap
// events are collected.
type Bundle struct {
	log         *zap.Logger
	fps         int
	maxSubSteps int
	pre         []userEntry
	inPhysics   []dispatch.System
	post        []userEntry
}

func New(log *zap.Logger) *Bundle {
	return &Bundle{log: log, fps: 60, maxSubSteps: 8}
}

// WithFramesPerSecond sets the physics step rate applied at build time.
// It stays adjustable afterwards through the scene clock.
func (b *Bundle) WithFramesPerSecond(fps int) *Bundle {
	b.fps = fps
	return b
}

// WithMaxSubSteps bounds the sub-steps one frame may run.
func (b *Bundle) WithMaxSubSteps(n int) *Bundle {
	b.maxSubSteps = n
	return b
}

// WithPrePhysics registers a system in the pre-physics section.
func (b *Bundle) WithPrePhysics(sys System, deps ...string) *Bundle {
	b.pre = append(b.pre, userEntry{sys: sys, deps: deps})
	return b
}

// WithInPhysics registers a system inside the sub-step loop. In-physics
// systems run sequentially in registration order, once per sub-step.
func (b *Bundle) WithInPhysics(sys dispatch.System) *Bundle {
	b.inPhysics = append(b.inPhysics, sys)
	return b
}

// WithPostPhysics registers a system in the post-physics section.
func (b *Bundle) WithPostPhysics(sys System, deps ...string) *Bundle {
	b.post = append(b.post, userEntry{sys: sys, deps: deps})
	return b
}

// Build wires everything into a schedule. Any wiring failure — duplicate
// names, unknown dependencies — is returned here, before a frame ever
// runs; the pipeline never starts partially built.
func (b *Bundle) Build(sc *scene.Scene) (*dispatch.Schedule, error) {
	if b.fps <= 0 || b.maxSubSteps <= 0 {
		return nil, fmt.Errorf("pipeline: fps and max sub-steps must be positive, got %d and %d", b.fps, b.maxSubSteps)
	}
	sc.Time.SetFramesPerSecond(b.fps)
	sc.Time.SetMaxSubSteps(b.maxSubSteps)

	attachment := system.NewAttachmentResolver(sc, b.log)
	entitySync := system.NewEntitySync(sc)
	shapeSync := system.NewShapeSync(sc)
	transformTo := system.NewTransformToPhysics(sc)
	jointSync := system.NewJointSync(sc)
	transformFrom := system.NewTransformFromPhysics(sc)
	stepper := system.NewStepper(sc)

	// The attachment resolver appears both in the pre-pass and inside the
	// batch, as the same instance: its skip flag is what keeps the first
	// sub-step from redoing the pre-pass work.
	inner := make([]dispatch.System, 0, len(b.inPhysics)+2)
	inner = append(inner, attachment)
	inner = append(inner, b.inPhysics...)
	inner = append(inner, stepper)
	batch := system.NewBatch(sc, inner)

	d := dispatch.NewBuilder()
	d.Add(entitySync, entitySync.Access())
	d.Add(shapeSync, shapeSync.Access())
	d.Add(transformTo, transformTo.Access())
	d.Add(attachment, attachment.Access(), transformTo.Name())
	d.Add(jointSync, jointSync.Access(), attachment.Name())
	for _, e := range b.pre {
		d.Add(e.sys, e.sys.Access(), e.deps...)
	}
	d.AddBarrier()
	d.Add(batch, batch.Access())
	d.AddBarrier()
	d.Add(transformFrom, transformFrom.Access())
	for _, e := range b.post {
		d.Add(e.sys, e.sys.Access(), e.deps...)
	}

	sched, err := d.Build()
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	b.log.Info("physics pipeline built",
		zap.String("backend", sc.Backend.Name()),
		zap.Int("fps", b.fps),
		zap.Int("max_sub_steps", b.maxSubSteps))
	return sched, nil
}
