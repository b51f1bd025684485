package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stepwise/physbridge/internal/backend/naive"
	"github.com/stepwise/physbridge/internal/component"
	"github.com/stepwise/physbridge/internal/core/dispatch"
	"github.com/stepwise/physbridge/internal/core/ecs"
	"github.com/stepwise/physbridge/internal/mathx"
	"github.com/stepwise/physbridge/internal/physics"
	"github.com/stepwise/physbridge/internal/scene"
)

func newTestScene() (*naive.Backend, *scene.Scene) {
	backend := naive.New(zap.NewNop())
	return backend, scene.New(backend)
}

func addBody(sc *scene.Scene, e ecs.EntityID, mode physics.BodyMode) physics.BodyHandle {
	h := sc.Physics.Bodies().CreateBody(&physics.RigidBodyDesc{Mode: mode, Mass: 1})
	sc.Bodies.Set(e, &h)
	return h
}

func addArea(sc *scene.Scene, e ecs.EntityID) physics.AreaHandle {
	h := sc.Physics.Areas().CreateArea(physics.NewAreaDesc())
	sc.Areas.Set(e, &h)
	return h
}

func addTransform(sc *scene.Scene, e ecs.EntityID, pose mathx.Isometry) {
	sc.Transforms.Set(e, &component.Transform{Local: pose})
}

func translation(x, y, z float64) mathx.Isometry {
	return mathx.Translation(mathx.Vec3{X: x, Y: y, Z: z})
}

func TestEntitySyncAssociatesOnInsert(t *testing.T) {
	backend, sc := newTestScene()
	sync := NewEntitySync(sc)

	e := sc.World.CreateEntity()
	bh := addBody(sc, e, physics.BodyDynamic)

	sync.Update(0)
	assert.Equal(t, e, sc.Physics.Bodies().Entity(bh.Get()))
	assert.Equal(t, 1, backend.Counters().SetEntity)

	// A second pass with no changes pushes nothing.
	sync.Update(0)
	assert.Equal(t, 1, backend.Counters().SetEntity)
}

func TestShapeSyncAssignsAndClears(t *testing.T) {
	_, sc := newTestScene()
	sync := NewShapeSync(sc)

	e := sc.World.CreateEntity()
	bh := addBody(sc, e, physics.BodyDynamic)
	sh := sc.Physics.Shapes().CreateShape(physics.SphereDesc{Radius: 1})
	sc.Shapes.Set(e, &sh)

	sync.Update(0)
	got := sc.Physics.Bodies().Shape(bh.Get())
	require.NotNil(t, got)
	assert.Equal(t, sh.Get(), *got)

	sc.Shapes.Remove(e)
	sync.Update(0)
	assert.Nil(t, sc.Physics.Bodies().Shape(bh.Get()), "shape removal clears the backend assignment")
}

func TestShapeSyncCoversAreas(t *testing.T) {
	_, sc := newTestScene()
	sync := NewShapeSync(sc)

	e := sc.World.CreateEntity()
	ah := addArea(sc, e)
	sh := sc.Physics.Shapes().CreateShape(physics.CubeDesc{HalfExtents: mathx.Vec3{X: 1, Y: 1, Z: 1}})
	sc.Shapes.Set(e, &sh)

	sync.Update(0)
	got := sc.Physics.Areas().Shape(ah.Get())
	require.NotNil(t, got)
	assert.Equal(t, sh.Get(), *got)
}

func TestTransformToPhysicsPushesInsertedPose(t *testing.T) {
	_, sc := newTestScene()
	sync := NewTransformToPhysics(sc)

	e := sc.World.CreateEntity()
	bh := addBody(sc, e, physics.BodyDynamic)
	addTransform(sc, e, translation(1, 2, 3))

	sync.Update(0)
	got := sc.Physics.Bodies().Transform(bh.Get())
	assert.True(t, got.Translation.Near(mathx.Vec3{X: 1, Y: 2, Z: 3}, 1e-9))
}

func TestTransformToPhysicsIgnoresModification(t *testing.T) {
	_, sc := newTestScene()
	sync := NewTransformToPhysics(sc)

	e := sc.World.CreateEntity()
	bh := addBody(sc, e, physics.BodyDynamic)
	addTransform(sc, e, translation(1, 0, 0))
	sync.Update(0)

	// Re-setting the component is a Modified event and is not forwarded.
	addTransform(sc, e, translation(9, 9, 9))
	sync.Update(0)
	got := sc.Physics.Bodies().Transform(bh.Get())
	assert.True(t, got.Translation.Near(mathx.Vec3{X: 1}, 1e-9))
}

func TestTransformToPhysicsComposesAncestors(t *testing.T) {
	_, sc := newTestScene()
	sync := NewTransformToPhysics(sc)

	top := sc.World.CreateEntity()
	mid := sc.World.CreateEntity()
	leaf := sc.World.CreateEntity()
	addTransform(sc, top, translation(10, 0, 0))
	addTransform(sc, mid, translation(0, 5, 0))
	addTransform(sc, leaf, translation(0, 0, 2))
	sc.Parents.Set(mid, &ecs.Parent{Entity: top})
	sc.Parents.Set(leaf, &ecs.Parent{Entity: mid})
	bh := addBody(sc, leaf, physics.BodyStatic)

	sync.Update(0)
	got := sc.Physics.Bodies().Transform(bh.Get())
	assert.True(t, got.Translation.Near(mathx.Vec3{X: 10, Y: 5, Z: 2}, 1e-9))
}

func TestTransformToPhysicsDefersToAttachment(t *testing.T) {
	backend, sc := newTestScene()
	sync := NewTransformToPhysics(sc)

	parent := sc.World.CreateEntity()
	child := sc.World.CreateEntity()
	addTransform(sc, child, translation(1, 0, 0))
	sc.Parents.Set(child, &ecs.Parent{Entity: parent})
	sc.Attachments.Set(child, component.NewAttachment())
	addBody(sc, child, physics.BodyDynamic)

	sync.Update(0)
	assert.Equal(t, 0, backend.Counters().SetTransform, "attachment-owned poses are not pushed here")
}

func TestAttachmentResolverComposesChain(t *testing.T) {
	_, sc := newTestScene()
	resolver := NewAttachmentResolver(sc, zap.NewNop())

	// A rigid body anchor with two attachment links hanging under it.
	anchor := sc.World.CreateEntity()
	bh := addBody(sc, anchor, physics.BodyKinematic)
	sc.Physics.Bodies().SetTransform(bh.Get(), translation(100, 0, 0))

	link1 := sc.World.CreateEntity()
	addTransform(sc, link1, translation(0, 1, 0))
	sc.Parents.Set(link1, &ecs.Parent{Entity: anchor})
	sc.Attachments.Set(link1, component.NewAttachment())

	link2 := sc.World.CreateEntity()
	addTransform(sc, link2, translation(0, 0, 7))
	sc.Parents.Set(link2, &ecs.Parent{Entity: link1})
	sc.Attachments.Set(link2, component.NewAttachment())

	link3 := sc.World.CreateEntity()
	addTransform(sc, link3, translation(3, 0, 0))
	sc.Parents.Set(link3, &ecs.Parent{Entity: link2})
	sc.Attachments.Set(link3, component.NewAttachment())
	ah := addArea(sc, link3)

	resolver.Update(0)

	att1, _ := sc.Attachments.Get(link1)
	assert.True(t, att1.WorldPose.Translation.Near(mathx.Vec3{X: 100, Y: 1}, 1e-9))
	att2, _ := sc.Attachments.Get(link2)
	assert.True(t, att2.WorldPose.Translation.Near(mathx.Vec3{X: 100, Y: 1, Z: 7}, 1e-9))

	// Leaf pose is the left-to-right chain body * p1 * p2 * p3.
	want := translation(100, 0, 0).Mul(translation(0, 1, 0)).Mul(translation(0, 0, 7)).Mul(translation(3, 0, 0))
	att3, _ := sc.Attachments.Get(link3)
	assert.True(t, att3.WorldPose.Near(want, 1e-9))

	got := sc.Physics.Areas().Transform(ah.Get())
	assert.True(t, got.Translation.Near(mathx.Vec3{X: 103, Y: 1, Z: 7}, 1e-9))
}

func TestAttachmentResolverFollowsMovedBody(t *testing.T) {
	_, sc := newTestScene()
	resolver := NewAttachmentResolver(sc, zap.NewNop())

	anchor := sc.World.CreateEntity()
	bh := addBody(sc, anchor, physics.BodyKinematic)
	sc.Physics.Bodies().SetTransform(bh.Get(), translation(1, 0, 0))

	child := sc.World.CreateEntity()
	addTransform(sc, child, translation(0, 2, 0))
	sc.Parents.Set(child, &ecs.Parent{Entity: anchor})
	sc.Attachments.Set(child, component.NewAttachment())

	resolver.Update(0)
	sc.Physics.Bodies().SetTransform(bh.Get(), translation(50, 0, 0))

	sc.Time.BeginSubStepping()
	resolver.Update(0) // first in-loop pass is the deduplicated one
	resolver.Update(0)
	sc.Time.EndSubStepping()

	att, _ := sc.Attachments.Get(child)
	assert.True(t, att.WorldPose.Translation.Near(mathx.Vec3{X: 50, Y: 2}, 1e-9))
}

func TestAttachmentResolverSkipsFirstSubStep(t *testing.T) {
	backend, sc := newTestScene()
	resolver := NewAttachmentResolver(sc, zap.NewNop())

	anchor := sc.World.CreateEntity()
	addBody(sc, anchor, physics.BodyKinematic)
	child := sc.World.CreateEntity()
	sc.Parents.Set(child, &ecs.Parent{Entity: anchor})
	sc.Attachments.Set(child, component.NewAttachment())
	addArea(sc, child)

	resolver.Update(0) // pre-loop pass, arms the skip
	pushed := backend.Counters().SetTransform
	assert.Equal(t, 1, pushed)

	sc.Time.BeginSubStepping()
	resolver.Update(0)
	assert.Equal(t, pushed, backend.Counters().SetTransform, "first sub-step repeats nothing")
	resolver.Update(0)
	assert.Equal(t, pushed+1, backend.Counters().SetTransform)
	sc.Time.EndSubStepping()

	// Next frame re-arms.
	resolver.Update(0)
	assert.Equal(t, pushed+2, backend.Counters().SetTransform)
}

func TestJointSyncLifecycle(t *testing.T) {
	backend, sc := newTestScene()
	sync := NewJointSync(sc)

	e := sc.World.CreateEntity()
	addBody(sc, e, physics.BodyDynamic)
	jh := sc.Physics.Joints().CreateJoint(physics.FixedJointDesc{}, mathx.IsometryIdentity())
	sc.Joints.Set(e, &jh)

	sync.Update(0)
	assert.Equal(t, 1, sync.Pairs())
	assert.Equal(t, 1, backend.Counters().InsertRigidBody)

	sync.Update(0)
	assert.Equal(t, 1, sync.Pairs(), "steady state binds nothing new")

	sc.Joints.Remove(e)
	sync.Update(0)
	assert.Equal(t, 0, sync.Pairs())
	assert.Equal(t, 1, backend.Counters().RemoveRigidBody)
}

func TestJointSyncTwoBodiesOneJoint(t *testing.T) {
	backend, sc := newTestScene()
	sync := NewJointSync(sc)

	jh := sc.Physics.Joints().CreateJoint(physics.FixedJointDesc{}, mathx.IsometryIdentity())

	e1 := sc.World.CreateEntity()
	addBody(sc, e1, physics.BodyDynamic)
	sc.Joints.Set(e1, &jh)

	e2 := sc.World.CreateEntity()
	addBody(sc, e2, physics.BodyDynamic)
	shared := jh.Clone()
	sc.Joints.Set(e2, &shared)

	sync.Update(0)
	assert.Equal(t, 2, sync.Pairs())
	assert.Equal(t, 2, backend.Counters().InsertRigidBody)

	sc.Bodies.Remove(e1)
	sync.Update(0)
	assert.Equal(t, 1, sync.Pairs())
	assert.Equal(t, 1, backend.Counters().RemoveRigidBody)
}

func TestJointSyncModifiedRebinds(t *testing.T) {
	backend, sc := newTestScene()
	sync := NewJointSync(sc)

	e := sc.World.CreateEntity()
	addBody(sc, e, physics.BodyDynamic)
	jh := sc.Physics.Joints().CreateJoint(physics.FixedJointDesc{}, mathx.IsometryIdentity())
	sc.Joints.Set(e, &jh)
	sync.Update(0)

	jh2 := sc.Physics.Joints().CreateJoint(physics.FixedJointDesc{}, mathx.IsometryIdentity())
	sc.Joints.Set(e, &jh2)
	sync.Update(0)

	assert.Equal(t, 1, sync.Pairs())
	assert.Equal(t, 2, backend.Counters().InsertRigidBody)
	assert.Equal(t, 1, backend.Counters().RemoveRigidBody)
}

func TestTransformFromPhysicsPullsUnparentedPoses(t *testing.T) {
	_, sc := newTestScene()
	sync := NewTransformFromPhysics(sc)

	e := sc.World.CreateEntity()
	bh := addBody(sc, e, physics.BodyDynamic)
	addTransform(sc, e, mathx.IsometryIdentity())
	sc.Physics.Bodies().SetTransform(bh.Get(), translation(0, -3, 0))

	cur := sc.Transforms.Register()
	sync.Update(0)

	tr, _ := sc.Transforms.Get(e)
	assert.True(t, tr.Local.Translation.Near(mathx.Vec3{Y: -3}, 1e-9))
	assert.Empty(t, sc.Transforms.Read(cur), "pulling state back is silent")

	// Without an intervening step the second pull changes nothing.
	sync.Update(0)
	tr, _ = sc.Transforms.Get(e)
	assert.True(t, tr.Local.Translation.Near(mathx.Vec3{Y: -3}, 1e-9))
}

func TestTransformFromPhysicsSkipsParented(t *testing.T) {
	_, sc := newTestScene()
	sync := NewTransformFromPhysics(sc)

	parent := sc.World.CreateEntity()
	e := sc.World.CreateEntity()
	bh := addBody(sc, e, physics.BodyDynamic)
	addTransform(sc, e, translation(1, 1, 1))
	sc.Parents.Set(e, &ecs.Parent{Entity: parent})
	sc.Physics.Bodies().SetTransform(bh.Get(), translation(0, -3, 0))

	sync.Update(0)
	tr, _ := sc.Transforms.Get(e)
	assert.True(t, tr.Local.Translation.Near(mathx.Vec3{X: 1, Y: 1, Z: 1}, 1e-9), "parented poses are derivative")
}

type countingSystem struct {
	runs int
}

func (c *countingSystem) Name() string           { return "counting" }
func (c *countingSystem) Update(_ time.Duration) { c.runs++ }

func TestBatchRunsInnerOncePerSubStep(t *testing.T) {
	backend, sc := newTestScene()
	counter := &countingSystem{}
	batch := NewBatch(sc, []dispatch.System{counter, NewStepper(sc)})

	// 58ms at 60fps banks three whole sub-steps and a remainder.
	batch.Update(58 * time.Millisecond)

	assert.Equal(t, 3, counter.runs)
	assert.Equal(t, 3, backend.Counters().Steps)
	assert.False(t, sc.Time.InSubStep())
}

func TestBatchZeroStepsRunsNothing(t *testing.T) {
	backend, sc := newTestScene()
	counter := &countingSystem{}
	batch := NewBatch(sc, []dispatch.System{counter, NewStepper(sc)})

	batch.Update(time.Millisecond)
	assert.Equal(t, 0, counter.runs)
	assert.Equal(t, 0, backend.Counters().Steps)
}

func TestStepperStepsBackend(t *testing.T) {
	backend, sc := newTestScene()
	stepper := NewStepper(sc)

	stepper.Update(0)
	stepper.Update(0)
	assert.Equal(t, 2, backend.Counters().Steps)
}
