// Package naive is the reference physics backend: generation-checked
// arenas for resources, straight gravity/velocity integration on Step, no
// collision detection or constraint solving. It exists so the bridge can
// run, be demonstrated and be tested without binding a real engine; a
// production adapter implements the same server interfaces against one.
package naive

import (
	"sync"

	"go.uber.org/zap"

	"github.com/stepwise/physbridge/internal/core/ecs"
	"github.com/stepwise/physbridge/internal/mathx"
	"github.com/stepwise/physbridge/internal/physics"
)

// Backend implements physics.Backend.
type Backend struct {
	log         *zap.Logger
	maxContacts int
	st          *state
}

// Option configures the backend.
type Option func(*Backend)

// WithMaxContacts bounds how many contact events a body reports per query.
func WithMaxContacts(n int) Option {
	return func(b *Backend) { b.maxContacts = n }
}

func New(log *zap.Logger, opts ...Option) *Backend {
	b := &Backend{log: log, maxContacts: 64}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Backend) Name() string { return "naive" }

// CreateWorld builds a fresh world. The garbage collector handed to the
// handles is drained at the start of every Step.
func (b *Backend) CreateWorld() *physics.World {
	st := &state{
		log:         b.log,
		gc:          physics.NewGarbageCollector(),
		timeStep:    1.0 / 60,
		gravity:     mathx.Vec3{Y: -9.81},
		maxContacts: b.maxContacts,
	}
	b.st = st
	return physics.NewWorld(
		&worldServer{st},
		&bodyServer{st},
		&areaServer{st},
		&shapeServer{st},
		&jointServer{st},
		st.gc,
	)
}

// Counters returns a snapshot of the call counters, for tests and
// diagnostics.
func (b *Backend) Counters() Counters {
	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	return b.st.counters
}

// Counters tallies backend activity.
type Counters struct {
	Steps           int
	SetEntity       int
	SetShape        int
	SetTransform    int
	InsertRigidBody int
	RemoveRigidBody int
	Reclaimed       int
}

type bodySlot struct {
	desc    physics.RigidBodyDesc
	entity  ecs.EntityID
	shape   *physics.ShapeTag
	pose    mathx.Isometry
	linVel  mathx.Vec3
	angVel  mathx.Vec3
	force   mathx.Vec3
	torque  mathx.Vec3
	contacts []physics.ContactEvent
}

type areaSlot struct {
	entity      ecs.EntityID
	shape       *physics.ShapeTag
	pose        mathx.Isometry
	belongTo    []physics.CollisionGroup
	collideWith []physics.CollisionGroup
	overlaps    []physics.OverlapEvent
}

type shapeSlot struct {
	desc physics.ShapeDesc
}

type jointSlot struct {
	desc   physics.JointDesc
	pose   mathx.Isometry
	bodies []physics.BodyTag
}

type state struct {
	mu          sync.Mutex
	log         *zap.Logger
	gc          *physics.GarbageCollector
	gravity     mathx.Vec3
	timeStep    float64
	maxContacts int

	bodies arena[bodySlot]
	areas  arena[areaSlot]
	shapes arena[shapeSlot]
	joints arena[jointSlot]

	counters Counters
}

// reclaim drains the garbage collector and frees the slots of dead
// resources. Called once per step, under the state lock.
func (s *state) reclaim() {
	for _, t := range s.gc.DrainBodies() {
		if s.bodies.release(t.A, t.B) {
			s.counters.Reclaimed++
		}
	}
	for _, t := range s.gc.DrainAreas() {
		if s.areas.release(t.A, t.B) {
			s.counters.Reclaimed++
		}
	}
	for _, t := range s.gc.DrainShapes() {
		if s.shapes.release(t.A, t.B) {
			s.counters.Reclaimed++
		}
	}
	for _, t := range s.gc.DrainJoints() {
		if s.joints.release(t.A, t.B) {
			s.counters.Reclaimed++
		}
	}
}

func (s *state) body(tag physics.BodyTag) (*bodySlot, bool) {
	b, ok := s.bodies.get(tag.A, tag.B)
	if !ok {
		s.log.Warn("stale body tag", zap.Uint64("index", tag.A), zap.Uint64("gen", tag.B))
	}
	return b, ok
}

func (s *state) area(tag physics.AreaTag) (*areaSlot, bool) {
	a, ok := s.areas.get(tag.A, tag.B)
	if !ok {
		s.log.Warn("stale area tag", zap.Uint64("index", tag.A), zap.Uint64("gen", tag.B))
	}
	return a, ok
}

func (s *state) joint(tag physics.JointTag) (*jointSlot, bool) {
	j, ok := s.joints.get(tag.A, tag.B)
	if !ok {
		s.log.Warn("stale joint tag", zap.Uint64("index", tag.A), zap.Uint64("gen", tag.B))
	}
	return j, ok
}
