package physics

import "github.com/stepwise/physbridge/internal/mathx"

// Backend produces a physics World. Which backend runs is decided once at
// startup; everything above this interface is engine-agnostic, so swapping
// the engine never touches game code.
type Backend interface {
	Name() string
	CreateWorld() *World
}

// WorldServer manipulates the simulation as a whole.
type WorldServer interface {
	// Step advances the simulation by the configured time step. It is
	// called at a fixed rate by the stepper system.
	Step()
	// SetTimeStep sets the duration of one step.
	SetTimeStep(dt float64)
	SetGravity(g mathx.Vec3)
	Gravity() mathx.Vec3
}

// World aggregates the servers of one backend instance plus the garbage
// collector its handles notify. It is safe to share across systems; each
// backend serializes access internally.
type World struct {
	world  WorldServer
	bodies BodyServer
	areas  AreaServer
	shapes ShapeServer
	joints JointServer
	gc     *GarbageCollector
}

// NewWorld assembles a World from a backend's servers. Called by backends
// from CreateWorld.
func NewWorld(w WorldServer, b BodyServer, a AreaServer, s ShapeServer, j JointServer, gc *GarbageCollector) *World {
	return &World{world: w, bodies: b, areas: a, shapes: s, joints: j, gc: gc}
}

func (w *World) WorldServer() WorldServer { return w.world }
func (w *World) Bodies() BodyServer       { return w.bodies }
func (w *World) Areas() AreaServer        { return w.areas }
func (w *World) Shapes() ShapeServer      { return w.shapes }
func (w *World) Joints() JointServer      { return w.joints }
func (w *World) GC() *GarbageCollector    { return w.gc }
