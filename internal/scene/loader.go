package scene

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stepwise/physbridge/internal/component"
	"github.com/stepwise/physbridge/internal/core/ecs"
	"github.com/stepwise/physbridge/internal/mathx"
	"github.com/stepwise/physbridge/internal/physics"
)

type sceneFile struct {
	Entities []entityYAML `yaml:"entities"`
}

type entityYAML struct {
	Name       string      `yaml:"name"`
	Parent     string      `yaml:"parent"`     // name of an earlier entity
	Position   [3]float64  `yaml:"position"`
	Rotation   *rotYAML    `yaml:"rotation"`
	Attachment bool        `yaml:"attachment"` // cache the composed world pose
	Shape      *shapeYAML  `yaml:"shape"`
	Body       *bodyYAML   `yaml:"body"`
	Area       *areaYAML   `yaml:"area"`
	Joint      *jointYAML  `yaml:"joint"`
}

type rotYAML struct {
	Axis    [3]float64 `yaml:"axis"`
	Degrees float64    `yaml:"degrees"`
}

type shapeYAML struct {
	Kind        string     `yaml:"kind"` // sphere, cube, capsule, cylinder, plane
	Radius      float64    `yaml:"radius"`
	HalfHeight  float64    `yaml:"half_height"`
	HalfExtents [3]float64 `yaml:"half_extents"`
}

type bodyYAML struct {
	Mode            string     `yaml:"mode"` // static, dynamic, kinematic, disabled
	Mass            float64    `yaml:"mass"`
	Friction        float64    `yaml:"friction"`
	Bounciness      float64    `yaml:"bounciness"`
	Velocity        [3]float64 `yaml:"velocity"`
	AngularVelocity [3]float64 `yaml:"angular_velocity"`
}

type areaYAML struct {
	BelongTo    []uint8 `yaml:"belong_to"`
	CollideWith []uint8 `yaml:"collide_with"`
}

type jointYAML struct {
	Kind string `yaml:"kind"` // fixed
}

// Load reads a scene description and spawns its entities. Returns the
// entities created, indexed by their names from the file.
func Load(sc *Scene, path string) (map[string]ecs.EntityID, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	var f sceneFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return Spawn(sc, f.Entities)
}

// Spawn creates one entity per entry. Parents must be declared before the
// entities that reference them.
func Spawn(sc *Scene, entries []entityYAML) (map[string]ecs.EntityID, error) {
	named := make(map[string]ecs.EntityID, len(entries))
	for i, entry := range entries {
		e, err := spawnOne(sc, entry, named)
		if err != nil {
			return nil, fmt.Errorf("entity %d (%s): %w", i, entry.Name, err)
		}
		if entry.Name != "" {
			if _, dup := named[entry.Name]; dup {
				return nil, fmt.Errorf("entity %d: duplicate name %q", i, entry.Name)
			}
			named[entry.Name] = e
		}
	}
	return named, nil
}

func spawnOne(sc *Scene, entry entityYAML, named map[string]ecs.EntityID) (ecs.EntityID, error) {
	e := sc.World.Pool().Create()

	pose := mathx.Isometry{
		Rotation:    mathx.QuatIdentity(),
		Translation: mathx.Vec3{X: entry.Position[0], Y: entry.Position[1], Z: entry.Position[2]},
	}
	if r := entry.Rotation; r != nil {
		axis := mathx.Vec3{X: r.Axis[0], Y: r.Axis[1], Z: r.Axis[2]}
		pose.Rotation = mathx.FromAxisAngle(axis, r.Degrees*math.Pi/180)
	}
	sc.Transforms.Set(e, &component.Transform{Local: pose})

	if entry.Parent != "" {
		p, ok := named[entry.Parent]
		if !ok {
			return 0, fmt.Errorf("unknown parent %q", entry.Parent)
		}
		sc.Parents.Set(e, &ecs.Parent{Entity: p})
	}
	if entry.Attachment {
		sc.Attachments.Set(e, component.NewAttachment())
	}

	if s := entry.Shape; s != nil {
		desc, err := shapeDesc(s)
		if err != nil {
			return 0, err
		}
		h := sc.Physics.Shapes().CreateShape(desc)
		sc.Shapes.Set(e, &h)
	}
	if b := entry.Body; b != nil {
		mode, err := bodyMode(b.Mode)
		if err != nil {
			return 0, err
		}
		desc := physics.RigidBodyDesc{
			Mode:       mode,
			Mass:       b.Mass,
			Friction:   b.Friction,
			Bounciness: b.Bounciness,
		}
		h := sc.Physics.Bodies().CreateBody(&desc)
		if v := (mathx.Vec3{X: b.Velocity[0], Y: b.Velocity[1], Z: b.Velocity[2]}); v != (mathx.Vec3{}) {
			sc.Physics.Bodies().SetLinearVelocity(h.Get(), v)
		}
		if v := (mathx.Vec3{X: b.AngularVelocity[0], Y: b.AngularVelocity[1], Z: b.AngularVelocity[2]}); v != (mathx.Vec3{}) {
			sc.Physics.Bodies().SetAngularVelocity(h.Get(), v)
		}
		sc.Bodies.Set(e, &h)
	}
	if a := entry.Area; a != nil {
		desc := physics.NewAreaDesc()
		if len(a.BelongTo) > 0 {
			desc.BelongTo = collisionGroups(a.BelongTo)
		}
		if len(a.CollideWith) > 0 {
			desc.CollideWith = collisionGroups(a.CollideWith)
		}
		h := sc.Physics.Areas().CreateArea(desc)
		sc.Areas.Set(e, &h)
	}
	if j := entry.Joint; j != nil {
		if j.Kind != "fixed" {
			return 0, fmt.Errorf("unknown joint kind %q", j.Kind)
		}
		h := sc.Physics.Joints().CreateJoint(physics.FixedJointDesc{}, pose)
		sc.Joints.Set(e, &h)
	}
	return e, nil
}

func shapeDesc(s *shapeYAML) (physics.ShapeDesc, error) {
	switch s.Kind {
	case "sphere":
		return physics.SphereDesc{Radius: s.Radius}, nil
	case "cube":
		return physics.CubeDesc{HalfExtents: mathx.Vec3{
			X: s.HalfExtents[0], Y: s.HalfExtents[1], Z: s.HalfExtents[2],
		}}, nil
	case "capsule":
		return physics.CapsuleDesc{HalfHeight: s.HalfHeight, Radius: s.Radius}, nil
	case "cylinder":
		return physics.CylinderDesc{HalfHeight: s.HalfHeight, Radius: s.Radius}, nil
	case "plane":
		return physics.PlaneDesc{}, nil
	}
	return nil, fmt.Errorf("unknown shape kind %q", s.Kind)
}

func bodyMode(mode string) (physics.BodyMode, error) {
	switch mode {
	case "static":
		return physics.BodyStatic, nil
	case "dynamic":
		return physics.BodyDynamic, nil
	case "kinematic":
		return physics.BodyKinematic, nil
	case "disabled", "":
		return physics.BodyDisabled, nil
	}
	return 0, fmt.Errorf("unknown body mode %q", mode)
}

func collisionGroups(in []uint8) []physics.CollisionGroup {
	out := make([]physics.CollisionGroup, len(in))
	for i, g := range in {
		out[i] = physics.CollisionGroup(g)
	}
	return out
}
