package physics

import "github.com/stepwise/physbridge/internal/mathx"

// ShapeDesc describes a collision shape. The set of shapes is closed: the
// unexported marker method keeps implementations inside this package.
type ShapeDesc interface {
	isShapeDesc()
}

// SphereDesc is a sphere of the given radius.
type SphereDesc struct {
	Radius float64
}

// CubeDesc is a box given by its half extents.
type CubeDesc struct {
	HalfExtents mathx.Vec3
}

// CapsuleDesc is a capsule along the Y axis.
type CapsuleDesc struct {
	HalfHeight float64
	Radius     float64
}

// CylinderDesc is a cylinder along the Y axis.
type CylinderDesc struct {
	HalfHeight float64
	Radius     float64
}

// PlaneDesc is an infinite plane with normal Y+, usually used as a world
// margin.
type PlaneDesc struct{}

// ConvexDesc is the convex hull of a point cloud.
type ConvexDesc struct {
	Points []mathx.Vec3
}

// TriMeshDesc is a triangle mesh given by vertices and triangle indices.
type TriMeshDesc struct {
	Points  []mathx.Vec3
	Indices [][3]int
}

// CompoundDesc composes child shapes, each at its own offset.
type CompoundDesc struct {
	Children []CompoundChild
}

// CompoundChild is one shape of a compound with its local offset.
type CompoundChild struct {
	Offset mathx.Isometry
	Shape  ShapeDesc
}

func (SphereDesc) isShapeDesc()   {}
func (CubeDesc) isShapeDesc()     {}
func (CapsuleDesc) isShapeDesc()  {}
func (CylinderDesc) isShapeDesc() {}
func (PlaneDesc) isShapeDesc()    {}
func (ConvexDesc) isShapeDesc()   {}
func (TriMeshDesc) isShapeDesc()  {}
func (CompoundDesc) isShapeDesc() {}

// ShapeServer creates and updates collision shapes. A shape is shared:
// many bodies and areas may reference one shape tag.
type ShapeServer interface {
	// CreateShape creates a shape and returns the first handle to it.
	CreateShape(desc ShapeDesc) ShapeHandle
	// UpdateShape replaces the description of an existing shape. Bodies
	// and areas referencing it see the new geometry.
	UpdateShape(tag ShapeTag, desc ShapeDesc)
}
