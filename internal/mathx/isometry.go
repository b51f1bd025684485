package mathx

// Isometry is a rigid transform: a rotation followed by a translation.
// It is the pose representation exchanged with physics backends.
type Isometry struct {
	Rotation    Quat
	Translation Vec3
}

func IsometryIdentity() Isometry {
	return Isometry{Rotation: QuatIdentity()}
}

func Translation(v Vec3) Isometry {
	return Isometry{Rotation: QuatIdentity(), Translation: v}
}

// Mul composes two transforms. a.Mul(b) maps a point first through b, then
// through a, so a parent pose composes with a child's local pose as
// parent.Mul(child).
func (a Isometry) Mul(b Isometry) Isometry {
	return Isometry{
		Rotation:    a.Rotation.Mul(b.Rotation),
		Translation: a.Translation.Add(a.Rotation.Rotate(b.Translation)),
	}
}

// Inverse returns the transform mapping world space back to local space.
func (a Isometry) Inverse() Isometry {
	inv := a.Rotation.Conjugate()
	return Isometry{
		Rotation:    inv,
		Translation: inv.Rotate(a.Translation.Scale(-1)),
	}
}

// Apply transforms a point.
func (a Isometry) Apply(p Vec3) Vec3 {
	return a.Rotation.Rotate(p).Add(a.Translation)
}

// Near reports whether two transforms are equal within eps, component-wise.
// Rotations are compared up to sign since q and -q encode the same rotation.
func (a Isometry) Near(b Isometry, eps float64) bool {
	if !a.Translation.Near(b.Translation, eps) {
		return false
	}
	qa, qb := a.Rotation, b.Rotation
	if qa.W*qb.W+qa.X*qb.X+qa.Y*qb.Y+qa.Z*qb.Z < 0 {
		qb = Quat{-qb.W, -qb.X, -qb.Y, -qb.Z}
	}
	return Vec3{qa.X, qa.Y, qa.Z}.Near(Vec3{qb.X, qb.Y, qb.Z}, eps) &&
		qa.W-qb.W <= eps && qb.W-qa.W <= eps
}
