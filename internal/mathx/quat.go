package mathx

import "math"

// Quat is a rotation quaternion. The zero value is NOT a valid rotation; use
// QuatIdentity or FromAxisAngle.
type Quat struct {
	W, X, Y, Z float64
}

func QuatIdentity() Quat {
	return Quat{W: 1}
}

// FromAxisAngle builds the rotation of angle radians around axis. The axis
// does not need to be normalized.
func FromAxisAngle(axis Vec3, angle float64) Quat {
	l := axis.Length()
	if l == 0 {
		return QuatIdentity()
	}
	s := math.Sin(angle/2) / l
	return Quat{
		W: math.Cos(angle / 2),
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
	}
}

// Mul composes two rotations: applying q.Mul(o) rotates first by o, then by q.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// Conjugate is the inverse for unit quaternions.
func (q Quat) Conjugate() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

func (q Quat) Normalize() Quat {
	l := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if l == 0 {
		return QuatIdentity()
	}
	return Quat{q.W / l, q.X / l, q.Y / l, q.Z / l}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2*u x (u x v + w*v), u = (x,y,z)
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Add(v.Scale(q.W))
	return v.Add(u.Cross(t).Scale(2))
}
