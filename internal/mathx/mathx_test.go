package mathx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestQuatRotateQuarterTurn(t *testing.T) {
	q := FromAxisAngle(Vec3{Z: 1}, math.Pi/2)
	got := q.Rotate(Vec3{X: 1})
	assert.True(t, got.Near(Vec3{Y: 1}, eps), "got %+v", got)
}

func TestQuatMulComposes(t *testing.T) {
	q1 := FromAxisAngle(Vec3{Z: 1}, math.Pi/2)
	q2 := FromAxisAngle(Vec3{X: 1}, math.Pi/2)

	// q2.Mul(q1) applies q1 first.
	got := q2.Mul(q1).Rotate(Vec3{X: 1})
	want := q2.Rotate(q1.Rotate(Vec3{X: 1}))
	assert.True(t, got.Near(want, eps))
	assert.True(t, got.Near(Vec3{Z: 1}, eps), "got %+v", got)
}

func TestQuatConjugateInverts(t *testing.T) {
	q := FromAxisAngle(Vec3{X: 1, Y: 2, Z: -0.5}, 1.234)
	v := Vec3{X: 3, Y: -1, Z: 2}
	assert.True(t, q.Conjugate().Rotate(q.Rotate(v)).Near(v, eps))
}

func TestFromAxisAngleNormalizesAxis(t *testing.T) {
	a := FromAxisAngle(Vec3{Y: 1}, 0.7)
	b := FromAxisAngle(Vec3{Y: 100}, 0.7)
	v := Vec3{X: 1, Z: -2}
	assert.True(t, a.Rotate(v).Near(b.Rotate(v), eps))
}

func TestIsometryMulChainsParentToChild(t *testing.T) {
	parent := Isometry{
		Rotation:    FromAxisAngle(Vec3{Z: 1}, math.Pi/2),
		Translation: Vec3{X: 10},
	}
	child := Translation(Vec3{X: 1})

	world := parent.Mul(child)
	// The child's offset rotates into the parent's frame.
	assert.True(t, world.Translation.Near(Vec3{X: 10, Y: 1}, eps), "got %+v", world.Translation)
}

func TestIsometryInverseRoundTrips(t *testing.T) {
	iso := Isometry{
		Rotation:    FromAxisAngle(Vec3{X: 0.3, Y: 1, Z: -0.2}, 0.9),
		Translation: Vec3{X: 4, Y: -2, Z: 7},
	}
	p := Vec3{X: 1, Y: 2, Z: 3}
	assert.True(t, iso.Inverse().Apply(iso.Apply(p)).Near(p, eps))

	rt := iso.Mul(iso.Inverse())
	assert.True(t, rt.Near(IsometryIdentity(), eps))
}

func TestIsometryNearHandlesQuaternionSign(t *testing.T) {
	q := FromAxisAngle(Vec3{Y: 1}, 1.1)
	a := Isometry{Rotation: q, Translation: Vec3{X: 1}}
	b := Isometry{Rotation: Quat{W: -q.W, X: -q.X, Y: -q.Y, Z: -q.Z}, Translation: Vec3{X: 1}}
	assert.True(t, a.Near(b, eps), "q and -q are the same rotation")
}

func TestVecOps(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: -1, Y: 0, Z: 2}
	assert.Equal(t, Vec3{Y: 2, Z: 5}, a.Add(b))
	assert.Equal(t, Vec3{X: 2, Y: 2, Z: 1}, a.Sub(b))
	assert.Equal(t, 5.0, a.Dot(b))
	assert.Equal(t, Vec3{X: 4, Y: -5, Z: 2}, a.Cross(b))
	assert.InDelta(t, math.Sqrt(14), a.Length(), eps)
}
