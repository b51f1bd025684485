package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stepwise/physbridge/internal/backend/naive"
	"github.com/stepwise/physbridge/internal/mathx"
	"github.com/stepwise/physbridge/internal/physics"
)

const sampleScene = `
entities:
  - name: ground
    position: [0, -1, 0]
    shape: {kind: plane}
    body: {mode: static}
  - name: ball
    position: [0, 5, 0]
    shape: {kind: sphere, radius: 0.5}
    body: {mode: dynamic, mass: 2, friction: 0.4, bounciness: 0.1, velocity: [0, -1, 0]}
  - name: marker
    parent: ball
    position: [0, 1, 0]
    attachment: true
  - name: sensor
    position: [3, 0, 0]
    rotation: {axis: [0, 0, 1], degrees: 90}
    shape: {kind: cube, half_extents: [1, 2, 1]}
    area: {belong_to: [2], collide_with: [1, 2]}
  - name: weld
    joint: {kind: fixed}
    body: {mode: dynamic, mass: 1}
`

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadSpawnsEntities(t *testing.T) {
	sc := New(naive.New(zap.NewNop()))
	named, err := Load(sc, writeScene(t, sampleScene))
	require.NoError(t, err)
	require.Len(t, named, 5)

	ball := named["ball"]
	tr, ok := sc.Transforms.Get(ball)
	require.True(t, ok)
	assert.True(t, tr.Local.Translation.Near(mathx.Vec3{Y: 5}, 1e-9))

	bh, ok := sc.Bodies.Get(ball)
	require.True(t, ok)
	assert.Equal(t, physics.BodyDynamic, sc.Physics.Bodies().Mode(bh.Get()))
	assert.Equal(t, 0.4, sc.Physics.Bodies().Friction(bh.Get()))
	assert.True(t, sc.Physics.Bodies().LinearVelocity(bh.Get()).Near(mathx.Vec3{Y: -1}, 1e-12))

	marker := named["marker"]
	p, ok := sc.Parents.Get(marker)
	require.True(t, ok)
	assert.Equal(t, ball, p.Entity)
	assert.True(t, sc.Attachments.Has(marker))

	sensor := named["sensor"]
	ah, ok := sc.Areas.Get(sensor)
	require.True(t, ok)
	assert.Equal(t, []physics.CollisionGroup{2}, sc.Physics.Areas().BelongTo(ah.Get()))

	assert.True(t, sc.Joints.Has(named["weld"]))
}

func TestLoadRejectsUnknownParent(t *testing.T) {
	sc := New(naive.New(zap.NewNop()))
	_, err := Load(sc, writeScene(t, `
entities:
  - name: orphan
    parent: nobody
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parent")
}

func TestLoadRejectsUnknownShape(t *testing.T) {
	sc := New(naive.New(zap.NewNop()))
	_, err := Load(sc, writeScene(t, `
entities:
  - name: blob
    shape: {kind: dodecahedron}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown shape kind")
}

func TestLoadRejectsDuplicateNames(t *testing.T) {
	sc := New(naive.New(zap.NewNop()))
	_, err := Load(sc, writeScene(t, `
entities:
  - name: twin
  - name: twin
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate name")
}
