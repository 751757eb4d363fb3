package drawing

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/mesh"
	"github.com/philipparndt/artoolbox/pkg/simplify"
	"github.com/philipparndt/artoolbox/pkg/tube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var ink = mesh.NewOpaque("ink", mesh.Color{R: 0.2, G: 0.4, B: 0.9})

func v(x, y, z float64) geometry.Vector3 {
	return geometry.NewVector3(x, y, z)
}

func TestPendingMaterialDefersRender(t *testing.T) {
	pending := mesh.NewPendingMaterial()
	renders := 0
	d := New(geometry.Pose{}, nil, pending, WithOnMesh(func(*mesh.Mesh) { renders++ }))

	assert.Equal(t, simplify.Accepted, d.Append(v(0, 0, 0)))
	assert.Equal(t, simplify.Accepted, d.Append(v(1, 0, 0)))
	assert.Nil(t, d.Mesh(), "no mesh while the material is pending")
	assert.False(t, d.Render())

	pending.Resolve(ink)
	require.True(t, d.Render())
	require.NotNil(t, d.Mesh())
	assert.Same(t, ink, d.Mesh().Material)
	assert.Equal(t, 1, renders)
}

func TestAwaitMaterial(t *testing.T) {
	pending := mesh.NewPendingMaterial()
	d := New(geometry.Pose{}, nil, pending)
	d.Append(v(0, 0, 0))
	d.Append(v(0, 1, 0))

	go func() {
		time.Sleep(5 * time.Millisecond)
		pending.Resolve(ink)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.AwaitMaterial(ctx))
	assert.NotNil(t, d.Mesh())
}

func TestAwaitMaterialCancelled(t *testing.T) {
	d := New(geometry.Pose{}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, d.AwaitMaterial(ctx), context.Canceled)
	assert.Nil(t, d.Mesh())
}

func TestRenderUpdatesInPlace(t *testing.T) {
	var seen []*mesh.Mesh
	d := New(geometry.Pose{}, nil, mesh.Resolved(ink),
		WithBuilder(tube.NewBuilder(tube.WithSegments(6))),
		WithOnMesh(func(m *mesh.Mesh) { seen = append(seen, m) }),
		WithLogger(zaptest.NewLogger(t)))

	d.Append(v(0, 0, 0))
	d.Append(v(1, 0, 0))
	first := d.Mesh()
	require.NotNil(t, first)
	assert.Equal(t, 2, first.Rings)

	d.Append(v(1, 1, 0))
	assert.Same(t, first, d.Mesh())
	assert.Equal(t, 3, first.Rings)

	require.Len(t, seen, 2)
	assert.Same(t, seen[0], seen[1])
}

func TestDiscardedPointDoesNotRender(t *testing.T) {
	renders := 0
	d := New(geometry.Pose{}, nil, mesh.Resolved(ink), WithOnMesh(func(*mesh.Mesh) { renders++ }))
	d.Append(v(0, 0, 0))
	d.Append(v(1, 0, 0))
	require.Equal(t, 1, renders)

	assert.Equal(t, simplify.Discarded, d.Append(v(1.001, 0, 0)))
	assert.Equal(t, 1, renders)
}

func TestExtendOnPlane(t *testing.T) {
	ground := geometry.NewPlane(geometry.Vector3{}, v(0, 1, 0))
	d := New(geometry.Pose{}, &ground, mesh.Resolved(ink))

	require.True(t, d.Extend(geometry.NewRay(v(0, 2, 0), v(0, -1, 0))))
	require.True(t, d.Extend(geometry.NewRay(v(1, 2, 0), v(0, -1, 0))))
	assert.Equal(t, []geometry.Vector3{v(0, 0, 0), v(1, 0, 0)}, d.Points())

	// pointing at the sky misses the ground
	assert.False(t, d.Extend(geometry.NewRay(v(0, 2, 0), v(0, 1, 0))))
	assert.Len(t, d.Points(), 2)
}

func TestExtendWithoutPlane(t *testing.T) {
	d := New(geometry.Pose{}, nil, mesh.Resolved(ink))
	require.True(t, d.Extend(geometry.NewRay(v(0, 0, 0), v(0, 0, -3))))

	p := d.Points()
	require.Len(t, p, 1)
	assert.InDelta(t, -DefaultDrawingDistance, p[0].Z, 1e-12)
}

func TestPointsAreLocalToAnchor(t *testing.T) {
	anchor := geometry.NewPose(v(10, 0, 0),
		geometry.QuaternionFromAxisAngle(v(0, 1, 0), math.Pi/2))
	d := New(anchor, nil, mesh.Resolved(ink))

	d.Append(v(10, 0, 0))
	d.Append(v(10, 0, -1))

	local := d.Points()
	require.Len(t, local, 2)
	assert.InDelta(t, 0, local[0].Length(), 1e-12)
	// world -Z is local +X after undoing a quarter turn about Y
	assert.InDelta(t, 1, local[1].X, 1e-12)
	assert.InDelta(t, 0, local[1].Z, 1e-12)

	world := d.WorldPoints()
	assert.InDelta(t, 0, world[1].Distance(v(10, 0, -1)), 1e-12)

	wm := d.WorldMesh()
	require.NotNil(t, wm)
	box := wm.BoundingBox()
	assert.InDelta(t, -1, box.Min.Z, 1e-9)
	assert.InDelta(t, 10, box.Center().X, 1e-9)
}

func TestShouldDelete(t *testing.T) {
	d := New(geometry.Pose{}, nil, mesh.Resolved(ink), WithRadius(0.01))
	assert.True(t, d.ShouldDelete())
	d.Append(v(0, 0, 0))
	assert.True(t, d.ShouldDelete())
	d.Append(v(0, 0, 1))
	assert.False(t, d.ShouldDelete())
	assert.InDelta(t, 0.02, d.Mesh().BoundingBox().Size().X, 1e-9)
}
