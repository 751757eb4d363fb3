package shapes

import (
	"math"
	"testing"

	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paint = mesh.NewOpaque("paint", mesh.Color{R: 0.8, G: 0.2, B: 0.2})

func TestCube(t *testing.T) {
	center := geometry.NewVector3(1, 2, 3)
	m := Cube(0.5, center, paint)
	require.NotNil(t, m)

	assert.Equal(t, 24, m.VertexCount())
	assert.Equal(t, 12, m.TriangleCount())
	assert.InDelta(t, 0.125, m.Volume(), 1e-12)

	box := m.BoundingBox()
	assert.InDelta(t, 0.5, box.Size().X, 1e-12)
	assert.InDelta(t, 0.5, box.Size().Y, 1e-12)
	assert.InDelta(t, 0.5, box.Size().Z, 1e-12)
	assert.InDelta(t, 0, box.Center().Distance(center), 1e-12)

	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.Triangle(i)
		assert.InDelta(t, 1, tri.Normal.Dot(m.Normals[m.Indices[3*i]]), 1e-12,
			"triangle %d winding disagrees with its face normal", i)
	}
}

func TestSphere(t *testing.T) {
	const r = 0.4
	m := Sphere(r, geometry.Vector3{}, paint, 32, 64)
	require.NotNil(t, m)

	assert.Equal(t, 33*65, m.VertexCount())
	assert.Equal(t, 64*(2*32-2), m.TriangleCount())
	for i, n := range m.Normals {
		assert.InDelta(t, 1, n.Length(), 1e-9, "normal %d", i)
	}

	want := 4.0 / 3.0 * math.Pi * r * r * r
	assert.InEpsilon(t, want, m.Volume(), 0.02)
	assert.Less(t, m.Volume(), want, "inscribed polyhedron must be smaller")
}

func TestSphereClampsResolution(t *testing.T) {
	m := Sphere(1, geometry.Vector3{}, paint, 0, 0)
	require.NotNil(t, m)
	assert.Equal(t, 3*4, m.VertexCount())
	assert.Greater(t, m.Volume(), 0.0)
}

func TestCylinder(t *testing.T) {
	m := Cylinder(0.05, 0.1, geometry.NewVector3(0, 0.05, 0), paint, 32)
	require.NotNil(t, m)

	box := m.BoundingBox()
	assert.InDelta(t, 0, box.Min.Y, 1e-12)
	assert.InDelta(t, 0.1, box.Max.Y, 1e-12)

	prism := 16 * 0.05 * 0.05 * math.Sin(2*math.Pi/32) * 0.1
	assert.InDelta(t, prism, m.Volume(), 1e-12)
	assert.Len(t, m.Submeshes(), 3)
}

func TestRejectsInvalidInput(t *testing.T) {
	origin := geometry.Vector3{}
	assert.Nil(t, Sphere(0, origin, paint, 8, 8))
	assert.Nil(t, Sphere(1, origin, nil, 8, 8))
	assert.Nil(t, Cube(-1, origin, paint))
	assert.Nil(t, Cube(1, origin, nil))
	assert.Nil(t, Cylinder(0.1, 0, origin, paint, 8))
	assert.Nil(t, Cylinder(0, 1, origin, paint, 8))
	assert.Nil(t, Cylinder(0.1, 1, origin, nil, 8))
}

func TestPlacedRestsOnAnchor(t *testing.T) {
	anchor := geometry.NewVector3(0.3, 1.2, -0.7)
	for _, kind := range Kinds() {
		m := Placed(kind, anchor, paint)
		require.NotNil(t, m, "kind %s", kind)
		box := m.BoundingBox()
		assert.InDelta(t, anchor.Y, box.Min.Y, 1e-9, "kind %s", kind)
		assert.InDelta(t, anchor.X, box.Center().X, 1e-9, "kind %s", kind)
		assert.InDelta(t, anchor.Z, box.Center().Z, 1e-9, "kind %s", kind)
	}
	assert.Nil(t, Placed(Kind("torus"), anchor, paint))
}
