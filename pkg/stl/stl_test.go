package stl

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/mesh"
	"github.com/philipparndt/artoolbox/pkg/shapes"
	"github.com/philipparndt/artoolbox/pkg/tube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ink = mesh.NewOpaque("ink", mesh.Color{R: 1})

func strokeModel(t *testing.T) *Model {
	t.Helper()
	points := []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(1, 1, 0.5),
	}
	m := tube.NewBuilder(tube.WithSegments(8)).Build(points, 0.05, ink)
	require.NotNil(t, m)
	return FromMesh("stroke", m)
}

func assertSameShape(t *testing.T, want, got *Model, eps float64) {
	t.Helper()
	require.Equal(t, want.TriangleCount(), got.TriangleCount())
	wb, gb := want.BoundingBox(), got.BoundingBox()
	assert.InDelta(t, 0, wb.Min.Distance(gb.Min), eps)
	assert.InDelta(t, 0, wb.Max.Distance(gb.Max), eps)
	assert.InDelta(t, want.Volume(), got.Volume(), eps)
}

func TestASCIIRoundTrip(t *testing.T) {
	model := strokeModel(t)

	var buf bytes.Buffer
	require.NoError(t, WriteASCII(&buf, model))
	assert.True(t, strings.HasPrefix(buf.String(), "solid stroke\n"))
	assert.True(t, strings.HasSuffix(buf.String(), "endsolid stroke\n"))

	got, err := ParseReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "stroke", got.Name)
	assertSameShape(t, model, got, 1e-5)
}

func TestBinaryRoundTrip(t *testing.T) {
	model := strokeModel(t)

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, model))
	assert.Equal(t, headerSize+4+facetSize*model.TriangleCount(), buf.Len())

	got, err := ParseReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "stroke", got.Name)
	assertSameShape(t, model, got, 1e-5)
}

func TestBinaryHeaderStartingWithSolid(t *testing.T) {
	model := FromMesh("solid but binary", shapes.Cube(1, geometry.Vector3{}, ink))

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, model))

	got, err := ParseReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 12, got.TriangleCount())
}

func TestFromMeshSkipsEmpty(t *testing.T) {
	cube := shapes.Cube(2, geometry.Vector3{}, ink)
	model := FromMesh("cubes", cube, nil, &mesh.Mesh{}, cube)
	assert.Equal(t, 24, model.TriangleCount())
	assert.InDelta(t, 16, model.Volume(), 1e-9)

	first := model.Triangles[0]
	assert.InDelta(t, 1, first.Normal.Length(), 1e-12)
}

func TestParseASCIIErrors(t *testing.T) {
	bad := "solid broken\n facet normal 0 0 1\n  outer loop\n   vertex 0 0 x\n"
	_, err := ParseReader(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4")

	short := "solid broken\n facet normal 0 0 1\n  outer loop\n   vertex 0 0\n"
	_, err = ParseReader(strings.NewReader(short))
	require.Error(t, err)
}

func TestParseTruncatedBinary(t *testing.T) {
	data := make([]byte, headerSize+4)
	data[headerSize] = 2
	_, err := ParseReader(bytes.NewReader(data))
	require.Error(t, err)
}

func TestSaveAndParse(t *testing.T) {
	dir := t.TempDir()
	model := strokeModel(t)

	for _, binaryFormat := range []bool{false, true} {
		path := filepath.Join(dir, "nested", "out.stl")
		require.NoError(t, Save(path, model, binaryFormat))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

		got, err := Parse(path)
		require.NoError(t, err)
		assertSameShape(t, model, got, 1e-5)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must be cleaned up")

	_, err = Parse(filepath.Join(dir, "missing.stl"))
	assert.Error(t, err)
}

func TestVolumeOfCube(t *testing.T) {
	model := FromMesh("cube", shapes.Cube(1, geometry.NewVector3(3, -2, 7), ink))
	assert.InDelta(t, 1, model.Volume(), 1e-9)
	assert.InDelta(t, 6, model.SurfaceArea(), 1e-9)
	assert.False(t, math.IsNaN(model.Volume()))
}
