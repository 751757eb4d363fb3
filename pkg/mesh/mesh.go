// Package mesh holds the indexed triangle meshes produced by the generators
// and handed to the rendering layer.
package mesh

import (
	"github.com/philipparndt/artoolbox/pkg/geometry"
)

// UV is a texture coordinate
type UV struct {
	U, V float64
}

// Range is a contiguous run of entries in Mesh.Indices
type Range struct {
	Start int
	Count int
}

// End returns the index one past the range
func (r Range) End() int {
	return r.Start + r.Count
}

// Triangles returns the number of triangles covered by the range
func (r Range) Triangles() int {
	return r.Count / 3
}

// Mesh is an indexed triangle mesh. Positions, Normals and UVs are parallel
// slices; Indices holds one triple per triangle, counter-clockwise when seen
// from outside.
//
// Body, StartCap and EndCap split Indices into the tube body and its two end
// caps. Generators that have no caps leave those ranges empty.
type Mesh struct {
	Positions []geometry.Vector3
	Normals   []geometry.Vector3
	UVs       []UV
	Indices   []uint32

	Body     Range
	StartCap Range
	EndCap   Range

	// Rings is the number of vertex rings along the centerline and RingSize
	// the number of vertices in each; zero for non-tube meshes.
	Rings    int
	RingSize int

	Material *Material
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty reports whether the mesh has no triangles
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Indices) == 0
}

// Triangle returns the i-th triangle as a facet with its geometric normal
func (m *Mesh) Triangle(i int) geometry.Triangle {
	a := m.Positions[m.Indices[3*i]]
	b := m.Positions[m.Indices[3*i+1]]
	c := m.Positions[m.Indices[3*i+2]]
	return geometry.NewFacet(a, b, c)
}

// Triangles returns every triangle in index order
func (m *Mesh) Triangles() []geometry.Triangle {
	out := make([]geometry.Triangle, m.TriangleCount())
	for i := range out {
		out[i] = m.Triangle(i)
	}
	return out
}

// Submeshes returns the non-empty index ranges in body, start cap, end cap order
func (m *Mesh) Submeshes() []Range {
	var out []Range
	for _, r := range []Range{m.Body, m.StartCap, m.EndCap} {
		if r.Count > 0 {
			out = append(out, r)
		}
	}
	return out
}

// BoundingBox returns the bounds of all vertex positions
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	return geometry.BoundingBoxOf(m.Positions)
}

// Volume returns the volume enclosed by the mesh. It is only meaningful for
// closed meshes with outward winding.
func (m *Mesh) Volume() float64 {
	total := 0.0
	for i := 0; i < m.TriangleCount(); i++ {
		total += m.Triangle(i).SignedVolume()
	}
	return total
}

// Reset truncates all buffers, keeping their capacity for reuse
func (m *Mesh) Reset() {
	m.Positions = m.Positions[:0]
	m.Normals = m.Normals[:0]
	m.UVs = m.UVs[:0]
	m.Indices = m.Indices[:0]
	m.Body, m.StartCap, m.EndCap = Range{}, Range{}, Range{}
	m.Rings, m.RingSize = 0, 0
}

// AddVertex appends a vertex and returns its index
func (m *Mesh) AddVertex(pos, normal geometry.Vector3, uv UV) uint32 {
	m.Positions = append(m.Positions, pos)
	m.Normals = append(m.Normals, normal)
	m.UVs = append(m.UVs, uv)
	return uint32(len(m.Positions) - 1)
}

// AddTriangle appends one triangle
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// Merge appends the geometry of other, offsetting its indices. The result has
// no cap ranges; everything lands in Body.
func (m *Mesh) Merge(other *Mesh) {
	if other.IsEmpty() {
		return
	}
	base := uint32(len(m.Positions))
	m.Positions = append(m.Positions, other.Positions...)
	m.Normals = append(m.Normals, other.Normals...)
	m.UVs = append(m.UVs, other.UVs...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
	m.Body = Range{Start: 0, Count: len(m.Indices)}
	m.StartCap, m.EndCap = Range{}, Range{}
	m.Rings, m.RingSize = 0, 0
}

// Transformed returns a copy of m moved by pose. Normals are rotated, index
// ranges and the material are kept.
func (m *Mesh) Transformed(pose geometry.Pose) *Mesh {
	out := *m
	out.Positions = make([]geometry.Vector3, len(m.Positions))
	out.Normals = make([]geometry.Vector3, len(m.Normals))
	for i, p := range m.Positions {
		out.Positions[i] = pose.LocalToWorld(p)
	}
	for i, n := range m.Normals {
		out.Normals[i] = pose.RotateVector(n)
	}
	out.UVs = append([]UV(nil), m.UVs...)
	out.Indices = append([]uint32(nil), m.Indices...)
	return &out
}
