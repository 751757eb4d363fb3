// Package stl reads and writes STL triangle soups and converts generated
// meshes into them.
package stl

import (
	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/mesh"
)

// Model represents a complete STL model
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// FromMesh flattens indexed meshes into a single model. Facet normals are
// taken from the winding, so they point outward for the generated tubes and
// primitives.
func FromMesh(name string, meshes ...*mesh.Mesh) *Model {
	total := 0
	for _, m := range meshes {
		if !m.IsEmpty() {
			total += m.TriangleCount()
		}
	}

	model := &Model{Name: name, Triangles: make([]geometry.Triangle, 0, total)}
	for _, m := range meshes {
		if m.IsEmpty() {
			continue
		}
		for i := 0; i < m.TriangleCount(); i++ {
			model.AddTriangle(m.Triangle(i))
		}
	}
	return model
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}

// Volume returns the enclosed volume, assuming a closed and consistently
// wound surface. Inward winding gives a negative result.
func (m *Model) Volume() float64 {
	total := 0.0
	for _, triangle := range m.Triangles {
		total += triangle.SignedVolume()
	}
	return total
}
