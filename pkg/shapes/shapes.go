// Package shapes generates the primitive meshes that can be placed on an
// anchor: spheres, cubes and cylinders.
package shapes

import (
	"math"

	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/mesh"
	"github.com/philipparndt/artoolbox/pkg/tube"
)

// Sizes of the primitives placed by the interactive tools, in meters
const (
	DefaultSphereRadius   = 0.05
	DefaultCylinderRadius = 0.05
	DefaultCylinderHeight = 0.1
	DefaultCubeSize       = 0.1

	DefaultSphereRings      = 16
	DefaultSphereSectors    = 32
	DefaultCylinderSegments = tube.DefaultSegments
)

// Kind names a primitive
type Kind string

// Supported primitives
const (
	KindSphere   Kind = "sphere"
	KindCube     Kind = "cube"
	KindCylinder Kind = "cylinder"
)

// Kinds returns every supported primitive in a stable order
func Kinds() []Kind {
	return []Kind{KindSphere, KindCube, KindCylinder}
}

// Sphere generates a UV sphere. Each of the rings+1 latitude rows has
// sectors+1 vertices so the seam can be textured.
func Sphere(radius float64, center geometry.Vector3, mat *mesh.Material, rings, sectors int) *mesh.Mesh {
	if mat == nil || !(radius > 0) {
		return nil
	}
	rings = max(rings, 2)
	sectors = max(sectors, 3)

	m := &mesh.Mesh{Material: mat}
	for i := 0; i <= rings; i++ {
		phi := math.Pi * float64(i) / float64(rings)
		sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
		for j := 0; j <= sectors; j++ {
			theta := 2 * math.Pi * float64(j%sectors) / float64(sectors)
			n := geometry.NewVector3(sinPhi*math.Cos(theta), cosPhi, sinPhi*math.Sin(theta))
			m.AddVertex(center.Add(n.Mul(radius)), n, mesh.UV{
				U: float64(j) / float64(sectors),
				V: float64(i) / float64(rings),
			})
		}
	}

	row := uint32(sectors + 1)
	for i := uint32(0); i < uint32(rings); i++ {
		for j := uint32(0); j < uint32(sectors); j++ {
			a := i*row + j
			b := a + row
			c := b + 1
			d := a + 1
			// the triangles touching a pole collapse to a line
			if i != 0 {
				m.AddTriangle(a, d, c)
			}
			if i != uint32(rings)-1 {
				m.AddTriangle(a, c, b)
			}
		}
	}
	m.Body = mesh.Range{Start: 0, Count: len(m.Indices)}
	return m
}

// cubeFace is one face of a cube: its outward normal and two in-plane axes
// with u x w = normal
type cubeFace struct {
	normal, u, w geometry.Vector3
}

var cubeFaces = []cubeFace{
	{normal: geometry.NewVector3(1, 0, 0), u: geometry.NewVector3(0, 1, 0), w: geometry.NewVector3(0, 0, 1)},
	{normal: geometry.NewVector3(-1, 0, 0), u: geometry.NewVector3(0, 0, 1), w: geometry.NewVector3(0, 1, 0)},
	{normal: geometry.NewVector3(0, 1, 0), u: geometry.NewVector3(0, 0, 1), w: geometry.NewVector3(1, 0, 0)},
	{normal: geometry.NewVector3(0, -1, 0), u: geometry.NewVector3(1, 0, 0), w: geometry.NewVector3(0, 0, 1)},
	{normal: geometry.NewVector3(0, 0, 1), u: geometry.NewVector3(1, 0, 0), w: geometry.NewVector3(0, 1, 0)},
	{normal: geometry.NewVector3(0, 0, -1), u: geometry.NewVector3(0, 1, 0), w: geometry.NewVector3(1, 0, 0)},
}

// Cube generates an axis aligned cube with flat shaded faces
func Cube(size float64, center geometry.Vector3, mat *mesh.Material) *mesh.Mesh {
	if mat == nil || !(size > 0) {
		return nil
	}
	h := size / 2

	m := &mesh.Mesh{Material: mat}
	corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range cubeFaces {
		base := uint32(len(m.Positions))
		for _, c := range corners {
			offset := f.normal.Add(f.u.Mul(c[0])).Add(f.w.Mul(c[1])).Mul(h)
			m.AddVertex(center.Add(offset), f.normal, mesh.UV{U: (c[0] + 1) / 2, V: (c[1] + 1) / 2})
		}
		m.AddTriangle(base, base+1, base+2)
		m.AddTriangle(base, base+2, base+3)
	}
	m.Body = mesh.Range{Start: 0, Count: len(m.Indices)}
	return m
}

// Cylinder generates an upright capped cylinder centred on center
func Cylinder(radius, height float64, center geometry.Vector3, mat *mesh.Material, segments int) *mesh.Mesh {
	if !(height > 0) {
		return nil
	}
	half := geometry.NewVector3(0, height/2, 0)
	b := tube.NewBuilder(tube.WithSegments(segments), tube.WithNormalizedLength())
	return b.Segment(center.Sub(half), center.Add(half), radius, mat)
}

// Placed builds the default sized primitive of the given kind resting on
// anchor, so that its lowest point touches the anchor. Unknown kinds yield nil.
func Placed(kind Kind, anchor geometry.Vector3, mat *mesh.Material) *mesh.Mesh {
	switch kind {
	case KindSphere:
		return Sphere(DefaultSphereRadius, above(anchor, DefaultSphereRadius), mat,
			DefaultSphereRings, DefaultSphereSectors)
	case KindCube:
		return Cube(DefaultCubeSize, above(anchor, DefaultCubeSize/2), mat)
	case KindCylinder:
		return Cylinder(DefaultCylinderRadius, DefaultCylinderHeight,
			above(anchor, DefaultCylinderHeight/2), mat, DefaultCylinderSegments)
	default:
		return nil
	}
}

func above(anchor geometry.Vector3, h float64) geometry.Vector3 {
	return anchor.Add(geometry.NewVector3(0, h, 0))
}
