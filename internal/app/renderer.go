package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/mesh"
	"github.com/philipparndt/artoolbox/pkg/stl"
)

var (
	// Light direction for baked lighting
	lightDir = geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

	referenceColor = mesh.Color{R: 0.5, G: 0.6, B: 0.8, A: 1}
)

// shadedVertex is a position with the normal used for lighting
type shadedVertex struct {
	pos    geometry.Vector3
	normal geometry.Vector3
}

// meshVertices expands an indexed mesh into a triangle list
func meshVertices(m *mesh.Mesh) []shadedVertex {
	out := make([]shadedVertex, 0, len(m.Indices))
	for _, idx := range m.Indices {
		out = append(out, shadedVertex{pos: m.Positions[idx], normal: m.Normals[idx]})
	}
	return out
}

// modelVertices expands an STL model with flat facet normals
func modelVertices(model *stl.Model) []shadedVertex {
	out := make([]shadedVertex, 0, len(model.Triangles)*3)
	for _, t := range model.Triangles {
		normal := t.CalculateNormal()
		out = append(out,
			shadedVertex{pos: t.V1, normal: normal},
			shadedVertex{pos: t.V2, normal: normal},
			shadedVertex{pos: t.V3, normal: normal},
		)
	}
	return out
}

// uploadMesh converts a triangle list to a Raylib mesh with baked lighting
// and uploads it. An empty list yields an invalid mesh.
func uploadMesh(verts []shadedVertex, base mesh.Color) gpuMesh {
	vertexCount := len(verts)
	if vertexCount == 0 {
		return gpuMesh{}
	}

	m := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(vertexCount / 3),
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	colors := make([]uint8, vertexCount*4)

	for i, v := range verts {
		// Min 30% ambient, max 100% diffuse
		light := math.Max(0.3, -v.normal.Dot(lightDir))
		shaded := mesh.Color{R: base.R * light, G: base.G * light, B: base.B * light, A: 1}
		r, g, b, a := shaded.RGBA8()

		vertices[i*3+0] = float32(v.pos.X)
		vertices[i*3+1] = float32(v.pos.Y)
		vertices[i*3+2] = float32(v.pos.Z)
		normals[i*3+0] = float32(v.normal.X)
		normals[i*3+1] = float32(v.normal.Y)
		normals[i*3+2] = float32(v.normal.Z)
		colors[i*4+0] = r
		colors[i*4+1] = g
		colors[i*4+2] = b
		colors[i*4+3] = a
	}

	m.Vertices = &vertices[0]
	m.Normals = &normals[0]
	m.Colors = &colors[0]

	// Upload mesh data to GPU
	rl.UploadMesh(&m, false)

	return gpuMesh{mesh: m, valid: true}
}

// replace uploads verts and releases the previous GPU buffers
func (g *gpuMesh) replace(verts []shadedVertex, base mesh.Color) {
	g.unload()
	*g = uploadMesh(verts, base)
}

func (g *gpuMesh) unload() {
	if g.valid {
		rl.UnloadMesh(&g.mesh)
		g.valid = false
	}
}

func (g *gpuMesh) draw(material rl.Material) {
	if g.valid {
		rl.DrawMesh(g.mesh, material, rl.MatrixIdentity())
	}
}

// colorOf returns the mesh material color, or fallback when it has none
func colorOf(m *mesh.Mesh, fallback mesh.Color) mesh.Color {
	if m.Material == nil {
		return fallback
	}
	return m.Material.Color
}
