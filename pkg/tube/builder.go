// Package tube extrudes a polyline into a closed tube mesh with mitred joints
// and flat end caps.
package tube

import (
	"math"
	"slices"

	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/mesh"
	"go.uber.org/zap"
)

const (
	// DefaultSegments is the number of radial subdivisions per ring
	DefaultSegments = 24
	// MinSegments is the smallest ring that still encloses a volume
	MinSegments = 3
)

var nopLogger = zap.NewNop()

// Builder generates tube meshes. The zero value is usable and builds
// DefaultSegments rings with arc length V coordinates in world units.
//
// Build and UpdateFrom do not retain anything between calls, so a Builder
// can be shared between goroutines.
type Builder struct {
	// Segments is the number of radial subdivisions. Each ring has
	// Segments+1 vertices because the seam is duplicated for texturing.
	Segments int
	// NormalizeLength scales V so that it runs from 0 to 1 along the tube
	// instead of measuring arc length in world units.
	NormalizeLength bool

	logger *zap.Logger
}

// Option configures a Builder
type Option func(*Builder)

// WithSegments sets the number of radial subdivisions
func WithSegments(n int) Option {
	return func(b *Builder) {
		b.Segments = n
	}
}

// WithNormalizedLength makes V run from 0 to 1 along the tube
func WithNormalizedLength() Option {
	return func(b *Builder) {
		b.NormalizeLength = true
	}
}

// WithLogger sets the logger used for rebuild tracing
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates a builder with the given options applied over the defaults
func NewBuilder(opts ...Option) Builder {
	b := Builder{Segments: DefaultSegments}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// segments returns the effective radial subdivision count
func (b Builder) segments() int {
	switch {
	case b.Segments == 0:
		return DefaultSegments
	case b.Segments < MinSegments:
		return MinSegments
	default:
		return b.Segments
	}
}

func (b Builder) log() *zap.Logger {
	if b.logger == nil {
		return nopLogger
	}
	return b.logger
}

// Build extrudes points into a tube of the given radius. It returns nil when
// there is nothing to render: fewer than two points, no material, a
// non-positive radius, or a centerline without length.
func (b Builder) Build(points []geometry.Vector3, radius float64, mat *mesh.Material) *mesh.Mesh {
	if mat == nil {
		return nil
	}
	m := &mesh.Mesh{Material: mat}
	if !b.fill(m, points, radius) {
		return nil
	}
	return m
}

// Segment builds the single straight tube between a and c
func (b Builder) Segment(a, c geometry.Vector3, radius float64, mat *mesh.Material) *mesh.Mesh {
	return b.Build([]geometry.Vector3{a, c}, radius, mat)
}

// UpdateFrom regenerates m in place from points, reusing its buffers. The
// result is identical to a fresh Build with m's material. When there is
// nothing to extrude m is emptied and false is returned.
func (b Builder) UpdateFrom(m *mesh.Mesh, points []geometry.Vector3, radius float64) bool {
	if m == nil {
		return false
	}
	m.Reset()
	return b.fill(m, points, radius)
}

// VertexCount returns the number of vertices a tube through n points has
func (b Builder) VertexCount(n int) int {
	if n < 2 {
		return 0
	}
	s := b.segments()
	return n*(s+1) + 2*(s+2)
}

// TriangleCount returns the number of triangles a tube through n points has
func (b Builder) TriangleCount(n int) int {
	if n < 2 {
		return 0
	}
	s := b.segments()
	return 2*s*(n-1) + 2*s
}

func (b Builder) fill(m *mesh.Mesh, points []geometry.Vector3, radius float64) bool {
	if len(points) < 2 || !(radius > 0) || math.IsInf(radius, 0) {
		return false
	}
	frames := ComputeFrames(points)
	if frames == nil {
		return false
	}

	segs := b.segments()
	ringSize := segs + 1
	nv := b.VertexCount(len(points))
	ni := 3 * b.TriangleCount(len(points))
	m.Positions = slices.Grow(m.Positions[:0], nv)
	m.Normals = slices.Grow(m.Normals[:0], nv)
	m.UVs = slices.Grow(m.UVs[:0], nv)
	m.Indices = slices.Grow(m.Indices[:0], ni)

	cos, sin := ringTable(segs)

	length := 0.0
	for i := 1; i < len(points); i++ {
		length += points[i].Distance(points[i-1])
	}

	along := 0.0
	for i, f := range frames {
		if i > 0 {
			along += points[i].Distance(points[i-1])
		}
		v := along
		if b.NormalizeLength && length > 0 {
			v = along / length
		}
		for j := 0; j < ringSize; j++ {
			k := j % segs
			radial := f.Right.Mul(cos[k]).Add(f.Up.Mul(sin[k]))
			m.AddVertex(f.Origin.Add(radial.Mul(radius)), radial, mesh.UV{
				U: float64(j) / float64(segs),
				V: v,
			})
		}
	}

	for i := 0; i < len(frames)-1; i++ {
		a := uint32(i * ringSize)
		c := uint32((i + 1) * ringSize)
		for j := uint32(0); j < uint32(segs); j++ {
			m.AddTriangle(a+j, a+j+1, c+j+1)
			m.AddTriangle(a+j, c+j+1, c+j)
		}
	}
	m.Body = mesh.Range{Start: 0, Count: len(m.Indices)}

	first, last := frames[0], frames[len(frames)-1]
	m.StartCap = b.cap(m, 0, first.Origin, first.Forward.Negate(), cos, sin, true)
	m.EndCap = b.cap(m, (len(frames)-1)*ringSize, last.Origin, last.Forward, cos, sin, false)

	m.Rings = len(frames)
	m.RingSize = ringSize

	b.log().Debug("tube rebuilt",
		zap.Int("points", len(points)),
		zap.Int("vertices", len(m.Positions)),
		zap.Int("triangles", m.TriangleCount()),
		zap.Float64("length", length))
	return true
}

// cap closes the tube at the ring starting at vertex ring with a flat fan.
// Cap vertices are separate from the ring so they can carry the flat normal.
func (b Builder) cap(m *mesh.Mesh, ring int, center, normal geometry.Vector3, cos, sin []float64, reverse bool) mesh.Range {
	segs := len(cos)
	start := len(m.Indices)

	hub := m.AddVertex(center, normal, mesh.UV{U: 0.5, V: 0.5})
	for j := 0; j <= segs; j++ {
		k := j % segs
		m.AddVertex(m.Positions[ring+j], normal, mesh.UV{
			U: 0.5 + 0.5*cos[k],
			V: 0.5 + 0.5*sin[k],
		})
	}

	for j := uint32(0); j < uint32(segs); j++ {
		rim := hub + 1 + j
		if reverse {
			m.AddTriangle(hub, rim+1, rim)
		} else {
			m.AddTriangle(hub, rim, rim+1)
		}
	}
	return mesh.Range{Start: start, Count: len(m.Indices) - start}
}

// ringTable samples the unit circle at segs even steps
func ringTable(segs int) (cos, sin []float64) {
	cos = make([]float64, segs)
	sin = make([]float64, segs)
	for k := 0; k < segs; k++ {
		theta := 2 * math.Pi * float64(k) / float64(segs)
		cos[k], sin[k] = math.Cos(theta), math.Sin(theta)
	}
	return cos, sin
}
