// Package analysis computes statistics of generated meshes, STL models and
// simplified polylines.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/stl"
)

// weldPrecision is the grid step used to match vertices of neighbouring
// facets. STL stores float32, so exact comparison would split welded edges.
const weldPrecision = 1e-6

// Edge is one triangle edge
type Edge struct {
	Start      geometry.Vector3
	End        geometry.Vector3
	Length     float64
	TriangleID int
}

// Report contains the measurements of a model
type Report struct {
	BoundingBox    geometry.BoundingBox
	Dimensions     geometry.Vector3
	BoundingVolume float64
	Volume         float64
	SurfaceArea    float64
	TriangleCount  int
	Degenerate     int
	EdgeCount      int
	MinEdgeLength  float64
	MaxEdgeLength  float64
	AvgEdgeLength  float64
	// OpenEdges counts undirected edges not shared by exactly two facets;
	// zero means the surface is closed and Volume is meaningful.
	OpenEdges int
	Edges     []Edge
}

// Watertight reports whether every edge is shared by exactly two facets
func (r *Report) Watertight() bool {
	return r.TriangleCount > 0 && r.OpenEdges == 0
}

type vertexKey [3]int64

func keyOf(v geometry.Vector3) vertexKey {
	return vertexKey{
		int64(math.Round(v.X / weldPrecision)),
		int64(math.Round(v.Y / weldPrecision)),
		int64(math.Round(v.Z / weldPrecision)),
	}
}

type edgeKey [2]vertexKey

func undirected(a, b vertexKey) edgeKey {
	for i := range a {
		if a[i] != b[i] {
			if a[i] > b[i] {
				a, b = b, a
			}
			break
		}
	}
	return edgeKey{a, b}
}

// AnalyzeModel measures an STL model
func AnalyzeModel(model *stl.Model) *Report {
	result := &Report{
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
		Volume:        model.Volume(),
		TriangleCount: model.TriangleCount(),
		Edges:         make([]Edge, 0, 3*model.TriangleCount()),
	}
	if result.TriangleCount > 0 {
		result.Dimensions = result.BoundingBox.Size()
		result.BoundingVolume = result.BoundingBox.Volume()
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	shared := make(map[edgeKey]int, 3*model.TriangleCount()/2)

	for i, triangle := range model.Triangles {
		if triangle.Area() == 0 {
			result.Degenerate++
		}
		corners := [3]geometry.Vector3{triangle.V1, triangle.V2, triangle.V3}
		for k := range corners {
			start, end := corners[k], corners[(k+1)%3]
			length := start.Distance(end)
			result.Edges = append(result.Edges, Edge{
				Start:      start,
				End:        end,
				Length:     length,
				TriangleID: i,
			})
			shared[undirected(keyOf(start), keyOf(end))]++

			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	}

	for _, n := range shared {
		if n != 2 {
			result.OpenEdges++
		}
	}

	result.EdgeCount = len(result.Edges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// LongestEdges returns the n longest edges of the model
func LongestEdges(result *Report, n int) []Edge {
	edges := make([]Edge, len(result.Edges))
	copy(edges, result.Edges)

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Length > edges[j].Length
	})

	return edges[:min(n, len(edges))]
}

// Polyline summarizes a simplified stroke
type Polyline struct {
	Points     int
	Length     float64
	MinSegment float64
	MaxSegment float64
	// MaxTurn is the largest direction change at an interior vertex, in radians
	MaxTurn float64
}

// AnalyzePolyline measures a polyline
func AnalyzePolyline(points []geometry.Vector3) Polyline {
	p := Polyline{Points: len(points)}
	if len(points) < 2 {
		return p
	}

	p.MinSegment = math.MaxFloat64
	for i := 1; i < len(points); i++ {
		d := geometry.Distance(points[i-1], points[i])
		p.Length += d
		p.MinSegment = math.Min(p.MinSegment, d)
		p.MaxSegment = math.Max(p.MaxSegment, d)
		if i >= 2 {
			turn := points[i-1].Sub(points[i-2]).AngleTo(points[i].Sub(points[i-1]))
			p.MaxTurn = math.Max(p.MaxTurn, turn)
		}
	}
	return p
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

// FormatDegrees formats an angle given in radians
func FormatDegrees(rad float64) string {
	return fmt.Sprintf("%.2f°", rad*180/math.Pi)
}
