package tube

import (
	"github.com/philipparndt/artoolbox/pkg/geometry"
)

// degenerateEpsilon is the length below which a direction is treated as zero
const degenerateEpsilon = 1e-12

// Frame is the local orientation of one ring. Forward follows the
// centerline; Right and Up span the ring plane with Right x Up = Forward.
type Frame struct {
	Origin  geometry.Vector3
	Forward geometry.Vector3
	Right   geometry.Vector3
	Up      geometry.Vector3
}

// ComputeFrames returns one frame per centerline point, or nil if the points
// do not span any length.
//
// Interior frames face the bisector of the incoming and outgoing segments so
// rings meet as mitred joints. Right is carried over from the previous frame
// and re-orthogonalized, which keeps the tube from twisting along the path.
func ComputeFrames(points []geometry.Vector3) []Frame {
	dirs, ok := segmentDirections(points)
	if !ok {
		return nil
	}

	frames := make([]Frame, len(points))
	right := dirs[0].Perpendicular()
	for i, p := range points {
		fwd := forwardAt(dirs, i)

		right = right.Sub(fwd.Mul(right.Dot(fwd)))
		if right.IsZero(degenerateEpsilon) {
			right = fwd.Perpendicular()
		}
		right = right.Normalize()

		frames[i] = Frame{
			Origin:  p,
			Forward: fwd,
			Right:   right,
			Up:      fwd.Cross(right),
		}
	}
	return frames
}

// segmentDirections returns the unit direction of every segment. A
// zero-length segment inherits the direction of its nearest non-degenerate
// neighbour; if every segment is degenerate there is nothing to extrude.
func segmentDirections(points []geometry.Vector3) ([]geometry.Vector3, bool) {
	if len(points) < 2 {
		return nil, false
	}

	dirs := make([]geometry.Vector3, len(points)-1)
	valid := make([]bool, len(dirs))
	firstValid := -1
	for i := range dirs {
		d := points[i+1].Sub(points[i])
		if d.IsZero(degenerateEpsilon) {
			continue
		}
		dirs[i] = d.Normalize()
		valid[i] = true
		if firstValid < 0 {
			firstValid = i
		}
	}
	if firstValid < 0 {
		return nil, false
	}

	for i := range dirs {
		if valid[i] {
			continue
		}
		if i < firstValid {
			dirs[i] = dirs[firstValid]
		} else {
			dirs[i] = dirs[i-1]
		}
	}
	return dirs, true
}

// forwardAt returns the ring direction at point i
func forwardAt(dirs []geometry.Vector3, i int) geometry.Vector3 {
	switch {
	case i == 0:
		return dirs[0]
	case i == len(dirs):
		return dirs[len(dirs)-1]
	}

	in, out := dirs[i-1], dirs[i]
	bisector := in.Add(out)
	if bisector.IsZero(1e-9) {
		// The path doubles back on itself; any mitre is degenerate.
		return in
	}
	return bisector.Normalize()
}
