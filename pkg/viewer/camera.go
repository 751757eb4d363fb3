// Package viewer renders meshes offscreen to images, for previews written by
// the command line tools.
package viewer

import (
	"math"

	"github.com/philipparndt/artoolbox/pkg/geometry"
)

const (
	minDistance = 1e-3
	nearPlane   = 1e-4
	maxPitch    = math.Pi/2 - 0.1
)

// Camera is a perspective orbit camera around Target
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // Field of view in radians
	Distance float64
	Pitch    float64 // Elevation above the target, radians
	Yaw      float64 // Rotation around the world Y axis, radians
}

// NewCamera creates a camera that frames bbox from the front, slightly above
func NewCamera(bbox geometry.BoundingBox) *Camera {
	distance := 1.0
	center := geometry.Vector3{}
	if !bbox.IsEmpty() {
		center = bbox.Center()
		distance = math.Max(bbox.Diagonal()*1.5, minDistance)
	}

	c := &Camera{
		Target:   center,
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      math.Pi / 4,
		Distance: distance,
		Pitch:    math.Pi / 8,
		Yaw:      math.Pi / 6,
	}
	c.UpdatePosition()
	return c
}

// UpdatePosition places the camera on its orbit sphere
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.Pitch) * math.Sin(c.Yaw)
	y := c.Distance * math.Sin(c.Pitch)
	z := c.Distance * math.Cos(c.Pitch) * math.Cos(c.Yaw)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate orbits the camera by the given pitch and yaw deltas
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+deltaPitch))
	c.Yaw += deltaYaw
	c.UpdatePosition()
}

// Zoom scales the orbit distance by 1+delta
func (c *Camera) Zoom(delta float64) {
	c.Distance = math.Max(minDistance, c.Distance*(1.0+delta))
	c.UpdatePosition()
}

// basis returns the camera's forward, right and up axes
func (c *Camera) basis() (forward, right, up geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// Project maps a world point to pixel coordinates and view depth. Points
// behind the near plane report ok == false.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (x, y, depth float64, ok bool) {
	forward, right, up := c.basis()

	relative := point.Sub(c.Position)
	cx := relative.Dot(right)
	cy := relative.Dot(up)
	depth = relative.Dot(forward)
	if depth <= nearPlane {
		return 0, 0, depth, false
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	x = (cx/(depth*fovScale*aspect))*(width/2) + width/2
	y = (-cy/(depth*fovScale))*(height/2) + height/2
	return x, y, depth, true
}

// Unproject returns the ray from the camera through a pixel
func (c *Camera) Unproject(screenX, screenY, width, height float64) geometry.Ray {
	ndcX := (2.0 * screenX / width) - 1.0
	ndcY := 1.0 - (2.0 * screenY / height)

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)
	forward, right, up := c.basis()

	dir := forward.Add(right.Mul(ndcX * fovScale * aspect)).Add(up.Mul(ndcY * fovScale))
	return geometry.NewRay(c.Position, dir)
}
