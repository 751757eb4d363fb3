package geometry

import "math"

const parallelEpsilon = 1e-9

// Ray is a half line starting at Origin
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray; the direction is normalized
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// PointAt returns the point at distance d along the ray
func (r Ray) PointAt(d float64) Vector3 {
	return r.Origin.Add(r.Direction.Normalize().Mul(d))
}

// Plane is an infinite plane through Point with unit Normal
type Plane struct {
	Point  Vector3
	Normal Vector3
}

// NewPlane creates a plane; the normal is normalized
func NewPlane(point, normal Vector3) Plane {
	return Plane{Point: point, Normal: normal.Normalize()}
}

// SignedDistance returns the distance of p above (positive) or below the plane
func (pl Plane) SignedDistance(p Vector3) float64 {
	return p.Sub(pl.Point).Dot(pl.Normal)
}

// Intersect returns where the ray hits the plane. Rays parallel to the plane
// and hits behind the origin report false.
func (pl Plane) Intersect(r Ray) (Vector3, bool) {
	dir := r.Direction.Normalize()
	denom := pl.Normal.Dot(dir)
	if math.Abs(denom) < parallelEpsilon {
		return Vector3{}, false
	}
	t := pl.Point.Sub(r.Origin).Dot(pl.Normal) / denom
	if t < 0 {
		return Vector3{}, false
	}
	return r.Origin.Add(dir.Mul(t)), true
}
