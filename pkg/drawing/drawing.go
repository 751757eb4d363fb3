// Package drawing turns a stream of pointer rays into a tube stroke anchored
// in the scene.
package drawing

import (
	"context"

	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/mesh"
	"github.com/philipparndt/artoolbox/pkg/simplify"
	"github.com/philipparndt/artoolbox/pkg/tube"
	"go.uber.org/zap"
)

const (
	// Radius is the default stroke radius in meters
	Radius = 0.005
	// DefaultDrawingDistance is how far along the ray a point is placed when
	// there is no plane to draw on
	DefaultDrawingDistance = 0.5
	// PlaneAnchoringDistance is the farthest plane hit that anchors a drawing
	PlaneAnchoringDistance = 2
)

// Drawing is a single stroke. Points are kept in the anchor's local frame so
// the stroke follows the anchor when it moves.
//
// A Drawing is not safe for concurrent use; only its material may be
// resolved from another goroutine.
type Drawing struct {
	anchor   geometry.Pose
	plane    *geometry.Plane
	material *mesh.PendingMaterial

	line    *simplify.Simplifier
	builder tube.Builder
	radius  float64
	mesh    *mesh.Mesh
	onMesh  func(*mesh.Mesh)
	logger  *zap.Logger
}

type options struct {
	simplifier simplify.Config
	builder    tube.Builder
	radius     float64
	onMesh     func(*mesh.Mesh)
	logger     *zap.Logger
}

// Option configures a Drawing
type Option func(*options)

// WithSimplifier sets the simplifier thresholds
func WithSimplifier(cfg simplify.Config) Option {
	return func(o *options) {
		o.simplifier = cfg
	}
}

// WithBuilder sets the tube builder used to render the stroke
func WithBuilder(b tube.Builder) Option {
	return func(o *options) {
		o.builder = b
	}
}

// WithRadius sets the stroke radius
func WithRadius(r float64) Option {
	return func(o *options) {
		o.radius = r
	}
}

// WithOnMesh registers a callback invoked after every successful render with
// the stroke mesh. The same mesh is passed each time; it is updated in place.
func WithOnMesh(fn func(*mesh.Mesh)) Option {
	return func(o *options) {
		o.onMesh = fn
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates an empty stroke anchored at anchor. A nil plane means points
// are placed at DefaultDrawingDistance along each ray. A nil material is
// treated as one that never resolves.
func New(anchor geometry.Pose, plane *geometry.Plane, material *mesh.PendingMaterial, opts ...Option) *Drawing {
	o := options{
		simplifier: simplify.DefaultConfig(),
		builder:    tube.NewBuilder(),
		radius:     Radius,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if material == nil {
		material = mesh.NewPendingMaterial()
	}

	return &Drawing{
		anchor:   anchor,
		plane:    plane,
		material: material,
		line:     simplify.New(o.simplifier, simplify.WithLogger(o.logger)),
		builder:  o.builder,
		radius:   o.radius,
		onMesh:   o.onMesh,
		logger:   o.logger,
	}
}

// Extend projects the ray into the scene and appends the resulting point.
// With a plane the ray is intersected with it and a miss is ignored. It
// reports whether a point reached the simplifier.
func (d *Drawing) Extend(ray geometry.Ray) bool {
	if d.plane != nil {
		hit, ok := d.plane.Intersect(ray)
		if !ok {
			return false
		}
		d.Append(hit)
		return true
	}
	d.Append(ray.PointAt(DefaultDrawingDistance))
	return true
}

// Append adds a world-space point to the stroke and re-renders if the
// polyline changed
func (d *Drawing) Append(world geometry.Vector3) simplify.Action {
	action := d.line.Append(d.anchor.WorldToLocal(world))
	if action.Changed() {
		d.Render()
	}
	return action
}

// Render regenerates the stroke mesh. The first successful render builds
// the mesh; later ones update it in place. It returns false while the
// material is pending or the stroke has fewer than two points.
func (d *Drawing) Render() bool {
	mat, ok := d.material.Ready()
	if !ok {
		return false
	}
	points := d.line.Points()
	if len(points) < 2 {
		return false
	}

	if d.mesh == nil {
		m := d.builder.Build(points, d.radius, mat)
		if m == nil {
			return false
		}
		d.mesh = m
		d.logger.Debug("drawing mesh created", zap.Int("points", len(points)))
	} else if !d.builder.UpdateFrom(d.mesh, points, d.radius) {
		return false
	}

	if d.onMesh != nil {
		d.onMesh(d.mesh)
	}
	return true
}

// AwaitMaterial blocks until the material resolves and then renders
func (d *Drawing) AwaitMaterial(ctx context.Context) error {
	if _, err := d.material.Wait(ctx); err != nil {
		return err
	}
	d.Render()
	return nil
}

// Points returns the simplified stroke in the anchor's local frame
func (d *Drawing) Points() []geometry.Vector3 {
	return d.line.Points()
}

// WorldPoints returns the simplified stroke in world space
func (d *Drawing) WorldPoints() []geometry.Vector3 {
	points := d.line.Points()
	for i, p := range points {
		points[i] = d.anchor.LocalToWorld(p)
	}
	return points
}

// Mesh returns the stroke mesh in the anchor's local frame, or nil before
// the first render
func (d *Drawing) Mesh() *mesh.Mesh {
	return d.mesh
}

// WorldMesh returns a world-space copy of the stroke mesh, or nil
func (d *Drawing) WorldMesh() *mesh.Mesh {
	if d.mesh == nil {
		return nil
	}
	return d.mesh.Transformed(d.anchor)
}

// Anchor returns the pose the stroke is attached to
func (d *Drawing) Anchor() geometry.Pose {
	return d.anchor
}

// Plane returns the plane the stroke is drawn on, if any
func (d *Drawing) Plane() *geometry.Plane {
	return d.plane
}

// ShouldDelete reports whether the stroke is too short to keep
func (d *Drawing) ShouldDelete() bool {
	return d.line.Len() < 2
}
