package viewer

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/mesh"
	"github.com/pkg/errors"
)

// Options controls an offscreen render
type Options struct {
	Width, Height int
	Background    color.RGBA
	// LightDir points from the light towards the scene
	LightDir geometry.Vector3
	// Ambient is the minimum brightness of faces turned away from the light
	Ambient float64
	// Camera overrides the automatic framing when set
	Camera *Camera
}

// DefaultOptions returns a 640x480 render lit from the upper left
func DefaultOptions() Options {
	return Options{
		Width:      640,
		Height:     480,
		Background: color.RGBA{R: 32, G: 32, B: 38, A: 255},
		LightDir:   geometry.NewVector3(-0.5, -1, -0.5),
		Ambient:    0.25,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.LightDir.IsZero(0) {
		o.LightDir = d.LightDir
	}
	if o.Background == (color.RGBA{}) {
		o.Background = d.Background
	}
	return o
}

// Render draws the meshes with flat Lambert shading. Without a camera in
// opts the view frames the combined bounds of all meshes.
func Render(opts Options, meshes ...*mesh.Mesh) *image.RGBA {
	opts = opts.normalized()
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: opts.Background}, image.Point{}, draw.Src)

	zbuffer := make([]float64, opts.Width*opts.Height)
	for i := range zbuffer {
		zbuffer[i] = math.Inf(1)
	}

	cam := opts.Camera
	if cam == nil {
		cam = NewCamera(bounds(meshes))
	}
	light := opts.LightDir.Normalize().Negate()
	w, h := float64(opts.Width), float64(opts.Height)

	for _, m := range meshes {
		if m.IsEmpty() {
			continue
		}
		base := color.RGBA{R: 200, G: 200, B: 200, A: 255}
		if m.Material != nil {
			r, g, b, _ := m.Material.Color.RGBA8()
			base = color.RGBA{R: r, G: g, B: b, A: 255}
		}

		for i := 0; i < m.TriangleCount(); i++ {
			tri := m.Triangle(i)
			// back faces of closed meshes are always hidden
			if tri.Normal.Dot(cam.Position.Sub(tri.V1)) <= 0 {
				continue
			}

			var corners [3]vertex
			visible := true
			for k, p := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
				x, y, z, ok := cam.Project(p, w, h)
				if !ok {
					visible = false
					break
				}
				corners[k] = vertex{x: x, y: y, z: z}
			}
			if !visible {
				continue
			}

			shade := opts.Ambient + (1-opts.Ambient)*math.Max(0, tri.Normal.Dot(light))
			fillTriangle(img, zbuffer, corners[0], corners[1], corners[2], scale(base, shade))
		}
	}
	return img
}

// DrawPolyline overlays a polyline, as seen by cam, on top of img
func DrawPolyline(img *image.RGBA, cam *Camera, points []geometry.Vector3, col color.RGBA) {
	w, h := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	for i := 1; i < len(points); i++ {
		x1, y1, _, ok1 := cam.Project(points[i-1], w, h)
		x2, y2, _, ok2 := cam.Project(points[i], w, h)
		if !ok1 || !ok2 {
			continue
		}
		drawLine(img, int(math.Round(x1)), int(math.Round(y1)), int(math.Round(x2)), int(math.Round(y2)), col)
	}
}

// SavePNG encodes img to path
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create preview")
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	return errors.Wrapf(f.Close(), "failed to write %s", path)
}

func bounds(meshes []*mesh.Mesh) geometry.BoundingBox {
	box := geometry.NewBoundingBox()
	for _, m := range meshes {
		if m.IsEmpty() {
			continue
		}
		for _, p := range m.Positions {
			box.Extend(p)
		}
	}
	return box
}

func scale(c color.RGBA, f float64) color.RGBA {
	s := func(v uint8) uint8 {
		return uint8(math.Min(255, float64(v)*f+0.5))
	}
	return color.RGBA{R: s(c.R), G: s(c.G), B: s(c.B), A: c.A}
}
