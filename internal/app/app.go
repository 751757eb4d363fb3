// Package app is the interactive window for drawing strokes and placing
// measurements on the ground plane.
package app

import (
	"context"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/artoolbox/internal/config"
	"github.com/philipparndt/artoolbox/pkg/drawing"
	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/measure"
	"github.com/philipparndt/artoolbox/pkg/mesh"
	"github.com/philipparndt/artoolbox/pkg/scene"
	"github.com/philipparndt/artoolbox/pkg/tube"
	"github.com/philipparndt/artoolbox/version"
	"go.uber.org/zap"
)

// DefaultOutput is the file the drawings are saved to
const DefaultOutput = "drawings.stl"

// defaultWorkArea is the size framed by the camera without a reference model
const defaultWorkArea = 0.5

var (
	strokeColor  = mesh.Color{R: 0.95, G: 0.55, B: 0.15, A: 1}
	measureColor = mesh.Color{R: 0.9, G: 0.9, B: 0.3, A: 1}
	shapeColor   = mesh.Color{R: 0.35, G: 0.75, B: 0.45, A: 1}

	// Drawings and measurements are placed on y=0
	groundPlane = geometry.NewPlane(geometry.Vector3{}, geometry.NewVector3(0, 1, 0))
)

// Options configures the window
type Options struct {
	Reference string // Optional STL shown below the drawings, reloaded on change
	Output    string // File written on save
	Config    config.Config
	Logger    *zap.Logger
}

type App struct {
	Camera      CameraState
	Strokes     StrokeState
	Shapes      ShapeState
	Measure     MeasureState
	Reference   ReferenceState
	Interaction InteractionState
	UI          UIState

	session         *scene.Session
	builder         tube.Builder
	output          string
	strokeMaterial  *mesh.PendingMaterial
	measureMaterial *mesh.Material
	shapeMaterial   *mesh.Material
	material        rl.Material
	gridSpacing     float32
	logger          *zap.Logger
}

func newApp(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	output := opts.Output
	if output == "" {
		output = DefaultOutput
	}
	cfg := opts.Config

	app := &App{
		Strokes: StrokeState{
			meshes: make(map[string]gpuMesh),
		},
		Reference: ReferenceState{
			path:    opts.Reference,
			changed: make(chan struct{}, 1),
			loaded:  make(chan loadResult, 1),
		},
		builder:         cfg.Builder(tube.WithLogger(logger)),
		output:          output,
		strokeMaterial:  mesh.NewPendingMaterial(),
		measureMaterial: mesh.NewOpaque("measure", measureColor),
		shapeMaterial:   mesh.NewOpaque("shape", shapeColor),
		logger:          logger,
	}

	chain := measure.NewChain(
		measure.WithLogger(logger),
		measure.WithConnectorRadius(cfg.Measure.ConnectorRadius),
	)
	app.session = scene.NewSession(
		scene.WithLogger(logger),
		scene.WithMeasure(chain),
		scene.WithDrawingOptions(
			drawing.WithSimplifier(cfg.SimplifierConfig()),
			drawing.WithBuilder(app.builder),
			drawing.WithRadius(cfg.Tube.Radius),
			drawing.WithOnMesh(func(*mesh.Mesh) { app.Strokes.dirty = true }),
		),
	)
	return app
}

// Run opens the window and blocks until it is closed
func Run(opts Options) error {
	app := newApp(opts)

	if app.Reference.path != "" {
		model, err := loadReference(app.Reference.path)
		if err != nil {
			return err
		}
		app.Reference.model = model
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if app.Reference.path != "" {
		if err := app.setupFileWatcher(ctx); err != nil {
			app.logger.Warn("auto-reload not available", zap.Error(err))
		} else {
			defer app.Reference.fileWatcher.Close()
		}
	}

	// Initialize window
	screenWidth := int32(1400)
	screenHeight := int32(900)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(screenWidth, screenHeight, "artoolbox "+version.GetVersion())
	rl.SetTargetFPS(60)

	// Vertex colors are baked into the meshes, the material uses them
	app.material = rl.LoadMaterialDefault()
	app.strokeMaterial.Resolve(mesh.NewOpaque("stroke", strokeColor))

	size := float32(defaultWorkArea)
	target := rl.Vector3{}
	if m := app.Reference.model; m != nil && m.TriangleCount() > 0 {
		bbox := m.BoundingBox()
		dims := bbox.Size()
		size = float32(math.Max(dims.X, math.Max(dims.Y, dims.Z)))
		target = toRaylib(bbox.Center())
		app.Reference.mesh = uploadMesh(modelVertices(m), referenceColor)
	}
	app.gridSpacing = size / 10
	app.initCamera(target, size)

	app.logger.Info("window opened",
		zap.String("reference", app.Reference.path),
		zap.String("output", app.output))

	// Main loop
	for !rl.WindowShouldClose() {
		app.pollReference()
		app.applyLoadedReference()

		app.handleInput()
		app.updateCamera()
		app.syncMeshes()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.Camera.camera)
		rl.DrawGrid(20, app.gridSpacing)
		app.Reference.mesh.draw(app.material)
		for _, g := range app.Strokes.meshes {
			g.draw(app.material)
		}
		for _, s := range app.Shapes.items {
			s.gpu.draw(app.material)
		}
		app.Measure.mesh.draw(app.material)
		app.drawSelection()
		rl.EndMode3D()

		app.drawMeasureLabels()
		app.drawUI()

		rl.EndDrawing()
	}

	// Cleanup
	app.Reference.mesh.unload()
	app.Measure.mesh.unload()
	for _, g := range app.Strokes.meshes {
		g.unload()
	}
	for _, s := range app.Shapes.items {
		s.gpu.unload()
	}
	rl.CloseWindow()
	return nil
}

// syncMeshes uploads the meshes that changed since the last frame
func (app *App) syncMeshes() {
	if app.Strokes.dirty && app.Strokes.active != "" {
		name := app.Strokes.active
		if d, ok := app.session.Drawing(name); ok {
			if wm := d.WorldMesh(); wm != nil {
				g := app.Strokes.meshes[name]
				g.replace(meshVertices(wm), colorOf(wm, strokeColor))
				app.Strokes.meshes[name] = g
			}
		}
	}
	app.Strokes.dirty = false

	if app.Measure.dirty {
		m := app.measureMesh()
		app.Measure.mesh.replace(meshVertices(m), measureColor)
		app.Measure.dirty = false
	}
}

// measureMesh builds one mesh with a marker per point and a connector per
// segment of every chain
func (app *App) measureMesh() *mesh.Mesh {
	chain := app.session.Measure()
	out := &mesh.Mesh{Material: app.measureMaterial}
	for _, ids := range chain.Chains() {
		for _, p := range chain.Path(ids[0]) {
			out.Merge(markerMesh(p, app.measureMaterial))
		}
	}
	for _, j := range chain.Joins() {
		out.Merge(j.Mesh(app.builder, app.measureMaterial))
	}
	return out
}

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func toGeometry(v rl.Vector3) geometry.Vector3 {
	return geometry.NewVector3(float64(v.X), float64(v.Y), float64(v.Z))
}
