package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/artoolbox/pkg/drawing"
	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/measure"
	"github.com/philipparndt/artoolbox/pkg/mesh"
	"github.com/philipparndt/artoolbox/pkg/scene"
	"github.com/philipparndt/artoolbox/pkg/shapes"
	"github.com/philipparndt/artoolbox/pkg/stl"
	"go.uber.org/zap"
)

var shapeKeys = map[int32]shapes.Kind{
	rl.KeyOne:   shapes.KindSphere,
	rl.KeyTwo:   shapes.KindCube,
	rl.KeyThree: shapes.KindCylinder,
}

var sceneKinds = map[shapes.Kind]scene.Kind{
	shapes.KindSphere:   scene.KindSphere,
	shapes.KindCube:     scene.KindCube,
	shapes.KindCylinder: scene.KindCylinder,
}

// handleInput processes user input
func (app *App) handleInput() {
	// Camera view preset shortcuts
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		app.setCameraTopView()
	}

	shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	mousePos := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		// Pan if Shift is pressed, draw otherwise
		if shiftPressed {
			app.Interaction.isPanning = true
		} else {
			app.beginStroke(mousePos)
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseMiddleButton) {
		app.Interaction.isPanning = shiftPressed
		app.Interaction.isRotating = !shiftPressed
	}

	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		switch {
		case app.Interaction.isPanning:
			app.doPan(delta)
		case app.Interaction.isRotating:
			app.doRotate(delta)
		case app.Strokes.drawing:
			app.extendStroke(mousePos)
		}
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		if app.Strokes.drawing {
			app.endStroke()
		}
		app.Interaction.isPanning = false
	}
	if rl.IsMouseButtonReleased(rl.MouseMiddleButton) {
		app.Interaction.isPanning = false
		app.Interaction.isRotating = false
	}

	// Right click continues the selected chain, Shift starts a new one
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		if shiftPressed {
			app.Measure.selected = measure.None
		}
		app.placeMeasure(mousePos)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.doZoom(wheel)
	}

	for key, kind := range shapeKeys {
		if rl.IsKeyPressed(key) {
			app.placeShape(mousePos, kind)
		}
	}

	if rl.IsKeyPressed(rl.KeyBackspace) {
		app.undoMeasure()
	}
	if rl.IsKeyPressed(rl.KeyDelete) {
		app.detachMeasure()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		app.clear()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		app.save()
	}
}

// mouseRay returns the world ray under the given screen position
func (app *App) mouseRay(pos rl.Vector2) geometry.Ray {
	ray := rl.GetMouseRay(pos, app.Camera.camera)
	return geometry.NewRay(toGeometry(ray.Position), toGeometry(ray.Direction))
}

// beginStroke starts a drawing. Strokes that start on the ground close to the
// camera stay on the ground; others are drawn in the air in front of it.
func (app *App) beginStroke(mousePos rl.Vector2) {
	ray := app.mouseRay(mousePos)

	var plane *geometry.Plane
	anchor := ray.PointAt(drawing.DefaultDrawingDistance)
	if hit, ok := groundPlane.Intersect(ray); ok && geometry.Distance(ray.Origin, hit) <= drawing.PlaneAnchoringDistance*float64(app.Camera.distance) {
		plane = &groundPlane
		anchor = hit
	}

	name, d := app.session.BeginDrawing(geometry.Translation(anchor), plane, app.strokeMaterial)
	d.Extend(ray)
	app.Strokes.active = name
	app.Strokes.drawing = true
}

func (app *App) extendStroke(mousePos rl.Vector2) {
	d, ok := app.session.Drawing(app.Strokes.active)
	if !ok {
		return
	}
	d.Extend(app.mouseRay(mousePos))
}

func (app *App) endStroke() {
	name := app.Strokes.active
	app.syncMeshes()
	if !app.session.EndDrawing(name) {
		if g, ok := app.Strokes.meshes[name]; ok {
			g.unload()
			delete(app.Strokes.meshes, name)
		}
	} else if d, ok := app.session.Drawing(name); ok {
		app.logger.Debug("stroke finished",
			zap.String("name", name),
			zap.Int("points", len(d.Points())))
	}
	app.Strokes.active = ""
	app.Strokes.drawing = false
}

// placeMeasure adds a point where the mouse ray meets the ground plane
func (app *App) placeMeasure(mousePos rl.Vector2) {
	hit, ok := groundPlane.Intersect(app.mouseRay(mousePos))
	if !ok {
		return
	}
	chain := app.session.Measure()
	selected := app.Measure.selected
	if !chain.Alive(selected) {
		selected = measure.None
	}
	app.Measure.selected = chain.Place(hit, selected)
	app.Measure.dirty = true
}

// placeShape drops a default sized primitive onto the ground under the mouse
func (app *App) placeShape(mousePos rl.Vector2, kind shapes.Kind) {
	hit, ok := groundPlane.Intersect(app.mouseRay(mousePos))
	if !ok {
		return
	}
	m := shapes.Placed(kind, hit, app.shapeMaterial)
	if m == nil {
		return
	}
	name := app.session.IDs().Name(sceneKinds[kind])
	app.Shapes.items = append(app.Shapes.items, placedShape{
		name: name,
		mesh: m,
		gpu:  uploadMesh(meshVertices(m), shapeColor),
	})
	app.logger.Debug("shape placed", zap.String("name", name))
	app.setStatus("Placed " + name)
}

// undoMeasure removes the selected point and selects its continuation
func (app *App) undoMeasure() {
	chain := app.session.Measure()
	if !chain.Alive(app.Measure.selected) {
		return
	}
	app.Measure.selected = chain.Undo(app.Measure.selected)
	app.Measure.dirty = true
}

// detachMeasure removes the whole chain of the selected point
func (app *App) detachMeasure() {
	chain := app.session.Measure()
	if !chain.Alive(app.Measure.selected) {
		return
	}
	removed := chain.Detach(app.Measure.selected)
	app.Measure.selected = measure.None
	app.Measure.dirty = true
	app.setStatus(fmt.Sprintf("Removed %d measure points", len(removed)))
}

// clear removes every stroke and measurement
func (app *App) clear() {
	app.session.Clear()
	for name, g := range app.Strokes.meshes {
		g.unload()
		delete(app.Strokes.meshes, name)
	}
	for _, s := range app.Shapes.items {
		s.gpu.unload()
	}
	app.Shapes.items = nil
	app.Strokes.active = ""
	app.Strokes.drawing = false
	app.Measure.selected = measure.None
	app.Measure.dirty = true
	app.setStatus("Cleared")
}

// save writes all strokes and shapes to the output file as binary STL
func (app *App) save() {
	meshes := app.session.Meshes()
	for _, s := range app.Shapes.items {
		meshes = append(meshes, s.mesh)
	}
	model := stl.FromMesh("artoolbox", meshes...)
	if model.TriangleCount() == 0 {
		app.setStatus("Nothing to save")
		return
	}
	if err := stl.Save(app.output, model, true); err != nil {
		app.logger.Error("save failed", zap.String("path", app.output), zap.Error(err))
		app.setStatus("Save failed: " + err.Error())
		return
	}
	app.logger.Info("drawings saved",
		zap.String("path", app.output),
		zap.Int("triangles", model.TriangleCount()))
	app.setStatus("Saved " + app.output)
}

func (app *App) setStatus(msg string) {
	app.UI.status = msg
	app.UI.statusTime = time.Now()
}

func markerMesh(p geometry.Vector3, mat *mesh.Material) *mesh.Mesh {
	return shapes.Sphere(measure.MarkerRadius, p, mat, shapes.DefaultSphereRings/2, shapes.DefaultSphereSectors/2)
}
