package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	minCameraDistance = 0.05
	maxCameraAngleX   = math.Pi/2 - 0.05
	rotateSpeed       = 0.005
)

// initCamera frames the working area of the given size around target
func (app *App) initCamera(target rl.Vector3, size float32) {
	distance := size * 2.0
	if distance < minCameraDistance {
		distance = minCameraDistance
	}

	app.Camera.target = target
	app.Camera.distance = distance
	app.Camera.angleX = 0.6
	app.Camera.angleY = 0.4

	app.Camera.defaultTarget = target
	app.Camera.defaultDist = distance
	app.Camera.defaultAngleX = app.Camera.angleX
	app.Camera.defaultAngleY = app.Camera.angleY

	app.Camera.camera = rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 0, Z: distance},
		Target:     target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
	app.updateCamera()
}

// resetCameraView resets the camera to the default view
func (app *App) resetCameraView() {
	app.Camera.distance = app.Camera.defaultDist
	app.Camera.angleX = app.Camera.defaultAngleX
	app.Camera.angleY = app.Camera.defaultAngleY
	app.Camera.target = app.Camera.defaultTarget
}

// setCameraTopView looks straight down onto the ground plane
func (app *App) setCameraTopView() {
	app.Camera.angleX = maxCameraAngleX
	app.Camera.angleY = 0
}

// updateCamera updates camera position based on angles
func (app *App) updateCamera() {
	c := &app.Camera
	x := c.distance * float32(math.Cos(float64(c.angleX))) * float32(math.Sin(float64(c.angleY)))
	y := c.distance * float32(math.Sin(float64(c.angleX)))
	z := c.distance * float32(math.Cos(float64(c.angleX))) * float32(math.Cos(float64(c.angleY)))

	c.camera.Position = rl.Vector3{
		X: c.target.X + x,
		Y: c.target.Y + y,
		Z: c.target.Z + z,
	}
	c.camera.Target = c.target
}

// doPan performs camera panning based on mouse delta
func (app *App) doPan(delta rl.Vector2) {
	c := &app.Camera
	forward := rl.Vector3Normalize(rl.Vector3Subtract(c.target, c.camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, c.camera.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	// Pan speed based on distance from target
	panSpeed := c.distance * 0.001

	rightMove := rl.Vector3Scale(right, -delta.X*panSpeed)
	upMove := rl.Vector3Scale(up, delta.Y*panSpeed)

	c.target = rl.Vector3Add(c.target, rightMove)
	c.target = rl.Vector3Add(c.target, upMove)
}

// doRotate orbits the camera around its target
func (app *App) doRotate(delta rl.Vector2) {
	c := &app.Camera
	c.angleY -= delta.X * rotateSpeed
	c.angleX += delta.Y * rotateSpeed
	if c.angleX > maxCameraAngleX {
		c.angleX = maxCameraAngleX
	}
	if c.angleX < -maxCameraAngleX {
		c.angleX = -maxCameraAngleX
	}
}

// doZoom scales the camera distance by the mouse wheel movement
func (app *App) doZoom(wheel float32) {
	c := &app.Camera
	c.distance *= 1.0 - wheel*0.05
	if c.distance < minCameraDistance {
		c.distance = minCameraDistance
	}
}
