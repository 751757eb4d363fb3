package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/artoolbox/pkg/measure"
	"github.com/philipparndt/artoolbox/pkg/mesh"
	"github.com/philipparndt/artoolbox/pkg/stl"
	"github.com/philipparndt/artoolbox/pkg/watcher"
)

// CameraState holds all camera-related state
type CameraState struct {
	camera        rl.Camera3D
	distance      float32
	angleX        float32
	angleY        float32
	target        rl.Vector3 // Current camera target (can be panned)
	defaultDist   float32    // Default camera distance (for reset)
	defaultAngleX float32    // Default camera angle X (for reset)
	defaultAngleY float32    // Default camera angle Y (for reset)
	defaultTarget rl.Vector3
}

// gpuMesh is a mesh uploaded to the GPU. Valid is false until the first
// non-empty upload.
type gpuMesh struct {
	mesh  rl.Mesh
	valid bool
}

// StrokeState holds the drawings shown in the window
type StrokeState struct {
	active  string             // Drawing being drawn, empty when idle
	meshes  map[string]gpuMesh // Uploaded stroke meshes by drawing name
	dirty   bool               // Active drawing re-rendered since last upload
	drawing bool               // Left button is held for drawing
}

// MeasureState holds the measurement chain selection and its GPU mesh
type MeasureState struct {
	selected measure.ID
	mesh     gpuMesh
	dirty    bool
}

// ReferenceState holds the optional reference model and its reload state
type ReferenceState struct {
	path             string
	model            *stl.Model
	mesh             gpuMesh
	fileWatcher      *watcher.Watcher
	changed          chan struct{} // Signalled by the watcher goroutine
	isLoading        bool
	loadingStartTime time.Time
	loaded           chan loadResult
}

type loadResult struct {
	model *stl.Model
	err   error
}

// InteractionState holds mouse interaction state
type InteractionState struct {
	isPanning  bool
	isRotating bool
}

// UIState holds transient UI messages
type UIState struct {
	status     string
	statusTime time.Time
}

// placedShape is a primitive dropped onto the ground plane
type placedShape struct {
	name string
	mesh *mesh.Mesh
	gpu  gpuMesh
}

// ShapeState holds the placed primitives
type ShapeState struct {
	items []placedShape
}
