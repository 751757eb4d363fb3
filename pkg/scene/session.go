package scene

import (
	"github.com/philipparndt/artoolbox/pkg/drawing"
	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/measure"
	"github.com/philipparndt/artoolbox/pkg/mesh"
	"go.uber.org/zap"
)

// Session is the set of objects placed by one user. It is owned by a single
// goroutine.
type Session struct {
	ids      *IDs
	drawings map[string]*drawing.Drawing
	order    map[string]int
	seq      int
	measure  *measure.Chain

	drawingOpts []drawing.Option
	logger      *zap.Logger
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithDrawingOptions applies opts to every drawing the session begins
func WithDrawingOptions(opts ...drawing.Option) SessionOption {
	return func(s *Session) {
		s.drawingOpts = append(s.drawingOpts, opts...)
	}
}

// WithMeasure replaces the session's measurement chain
func WithMeasure(c *measure.Chain) SessionOption {
	return func(s *Session) {
		s.measure = c
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession creates an empty session
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		ids:      NewIDs(),
		drawings: make(map[string]*drawing.Drawing),
		order:    make(map[string]int),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.measure == nil {
		s.measure = measure.NewChain(measure.WithLogger(s.logger))
	}
	return s
}

// IDs returns the session's name counters
func (s *Session) IDs() *IDs {
	return s.ids
}

// BeginDrawing starts a new named stroke
func (s *Session) BeginDrawing(anchor geometry.Pose, plane *geometry.Plane, material *mesh.PendingMaterial) (string, *drawing.Drawing) {
	name := s.ids.Name(KindDrawing)
	opts := append([]drawing.Option{drawing.WithLogger(s.logger.With(zap.String("drawing", name)))}, s.drawingOpts...)
	d := drawing.New(anchor, plane, material, opts...)

	s.seq++
	s.drawings[name] = d
	s.order[name] = s.seq
	s.logger.Debug("drawing started", zap.String("name", name), zap.Bool("plane", plane != nil))
	return name, d
}

// EndDrawing finishes a stroke. Strokes with fewer than two points are
// removed; it reports whether the drawing was kept.
func (s *Session) EndDrawing(name string) bool {
	d, ok := s.drawings[name]
	if !ok {
		return false
	}
	if d.ShouldDelete() {
		s.RemoveDrawing(name)
		s.logger.Debug("empty drawing removed", zap.String("name", name))
		return false
	}
	return true
}

// RemoveDrawing deletes a drawing by name
func (s *Session) RemoveDrawing(name string) bool {
	if _, ok := s.drawings[name]; !ok {
		return false
	}
	delete(s.drawings, name)
	delete(s.order, name)
	return true
}

// Drawing looks up a drawing by name
func (s *Session) Drawing(name string) (*drawing.Drawing, bool) {
	d, ok := s.drawings[name]
	return d, ok
}

// Drawings returns the names of all drawings in creation order
func (s *Session) Drawings() []string {
	return sortedNames(s.drawings, s.order)
}

// Measure returns the session's measurement chain
func (s *Session) Measure() *measure.Chain {
	return s.measure
}

// Clear removes every drawing and measurement. Name counters keep running.
func (s *Session) Clear() {
	clear(s.drawings)
	clear(s.order)
	s.measure.Clear()
}

// Meshes returns the world-space meshes of every rendered drawing in
// creation order
func (s *Session) Meshes() []*mesh.Mesh {
	var out []*mesh.Mesh
	for _, name := range s.Drawings() {
		if m := s.drawings[name].WorldMesh(); m != nil {
			out = append(out, m)
		}
	}
	return out
}
