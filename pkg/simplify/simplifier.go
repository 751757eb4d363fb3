// Package simplify reduces a live stream of sampled 3D points to a sparse
// polyline while the stream is still being produced.
package simplify

import (
	"fmt"
	"math"

	"github.com/philipparndt/artoolbox/pkg/geometry"
	"go.uber.org/zap"
)

// Default tuning. The spacing matches the drawing tube radius so that no
// segment is shorter than the tube is thick.
const (
	DefaultMinSpacing     = 0.005
	DefaultSmoothingAngle = 5 * math.Pi / 180
)

// Config holds the two tunable thresholds of the simplifier
type Config struct {
	// MinSpacing is the distance below which a point is treated as a
	// duplicate of the last accepted point and dropped.
	MinSpacing float64
	// SmoothingAngle, in radians, is the direction change below which a
	// point extends the last segment instead of starting a new one.
	SmoothingAngle float64
}

// DefaultConfig returns the default thresholds
func DefaultConfig() Config {
	return Config{
		MinSpacing:     DefaultMinSpacing,
		SmoothingAngle: DefaultSmoothingAngle,
	}
}

// Validate checks that both thresholds are usable
func (c Config) Validate() error {
	if math.IsNaN(c.MinSpacing) || c.MinSpacing < 0 {
		return fmt.Errorf("min spacing must be >= 0, got %v", c.MinSpacing)
	}
	if math.IsNaN(c.SmoothingAngle) || c.SmoothingAngle < 0 || c.SmoothingAngle >= math.Pi {
		return fmt.Errorf("smoothing angle must be in [0, pi), got %v", c.SmoothingAngle)
	}
	return nil
}

// Action reports what Append did with a point
type Action int

const (
	// Discarded means the point was too close to the last one; nothing changed
	Discarded Action = iota
	// Accepted means the point was appended as a new vertex
	Accepted
	// Extended means the point replaced the last vertex in place
	Extended
)

// Changed reports whether the polyline differs from before the append
func (a Action) Changed() bool {
	return a != Discarded
}

func (a Action) String() string {
	switch a {
	case Discarded:
		return "discarded"
	case Accepted:
		return "accepted"
	case Extended:
		return "extended"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Option configures a Simplifier
type Option func(*Simplifier)

// WithLogger sets the logger used to trace decisions at debug level
func WithLogger(logger *zap.Logger) Option {
	return func(s *Simplifier) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Simplifier keeps a greedy, online reduction of a point stream. Only the
// last accepted point is ever revisited, so each Append is O(1).
//
// A Simplifier is not safe for concurrent use.
type Simplifier struct {
	cfg    Config
	points []geometry.Vector3
	logger *zap.Logger
}

// New creates a simplifier with the given thresholds
func New(cfg Config, opts ...Option) *Simplifier {
	s := &Simplifier{
		cfg:    cfg,
		points: make([]geometry.Vector3, 0, 16),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the thresholds in use
func (s *Simplifier) Config() Config {
	return s.cfg
}

// Append feeds the next raw point and reports how it was used
func (s *Simplifier) Append(p geometry.Vector3) Action {
	if !p.IsFinite() {
		return Discarded
	}
	n := len(s.points)
	if n == 0 {
		s.points = append(s.points, p)
		s.logger.Debug("point accepted", zap.Int("index", 0), zap.String("reason", "origin"))
		return Accepted
	}

	last := s.points[n-1]
	if p.Distance(last) < s.cfg.MinSpacing {
		return Discarded
	}

	if n >= 2 {
		prev := s.points[n-2]
		turn := last.Sub(prev).AngleTo(p.Sub(last))
		// replacing last must keep p at least MinSpacing from prev
		if turn < s.cfg.SmoothingAngle && p.Distance(prev) >= s.cfg.MinSpacing {
			s.points[n-1] = p
			return Extended
		}
	}

	s.points = append(s.points, p)
	s.logger.Debug("point accepted", zap.Int("index", n))
	return Accepted
}

// Points returns a copy of the accepted polyline in path order
func (s *Simplifier) Points() []geometry.Vector3 {
	out := make([]geometry.Vector3, len(s.points))
	copy(out, s.points)
	return out
}

// Len returns the number of accepted points
func (s *Simplifier) Len() int {
	return len(s.points)
}

// Last returns the most recently accepted point
func (s *Simplifier) Last() (geometry.Vector3, bool) {
	if len(s.points) == 0 {
		return geometry.Vector3{}, false
	}
	return s.points[len(s.points)-1], true
}

// Reset clears the polyline, keeping the thresholds
func (s *Simplifier) Reset() {
	s.points = s.points[:0]
}
