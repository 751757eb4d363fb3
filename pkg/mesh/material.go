package mesh

import (
	"context"
	"sync"
)

// Color is a linear RGBA color with components in [0, 1]
type Color struct {
	R, G, B, A float64
}

// RGBA8 converts to 8-bit channels
func (c Color) RGBA8() (r, g, b, a uint8) {
	conv := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return conv(c.R), conv(c.G), conv(c.B), conv(c.A)
}

// Material describes how a mesh is shaded. Generators only carry the
// reference; a nil material means the mesh cannot be rendered yet.
type Material struct {
	Name        string
	Color       Color
	Metallic    float64
	Roughness   float64
	Reflectance float64
}

// NewOpaque returns an opaque material with the given color and the
// renderer's default surface properties
func NewOpaque(name string, c Color) *Material {
	c.A = 1
	return &Material{
		Name:        name,
		Color:       c,
		Metallic:    0,
		Roughness:   0.4,
		Reflectance: 0.5,
	}
}

// PendingMaterial is a material that is loaded elsewhere and resolved once.
// It is safe for concurrent use: loaders call Resolve from any goroutine,
// the owning thread polls Ready or blocks in Wait.
type PendingMaterial struct {
	once sync.Once
	mu   sync.RWMutex
	done chan struct{}
	mat  *Material
}

// NewPendingMaterial creates an unresolved material
func NewPendingMaterial() *PendingMaterial {
	return &PendingMaterial{done: make(chan struct{})}
}

// Resolved returns a pending material that is already available
func Resolved(m *Material) *PendingMaterial {
	p := NewPendingMaterial()
	p.Resolve(m)
	return p
}

// Resolve publishes the material. Only the first call has any effect;
// resolving with nil is ignored so a failed load can be retried.
func (p *PendingMaterial) Resolve(m *Material) bool {
	if m == nil {
		return false
	}
	resolved := false
	p.once.Do(func() {
		p.mu.Lock()
		p.mat = m
		p.mu.Unlock()
		close(p.done)
		resolved = true
	})
	return resolved
}

// Ready returns the material if it has been resolved
func (p *PendingMaterial) Ready() (*Material, bool) {
	if p == nil {
		return nil, false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mat, p.mat != nil
}

// Done returns a channel closed once the material is available
func (p *PendingMaterial) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the material is resolved or ctx is done
func (p *PendingMaterial) Wait(ctx context.Context) (*Material, error) {
	select {
	case <-p.done:
		m, _ := p.Ready()
		return m, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
