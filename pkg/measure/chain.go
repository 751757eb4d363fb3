// Package measure keeps chains of measurement points. Each point may link to
// a previous and a next point; the distance between linked points is shown
// as a connector.
package measure

import (
	"github.com/philipparndt/artoolbox/pkg/geometry"
	"go.uber.org/zap"
)

const (
	// MarkerRadius is the radius of the sphere drawn at each point
	MarkerRadius = 0.01
	// ConnectorRadius is the radius of the tube joining two points
	ConnectorRadius = MarkerRadius * 0.5
)

// ID identifies a point in a Chain. IDs are never reused.
type ID int

// None is the zero ID, used for "no point"
const None ID = 0

type node struct {
	point geometry.Vector3
	prev  ID
	next  ID
	alive bool
}

// Chain stores measurement points in an arena indexed by ID
type Chain struct {
	nodes           []node
	alive           int
	connectorRadius float64
	logger          *zap.Logger
}

// Option configures a Chain
type Option func(*Chain)

// WithLogger sets the logger used for link tracing
func WithLogger(logger *zap.Logger) Option {
	return func(c *Chain) {
		c.logger = logger
	}
}

// WithConnectorRadius overrides the radius handed to joins
func WithConnectorRadius(r float64) Option {
	return func(c *Chain) {
		if r > 0 {
			c.connectorRadius = r
		}
	}
}

// NewChain creates an empty chain
func NewChain(opts ...Option) *Chain {
	c := &Chain{
		connectorRadius: ConnectorRadius,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Chain) get(id ID) *node {
	if id <= None || int(id) > len(c.nodes) {
		return nil
	}
	n := &c.nodes[id-1]
	if !n.alive {
		return nil
	}
	return n
}

// Place adds a point. If selected is alive the new point is linked after the
// last point of selected's chain, otherwise it starts a chain of its own.
func (c *Chain) Place(point geometry.Vector3, selected ID) ID {
	c.nodes = append(c.nodes, node{point: point, alive: true})
	id := ID(len(c.nodes))
	c.alive++

	if c.Alive(selected) {
		last := c.Last(selected)
		c.link(last, id)
	}
	c.logger.Debug("measure placed",
		zap.Int("id", int(id)),
		zap.Int("prev", int(c.Prev(id))))
	return id
}

func (c *Chain) link(prev, next ID) {
	c.get(prev).next = next
	c.get(next).prev = prev
}

// Move repositions a point
func (c *Chain) Move(id ID, p geometry.Vector3) bool {
	n := c.get(id)
	if n == nil {
		return false
	}
	n.point = p
	return true
}

// Point returns the position of id
func (c *Chain) Point(id ID) (geometry.Vector3, bool) {
	n := c.get(id)
	if n == nil {
		return geometry.Vector3{}, false
	}
	return n.point, true
}

// Alive reports whether id refers to a point still in the chain
func (c *Chain) Alive(id ID) bool {
	return c.get(id) != nil
}

// Len returns the number of alive points
func (c *Chain) Len() int {
	return c.alive
}

// Prev returns the point linked before id, or None
func (c *Chain) Prev(id ID) ID {
	if n := c.get(id); n != nil {
		return n.prev
	}
	return None
}

// Next returns the point linked after id, or None
func (c *Chain) Next(id ID) ID {
	if n := c.get(id); n != nil {
		return n.next
	}
	return None
}

// First walks back to the start of id's chain
func (c *Chain) First(id ID) ID {
	if !c.Alive(id) {
		return None
	}
	for p := c.Prev(id); p != None; p = c.Prev(id) {
		id = p
	}
	return id
}

// Last walks forward to the end of id's chain
func (c *Chain) Last(id ID) ID {
	if !c.Alive(id) {
		return None
	}
	for n := c.Next(id); n != None; n = c.Next(id) {
		id = n
	}
	return id
}

// IDs returns the ids of id's chain from first to last
func (c *Chain) IDs(id ID) []ID {
	var out []ID
	for cur := c.First(id); cur != None; cur = c.Next(cur) {
		out = append(out, cur)
	}
	return out
}

// Path returns the positions of id's chain from first to last
func (c *Chain) Path(id ID) []geometry.Vector3 {
	ids := c.IDs(id)
	out := make([]geometry.Vector3, len(ids))
	for i, cur := range ids {
		out[i] = c.get(cur).point
	}
	return out
}

// Chains returns every chain as its ids in order, sorted by first id
func (c *Chain) Chains() [][]ID {
	var out [][]ID
	for i := range c.nodes {
		n := &c.nodes[i]
		if n.alive && n.prev == None {
			out = append(out, c.IDs(ID(i+1)))
		}
	}
	return out
}

// Undo removes only id. Its neighbours are joined across the gap. The
// returned continuation is the point that should be selected next: the
// previous point if there is one, otherwise the next.
func (c *Chain) Undo(id ID) ID {
	n := c.get(id)
	if n == nil {
		return None
	}
	prev, next := n.prev, n.next
	c.remove(id)
	if prev != None && next != None {
		c.link(prev, next)
	}

	c.logger.Debug("measure undone",
		zap.Int("id", int(id)),
		zap.Int("prev", int(prev)),
		zap.Int("next", int(next)))
	if prev != None {
		return prev
	}
	return next
}

// Detach removes id's whole chain, last point first, and returns the removed
// ids in removal order
func (c *Chain) Detach(id ID) []ID {
	var removed []ID
	for cur := c.Last(id); cur != None; {
		prev := c.Prev(cur)
		c.remove(cur)
		removed = append(removed, cur)
		cur = prev
	}
	if len(removed) > 0 {
		c.logger.Debug("measure chain detached", zap.Int("points", len(removed)))
	}
	return removed
}

// Clear removes every point
func (c *Chain) Clear() {
	for i := range c.nodes {
		c.nodes[i].alive = false
	}
	c.alive = 0
}

func (c *Chain) remove(id ID) {
	n := c.get(id)
	if p := c.get(n.prev); p != nil {
		p.next = None
	}
	if nx := c.get(n.next); nx != nil {
		nx.prev = None
	}
	n.prev, n.next = None, None
	n.alive = false
	c.alive--
}

// Distance returns the distance between two alive points, or 0
func (c *Chain) Distance(a, b ID) float64 {
	pa, okA := c.Point(a)
	pb, okB := c.Point(b)
	if !okA || !okB {
		return 0
	}
	return geometry.Distance(pa, pb)
}

// TotalPrevious sums the segment lengths from the start of the chain to id
func (c *Chain) TotalPrevious(id ID) float64 {
	total := 0.0
	for cur, prev := id, c.Prev(id); prev != None; cur, prev = prev, c.Prev(prev) {
		total += c.Distance(cur, prev)
	}
	return total
}

// TotalNext sums the segment lengths from id to the end of the chain
func (c *Chain) TotalNext(id ID) float64 {
	total := 0.0
	for cur, next := id, c.Next(id); next != None; cur, next = next, c.Next(next) {
		total += c.Distance(cur, next)
	}
	return total
}

// Total is the length of id's whole chain
func (c *Chain) Total(id ID) float64 {
	return c.TotalPrevious(id) + c.TotalNext(id)
}
