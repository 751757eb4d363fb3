package measure

import (
	"testing"

	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/mesh"
	"github.com/philipparndt/artoolbox/pkg/tube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(x, y, z float64) geometry.Vector3 {
	return geometry.NewVector3(x, y, z)
}

// line places a chain along X with the given spacing between points
func line(c *Chain, xs ...float64) []ID {
	var ids []ID
	selected := None
	for _, x := range xs {
		selected = c.Place(v(x, 0, 0), selected)
		ids = append(ids, selected)
	}
	return ids
}

func TestPlaceStartsAndExtendsChains(t *testing.T) {
	c := NewChain()
	a := c.Place(v(0, 0, 0), None)
	assert.Equal(t, None, c.Prev(a))
	assert.Equal(t, 1, c.Len())

	b := c.Place(v(1, 0, 0), a)
	assert.Equal(t, a, c.Prev(b))
	assert.Equal(t, b, c.Next(a))

	// selecting the first point still appends after the last one
	d := c.Place(v(2, 0, 0), a)
	assert.Equal(t, b, c.Prev(d))
	assert.Equal(t, []ID{a, b, d}, c.IDs(a))
	assert.Equal(t, a, c.First(d))
	assert.Equal(t, d, c.Last(a))

	lone := c.Place(v(5, 5, 5), ID(99))
	assert.Equal(t, None, c.Prev(lone))
	assert.Len(t, c.Chains(), 2)
	assert.Equal(t, 4, c.Len())
}

func TestUndoRelinksAroundGap(t *testing.T) {
	c := NewChain()
	ids := line(c, 0, 1, 3)

	cont := c.Undo(ids[1])
	assert.Equal(t, ids[0], cont)
	assert.False(t, c.Alive(ids[1]))
	assert.Equal(t, ids[0], c.Prev(ids[2]))
	assert.Equal(t, ids[2], c.Next(ids[0]))
	assert.InDelta(t, 3, c.Total(ids[0]), 1e-12)

	cont = c.Undo(ids[0])
	assert.Equal(t, ids[2], cont, "without a previous point the next one continues")
	assert.Equal(t, None, c.Prev(ids[2]))

	assert.Equal(t, None, c.Undo(ids[2]))
	assert.Equal(t, None, c.Undo(ids[2]), "undo of a removed point is a no-op")
	assert.Zero(t, c.Len())
}

func TestDetachRemovesWholeChainFromTheEnd(t *testing.T) {
	c := NewChain()
	ids := line(c, 0, 1, 2, 3)
	other := c.Place(v(9, 9, 9), None)

	removed := c.Detach(ids[1])
	assert.Equal(t, []ID{ids[3], ids[2], ids[1], ids[0]}, removed)
	for _, id := range ids {
		assert.False(t, c.Alive(id))
	}
	assert.True(t, c.Alive(other))
	assert.Equal(t, 1, c.Len())
	assert.Empty(t, c.Detach(ids[0]))
}

func TestTotals(t *testing.T) {
	c := NewChain()
	ids := line(c, 0, 0.1, 0.35, 1.35)

	assert.InDelta(t, 0, c.TotalPrevious(ids[0]), 1e-12)
	assert.InDelta(t, 0.35, c.TotalPrevious(ids[2]), 1e-12)
	assert.InDelta(t, 1.25, c.TotalNext(ids[1]), 1e-12)
	for _, id := range ids {
		assert.InDelta(t, 1.35, c.Total(id), 1e-12)
	}
	assert.InDelta(t, 0.25, c.Distance(ids[1], ids[2]), 1e-12)
	assert.Zero(t, c.Distance(ids[0], ID(42)))
}

func TestMoveAndPath(t *testing.T) {
	c := NewChain()
	ids := line(c, 0, 1)
	require.True(t, c.Move(ids[1], v(0, 2, 0)))
	assert.False(t, c.Move(ID(7), v(0, 0, 0)))

	assert.Equal(t, []geometry.Vector3{v(0, 0, 0), v(0, 2, 0)}, c.Path(ids[0]))
	assert.InDelta(t, 2, c.Total(ids[1]), 1e-12)

	p, ok := c.Point(ids[1])
	require.True(t, ok)
	assert.Equal(t, v(0, 2, 0), p)
	_, ok = c.Point(None)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	c := NewChain()
	line(c, 0, 1, 2)
	c.Clear()
	assert.Zero(t, c.Len())
	assert.Empty(t, c.Chains())
}

func TestJoin(t *testing.T) {
	c := NewChain(WithConnectorRadius(0.002))
	ids := line(c, 0, 0.4)

	_, ok := c.Join(ids[0])
	assert.False(t, ok, "first point has no join")

	j, ok := c.Join(ids[1])
	require.True(t, ok)
	assert.Equal(t, ids[0], j.From)
	assert.Equal(t, ids[1], j.To)
	assert.InDelta(t, 0.2, j.Midpoint.X, 1e-12)
	assert.InDelta(t, 0.4, j.Length, 1e-12)
	assert.InDelta(t, 1, j.Direction.X, 1e-12)
	assert.InDelta(t, 1, j.Direction.Length(), 1e-12)
	assert.Equal(t, 0.002, j.Radius)
	assert.Len(t, c.Joins(), 1)

	mat := mesh.NewOpaque("measure", mesh.Color{R: 1})
	m := j.Mesh(tube.NewBuilder(tube.WithSegments(8)), mat)
	require.NotNil(t, m)
	box := m.BoundingBox()
	assert.InDelta(t, 0.4, box.Size().X, 1e-12)
	assert.InDelta(t, 0.004, box.Size().Y, 1e-9)
}

func TestDefaultConnectorRadius(t *testing.T) {
	c := NewChain(WithConnectorRadius(-1))
	ids := line(c, 0, 1)
	j, ok := c.Join(ids[1])
	require.True(t, ok)
	assert.Equal(t, ConnectorRadius, j.Radius)
	assert.Equal(t, MarkerRadius/2, ConnectorRadius)
}
