package measure

import (
	"github.com/philipparndt/artoolbox/pkg/geometry"
	"github.com/philipparndt/artoolbox/pkg/mesh"
	"github.com/philipparndt/artoolbox/pkg/tube"
)

// Join is the connector between a point and the one before it
type Join struct {
	From, To  ID
	Start     geometry.Vector3
	End       geometry.Vector3
	Midpoint  geometry.Vector3
	Length    float64
	Direction geometry.Vector3
	Radius    float64
}

// Join returns the connector from id's previous point to id
func (c *Chain) Join(id ID) (Join, bool) {
	prev := c.Prev(id)
	if prev == None {
		return Join{}, false
	}
	start, _ := c.Point(prev)
	end, _ := c.Point(id)
	return Join{
		From:      prev,
		To:        id,
		Start:     start,
		End:       end,
		Midpoint:  geometry.Lerp(start, end, 0.5),
		Length:    geometry.Distance(start, end),
		Direction: end.Sub(start).Normalize(),
		Radius:    c.connectorRadius,
	}, true
}

// Joins returns every connector in the chain
func (c *Chain) Joins() []Join {
	var out []Join
	for _, ids := range c.Chains() {
		for _, id := range ids[1:] {
			j, _ := c.Join(id)
			out = append(out, j)
		}
	}
	return out
}

// Mesh builds the connector tube. Coincident points have no mesh.
func (j Join) Mesh(b tube.Builder, mat *mesh.Material) *mesh.Mesh {
	return b.Segment(j.Start, j.End, j.Radius, mat)
}
