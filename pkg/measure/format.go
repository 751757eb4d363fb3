package measure

import (
	"fmt"
	"strings"
)

const (
	leftGuillemet  = "«"
	rightGuillemet = "»"
	ellipsis       = "…"
)

// FormatDistance renders a length in meters. Lengths under a meter are shown
// in centimeters.
func FormatDistance(meters float64) string {
	if meters < 1 {
		return fmt.Sprintf("%.1f cm", meters*100)
	}
	return fmt.Sprintf("%.2f m", meters)
}

// Format describes id's place in its chain. A lone point is "…"; a point at
// either end of a two point chain shows the one distance; any other point
// shows the distances on both sides and the chain total:
//
//	10.0 cm « ● » 25.0 cm = 35.0 cm
func (c *Chain) Format(id ID) string {
	if !c.Alive(id) {
		return ""
	}
	prev, next := c.Prev(id), c.Next(id)
	switch {
	case prev == None && next == None:
		return ellipsis
	case prev == None && c.Next(next) == None:
		return strings.TrimSpace(c.formatNext(id))
	case next == None && c.Prev(prev) == None:
		return strings.TrimSpace(c.formatPrevious(id))
	default:
		return strings.TrimSpace(c.formatPrevious(id) + "●" + c.formatNext(id) +
			" = " + FormatDistance(c.Total(id)))
	}
}

// formatPrevious lists the distances from the chain start up to id, farthest
// first, each followed by a left guillemet
func (c *Chain) formatPrevious(id ID) string {
	prev := c.Prev(id)
	if prev == None {
		return ""
	}
	return c.formatPrevious(prev) + FormatDistance(c.Distance(id, prev)) + " " + leftGuillemet + " "
}

// formatNext lists the distances from id to the chain end, each preceded by a
// right guillemet
func (c *Chain) formatNext(id ID) string {
	next := c.Next(id)
	if next == None {
		return ""
	}
	return " " + rightGuillemet + " " + FormatDistance(c.Distance(id, next)) + c.formatNext(next)
}
