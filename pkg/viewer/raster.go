package viewer

import (
	"image"
	"image/color"
	"math"
)

// vertex is a projected corner: pixel position and view depth
type vertex struct {
	x, y, z float64
}

// fillTriangle rasterizes a triangle with depth testing. Pixels are written
// only where z is closer than the value in zbuffer.
func fillTriangle(img *image.RGBA, zbuffer []float64, a, b, c vertex, col color.RGBA) {
	// sort by y, top to bottom
	if a.y > b.y {
		a, b = b, a
	}
	if b.y > c.y {
		b, c = c, b
	}
	if a.y > b.y {
		a, b = b, a
	}
	if c.y == a.y {
		return
	}

	bounds := img.Bounds()
	width := bounds.Dx()

	yStart := int(math.Max(float64(bounds.Min.Y), math.Ceil(a.y)))
	yEnd := int(math.Min(float64(bounds.Max.Y-1), math.Floor(c.y)))
	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)

		// the long edge a-c spans every scanline, the short one switches at b
		left := lerpVertex(a, c, (fy-a.y)/(c.y-a.y))
		var right vertex
		if fy < b.y {
			right = lerpVertex(a, b, (fy-a.y)/(b.y-a.y))
		} else if c.y != b.y {
			right = lerpVertex(b, c, (fy-b.y)/(c.y-b.y))
		} else {
			right = b
		}
		if left.x > right.x {
			left, right = right, left
		}

		xStart := int(math.Max(float64(bounds.Min.X), math.Ceil(left.x)))
		xEnd := int(math.Min(float64(bounds.Max.X-1), math.Floor(right.x)))
		for x := xStart; x <= xEnd; x++ {
			t := 0.0
			if right.x != left.x {
				t = (float64(x) - left.x) / (right.x - left.x)
			}
			z := left.z + t*(right.z-left.z)

			idx := (y-bounds.Min.Y)*width + (x - bounds.Min.X)
			if z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

func lerpVertex(a, b vertex, t float64) vertex {
	return vertex{
		x: a.x + t*(b.x-a.x),
		y: a.y + t*(b.y-a.y),
		z: a.z + t*(b.z-a.z),
	}
}

// drawLine draws a line on an image using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		if (image.Point{X: x1, Y: y1}).In(bounds) {
			img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			return
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
