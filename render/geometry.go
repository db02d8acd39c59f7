package render

import (
	"math"

	"golang.org/x/image/vector"
)

// arcSegments is the number of line segments per quarter ellipse.
const arcSegments = 16

type point struct{ x, y float64 }

// polygon is a closed outline, clockwise in screen coordinates.
type polygon []point

// corners holds x/y radii for the top-left, top-right, bottom-right and
// bottom-left corners.
type corners [8]float64

func uniformCorners(r float64) corners {
	var c corners
	for i := range c {
		c[i] = r
	}
	return c
}

func cornersFrom(radii []float64, radius float64) corners {
	if len(radii) == 0 {
		return uniformCorners(radius)
	}
	var c corners
	copy(c[:], radii)
	return c
}

// grow adds d to every radius, clamping at zero.
func (c corners) grow(d float64) corners {
	for i := range c {
		c[i] = math.Max(0, c[i]+d)
	}
	return c
}

// fit scales all radii down uniformly so adjacent corners never overlap on
// an edge of the given size.
func (c corners) fit(w, h float64) corners {
	f := 1.0
	limit := func(length, a, b float64) {
		if sum := a + b; sum > length && sum > 0 {
			f = math.Min(f, length/sum)
		}
	}
	limit(w, c[0], c[2]) // top
	limit(w, c[6], c[4]) // bottom
	limit(h, c[1], c[7]) // left
	limit(h, c[3], c[5]) // right
	if f < 1 {
		for i := range c {
			c[i] *= f
		}
	}
	return c
}

// roundRect returns the outline of the rectangle (x0,y0)-(x1,y1) with the
// given corner radii.
func roundRect(x0, y0, x1, y1 float64, c corners) polygon {
	if x1 <= x0 || y1 <= y0 {
		return nil
	}
	c = c.fit(x1-x0, y1-y0)

	pts := make(polygon, 0, 4*(arcSegments+1))
	pts = appendArc(pts, x0+c[0], y0+c[1], c[0], c[1], math.Pi, 1.5*math.Pi)
	pts = appendArc(pts, x1-c[2], y0+c[3], c[2], c[3], 1.5*math.Pi, 2*math.Pi)
	pts = appendArc(pts, x1-c[4], y1-c[5], c[4], c[5], 0, 0.5*math.Pi)
	pts = appendArc(pts, x0+c[6], y1-c[7], c[6], c[7], 0.5*math.Pi, math.Pi)
	return pts
}

// ellipse returns the outline of the ellipse inscribed in (x0,y0)-(x1,y1).
func ellipse(x0, y0, x1, y1 float64) polygon {
	if x1 <= x0 || y1 <= y0 {
		return nil
	}
	cx, cy := (x0+x1)/2, (y0+y1)/2
	rx, ry := (x1-x0)/2, (y1-y0)/2
	pts := make(polygon, 0, 4*arcSegments)
	for i := 0; i < 4*arcSegments; i++ {
		a := float64(i) * (math.Pi / 2) / arcSegments
		pts = append(pts, point{cx + rx*math.Cos(a), cy + ry*math.Sin(a)})
	}
	return pts
}

// circle returns the outline of a circle of radius r around (cx,cy).
func circle(cx, cy, r float64) polygon {
	if r <= 0 {
		return nil
	}
	return ellipse(cx-r, cy-r, cx+r, cy+r)
}

func appendArc(pts polygon, cx, cy, rx, ry, from, to float64) polygon {
	if rx <= 0 || ry <= 0 {
		return append(pts, point{cx, cy})
	}
	for i := 0; i <= arcSegments; i++ {
		a := from + (to-from)*float64(i)/arcSegments
		pts = append(pts, point{cx + rx*math.Cos(a), cy + ry*math.Sin(a)})
	}
	return pts
}

// trace adds p to z. Reversed outlines cancel coverage of forward ones, which
// is how rings and stroke bands are cut out.
func trace(z *vector.Rasterizer, p polygon, reverse bool) {
	if len(p) < 3 {
		return
	}
	at := func(i int) point {
		if reverse {
			return p[len(p)-1-i]
		}
		return p[i]
	}
	first := at(0)
	z.MoveTo(float32(first.x), float32(first.y))
	for i := 1; i < len(p); i++ {
		q := at(i)
		z.LineTo(float32(q.x), float32(q.y))
	}
	z.ClosePath()
}
