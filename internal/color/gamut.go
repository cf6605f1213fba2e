package color

import "math"

// Point is a bare chromaticity coordinate used for gamut geometry.
type Point struct {
	X float64
	Y float64
}

// Gamut is the triangle of chromaticity space a light can reproduce, with
// one vertex per primary. All predefined gamuts use the same red, green,
// blue winding; the containment test relies on it.
type Gamut struct {
	Red   Point
	Green Point
	Blue  Point
}

// Color gamuts of the three Hue light generations.
var (
	// GamutA covers the LivingColors family (Bloom, Aura, Iris, light strips).
	GamutA = Gamut{
		Red:   Point{0.704, 0.296},
		Green: Point{0.2151, 0.7106},
		Blue:  Point{0.138, 0.08},
	}
	// GamutB covers the first-generation Hue bulbs.
	GamutB = Gamut{
		Red:   Point{0.675, 0.322},
		Green: Point{0.409, 0.518},
		Blue:  Point{0.167, 0.04},
	}
	// GamutC covers third-generation bulbs and Gen 2 LightStrips.
	GamutC = Gamut{
		Red:   Point{0.692, 0.308},
		Green: Point{0.17, 0.7},
		Blue:  Point{0.153, 0.048},
	}
)

// cross returns the z component of (a × b).
func cross(a, b Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

// sub returns a - b.
func sub(a, b Point) Point {
	return Point{a.X - b.X, a.Y - b.Y}
}

// dist returns the Euclidean distance between two points.
func dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Contains reports whether p lies on or inside the gamut triangle. It checks
// which side of each directed edge the point falls on; the point is inside
// iff all three edges agree.
func (g Gamut) Contains(p Point) bool {
	d1 := cross(sub(g.Green, g.Red), sub(p, g.Red))
	d2 := cross(sub(g.Blue, g.Green), sub(p, g.Green))
	d3 := cross(sub(g.Red, g.Blue), sub(p, g.Blue))

	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0

	return !(neg && pos)
}

// closestOnLine returns the foot of the perpendicular from q onto the
// infinite line through p1 and p2. The result is deliberately not clamped
// to the segment; the bridge calibration was tuned against the unclamped
// projection. A zero-length edge yields p1.
func closestOnLine(p1, p2, q Point) Point {
	d := sub(p2, p1)
	lenSq := d.X*d.X + d.Y*d.Y
	if lenSq == 0 {
		return p1
	}

	k := (d.X*(q.X-p1.X) + d.Y*(q.Y-p1.Y)) / lenSq
	return Point{p1.X + k*d.X, p1.Y + k*d.Y}
}

// ClosestPoint returns the nearest point to q among the projections onto the
// three edge lines. Exact distance ties resolve to the earliest edge in
// red-green, green-blue, blue-red order.
func (g Gamut) ClosestPoint(q Point) Point {
	best := closestOnLine(g.Red, g.Green, q)
	bestDist := dist(q, best)

	if p := closestOnLine(g.Green, g.Blue, q); dist(q, p) < bestDist {
		best, bestDist = p, dist(q, p)
	}
	if p := closestOnLine(g.Blue, g.Red, q); dist(q, p) < bestDist {
		best = p
	}

	return best
}

// AdjustForGamut moves xy inside the gamut if it is not already there,
// replacing the chromaticity with the nearest reproducible point. Brightness
// is never touched. Applying it twice is a no-op.
func AdjustForGamut(xy *XY, g Gamut) {
	p := Point{xy.X, xy.Y}
	if g.Contains(p) {
		return
	}

	p = g.ClosestPoint(p)
	xy.X = p.X
	xy.Y = p.Y
}
