package svgpath

import (
	"math"
	"testing"
)

func dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func TestArcEndpoints(t *testing.T) {
	for _, c := range []struct {
		start, end   Point
		large, sweep bool
		rx, ry, rot  float64
	}{
		{Point{0, 0}, Point{10, 0}, false, true, 5, 5, 0},
		{Point{0, 0}, Point{10, 0}, false, false, 5, 5, 0},
		{Point{0, 0}, Point{10, 0}, true, true, 8, 5, 0},
		{Point{-3, 4}, Point{7, -2}, true, false, 12, 9, math.Pi / 6},
		{Point{1, 1}, Point{2, 3}, false, true, 40, 20, math.Pi / 3},
	} {
		points := ApproximateArc(c.start, c.end, c.large, c.sweep, c.rx, c.ry, c.rot)
		if len(points) < 3 {
			t.Fatalf("arc %v -> %v: got %d points", c.start, c.end, len(points))
		}
		if d := dist(points[0], c.start); d > 1e-6 {
			t.Errorf("arc %v -> %v: first point off by %g", c.start, c.end, d)
		}
		if d := dist(points[len(points)-1], c.end); d > 1e-6 {
			t.Errorf("arc %v -> %v: last point off by %g", c.start, c.end, d)
		}
		for _, p := range points {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) {
				t.Fatalf("arc %v -> %v: NaN point", c.start, c.end)
			}
		}
	}
}

func TestArcDegenerate(t *testing.T) {
	// coincident endpoints: nothing to draw
	if points := ApproximateArc(Point{3, 3}, Point{3, 3}, true, true, 5, 5, 0); len(points) != 0 {
		t.Errorf("coincident endpoints: got %d points, want 0", len(points))
	}
	// vanishing radius: straight segment
	points := ApproximateArc(Point{0, 0}, Point{10, 4}, false, false, 0, 5, 0)
	if len(points) != 2 || points[0] != (Point{0, 0}) || points[1] != (Point{10, 4}) {
		t.Errorf("zero radius: got %v, want the [start end] segment", points)
	}
	// negative radii behave as their absolute value
	pos := ApproximateArc(Point{0, 0}, Point{10, 0}, false, true, 5, 5, 0)
	neg := ApproximateArc(Point{0, 0}, Point{10, 0}, false, true, -5, -5, 0)
	if len(pos) != len(neg) {
		t.Fatalf("negative radii: %d points vs %d", len(neg), len(pos))
	}
	for i := range pos {
		if dist(pos[i], neg[i]) > 1e-9 {
			t.Fatalf("negative radii diverge at point %d: %v vs %v", i, neg[i], pos[i])
		}
	}
}

func TestArcSemicircle(t *testing.T) {
	// endpoints a diameter apart: the factor term vanishes and the
	// center is the midpoint
	center := Point{5, 0}
	points := ApproximateArc(Point{0, 0}, Point{10, 0}, false, true, 5, 5, 0)
	for _, p := range points {
		if d := math.Abs(dist(p, center) - 5); d > 1e-6 {
			t.Fatalf("point %v is %g away from the circle", p, d)
		}
	}
	mid := points[len(points)/2]
	if math.Abs(math.Abs(mid.Y)-5) > 1e-6 {
		t.Errorf("semicircle midpoint %v should sit at the apex", mid)
	}

	// flipping the sweep flag selects the other half of the circle
	flipped := ApproximateArc(Point{0, 0}, Point{10, 0}, false, false, 5, 5, 0)
	flippedMid := flipped[len(flipped)/2]
	if mid.Y*flippedMid.Y >= 0 {
		t.Errorf("sweep flip: midpoints %v and %v are on the same side", mid, flippedMid)
	}
}

func TestArcOutOfRangeRadii(t *testing.T) {
	// radii too small for the chord make the center discriminant
	// negative; the guard keeps the output finite
	points := ApproximateArc(Point{0, 0}, Point{100, 0}, false, true, 5, 5, 0)
	if len(points) < 3 {
		t.Fatalf("got %d points", len(points))
	}
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			t.Fatalf("non-finite point %v", p)
		}
	}
}

func TestArcSampleDensity(t *testing.T) {
	// a long segment must be sampled finer than a short one with the
	// same angular span
	long := ApproximateArc(Point{0, 0}, Point{1000, 0}, false, true, 500, 500, 0)
	short := ApproximateArc(Point{0, 0}, Point{10, 0}, false, true, 5, 5, 0)
	if len(long) <= len(short) {
		t.Errorf("sampling: %d points for the long arc, %d for the short one", len(long), len(short))
	}
}
