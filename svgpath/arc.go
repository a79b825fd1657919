package svgpath

import "math"

// This file implements the approximation of elliptical arc segments
// by polylines, following the endpoint to center conversion of the
// SVG specification (W3C, appendix F.6.5).

// epsilon is the tolerance used for the degenerate arc checks below.
// It plays no role in the angle or sampling math.
const epsilon = 1e-7

// Point is a position in user space.
type Point struct {
	X, Y float64
}

// ApproximateArc transforms an elliptical arc segment, given in the
// endpoint parameterization of SVG path data, into a polyline.
// The returned points include both endpoints.
//
// Degenerate inputs have a defined output rather than an error:
// coincident endpoints yield an empty polyline, and a vanishing
// radius yields the straight segment [start, end].
func ApproximateArc(start, end Point, large, sweep bool, rx, ry, xRotation float64) []Point {
	if math.Abs(start.X-end.X) < epsilon && math.Abs(start.Y-end.Y) < epsilon {
		return nil
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx < epsilon || ry < epsilon {
		return []Point{start, end}
	}

	cosA, sinA := math.Cos(xRotation), math.Sin(xRotation)

	// Half-difference of the endpoints, rotated into the frame of the
	// unrotated ellipse (F.6.5.1).
	dx2 := (start.X - end.X) / 2
	dy2 := (start.Y - end.Y) / 2
	x1p := cosA*dx2 + sinA*dy2
	y1p := -sinA*dx2 + cosA*dy2

	// Center in the local frame (F.6.5.2). The discriminant may dip
	// slightly below zero from floating point noise when the endpoints
	// sit exactly a diameter apart; taking the absolute value absorbs
	// that instead of producing a NaN.
	rxSq, rySq := rx*rx, ry*ry
	x1pSq, y1pSq := x1p*x1p, y1p*y1p
	num := rxSq*rySq - rxSq*y1pSq - rySq*x1pSq
	den := rxSq*y1pSq + rySq*x1pSq
	factor := math.Sqrt(math.Abs(num / den))
	if large == sweep {
		factor = -factor
	}
	cxp := factor * rx * y1p / ry
	cyp := -factor * ry * x1p / rx

	// Back to the original frame (F.6.5.3).
	cx := cosA*cxp - sinA*cyp + (start.X+end.X)/2
	cy := sinA*cxp + cosA*cyp + (start.Y+end.Y)/2

	// Start angle and angular sweep (F.6.5.5, F.6.5.6).
	ux := (x1p - cxp) / rx
	uy := (y1p - cyp) / ry
	vx := (-x1p - cxp) / rx
	vy := (-y1p - cyp) / ry
	theta := vectorAngle(1, 0, ux, uy)
	delta := vectorAngle(ux, uy, vx, vy)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	// Sample density couples the angular span with the pixel-space
	// size of the segment, so long curved segments get more points.
	manhattan := math.Abs(start.X-end.X) + math.Abs(start.Y-end.Y)
	numSteps := int(math.Ceil(math.Abs(delta) * manhattan))
	if numSteps < 2 {
		numSteps = 2
	}

	points := make([]Point, 0, numSteps+1)
	for i := 0; i <= numSteps; i++ {
		eta := theta + delta*float64(i)/float64(numSteps)
		px := rx * math.Cos(eta)
		py := ry * math.Sin(eta)
		points = append(points, Point{
			X: cx + cosA*px - sinA*py,
			Y: cy + sinA*px + cosA*py,
		})
	}
	return points
}

// vectorAngle returns the signed angle from vector u to vector v,
// the sign being that of the 2-D cross product.
func vectorAngle(ux, uy, vx, vy float64) float64 {
	dot := ux*vx + uy*vy
	mag := math.Sqrt((ux*ux + uy*uy) * (vx*vx + vy*vy))
	ratio := dot / mag
	// clamp against roundoff before acos
	if ratio > 1 {
		ratio = 1
	} else if ratio < -1 {
		ratio = -1
	}
	angle := math.Acos(ratio)
	if ux*vy-uy*vx < 0 {
		return -angle
	}
	return angle
}
