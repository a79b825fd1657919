package svgpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// This file implements the transformation from
// high level shapes to their path equivalent

// toFixedP converts two floats to a fixed point.
func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// AddArc appends the polyline approximation of an elliptical arc going
// from start to end. The current point of the path is expected to be
// start; a degenerate radius falls back to a straight segment and
// coincident endpoints add nothing.
func (p *Path) AddArc(start, end Point, large, sweep bool, rx, ry, xRotation float64) {
	points := ApproximateArc(start, end, large, sweep, rx, ry, xRotation)
	for i, pt := range points {
		if i == 0 {
			continue // the current point
		}
		p.Line(toFixedP(pt.X, pt.Y))
	}
}

// AddEllipse adds an ellipse centered at cx, cy as a closed subpath,
// built from two half arcs.
func (p *Path) AddEllipse(cx, cy, rx, ry float64) {
	right := Point{X: cx + rx, Y: cy}
	left := Point{X: cx - rx, Y: cy}
	p.Start(toFixedP(right.X, right.Y))
	p.AddArc(right, left, false, true, rx, ry, 0)
	p.AddArc(left, right, false, true, rx, ry, 0)
	p.Stop(true)
}

// AddRect adds a rectangle of the indicated size, rotated
// around the center by rot degrees.
func (p *Path) AddRect(minX, minY, maxX, maxY, rot float64) {
	rot *= math.Pi / 180
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	m := Identity.Translate(cx, cy).Rotate(rot).Translate(-cx, -cy)
	q := &matrixAdder{M: m, path: p}
	q.Start(toFixedP(minX, minY))
	q.Line(toFixedP(maxX, minY))
	q.Line(toFixedP(maxX, maxY))
	q.Line(toFixedP(minX, maxY))
	q.path.Stop(true)
}

// AddRoundRect adds a rectangle of the indicated size, rotated
// around the center by rot degrees, with rounded corners of radius
// rx in the x axis and ry in the y axis.
func (p *Path) AddRoundRect(minX, minY, maxX, maxY, rx, ry, rot float64) {
	if rx <= 0 || ry <= 0 {
		p.AddRect(minX, minY, maxX, maxY, rot)
		return
	}
	rot *= math.Pi / 180

	if w := maxX - minX; w < rx*2 {
		rx = w / 2
	}
	if h := maxY - minY; h < ry*2 {
		ry = h / 2
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	m := Identity.Translate(cx, cy).Rotate(rot).Translate(-cx, -cy)
	q := &matrixAdder{M: m, path: p}

	q.Start(toFixedP(minX+rx, minY))
	q.Line(toFixedP(maxX-rx, minY))
	q.arc(Point{X: maxX - rx, Y: minY}, Point{X: maxX, Y: minY + ry}, rx, ry)
	q.Line(toFixedP(maxX, maxY-ry))
	q.arc(Point{X: maxX, Y: maxY - ry}, Point{X: maxX - rx, Y: maxY}, rx, ry)
	q.Line(toFixedP(minX+rx, maxY))
	q.arc(Point{X: minX + rx, Y: maxY}, Point{X: minX, Y: maxY - ry}, rx, ry)
	q.Line(toFixedP(minX, minY+ry))
	q.arc(Point{X: minX, Y: minY + ry}, Point{X: minX + rx, Y: minY}, rx, ry)
	q.path.Stop(true)
}

// arc adds a quarter corner arc, transformed by the adder matrix.
func (t *matrixAdder) arc(from, to Point, rx, ry float64) {
	points := ApproximateArc(from, to, false, true, rx, ry, 0)
	for i, pt := range points {
		if i == 0 {
			continue
		}
		t.Line(toFixedP(pt.X, pt.Y))
	}
}
