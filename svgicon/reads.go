package svgicon

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/image/math/fixed"

	"svgrender/svgpath"
)

// This file implements the low level parsing of numbers, units and
// path data strings.

var errCommandUnknown = errors.New("unknown path command")

// pathCursor accumulates a path while reading SVG path data or shape
// attributes. curX, curY also act as the position offset set by a
// surrounding use element.
type pathCursor struct {
	path                   svgpath.Path
	points                 []float64
	curX, curY             float64
	cntlPtX, cntlPtY       float64
	pathStartX, pathStartY float64
	lastKey                uint8
	errorMode              ErrorMode
	inPath                 bool
}

func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// parseFloat strips an optional px suffix before parsing; lengths with
// other units go through parseUnit.
func parseFloat(s string, bitSize int) (float64, error) {
	val := strings.TrimSpace(s)
	val = strings.TrimSuffix(val, "px")
	return strconv.ParseFloat(val, bitSize)
}

// unitFactors gives the user-unit equivalent of the absolute CSS
// units, at the usual 96 dpi.
var unitFactors = map[string]float64{
	"px": 1,
	"pt": 96.0 / 72.0,
	"pc": 96.0 / 6.0,
	"in": 96.0,
	"cm": 96.0 / 2.54,
	"mm": 96.0 / 25.4,
}

// percentageReference selects the axis a percentage length is
// resolved against. Horizontal and vertical lengths must use their
// own axis: the two are never interchangeable.
type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// ParseLength resolves a length value to user units, percentages
// being taken against the given reference.
func ParseLength(s string, reference float64) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		return f / 100 * reference, err
	}
	for suffix, mult := range unitFactors {
		if strings.HasSuffix(s, suffix) {
			f, err := strconv.ParseFloat(strings.TrimSuffix(s, suffix), 64)
			return f * mult, err
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err
}

// parseUnit resolves a length against the viewBox, along the axis
// given by ref.
func (c *iconCursor) parseUnit(s string, ref percentageReference) (float64, error) {
	var reference float64
	switch ref {
	case widthPercentage:
		reference = c.icon.ViewBox.W
	case heightPercentage:
		reference = c.icon.ViewBox.H
	case diagPercentage:
		// https://www.w3.org/TR/SVG11/coords.html#Units
		reference = math.Hypot(c.icon.ViewBox.W, c.icon.ViewBox.H) / math.Sqrt2
	}
	return ParseLength(s, reference)
}

// getPoints parses a list of numbers in SVG format into c.points,
// dealing with the compressed forms path data allows ("10-5", "1e-4").
func (c *pathCursor) getPoints(dataPoints string) error {
	lastIndex := -1
	c.points = c.points[:0]
	lr := ' '
	for i, r := range dataPoints {
		if !unicode.IsNumber(r) && r != '.' && !(r == '-' && lr == 'e') && r != 'e' {
			if lastIndex != -1 {
				value, err := strconv.ParseFloat(dataPoints[lastIndex:i], 64)
				if err != nil {
					return err
				}
				c.points = append(c.points, value)
			}
			if r == '-' {
				lastIndex = i
			} else {
				lastIndex = -1
			}
		} else if lastIndex == -1 {
			lastIndex = i
		}
		lr = r
	}
	if lastIndex != -1 && lastIndex != len(dataPoints) {
		value, err := strconv.ParseFloat(dataPoints[lastIndex:], 64)
		if err != nil {
			return err
		}
		c.points = append(c.points, value)
	}
	return nil
}

// valsToAbs adds the current position to every value, turning a
// relative run into absolute coordinates.
func (c *pathCursor) valsToAbs(last float64) {
	for i := 0; i < len(c.points); i++ {
		last += c.points[i]
		c.points[i] = last
	}
}

// pointsToAbs turns runs of relative x,y pairs into absolute ones,
// sz values at a time.
func (c *pathCursor) pointsToAbs(sz int) {
	lastX, lastY := c.curX, c.curY
	for j := 0; j < len(c.points); j += sz {
		for i := 0; i < sz; i += 2 {
			c.points[i+j] += lastX
			c.points[i+1+j] += lastY
		}
		lastX, lastY = c.points[(j+sz)-2], c.points[(j+sz)-1]
	}
}

// hasSetsOrMore checks that the parsed points come in non-empty
// multiples of sz, converting relative runs on the way.
func (c *pathCursor) hasSetsOrMore(sz int, rel bool) bool {
	if !(len(c.points) >= sz && len(c.points)%sz == 0) {
		return false
	}
	if rel {
		c.pointsToAbs(sz)
	}
	return true
}

// reflectControlQuad reflects the last quadratic control point around
// the current point, or resets it if the previous command was not a
// quadratic.
func (c *pathCursor) reflectControlQuad() {
	switch c.lastKey {
	case 'q', 'Q', 'T', 't':
		c.cntlPtX, c.cntlPtY = 2*c.curX-c.cntlPtX, 2*c.curY-c.cntlPtY
	default:
		c.cntlPtX, c.cntlPtY = c.curX, c.curY
	}
}

// reflectControlCube is the cubic counterpart of reflectControlQuad.
func (c *pathCursor) reflectControlCube() {
	switch c.lastKey {
	case 'c', 'C', 's', 'S':
		c.cntlPtX, c.cntlPtY = 2*c.curX-c.cntlPtX, 2*c.curY-c.cntlPtY
	default:
		c.cntlPtX, c.cntlPtY = c.curX, c.curY
	}
}

// addArcFromA approximates the elliptical arc of an A command by a
// polyline and appends it to the path. Path data gives the rotation
// in degrees.
func (c *pathCursor) addArcFromA(points []float64) {
	start := svgpath.Point{X: c.curX, Y: c.curY}
	end := svgpath.Point{X: points[5], Y: points[6]}
	rotation := points[2] * math.Pi / 180
	c.path.AddArc(start, end, points[3] != 0, points[4] != 0, points[0], points[1], rotation)
	c.curX, c.curY = end.X, end.Y
}

// addSeg decodes and executes one path data segment: the command
// letter followed by its numbers.
func (c *pathCursor) addSeg(segString string) error {
	if err := c.getPoints(segString[1:]); err != nil {
		return err
	}
	l := len(c.points)
	k := segString[0]
	rel := false
	switch k {
	case 'z', 'Z':
		if l != 0 {
			return errParamMismatch
		}
		if c.inPath {
			c.path.Stop(true)
			c.curX, c.curY = c.pathStartX, c.pathStartY
			c.inPath = false
		}
	case 'm':
		rel = true
		fallthrough
	case 'M':
		if !c.hasSetsOrMore(2, rel) {
			return errParamMismatch
		}
		c.pathStartX, c.pathStartY = c.points[0], c.points[1]
		c.inPath = true
		c.path.Start(toFixedP(c.pathStartX, c.pathStartY))
		for i := 2; i < l-1; i += 2 {
			c.path.Line(toFixedP(c.points[i], c.points[i+1]))
		}
		c.curX, c.curY = c.points[l-2], c.points[l-1]
	case 'l':
		rel = true
		fallthrough
	case 'L':
		if !c.hasSetsOrMore(2, rel) {
			return errParamMismatch
		}
		for i := 0; i < l-1; i += 2 {
			c.path.Line(toFixedP(c.points[i], c.points[i+1]))
		}
		c.curX, c.curY = c.points[l-2], c.points[l-1]
	case 'v':
		c.valsToAbs(c.curY)
		fallthrough
	case 'V':
		if !c.hasSetsOrMore(1, false) {
			return errParamMismatch
		}
		for _, p := range c.points {
			c.path.Line(toFixedP(c.curX, p))
		}
		c.curY = c.points[l-1]
	case 'h':
		c.valsToAbs(c.curX)
		fallthrough
	case 'H':
		if !c.hasSetsOrMore(1, false) {
			return errParamMismatch
		}
		for _, p := range c.points {
			c.path.Line(toFixedP(p, c.curY))
		}
		c.curX = c.points[l-1]
	case 'q':
		rel = true
		fallthrough
	case 'Q':
		if !c.hasSetsOrMore(4, rel) {
			return errParamMismatch
		}
		for i := 0; i < l-3; i += 4 {
			c.path.QuadBezier(
				toFixedP(c.points[i], c.points[i+1]),
				toFixedP(c.points[i+2], c.points[i+3]))
			c.cntlPtX, c.cntlPtY = c.points[i], c.points[i+1]
			c.curX, c.curY = c.points[i+2], c.points[i+3]
		}
	case 't':
		rel = true
		fallthrough
	case 'T':
		if !c.hasSetsOrMore(2, rel) {
			return errParamMismatch
		}
		for i := 0; i < l-1; i += 2 {
			c.reflectControlQuad()
			c.path.QuadBezier(
				toFixedP(c.cntlPtX, c.cntlPtY),
				toFixedP(c.points[i], c.points[i+1]))
			c.lastKey = k
			c.curX, c.curY = c.points[i], c.points[i+1]
		}
	case 'c':
		rel = true
		fallthrough
	case 'C':
		if !c.hasSetsOrMore(6, rel) {
			return errParamMismatch
		}
		for i := 0; i < l-5; i += 6 {
			c.path.CubeBezier(
				toFixedP(c.points[i], c.points[i+1]),
				toFixedP(c.points[i+2], c.points[i+3]),
				toFixedP(c.points[i+4], c.points[i+5]))
			c.cntlPtX, c.cntlPtY = c.points[i+2], c.points[i+3]
			c.curX, c.curY = c.points[i+4], c.points[i+5]
		}
	case 's':
		rel = true
		fallthrough
	case 'S':
		if !c.hasSetsOrMore(4, rel) {
			return errParamMismatch
		}
		for i := 0; i < l-3; i += 4 {
			c.reflectControlCube()
			c.path.CubeBezier(
				toFixedP(c.cntlPtX, c.cntlPtY),
				toFixedP(c.points[i], c.points[i+1]),
				toFixedP(c.points[i+2], c.points[i+3]))
			c.lastKey = k
			c.cntlPtX, c.cntlPtY = c.points[i], c.points[i+1]
			c.curX, c.curY = c.points[i+2], c.points[i+3]
		}
	case 'a', 'A':
		if !c.hasSetsOrMore(7, false) {
			return errParamMismatch
		}
		for i := 0; i < l-6; i += 7 {
			if k == 'a' {
				c.points[i+5] += c.curX
				c.points[i+6] += c.curY
			}
			c.addArcFromA(c.points[i:])
		}
	default:
		return errCommandUnknown
	}
	c.lastKey = k
	return nil
}

// compilePath translates the svgPath description string into the
// cursor's path. All valid SVG path elements are interpreted;
// elliptical arcs are approximated by polylines.
func (c *pathCursor) compilePath(svgPath string) error {
	lastIndex := -1
	c.inPath = false
	for i, v := range svgPath {
		if unicode.IsLetter(v) && v != 'e' && v != 'E' {
			if lastIndex != -1 {
				if err := c.addSeg(svgPath[lastIndex:i]); err != nil {
					return err
				}
			}
			lastIndex = i
		}
	}
	if lastIndex != -1 {
		if err := c.addSeg(svgPath[lastIndex:]); err != nil {
			return err
		}
	}
	return nil
}
