package svgpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Matrix2D is a 2-D affine transform, laid out like the rasterx
// matrix so the two convert directly:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a times b.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate returns a translated by x, y.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale returns a scaled by x, y.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate returns a rotated by theta radians.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	cos, sin := math.Cos(theta), math.Sin(theta)
	return a.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// SkewX returns a skewed along the x axis by theta radians.
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, math.Tan(theta), 1, 0, 0})
}

// SkewY returns a skewed along the y axis by theta radians.
func (a Matrix2D) SkewY(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, math.Tan(theta), 0, 1, 0, 0})
}

// Transform applies the matrix to the point x, y.
func (a Matrix2D) Transform(x, y float64) (float64, float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}

func (a Matrix2D) trFixed(p fixed.Point26_6) fixed.Point26_6 {
	x, y := a.Transform(float64(p.X)/64, float64(p.Y)/64)
	return toFixedP(x, y)
}

// TrMove transforms a MoveTo operation.
func (a Matrix2D) TrMove(op MoveTo) fixed.Point26_6 { return a.trFixed(fixed.Point26_6(op)) }

// TrLine transforms a LineTo operation.
func (a Matrix2D) TrLine(op LineTo) fixed.Point26_6 { return a.trFixed(fixed.Point26_6(op)) }

// TrQuad transforms a QuadTo operation.
func (a Matrix2D) TrQuad(op QuadTo) (b, c fixed.Point26_6) {
	return a.trFixed(op[0]), a.trFixed(op[1])
}

// TrCubic transforms a CubicTo operation.
func (a Matrix2D) TrCubic(op CubicTo) (b, c, d fixed.Point26_6) {
	return a.trFixed(op[0]), a.trFixed(op[1]), a.trFixed(op[2])
}

// matrixAdder applies a transform to each point before forwarding it
// to the underlying path.
type matrixAdder struct {
	M    Matrix2D
	path *Path
}

func (t *matrixAdder) Start(a fixed.Point26_6) { t.path.Start(t.M.trFixed(a)) }
func (t *matrixAdder) Line(b fixed.Point26_6)  { t.path.Line(t.M.trFixed(b)) }
