package geometry

import (
	"math"
	"strconv"
	"strings"
)

// Matrix is a 3x3 row-major matrix in homogeneous 2D coordinates. The bottom
// row stays [0,0,1] for every affine transform built here.
type Matrix [3][3]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Translate(0, 0)
}

// Translate returns a translation by (x, y).
func Translate(x, y float64) Matrix {
	return Matrix{
		{1, 0, x},
		{0, 1, y},
		{0, 0, 1},
	}
}

// Rotate returns a rotation by the given angle in degrees, standard trig
// sense.
func Rotate(degrees float64) Matrix {
	rad := degrees * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Matrix{
		{cos, -sin, 0},
		{sin, cos, 0},
		{0, 0, 1},
	}
}

// Scale returns a non-uniform scale by (x, y).
func Scale(x, y float64) Matrix {
	return Matrix{
		{x, 0, 0},
		{0, y, 0},
		{0, 0, 1},
	}
}

// Mirror returns a reflection. With x set the horizontal axis is negated,
// otherwise the vertical one.
func Mirror(x bool) Matrix {
	if x {
		return Scale(-1, 1)
	}
	return Scale(1, -1)
}

// Flip returns a vertical mirror about the horizontal midline of a frame of
// the given width: translate by (w, 0), then mirror the x axis.
func Flip(width float64) Matrix {
	return Identity().Mul(Translate(width, 0)).Mul(Mirror(true))
}

// Flop returns a horizontal mirror about the vertical midline of a frame of
// the given height: translate by (0, h), then mirror the y axis.
func Flop(height float64) Matrix {
	return Identity().Mul(Translate(0, height)).Mul(Mirror(false))
}

// Mul returns m * other.
func (m Matrix) Mul(other Matrix) Matrix {
	var out Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += m[i][k] * other[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// MulVec returns m * v for a homogeneous 3-vector.
func (m Matrix) MulVec(v [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i] += m[i][j] * v[j]
		}
	}
	return out
}

// Transpose returns the transposed matrix.
func (m Matrix) Transpose() Matrix {
	var out Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// CSV flattens the matrix to row-major comma-separated text.
func (m Matrix) CSV() string {
	parts := make([]string, 0, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			parts = append(parts, FormatFloat(m[i][j]))
		}
	}
	return strings.Join(parts, ",")
}

// WarpCSV is the matrix layout the oiiotool warp operator consumes: the
// composed matrix transposed, then flattened row-major.
func (m Matrix) WarpCSV() string {
	return m.Transpose().CSV()
}

// Calculate composes a single reposition node:
//
//	translate(t) * translate(c) * scale(s) * rotate(r) * translate(-c)
//
// so scale and rotation pivot about the center while the translation applies
// in the outer frame.
func Calculate(translate [2]float64, rotate float64, scale [2]float64, center [2]float64) Matrix {
	result := Translate(translate[0], translate[1])
	result = result.Mul(Translate(center[0], center[1]))
	result = result.Mul(Scale(scale[0], scale[1]))
	result = result.Mul(Rotate(rotate))
	result = result.Mul(Translate(-center[0], -center[1]))
	return result
}

// Chain composes an ordered stack of node matrices into one. Nodes are
// traversed in reverse stack order: a later node's transform applies in the
// frame produced by the earlier ones. The optional flip and flop matrices
// bracket the node run, converting between upper-left and lower-left image
// origins on the way in and out.
func Chain(nodes []Matrix, width, height float64, flip, flop bool) Matrix {
	chain := make([]Matrix, 0, len(nodes)+4)
	if flip {
		chain = append(chain, Flip(width))
	}
	if flop {
		chain = append(chain, Flop(height))
	}
	for i := len(nodes) - 1; i >= 0; i-- {
		chain = append(chain, nodes[i])
	}
	if flop {
		chain = append(chain, Flop(height))
	}
	if flip {
		chain = append(chain, Flip(width))
	}

	result := Identity()
	for _, m := range chain {
		result = result.Mul(m)
	}
	return result
}

// CornerPin maps the four corners of a width x height rectangle through the
// matrix with a perspective divide. Corner ordering depends on the image
// origin: upper-left origin orders (0,h),(w,h),(0,0),(w,0); lower-left
// orders (0,0),(w,0),(0,h),(w,h).
func CornerPin(m Matrix, width, height float64, originUpperLeft bool) []float64 {
	var corners [4][3]float64
	if originUpperLeft {
		corners = [4][3]float64{
			{0, height, 1},
			{width, height, 1},
			{0, 0, 1},
			{width, 0, 1},
		}
	} else {
		corners = [4][3]float64{
			{0, 0, 1},
			{width, 0, 1},
			{0, height, 1},
			{width, height, 1},
		}
	}

	pin := make([]float64, 0, 8)
	for _, corner := range corners {
		mapped := m.MulVec(corner)
		pin = append(pin, mapped[0]/mapped[2], mapped[1]/mapped[2])
	}
	return pin
}

// FormatFloat renders a float with a decimal point or exponent always
// present, so downstream CSV consumers parse every field as floating point.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !math.IsInf(v, 0) && !math.IsNaN(v) {
		s += ".0"
	}
	return s
}
