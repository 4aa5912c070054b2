// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package svg

import (
	"fmt"
	"math"
	"strings"
)

// Matrix is a 2D affine transform in the SVG convention:
// x' = A*x + C*y + E, y' = B*x + D*y + F.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the no-op transform.
var Identity = Matrix{A: 1, D: 1}

// Mul returns the product m*n: the transform that applies n first, then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// RotationDeg returns the rotation the matrix applies, in degrees.
func (m Matrix) RotationDeg() float64 {
	return math.Atan2(m.B, m.A) * 180 / math.Pi
}

// Translation returns a translation by (tx, ty).
func Translation(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, E: tx, F: ty}
}

// Scaling returns a scaling by (sx, sy).
func Scaling(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Rotation returns a rotation about the origin, in degrees.
func Rotation(deg float64) Matrix {
	rad := deg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// ParseTransform parses a transform attribute: a sequence of matrix,
// translate, scale, rotate, skewX, and skewY operations, composed left to
// right as SVG nests them.
func ParseTransform(s string) (Matrix, error) {
	m := Identity
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		end := strings.IndexByte(rest, ')')
		if open < 0 || end < open {
			return Identity, fmt.Errorf("malformed transform %q", s)
		}
		op := strings.ToLower(strings.TrimSpace(rest[:open]))
		args, err := splitNumbers(rest[open+1 : end])
		if err != nil {
			return Identity, fmt.Errorf("transform %q: %w", s, err)
		}
		step, err := transformOp(op, args)
		if err != nil {
			return Identity, fmt.Errorf("transform %q: %w", s, err)
		}
		m = m.Mul(step)
		rest = strings.TrimSpace(rest[end+1:])
		rest = strings.TrimSpace(strings.TrimPrefix(rest, ","))
	}
	return m, nil
}

func transformOp(op string, args []float64) (Matrix, error) {
	switch op {
	case "matrix":
		if len(args) != 6 {
			break
		}
		return Matrix{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}, nil
	case "translate":
		switch len(args) {
		case 1:
			return Translation(args[0], 0), nil
		case 2:
			return Translation(args[0], args[1]), nil
		}
	case "scale":
		switch len(args) {
		case 1:
			return Scaling(args[0], args[0]), nil
		case 2:
			return Scaling(args[0], args[1]), nil
		}
	case "rotate":
		switch len(args) {
		case 1:
			return Rotation(args[0]), nil
		case 3:
			cx, cy := args[1], args[2]
			return Translation(cx, cy).Mul(Rotation(args[0])).Mul(Translation(-cx, -cy)), nil
		}
	case "skewx":
		if len(args) == 1 {
			return Matrix{A: 1, C: math.Tan(args[0] * math.Pi / 180), D: 1}, nil
		}
	case "skewy":
		if len(args) == 1 {
			return Matrix{A: 1, B: math.Tan(args[0] * math.Pi / 180), D: 1}, nil
		}
	default:
		return Identity, fmt.Errorf("unsupported operation %q", op)
	}
	return Identity, fmt.Errorf("wrong argument count for %q", op)
}
