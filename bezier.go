// github.com/edmundmk/font-slicer - slice glyph outlines for GPU rasterization
// Copyright (C) 2026  Edmund Kapusniak
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package slicer

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Tolerances fixed by the algorithm, not user configuration.
const (
	splitEpsilon = 0.01  // reject edge splits within this distance of an endpoint
	solveEpsilon = 1e-4  // degeneracy threshold for the quadratic/cubic solvers
	cornerCos    = 0.992114701314478 // cos(0.02*tau): below this, tangents form a corner
	maxError     = 2.5   // approximation error tolerance, design units
	minSplit     = 10.0  // minimum slice height before giving up on splitting
	errorSamples = 16    // sample count used to estimate approximation error
)

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

func normalize(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// Line is a degree-1 Bezier segment.
type Line struct {
	P0, P1 vec.Vec2
}

// Quad is a degree-2 Bezier segment (the only curve kind that survives to
// the glyph's output slices).
type Quad struct {
	P0, P1, P2 vec.Vec2
}

// Cubic is a degree-3 Bezier segment.
type Cubic struct {
	P0, P1, P2, P3 vec.Vec2
}

// QuadFromLine elevates a line to a quadratic with the same shape.
func QuadFromLine(l Line) Quad {
	return Quad{l.P0, lerp(l.P0, l.P1, 0.5), l.P1}
}

// CubicFromLine elevates a line to a cubic with the same shape.
func CubicFromLine(l Line) Cubic {
	return Cubic{l.P0, lerp(l.P0, l.P1, 1.0/3.0), lerp(l.P0, l.P1, 2.0/3.0), l.P1}
}

// CubicFromQuad elevates a quadratic to a cubic with the same shape.
func CubicFromQuad(q Quad) Cubic {
	return Cubic{
		q.P0,
		q.P0.Add(q.P1.Sub(q.P0).Mul(2.0 / 3.0)),
		q.P2.Add(q.P1.Sub(q.P2).Mul(2.0 / 3.0)),
		q.P2,
	}
}

func (l Line) Evaluate(t float64) vec.Vec2 {
	return lerp(l.P0, l.P1, t)
}

func (l Line) Split(t float64) (Line, Line) {
	q := lerp(l.P0, l.P1, t)
	return Line{l.P0, q}, Line{q, l.P1}
}

// Derivative returns the (constant) tangent direction as a vector.
func (l Line) Derivative() vec.Vec2 {
	return l.P1.Sub(l.P0)
}

func (l Line) IsMonotonicX() bool { return true }
func (l Line) IsMonotonicY() bool { return true }

func (l Line) SolveX(x float64) []float64 {
	return solveLinear(l.P0.X, l.P1.X, x)
}

func (l Line) SolveY(y float64) []float64 {
	return solveLinear(l.P0.Y, l.P1.Y, y)
}

func solveLinear(p0, p1, v float64) []float64 {
	q := p1 - p0
	if q == 0 {
		return nil
	}
	t := (v - p0) / q
	if t < 0 || t > 1 {
		return nil
	}
	return []float64{t}
}

func (q Quad) Evaluate(t float64) vec.Vec2 {
	q01 := lerp(q.P0, q.P1, t)
	q12 := lerp(q.P1, q.P2, t)
	return lerp(q01, q12, t)
}

func (q Quad) Split(t float64) (Quad, Quad) {
	q01 := lerp(q.P0, q.P1, t)
	q12 := lerp(q.P1, q.P2, t)
	m := lerp(q01, q12, t)
	return Quad{q.P0, q01, m}, Quad{m, q12, q.P2}
}

func (q Quad) Derivative() Line {
	return Line{
		q.P1.Sub(q.P0).Mul(2),
		q.P2.Sub(q.P1).Mul(2),
	}
}

// IsMonotonicX and IsMonotonicY are conservatively false for quadratics; the
// pipeline always splits quadratics at their y-extremum (C5) before relying
// on monotonicity, so an exact test is never needed.
func (q Quad) IsMonotonicX() bool { return false }
func (q Quad) IsMonotonicY() bool { return false }

func (q Quad) SolveX(x float64) []float64 {
	return solveQuadratic(q.P0.X, q.P1.X, q.P2.X, x)
}

func (q Quad) SolveY(y float64) []float64 {
	return solveQuadratic(q.P0.Y, q.P1.Y, q.P2.Y, y)
}

func solveQuadratic(p0, p1, p2, v float64) []float64 {
	a := p0 - 2*p1 + p2
	b := -2*p0 + 2*p1
	c := p0 - v

	if math.Abs(a) < solveEpsilon {
		// Degenerate: bt + c = 0. One root (possibly out of range, but the
		// original solver does not check here and neither do we).
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}

	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	d = math.Sqrt(d)

	var out []float64
	t0 := (-b - d) / (2 * a)
	t1 := (-b + d) / (2 * a)
	if t0 >= 0 && t0 <= 1 {
		out = append(out, t0)
	}
	if t1 >= 0 && t1 <= 1 {
		out = append(out, t1)
	}
	return out
}

func (c Cubic) Evaluate(t float64) vec.Vec2 {
	q01 := lerp(c.P0, c.P1, t)
	q12 := lerp(c.P1, c.P2, t)
	q23 := lerp(c.P2, c.P3, t)
	q012 := lerp(q01, q12, t)
	q123 := lerp(q12, q23, t)
	return lerp(q012, q123, t)
}

func (c Cubic) Split(t float64) (Cubic, Cubic) {
	q01 := lerp(c.P0, c.P1, t)
	q12 := lerp(c.P1, c.P2, t)
	q23 := lerp(c.P2, c.P3, t)
	q012 := lerp(q01, q12, t)
	q123 := lerp(q12, q23, t)
	m := lerp(q012, q123, t)
	return Cubic{c.P0, q01, q012, m}, Cubic{m, q123, q23, c.P3}
}

func (c Cubic) Derivative() Quad {
	return Quad{
		c.P1.Sub(c.P0).Mul(3),
		c.P2.Sub(c.P1).Mul(3),
		c.P3.Sub(c.P2).Mul(3),
	}
}

func isMonotonic(f, g float64) bool {
	if f < 0 || g < 0 {
		return false
	}
	if g <= 2.0/3.0-f {
		return true
	}
	if g <= 1-2*f {
		return true
	}
	if g <= 0.5-0.5*f {
		return true
	}
	lhs := 2*g + f - 2
	return lhs*lhs <= -3*f*f+4*f
}

func (c Cubic) IsMonotonicX() bool {
	f := (c.P1.X - c.P0.X) / (c.P3.X - c.P0.X)
	g := (c.P3.X - c.P2.X) / (c.P3.X - c.P0.X)
	return isMonotonic(f, g)
}

func (c Cubic) IsMonotonicY() bool {
	f := (c.P1.Y - c.P0.Y) / (c.P3.Y - c.P0.Y)
	g := (c.P3.Y - c.P2.Y) / (c.P3.Y - c.P0.Y)
	return isMonotonic(f, g)
}

func (c Cubic) SolveX(x float64) []float64 {
	f := (c.P1.X - c.P0.X) / (c.P3.X - c.P0.X)
	g := (c.P3.X - c.P2.X) / (c.P3.X - c.P0.X)
	v := (x - c.P0.X) / (c.P3.X - c.P0.X)
	return solveCubic(f, g, v)
}

func (c Cubic) SolveY(y float64) []float64 {
	f := (c.P1.Y - c.P0.Y) / (c.P3.Y - c.P0.Y)
	g := (c.P3.Y - c.P2.Y) / (c.P3.Y - c.P0.Y)
	v := (y - c.P0.Y) / (c.P3.Y - c.P0.Y)
	return solveCubic(f, g, v)
}

// solveCubic solves for t given the normalized control ordinates f, g and
// target value v, following the substitution in the original cubic solver:
// a cubic Bezier's component reduces to a cubic in t once normalized by its
// endpoints, with coefficients expressed via f and g.
func solveCubic(f, g, v float64) []float64 {
	d := 3*f + 3*g - 2
	n := 2*f + g - 1

	if math.Abs(d) < solveEpsilon {
		if math.Abs(n) < solveEpsilon {
			// Curve is linear: 3ft - v = 0.
			if f == 0 {
				return nil
			}
			return []float64{v / (3 * f)}
		}

		// Curve is quadratic: -3nt^2 + 3ft - v = 0.
		a := -3.0 * n
		b := 3.0 * f
		c := -v
		disc := b*b - 4*a*c
		if disc < 0 {
			return nil
		}
		sq := math.Sqrt(disc)
		t0 := (-b + sq) / (2.0 * a)
		t1 := (-b - sq) / (2.0 * a)

		var out []float64
		if t0 >= 0 && t0 <= 1 {
			out = append(out, t0)
		}
		if t1 >= 0 && t1 <= 1 {
			out = append(out, t1)
		}
		return out
	}

	r := (n*n - f*d) / (d * d)
	q := (3*f*d*n-2*n*n*n)/(d*d*d) - v/d
	disc := q*q - 4*r*r*r

	var out []float64
	if disc > 0 {
		var w3 float64
		if q > 0 {
			w3 = (-q - math.Sqrt(disc)) * 0.5
		} else {
			w3 = (-q + math.Sqrt(disc)) * 0.5
		}
		w := math.Cbrt(w3)
		u := w + r/w
		t := u + n/d
		if t >= 0 && t <= 1 {
			out = append(out, t)
		}
		return out
	}

	theta := math.Acos(-q / (2 * math.Sqrt(r*r*r)))
	phi0 := theta / 3
	phi1 := (theta + tau) / 3
	phi2 := (theta + 2*tau) / 3

	sqrtR := math.Sqrt(r)
	nOverD := n / d

	t0 := 2*sqrtR*math.Cos(phi0) + nOverD
	t1 := 2*sqrtR*math.Cos(phi1) + nOverD
	t2 := 2*sqrtR*math.Cos(phi2) + nOverD

	if t0 >= 0 && t0 <= 1 {
		out = append(out, t0)
	}
	if t1 >= 0 && t1 <= 1 {
		out = append(out, t1)
	}
	// The source bounds this third root with "<= 2", which admits values
	// past the end of the curve; the valid range for a parameter is [0,1].
	if t2 >= 0 && t2 <= 1 {
		out = append(out, t2)
	}
	return out
}

const tau = 2 * math.Pi

// SelfIntersection finds the single self-crossing of a cubic, if it has one,
// returning the two parameter values at which the curve meets itself.
func (c Cubic) SelfIntersection() (t0, t1 float64, ok bool) {
	h := c.Derivative()

	g0 := h.P0.X
	gl := h.P1.X - h.P0.X
	gm := h.P2.X - 2*h.P1.X + h.P0.X

	h0 := h.P0.Y
	hl := h.P1.Y - h.P0.Y
	hm := h.P2.Y - 2*h.P1.Y + h.P0.Y

	// A crossing at u-v, u+v makes both coordinates' integrals over that span
	// vanish: 2*gl*u + gm*w = -g0 and 2*hl*u + hm*w = -h0, with w = u^2 + v^2/3.
	det := 2 * (gl*hm - hl*gm)
	if det == 0 {
		return 0, 0, false
	}

	u := (h0*gm - g0*hm) / det
	w := 2 * (hl*g0 - gl*h0) / det
	vsq := 3 * (w - u*u)
	if vsq < 0 {
		return 0, 0, false
	}
	v := math.Sqrt(vsq)

	t0, t1 = u-v, u+v
	if t0 < 0 || t0 > 1 || t1 < 0 || t1 > 1 {
		return 0, 0, false
	}
	return t0, t1, true
}
