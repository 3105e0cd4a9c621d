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

import "math"

// IntersectionPoint is a single intersection between two cubics, given as a
// parameter value on each curve.
type IntersectionPoint struct {
	TA, TB float64
}

// invEps controls the subdivision-depth estimate; it is the reciprocal of
// the target flatness, expressed as a power of two (Graphics Gems 4).
const invEps = float64(int(1) << 14)

func log4(x float64) float64 {
	return 0.5 * math.Log2(x)
}

type bbox struct {
	minX, minY, maxX, maxY float64
}

func cubicBBox(c Cubic) bbox {
	b := bbox{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, p := range [4]struct{ X, Y float64 }{
		{c.P0.X, c.P0.Y}, {c.P1.X, c.P1.Y}, {c.P2.X, c.P2.Y}, {c.P3.X, c.P3.Y},
	} {
		if p.X < b.minX {
			b.minX = p.X
		}
		if p.Y < b.minY {
			b.minY = p.Y
		}
		if p.X > b.maxX {
			b.maxX = p.X
		}
		if p.Y > b.maxY {
			b.maxY = p.Y
		}
	}
	return b
}

func bboxIntersects(a, b bbox) bool {
	return !(a.maxX < b.minX || a.maxY < b.minY || a.minX > b.maxX || a.minY > b.maxY)
}

const sqrt2 = math.Sqrt2

// estimateSubdivisionDepth bounds the number of midpoint subdivisions needed
// before the curve's flatness falls under the working tolerance, using the
// magnitude of its second differences (Klassen, Graphics Gems 4).
func estimateSubdivisionDepth(c Cubic) int {
	l1x, l1y := math.Abs((c.P2.X-c.P1.X)-(c.P1.X-c.P0.X)), math.Abs((c.P2.Y-c.P1.Y)-(c.P1.Y-c.P0.Y))
	l2x, l2y := math.Abs((c.P3.X-c.P2.X)-(c.P2.X-c.P1.X)), math.Abs((c.P3.Y-c.P2.Y)-(c.P2.Y-c.P1.Y))
	lx, ly := math.Max(l1x, l2x), math.Max(l1y, l2y)
	l0 := math.Max(lx, ly)
	if l0*0.75*sqrt2+1.0 != 1.0 {
		return int(math.Ceil(log4(sqrt2 * 6.0 / 8.0 * invEps * l0)))
	}
	return 0
}

// IntersectCubics finds every crossing of two cubic Beziers via recursive
// bounding-box subdivision, returning at most 9 intersection records (the
// maximum for two non-identical cubics).
func IntersectCubics(a, b Cubic) []IntersectionPoint {
	var out []IntersectionPoint
	if !bboxIntersects(cubicBBox(a), cubicBBox(b)) {
		return out
	}
	depthA := estimateSubdivisionDepth(a)
	depthB := estimateSubdivisionDepth(b)
	recursivelyIntersect(a, 0, 1, depthA, b, 0, 1, depthB, &out)
	return out
}

func recursivelyIntersect(a Cubic, t0, t1 float64, depthA int, b Cubic, u0, u1 float64, depthB int, out *[]IntersectionPoint) {
	if len(*out) >= 9 {
		return
	}

	if depthA > 0 {
		a0, a1 := a.Split(0.5)
		tmid := (t0 + t1) * 0.5
		depthA--

		if depthB > 0 {
			b0, b1 := b.Split(0.5)
			umid := (u0 + u1) * 0.5
			depthB--

			if bboxIntersects(cubicBBox(a0), cubicBBox(b0)) {
				recursivelyIntersect(a0, t0, tmid, depthA, b0, u0, umid, depthB, out)
			}
			if bboxIntersects(cubicBBox(a0), cubicBBox(b1)) {
				recursivelyIntersect(a0, t0, tmid, depthA, b1, umid, u1, depthB, out)
			}
			if bboxIntersects(cubicBBox(a1), cubicBBox(b0)) {
				recursivelyIntersect(a1, tmid, t1, depthA, b0, u0, umid, depthB, out)
			}
			if bboxIntersects(cubicBBox(a1), cubicBBox(b1)) {
				recursivelyIntersect(a1, tmid, t1, depthA, b1, umid, u1, depthB, out)
			}
		} else {
			if bboxIntersects(cubicBBox(a0), cubicBBox(b)) {
				recursivelyIntersect(a0, t0, tmid, depthA, b, u0, u1, depthB, out)
			}
			if bboxIntersects(cubicBBox(a1), cubicBBox(b)) {
				recursivelyIntersect(a1, tmid, t1, depthA, b, u0, u1, depthB, out)
			}
		}
		return
	}

	if depthB > 0 {
		b0, b1 := b.Split(0.5)
		umid := (u0 + u1) * 0.5
		depthB--

		if bboxIntersects(cubicBBox(a), cubicBBox(b0)) {
			recursivelyIntersect(a, t0, t1, depthA, b0, u0, umid, depthB, out)
		}
		if bboxIntersects(cubicBBox(a), cubicBBox(b1)) {
			recursivelyIntersect(a, t0, t1, depthA, b1, umid, u1, depthB, out)
		}
		return
	}

	// Both segments are fully subdivided; intersect the end-to-end chords.
	lk := a.P3.Sub(a.P0)
	nm := b.P3.Sub(b.P0)
	mk := b.P0.Sub(a.P0)
	det := nm.X*lk.Y - nm.Y*lk.X
	if 1.0+det == 1.0 {
		return
	}

	detInv := 1.0 / det
	s := (nm.X*mk.Y - nm.Y*mk.X) * detInv
	t := (lk.X*mk.Y - lk.Y*mk.X) * detInv
	if s < 0 || s > 1 || t < 0 || t > 1 {
		return
	}

	*out = append(*out, IntersectionPoint{
		TA: lerpScalar(t0, t1, s),
		TB: lerpScalar(u0, u1, t),
	})
}

func lerpScalar(a, b, t float64) float64 {
	return a + (b-a)*t
}
