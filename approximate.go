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

// Slice is a trapezoid region of a glyph with each side fitted to a single
// quadratic Bezier. This is the shape a GPU rasterizer consumes: both
// quadratics run from the slice's top y to its bottom y, so the region
// between them can be filled by evaluating each curve at a shared set of y
// scanlines.
type Slice struct {
	Left, Right Quad
}

// Approximate fits every raw trapezoid found by Sweep to a pair of
// quadratics, recursively splitting a slice vertically wherever a single
// quadratic cannot track its true boundary within tolerance.
func Approximate(g *Graph, raw []RawSlice) []Slice {
	var out []Slice
	for _, r := range raw {
		approxSplit(g, r, &out)
	}
	return out
}

func approxSplit(g *Graph, raw RawSlice, out *[]Slice) {
	left, lok := approxSide(g, raw.TL, raw.BL, raw.LReversed)
	right, rok := approxSide(g, raw.TR, raw.BR, raw.RReversed)
	right.P0.Y = left.P0.Y
	right.P2.Y = left.P2.Y

	topY := g.vertices[raw.TL].pos.Y
	botY := g.vertices[raw.BL].pos.Y
	height := botY - topY

	if lok && rok {
		lerr := approxError(g, raw.TL, raw.BL, raw.LReversed, left)
		rerr := approxError(g, raw.TR, raw.BR, raw.RReversed, right)
		if lerr < maxError && rerr < maxError {
			*out = append(*out, Slice{Left: left, Right: right})
			return
		}
	}

	if height <= minSplit {
		*out = append(*out, Slice{Left: left, Right: right})
		return
	}

	midY := (topY + botY) * 0.5
	newLeft := g.SplitEdgeAtY(raw.TL, raw.BL, raw.LReversed, midY)
	newRight := g.SplitEdgeAtY(raw.TR, raw.BR, raw.RReversed, midY)

	bottom := RawSlice{TL: newLeft, TR: newRight, BL: raw.BL, BR: raw.BR, LReversed: raw.LReversed, RReversed: raw.RReversed}
	top := RawSlice{TL: raw.TL, TR: raw.TR, BL: newLeft, BR: newRight, LReversed: raw.LReversed, RReversed: raw.RReversed}

	approxSplit(g, bottom, out)
	approxSplit(g, top, out)
}

// approxSide fits a single quadratic between a and b by intersecting the
// tangent rays leaving a and arriving at b. When the rays are near parallel,
// or the chord lies along them, it returns a straight control point as a
// usable fit (ok=true). When the rays meet behind either endpoint, it falls
// back to the same straight control point and reports the fit as unreliable
// (ok=false), which forces a split unless the slice is already too short to
// subdivide further.
func approxSide(g *Graph, a, b vertexRef, reversed bool) (Quad, bool) {
	pa := g.vertices[a].pos
	pb := g.vertices[b].pos
	linear := Quad{P0: pa, P1: lerp(pa, pb, 0.5), P2: pb}

	ta := leavingTangent(g, a, reversed)
	tb := arrivingTangent(g, b, reversed).Mul(-1)
	d := pb.Sub(pa)

	det := ta.X*tb.Y - ta.Y*tb.X
	sdet := d.X*tb.Y - d.Y*tb.X
	tdet := ta.X*d.Y - ta.Y*d.X

	const eps = 0.01
	if (math.Abs(sdet) < eps && math.Abs(tdet) < eps) || math.Abs(det) < eps {
		return linear, true
	}

	s := sdet / det
	// The ray from b runs along tb, so the meeting point is pa+s*ta = pb+t*tb.
	t := -tdet / det
	if s > eps && t > eps {
		return Quad{P0: pa, P1: pa.Add(ta.Mul(s)), P2: pb}, true
	}
	return linear, false
}

// approxError estimates the fit quality of approx against the true ring
// boundary between a and b by sampling errorSamples interior points.
func approxError(g *Graph, a, b vertexRef, reversed bool, approx Quad) float64 {
	total := 0.0
	for i := 1; i <= errorSamples; i++ {
		t := float64(i) / float64(errorSamples+1)
		p := approx.Evaluate(t)
		trueX := approxSolveX(g, a, b, reversed, p.Y)
		total += math.Abs(p.X - trueX)
	}
	return total / float64(errorSamples)
}

func approxSolveX(g *Graph, a, b vertexRef, reversed bool, y float64) float64 {
	ay := g.vertices[a].pos.Y
	by := g.vertices[b].pos.Y
	if y <= ay {
		return g.vertices[a].pos.X
	}
	if y >= by {
		return g.vertices[b].pos.X
	}
	return g.SolveRangeX(a, b, reversed, y)
}

// leavingTangent and arrivingTangent give the unit direction of travel at v
// along the ring walk from a to b (see SplitEdgeAtY), which runs forward
// through v's nextEdge when reversed is false, and backward through its
// prevEdge when reversed is true.
func leavingTangent(g *Graph, v vertexRef, reversed bool) vec.Vec2 {
	if reversed {
		return incomingTangent(g, v).Mul(-1)
	}
	return outgoingTangent(g, v)
}

func arrivingTangent(g *Graph, v vertexRef, reversed bool) vec.Vec2 {
	if reversed {
		return outgoingTangent(g, v).Mul(-1)
	}
	return incomingTangent(g, v)
}
