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
	"testing"

	"seehuhn.de/go/geom/vec"
)

func TestApproximateSquareProducesOneUnsplitSlice(t *testing.T) {
	g := Build(squareOutline())
	ResolveSelfIntersections(g)
	FindCorners(g)
	raw := Sweep(g)
	slices := Approximate(g, raw)

	if len(slices) != 1 {
		t.Fatalf("got %d slices for a square, want 1", len(slices))
	}
	s := slices[0]
	if s.Left.P0.Y != 0 || s.Left.P2.Y != 10 {
		t.Errorf("left side does not span the full height: %v -> %v", s.Left.P0, s.Left.P2)
	}
	if s.Left.P0.X != 0 || s.Right.P0.X != 10 {
		t.Errorf("left/right sides start at the wrong x: left=%v right=%v", s.Left.P0.X, s.Right.P0.X)
	}
}

func TestApproxSideFallsBackToLinearOnParallelTangents(t *testing.T) {
	// A straight horizontal ring: the tangent leaving a and arriving at b
	// point the same direction, so the fit must fall back to a straight
	// control point rather than diverge to infinity.
	g := NewGraph(8)
	a := g.addVertex(vec.Vec2{X: 0, Y: 0})
	mid := g.addVertex(vec.Vec2{X: 5, Y: 0})
	b := g.addVertex(vec.Vec2{X: 10, Y: 0})
	e0 := g.addEdge(EdgeLine, a, mid, vec.Vec2{}, vec.Vec2{})
	e1 := g.addEdge(EdgeLine, mid, b, vec.Vec2{}, vec.Vec2{})
	g.vertices[a].nextEdge = e0
	g.vertices[mid].prevEdge = e0
	g.vertices[mid].nextEdge = e1
	g.vertices[b].prevEdge = e1

	q, ok := approxSide(g, a, b, false)
	if !ok {
		t.Fatalf("approxSide rejected a straight ring")
	}
	if math.Abs(q.P1.Y) > 1e-9 {
		t.Errorf("linear fallback control point = %v, want y=0", q.P1)
	}
}

func TestApproxSolveXClampsAtEndpoints(t *testing.T) {
	g, e := lineGraph(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 10})
	a := g.edges[e].from
	b := g.edges[e].to

	if x := approxSolveX(g, a, b, false, -5); x != 0 {
		t.Errorf("approxSolveX below the range = %v, want the start vertex's x (0)", x)
	}
	if x := approxSolveX(g, a, b, false, 50); x != 10 {
		t.Errorf("approxSolveX above the range = %v, want the end vertex's x (10)", x)
	}
	if x := approxSolveX(g, a, b, false, 5); math.Abs(x-5) > 1e-9 {
		t.Errorf("approxSolveX inside the range = %v, want 5", x)
	}
}

func TestApproximateSplitsTallPoorlyFittingSlice(t *testing.T) {
	// A raw slice whose right side bulges far out in the middle: a single
	// quadratic pinned to the endpoints cannot track the bulge within
	// maxError over a tall span, forcing a vertical split.
	g := NewGraph(8)
	tl := g.addVertex(vec.Vec2{X: 0, Y: 0})
	tr := g.addVertex(vec.Vec2{X: 10, Y: 0})
	bl := g.addVertex(vec.Vec2{X: 0, Y: 100})
	br := g.addVertex(vec.Vec2{X: 10, Y: 100})

	eL := g.addEdge(EdgeLine, tl, bl, vec.Vec2{}, vec.Vec2{})
	g.vertices[tl].nextEdge = eL
	g.vertices[bl].prevEdge = eL

	// A cubic side that bows out to x=62.5 at its midpoint: far too sharp a
	// bulge for any single quadratic pinned at (10,0) and (10,100) to track.
	eR := g.addEdge(EdgeCubic, tr, br, vec.Vec2{X: 80, Y: 20}, vec.Vec2{X: 80, Y: 80})
	g.vertices[tr].nextEdge = eR
	g.vertices[br].prevEdge = eR

	raw := RawSlice{TL: tl, TR: tr, BL: bl, BR: br}
	slices := Approximate(g, []RawSlice{raw})

	if len(slices) < 2 {
		t.Fatalf("got %d slices for a sharply bulging side, want at least 2 (a split)", len(slices))
	}
}
