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

func lineGraph(from, to vec.Vec2) (*Graph, edgeRef) {
	g := NewGraph(4)
	a := g.addVertex(from)
	b := g.addVertex(to)
	e := g.addEdge(EdgeLine, a, b, vec.Vec2{}, vec.Vec2{})
	g.vertices[a].nextEdge = e
	g.vertices[b].prevEdge = e
	return g, e
}

func TestSplitEdgeAtMidpoint(t *testing.T) {
	g, e := lineGraph(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0})
	mid, ok := g.SplitEdgeAt(e, 0.5)
	if !ok {
		t.Fatalf("SplitEdgeAt(0.5) rejected the split")
	}
	if g.vertices[mid].pos != (vec.Vec2{X: 5, Y: 0}) {
		t.Errorf("split vertex at %v, want (5,0)", g.vertices[mid].pos)
	}
	if len(g.edges) != 2 {
		t.Fatalf("got %d edges after split, want 2", len(g.edges))
	}
	if g.edges[e].to != mid {
		t.Errorf("left half's 'to' = %d, want the split vertex", g.edges[e].to)
	}
	newEdge := g.vertices[mid].nextEdge
	if g.edges[newEdge].from != mid {
		t.Errorf("right half's 'from' = %d, want the split vertex", g.edges[newEdge].from)
	}
}

func TestSplitEdgeAtRejectsNearEndpoints(t *testing.T) {
	g, e := lineGraph(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0})
	if _, ok := g.SplitEdgeAt(e, splitEpsilon/2); ok {
		t.Errorf("SplitEdgeAt accepted a split within splitEpsilon of the start")
	}
	if _, ok := g.SplitEdgeAt(e, 1-splitEpsilon/2); ok {
		t.Errorf("SplitEdgeAt accepted a split within splitEpsilon of the end")
	}
}

func TestSplitEdgeAtCubicMarksCorner(t *testing.T) {
	g := NewGraph(4)
	a := g.addVertex(vec.Vec2{X: 0, Y: 0})
	b := g.addVertex(vec.Vec2{X: 10, Y: 0})
	e := g.addEdge(EdgeCubic, a, b, vec.Vec2{X: 2, Y: 5}, vec.Vec2{X: 8, Y: 5})
	g.vertices[a].nextEdge = e
	g.vertices[b].prevEdge = e

	mid, ok := g.SplitEdgeAt(e, 0.5)
	if !ok {
		t.Fatalf("split rejected")
	}
	if !g.vertices[mid].isCorner {
		t.Errorf("splitting a cubic should mark the new vertex a corner")
	}
}

func TestSplitEdgeAtYFollowsRingAndSolves(t *testing.T) {
	// A four-vertex ring: (0,0) -> (10,0) -> (10,10) -> (0,10) -> (0,0).
	g := NewGraph(8)
	v := [4]vertexRef{
		g.addVertex(vec.Vec2{X: 0, Y: 0}),
		g.addVertex(vec.Vec2{X: 10, Y: 0}),
		g.addVertex(vec.Vec2{X: 10, Y: 10}),
		g.addVertex(vec.Vec2{X: 0, Y: 10}),
	}
	for i := 0; i < 4; i++ {
		from, to := v[i], v[(i+1)%4]
		e := g.addEdge(EdgeLine, from, to, vec.Vec2{}, vec.Vec2{})
		g.vertices[from].nextEdge = e
		g.vertices[to].prevEdge = e
	}

	mid := g.SplitEdgeAtY(v[1], v[2], false, 5)
	if math.Abs(g.vertices[mid].pos.Y-5) > 1e-9 {
		t.Errorf("split at y=5 landed at y=%v", g.vertices[mid].pos.Y)
	}
	if math.Abs(g.vertices[mid].pos.X-10) > 1e-9 {
		t.Errorf("split on the right edge should stay at x=10, got %v", g.vertices[mid].pos.X)
	}
}

func TestSolveRangeXOnDiagonalEdge(t *testing.T) {
	g, _ := lineGraph(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 10})
	x := g.SolveRangeX(0, 1, false, 5)
	if math.Abs(x-5) > 1e-9 {
		t.Errorf("SolveRangeX at y=5 on a 45-degree diagonal = %v, want 5", x)
	}
}

func TestEdgeAsCubicPromotesLineAndQuad(t *testing.T) {
	g := NewGraph(8)
	a := g.addVertex(vec.Vec2{X: 0, Y: 0})
	b := g.addVertex(vec.Vec2{X: 10, Y: 0})
	lineEdge := g.addEdge(EdgeLine, a, b, vec.Vec2{}, vec.Vec2{})

	c := g.edgeAsCubic(lineEdge)
	if c.P0 != (vec.Vec2{X: 0, Y: 0}) || c.P3 != (vec.Vec2{X: 10, Y: 0}) {
		t.Errorf("promoted line cubic endpoints = %v,%v, want (0,0),(10,0)", c.P0, c.P3)
	}
	for _, s := range []float64{0.25, 0.5, 0.75} {
		got := c.Evaluate(s)
		want := vec.Vec2{X: 10 * s, Y: 0}
		if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
			t.Errorf("promoted line cubic diverges from the original line at t=%v: %v != %v", s, got, want)
		}
	}
}
