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

import "seehuhn.de/go/geom/vec"

// EdgeKind distinguishes the three curve degrees an edge can carry.
type EdgeKind int

const (
	EdgeLine EdgeKind = iota
	EdgeQuad
	EdgeCubic
)

type vertexRef int32
type edgeRef int32

const noRef = -1

type vertex struct {
	pos      vec.Vec2
	prevEdge edgeRef // edge for which this vertex is the "to" endpoint
	nextEdge edgeRef // edge for which this vertex is the "from" endpoint
	isCorner bool
}

type edge struct {
	kind     EdgeKind
	from, to vertexRef
	c0, c1   vec.Vec2 // control points; c1 unused for EdgeQuad
}

// Graph is the per-glyph arena: a set of disjoint closed rings of vertices
// and edges, referenced by index rather than pointer so the whole arena can
// be dropped at once when the glyph is done.
type Graph struct {
	vertices []vertex
	edges    []edge
	roots    []vertexRef
}

// NewGraph returns an empty arena, pre-sized for a glyph of the given
// approximate complexity to avoid repeated growth during building.
func NewGraph(sizeHint int) *Graph {
	return &Graph{
		vertices: make([]vertex, 0, sizeHint),
		edges:    make([]edge, 0, sizeHint),
	}
}

func (g *Graph) addVertex(pos vec.Vec2) vertexRef {
	g.vertices = append(g.vertices, vertex{pos: pos, prevEdge: noRef, nextEdge: noRef})
	return vertexRef(len(g.vertices) - 1)
}

func (g *Graph) addEdge(kind EdgeKind, from, to vertexRef, c0, c1 vec.Vec2) edgeRef {
	g.edges = append(g.edges, edge{kind: kind, from: from, to: to, c0: c0, c1: c1})
	return edgeRef(len(g.edges) - 1)
}

// addRoot records v as the distinguished vertex of a new ring.
func (g *Graph) addRoot(v vertexRef) {
	g.roots = append(g.roots, v)
}

// Rings returns the current ring-root vertices. C4 appends to this list as
// self-intersections spawn new rings.
func (g *Graph) Rings() []vertexRef {
	return g.roots
}

func (g *Graph) curve(e edgeRef) (Line, Quad, Cubic) {
	ed := g.edges[e]
	from, to := g.vertices[ed.from].pos, g.vertices[ed.to].pos
	switch ed.kind {
	case EdgeLine:
		return Line{from, to}, Quad{}, Cubic{}
	case EdgeQuad:
		return Line{}, Quad{from, ed.c0, to}, Cubic{}
	default:
		return Line{}, Quad{}, Cubic{from, ed.c0, ed.c1, to}
	}
}

// edgeAsCubic promotes an edge of any degree to the equivalent cubic, for
// use by the intersection routines, which only operate on cubics.
func (g *Graph) edgeAsCubic(e edgeRef) Cubic {
	l, q, c := g.curve(e)
	switch g.edges[e].kind {
	case EdgeLine:
		return CubicFromLine(l)
	case EdgeQuad:
		return CubicFromQuad(q)
	default:
		return c
	}
}

// SplitEdgeAt splits edge e at parameter t, mutating e in place to become
// the left half and appending a new edge for the right half. The new vertex
// is returned; splitting is rejected (false) when t falls within
// splitEpsilon of either endpoint, matching the source's edge-split
// tolerance. Splitting a cubic always marks the new vertex as a corner —
// cubics are only ever split at inflection, self-intersection, or corner
// candidates, so this cannot be wrong, only occasionally redundant.
func (g *Graph) SplitEdgeAt(e edgeRef, t float64) (vertexRef, bool) {
	if t < splitEpsilon || t > 1-splitEpsilon {
		return noRef, false
	}

	ed := g.edges[e]
	from := g.vertices[ed.from].pos
	to := g.vertices[ed.to].pos
	vEnd := ed.to

	var midPos, leftC0, leftC1, rightC0, rightC1 vec.Vec2
	isCorner := false

	switch ed.kind {
	case EdgeLine:
		l := Line{from, to}
		left, _ := l.Split(t)
		midPos = left.P1
	case EdgeQuad:
		q := Quad{from, ed.c0, to}
		left, right := q.Split(t)
		midPos = left.P2
		leftC0 = left.P1
		rightC0 = right.P1
	case EdgeCubic:
		c := Cubic{from, ed.c0, ed.c1, to}
		left, right := c.Split(t)
		midPos = left.P3
		leftC0, leftC1 = left.P1, left.P2
		rightC0, rightC1 = right.P1, right.P2
		isCorner = true
	}

	mid := g.addVertex(midPos)
	newEdge := g.addEdge(ed.kind, mid, vEnd, rightC0, rightC1)

	g.edges[e].to = mid
	g.edges[e].c0 = leftC0
	g.edges[e].c1 = leftC1

	g.vertices[mid].prevEdge = e
	g.vertices[mid].nextEdge = newEdge
	g.vertices[mid].isCorner = isCorner
	g.vertices[vEnd].prevEdge = newEdge

	return mid, true
}

// SplitEdgeAtY follows the ring from a toward b (backwards if reversed)
// until it finds the edge straddling horizontal line y, then splits it
// there. If no root is found, or the split is rejected, the endpoint of the
// straddling edge nearer to y is returned instead.
func (g *Graph) SplitEdgeAtY(a, b vertexRef, reversed bool, y float64) vertexRef {
	var e edgeRef
	if reversed {
		e = g.vertices[a].prevEdge
		for g.vertices[g.edges[e].from].pos.Y < y && g.edges[e].from != b {
			e = g.vertices[g.edges[e].from].prevEdge
		}
	} else {
		e = g.vertices[a].nextEdge
		for g.vertices[g.edges[e].to].pos.Y < y && g.edges[e].to != b {
			e = g.vertices[g.edges[e].to].nextEdge
		}
	}

	if t, ok := g.solveEdgeY(e, y); ok {
		if mid, split := g.SplitEdgeAt(e, t); split {
			return mid
		}
	}

	v0, v1 := g.edges[e].from, g.edges[e].to
	y0, y1 := g.vertices[v0].pos.Y, g.vertices[v1].pos.Y
	mid := (y0 + y1) * 0.5
	if y0 < y1 {
		if y < mid {
			return v0
		}
		return v1
	}
	if y < mid {
		return v1
	}
	return v0
}

// SolveRangeX is SplitEdgeAtY's read-only counterpart: it finds the x
// coordinate at which the ring between a and b (walked forward, or backward
// if reversed) crosses horizontal line y, without mutating the graph.
func (g *Graph) SolveRangeX(a, b vertexRef, reversed bool, y float64) float64 {
	var e edgeRef
	if reversed {
		e = g.vertices[a].prevEdge
		for g.vertices[g.edges[e].from].pos.Y < y && g.edges[e].from != b {
			e = g.vertices[g.edges[e].from].prevEdge
		}
	} else {
		e = g.vertices[a].nextEdge
		for g.vertices[g.edges[e].to].pos.Y < y && g.edges[e].to != b {
			e = g.vertices[g.edges[e].to].nextEdge
		}
	}
	return g.SolveEdgeX(e, y)
}

func (g *Graph) solveEdgeY(e edgeRef, y float64) (float64, bool) {
	l, q, c := g.curve(e)
	var ts []float64
	switch g.edges[e].kind {
	case EdgeLine:
		ts = l.SolveY(y)
	case EdgeQuad:
		ts = q.SolveY(y)
	case EdgeCubic:
		ts = c.SolveY(y)
	}
	if len(ts) == 0 {
		return 0, false
	}
	return ts[0], true
}

// SolveEdgeX returns the x coordinate at which edge e crosses horizontal
// line y. y is expected to lie within the edge's span; if the solver finds
// no root (a topology anomaly, or y right at an endpoint) the nearer
// endpoint's x is returned, or their midpoint as a last resort.
func (g *Graph) SolveEdgeX(e edgeRef, y float64) float64 {
	ed := g.edges[e]
	from := g.vertices[ed.from].pos
	to := g.vertices[ed.to].pos

	if t, ok := g.solveEdgeY(e, y); ok {
		l, q, c := g.curve(e)
		switch ed.kind {
		case EdgeLine:
			return l.Evaluate(t).X
		case EdgeQuad:
			return q.Evaluate(t).X
		case EdgeCubic:
			return c.Evaluate(t).X
		}
	}

	if from.Y < to.Y {
		if y < from.Y {
			return from.X
		}
		if y > to.Y {
			return to.X
		}
	} else {
		if y < to.Y {
			return to.X
		}
		if y > from.Y {
			return from.X
		}
	}
	return (from.X + to.X) * 0.5
}
