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

// FindCorners splits every edge at its vertical (y) extrema and flags every
// vertex, old or new, that is a genuine direction change rather than a smooth
// point. The plane sweep (C6) only needs to consider corner vertices, since
// between two corners an outline's x as a function of y is single-valued.
func FindCorners(g *Graph) {
	for _, root := range g.roots {
		splitEdgeExtrema(g, root)
	}
	for i := range g.vertices {
		if !g.vertices[i].isCorner {
			g.vertices[i].isCorner = vertexIsCorner(g, vertexRef(i))
		}
	}
}

// splitEdgeExtrema walks the ring, splitting each quad or cubic edge at the
// parameter(s) where its derivative's y component is zero. A quad's
// derivative is linear and has at most one such root; a cubic's derivative
// is quadratic and has at most two, the second of which falls on whichever
// half the first split left behind and must be re-parameterised onto it.
func splitEdgeExtrema(g *Graph, root vertexRef) {
	const maxEdges = 1 << 16

	v := root
	for steps := 0; steps < maxEdges; steps++ {
		e := g.vertices[v].nextEdge
		ed := g.edges[e]

		switch ed.kind {
		case EdgeQuad:
			_, q, _ := g.curve(e)
			if ts := q.Derivative().SolveY(0); len(ts) > 0 {
				if mid, split := g.SplitEdgeAt(e, ts[0]); split {
					g.vertices[mid].isCorner = true
				}
			}
		case EdgeCubic:
			_, _, c := g.curve(e)
			ts := c.Derivative().SolveY(0)
			if len(ts) > 1 && ts[1] < ts[0] {
				ts[0], ts[1] = ts[1], ts[0]
			}
			if len(ts) > 0 {
				t0 := ts[0]
				second := e
				var t1 float64
				if len(ts) > 1 {
					t1 = ts[1]
				}
				if mid, split := g.SplitEdgeAt(e, t0); split {
					g.vertices[mid].isCorner = true
					second = g.vertices[mid].nextEdge
					if len(ts) > 1 {
						// Re-parameterise the second root onto the curve
						// remaining after the first split.
						t1 = (t1 - t0) / (1 - t0)
					}
				}
				// The second extremum split is attempted regardless of
				// whether the first one landed: if the first root was too
				// close to an endpoint to split on, second/t1 simply stay
				// in the original edge's parameter space.
				if len(ts) > 1 {
					if mid2, split2 := g.SplitEdgeAt(second, t1); split2 {
						g.vertices[mid2].isCorner = true
					}
				}
			}
		}

		v = g.edges[e].to
		if v == root {
			return
		}
	}
	diagLogger().Warn("ring traversal exceeded bound while splitting edge extrema", "root", int(root))
}

// vertexIsCorner decides whether an existing vertex, untouched by edge
// splitting, is itself a direction change: its incoming and outgoing
// tangents diverge by more than the corner angle tolerance, or its y
// component changes sign across the vertex (a vertical extremum that
// happens to land exactly on an existing vertex).
func vertexIsCorner(g *Graph, v vertexRef) bool {
	in := incomingTangent(g, v)
	out := outgoingTangent(g, v)
	if in.Dot(out) < cornerCos {
		return true
	}
	return tangentSignChange(in, out)
}

func tangentSignChange(a, b vec.Vec2) bool {
	return (a.Y <= 0 && b.Y >= 0) || (a.Y >= 0 && b.Y <= 0)
}

// incomingTangent is the unit direction arriving at v, taken from the
// nearest control point of v's incoming edge (or the previous vertex, for a
// line).
func incomingTangent(g *Graph, v vertexRef) vec.Vec2 {
	e := g.vertices[v].prevEdge
	ed := g.edges[e]
	to := g.vertices[ed.to].pos
	switch ed.kind {
	case EdgeLine:
		return normalize(to.Sub(g.vertices[ed.from].pos))
	case EdgeQuad:
		return normalize(to.Sub(ed.c0))
	default:
		return normalize(to.Sub(ed.c1))
	}
}

// outgoingTangent is the unit direction leaving v, taken toward the nearest
// control point of v's outgoing edge (or the next vertex, for a line).
func outgoingTangent(g *Graph, v vertexRef) vec.Vec2 {
	e := g.vertices[v].nextEdge
	ed := g.edges[e]
	from := g.vertices[ed.from].pos
	switch ed.kind {
	case EdgeLine:
		return normalize(g.vertices[ed.to].pos.Sub(from))
	default:
		return normalize(ed.c0.Sub(from))
	}
}
