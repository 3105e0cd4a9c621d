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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Build consumes a path.Data outline (MoveTo/LineTo/QuadTo/CubeTo/Close) and
// assembles it into a ring graph, one ring per contour. Contours are
// expected to close themselves explicitly or implicitly by returning to
// their start point; if a contour ends elsewhere, it is closed with a
// synthesized straight edge. An empty contour (a MoveTo immediately
// followed by Close, with no segments) contributes no ring.
func Build(p *path.Data) *Graph {
	g := NewGraph(len(p.Coords) * 2)

	var (
		haveContour bool
		firstVertex vertexRef
		firstPos    vec.Vec2
		lastVertex  vertexRef
		lastEdge    edgeRef = noRef
		current     vec.Vec2
	)

	closeContour := func() {
		if !haveContour {
			return
		}
		if lastEdge == noRef {
			g.vertices = g.vertices[:len(g.vertices)-1]
			haveContour = false
			return
		}
		if current != firstPos {
			e := g.addEdge(EdgeLine, lastVertex, firstVertex, vec.Vec2{}, vec.Vec2{})
			g.vertices[lastVertex].nextEdge = e
			g.vertices[firstVertex].prevEdge = e
		} else {
			// The last segment already landed on the contour's start point;
			// retarget it onto the start vertex instead of keeping a
			// coincident duplicate.
			g.edges[lastEdge].to = firstVertex
			g.vertices[firstVertex].prevEdge = lastEdge
			g.vertices = g.vertices[:len(g.vertices)-1]
		}
		g.addRoot(firstVertex)
		haveContour = false
	}

	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			closeContour()
			pos := p.Coords[coordIdx]
			coordIdx++
			firstVertex = g.addVertex(pos)
			firstPos = pos
			lastVertex = firstVertex
			lastEdge = noRef
			current = pos
			haveContour = true

		case path.CmdLineTo:
			to := p.Coords[coordIdx]
			coordIdx++
			v := g.addVertex(to)
			e := g.addEdge(EdgeLine, lastVertex, v, vec.Vec2{}, vec.Vec2{})
			g.vertices[lastVertex].nextEdge = e
			g.vertices[v].prevEdge = e
			lastVertex, lastEdge, current = v, e, to

		case path.CmdQuadTo:
			c0 := p.Coords[coordIdx]
			to := p.Coords[coordIdx+1]
			coordIdx += 2
			v := g.addVertex(to)
			e := g.addEdge(EdgeQuad, lastVertex, v, c0, vec.Vec2{})
			g.vertices[lastVertex].nextEdge = e
			g.vertices[v].prevEdge = e
			lastVertex, lastEdge, current = v, e, to

		case path.CmdCubeTo:
			c0 := p.Coords[coordIdx]
			c1 := p.Coords[coordIdx+1]
			to := p.Coords[coordIdx+2]
			coordIdx += 3
			v := g.addVertex(to)
			e := g.addEdge(EdgeCubic, lastVertex, v, c0, c1)
			g.vertices[lastVertex].nextEdge = e
			g.vertices[v].prevEdge = e
			lastVertex, lastEdge, current = v, e, to

		case path.CmdClose:
			closeContour()
		}
	}
	closeContour()

	return g
}
