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
	"cmp"
	"slices"
)

// RawSlice is a trapezoid region of the glyph found by the plane sweep: a
// horizontal top between TL and TR, a horizontal bottom between BL and BR,
// and two ring-bounded sides running down to them. It has not yet been
// approximated by a single fitted quadratic per side (see approximate.go).
type RawSlice struct {
	TL, TR, BL, BR       vertexRef
	LReversed, RReversed bool
}

const sweepEnd int32 = -1

// sweepNode is one side of the active boundary, spanning from a corner
// already reached by the sweep line (top) down to the next corner along its
// ring (corner). left marks whether this side is the left edge of a filled
// interval (which includes the right edge of a hole) rather than a filled
// interval's right edge. The active set is a doubly linked list ordered left to right by x
// at the current sweep line, addressed by index so insertion and removal
// never invalidate other nodes' positions.
type sweepNode struct {
	top, corner    vertexRef
	reversed, left bool
	prev, next     int32
}

type sweepList struct {
	nodes      []sweepNode
	head, tail int32
}

func newSweepList() sweepList {
	return sweepList{head: sweepEnd, tail: sweepEnd}
}

func (l *sweepList) insertBefore(pos int32, n sweepNode) int32 {
	idx := int32(len(l.nodes))
	if pos == sweepEnd {
		n.prev = l.tail
		n.next = sweepEnd
		if l.tail != sweepEnd {
			l.nodes[l.tail].next = idx
		} else {
			l.head = idx
		}
		l.tail = idx
	} else {
		p := l.nodes[pos].prev
		n.prev = p
		n.next = pos
		l.nodes[pos].prev = idx
		if p != sweepEnd {
			l.nodes[p].next = idx
		} else {
			l.head = idx
		}
	}
	l.nodes = append(l.nodes, n)
	return idx
}

func (l *sweepList) erase(pos int32) {
	n := l.nodes[pos]
	if n.prev != sweepEnd {
		l.nodes[n.prev].next = n.next
	} else {
		l.head = n.next
	}
	if n.next != sweepEnd {
		l.nodes[n.next].prev = n.prev
	} else {
		l.tail = n.prev
	}
}

func (l *sweepList) findByCorner(c vertexRef) int32 {
	for i := l.head; i != sweepEnd; i = l.nodes[i].next {
		if l.nodes[i].corner == c {
			return i
		}
	}
	return sweepEnd
}

// Sweep decomposes every ring of g into trapezoid slices via a top-to-bottom
// plane sweep over corner vertices (see corners.go). Corners either
// terminate one or two active boundaries (closing a filled interval or a
// hole) or start two new ones (a local minimum); between corners, a single
// active boundary may cross several non-corner vertices, which the sweep
// walks past without stopping.
func Sweep(g *Graph) []RawSlice {
	corners := collectCorners(g)
	list := newSweepList()
	var out []RawSlice

	for _, c := range corners {
		if !g.vertices[c].isCorner {
			// Unmarked by clearRingCorners: this corner belonged to a ring
			// already discarded as a spurious hole.
			continue
		}
		if e := list.findByCorner(c); e != sweepEnd {
			terminateAt(g, &list, &out, e, c)
			continue
		}
		startAt(g, &list, &out, c)
	}

	return out
}

func collectCorners(g *Graph) []vertexRef {
	var cs []vertexRef
	for i := range g.vertices {
		if g.vertices[i].isCorner {
			cs = append(cs, vertexRef(i))
		}
	}
	slices.SortFunc(cs, func(a, b vertexRef) int {
		pa, pb := g.vertices[a].pos, g.vertices[b].pos
		if d := cmp.Compare(pa.Y, pb.Y); d != 0 {
			return d
		}
		return cmp.Compare(pa.X, pb.X)
	})
	return cs
}

// terminateAt handles a corner that is the target of at least one active
// boundary: either a pair of boundaries closing together (the peak of a
// filled interval, or the pinch of a hole), or a single boundary passing
// through a direction change that isn't yet the end of its region.
func terminateAt(g *Graph, list *sweepList, out *[]RawSlice, e int32, c vertexRef) {
	n := list.nodes[e].next
	if n != sweepEnd && list.nodes[n].corner == c {
		if list.nodes[e].left {
			emitSlice(g, out, &list.nodes[e], &list.nodes[n], c)
		} else {
			h := list.nodes[e].prev
			k := list.nodes[n].next
			if h != sweepEnd {
				emitSlice(g, out, &list.nodes[h], &list.nodes[e], c)
			}
			if k != sweepEnd {
				emitSlice(g, out, &list.nodes[n], &list.nodes[k], c)
			}
		}
		list.erase(n)
		list.erase(e)
		return
	}

	if list.nodes[e].left {
		if j := list.nodes[e].next; j != sweepEnd {
			emitSlice(g, out, &list.nodes[e], &list.nodes[j], c)
		}
	} else {
		if h := list.nodes[e].prev; h != sweepEnd {
			emitSlice(g, out, &list.nodes[h], &list.nodes[e], c)
		}
	}
	list.nodes[e].top = c
	list.nodes[e].corner = nextCorner(g, c, list.nodes[e].reversed)
}

// startAt handles a local-minimum corner: it starts two new boundaries,
// following the ring in both directions. If the insertion point falls
// inside an already-filled interval, the new pair bounds a hole instead of
// a fresh region — unless the enclosing interval's left boundary runs in
// the same ring direction as this pair would, which can only happen when
// C4 left behind a self-intersection artifact. Such a hole is spurious: its
// whole ring is un-corner-marked and the corner is skipped outright, leaving
// the enclosing active boundary exactly as it was (the winding-consistency
// rule, not present in the simpler reference implementation).
func startAt(g *Graph, list *sweepList, out *[]RawSlice, c vertexRef) {
	cy := g.vertices[c].pos.Y
	cx := g.vertices[c].pos.X

	after := list.head
	for after != sweepEnd {
		x := g.SolveRangeX(list.nodes[after].top, list.nodes[after].corner, list.nodes[after].reversed, cy)
		if cx < x {
			break
		}
		after = list.nodes[after].next
	}

	left, right := newSweepEdges(g, c)

	startingHole := after != sweepEnd && !list.nodes[after].left
	if startingHole {
		h := list.nodes[after].prev
		if h != sweepEnd && list.nodes[h].reversed == left.reversed {
			diagLogger().Warn("discarding spurious hole ring from self-intersection artifact", "corner", int(c))
			clearRingCorners(g, c)
			return
		}
		if h != sweepEnd {
			emitSlice(g, out, &list.nodes[h], &list.nodes[after], c)
		}
		right.left = true
	} else {
		left.left = true
	}

	list.insertBefore(after, left)
	list.insertBefore(after, right)
}

// clearRingCorners walks the entire ring containing start and unmarks every
// corner on it. Called the moment a ring is found to be a spurious hole (its
// very first corner in sweep order, before any boundary of the ring has been
// inserted into the active set), so no sweepNode ever references it and the
// remaining corners already queued for this ring are skipped when the outer
// loop reaches them.
func clearRingCorners(g *Graph, start vertexRef) {
	const maxSteps = 1 << 16

	v := start
	for steps := 0; steps < maxSteps; steps++ {
		g.vertices[v].isCorner = false
		e := g.vertices[v].nextEdge
		v = g.edges[e].to
		if v == start {
			return
		}
	}
	diagLogger().Warn("ring traversal exceeded bound while clearing a spurious hole", "start", int(start))
}

// newSweepEdges builds the two candidate boundaries leaving a local-minimum
// corner, one following the ring forward and one backward, and orders them
// left to right by comparing their initial tangent directions.
func newSweepEdges(g *Graph, corner vertexRef) (left, right sweepNode) {
	fwd := outgoingTangent(g, corner)
	bwd := incomingTangent(g, corner).Mul(-1)

	a := sweepNode{top: corner, corner: nextCorner(g, corner, false), reversed: false}
	b := sweepNode{top: corner, corner: nextCorner(g, corner, true), reversed: true}

	if fwd.X <= bwd.X {
		return a, b
	}
	return b, a
}

// nextCorner walks the ring from a known corner to the next one, in the
// given direction, skipping smooth vertices along the way.
func nextCorner(g *Graph, from vertexRef, reversed bool) vertexRef {
	const maxSteps = 1 << 16

	v := from
	for steps := 0; steps < maxSteps; steps++ {
		var e edgeRef
		if reversed {
			e = g.vertices[v].prevEdge
			v = g.edges[e].from
		} else {
			e = g.vertices[v].nextEdge
			v = g.edges[e].to
		}
		if g.vertices[v].isCorner {
			return v
		}
	}
	diagLogger().Warn("ring traversal exceeded bound while seeking next corner", "from", int(from))
	return v
}

// sweepSplit returns the vertex where boundary n crosses the horizontal
// line through corner, splitting its current span if the crossing isn't
// already a vertex of the graph.
func sweepSplit(g *Graph, n *sweepNode, corner vertexRef) vertexRef {
	if n.corner == corner {
		return corner
	}
	return g.SplitEdgeAtY(n.top, n.corner, n.reversed, g.vertices[corner].pos.Y)
}

// emitSlice closes off the trapezoid bounded by left and right down to
// corner's horizontal line, appending it to out unless it would have zero
// height, then advances both boundaries' tops to the new bottom.
func emitSlice(g *Graph, out *[]RawSlice, left, right *sweepNode, corner vertexRef) {
	bl := sweepSplit(g, left, corner)
	br := sweepSplit(g, right, corner)

	if g.vertices[left.top].pos.Y < g.vertices[bl].pos.Y {
		*out = append(*out, RawSlice{
			TL: left.top, TR: right.top,
			BL: bl, BR: br,
			LReversed: left.reversed, RReversed: right.reversed,
		})
	}

	left.top = bl
	right.top = br
}
