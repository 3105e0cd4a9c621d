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
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func TestSweepListInsertAndErasePreserveOrder(t *testing.T) {
	l := newSweepList()
	a := l.insertBefore(sweepEnd, sweepNode{corner: 1})
	b := l.insertBefore(sweepEnd, sweepNode{corner: 2})
	c := l.insertBefore(b, sweepNode{corner: 3}) // insert between a and b

	var order []vertexRef
	for i := l.head; i != sweepEnd; i = l.nodes[i].next {
		order = append(order, l.nodes[i].corner)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 3 || order[2] != 2 {
		t.Fatalf("list order = %v, want [1 3 2]", order)
	}

	l.erase(c)
	order = order[:0]
	for i := l.head; i != sweepEnd; i = l.nodes[i].next {
		order = append(order, l.nodes[i].corner)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("list order after erase = %v, want [1 2]", order)
	}

	if l.findByCorner(2) != b {
		t.Errorf("findByCorner(2) did not return b")
	}
	if l.findByCorner(99) != sweepEnd {
		t.Errorf("findByCorner found a nonexistent corner")
	}
	_ = a
}

func squareOutline() *path.Data {
	return &path.Data{
		Cmds: []path.Command{path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo, path.CmdLineTo, path.CmdClose},
		Coords: []vec.Vec2{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		},
	}
}

func TestSweepSquareProducesOneSlice(t *testing.T) {
	g := Build(squareOutline())
	ResolveSelfIntersections(g)
	FindCorners(g)
	raw := Sweep(g)

	if len(raw) != 1 {
		t.Fatalf("got %d raw slices for a square, want 1", len(raw))
	}
	r := raw[0]
	if g.vertices[r.TL].pos.Y != 0 || g.vertices[r.BL].pos.Y != 10 {
		t.Errorf("slice does not span the square's full height: top=%v bottom=%v",
			g.vertices[r.TL].pos.Y, g.vertices[r.BL].pos.Y)
	}
}

func TestSweepSquareWithHoleProducesMoreThanOneSlice(t *testing.T) {
	p := &path.Data{
		Cmds: []path.Command{
			path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo, path.CmdLineTo, path.CmdClose,
			path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo, path.CmdLineTo, path.CmdClose,
		},
		Coords: []vec.Vec2{
			{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 20}, {X: 0, Y: 20},
			// Inner hole wound opposite to the outer ring.
			{X: 5, Y: 5}, {X: 5, Y: 15}, {X: 15, Y: 15}, {X: 15, Y: 5},
		},
	}
	g := Build(p)
	ResolveSelfIntersections(g)
	FindCorners(g)
	raw := Sweep(g)

	// The outer square minus the inner hole decomposes into a slice above
	// the hole, one below it, and two beside it; the check only requires
	// more raw slices than the single one a plain square gives.
	if len(raw) < 2 {
		t.Fatalf("got %d raw slices for a square with a hole, want at least 2", len(raw))
	}
}

func TestSweepDiscardsSpuriousHoleFromInconsistentWinding(t *testing.T) {
	// An inner ring wound the SAME direction as the outer ring it sits
	// inside: the winding-consistency check must reject it as a spurious
	// hole, clearing its corners and leaving the outer square as a single,
	// uninterrupted slice rather than carving a hole out of it.
	p := &path.Data{
		Cmds: []path.Command{
			path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo, path.CmdLineTo, path.CmdClose,
			path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo, path.CmdLineTo, path.CmdClose,
		},
		Coords: []vec.Vec2{
			{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 20}, {X: 0, Y: 20},
			// Same winding direction as the outer ring, unlike a real hole.
			{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15},
		},
	}
	g := Build(p)
	ResolveSelfIntersections(g)
	FindCorners(g)
	raw := Sweep(g)

	if len(raw) != 1 {
		t.Fatalf("got %d raw slices, want exactly 1 (the spurious hole must be discarded entirely)", len(raw))
	}
	r := raw[0]
	if g.vertices[r.TL].pos != (vec.Vec2{X: 0, Y: 0}) || g.vertices[r.BR].pos != (vec.Vec2{X: 20, Y: 20}) {
		t.Errorf("slice corners = %v..%v, want the full outer square (0,0)..(20,20)",
			g.vertices[r.TL].pos, g.vertices[r.BR].pos)
	}

	for _, v := range []vec.Vec2{{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15}} {
		found := false
		for i := range g.vertices {
			if g.vertices[i].pos == v {
				found = true
				if g.vertices[i].isCorner {
					t.Errorf("inner ring vertex %v still marked a corner after being discarded as spurious", v)
				}
			}
		}
		if !found {
			t.Fatalf("inner ring vertex %v not found in graph", v)
		}
	}
}
