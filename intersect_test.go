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

func TestIntersectCubicsDisjointBoundingBoxes(t *testing.T) {
	a := Cubic{vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 2, Y: 1}, vec.Vec2{X: 3, Y: 0}}
	b := Cubic{vec.Vec2{X: 100, Y: 100}, vec.Vec2{X: 101, Y: 101}, vec.Vec2{X: 102, Y: 101}, vec.Vec2{X: 103, Y: 100}}
	if pts := IntersectCubics(a, b); len(pts) != 0 {
		t.Errorf("IntersectCubics on disjoint curves = %v, want none", pts)
	}
}

func TestIntersectCubicsCrossingPair(t *testing.T) {
	// Two straight-shaped cubics (elevated lines) crossing in an X.
	a := CubicFromLine(Line{vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 10}})
	b := CubicFromLine(Line{vec.Vec2{X: 0, Y: 10}, vec.Vec2{X: 10, Y: 0}})

	pts := IntersectCubics(a, b)
	if len(pts) != 1 {
		t.Fatalf("IntersectCubics = %v, want exactly one crossing", pts)
	}

	pa := a.Evaluate(pts[0].TA)
	pb := b.Evaluate(pts[0].TB)
	if math.Abs(pa.X-pb.X) > 1e-3 || math.Abs(pa.Y-pb.Y) > 1e-3 {
		t.Errorf("intersection points disagree: a(%v)=%v b(%v)=%v", pts[0].TA, pa, pts[0].TB, pb)
	}
	if math.Abs(pa.X-5) > 1e-2 || math.Abs(pa.Y-5) > 1e-2 {
		t.Errorf("crossing point = %v, want near (5,5)", pa)
	}
}

func TestIntersectCubicsCapsAtNine(t *testing.T) {
	// A curve wiggling back and forth against a straight line can cross it
	// many times; the routine must never return more than 9 results.
	a := Cubic{vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 20, Y: 40}, vec.Vec2{X: -20, Y: -40}, vec.Vec2{X: 10, Y: 0}}
	b := CubicFromLine(Line{vec.Vec2{X: -5, Y: 0}, vec.Vec2{X: 15, Y: 0}})
	pts := IntersectCubics(a, b)
	if len(pts) > 9 {
		t.Errorf("IntersectCubics returned %d points, want at most 9", len(pts))
	}
}

func TestBboxIntersects(t *testing.T) {
	a := bbox{0, 0, 10, 10}
	b := bbox{5, 5, 15, 15}
	if !bboxIntersects(a, b) {
		t.Errorf("overlapping boxes reported as disjoint")
	}
	c := bbox{20, 20, 30, 30}
	if bboxIntersects(a, c) {
		t.Errorf("disjoint boxes reported as overlapping")
	}
}
