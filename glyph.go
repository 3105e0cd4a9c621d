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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Glyph is the output of the slicing pipeline: every trapezoid a GPU
// rasterizer needs to fill the outline, sorted top to bottom by the y of
// its topmost edge.
type Glyph struct {
	Bounds rect.Rect
	Slices []Slice
}

// SliceGlyph runs the full pipeline (build, resolve self-intersections,
// find corners, sweep, approximate) over a single outline and returns the
// resulting glyph. The supplied bounds are carried through unchanged; they
// are usually the font's own bounding box for the glyph, not recomputed
// from the outline, since a glyph's ink can legitimately extend past its
// advance box.
func SliceGlyph(p *path.Data, bounds rect.Rect) Glyph {
	g := Build(p)
	ResolveSelfIntersections(g)
	FindCorners(g)
	raw := Sweep(g)
	slices_ := Approximate(g, raw)

	slices.SortFunc(slices_, func(a, b Slice) int {
		return cmp.Compare(a.Left.P0.Y, b.Left.P0.Y)
	})

	return Glyph{Bounds: bounds, Slices: slices_}
}

// SliceGlyphFunc builds a glyph from a push-style outline producer instead
// of a pre-built path.Data, for callers that stream commands rather than
// buffering them (see seehuhn.de/go/geom/path's yield-based consumers).
func SliceGlyphFunc(bounds rect.Rect, produce func(yield func(path.Command, []vec.Vec2) bool)) Glyph {
	var p path.Data
	produce(func(cmd path.Command, coords []vec.Vec2) bool {
		p.Cmds = append(p.Cmds, cmd)
		p.Coords = append(p.Coords, coords...)
		return true
	})
	return SliceGlyph(&p, bounds)
}
