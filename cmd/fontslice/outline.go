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

package main

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// glyphFont wraps a parsed font and the scratch buffer sfnt operations need.
type glyphFont struct {
	font *opentype.Font
	buf  sfnt.Buffer
	ppem fixed.Int26_6
}

func loadFont(path string, pointSize float64) (*glyphFont, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fontslice: reading font file: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontslice: parsing font: %w", err)
	}
	return &glyphFont{font: f, ppem: fixed.Int26_6(pointSize * 64)}, nil
}

// glyphIndex resolves a rune to the font's internal glyph id, via the
// font's cmap. Returns 0 (the notdef glyph) if the rune isn't mapped.
func (gf *glyphFont) glyphIndex(r rune) (sfnt.GlyphIndex, error) {
	return gf.font.GlyphIndex(&gf.buf, r)
}

// FontKern is one resolved kerning adjustment between a pair of runes, in
// the same pixel units as outline(): a positive Offset moves the glyphs
// further apart.
type FontKern struct {
	Left, Right rune
	Offset      float64
}

// kern looks up the kerning adjustment between a pair of runes at the
// font's configured point size. Returns ok=false if the font has no
// kerning data for this pair (most fonts rely on GPOS pair adjustments
// instead, which LoadGlyph already bakes into advance widths it returns
// elsewhere, not into this legacy `kern` table path).
func (gf *glyphFont) kern(left, right rune) (FontKern, bool) {
	l, err := gf.glyphIndex(left)
	if err != nil {
		return FontKern{}, false
	}
	r, err := gf.glyphIndex(right)
	if err != nil {
		return FontKern{}, false
	}
	adj, err := gf.font.Kern(&gf.buf, l, r, gf.ppem, font.HintingNone)
	if err != nil {
		return FontKern{}, false
	}
	return FontKern{Left: left, Right: right, Offset: float64(adj) / 64}, true
}

// outline converts a single glyph's segments to a path.Data outline, in the
// font's Y-down device convention, scaled from 26.6 fixed point to float64
// pixels at the font's configured point size. Returns the glyph's ink
// bounding box alongside the outline.
func (gf *glyphFont) outline(gid sfnt.GlyphIndex) (*path.Data, rect.Rect, error) {
	segments, err := gf.font.LoadGlyph(&gf.buf, gid, gf.ppem, nil)
	if err != nil {
		return nil, rect.Rect{}, fmt.Errorf("fontslice: loading glyph %d: %w", gid, err)
	}

	p := &path.Data{}
	var bounds rect.Rect
	first := true
	extend := func(v vec.Vec2) {
		if first {
			bounds = rect.Rect{LLx: v.X, LLy: v.Y, URx: v.X, URy: v.Y}
			first = false
			return
		}
		bounds.LLx = min(bounds.LLx, v.X)
		bounds.LLy = min(bounds.LLy, v.Y)
		bounds.URx = max(bounds.URx, v.X)
		bounds.URy = max(bounds.URy, v.Y)
	}

	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			v := fixedToVec(seg.Args[0])
			p.Cmds = append(p.Cmds, path.CmdMoveTo)
			p.Coords = append(p.Coords, v)
			extend(v)
		case sfnt.SegmentOpLineTo:
			v := fixedToVec(seg.Args[0])
			p.Cmds = append(p.Cmds, path.CmdLineTo)
			p.Coords = append(p.Coords, v)
			extend(v)
		case sfnt.SegmentOpQuadTo:
			c := fixedToVec(seg.Args[0])
			v := fixedToVec(seg.Args[1])
			p.Cmds = append(p.Cmds, path.CmdQuadTo)
			p.Coords = append(p.Coords, c, v)
			extend(c)
			extend(v)
		case sfnt.SegmentOpCubeTo:
			c0 := fixedToVec(seg.Args[0])
			c1 := fixedToVec(seg.Args[1])
			v := fixedToVec(seg.Args[2])
			p.Cmds = append(p.Cmds, path.CmdCubeTo)
			p.Coords = append(p.Coords, c0, c1, v)
			extend(c0)
			extend(c1)
			extend(v)
		}
	}
	// TrueType and CFF outlines returned by LoadGlyph are always closed
	// implicitly by the font format; Build (see the slicer package) closes
	// with a synthesized edge if a contour's last point doesn't land back
	// on its start, so an explicit CmdClose isn't required here.

	return p, bounds, nil
}

func fixedToVec(p fixed.Point26_6) vec.Vec2 {
	return vec.Vec2{X: float64(p.X) / 64, Y: float64(p.Y) / 64}
}
