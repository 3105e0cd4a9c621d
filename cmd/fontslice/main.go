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

// Command fontslice loads a single glyph from a font file, runs it through
// the slicing pipeline, and dumps a coverage preview so the result can be
// checked by eye.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	slicer "github.com/edmundmk/font-slicer"
)

var (
	fontPath   = flag.String("font", "", "path to a TTF or OTF font file")
	configPath = flag.String("config", "", "optional TOML config file (see config.go)")
	glyphRune  = flag.String("glyph", "A", "the character to slice (first rune of this string)")
	outPath    = flag.String("out", "preview.pgm", "where to write the coverage preview")
	verbose    = flag.Bool("v", false, "log pipeline diagnostics")
)

func main() {
	flag.Parse()
	if *verbose {
		slicer.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fontslice:", err)
		os.Exit(1)
	}
}

func run() error {
	if *fontPath == "" {
		return fmt.Errorf("missing -font")
	}
	runes := []rune(*glyphRune)
	if len(runes) == 0 {
		return fmt.Errorf("-glyph must not be empty")
	}

	conf, err := readConfig(*configPath)
	if err != nil {
		return err
	}

	gf, err := loadFont(*fontPath, conf.PointSize)
	if err != nil {
		return err
	}

	if len(runes) >= 2 {
		if k, ok := gf.kern(runes[0], runes[1]); ok {
			fmt.Fprintf(os.Stderr, "fontslice: kerning %q->%q: %.2fpx\n", k.Left, k.Right, k.Offset)
		}
	}

	gid, err := gf.glyphIndex(runes[0])
	if err != nil {
		return fmt.Errorf("looking up glyph for %q: %w", runes[0], err)
	}

	p, bounds, err := gf.outline(gid)
	if err != nil {
		return err
	}

	glyph := slicer.SliceGlyph(p, bounds)

	preview := slicer.NewPreview(previewClip(bounds, conf.PreviewPx))
	preview.Flatness = conf.Flatness
	preview.CTM = previewCTM(bounds, conf.PreviewPx)

	width, height, coverage := preview.PreviewGlyph(glyph)
	if coverage == nil {
		return fmt.Errorf("glyph %q produced an empty preview (bad bounds or clip)", runes[0])
	}

	return writePGM(*outPath, width, height, coverage)
}

// previewClip returns the preview raster, a previewPx by previewPx square
// whatever the glyph's bounds; previewCTM fits the glyph inside it.
func previewClip(bounds rect.Rect, previewPx int) rect.Rect {
	return rect.Rect{LLx: 0, LLy: 0, URx: float64(previewPx), URy: float64(previewPx)}
}

// previewCTM maps the glyph's bounding box into the preview raster with a
// uniform scale, so its longer side fills 90% of the raster, and a
// translation that centres it. No flip is applied.
func previewCTM(bounds rect.Rect, previewPx int) matrix.Matrix {
	w := bounds.URx - bounds.LLx
	h := bounds.URy - bounds.LLy
	if w <= 0 || h <= 0 {
		return matrix.Identity
	}

	const margin = 0.9
	scale := margin * float64(previewPx) / max(w, h)
	tx := float64(previewPx)/2 - scale*(bounds.LLx+bounds.URx)/2
	ty := float64(previewPx)/2 - scale*(bounds.LLy+bounds.URy)/2

	return matrix.Matrix{scale, 0, 0, scale, tx, ty}
}
