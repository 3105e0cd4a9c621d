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
	"bufio"
	"fmt"
	"os"
)

// writePGM dumps a coverage buffer (values 0..1, row-major, width*height
// long) as a plain PGM (P2) image, so the preview can be inspected without
// pulling in an image codec the rest of the corpus never reaches for.
func writePGM(path string, width, height int, coverage []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("fontslice: creating preview file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "P2\n%d %d\n255\n", width, height)
	for y := 0; y < height; y++ {
		row := coverage[y*width : (y+1)*width]
		for x, c := range row {
			if x > 0 {
				w.WriteByte(' ')
			}
			fmt.Fprintf(w, "%d", coverageByte(c))
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}

func coverageByte(c float32) int {
	v := int(c*255 + 0.5)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
