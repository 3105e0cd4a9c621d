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
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// config holds the settings read from the optional TOML file: the font point
// size, the preview's curve flattening tolerance and the preview raster size.
// None of them has a command-line flag.
type config struct {
	PointSize float64 `toml:"point_size"`
	Flatness  float64 `toml:"flatness"`
	PreviewPx int     `toml:"preview_px"`
}

func defaultConfig() config {
	return config{
		PointSize: 64,
		Flatness:  0.25,
		PreviewPx: 512,
	}
}

func readConfig(path string) (config, error) {
	conf := defaultConfig()
	if path == "" {
		return conf, nil
	}
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return config{}, fmt.Errorf("fontslice: reading config %s: %w", path, err)
	}
	return conf, nil
}

func writeConfig(path string, conf config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(&conf); err != nil {
		return fmt.Errorf("fontslice: encoding config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
