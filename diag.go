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
	"context"
	"log/slog"
	"sync/atomic"
)

// diag is the package's ambient diagnostic channel. Topology anomalies that
// the pipeline can route around (a missed split, a malformed ring, a pinch
// that can't be fully resolved) are reported here rather than returned as
// errors: per the package's error-handling convention, a single malformed
// glyph never aborts a batch. Callers that want to observe these anomalies
// install a logger with SetLogger; by default nothing is emitted.
var diag atomic.Pointer[slog.Logger]

func init() {
	diag.Store(slog.New(nopHandler{}))
}

// SetLogger installs l as the destination for slicer diagnostics. Anomalies
// are logged at slog.LevelWarn; pass nil to restore the no-op default.
//
// Diagnostics logged this way include:
//   - a ring whose traversal exceeded the internal safety bound (malformed
//     input graph)
//   - an edge self-intersection that could not be split into a second ring
//   - a spurious hole discarded by the plane-sweep winding check
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	diag.Store(l)
}

func diagLogger() *slog.Logger {
	return diag.Load()
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler       { return h }
func (h nopHandler) WithGroup(string) slog.Handler            { return h }
