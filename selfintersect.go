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

// ResolveSelfIntersections finds intra-ring edge crossings and splits and
// re-wires the graph so that every ring that remains is simple (does not
// cross itself). Each crossing found between two distinct, non-adjacent
// edges of a ring splits that ring into two: the ring containing the rest
// of the original boundary, and a new inner ring formed from the stretch of
// edges between the two crossing points.
func ResolveSelfIntersections(g *Graph) {
	for ringIdx := 0; ringIdx < len(g.roots); ringIdx++ {
		root := g.roots[ringIdx]
		splitSelfCrossingEdges(g, root)
		resolveRingCrossings(g, root)
	}
}

// splitSelfCrossingEdges finds cubic edges that cross themselves (both
// sides of the crossing lie on the same edge, so the general two-edge
// rewire below does not apply) and splits them at the first crossing
// parameter so the pinch becomes a corner. This narrows but does not fully
// eliminate the anomaly: turning the pinch into a genuine second ring would
// require an edge to serve simultaneously as both halves of the rewire
// below, which the ring model cannot express without duplicating the
// curve. The pinch is left as a diagnosed, non-fatal topology anomaly; C6's
// winding-consistency check (see sweep.go) discards any spurious hole it
// produces.
func splitSelfCrossingEdges(g *Graph, root vertexRef) {
	const maxEdges = 1 << 16

	v := root
	for steps := 0; steps < maxEdges; steps++ {
		e := g.vertices[v].nextEdge
		if g.edges[e].kind == EdgeCubic {
			c := g.edgeAsCubic(e)
			if t0, _, ok := c.SelfIntersection(); ok {
				if mid, split := g.SplitEdgeAt(e, t0); split {
					diagLogger().Warn("edge self-intersection pinch left unresolved",
						"vertex", int(mid))
				}
			}
		}
		v = g.edges[e].to
		if v == root {
			return
		}
	}
	diagLogger().Warn("ring traversal exceeded bound while scanning for self-crossing edges")
}

// resolveRingCrossings implements the inter-edge half of C4.
func resolveRingCrossings(g *Graph, root vertexRef) {
	const maxRestarts = 1 << 12

	for restarts := 0; restarts < maxRestarts; restarts++ {
		edges := g.ringEdges(root)
		n := len(edges)
		split := false

		for i := 0; i < n && !split; i++ {
			for j := i + 1; j < n && !split; j++ {
				if ringAdjacent(n, i, j) {
					continue
				}

				d, e := edges[i], edges[j]
				pts := IntersectCubics(g.edgeAsCubic(d), g.edgeAsCubic(e))

				for _, pt := range pts {
					if pt.TA <= 0 || pt.TA >= 1 || pt.TB <= 0 || pt.TB >= 1 {
						continue // shared-endpoint ties, filtered per the source.
					}

					a2, okA := g.SplitEdgeAt(d, pt.TA)
					if !okA {
						continue
					}
					b2, okB := g.SplitEdgeAt(e, pt.TB)
					if !okB {
						continue
					}

					dRight := g.vertices[a2].nextEdge
					eRight := g.vertices[b2].nextEdge

					g.edges[dRight].from = b2
					g.edges[eRight].from = a2
					g.vertices[a2].nextEdge = eRight
					g.vertices[b2].nextEdge = dRight

					g.addRoot(b2)

					split = true
					break
				}
			}
		}

		if !split {
			return
		}
		// Re-wiring invalidated the edge-index snapshot; restart the scan
		// for this ring (it may still cross itself further along).
	}
	diagLogger().Warn("self-intersection resolution exceeded restart bound", "root", int(root))
}

func (g *Graph) ringEdges(root vertexRef) []edgeRef {
	const maxEdges = 1 << 16

	var edges []edgeRef
	v := root
	for steps := 0; steps < maxEdges; steps++ {
		e := g.vertices[v].nextEdge
		edges = append(edges, e)
		v = g.edges[e].to
		if v == root {
			return edges
		}
	}
	diagLogger().Warn("ring traversal exceeded bound while collecting edges", "root", int(root))
	return edges
}

func ringAdjacent(n, i, j int) bool {
	if j == i+1 {
		return true
	}
	if i == 0 && j == n-1 {
		return true
	}
	return false
}
