/*
Copyright © 2016 the SERD authors.
This file is part of SERD.

SERD is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SERD is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SERD.  If not, see <http://www.gnu.org/licenses/>.
*/

package serd

// extractSurface classifies every LabelUnoccupied voxel as either a surface
// voxel (at least one 26-neighbor is LabelOccupied) or deep solvent.
// Reads consult only the pre-stage labels (0 or 1); a voxel written to ±1
// never satisfies a neighbor's "== LabelOccupied" test, so the stage is
// stable under concurrent writes within the same pass (spec.md §4.4, §5).
func extractSurface(g *Grid, nthreads int) {
	forEachIndex(g.NX, nthreads, func(i int) {
		for j := 0; j < g.NY; j++ {
			for k := 0; k < g.NZ; k++ {
				if g.Get(i, j, k) != LabelUnoccupied {
					continue
				}
				if hasOccupiedNeighbor(g, i, j, k) {
					g.Set(i, j, k, LabelSurfaceCandidate)
				} else {
					g.Set(i, j, k, LabelDeepSolvent)
				}
			}
		}
	})
}

// hasOccupiedNeighbor reports whether any 26-neighbor of (i, j, k) carries
// LabelOccupied.
func hasOccupiedNeighbor(g *Grid, i, j, k int) bool {
	for di := -1; di <= 1; di++ {
		for dj := -1; dj <= 1; dj++ {
			for dk := -1; dk <= 1; dk++ {
				if di == 0 && dj == 0 && dk == 0 {
					continue
				}
				ni, nj, nk := i+di, j+dj, k+dk
				if g.Inside(ni, nj, nk) && g.Get(ni, nj, nk) == LabelOccupied {
					return true
				}
			}
		}
	}
	return false
}
