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

// filterNoise demotes any surface voxel with no deep-solvent neighbor to
// LabelDiscarded, removing isolated surface points that survived Region
// Clustering only because they happened to fall inside the retained
// component (spec.md §4.6).
func filterNoise(g *Grid, nthreads int) {
	forEachIndex(g.NX, nthreads, func(i int) {
		for j := 0; j < g.NY; j++ {
			for k := 0; k < g.NZ; k++ {
				if g.Get(i, j, k) != LabelSurfaceCandidate {
					continue
				}
				if !hasDeepSolventNeighbor(g, i, j, k) {
					g.Set(i, j, k, LabelDiscarded)
				}
			}
		}
	})
}

// hasDeepSolventNeighbor reports whether any 26-neighbor of (i, j, k)
// carries LabelDeepSolvent.
func hasDeepSolventNeighbor(g *Grid, i, j, k int) bool {
	for di := -1; di <= 1; di++ {
		for dj := -1; dj <= 1; dj++ {
			for dk := -1; dk <= 1; dk++ {
				if di == 0 && dj == 0 && dk == 0 {
					continue
				}
				ni, nj, nk := i+di, j+dj, k+dk
				if g.Inside(ni, nj, nk) && g.Get(ni, nj, nk) == LabelDeepSolvent {
					return true
				}
			}
		}
	}
	return false
}
