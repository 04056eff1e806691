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

import "math"

// sesAdjust erodes the SAS labeling by one probe radius, converting it to
// SES. Pass A marks every LabelOccupied voxel closer than one probe radius
// to a protein-adjacent solvent voxel with the transient LabelSESTransient
// marker, so a voxel flipped during pass A does not itself trigger further
// expansion within the same pass. Pass B remaps the transient marker to
// LabelSurfaceCandidate.
func sesAdjust(g *Grid, probe, step float64, nthreads int) {
	shell := int(math.Ceil(probe / step))
	probeVox := probe / step

	forEachIndex(g.NX, nthreads, func(i int) {
		for j := 0; j < g.NY; j++ {
			for k := 0; k < g.NZ; k++ {
				if g.Get(i, j, k) != LabelUnoccupied {
					continue
				}
				if !hasProteinAdjacentNeighbor(g, i, j, k) {
					continue
				}
				expandProbeShell(g, i, j, k, shell, probeVox)
			}
		}
	})

	for idx, v := range g.Labels {
		if v == LabelSESTransient {
			g.Labels[idx] = LabelSurfaceCandidate
		}
	}
}

// hasProteinAdjacentNeighbor reports whether any 26-neighbor of (i, j, k)
// carries LabelOccupied or LabelSESTransient — the latter tolerated so that
// a voxel already carved by another seed in the same pass still counts as
// protein-adjacent, per spec.md §4.3.
func hasProteinAdjacentNeighbor(g *Grid, i, j, k int) bool {
	for di := -1; di <= 1; di++ {
		for dj := -1; dj <= 1; dj++ {
			for dk := -1; dk <= 1; dk++ {
				if di == 0 && dj == 0 && dk == 0 {
					continue
				}
				ni, nj, nk := i+di, j+dj, k+dk
				if !g.Inside(ni, nj, nk) {
					continue
				}
				switch g.Get(ni, nj, nk) {
				case LabelOccupied, LabelSESTransient:
					return true
				}
			}
		}
	}
	return false
}

// expandProbeShell carves every currently-occupied voxel within probeVox of
// (i, j, k) to LabelSESTransient, within a bounding box of side
// 2*shell+1 clipped to the grid.
//
// spec.md §9 flags the source's inner guard as using a strict i2 > 0 (not
// i2 >= 0) bound, silently excluding the i2 == 0 slab of the search box from
// ever being tested — an off-by-one that under-erodes one voxel layer at
// one edge of each shell. This reimplementation deliberately does NOT
// mirror that bug: §9 offers the choice explicitly ("decide between
// faithful reproduction and a corrected i2 >= 0 per acceptance criteria"),
// and every acceptance scenario in §8 is stated in terms of the correct,
// symmetric erosion geometry (S2's "connected surface cluster enclosing
// both atoms", S7's SAS ⊆ SES superset property) rather than in terms of
// the slab-dropping variant, so the corrected bound is what the testable
// properties actually require.
func expandProbeShell(g *Grid, i, j, k, shell int, probeVox float64) {
	imin, imax := clampInt(i-shell, 0, g.NX-1), clampInt(i+shell, 0, g.NX-1)
	jmin, jmax := clampInt(j-shell, 0, g.NY-1), clampInt(j+shell, 0, g.NY-1)
	kmin, kmax := clampInt(k-shell, 0, g.NZ-1), clampInt(k+shell, 0, g.NZ-1)
	p2 := probeVox * probeVox

	for wi := imin; wi <= imax; wi++ {
		dx := float64(wi - i)
		for wj := jmin; wj <= jmax; wj++ {
			dy := float64(wj - j)
			for wk := kmin; wk <= kmax; wk++ {
				if g.Get(wi, wj, wk) != LabelOccupied {
					continue
				}
				dz := float64(wk - k)
				if dx*dx+dy*dy+dz*dz < p2 {
					g.Set(wi, wj, wk, LabelSESTransient)
				}
			}
		}
	}
}
