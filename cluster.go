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

// voxelSeed is one pending flood-fill entry: a voxel still to be visited
// and tagged. Using an explicit LIFO stack of these instead of recursion
// keeps stack depth bounded by a constant regardless of component size —
// the reimplementation spec.md §9 recommends in place of the source's
// bounded-recursion-plus-rescan protocol (both satisfy the same
// invariants; the explicit stack is simpler and needs no overflow flag).
type voxelSeed struct {
	i, j, k int
}

// clusterState holds the Region Clusterer's per-call working state: the
// grid and the last tag assigned (the stack of pending voxels is local to
// each fill call). spec.md §9 calls out
// that the source's "points"/"big" overflow counters are per-call,
// per-component scratch state that a reimplementation should encapsulate
// in a context object rather than leave as globals; clusterState is that
// object. This implementation has no recursion to overflow, so it carries
// no points/big fields at all — the explicit stack has no depth limit to
// track in the first place.
type clusterState struct {
	g   *Grid
	tag int32
}

// clusterRegions implements the flood-fill region clustering of spec.md
// §4.5: each maximal 26-connected component of LabelSurfaceCandidate
// voxels (excluding the outermost grid shell, reserved as a sentinel) is
// assigned a distinct tag starting at 2, in i-major scan order. After the
// scan, tag 2 (the first component found, which by construction is the
// largest in well-formed inputs) remaps to
// LabelSurfaceCandidate; every higher tag remaps to LabelDiscarded.
//
// This stage runs serially: flood fill has a cross-voxel dependency
// through the tag each voxel is assigned, so there is no safe parallel
// decomposition (spec.md §5).
func clusterRegions(g *Grid) {
	cs := &clusterState{g: g, tag: 1}

	for i := 1; i < g.NX-1; i++ {
		for j := 1; j < g.NY-1; j++ {
			for k := 1; k < g.NZ-1; k++ {
				if g.Get(i, j, k) != LabelSurfaceCandidate {
					continue
				}
				cs.tag++
				cs.fill(i, j, k, cs.tag)
			}
		}
	}

	for idx, v := range g.Labels {
		switch {
		case v == firstClusterTag:
			g.Labels[idx] = LabelSurfaceCandidate
		case v > firstClusterTag:
			g.Labels[idx] = LabelDiscarded
		}
	}
}

// fill floods 26-connected LabelSurfaceCandidate voxels reachable from
// (si, sj, sk), tagging each with tag. The outermost grid shell is never
// pushed onto the stack, reserving it as a sentinel per spec.md §4.5.
func (cs *clusterState) fill(si, sj, sk int, tag int32) {
	g := cs.g
	stack := make([]voxelSeed, 0, 1024)
	stack = append(stack, voxelSeed{si, sj, sk})
	g.Set(si, sj, sk, tag)

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for di := -1; di <= 1; di++ {
			ni := s.i + di
			if ni <= 0 || ni >= g.NX-1 {
				continue
			}
			for dj := -1; dj <= 1; dj++ {
				nj := s.j + dj
				if nj <= 0 || nj >= g.NY-1 {
					continue
				}
				for dk := -1; dk <= 1; dk++ {
					if di == 0 && dj == 0 && dk == 0 {
						continue
					}
					nk := s.k + dk
					if nk <= 0 || nk >= g.NZ-1 {
						continue
					}
					if g.Get(ni, nj, nk) != LabelSurfaceCandidate {
						continue
					}
					g.Set(ni, nj, nk, tag)
					stack = append(stack, voxelSeed{ni, nj, nk})
				}
			}
		}
	}
}
