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

import (
	"math"
	"sync/atomic"
)

// atomBBox is the voxel-space axis-aligned bounding box an inflated atom
// sphere can possibly touch, clipped to the grid. Shared between
// rasterize and extractInterface, which both walk the same sphere-to-voxel
// stencil (spec.md §4.2 and §4.7).
func atomBBox(g *Grid, center Point, radius float64) (imin, imax, jmin, jmax, kmin, kmax int) {
	imin = clampInt(int(math.Floor(center.X-radius)), 0, g.NX-1)
	imax = clampInt(int(math.Ceil(center.X+radius)), 0, g.NX-1)
	jmin = clampInt(int(math.Floor(center.Y-radius)), 0, g.NY-1)
	jmax = clampInt(int(math.Ceil(center.Y+radius)), 0, g.NY-1)
	kmin = clampInt(int(math.Floor(center.Z-radius)), 0, g.NZ-1)
	kmax = clampInt(int(math.Ceil(center.Z+radius)), 0, g.NZ-1)
	return
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// inflatedRadius is the voxel-space radius of an atom's probe-inflated
// sphere: (R + probe) / step, per spec.md §4.2 step 3.
func inflatedRadius(a Atom, probe, step float64) float64 {
	return (a.R + probe) / step
}

// rasterize marks every voxel within each atom's probe-inflated sphere as
// LabelOccupied. Atoms are processed concurrently; each worker only ever
// writes LabelOccupied (never reads a neighbor's label), so concurrent
// writes from overlapping spheres are safe without synchronization — the
// same reasoning the teacher's InitInMAPdata partitioning relies on for
// its per-cell, write-only initialization pass.
func rasterize(g *Grid, atoms []Atom, ref Point, rot Rotation, step, probe float64, nthreads int) {
	forEachIndex(len(atoms), nthreads, func(idx int) {
		a := atoms[idx]
		center := gridCenter(a, ref, rot, step)
		radius := inflatedRadius(a, probe, step)
		r2 := radius * radius

		imin, imax, jmin, jmax, kmin, kmax := atomBBox(g, center, radius)
		for i := imin; i <= imax; i++ {
			dx := float64(i) - center.X
			for j := jmin; j <= jmax; j++ {
				dy := float64(j) - center.Y
				for k := kmin; k <= kmax; k++ {
					dz := float64(k) - center.Z
					// Strictly less than H: spec.md §6's numeric semantics
					// make this asymmetric with Interface's <= test.
					if dx*dx+dy*dy+dz*dz < r2 {
						g.Set(i, j, k, LabelOccupied)
					}
				}
			}
		}
	})
}

// extractInterface re-derives, without mutating g, which atoms touch a
// surface voxel (LabelSurfaceCandidate after Surface has run) by walking
// the same probe-inflated bounding box the Rasterizer wrote with — spec.md
// §4.7 reuses "the rasterization geometry of §4.2", and H there is the
// inflated radius (r+probe)/step, not the bare van der Waals radius: surface
// voxels sit at the shell of the inflated sphere, so searching only the
// unflated sphere would never reach them. An atom "touches" the surface if
// any voxel of its inflated bounding box, within H, coincides with a
// surface voxel.
//
// Results are collected per-atom into a fixed-size slice so that ordering
// is deterministic regardless of goroutine completion order, then
// deduplicated by residue ID while preserving ascending atom-index order
// and skipping a residue ID only when it repeats the immediately preceding
// accepted one — matching how cellList (list.go) walks a linked sequence
// without introducing a set's arbitrary iteration order.
func extractInterface(g *Grid, residueIDs []string, atoms []Atom, ref Point, rot Rotation, step, probe float64, nthreads int) ([]string, error) {
	touches := make([]int32, len(atoms))

	forEachIndex(len(atoms), nthreads, func(idx int) {
		a := atoms[idx]
		center := gridCenter(a, ref, rot, step)
		radius := inflatedRadius(a, probe, step)

		imin, imax, jmin, jmax, kmin, kmax := atomBBox(g, center, radius)
		for i := imin; i <= imax; i++ {
			dx := float64(i) - center.X
			for j := jmin; j <= jmax; j++ {
				dy := float64(j) - center.Y
				for k := kmin; k <= kmax; k++ {
					dz := float64(k) - center.Z
					dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
					// spec.md §6: interface extraction uses <=, not the
					// rasterizer's strict <, per the asymmetry §6 flags as
					// load-bearing.
					if dist > radius {
						continue
					}
					if g.Get(i, j, k) == LabelSurfaceCandidate {
						atomic.StoreInt32(&touches[idx], 1)
					}
				}
			}
		}
	})

	out := make([]string, 0, len(atoms))
	last := ""
	haveLast := false
	for idx, hit := range touches {
		if hit == 0 {
			continue
		}
		id := residueIDs[idx]
		if haveLast && id == last {
			continue
		}
		out = append(out, id)
		last = id
		haveLast = true
	}
	return out, nil
}
