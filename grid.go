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

// Package serd implements a voxelized solvent-excluded-surface detector for
// biomolecules: it rasterizes atoms into a rotated 3-D grid, derives the
// solvent-accessible or solvent-excluded surface by a sequence of stencil
// passes, removes enclosed cavities and isolated noise, and extracts the
// residues whose atoms touch the resulting surface.
package serd

import "fmt"

// Label values used by the grid at various pipeline stages. The same integer
// is reused with different meanings at different stages; see each stage's
// doc comment for the post-condition it establishes.
const (
	// LabelUnoccupied marks solvent/candidate voxels after seeding, and
	// reused as the "protein-adjacent solvent" test target during rasterization.
	LabelUnoccupied int32 = 1
	// LabelOccupied marks voxels inside an inflated atom sphere (SAS interior).
	LabelOccupied int32 = 0
	// LabelSESTransient is the transient erosion marker used within SES
	// Adjuster pass A; remapped to LabelSurfaceCandidate by pass B.
	LabelSESTransient int32 = -2
	// LabelSurfaceCandidate is the generic "candidate" value shared by SAS
	// seeding, SES remap output, surface-voxel output, and the winning
	// cluster's output — see the per-stage comments in surface.go,
	// cluster.go, and noise.go for which post-condition applies.
	LabelSurfaceCandidate int32 = 1
	// LabelDeepSolvent marks solvent voxels with no occupied neighbor.
	LabelDeepSolvent int32 = -1
	// LabelDiscarded marks voxels belonging to a discarded region
	// (an enclosed cavity's surface, or noise).
	LabelDiscarded int32 = 0
	// firstClusterTag is the first flood-fill tag assigned by the Region
	// Clusterer; tags strictly greater than this mark non-largest
	// components and are discarded during remap.
	firstClusterTag int32 = 2
)

// Mode selects whether Surface stops at the solvent-accessible surface or
// continues on to erode it into the solvent-excluded surface.
type Mode int

const (
	// SAS leaves the grid at the solvent-accessible-surface labeling.
	SAS Mode = iota
	// SES runs the SES Adjuster between rasterization and surface extraction.
	SES
)

// Grid is a dense, linearized 3-D integer label grid with fixed shape
// (NX, NY, NZ). Index linearization is k + NZ*(j + NY*i): the k (third)
// axis is stride-1. Every pipeline stage mutates Labels in place; Grid
// itself never reallocates once constructed.
type Grid struct {
	NX, NY, NZ int
	Labels     []int32
}

// NewGrid allocates a grid of the given shape, seeded to LabelUnoccupied.
// nx, ny, nz must each be at least 3: the Region Clusterer reserves the
// outermost shell as a sentinel and never enters it, so a grid with any
// dimension smaller than 3 has no interior for the flood fill to occupy.
func NewGrid(nx, ny, nz int) (*Grid, error) {
	if nx < 3 || ny < 3 || nz < 3 {
		return nil, fmt.Errorf("serd: %w: grid dimensions (%d, %d, %d) must each be >= 3", ErrDegenerateGeometry, nx, ny, nz)
	}
	g := &Grid{NX: nx, NY: ny, NZ: nz}
	g.Labels = make([]int32, nx*ny*nz)
	g.Seed()
	return g, nil
}

// Seed resets every voxel to LabelUnoccupied, the grid's initial state
// before rasterization.
func (g *Grid) Seed() {
	for i := range g.Labels {
		g.Labels[i] = LabelUnoccupied
	}
}

// index returns the linear offset of voxel (i, j, k). Callers that have
// already range-checked i, j, k (the common case, since every stencil loop
// clips its bounding box to the grid first) should use this directly.
// Get/Set do not range-check either; other callers guard with Inside.
func (g *Grid) index(i, j, k int) int {
	return k + g.NZ*(j+g.NY*i)
}

// Inside reports whether (i, j, k) addresses a voxel of this grid.
func (g *Grid) Inside(i, j, k int) bool {
	return i >= 0 && i < g.NX && j >= 0 && j < g.NY && k >= 0 && k < g.NZ
}

// Get returns the label at (i, j, k). It panics if the index is out of
// range; callers on the hot stencil path should guard with Inside first.
func (g *Grid) Get(i, j, k int) int32 {
	return g.Labels[g.index(i, j, k)]
}

// Set stores val at (i, j, k).
func (g *Grid) Set(i, j, k int, val int32) {
	g.Labels[g.index(i, j, k)] = val
}

// OnBoundaryShell reports whether (i, j, k) lies on the outermost shell of
// the grid (any coordinate at 0 or its axis maximum). The Region Clusterer
// reserves this shell as a sentinel that the flood fill never enters.
func (g *Grid) OnBoundaryShell(i, j, k int) bool {
	return i == 0 || i == g.NX-1 || j == 0 || j == g.NY-1 || k == 0 || k == g.NZ-1
}

// clone returns a deep copy of the grid, for use in tests.
func (g *Grid) clone() *Grid {
	c := &Grid{NX: g.NX, NY: g.NY, NZ: g.NZ}
	c.Labels = make([]int32, len(g.Labels))
	copy(c.Labels, g.Labels)
	return c
}

// Dims returns the grid's shape, for collaborators (internal/export,
// internal/render) that accept a *Grid without importing its fields.
func (g *Grid) Dims() (nx, ny, nz int) {
	return g.NX, g.NY, g.NZ
}

// Equal reports whether two grids have the same shape and identical labels.
func (g *Grid) Equal(o *Grid) bool {
	if g.NX != o.NX || g.NY != o.NY || g.NZ != o.NZ {
		return false
	}
	for i := range g.Labels {
		if g.Labels[i] != o.Labels[i] {
			return false
		}
	}
	return true
}
