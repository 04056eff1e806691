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
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// forEachIndex runs fn(idx) for idx in [0, n), splitting the range across
// worker goroutines the way run.go's Calculations partitions d.Cells across
// nprocs: each worker claims a contiguous chunk rather than a single index,
// so that false-sharing and per-goroutine overhead stay low even when n is
// very large (e.g. one call per voxel).
//
// nthreads caps concurrency. If nthreads <= 0, runtime.GOMAXPROCS(0) is
// used, matching the teacher's own default. Work is split into more chunks
// than there are threads so that atoms or voxel ranges with uneven cost
// (an atom near the grid edge touches far fewer voxels than one at the
// center) don't leave workers idle; a semaphore bounds how many chunks run
// at once to nthreads.
func forEachIndex(n, nthreads int, fn func(idx int)) {
	if n <= 0 {
		return
	}
	if nthreads <= 0 {
		nthreads = runtime.GOMAXPROCS(0)
	}
	if nthreads > n {
		nthreads = n
	}

	const chunksPerWorker = 4
	nchunks := nthreads * chunksPerWorker
	if nchunks > n {
		nchunks = n
	}
	chunkSize := (n + nchunks - 1) / nchunks

	sem := semaphore.NewWeighted(int64(nthreads))
	ctx := context.Background()
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			// context.Background() never cancels or times out, so
			// Acquire only fails if weight > sem's size, which can't
			// happen here since nthreads >= 1.
			panic(err)
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			defer sem.Release(1)
			for idx := lo; idx < hi; idx++ {
				fn(idx)
			}
		}(start, end)
	}
	wg.Wait()
}

// normalizeThreads returns nthreads if positive, otherwise the runtime's
// default parallelism, the same fallback forEachIndex applies internally.
// Exported call sites (Surface, Interface) use it so log messages report
// the thread count that will actually be used.
func normalizeThreads(nthreads int) int {
	if nthreads <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return nthreads
}

// Surface mutates g in place to the final surface labeling, following the
// fixed pipeline order of spec.md §4.8:
//
//  1. Seed grid to all LabelUnoccupied.
//  2. Rasterize atoms with the given probe radius.
//  3. If mode == SES, run the SES Adjuster.
//  4. Run the Surface Extractor.
//  5. Run the Region Clusterer.
//  6. Run the Noise Filter.
func Surface(g *Grid, atoms []Atom, ref Point, rot Rotation, step, probe float64, mode Mode, nthreads int, verbose bool) error {
	if err := validateCommon(g, atoms, ref, rot, step, probe); err != nil {
		return err
	}
	nthreads = normalizeThreads(nthreads)

	done := stageLogger(verbose, "seed", g.NX, g.NY, g.NZ)
	g.Seed()
	done()

	done = stageLogger(verbose, "rasterize", g.NX, g.NY, g.NZ)
	rasterize(g, atoms, ref, rot, step, probe, nthreads)
	done()

	if mode == SES {
		done = stageLogger(verbose, "ses_adjust", g.NX, g.NY, g.NZ)
		sesAdjust(g, probe, step, nthreads)
		done()
	}

	done = stageLogger(verbose, "surface_extract", g.NX, g.NY, g.NZ)
	extractSurface(g, nthreads)
	done()

	done = stageLogger(verbose, "region_cluster", g.NX, g.NY, g.NZ)
	clusterRegions(g)
	done()

	done = stageLogger(verbose, "noise_filter", g.NX, g.NY, g.NZ)
	filterNoise(g, nthreads)
	done()

	return nil
}

// Interface re-rasterizes atoms against a grid that has already been
// labeled by Surface, without mutating it, and returns the residue
// identifiers of atoms that touch a surface voxel, in ascending atom-index
// order with duplicates suppressed (spec.md §4.7).
func Interface(g *Grid, residueIDs []string, atoms []Atom, ref Point, rot Rotation, step, probe float64, nthreads int, verbose bool) ([]string, error) {
	if err := validateCommon(g, atoms, ref, rot, step, probe); err != nil {
		return nil, err
	}
	if len(residueIDs) != len(atoms) {
		return nil, fmt.Errorf("serd: %w: %d residue ids for %d atoms", ErrShapeMismatch, len(residueIDs), len(atoms))
	}
	nthreads = normalizeThreads(nthreads)

	done := stageLogger(verbose, "interface_extract", g.NX, g.NY, g.NZ)
	defer done()
	return extractInterface(g, residueIDs, atoms, ref, rot, step, probe, nthreads)
}
