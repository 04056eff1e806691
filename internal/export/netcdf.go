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

// Package export writes a labeled voxel grid to a NetCDF file, the
// external-collaborator-facing file format a CLI driver or downstream
// visualization tool consumes (the core itself defines no file format —
// spec.md §6).
package export

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"

	"github.com/jvsguerra/serd"
)

// WriteNetCDF writes g's label array to w as a single 3-D integer variable
// named "label", dimensioned (x, y, z) with z as the fastest-varying
// dimension to match the grid's own k + nz*(j + ny*i) linearization. The
// header layout and write sequence mirror vargrid.go's CTMData.Write: build
// and Define() the header first, Create the file, then stream each
// variable's data in one Writer.Write call.
func WriteNetCDF(w *os.File, g *serd.Grid, step, probe float64) error {
	nx, ny, nz := g.Dims()

	h := cdf.NewHeader([]string{"x", "y", "z"}, []int{nx, ny, nz})
	h.AddAttribute("", "comment", "SERD solvent-excluded-surface voxel grid")
	h.AddAttribute("", "step", []float64{step})
	h.AddAttribute("", "probe", []float64{probe})
	h.AddVariable("label", []string{"x", "y", "z"}, []int32{0})
	h.AddAttribute("label", "description", "voxel label: -1 deep solvent, 0 interior/discarded, 1 surface")
	h.Define()

	f, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("serd/export: creating netcdf file: %w", err)
	}

	if err := writeLabels(f, g); err != nil {
		return fmt.Errorf("serd/export: writing label variable: %w", err)
	}
	if err := cdf.UpdateNumRecs(w); err != nil {
		return fmt.Errorf("serd/export: updating record count: %w", err)
	}
	return nil
}

// writeLabels converts g's int32 labels to int32 netcdf output (no
// precision loss, unlike vargrid.go's float64-to-float32 narrowing) and
// writes them in one shot, the way writeNCF does for sparse.DenseArray.
func writeLabels(f *cdf.File, g *serd.Grid) error {
	labels := g.Labels
	end := f.Header.Lengths("label")
	start := make([]int, len(end))
	w := f.Writer("label", start, end)
	_, err := w.Write(labels)
	return err
}
