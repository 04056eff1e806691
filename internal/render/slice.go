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

// Package render draws a single k-slice of a labeled voxel grid to a PNG,
// the same "give me a picture of this field" concern webserver.go serves
// over HTTP for InMAP's pollutant grids — reused here as a one-shot file
// writer for a CLI driver instead of an HTTP handler.
package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/jvsguerra/serd"
)

// labelGrid adapts a single k-slice of *serd.Grid to plotter.GridXYZ.
type labelGrid struct {
	g *serd.Grid
	k int
}

func (l labelGrid) Dims() (c, r int) {
	nx, ny, _ := l.g.Dims()
	return nx, ny
}

func (l labelGrid) Z(c, r int) float64 {
	return float64(l.g.Get(c, r, l.k))
}

func (l labelGrid) X(c int) float64 { return float64(c) }
func (l labelGrid) Y(r int) float64 { return float64(r) }

// labelPalette is a fixed 3-color palette: deep solvent, interior/discarded,
// surface. plotter.HeatMap buckets a GridXYZ's Z values linearly across the
// palette's color count, so the grid's own {-1, 0, 1} alphabet maps onto it
// directly without any min/max rescaling.
type labelPalette struct{}

func (labelPalette) Colors() []color.Color {
	return []color.Color{
		color.RGBA{R: 0x20, G: 0x60, B: 0xc0, A: 0xff}, // -1 deep solvent
		color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}, //  0 interior/discarded
		color.RGBA{R: 0xe0, G: 0x30, B: 0x30, A: 0xff}, //  1 surface
	}
}

var _ palette.Palette = labelPalette{}

// WriteSlicePNG renders the k-th slice (constant k, varying i/j) of g as a
// heatmap PNG, following webserver.go's plot.New → configure → WriterTo
// pipeline with plotter.HeatMap standing in for webserver.go's
// carto.ColorMap: carto's rendering reprojects polygon shapefiles into
// Google Maps tiles, which has no counterpart for an abstract integer
// lattice, so this package draws straight from gonum/plot's own raster
// primitive instead of adapting carto.
func WriteSlicePNG(w io.Writer, g *serd.Grid, k int, width, height vg.Length) error {
	nx, _, nz := g.Dims()
	if k < 0 || k >= nz {
		return fmt.Errorf("serd/render: slice index %d out of range [0, %d)", k, nz)
	}

	p, err := plot.New()
	if err != nil {
		return fmt.Errorf("serd/render: creating plot: %w", err)
	}
	p.Title.Text = fmt.Sprintf("surface labels, k=%d", k)
	p.X.Label.Text = "i"
	p.Y.Label.Text = "j"

	hm := plotter.NewHeatMap(labelGrid{g: g, k: k}, labelPalette{})
	hm.Min, hm.Max = -1, 1
	p.Add(hm)
	p.X.Min, p.X.Max = 0, float64(nx)

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("serd/render: building png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("serd/render: writing png: %w", err)
	}
	return nil
}
