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
	"fmt"
	"math"
)

// Atom is one van der Waals sphere: a center in world (Ångström) space and
// a radius. The core never parses PDB records or computes radii itself —
// those are the external collaborator's job (spec.md §1).
type Atom struct {
	X, Y, Z float64
	R       float64
}

// Point is a world-space or grid-space 3-vector. It is used both for the
// origin reference (world space) and, internally, for rotated grid-space
// atom centers.
type Point struct {
	X, Y, Z float64
}

// Rotation is the two-axis rotation descriptor that aligns the molecule
// with the grid's principal frame: sincos = (sinα, cosα, sinβ, cosβ).
type Rotation struct {
	SinAlpha, CosAlpha float64
	SinBeta, CosBeta   float64
}

// Valid reports whether the rotation's trig pairs are each consistent
// (|sin|^2 + |cos|^2 ~= 1), per spec.md §6's input constraint.
func (r Rotation) Valid() bool {
	const tol = 1e-6
	a := r.SinAlpha*r.SinAlpha + r.CosAlpha*r.CosAlpha
	b := r.SinBeta*r.SinBeta + r.CosBeta*r.CosBeta
	return math.Abs(a-1) < tol && math.Abs(b-1) < tol
}

// apply rotates a grid-space point (x, y, z) — already divided by step and
// offset from the reference — using the two-axis rotation of spec.md §4.2
// step 2.
func (r Rotation) apply(x, y, z float64) (xr, yr, zr float64) {
	xp := x*r.CosBeta + z*r.SinBeta
	yp := y
	zp := -x*r.SinBeta + z*r.CosBeta

	xpp := xp
	ypp := yp*r.CosAlpha - zp*r.SinAlpha
	zpp := yp*r.SinAlpha + zp*r.CosAlpha
	return xpp, ypp, zpp
}

// gridCenter converts an atom's world-space center into the grid's rotated,
// step-scaled frame, following spec.md §4.2 steps 1-2.
func gridCenter(a Atom, ref Point, rot Rotation, step float64) Point {
	x := (a.X - ref.X) / step
	y := (a.Y - ref.Y) / step
	z := (a.Z - ref.Z) / step
	xr, yr, zr := rot.apply(x, y, z)
	return Point{X: xr, Y: yr, Z: zr}
}

// validateCommon checks the input constraints of spec.md §6 that are shared
// by Surface and Interface: grid dimensions, grid label count, step and
// probe sign, and rotation consistency. The atom count is len(atoms), so
// there is no separate natoms to check against.
func validateCommon(g *Grid, atoms []Atom, ref Point, rot Rotation, step, probe float64) error {
	if g == nil {
		return fmt.Errorf("serd: %w: grid is nil", ErrDegenerateGeometry)
	}
	if g.NX < 3 || g.NY < 3 || g.NZ < 3 {
		return fmt.Errorf("serd: %w: grid dimensions (%d, %d, %d) must each be >= 3", ErrDegenerateGeometry, g.NX, g.NY, g.NZ)
	}
	if len(g.Labels) != g.NX*g.NY*g.NZ {
		return fmt.Errorf("serd: %w: grid has %d labels but shape (%d, %d, %d) implies %d", ErrShapeMismatch, len(g.Labels), g.NX, g.NY, g.NZ, g.NX*g.NY*g.NZ)
	}
	if step <= 0 {
		return fmt.Errorf("serd: %w: step must be > 0, got %g", ErrDegenerateGeometry, step)
	}
	if probe < 0 {
		return fmt.Errorf("serd: %w: probe must be >= 0, got %g", ErrDegenerateGeometry, probe)
	}
	if !rot.Valid() {
		return fmt.Errorf("serd: %w: rotation sincos pairs are not consistent trig pairs", ErrDegenerateGeometry)
	}
	_ = atoms // shape of atoms is validated against residueIDs/natoms by callers that have that context
	return nil
}
