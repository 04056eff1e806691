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

import "testing"

// TestSESAdjustSymmetricErosion surrounds a single solvent voxel with
// occupied voxels and checks that, after both SES passes, the solvent voxel
// is still LabelSurfaceCandidate and its occupied face neighbor has been
// carved (transient label, then remapped to LabelSurfaceCandidate).
func TestSESAdjustSymmetricErosion(t *testing.T) {
	g := mustGrid(t, 9, 9, 9)
	for idx := range g.Labels {
		g.Labels[idx] = LabelOccupied
	}
	g.Set(4, 4, 4, LabelUnoccupied)

	sesAdjust(g, 1.5, 1.0, 1)

	if g.Get(4, 4, 4) != LabelSurfaceCandidate {
		t.Errorf("solvent voxel after remap = %d, want %d", g.Get(4, 4, 4), LabelSurfaceCandidate)
	}
	// Every occupied voxel closer than probe/step = 1.5 voxels to the
	// solvent voxel is eroded to LabelSurfaceCandidate after remap; the
	// face neighbor at relative offset (0, 0, -1) is one voxel away.
	if g.Get(4, 4, 3) != LabelSurfaceCandidate {
		t.Errorf("eroded neighbor (4,4,3) = %d, want %d", g.Get(4, 4, 3), LabelSurfaceCandidate)
	}
}

// S2 — two touching atoms, SES: a connected surface cluster encloses both,
// and Interface returns both residue ids.
func TestScenarioS2TwoTouchingAtomsSES(t *testing.T) {
	g := mustGrid(t, 20, 20, 20)
	atoms := []Atom{
		{X: 4, Y: 5, Z: 5, R: 1.5},
		{X: 7, Y: 5, Z: 5, R: 1.5},
	}
	residues := []string{"A", "B"}
	if err := Surface(g, atoms, origin, identity, 0.6, 1.4, SES, 1, false); err != nil {
		t.Fatalf("Surface: %v", err)
	}
	hits, err := Interface(g, residues, atoms, origin, identity, 0.6, 1.4, 1, false)
	if err != nil {
		t.Fatalf("Interface: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, want 2: %v", len(hits), hits)
	}
}
