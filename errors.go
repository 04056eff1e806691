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

import "errors"

// Sentinel errors for the caller-responsibility failure modes of spec.md
// §7. Wrap with fmt.Errorf("serd: ...: %w", ErrX) so callers can use
// errors.Is while still getting a message naming the offending value.
var (
	// ErrShapeMismatch is returned when a caller-supplied slice's length
	// doesn't match the shape implied by other arguments (grid size !=
	// nx*ny*nz, or residue id count != atom count in Interface).
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrDegenerateGeometry is returned for step <= 0, probe < 0, or any
	// grid dimension < 3.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)
