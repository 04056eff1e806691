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

// Package gridhash gives a run of the surface pipeline a stable identity
// derived from its inputs, so a driver (the CLI, or a cache layer in front
// of a batch job) can recognize "these exact atoms, rotation, geometry and
// probe were already computed" without re-running the stencils.
package gridhash

import (
	"encoding/gob"
	"fmt"
	"hash/fnv"

	"github.com/davecgh/go-spew/spew"
)

// Request is the full set of inputs that determine a Surface/Interface
// run's output; two Requests that compare equal under gob encoding always
// produce identical grids.
type Request struct {
	Atoms     []AtomKey
	RefX      float64
	RefY      float64
	RefZ      float64
	SinAlpha  float64
	CosAlpha  float64
	SinBeta   float64
	CosBeta   float64
	NX, NY, NZ int
	Step      float64
	Probe     float64
	SES       bool
}

// AtomKey is the hashable projection of an Atom (internal/gridhash does not
// import the serd package — callers translate their own atom slice into
// AtomKeys at the call site).
type AtomKey struct {
	X, Y, Z, R float64
}

// Fingerprint returns a stable hex digest of a Request, following the
// fnv+gob pattern of InMAP's object hasher: gob encoding gives a
// deterministic byte stream for plain numeric structs, falling back to a
// sorted-key spew dump only for the (here, unreachable) case of a value
// gob can't encode, so the fallback is kept for parity with the pattern
// rather than because Request needs it.
func Fingerprint(r Request) string {
	h := fnv.New128a()

	e := gob.NewEncoder(h)
	if err := e.Encode(r); err == nil {
		sum := h.Sum(nil)
		return fmt.Sprintf("%x", sum[:h.Size()])
	}

	printer := spew.ConfigState{
		Indent:                  " ",
		SortKeys:                true,
		DisableMethods:          true,
		SpewKeys:                true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}
	printer.Fprintf(h, "%#v", r)
	sum := h.Sum(nil)
	return fmt.Sprintf("%x", sum[:h.Size()])
}
