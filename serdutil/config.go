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

// Package serdutil is the command-line front end around the serd core:
// TOML run-file parsing (mirroring inmaputil/config.go's VarGridConfig) and
// cobra/viper command wiring (mirroring inmaputil/cmd.go's InitializeConfig),
// neither of which is part of the core's in-scope responsibilities
// (spec.md §1 names "PDB parsing... CLI or scripting front-ends... file I/O
// for results" as external-collaborator concerns).
package serdutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/jvsguerra/serd"
)

// AtomRecord is one atom entry in a run file: a center, a van der Waals
// radius, and the residue identifier the Interface Extractor reports it
// under.
type AtomRecord struct {
	X, Y, Z, R float64
	Residue    string
}

// RunFile is the decoded shape of a TOML run file, the smallest
// self-contained description of a Surface/Interface call: grid geometry,
// rotation, probe radius, mode, and the atom list itself. A real PDB file
// is never read here — translating PDB records into this shape is exactly
// the "PDB parsing" the core spec pushes onto an external collaborator,
// and this package plays that collaborator's role for the CLI.
type RunFile struct {
	Grid struct {
		NX, NY, NZ int
		Step       float64
		Probe      float64
		RefX       float64
		RefY       float64
		RefZ       float64
		SinAlpha   float64
		CosAlpha   float64
		SinBeta    float64
		CosBeta    float64
		Mode       string // "sas" or "ses"
	}
	AtomRecords []AtomRecord `toml:"Atoms"`
}

// LoadRunFile decodes path as a TOML run file. Unlike inmaputil's viper
// configuration (which layers a config file over flags and environment
// variables for a long-running model configuration), a run file describes
// one self-contained geometry problem, so BurntSushi/toml is used directly
// rather than through viper's file-watching machinery.
func LoadRunFile(path string) (*RunFile, error) {
	var rf RunFile
	if _, err := toml.DecodeFile(path, &rf); err != nil {
		return nil, fmt.Errorf("serdutil: decoding run file %s: %w", path, err)
	}
	return &rf, nil
}

// Atoms returns the run file's atoms as the core's Atom type, and the
// parallel slice of residue identifiers Interface needs.
func (rf *RunFile) Atoms() ([]serd.Atom, []string) {
	atoms := make([]serd.Atom, len(rf.AtomRecords))
	residues := make([]string, len(rf.AtomRecords))
	for i, a := range rf.AtomRecords {
		atoms[i] = serd.Atom{X: a.X, Y: a.Y, Z: a.Z, R: a.R}
		residues[i] = a.Residue
	}
	return atoms, residues
}

// Mode translates the run file's Grid.Mode string into a serd.Mode,
// defaulting to SAS (the cheaper, non-eroded surface) when unset.
func (rf *RunFile) Mode() (serd.Mode, error) {
	switch rf.Grid.Mode {
	case "", "sas":
		return serd.SAS, nil
	case "ses":
		return serd.SES, nil
	default:
		return serd.SAS, fmt.Errorf("serdutil: Grid.Mode must be \"sas\" or \"ses\", got %q", rf.Grid.Mode)
	}
}

// Rotation builds the core's Rotation descriptor from the run file's flat
// sincos fields.
func (rf *RunFile) Rotation() serd.Rotation {
	return serd.Rotation{
		SinAlpha: rf.Grid.SinAlpha,
		CosAlpha: rf.Grid.CosAlpha,
		SinBeta:  rf.Grid.SinBeta,
		CosBeta:  rf.Grid.CosBeta,
	}
}

// Reference builds the core's Point descriptor for the run file's origin
// reference.
func (rf *RunFile) Reference() serd.Point {
	return serd.Point{X: rf.Grid.RefX, Y: rf.Grid.RefY, Z: rf.Grid.RefZ}
}

// checkOutputFile makes sure an output path's parent directory exists and
// expands environment variables, following inmaputil/config.go's
// checkOutputFile (minus the cloud-bucket branch: the core writes to local
// NetCDF/PNG files only, with no blob-storage collaborator in scope).
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf("serdutil: an output file path is required")
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("serdutil: output directory does not exist: %w", err)
	}
	return f, nil
}
