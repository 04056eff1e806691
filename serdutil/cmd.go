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

package serdutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/jvsguerra/serd"
	"github.com/jvsguerra/serd/internal/export"
	"github.com/jvsguerra/serd/internal/gridhash"
	"github.com/jvsguerra/serd/internal/render"
)

// Version is the serd module version, set at build time via -ldflags the
// same way inmap.Version is reported by inmaputil's version command.
var Version = "dev"

// Cfg holds command-line configuration, mirroring inmaputil/cmd.go's Cfg:
// an embedded *viper.Viper so flags and environment variables (prefixed
// SERD_) resolve through one lookup.
type Cfg struct {
	*viper.Viper

	Root, surfaceCmd, interfaceCmd, versionCmd *cobra.Command
}

// InitializeConfig builds the cobra command tree. Two subcommands mirror
// the core's two external operations (spec.md §6): "surface" computes and
// writes the labeled grid, "interface" additionally (re-)derives and
// prints the touching residue list.
func InitializeConfig() *Cfg {
	cfg := &Cfg{Viper: viper.New()}
	cfg.SetEnvPrefix("SERD")
	cfg.AutomaticEnv()

	cfg.Root = &cobra.Command{
		Use:   "serd",
		Short: "Voxelized solvent-excluded-surface detector.",
		Long: `serd computes the solvent-accessible or solvent-excluded surface of a set
of atoms on a rotated voxel grid, and can extract the residues whose atoms
touch that surface.

Configuration is supplied as a TOML run file (see the --run flag); the
flags documented below set threading, logging and output options.`,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return setupLogging(cfg)
		},
	}
	cfg.Root.PersistentFlags().String("run", "", "path to a TOML run file")
	cfg.Root.PersistentFlags().Int("nthreads", 0, "worker threads (0 = runtime.GOMAXPROCS)")
	cfg.Root.PersistentFlags().Bool("verbose", false, "log per-stage timing")
	cfg.BindPFlag("run", cfg.Root.PersistentFlags().Lookup("run"))
	cfg.BindPFlag("nthreads", cfg.Root.PersistentFlags().Lookup("nthreads"))
	cfg.BindPFlag("verbose", cfg.Root.PersistentFlags().Lookup("verbose"))

	cfg.versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print the version number",
		DisableAutoGenTag: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("serd v%s\n", Version)
		},
	}

	cfg.surfaceCmd = &cobra.Command{
		Use:               "surface",
		Short:             "Compute the surface labeling and write it to a NetCDF file.",
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.runSurface(cmd)
		},
	}
	cfg.surfaceCmd.Flags().String("out", "", "output NetCDF path")
	cfg.surfaceCmd.Flags().Int("png-slice", -1, "if >= 0, also render this k-slice to a PNG named after <out> with its .nc suffix replaced by .png")
	cfg.BindPFlag("out", cfg.surfaceCmd.Flags().Lookup("out"))
	cfg.BindPFlag("png-slice", cfg.surfaceCmd.Flags().Lookup("png-slice"))

	cfg.interfaceCmd = &cobra.Command{
		Use:               "interface",
		Short:             "Compute the surface, then print residues touching it.",
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.runInterface(cmd)
		},
	}

	cfg.Root.AddCommand(cfg.versionCmd, cfg.surfaceCmd, cfg.interfaceCmd)
	return cfg
}

// setupLogging configures the package logger's level from --verbose,
// following inmaputil's pattern of a PersistentPreRunE that prepares
// shared state before any subcommand body runs.
func setupLogging(cfg *Cfg) error {
	if cfg.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return nil
}

// buildGrid loads the run file named by --run and allocates the grid it
// describes.
func (cfg *Cfg) buildGrid() (*serd.Grid, *RunFile, error) {
	runPath := cfg.GetString("run")
	if runPath == "" {
		return nil, nil, fmt.Errorf("serdutil: --run is required")
	}
	rf, err := LoadRunFile(runPath)
	if err != nil {
		return nil, nil, err
	}
	g, err := serd.NewGrid(rf.Grid.NX, rf.Grid.NY, rf.Grid.NZ)
	if err != nil {
		return nil, nil, err
	}
	return g, rf, nil
}

func (cfg *Cfg) runSurface(cmd *cobra.Command) error {
	g, rf, err := cfg.buildGrid()
	if err != nil {
		return err
	}
	atoms, _ := rf.Atoms()
	mode, err := rf.Mode()
	if err != nil {
		return err
	}
	nthreads := cfg.GetInt("nthreads")
	verbose := cfg.GetBool("verbose")

	logrus.WithFields(logrus.Fields{
		"fingerprint": gridhash.Fingerprint(requestFingerprint(rf, mode)),
		"natoms":      len(atoms),
	}).Info("starting surface computation")

	if err := serd.Surface(g, atoms, rf.Reference(), rf.Rotation(), rf.Grid.Step, rf.Grid.Probe, mode, nthreads, verbose); err != nil {
		return err
	}

	outPath, err := checkOutputFile(cfg.GetString("out"))
	if err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("serdutil: creating output file: %w", err)
	}
	defer f.Close()
	if err := export.WriteNetCDF(f, g, rf.Grid.Step, rf.Grid.Probe); err != nil {
		return err
	}

	if k := cfg.GetInt("png-slice"); k >= 0 {
		pngPath := strings.TrimSuffix(outPath, ".nc") + ".png"
		pf, err := os.Create(pngPath)
		if err != nil {
			return fmt.Errorf("serdutil: creating png file: %w", err)
		}
		defer pf.Close()
		if err := render.WriteSlicePNG(pf, g, k, 6*vg.Inch, 6*vg.Inch); err != nil {
			return err
		}
	}
	cmd.Printf("wrote %s\n", outPath)
	return nil
}

func (cfg *Cfg) runInterface(cmd *cobra.Command) error {
	g, rf, err := cfg.buildGrid()
	if err != nil {
		return err
	}
	atoms, residues := rf.Atoms()
	mode, err := rf.Mode()
	if err != nil {
		return err
	}
	nthreads := cfg.GetInt("nthreads")
	verbose := cfg.GetBool("verbose")

	if err := serd.Surface(g, atoms, rf.Reference(), rf.Rotation(), rf.Grid.Step, rf.Grid.Probe, mode, nthreads, verbose); err != nil {
		return err
	}
	hits, err := serd.Interface(g, residues, atoms, rf.Reference(), rf.Rotation(), rf.Grid.Step, rf.Grid.Probe, nthreads, verbose)
	if err != nil {
		return err
	}
	for _, id := range hits {
		cmd.Println(id)
	}
	return nil
}

// requestFingerprint translates a run file into internal/gridhash's
// Request type, giving the run's start-of-run log entry a stable identifier.
func requestFingerprint(rf *RunFile, mode serd.Mode) gridhash.Request {
	keys := make([]gridhash.AtomKey, len(rf.AtomRecords))
	for i, a := range rf.AtomRecords {
		keys[i] = gridhash.AtomKey{X: a.X, Y: a.Y, Z: a.Z, R: a.R}
	}
	return gridhash.Request{
		Atoms:    keys,
		RefX:     rf.Grid.RefX,
		RefY:     rf.Grid.RefY,
		RefZ:     rf.Grid.RefZ,
		SinAlpha: rf.Grid.SinAlpha,
		CosAlpha: rf.Grid.CosAlpha,
		SinBeta:  rf.Grid.SinBeta,
		CosBeta:  rf.Grid.CosBeta,
		NX:       rf.Grid.NX,
		NY:       rf.Grid.NY,
		NZ:       rf.Grid.NZ,
		Step:     rf.Grid.Step,
		Probe:    rf.Grid.Probe,
		SES:      mode == serd.SES,
	}
}
