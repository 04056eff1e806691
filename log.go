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
	"time"

	"github.com/sirupsen/logrus"
)

// log is the package-level logger. Callers embedding serd in a larger
// program can redirect it with logrus.SetOutput/SetFormatter the same way
// cmd/inmapweb configures logrus.StandardLogger().
var log = logrus.StandardLogger()

// stageLogger reports the start and duration of a pipeline stage when
// verbose is true. It mirrors the level of detail InMAP's command-line
// driver prints between major steps ("Reading input data...", etc.), just
// routed through logrus fields instead of fmt.Println.
func stageLogger(verbose bool, stage string, nx, ny, nz int) func() {
	if !verbose {
		return func() {}
	}
	start := time.Now()
	log.WithFields(logrus.Fields{
		"stage": stage,
		"nx":    nx,
		"ny":    ny,
		"nz":    nz,
	}).Info("stage started")
	return func() {
		log.WithFields(logrus.Fields{
			"stage":    stage,
			"duration": time.Since(start).String(),
		}).Info("stage completed")
	}
}
