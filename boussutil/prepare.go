/*
Copyright © 2019 the Bouss authors.
This file is part of Bouss.

Bouss is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Bouss is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Bouss.  If not, see <http://www.gnu.org/licenses/>.
*/

package boussutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iwlab/bouss/snapshot"
	"github.com/iwlab/bouss/solver"
	"github.com/iwlab/bouss/switchboard"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// File names written by Prepare.
const (
	ProblemFile = "problem.toml"
	ParamsFile  = "params.toml"
)

// LogName returns the name of the experiment log of the experiment name.
func LogName(name string) string { return "LOG_" + name + ".txt" }

// Prepare writes the solver inputs of sb to dir: the problem description,
// the resolved parameters, the experiment log entry and the profile
// snapshots. Relative snapshot directories are taken relative to dir.
func Prepare(sb *switchboard.Switchboard, dir string, log logrus.FieldLogger) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("bouss: creating output directory: %v", err)
	}
	c := sb.Config()
	run := solver.NewRun(sb, nil)

	if err := writeFile(filepath.Join(dir, ProblemFile), solver.NewProblem(sb, run).Encode); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, ParamsFile), sb.EncodeTOML); err != nil {
		return err
	}
	if err := appendLog(sb, filepath.Join(dir, LogName(c.Name))); err != nil {
		return err
	}

	if c.Snapshots.Background {
		// The solver writes the background as N0*BP.
		bp := sb.Background()
		floats.Scale(sb.Forcing().N0, bp)
		path := under(dir, switchboard.ProfileFile(c.Snapshots.Dir, c.Snapshots.BackgroundDir))
		if err := writeProfile(sb, path, switchboard.BackgroundTask, bp); err != nil {
			return err
		}
		log.WithField("file", path).Debug("wrote background profile")
	}
	if sb.TakeSpongeSnaps() {
		path := under(dir, switchboard.ProfileFile(c.Snapshots.Dir, c.Snapshots.SpongeDir))
		if err := writeProfile(sb, path, switchboard.SpongeTask, sb.Sponge()); err != nil {
			return err
		}
		log.WithField("file", path).Debug("wrote sponge profile")
	}

	log.WithFields(logrus.Fields{
		"name":          c.Name,
		"modules":       fmt.Sprintf("%s/%s/%s", c.Modules.BoundaryForcing, c.Modules.BackgroundProfile, c.Modules.SpongeLayer),
		"stop_sim_time": run.StopSimTime,
		"dir":           dir,
	}).Info("prepared experiment")
	return nil
}

func writeProfile(sb *switchboard.Switchboard, path, task string, values []float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("bouss: creating snapshot directory: %v", err)
	}
	return snapshot.WriteProfile(path, sb.X(), sb.Z(), task, values)
}

// writeFile creates path and fills it with encode.
func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bouss: %v", err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("bouss: writing %s: %v", path, err)
	}
	return f.Close()
}

// appendLog appends the parameter summary of sb to path.
func appendLog(sb *switchboard.Switchboard, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("bouss: %v", err)
	}
	if err := sb.WriteLog(f); err != nil {
		f.Close()
		return fmt.Errorf("bouss: writing %s: %v", path, err)
	}
	return f.Close()
}
