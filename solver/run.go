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

package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/iwlab/bouss/switchboard"
	"github.com/sirupsen/logrus"
)

// Snapshot file handler modes.
const (
	ModeOverwrite = "overwrite"
	ModeAppend    = "append"
)

// Run holds the stopping conditions and initial time step of a run.
type Run struct {
	StopSimTime  float64 // seconds
	StopWallTime float64 // seconds
	// StopIteration is the iteration limit; 0 means no limit.
	StopIteration int
	Dt            float64
	Mode          string
}

// Checkpoint is the state a restarted run continues from.
type Checkpoint struct {
	Write  int
	LastDt float64
}

// NewRun returns the stopping conditions for sb. A run restarted from cp
// continues with the checkpoint's last time step for Restart.AddTime more
// seconds and appends to the existing snapshot files.
func NewRun(sb *switchboard.Switchboard, cp *Checkpoint) Run {
	c := sb.Config()
	r := Run{
		StopSimTime:   sb.StopSimTime(),
		StopWallTime:  c.Stop.WallTime * 60,
		StopIteration: c.Stop.Iteration,
		Dt:            c.Timestep.Dt,
		Mode:          ModeOverwrite,
	}
	if cp != nil {
		r.StopSimTime += c.Restart.AddTime
		r.Dt = cp.LastDt
		r.Mode = ModeAppend
	}
	return r
}

// ErrBlowUp is returned when the monitored flow property stops being
// finite.
var ErrBlowUp = errors.New("solver: code blew up, flow property is not finite")

// Solver is implemented by the external solver.
type Solver interface {
	// OK reports whether none of the stopping conditions has been met.
	OK() bool

	// Step advances the solution by dt and returns the step taken.
	Step(dt float64) (float64, error)

	Iteration() int
	SimTime() float64

	// ComputeDT returns the CFL-limited time step.
	ComputeDT() float64

	// FlowMax returns the global maximum of the named flow property.
	FlowMax(name string) float64
}

// LoopConfig controls the main loop.
type LoopConfig struct {
	Dt       float64
	Adaptive bool

	// TimeFactor divides times in log messages; it is 1 when the run is
	// stopped by simulation time and the forcing period otherwise.
	TimeFactor float64
	UseSimTime bool

	FlowName string

	// StopSimTime is logged when the loop starts.
	StopSimTime float64

	// LogCadence is the number of iterations between progress messages.
	LogCadence int

	// Procs is the number of processes, for the cpu-hour estimate.
	Procs int
}

// NewLoopConfig returns the loop settings for sb starting from r.
func NewLoopConfig(sb *switchboard.Switchboard, r Run) LoopConfig {
	c := sb.Config()
	lc := LoopConfig{
		Dt:          r.Dt,
		Adaptive:    c.Timestep.Adaptive,
		UseSimTime:  c.Stop.UseSimTime,
		TimeFactor:  1,
		FlowName:    c.Flow.Name,
		StopSimTime: r.StopSimTime,
		LogCadence:  10,
		Procs:       1,
	}
	if !c.Stop.UseSimTime {
		lc.TimeFactor = sb.Forcing().T
	}
	return lc
}

// Loop steps s until it reports that a stopping condition has been met,
// the context is canceled, or the flow property blows up. Iteration and
// timing statistics are logged however the loop ends.
func Loop(ctx context.Context, s Solver, c LoopConfig, log logrus.FieldLogger) (err error) {
	endFmt, iterFmt := "Sim end period: %f", "Iteration: %d, t/T: %e, dt/T: %e"
	if c.UseSimTime {
		endFmt, iterFmt = "Sim end time: %f", "Iteration: %d, Time: %e, dt: %e"
	}
	tf := c.TimeFactor
	if tf == 0 {
		tf = 1
	}
	cadence := c.LogCadence
	if cadence <= 0 {
		cadence = 10
	}
	procs := c.Procs
	if procs <= 0 {
		procs = 1
	}

	log.Infof(endFmt, c.StopSimTime/tf)
	log.Info("Starting loop")
	start := time.Now()
	defer func() {
		if err != nil {
			log.Error("Exception raised, triggering end of main loop.")
		}
		elapsed := time.Since(start)
		log.Infof("Iterations: %d", s.Iteration())
		log.Infof(endFmt, s.SimTime()/tf)
		log.Infof("Run time: %.2f sec", elapsed.Seconds())
		log.Infof("Run time: %f cpu-hr", elapsed.Hours()*float64(procs))
	}()

	dt := c.Dt
	for s.OK() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if c.Adaptive {
			dt = s.ComputeDT()
		}
		if dt, err = s.Step(dt); err != nil {
			return fmt.Errorf("solver: step %d: %w", s.Iteration(), err)
		}
		if (s.Iteration()-1)%cadence == 0 {
			log.Infof(iterFmt, s.Iteration(), s.SimTime()/tf, dt/tf)
			flow := s.FlowMax(c.FlowName)
			log.Infof("Max linear criterion = %f", flow)
			if math.IsNaN(flow) || math.IsInf(flow, 0) {
				return fmt.Errorf("%w (%s = %g at iteration %d)", ErrBlowUp, c.FlowName, flow, s.Iteration())
			}
		}
	}
	return nil
}
