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

package switchboard

import (
	"fmt"

	"github.com/iwlab/bouss/domain"
	"github.com/iwlab/bouss/physics"
	"github.com/iwlab/bouss/physics/background"
	"github.com/iwlab/bouss/physics/forcing"
	"github.com/iwlab/bouss/physics/sponge"
)

// Config holds every setting of an experiment.
type Config struct {
	// Name identifies the experiment in titles and file names.
	Name string

	Grid       GridConfig
	Stop       StopConfig
	Timestep   TimestepConfig
	Restart    RestartConfig
	Domain     domain.Config
	Physics    PhysicsConfig
	Modules    physics.Selection
	Forcing    forcing.Config
	Background background.Config
	Sponge     SpongeConfig
	Plot       PlotConfig
	Snapshots  SnapshotConfig
	CFL        CFLConfig
	Flow       FlowConfig
}

// GridConfig sets the solver resolution.
type GridConfig struct {
	Nx, Nz  int
	Dealias float64
}

// StopConfig holds the stopping conditions. When UseSimTime is false the
// simulation time limit is NPeriods forcing periods and SimTime is ignored.
type StopConfig struct {
	NPeriods   float64
	WallTime   float64 // minutes
	Iteration  int     // 0 means no limit
	SimTime    float64 // seconds
	UseSimTime bool
}

// TimestepConfig sets the initial time step.
type TimestepConfig struct {
	Dt       float64
	Adaptive bool
}

// RestartConfig controls continuing a run from a checkpoint.
type RestartConfig struct {
	AddTime float64
	File    string
}

// PhysicsConfig holds the fluid properties.
type PhysicsConfig struct {
	Nu       float64 // viscosity [m²/s]
	Kappa    float64 // thermal diffusivity [m²/s]
	Rayleigh float64
}

// SpongeConfig holds the sponge settings. When Use is false the sponge is
// neither plotted nor written to snapshots.
type SpongeConfig struct {
	Use bool
	sponge.Config
}

// PlotConfig holds the frame rendering settings.
type PlotConfig struct {
	// AllVariables plots b, p, u and w instead of w next to the profiles.
	AllVariables bool

	// Sponge adds the sponge profile panel.
	Sponge bool

	// Buffer pads the profile panels; ExtraBuffer pads a constant profile.
	Buffer, ExtraBuffer float64

	// ProfileRatio is the height-to-width ratio of the profile panels.
	ProfileRatio float64

	ColorbarTicks int
	FontSize      float64
	Scale         float64
	DPI           float64
}

// SnapshotConfig sets the solver output.
type SnapshotConfig struct {
	Dir       string
	Dt        float64
	MaxWrites int

	Background    bool
	BackgroundDir string
	SpongeDir     string
}

// CFLConfig holds the adaptive time step settings.
type CFLConfig struct {
	Cadence   int
	Safety    float64
	MaxChange float64
	MinChange float64
	MaxDt     float64
	Threshold float64
}

// FlowConfig defines the flow property monitored during a run.
type FlowConfig struct {
	Cadence  int
	Property string
	Name     string
}

// DefaultConfig returns the settings of the reference experiment.
func DefaultConfig() Config {
	return Config{
		Name:     "bouss",
		Grid:     GridConfig{Nx: 256, Nz: 512, Dealias: 1.5},
		Stop:     StopConfig{NPeriods: 1, WallTime: 60, SimTime: 3},
		Timestep: TimestepConfig{Dt: 0.125},
		Restart:  RestartConfig{AddTime: 3, File: "restart.h5"},
		Domain:   domain.DefaultConfig(),
		Physics: PhysicsConfig{
			Nu:       1.0e-6,
			Kappa:    1.4e-7,
			Rayleigh: 1e6,
		},
		Modules:    physics.DefaultSelection,
		Forcing:    forcing.DefaultConfig(),
		Background: background.DefaultConfig(),
		Sponge:     SpongeConfig{Use: true, Config: sponge.DefaultConfig()},
		Plot: PlotConfig{
			Sponge:        true,
			Buffer:        0.04,
			ExtraBuffer:   0.5,
			ProfileRatio:  2,
			ColorbarTicks: 3,
			FontSize:      12,
			Scale:         2.5,
			DPI:           100,
		},
		Snapshots: SnapshotConfig{
			Dir:           "snapshots",
			Dt:            0.25,
			MaxWrites:     50,
			Background:    true,
			BackgroundDir: "bp_snaps",
			SpongeDir:     "sl_snaps",
		},
		CFL: CFLConfig{
			Cadence:   10,
			Safety:    1,
			MaxChange: 1.5,
			MinChange: 0.5,
			MaxDt:     0.125,
			Threshold: 0.05,
		},
		Flow: FlowConfig{
			Cadence:  10,
			Property: "(kx*u + kz*w)/omega",
			Name:     "Lin_Criterion",
		},
	}
}

// Check returns an error describing the first invalid setting in c that
// the physics packages do not check themselves.
func (c Config) Check() error {
	if c.Name == "" {
		return fmt.Errorf("switchboard: Name is not specified")
	}
	ints := []int{c.Grid.Nx, c.Grid.Nz, c.Snapshots.MaxWrites, c.CFL.Cadence, c.Flow.Cadence, c.Plot.ColorbarTicks}
	intNames := []string{"Grid.Nx", "Grid.Nz", "Snapshots.MaxWrites", "CFL.Cadence", "Flow.Cadence", "Plot.ColorbarTicks"}
	for i, v := range ints {
		if v <= 0 {
			return fmt.Errorf("switchboard: %s=%d but should be >0", intNames[i], v)
		}
	}
	vars := []float64{c.Grid.Dealias, c.Timestep.Dt, c.Physics.Nu, c.Physics.Kappa,
		c.Stop.WallTime, c.Snapshots.Dt, c.Plot.Scale, c.Plot.DPI, c.Plot.FontSize, c.Plot.ProfileRatio}
	varNames := []string{"Grid.Dealias", "Timestep.Dt", "Physics.Nu", "Physics.Kappa",
		"Stop.WallTime", "Snapshots.Dt", "Plot.Scale", "Plot.DPI", "Plot.FontSize", "Plot.ProfileRatio"}
	for i, v := range vars {
		if !(v > 0) {
			return fmt.Errorf("switchboard: %s=%g but should be >0", varNames[i], v)
		}
	}
	if c.Stop.UseSimTime {
		if !(c.Stop.SimTime > 0) {
			return fmt.Errorf("switchboard: Stop.SimTime=%g but should be >0", c.Stop.SimTime)
		}
	} else if !(c.Stop.NPeriods > 0) {
		return fmt.Errorf("switchboard: Stop.NPeriods=%g but should be >0", c.Stop.NPeriods)
	}
	if c.Stop.Iteration < 0 {
		return fmt.Errorf("switchboard: Stop.Iteration=%d but should be >=0", c.Stop.Iteration)
	}
	if c.Snapshots.Dir == "" {
		return fmt.Errorf("switchboard: Snapshots.Dir is not specified")
	}
	return nil
}
