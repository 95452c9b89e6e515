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
	"os"
	"path/filepath"
	"strings"

	"github.com/iwlab/bouss/domain"
	"github.com/iwlab/bouss/physics"
	"github.com/iwlab/bouss/switchboard"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// SwitchboardConfig creates a new experiment configuration from the
// information in cfg and checks it.
func SwitchboardConfig(cfg *viper.Viper) (switchboard.Config, error) {
	modules, err := selection(cfg)
	if err != nil {
		return switchboard.Config{}, err
	}
	c := switchboard.Config{
		Name: os.ExpandEnv(cfg.GetString("Name")),
		Grid: switchboard.GridConfig{
			Nx:      cfg.GetInt("Grid.Nx"),
			Nz:      cfg.GetInt("Grid.Nz"),
			Dealias: cfg.GetFloat64("Grid.Dealias"),
		},
		Stop: switchboard.StopConfig{
			NPeriods:   cfg.GetFloat64("Stop.NPeriods"),
			WallTime:   cfg.GetFloat64("Stop.WallTime"),
			Iteration:  cfg.GetInt("Stop.Iteration"),
			SimTime:    cfg.GetFloat64("Stop.SimTime"),
			UseSimTime: cfg.GetBool("Stop.UseSimTime"),
		},
		Timestep: switchboard.TimestepConfig{
			Dt:       cfg.GetFloat64("Timestep.Dt"),
			Adaptive: cfg.GetBool("Timestep.Adaptive"),
		},
		Restart: switchboard.RestartConfig{
			AddTime: cfg.GetFloat64("Restart.AddTime"),
			File:    os.ExpandEnv(cfg.GetString("Restart.File")),
		},
		Domain: domain.Config{
			Lx:        cfg.GetFloat64("Domain.Lx"),
			Lz:        cfg.GetFloat64("Domain.Lz"),
			Zt:        cfg.GetFloat64("Domain.Zt"),
			LxDisplay: cfg.GetFloat64("Domain.LxDisplay"),
			LzDisplay: cfg.GetFloat64("Domain.LzDisplay"),
			BufferX:   cfg.GetFloat64("Domain.BufferX"),
			BufferZ:   cfg.GetFloat64("Domain.BufferZ"),
			X0:        cfg.GetFloat64("Domain.X0"),
			Z0:        cfg.GetFloat64("Domain.Z0"),
		},
		Physics: switchboard.PhysicsConfig{
			Nu:       cfg.GetFloat64("Physics.Nu"),
			Kappa:    cfg.GetFloat64("Physics.Kappa"),
			Rayleigh: cfg.GetFloat64("Physics.Rayleigh"),
		},
		Modules: modules,
	}
	c.Forcing.N0 = cfg.GetFloat64("Forcing.N0")
	c.Forcing.K = cfg.GetFloat64("Forcing.K")
	c.Forcing.Omega = cfg.GetFloat64("Forcing.Omega")
	c.Forcing.A = cfg.GetFloat64("Forcing.A")
	c.Forcing.NT = cfg.GetFloat64("Forcing.NT")
	c.Forcing.Slope = cfg.GetFloat64("Forcing.Slope")
	c.Forcing.WindowLambdas = cfg.GetFloat64("Forcing.WindowLambdas")
	c.Forcing.G = cfg.GetFloat64("Forcing.G")

	c.Background.Interfaces = cfg.GetInt("Background.Interfaces")
	c.Background.MixedBottom = cfg.GetFloat64("Background.MixedBottom")
	c.Background.MixedTop = cfg.GetFloat64("Background.MixedTop")
	c.Background.Slope = cfg.GetFloat64("Background.Slope")
	c.Background.NUpper = cfg.GetFloat64("Background.NUpper")
	c.Background.NLower = cfg.GetFloat64("Background.NLower")
	c.Background.BumpWidth = cfg.GetFloat64("Background.BumpWidth")

	c.Sponge.Use = cfg.GetBool("Sponge.Use")
	c.Sponge.Thickness = cfg.GetFloat64("Sponge.Thickness")
	c.Sponge.Slope = cfg.GetFloat64("Sponge.Slope")
	c.Sponge.MaxCoeff = cfg.GetFloat64("Sponge.MaxCoeff")

	c.Plot = switchboard.PlotConfig{
		AllVariables:  cfg.GetBool("Plot.AllVariables"),
		Sponge:        cfg.GetBool("Plot.Sponge"),
		Buffer:        cfg.GetFloat64("Plot.Buffer"),
		ExtraBuffer:   cfg.GetFloat64("Plot.ExtraBuffer"),
		ProfileRatio:  cfg.GetFloat64("Plot.ProfileRatio"),
		ColorbarTicks: cfg.GetInt("Plot.ColorbarTicks"),
		FontSize:      cfg.GetFloat64("Plot.FontSize"),
		Scale:         cfg.GetFloat64("Plot.Scale"),
		DPI:           cfg.GetFloat64("Plot.DPI"),
	}
	c.Snapshots = switchboard.SnapshotConfig{
		Dir:           os.ExpandEnv(cfg.GetString("Snapshots.Dir")),
		Dt:            cfg.GetFloat64("Snapshots.Dt"),
		MaxWrites:     cfg.GetInt("Snapshots.MaxWrites"),
		Background:    cfg.GetBool("Snapshots.Background"),
		BackgroundDir: cfg.GetString("Snapshots.BackgroundDir"),
		SpongeDir:     cfg.GetString("Snapshots.SpongeDir"),
	}
	c.CFL = switchboard.CFLConfig{
		Cadence:   cfg.GetInt("CFL.Cadence"),
		Safety:    cfg.GetFloat64("CFL.Safety"),
		MaxChange: cfg.GetFloat64("CFL.MaxChange"),
		MinChange: cfg.GetFloat64("CFL.MinChange"),
		MaxDt:     cfg.GetFloat64("CFL.MaxDt"),
		Threshold: cfg.GetFloat64("CFL.Threshold"),
	}
	c.Flow = switchboard.FlowConfig{
		Cadence:  cfg.GetInt("Flow.Cadence"),
		Property: cfg.GetString("Flow.Property"),
		Name:     cfg.GetString("Flow.Name"),
	}

	if err := c.Check(); err != nil {
		return c, fmt.Errorf("bouss: parsing configuration: %w", err)
	}
	if _, err := domain.New(c.Domain); err != nil {
		return c, fmt.Errorf("bouss: parsing configuration: %w", err)
	}
	if _, err := switchboard.SelectModules(c.Modules); err != nil {
		return c, fmt.Errorf("bouss: parsing configuration: %w", err)
	}
	return c, nil
}

// selection reads the module selection. A module left blank in a
// configuration file falls back to the default.
func selection(cfg *viper.Viper) (physics.Selection, error) {
	s := physics.DefaultSelection
	fields := []*string{&s.BoundaryForcing, &s.BackgroundProfile, &s.SpongeLayer}
	names := []string{"Modules.BoundaryForcing", "Modules.BackgroundProfile", "Modules.SpongeLayer"}
	for i, name := range names {
		v, err := cast.ToStringE(cfg.Get(name))
		if err != nil {
			return s, fmt.Errorf("bouss: reading '%s': %v", name, err)
		}
		if v != "" {
			*fields[i] = v
		}
	}
	return s, nil
}

// Build creates the experiment described by cfg.
func Build(cfg *viper.Viper) (*switchboard.Switchboard, error) {
	c, err := SwitchboardConfig(cfg)
	if err != nil {
		return nil, err
	}
	return switchboard.Build(c)
}

// stringSlice returns the list option name, accounting for the fact that it
// is a comma-separated string when set from an environment variable.
func stringSlice(cfg *viper.Viper, name string) ([]string, error) {
	v, err := cast.ToStringSliceE(cfg.Get(name))
	if err != nil {
		return nil, fmt.Errorf("bouss: reading '%s': %v", name, err)
	}
	var o []string
	for _, s := range v {
		o = append(o, strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })...)
	}
	return o, nil
}

// under returns path relative to dir unless it is absolute.
func under(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
