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

// Package switchboard assembles every derived quantity of an experiment
// from its configuration. The stages run in a fixed order (domain, module
// selection, boundary forcing, background profile, sponge layer, display
// settings), each taking the results of the earlier ones as arguments.
// The assembled Switchboard is read-only.
package switchboard

import (
	"fmt"

	"github.com/iwlab/bouss/domain"
	"github.com/iwlab/bouss/physics"
	"github.com/iwlab/bouss/physics/background"
	"github.com/iwlab/bouss/physics/forcing"
	"github.com/iwlab/bouss/physics/sponge"
)

// Modules holds the constructors selected for a run. Only these are
// reachable once the selection is made.
type Modules struct {
	Selection  physics.Selection
	Forcing    forcing.Resolver
	Background background.Constructor
	Sponge     sponge.Constructor
}

// SelectModules resolves every name in s. It fails if any name is
// unknown, before anything is computed.
func SelectModules(s physics.Selection) (*Modules, error) {
	bf, err := forcing.Lookup(s.BoundaryForcing)
	if err != nil {
		return nil, err
	}
	bp, err := background.Lookup(s.BackgroundProfile)
	if err != nil {
		return nil, err
	}
	sl, err := sponge.Lookup(s.SpongeLayer)
	if err != nil {
		return nil, err
	}
	return &Modules{Selection: s, Forcing: bf, Background: bp, Sponge: sl}, nil
}

// Switchboard is an assembled experiment.
type Switchboard struct {
	cfg     Config
	modules physics.Selection
	domain  domain.Domain
	forcing forcing.Forcing

	x, z   []float64
	bp, sl []float64

	stopSimTime float64
	display     Display
}

// Build assembles cfg.
func Build(cfg Config) (*Switchboard, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	dom, err := domain.New(cfg.Domain)
	if err != nil {
		return nil, err
	}
	mods, err := SelectModules(cfg.Modules)
	if err != nil {
		return nil, err
	}
	bf, err := buildForcing(mods.Forcing, cfg, dom)
	if err != nil {
		return nil, err
	}
	x, z := dom.XGrid(cfg.Grid.Nx), dom.ZGrid(cfg.Grid.Nz)
	bp, err := buildBackground(mods.Background, cfg.Background, bf, z)
	if err != nil {
		return nil, err
	}
	sl, err := buildSponge(mods.Sponge, cfg.Sponge.Config, dom, z)
	if err != nil {
		return nil, err
	}
	stop := stopSimTime(cfg.Stop, bf)
	return &Switchboard{
		cfg:         cfg,
		modules:     cfg.Modules,
		domain:      *dom,
		forcing:     *bf,
		x:           x,
		z:           z,
		bp:          bp,
		sl:          sl,
		stopSimTime: stop,
		display:     newDisplay(cfg, dom, bf, bp),
	}, nil
}

func buildForcing(r forcing.Resolver, cfg Config, d *domain.Domain) (*forcing.Forcing, error) {
	return r(cfg.Forcing, forcing.Geometry{BufferX: d.BufferX, XSim0: d.XSim0, X0: d.X0})
}

func buildBackground(f background.Constructor, c background.Config, bf *forcing.Forcing, z []float64) ([]float64, error) {
	b, err := f(c, bf.N0)
	if err != nil {
		return nil, err
	}
	return b.Build(z), nil
}

func buildSponge(f sponge.Constructor, c sponge.Config, d *domain.Domain, z []float64) ([]float64, error) {
	s, err := f(c, d.ZSimF)
	if err != nil {
		return nil, err
	}
	return s.Build(z), nil
}

// stopSimTime returns the authoritative simulation time limit: the
// explicit time when UseSimTime is set and NPeriods periods otherwise.
func stopSimTime(c StopConfig, bf *forcing.Forcing) float64 {
	if c.UseSimTime {
		return c.SimTime
	}
	return c.NPeriods * bf.T
}

// Config returns the configuration the switchboard was built from.
func (s *Switchboard) Config() Config { return s.cfg }

// Modules returns the module selection.
func (s *Switchboard) Modules() physics.Selection { return s.modules }

// Domain returns the resolved domain.
func (s *Switchboard) Domain() domain.Domain { return s.domain }

// Forcing returns the resolved boundary forcing.
func (s *Switchboard) Forcing() forcing.Forcing { return s.forcing }

// X returns a copy of the horizontal grid.
func (s *Switchboard) X() []float64 { return clone(s.x) }

// Z returns a copy of the vertical grid.
func (s *Switchboard) Z() []float64 { return clone(s.z) }

// Background returns a copy of the background profile N(z) on the
// vertical grid.
func (s *Switchboard) Background() []float64 { return clone(s.bp) }

// Sponge returns a copy of the sponge coefficient on the vertical grid.
func (s *Switchboard) Sponge() []float64 { return clone(s.sl) }

// StopSimTime returns the simulation time limit in seconds.
func (s *Switchboard) StopSimTime() float64 { return s.stopSimTime }

// Prandtl returns ν/κ.
func (s *Switchboard) Prandtl() float64 { return s.cfg.Physics.Nu / s.cfg.Physics.Kappa }

// Display returns the derived plotting settings.
func (s *Switchboard) Display() Display {
	d := s.display
	d.Tasks = append([]string(nil), d.Tasks...)
	return d
}

// Params returns the named scalars the solver equations refer to.
func (s *Switchboard) Params() map[string]float64 {
	p := s.forcing.Params()
	p["NU"] = s.cfg.Physics.Nu
	p["KA"] = s.cfg.Physics.Kappa
	return p
}

// TakeSpongeSnaps reports whether the sponge profile is written out.
func (s *Switchboard) TakeSpongeSnaps() bool { return s.cfg.Sponge.Use }

func (s *Switchboard) String() string {
	return fmt.Sprintf("%s (%s, %s, %s)", s.cfg.Name,
		s.modules.BoundaryForcing, s.modules.BackgroundProfile, s.modules.SpongeLayer)
}

func clone(v []float64) []float64 { return append([]float64(nil), v...) }
