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

// Package solver is the boundary between an assembled experiment and the
// external spectral solver that integrates it. It describes the
// initial-value problem the solver must build, decides the stopping
// conditions of a run and drives the time-stepping loop.
package solver

import (
	"io"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/iwlab/bouss/switchboard"
)

// The 2-D Boussinesq equations with the background stratification BP and
// the sponge coefficient SL as non-constant coefficients.
var equations = []string{
	"dx(u) + wz = 0",
	"dt(b) - KA*(dx(dx(b)) + dz(bz))= -((N0*BP)**2)*w - (u*dx(b) + w*bz)",
	"dt(u) -SL*NU*dx(dx(u)) - NU*dz(uz) + dx(p)= - (u*dx(u) + w*uz)",
	"dt(w) -SL*NU*dx(dx(w)) - NU*dz(wz) + dz(p) - b= - (u*dx(w) + w*wz)",
	"bz - dz(b) = 0",
	"uz - dz(u) = 0",
	"wz - dz(w) = 0",
}

// BC is a boundary condition, applied to the modes where Condition holds.
type BC struct {
	Expr      string
	Condition string `toml:",omitempty"`
}

// The forcing enters through the top boundary. left(w) is redundant for
// the nx=0 mode, so the pressure gauge is fixed there instead.
var bcs = []BC{
	{Expr: "left(u) = 0"},
	{Expr: "right(u) = right(fu)"},
	{Expr: "left(w) = 0", Condition: "(nx != 0)"},
	{Expr: "right(w) = right(fw)"},
	{Expr: "left(b) = 0"},
	{Expr: "right(b) = right(fb)"},
	{Expr: "left(p) = 0", Condition: "(nx == 0)"},
}

// Basis is one dimension of the solver domain.
type Basis struct {
	Name     string
	Type     string
	Size     int
	Interval [2]float64
	Dealias  float64
}

// NCC is a non-constant coefficient field. Fields that are constant along
// x are given either a single Value or a Profile over the z grid.
type NCC struct {
	Name      string
	ConstantX bool
	Value     float64   `toml:",omitempty"`
	Profile   []float64 `toml:",omitempty"`
}

// Substitution is a named expression.
type Substitution struct {
	Name string
	Expr string
}

// Task is an output expression written by a snapshot handler.
type Task struct {
	Expr   string
	Name   string
	Layout string
}

// Handler is a snapshot file handler.
type Handler struct {
	Dir       string
	SimDt     float64
	MaxWrites int
	Mode      string

	// System writes every state variable.
	System bool
	Tasks  []Task `toml:",omitempty"`
}

// CFL holds the adaptive time step settings.
type CFL struct {
	switchboard.CFLConfig
	Velocities []string
}

// Flow is the monitored flow property.
type Flow struct {
	switchboard.FlowConfig
	LogMessage string
}

// Problem is everything the external solver needs to build and run an
// experiment.
type Problem struct {
	Name         string
	Timestepper  string
	Bases        []Basis
	Variables    []string
	NonDirichlet []string

	Parameters    map[string]float64
	NCCs          []NCC
	Substitutions []Substitution
	Equations     []string
	BCs           []BC

	Run       Run
	Adaptive  bool
	Snapshots []Handler
	CFL       CFL
	Flow      Flow
}

// NewProblem describes the experiment in sb, run according to r.
func NewProblem(sb *switchboard.Switchboard, r Run) *Problem {
	c := sb.Config()
	d := sb.Domain()
	f := sb.Forcing()
	p := &Problem{
		Name:        c.Name,
		Timestepper: "RK222",
		Bases: []Basis{
			{Name: "x", Type: "Fourier", Size: c.Grid.Nx, Interval: [2]float64{d.XSim0, d.XSimF}, Dealias: c.Grid.Dealias},
			{Name: "z", Type: "Chebyshev", Size: c.Grid.Nz, Interval: [2]float64{d.ZSimF, d.ZSim0}, Dealias: c.Grid.Dealias},
		},
		Variables:    []string{"p", "b", "u", "w", "bz", "uz", "wz"},
		NonDirichlet: []string{"p", "bz", "uz", "wz"},
		Parameters:   make(map[string]float64),
		NCCs: []NCC{
			{Name: "BFu", ConstantX: true, Value: f.Polarization.U},
			{Name: "BFw", ConstantX: true, Value: f.Polarization.W},
			{Name: "BFb", ConstantX: true, Value: f.Polarization.B},
			{Name: "SL", ConstantX: true, Profile: sb.Sponge()},
			{Name: "BP", ConstantX: true, Profile: sb.Background()},
		},
		Equations: append([]string(nil), equations...),
		BCs:       append([]BC(nil), bcs...),
		Run:       r,
		Adaptive:  c.Timestep.Adaptive,
		CFL:       CFL{CFLConfig: c.CFL, Velocities: []string{"u", "w"}},
		Flow:      Flow{FlowConfig: c.Flow, LogMessage: "Max linear criterion = %f"},
	}
	for k, v := range sb.Params() {
		switch k {
		case "BFu", "BFw", "BFb":
			// Passed as NCCs.
		default:
			p.Parameters[k] = v
		}
	}
	for _, s := range f.Substitutions() {
		p.Substitutions = append(p.Substitutions, Substitution{Name: s.Name, Expr: s.Expr})
	}
	p.Snapshots = append(p.Snapshots, Handler{
		Dir: c.Snapshots.Dir, SimDt: c.Snapshots.Dt, MaxWrites: c.Snapshots.MaxWrites,
		Mode: r.Mode, System: true,
	})
	if c.Snapshots.Background {
		p.Snapshots = append(p.Snapshots, Handler{
			Dir:   filepath.Join(c.Snapshots.Dir, c.Snapshots.BackgroundDir),
			SimDt: c.Snapshots.Dt, MaxWrites: c.Snapshots.MaxWrites, Mode: r.Mode,
			Tasks: []Task{{Expr: "N0*BP", Name: switchboard.BackgroundTask, Layout: "g"}},
		})
	}
	if sb.TakeSpongeSnaps() {
		p.Snapshots = append(p.Snapshots, Handler{
			Dir:   filepath.Join(c.Snapshots.Dir, c.Snapshots.SpongeDir),
			SimDt: c.Snapshots.Dt, MaxWrites: c.Snapshots.MaxWrites, Mode: r.Mode,
			Tasks: []Task{{Expr: "SL", Name: switchboard.SpongeTask, Layout: "g"}},
		})
	}
	return p
}

// Encode writes p to w in TOML format.
func (p *Problem) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(p)
}

// DecodeProblem reads a problem written by Encode.
func DecodeProblem(r io.Reader) (*Problem, error) {
	p := new(Problem)
	if _, err := toml.NewDecoder(r).Decode(p); err != nil {
		return nil, err
	}
	return p, nil
}
