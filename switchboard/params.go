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
	"bufio"
	"io"
	"math"
	"strconv"

	"github.com/BurntSushi/toml"
)

// WriteLog writes a human-readable summary of the run parameters to w,
// in the format of the experiment log file.
func (s *Switchboard) WriteLog(w io.Writer) error {
	b := bufio.NewWriter(w)
	f := s.forcing
	c := s.cfg
	line := func(label string, v interface{}) {
		b.WriteString(label)
		switch vv := v.(type) {
		case int:
			b.WriteString(strconv.Itoa(vv))
		case float64:
			b.WriteString(strconv.FormatFloat(vv, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}
	blank := func() { b.WriteByte('\n') }

	b.WriteString("--Simulation Parameters--\n")
	blank()
	line("Horizontal grid points:       n_x = ", c.Grid.Nx)
	line("Vertical   grid points:       n_z = ", c.Grid.Nz)
	blank()
	if !c.Stop.UseSimTime {
		line("Sim Runtime (periods):              ", c.Stop.NPeriods)
	}
	line("Sim Runtime (seconds):              ", s.stopSimTime)
	blank()
	b.WriteString("--Simulation Domain Parameters--\n")
	blank()
	line("Horizontal extent (m):        L_x = ", c.Domain.Lx)
	line("Vertical   extent (m):        L_z = ", c.Domain.Lz)
	blank()
	b.WriteString("--Boundary Forcing Parameters--\n")
	blank()
	line("Characteristic wavenumber:      k = ", f.K)
	blank()
	line("Forcing frequency (s^-1):   omega = ", f.Omega)
	line("Forcing angle (rad):        theta = ", f.Theta)
	line("Forcing angle (deg):        theta = ", f.Theta*180/math.Pi)
	blank()
	line("Forcing period (s):             T = ", f.T)
	line("Forcing amplitude:              A = ", f.A)
	blank()
	line("Horizontal wavelength (m):  lam_x = ", f.LambdaX)
	return b.Flush()
}

// Resolved is the full set of resolved parameters, as written by
// EncodeTOML.
type Resolved struct {
	Name    string
	Modules struct {
		BoundaryForcing, BackgroundProfile, SpongeLayer string
	}
	Grid GridConfig
	Stop struct {
		SimTime, WallTime float64
		Iteration         int
	}
	Domain struct {
		XSim0, XSimF, ZSim0, ZSimF float64
		X0, XF, ZB, Zt             float64
	}
	Physics struct {
		Nu, Kappa, Prandtl, Rayleigh float64
	}
	Forcing struct {
		N0, K, Omega, Theta, Kx, Kz, LambdaX, T float64
		A, NT, G                                float64
		Left, Right, Slope                      float64
		BFu, BFw, BFb                           float64
	}
}

// Resolved returns the resolved parameters.
func (s *Switchboard) Resolved() Resolved {
	var r Resolved
	c, f, d := s.cfg, s.forcing, s.domain
	r.Name = c.Name
	r.Modules.BoundaryForcing = s.modules.BoundaryForcing
	r.Modules.BackgroundProfile = s.modules.BackgroundProfile
	r.Modules.SpongeLayer = s.modules.SpongeLayer
	r.Grid = c.Grid
	r.Stop.SimTime = s.stopSimTime
	r.Stop.WallTime = c.Stop.WallTime
	r.Stop.Iteration = c.Stop.Iteration
	r.Domain.XSim0, r.Domain.XSimF = d.XSim0, d.XSimF
	r.Domain.ZSim0, r.Domain.ZSimF = d.ZSim0, d.ZSimF
	r.Domain.X0, r.Domain.XF, r.Domain.ZB, r.Domain.Zt = d.X0, d.XF, d.ZB, d.Zt
	r.Physics.Nu, r.Physics.Kappa = c.Physics.Nu, c.Physics.Kappa
	r.Physics.Prandtl, r.Physics.Rayleigh = s.Prandtl(), c.Physics.Rayleigh
	r.Forcing.N0, r.Forcing.K, r.Forcing.Omega = f.N0, f.K, f.Omega
	r.Forcing.Theta, r.Forcing.Kx, r.Forcing.Kz = f.Theta, f.Kx, f.Kz
	r.Forcing.LambdaX, r.Forcing.T = f.LambdaX, f.T
	r.Forcing.A, r.Forcing.NT, r.Forcing.G = f.A, f.NT, f.G
	r.Forcing.Left, r.Forcing.Right, r.Forcing.Slope = f.Left, f.Right, f.Slope
	r.Forcing.BFu, r.Forcing.BFw, r.Forcing.BFb = f.Polarization.U, f.Polarization.W, f.Polarization.B
	return r
}

// EncodeTOML writes the resolved parameters to w in TOML format.
func (s *Switchboard) EncodeTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s.Resolved())
}
