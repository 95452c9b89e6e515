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

package forcing

// The substitutions handed to the solver. They refer to the solver
// parameters named in Params and to the coordinates x, z and t.
const (
	WindowExpr = "(1/2)*(tanh(slope*(x-left_edge))+1)*(1/2)*(tanh(slope*(-x+right_edge))+1)"
	RampExpr   = "(1/2)*(tanh(4*t/(nT*T) - 2) + 1)"
	FuExpr     = "-BFu*sin(kx*x + kz*z - omega*t)*window*ramp"
	FwExpr     = " BFw*sin(kx*x + kz*z - omega*t)*window*ramp"
	FbExpr     = "-BFb*cos(kx*x + kz*z - omega*t)*window*ramp"
)

// Substitution is a named expression the solver expands in its equations
// and boundary conditions.
type Substitution struct {
	Name string
	Expr string
}

// Substitutions returns the forcing substitutions in the order they must
// be defined: later entries refer to earlier ones.
func (f *Forcing) Substitutions() []Substitution {
	return []Substitution{
		{Name: "window", Expr: WindowExpr},
		{Name: "ramp", Expr: RampExpr},
		{Name: "fu", Expr: FuExpr},
		{Name: "fw", Expr: FwExpr},
		{Name: "fb", Expr: FbExpr},
	}
}

// Params returns the scalar parameters the substitutions refer to.
func (f *Forcing) Params() map[string]float64 {
	return map[string]float64{
		"N0":         f.N0,
		"kx":         f.Kx,
		"kz":         f.Kz,
		"omega":      f.Omega,
		"grav":       f.G,
		"T":          f.T,
		"nT":         f.NT,
		"slope":      f.Slope,
		"left_edge":  f.Left,
		"right_edge": f.Right,
		"BFu":        f.Polarization.U,
		"BFw":        f.Polarization.W,
		"BFb":        f.Polarization.B,
	}
}
