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

// Package forcing resolves the internal-wave boundary forcing: the wave
// parameters that follow from the stratification, wavenumber and
// frequency, the placement of the forcing window on the boundary, the
// start-up ramp and the polarization amplitudes of each forced field.
package forcing

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwlab/bouss/physics"
)

// ErrRegime is returned when the requested frequency cannot propagate
// as an internal wave in the given stratification.
var ErrRegime = errors.New("invalid physical regime")

// Config holds the independent forcing inputs.
type Config struct {
	// N0 is the characteristic buoyancy frequency [rad/s].
	N0 float64

	// K is the total wavenumber [1/m].
	K float64

	// Omega is the forcing frequency [rad/s].
	Omega float64

	// A is the forcing amplitude [m].
	A float64

	// NT is the number of periods the start-up ramp takes.
	NT float64

	// Slope is the steepness of the forcing window edges.
	Slope float64

	// WindowLambdas is the window width in horizontal wavelengths.
	WindowLambdas float64

	// G is gravitational acceleration [m/s²].
	G float64
}

// DefaultConfig returns the forcing inputs of the reference experiment.
func DefaultConfig() Config {
	return Config{
		N0:            1.0,
		K:             45,
		Omega:         0.7071,
		A:             2.0e-4,
		NT:            3.0,
		Slope:         35,
		WindowLambdas: 1,
		G:             9.81,
	}
}

// Geometry is the part of the domain the window placement depends on.
type Geometry struct {
	// BufferX is the width of the horizontal buffer to the left of the
	// display area.
	BufferX float64

	// XSim0 is the left edge of the simulated domain.
	XSim0 float64

	// X0 is the left edge of the display area.
	X0 float64
}

// Polarization holds the amplitude of each forced field.
type Polarization struct {
	U, W, B float64
}

// Forcing is a fully resolved boundary forcing. It is not modified after
// it is created.
type Forcing struct {
	Config

	Theta   float64 // propagation angle from the vertical [rad]
	Kx      float64 // horizontal wavenumber [1/m]
	Kz      float64 // vertical wavenumber [1/m]
	LambdaX float64 // horizontal wavelength [m]
	T       float64 // period [s]

	// Left and Right are the centers of the window edges.
	Left, Right float64

	Polarization Polarization
}

// Resolver creates a Forcing from its inputs.
type Resolver func(c Config, g Geometry) (*Forcing, error)

var resolvers = map[string]Resolver{
	"default":    Resolve,
	"bf_default": Resolve,
}

// Lookup returns the forcing resolver registered under name.
func Lookup(name string) (Resolver, error) {
	r, ok := resolvers[name]
	if !ok {
		return nil, physics.NewUnknownModuleError(physics.BoundaryForcing, name, resolvers)
	}
	return r, nil
}

// New resolves a forcing with the implementation registered under name.
func New(name string, c Config, g Geometry) (*Forcing, error) {
	r, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return r(c, g)
}

// Resolve derives the dependent wave parameters from N0, K and Omega.
// It returns an error wrapping ErrRegime if |Omega/N0| > 1, where
// the propagation angle is undefined, or if any of N0, K, Omega, NT or
// WindowLambdas is not positive. A negative Omega is rejected even when
// |Omega/N0| <= 1.
func Resolve(c Config, g Geometry) (*Forcing, error) {
	vars := []float64{c.N0, c.K, c.Omega, c.NT, c.WindowLambdas}
	varNames := []string{"N0", "K", "Omega", "NT", "WindowLambdas"}
	for i, v := range vars {
		if !(v > 0) {
			return nil, fmt.Errorf("forcing: %w: %s=%g but should be >0", ErrRegime, varNames[i], v)
		}
	}
	ratio := c.Omega / c.N0
	if !(math.Abs(ratio) <= 1) {
		return nil, fmt.Errorf("forcing: %w: omega/N0 = %g is outside [-1, 1]; "+
			"waves with omega > N0 do not propagate", ErrRegime, ratio)
	}
	f := &Forcing{Config: c}
	f.Theta = math.Acos(ratio)
	f.Kx = c.K * ratio
	f.Kz = c.K * math.Sin(f.Theta)
	f.LambdaX = 2 * math.Pi / f.Kx
	f.T = 2 * math.Pi / c.Omega

	f.Left, f.Right = windowEdges(f.LambdaX*c.WindowLambdas, g)

	n2 := c.N0 * c.N0
	f.Polarization = Polarization{
		U: c.A * c.G * c.Omega * f.Kz / (n2 * f.Kx),
		W: c.A * c.G * c.Omega / n2,
		B: c.A * c.G,
	}
	return f, nil
}

// windowEdges centers the window on the simulated left edge when half of
// it fits inside the buffer, and otherwise starts it at the display edge.
func windowEdges(width float64, g Geometry) (left, right float64) {
	if 0.5*width < g.BufferX {
		return g.XSim0 - width/2, g.XSim0 + width/2
	}
	return g.X0, g.X0 + width
}

// Window returns the forcing window at horizontal position x.
func (f *Forcing) Window(x float64) float64 {
	return 0.5 * (math.Tanh(f.Slope*(x-f.Left)) + 1) * 0.5 * (math.Tanh(f.Slope*(-x+f.Right)) + 1)
}

// Ramp returns the start-up ramp at time t. It rises smoothly from ~0 to 1
// over NT periods.
func (f *Forcing) Ramp(t float64) float64 {
	return 0.5 * (math.Tanh(4*t/(f.NT*f.T)-2) + 1)
}

// Phase returns the wave phase kx·x + kz·z − ω·t.
func (f *Forcing) Phase(x, z, t float64) float64 {
	return f.Kx*x + f.Kz*z - f.Omega*t
}

// Fields returns the forced u, w and b at a point.
func (f *Forcing) Fields(x, z, t float64) (u, w, b float64) {
	env := f.Window(x) * f.Ramp(t)
	s, c := math.Sincos(f.Phase(x, z, t))
	p := f.Polarization
	return -p.U * s * env, p.W * s * env, -p.B * c * env
}
