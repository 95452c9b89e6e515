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

// Package domain describes the simulated and displayed extents of a run
// and the collocation grids the solver uses on them.
package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Config holds the domain settings. Lengths are in meters; z points up
// and the top of the display area is at Zt.
type Config struct {
	// Lx and Lz are the simulated extents.
	Lx, Lz float64

	// Zt is the top of the domain.
	Zt float64

	// LxDisplay and LzDisplay are the displayed extents.
	LxDisplay, LzDisplay float64

	// BufferX is the width of simulated domain to the left of the display
	// area and BufferZ the depth above it.
	BufferX, BufferZ float64

	// X0 and Z0 are the top-left corner of the display area.
	X0, Z0 float64
}

// DefaultConfig returns the domain of the reference experiment.
func DefaultConfig() Config {
	return Config{
		Lx:        0.75,
		Lz:        0.5,
		Zt:        0,
		LxDisplay: 0.5,
		LzDisplay: 0.5,
	}
}

// Domain is a resolved spatial domain.
type Domain struct {
	Config

	// XSim0 and XSimF are the left and right edges of the simulated domain.
	XSim0, XSimF float64

	// ZSim0 and ZSimF are its top and bottom.
	ZSim0, ZSimF float64

	// XF is the right edge of the display area and ZB its bottom.
	XF, ZB float64
}

// New resolves c, checking that the display area lies inside the
// simulated domain.
func New(c Config) (*Domain, error) {
	vars := []float64{c.Lx, c.Lz, c.LxDisplay, c.LzDisplay}
	varNames := []string{"Lx", "Lz", "LxDisplay", "LzDisplay"}
	for i, v := range vars {
		if !(v > 0) {
			return nil, fmt.Errorf("domain: %s=%g but should be >0", varNames[i], v)
		}
	}
	if c.BufferX < 0 || c.BufferZ < 0 {
		return nil, fmt.Errorf("domain: buffers (%g, %g) should not be negative", c.BufferX, c.BufferZ)
	}
	d := &Domain{Config: c}
	d.XSim0 = c.X0 - c.BufferX
	d.ZSim0 = c.Z0 + c.BufferZ
	d.XSimF = d.XSim0 + c.Lx
	d.ZSimF = d.ZSim0 - c.Lz
	d.XF = c.X0 + c.LxDisplay
	d.ZB = c.Zt - c.LzDisplay

	if c.BufferX+c.LxDisplay > c.Lx {
		return nil, fmt.Errorf("domain: display area [%g, %g] extends past the simulated domain [%g, %g] in x",
			c.X0, d.XF, d.XSim0, d.XSimF)
	}
	if c.BufferZ+c.LzDisplay > c.Lz {
		return nil, fmt.Errorf("domain: display area [%g, %g] extends past the simulated domain [%g, %g] in z",
			d.ZB, c.Zt, d.ZSimF, d.ZSim0)
	}
	return d, nil
}

// Aspect is the width-to-height ratio of the display area.
func (d *Domain) Aspect() float64 { return d.LxDisplay / d.LzDisplay }

// XGrid returns the n equispaced Fourier collocation points on
// [XSim0, XSimF).
func (d *Domain) XGrid(n int) []float64 {
	return Fourier(n, d.XSim0, d.XSimF)
}

// ZGrid returns the n Chebyshev collocation points on [ZSimF, ZSim0] in
// increasing order.
func (d *Domain) ZGrid(n int) []float64 {
	return Chebyshev(n, d.ZSimF, d.ZSim0)
}

// Fourier returns n equispaced points on the periodic interval [a, b).
func Fourier(n int, a, b float64) []float64 {
	if n <= 0 {
		return nil
	}
	o := make([]float64, n+1)
	floats.Span(o, a, b)
	return o[:n]
}

// Chebyshev returns the n Gauss-Chebyshev points mapped from (−1, 1)
// onto (a, b), in increasing order. The endpoints are not included.
func Chebyshev(n int, a, b float64) []float64 {
	o := make([]float64, n)
	for k := range o {
		x := -math.Cos(math.Pi * (float64(k) + 0.5) / float64(n))
		o[k] = a + (b-a)*(x+1)/2
	}
	return o
}
