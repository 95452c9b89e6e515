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

// Package sponge builds the damping-coefficient profile of the sponge
// layer at the bottom of the domain. The coefficient multiplies the
// viscosity, so 1 means no extra damping.
package sponge

import (
	"fmt"

	"github.com/iwlab/bouss/physics"
	"github.com/iwlab/bouss/physics/profile"
)

// Builder creates a damping profile over a vertical grid. Build must not
// modify z.
type Builder interface {
	Build(z []float64) []float64
}

// Config holds the ramped sponge parameters.
type Config struct {
	// Thickness of the sponge band [m].
	Thickness float64

	// Slope is the steepness of the ramp.
	Slope float64

	// MaxCoeff is the coefficient reached at the bottom of the band.
	MaxCoeff float64
}

// DefaultConfig returns the sponge parameters of the reference experiment.
func DefaultConfig() Config {
	return Config{Thickness: 0.2, Slope: 40, MaxCoeff: 20}
}

// Constructor creates a Builder for a domain whose bottom is at bottom.
type Constructor func(c Config, bottom float64) (Builder, error)

var constructors = map[string]Constructor{
	"uniform":    NewUniform,
	"sl_uniform": NewUniform,
	"ramped":     NewRamped,
	"sl_default": NewRamped,
}

// Lookup returns the constructor registered under name.
func Lookup(name string) (Constructor, error) {
	f, ok := constructors[name]
	if !ok {
		return nil, physics.NewUnknownModuleError(physics.SpongeLayer, name, constructors)
	}
	return f, nil
}

// New creates the sponge layer registered under name.
func New(name string, c Config, bottom float64) (Builder, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return f(c, bottom)
}

// Uniform applies no damping.
type Uniform struct{}

// NewUniform returns a Uniform sponge.
func NewUniform(Config, float64) (Builder, error) { return Uniform{}, nil }

// Build implements Builder.
func (Uniform) Build(z []float64) []float64 {
	o := make([]float64, len(z))
	for i := range o {
		o[i] = 1
	}
	return o
}

// Ramped rises from 1 above the band to MaxCoeff at the bottom with a
// single tanh step centered two thirds of the way down the band. Because
// tanh is asymptotic the coefficient only approaches 1 above the band.
type Ramped struct {
	Config
	Bottom, Top, Center float64
}

// NewRamped returns a Ramped sponge occupying [bottom, bottom+Thickness].
func NewRamped(c Config, bottom float64) (Builder, error) {
	if !(c.Thickness > 0) {
		return nil, fmt.Errorf("sponge: Thickness=%g but should be >0", c.Thickness)
	}
	if !(c.MaxCoeff >= 1) {
		return nil, fmt.Errorf("sponge: MaxCoeff=%g but should be >=1", c.MaxCoeff)
	}
	top := bottom + c.Thickness
	return Ramped{
		Config: c,
		Bottom: bottom,
		Top:    top,
		Center: top - 2*c.Thickness/3,
	}, nil
}

// Build implements Builder.
func (r Ramped) Build(z []float64) []float64 {
	o := profile.TanhStep(z, r.MaxCoeff-1, -r.Slope, r.Center)
	for i := range o {
		o[i]++
	}
	return o
}
