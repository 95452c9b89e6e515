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

// Package background builds background stratification profiles N(z).
package background

import (
	"fmt"
	"math"

	"github.com/iwlab/bouss/physics"
	"github.com/iwlab/bouss/physics/profile"
	"gonum.org/v1/gonum/floats"
)

// Builder creates a vertical profile over a vertical grid. Build must not
// modify z.
type Builder interface {
	Build(z []float64) []float64
}

// Config holds the parameters of the staircase profile.
type Config struct {
	// Interfaces is the number of mixed-layer interfaces.
	Interfaces int

	// MixedBottom and MixedTop bound the mixed-layer band [m].
	MixedBottom, MixedTop float64

	// Slope is the steepness of every transition.
	Slope float64

	// NUpper is the stratification above the band; NLower below it.
	NUpper, NLower float64

	// BumpWidth is the width of each interface bump [m].
	BumpWidth float64
}

// DefaultConfig returns the staircase parameters of the reference
// experiment.
func DefaultConfig() Config {
	return Config{
		Interfaces:  0,
		MixedBottom: -0.30,
		MixedTop:    -0.22,
		Slope:       200,
		NUpper:      0.95,
		NLower:      1.24,
		BumpWidth:   0.05,
	}
}

// Constructor creates a Builder. n0 is the characteristic stratification
// of the resolved boundary forcing.
type Constructor func(c Config, n0 float64) (Builder, error)

var constructors = map[string]Constructor{
	"constant":   NewConstant,
	"bp_N_const": NewConstant,
	"staircase":  NewStaircase,
	"bp_default": NewStaircase,
}

// Lookup returns the constructor registered under name.
func Lookup(name string) (Constructor, error) {
	f, ok := constructors[name]
	if !ok {
		return nil, physics.NewUnknownModuleError(physics.BackgroundProfile, name, constructors)
	}
	return f, nil
}

// New creates the background profile registered under name.
func New(name string, c Config, n0 float64) (Builder, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return f(c, n0)
}

// Constant is a uniform stratification.
type Constant struct {
	N0 float64
}

// NewConstant returns a profile equal to n0 everywhere.
func NewConstant(_ Config, n0 float64) (Builder, error) {
	return Constant{N0: n0}, nil
}

// Build implements Builder.
func (c Constant) Build(z []float64) []float64 {
	o := make([]float64, len(z))
	for i := range o {
		o[i] = c.N0
	}
	return o
}

// Staircase is a two-layer stratification joined by a mixed-layer band,
// optionally with evenly spaced interfaces inside the band.
type Staircase struct {
	Config
}

// NewStaircase checks c and returns a staircase profile. n0 is not used.
func NewStaircase(c Config, _ float64) (Builder, error) {
	if c.Interfaces < 0 {
		return nil, fmt.Errorf("background: Interfaces=%d but should be >=0", c.Interfaces)
	}
	if !(c.MixedTop > c.MixedBottom) {
		return nil, fmt.Errorf("background: MixedTop=%g should be above MixedBottom=%g", c.MixedTop, c.MixedBottom)
	}
	if c.Interfaces > 0 && !(c.BumpWidth > 0) {
		return nil, fmt.Errorf("background: BumpWidth=%g but should be >0", c.BumpWidth)
	}
	return Staircase{Config: c}, nil
}

// BumpHeight is the height of each interface bump.
func (s Staircase) BumpHeight() float64 {
	return math.Max(s.NUpper, s.NLower) - 0.5*math.Abs(s.NUpper-s.NLower)
}

// Centers returns the interface centers, spaced H/n apart with the first
// half a spacing above the bottom of the band.
func (s Staircase) Centers() []float64 {
	if s.Interfaces == 0 {
		return nil
	}
	height := (s.MixedTop - s.MixedBottom) / float64(s.Interfaces)
	c := make([]float64, s.Interfaces)
	for i := range c {
		c[i] = s.MixedBottom + height/2 + float64(i)*height
	}
	return c
}

// Build implements Builder.
func (s Staircase) Build(z []float64) []float64 {
	o := profile.TanhStep(z, s.NUpper, s.Slope, s.MixedTop)
	floats.Add(o, profile.TanhStep(z, s.NLower, -s.Slope, s.MixedBottom))
	h := s.BumpHeight()
	for _, c := range s.Centers() {
		floats.Add(o, profile.TanhBump(z, h, s.Slope, c, s.BumpWidth))
	}
	return o
}
