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

// Package profile provides the smooth transition functions that
// vertical profiles are built from. Every function returns a newly
// allocated slice with one value per element of z and leaves z unchanged.
package profile

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Step returns the value of a tanh step of the given height at z:
// zero well below center, height well above it (or the reverse for a
// negative slope). The transition width is proportional to 1/slope.
func Step(z, height, slope, center float64) float64 {
	return 0.5 * height * (math.Tanh(slope*(z-center)) + 1)
}

// TanhStep applies Step to every element of z.
func TanhStep(z []float64, height, slope, center float64) []float64 {
	o := make([]float64, len(z))
	for i, v := range z {
		o[i] = Step(v, height, slope, center)
	}
	return o
}

// Cosh2 returns a localized bump, height/cosh²(slope·(z−center)),
// for every element of z.
func Cosh2(z []float64, height, slope, center float64) []float64 {
	o := make([]float64, len(z))
	for i, v := range z {
		c := math.Cosh(slope * (v - center))
		o[i] = height / (c * c)
	}
	return o
}

// TanhBump returns a flat-topped bump of the given height and width
// centered at center. It is the sum of a rising step at center−width/2
// and a falling step at center+width/2; subtracting height cancels
// the overlap so the bump is zero outside and height on the plateau.
func TanhBump(z []float64, height, slope, center, width float64) []float64 {
	o := TanhStep(z, height, slope, center-width/2)
	floats.Add(o, TanhStep(z, height, -slope, center+width/2))
	floats.AddConst(-height, o)
	return o
}
