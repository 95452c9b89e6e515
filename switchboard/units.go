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
	"fmt"
	"io"

	"github.com/ctessum/unit"
)

var (
	perSecond   = unit.Dimensions{unit.TimeDim: -1}
	perMeter    = unit.Dimensions{unit.LengthDim: -1}
	second      = unit.Dimensions{unit.TimeDim: 1}
	diffusivity = unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -1}
)

// Quantity is a resolved parameter together with its dimensions.
type Quantity struct {
	Name  string
	Value *unit.Unit
}

// Quantities returns the dimensional parameters of the experiment, forcing
// first.
func (s *Switchboard) Quantities() []Quantity {
	f, c := s.forcing, s.cfg
	return []Quantity{
		{"N0", unit.New(f.N0, perSecond)},
		{"omega", unit.New(f.Omega, perSecond)},
		{"k", unit.New(f.K, perMeter)},
		{"kx", unit.New(f.Kx, perMeter)},
		{"kz", unit.New(f.Kz, perMeter)},
		{"lam_x", unit.New(f.LambdaX, unit.Meter)},
		{"T", unit.New(f.T, second)},
		{"A", unit.New(f.A, unit.Meter)},
		{"g", unit.New(f.G, unit.MeterPerSecond2)},
		{"nu", unit.New(c.Physics.Nu, diffusivity)},
		{"kappa", unit.New(c.Physics.Kappa, diffusivity)},
		{"L_x", unit.New(c.Domain.Lx, unit.Meter)},
		{"L_z", unit.New(c.Domain.Lz, unit.Meter)},
		{"stop_sim_time", unit.New(s.stopSimTime, second)},
	}
}

// WriteQuantities writes one "name = value dimensions" line per quantity
// to w.
func (s *Switchboard) WriteQuantities(w io.Writer) error {
	for _, q := range s.Quantities() {
		if _, err := fmt.Fprintf(w, "%-13s = %g\n", q.Name, q.Value); err != nil {
			return err
		}
	}
	return nil
}
