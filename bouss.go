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

// Package bouss configures two-dimensional Boussinesq internal-wave
// experiments: it resolves the boundary forcing, background stratification
// and sponge layer for a run, hands the resulting problem description to an
// external spectral solver, and renders the solver's snapshot output.
//
// The physics lives in the physics/... packages, the parameter graph in
// package switchboard, and the command-line interface in package boussutil.
package bouss

// Version gives the version number.
const Version = "0.3.0"
