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

package snapshot

import (
	"errors"
	"fmt"
)

// ErrAxis is returned when a dataset has no axis matching a request.
var ErrAxis = errors.New("snapshot: axis name not found")

// Dataset is an n-dimensional field with one scale per dimension. Data is
// stored in row-major order.
type Dataset struct {
	Name   string
	Dims   []string
	Shape  []int
	Scales [][]float64
	Data   []float64
}

// At returns the value at index idx.
func (d *Dataset) At(idx ...int) float64 {
	if len(idx) != len(d.Shape) {
		panic(fmt.Sprintf("snapshot: %d indices for %d-d dataset", len(idx), len(d.Shape)))
	}
	o := 0
	for i, j := range idx {
		if j < 0 || j >= d.Shape[i] {
			panic(fmt.Sprintf("snapshot: index %d out of range for dimension %s", j, d.Dims[i]))
		}
		o = o*d.Shape[i] + j
	}
	return d.Data[o]
}

// Axis selects a dataset dimension by name or position.
type Axis struct {
	name  string
	index int
}

// Named returns the axis called name.
func Named(name string) Axis { return Axis{name: name, index: -1} }

// Indexed returns the axis at position i.
func Indexed(i int) Axis { return Axis{index: i} }

func (a Axis) String() string {
	if a.index < 0 {
		return a.name
	}
	return fmt.Sprint(a.index)
}

// Axis returns the position of a in d.
func (d *Dataset) Axis(a Axis) (int, error) {
	if a.index >= 0 {
		if a.index >= len(d.Dims) {
			return 0, fmt.Errorf("%w: %d (dataset %s has %d dimensions)", ErrAxis, a.index, d.Name, len(d.Dims))
		}
		return a.index, nil
	}
	for i, n := range d.Dims {
		if n == a.name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s (dataset %s)", ErrAxis, a.name, d.Name)
}

// Plane is a 2-d slice of a dataset. Values[i][j] is the value at
// (X[i], Y[j]).
type Plane struct {
	XName, YName string
	X, Y         []float64
	Values       [][]float64
}

// Min returns the smallest value in p.
func (p *Plane) Min() float64 {
	m := p.Values[0][0]
	for _, r := range p.Values {
		for _, v := range r {
			if v < m {
				m = v
			}
		}
	}
	return m
}

// Max returns the largest value in p.
func (p *Plane) Max() float64 {
	m := p.Values[0][0]
	for _, r := range p.Values {
		for _, v := range r {
			if v > m {
				m = v
			}
		}
	}
	return m
}

// Plane returns the slice of a 3-d dataset at position index along the
// normal axis. The two remaining axes become X and Y in their dataset
// order, or swapped if transpose is set.
func (d *Dataset) Plane(normal Axis, index int, transpose bool) (*Plane, error) {
	if len(d.Shape) != 3 {
		return nil, fmt.Errorf("snapshot: dataset %s is %d-d; planes need a 3-d dataset", d.Name, len(d.Shape))
	}
	n, err := d.Axis(normal)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= d.Shape[n] {
		return nil, fmt.Errorf("snapshot: index %d out of range for axis %s of length %d", index, d.Dims[n], d.Shape[n])
	}
	var free []int
	for i := range d.Shape {
		if i != n {
			free = append(free, i)
		}
	}
	xa, ya := free[0], free[1]
	if transpose {
		xa, ya = ya, xa
	}
	p := &Plane{
		XName:  d.Dims[xa],
		YName:  d.Dims[ya],
		X:      append([]float64(nil), d.Scales[xa]...),
		Y:      append([]float64(nil), d.Scales[ya]...),
		Values: make([][]float64, d.Shape[xa]),
	}
	idx := make([]int, 3)
	idx[n] = index
	for i := range p.Values {
		p.Values[i] = make([]float64, d.Shape[ya])
		idx[xa] = i
		for j := range p.Values[i] {
			idx[ya] = j
			p.Values[i][j] = d.At(idx...)
		}
	}
	return p, nil
}
