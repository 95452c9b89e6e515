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

// Package snapshot reads and writes solver snapshot files. A snapshot
// file is a NetCDF classic file holding a sequence of writes. Each write
// has a simulation time, a write number, and one (x, z) field per task.
//
// The layout is:
//
//	dimensions: t (record), x, z
//	double sim_time(t)
//	int    write_number(t)
//	double x(x)
//	double z(z)
//	double <task>(t, x, z)   for each task
package snapshot

import (
	"errors"
	"fmt"
	"os"

	"github.com/ctessum/cdf"
)

// Names of the fixed variables.
const (
	TimeDim     = "t"
	XDim        = "x"
	ZDim        = "z"
	SimTime     = "sim_time"
	WriteNumber = "write_number"
)

// ErrUnknownTask is returned when a file has no task with the requested
// name.
var ErrUnknownTask = errors.New("snapshot: unknown task")

// Layout describes the contents of a new snapshot file.
type Layout struct {
	X, Z  []float64
	Tasks []string

	// FirstWrite is the write number of the first write in the file.
	// Write numbers are contiguous from there.
	FirstWrite int
}

func (l Layout) check() error {
	if len(l.X) == 0 || len(l.Z) == 0 {
		return fmt.Errorf("snapshot: empty grid (%d×%d)", len(l.X), len(l.Z))
	}
	if len(l.Tasks) == 0 {
		return fmt.Errorf("snapshot: no tasks")
	}
	seen := make(map[string]bool)
	for _, t := range l.Tasks {
		switch t {
		case "", TimeDim, XDim, ZDim, SimTime, WriteNumber:
			return fmt.Errorf("snapshot: invalid task name '%s'", t)
		}
		if seen[t] {
			return fmt.Errorf("snapshot: repeated task '%s'", t)
		}
		seen[t] = true
	}
	return nil
}

// Writer appends writes to a snapshot file.
type Writer struct {
	f      *os.File
	cf     *cdf.File
	layout Layout
	n      int
}

// Create creates a snapshot file at path, replacing any existing file.
func Create(path string, l Layout) (*Writer, error) {
	if err := l.check(); err != nil {
		return nil, err
	}
	h := cdf.NewHeader([]string{TimeDim, XDim, ZDim}, []int{0, len(l.X), len(l.Z)})
	h.AddVariable(SimTime, []string{TimeDim}, []float64{0})
	h.AddAttribute(SimTime, "units", "s")
	h.AddVariable(WriteNumber, []string{TimeDim}, []int32{0})
	h.AddVariable(XDim, []string{XDim}, []float64{0})
	h.AddAttribute(XDim, "units", "m")
	h.AddVariable(ZDim, []string{ZDim}, []float64{0})
	h.AddAttribute(ZDim, "units", "m")
	for _, t := range l.Tasks {
		h.AddVariable(t, []string{TimeDim, XDim, ZDim}, []float64{0})
	}
	h.Define()
	if errs := h.Check(); len(errs) > 0 {
		return nil, fmt.Errorf("snapshot: invalid header: %v", errs[0])
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %v", err)
	}
	cf, err := cdf.Create(f, h)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("snapshot: creating %s: %v", path, err)
	}
	w := &Writer{f: f, cf: cf, layout: l}
	if err := w.writeAll(XDim, l.X); err != nil {
		f.Close()
		return nil, err
	}
	if err := w.writeAll(ZDim, l.Z); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) writeAll(v string, data []float64) error {
	end := []int{len(data) - 1}
	if _, err := w.cf.Writer(v, nil, end).Write(data); err != nil && !isEOF(err) {
		return fmt.Errorf("snapshot: writing %s: %v", v, err)
	}
	return nil
}

// Append adds a write at simTime. fields must hold every task, each with
// len(X)·len(Z) values ordered with z varying fastest.
func (w *Writer) Append(simTime float64, fields map[string][]float64) error {
	nx, nz := len(w.layout.X), len(w.layout.Z)
	for _, t := range w.layout.Tasks {
		d, ok := fields[t]
		if !ok {
			return fmt.Errorf("snapshot: write %d is missing task '%s'", w.n, t)
		}
		if len(d) != nx*nz {
			return fmt.Errorf("snapshot: task '%s' has %d values; want %d×%d", t, len(d), nx, nz)
		}
	}
	if len(fields) != len(w.layout.Tasks) {
		return fmt.Errorf("snapshot: write %d has %d fields but the file has %d tasks", w.n, len(fields), len(w.layout.Tasks))
	}
	i := w.n
	if _, err := w.cf.Writer(SimTime, []int{i}, nil).Write([]float64{simTime}); err != nil {
		return fmt.Errorf("snapshot: writing %s: %v", SimTime, err)
	}
	wn := int32(w.layout.FirstWrite + i)
	if _, err := w.cf.Writer(WriteNumber, []int{i}, nil).Write([]int32{wn}); err != nil {
		return fmt.Errorf("snapshot: writing %s: %v", WriteNumber, err)
	}
	for _, t := range w.layout.Tasks {
		if _, err := w.cf.Writer(t, []int{i, 0, 0}, nil).Write(fields[t]); err != nil {
			return fmt.Errorf("snapshot: writing %s: %v", t, err)
		}
	}
	w.n++
	return nil
}

// Writes returns the number of writes appended so far.
func (w *Writer) Writes() int { return w.n }

// Close records the number of writes in the header and closes the file.
func (w *Writer) Close() error {
	if err := cdf.UpdateNumRecs(w.f); err != nil {
		w.f.Close()
		return fmt.Errorf("snapshot: %v", err)
	}
	return w.f.Close()
}

// WriteProfile writes a file holding one write of task, a field that
// varies only in z, repeated at every x.
func WriteProfile(path string, x, z []float64, task string, values []float64) error {
	if len(values) != len(z) {
		return fmt.Errorf("snapshot: profile %s has %d values for %d levels", task, len(values), len(z))
	}
	w, err := Create(path, Layout{X: x, Z: z, Tasks: []string{task}})
	if err != nil {
		return err
	}
	d := make([]float64, 0, len(x)*len(z))
	for range x {
		d = append(d, values...)
	}
	if err := w.Append(0, map[string][]float64{task: d}); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
