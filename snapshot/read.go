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
	"io"
	"os"

	"github.com/ctessum/cdf"
)

func isEOF(err error) bool { return errors.Is(err, io.EOF) }

// File is a snapshot file opened for reading.
type File struct {
	path   string
	f      *os.File
	cf     *cdf.File
	writes int
	tasks  []string
	x, z   []float64
}

// Open opens the snapshot file at path.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %v", err)
	}
	cf, err := cdf.Open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("snapshot: opening %s: %v", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("snapshot: %v", err)
	}
	sf := &File{
		path:   path,
		f:      f,
		cf:     cf,
		writes: int(cf.Header.NumRecs(fi.Size())),
	}
	for _, v := range cf.Header.Variables() {
		dims := cf.Header.Dimensions(v)
		if len(dims) == 3 && dims[0] == TimeDim && dims[1] == XDim && dims[2] == ZDim {
			sf.tasks = append(sf.tasks, v)
		}
	}
	if sf.x, err = sf.readAll(XDim); err != nil {
		f.Close()
		return nil, err
	}
	if sf.z, err = sf.readAll(ZDim); err != nil {
		f.Close()
		return nil, err
	}
	return sf, nil
}

// readAll reads a whole non-record variable.
func (f *File) readAll(v string) ([]float64, error) {
	l := f.cf.Header.Lengths(v)
	if len(l) != 1 {
		return nil, fmt.Errorf("snapshot: %s: missing variable %s", f.path, v)
	}
	d := make([]float64, l[0])
	r := f.cf.Reader(v, nil, nil)
	if _, err := r.Read(d); err != nil && !isEOF(err) {
		return nil, fmt.Errorf("snapshot: %s: reading %s: %v", f.path, v, err)
	}
	return d, nil
}

// Path returns the name the file was opened with.
func (f *File) Path() string { return f.path }

// Writes returns the number of writes in the file.
func (f *File) Writes() int { return f.writes }

// Tasks returns the names of the tasks in the file in the order they were
// defined.
func (f *File) Tasks() []string { return append([]string(nil), f.tasks...) }

// X returns the horizontal grid.
func (f *File) X() []float64 { return append([]float64(nil), f.x...) }

// Z returns the vertical grid.
func (f *File) Z() []float64 { return append([]float64(nil), f.z...) }

func (f *File) checkWrite(i int) error {
	if i < 0 || i >= f.writes {
		return fmt.Errorf("snapshot: %s: write index %d out of range [0, %d)", f.path, i, f.writes)
	}
	return nil
}

// SimTime returns the simulation time of write i.
func (f *File) SimTime(i int) (float64, error) {
	if err := f.checkWrite(i); err != nil {
		return 0, err
	}
	d := make([]float64, 1)
	if _, err := f.cf.Reader(SimTime, []int{i}, nil).Read(d); err != nil && !isEOF(err) {
		return 0, fmt.Errorf("snapshot: %s: reading %s: %v", f.path, SimTime, err)
	}
	return d[0], nil
}

// WriteNumber returns the write number of write i.
func (f *File) WriteNumber(i int) (int, error) {
	if err := f.checkWrite(i); err != nil {
		return 0, err
	}
	d := make([]int32, 1)
	if _, err := f.cf.Reader(WriteNumber, []int{i}, nil).Read(d); err != nil && !isEOF(err) {
		return 0, fmt.Errorf("snapshot: %s: reading %s: %v", f.path, WriteNumber, err)
	}
	return int(d[0]), nil
}

func (f *File) hasTask(task string) bool {
	for _, t := range f.tasks {
		if t == task {
			return true
		}
	}
	return false
}

// Field returns task at write i, with z varying fastest.
func (f *File) Field(task string, i int) ([]float64, error) {
	if !f.hasTask(task) {
		return nil, fmt.Errorf("%w '%s' in %s", ErrUnknownTask, task, f.path)
	}
	if err := f.checkWrite(i); err != nil {
		return nil, err
	}
	nx, nz := len(f.x), len(f.z)
	d := make([]float64, nx*nz)
	r := f.cf.Reader(task, []int{i, 0, 0}, []int{i, nx - 1, nz - 1})
	if _, err := r.Read(d); err != nil && !isEOF(err) {
		return nil, fmt.Errorf("snapshot: %s: reading %s write %d: %v", f.path, task, i, err)
	}
	return d, nil
}

// Task returns every write of task.
func (f *File) Task(task string) (*Dataset, error) {
	if !f.hasTask(task) {
		return nil, fmt.Errorf("%w '%s' in %s", ErrUnknownTask, task, f.path)
	}
	nx, nz := len(f.x), len(f.z)
	d := &Dataset{
		Name:   task,
		Dims:   []string{TimeDim, XDim, ZDim},
		Shape:  []int{f.writes, nx, nz},
		Scales: [][]float64{make([]float64, f.writes), f.X(), f.Z()},
		Data:   make([]float64, 0, f.writes*nx*nz),
	}
	for i := 0; i < f.writes; i++ {
		t, err := f.SimTime(i)
		if err != nil {
			return nil, err
		}
		d.Scales[0][i] = t
		v, err := f.Field(task, i)
		if err != nil {
			return nil, err
		}
		d.Data = append(d.Data, v...)
	}
	return d, nil
}

// Profile returns the first write of task at the first x location
// together with the vertical grid. It is used for fields that vary only
// in z, such as the background profile and the sponge layer.
func (f *File) Profile(task string) (values, z []float64, err error) {
	v, err := f.Field(task, 0)
	if err != nil {
		return nil, nil, err
	}
	return v[:len(f.z)], f.Z(), nil
}

// Close closes the file.
func (f *File) Close() error { return f.f.Close() }

// ReadProfile opens the snapshot file at path and returns the profile of
// task.
func ReadProfile(path, task string) (values, z []float64, err error) {
	f, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return f.Profile(task)
}
