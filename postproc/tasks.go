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

package postproc

import (
	"context"
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/iwlab/bouss/snapshot"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// limitFraction scales the global maximum of a task to its colour limit.
const limitFraction = 0.7

// Tasks renders the listed tasks over the right half of the domain, one
// panel per task stacked in a single image per write, with contours of
// another task drawn on top. Each task is also saved on its own.
type Tasks struct {
	Tasks []string

	// Contour is the task drawn as contours on every panel, with Levels
	// levels. No contours are drawn if it is empty.
	Contour string
	Levels  int

	// Title returns the title of a write at simTime.
	Title func(simTime float64) string

	Output   string
	DPI      float64
	FontSize float64
}

// TasksName returns the file name of the combined image for write number
// write.
func TasksName(write int) string { return fmt.Sprintf("wu_%06d.png", write) }

// TaskName returns the file name of the image of task for write number
// write.
func TaskName(task string, write int) string { return fmt.Sprintf("%s_%06d.png", task, write) }

// mono is a single-colour palette.
type mono struct{ c color.Color }

func (m mono) Colors() []color.Color { return []color.Color{m.c} }

var _ palette.Palette = mono{}

// contourLevels returns n levels evenly spaced strictly inside (-lim, lim).
func contourLevels(lim float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	l := floats.Span(make([]float64, n+2), -lim, lim)
	return l[1 : n+1]
}

// rightHalf returns the x limits of the right half of p.
func rightHalf(p *snapshot.Plane) [2]float64 {
	return [2]float64{p.X[len(p.X)/2], p.X[len(p.X)-1]}
}

// Render draws writes start to start+count-1 of f.
func (tr *Tasks) Render(ctx context.Context, f *snapshot.File, start, count int) error {
	if len(tr.Tasks) == 0 {
		return fmt.Errorf("postproc: no tasks to plot")
	}
	data := make(map[string]*snapshot.Dataset)
	lims := make(map[string]float64)
	for _, t := range tr.Tasks {
		ds, err := f.Task(t)
		if err != nil {
			return err
		}
		data[t] = ds
		lims[t] = limitFraction * EvenLimit(ds.Data)
	}
	var levels []float64
	var contour *snapshot.Dataset
	if tr.Contour != "" {
		ds, err := f.Task(tr.Contour)
		if err != nil {
			return err
		}
		contour = ds
		if floats.Max(ds.Data) != floats.Min(ds.Data) {
			levels = contourLevels(EvenLimit(ds.Data), tr.Levels)
		}
	}

	for i := start; i < start+count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := tr.write(f, data, lims, contour, levels, i); err != nil {
			return err
		}
	}
	return nil
}

// taskPanel holds the sliced and gridded data of one task at one write,
// shared by the combined image and the single-task image.
type taskPanel struct {
	grid       *planeGrid
	cm         palette.ColorMap
	contour    *plotter.Contour
	xlim, ylim [2]float64
}

func newTaskPanel(task string, d *snapshot.Dataset, lim float64, contour *snapshot.Dataset, levels []float64, i int) (*taskPanel, error) {
	plane, err := d.Plane(snapshot.Named(snapshot.TimeDim), i, false)
	if err != nil {
		return nil, err
	}
	tp := &taskPanel{
		cm:   diverging(lim),
		xlim: rightHalf(plane),
		ylim: [2]float64{plane.Y[0], plane.Y[len(plane.Y)-1]},
	}
	if tp.grid, err = newPlaneGrid(plane, tp.xlim, tp.ylim); err != nil {
		return nil, fmt.Errorf("postproc: %s: %v", task, err)
	}
	if contour != nil && len(levels) > 0 {
		cp, err := contour.Plane(snapshot.Named(snapshot.TimeDim), i, false)
		if err != nil {
			return nil, err
		}
		cg, err := newPlaneGrid(cp, tp.xlim, tp.ylim)
		if err != nil {
			return nil, err
		}
		tp.contour = plotter.NewContour(cg, levels, mono{color.Black})
		tp.contour.LineStyles = []draw.LineStyle{{Color: color.Black, Width: vg.Points(0.5)}}
	}
	return tp, nil
}

// plots returns the field plot titled title and its colour bar.
func (tp *taskPanel) plots(title string, fontSize float64) (*plot.Plot, *plot.Plot) {
	p := fieldPlot(title, tp.grid, tp.cm, tp.xlim, tp.ylim)
	if tp.contour != nil {
		p.Add(tp.contour)
		p.X.Min, p.X.Max = tp.xlim[0], tp.xlim[1]
		p.Y.Min, p.Y.Max = tp.ylim[0], tp.ylim[1]
	}
	setFontSize(p, fontSize)
	cb := colorBarPlot(tp.cm, 3)
	setFontSize(cb, fontSize)
	return p, cb
}

func (tr *Tasks) write(f *snapshot.File, data map[string]*snapshot.Dataset, lims map[string]float64, contour *snapshot.Dataset, levels []float64, i int) error {
	st, err := f.SimTime(i)
	if err != nil {
		return err
	}
	wn, err := f.WriteNumber(i)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("t = %.3f", st)
	if tr.Title != nil {
		title = tr.Title(st)
	}
	dpi := tr.DPI
	if dpi <= 0 {
		dpi = 150
	}

	const (
		panelW = 8 * vg.Inch
		panelH = 4 * vg.Inch
		cbW    = 0.8 * vg.Inch
		titleH = 0.5 * vg.Inch
	)
	n := len(tr.Tasks)
	all := newFigure(panelW, vg.Length(n)*panelH+titleH, dpi)
	suptitle(all.dc, title, tr.FontSize)
	body := region(all.dc, 0, 0, panelW, vg.Length(n)*panelH)

	for k, task := range tr.Tasks {
		tp, err := newTaskPanel(task, data[task], lims[task], contour, levels, i)
		if err != nil {
			return err
		}
		c := region(body, 0, vg.Length(n-1-k)*panelH, panelW, panelH)
		p, cb := tp.plots(task+" (m/s)", tr.FontSize)
		p.Draw(draw.Crop(c, 0, -cbW, 0, 0))
		cb.Draw(draw.Crop(c, panelW-cbW, 0, 0, 0))

		// The single-task image carries the time in its own title.
		p, cb = tp.plots(task+" (m/s), "+title, tr.FontSize)
		one := newFigure(panelW, panelH, dpi)
		p.Draw(draw.Crop(one.dc, 0, -cbW, 0, 0))
		cb.Draw(draw.Crop(one.dc, panelW-cbW, 0, 0, 0))
		if err := one.save(filepath.Join(tr.Output, TaskName(task, wn))); err != nil {
			return err
		}
	}
	return all.save(filepath.Join(tr.Output, TasksName(wn)))
}
