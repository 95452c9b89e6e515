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
	"math"
	"path/filepath"
	"sort"

	"github.com/iwlab/bouss/snapshot"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// DefaultBins is the number of histogram bins.
const DefaultBins = 100

// barFraction is the width of a histogram bar relative to its bin.
const barFraction = 0.7

// Bars is a histogram prepared for drawing as bars.
type Bars struct {
	Centers []float64
	Counts  []float64

	// Width is the width of each bar.
	Width float64
}

// HistogramBars bins data into n equal bins spanning its range. A constant
// sample is binned over [v-0.5, v+0.5].
func HistogramBars(data []float64, n int) (Bars, error) {
	if len(data) == 0 {
		return Bars{}, fmt.Errorf("postproc: histogram of empty data")
	}
	if n < 1 {
		return Bars{}, fmt.Errorf("postproc: %d histogram bins", n)
	}
	x := append([]float64(nil), data...)
	sort.Float64s(x)
	lo, hi := x[0], x[len(x)-1]
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return Bars{}, fmt.Errorf("postproc: histogram of data with non-finite values")
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	div := floats.Span(make([]float64, n+1), lo, hi)
	edge := div[n]
	// The last bin includes its upper edge.
	div[n] = math.Nextafter(hi, math.Inf(1))
	b := Bars{
		Centers: make([]float64, n),
		Counts:  stat.Histogram(nil, div, x, nil),
		Width:   barFraction * (div[1] - div[0]),
	}
	div[n] = edge
	for i := range b.Centers {
		b.Centers[i] = 0.5 * (div[i] + div[i+1])
	}
	return b, nil
}

// bins converts b to plotter bins.
func (b Bars) bins() []plotter.HistogramBin {
	o := make([]plotter.HistogramBin, len(b.Centers))
	for i, c := range b.Centers {
		o[i] = plotter.HistogramBin{Min: c - b.Width/2, Max: c + b.Width/2, Weight: b.Counts[i]}
	}
	return o
}

func (b Bars) histogram(c color.Color) *plotter.Histogram {
	h := &plotter.Histogram{
		Bins:      b.bins(),
		Width:     b.Width,
		FillColor: c,
		LineStyle: plotter.DefaultLineStyle,
	}
	h.LineStyle.Width = vg.Points(0.5)
	return h
}

// HistName returns the file name of the histogram image for write number
// write.
func HistName(write int) string { return fmt.Sprintf("hist_%06d.png", write) }

// Histograms compares the distribution of each task at every write with
// its distribution at the first write of the file.
type Histograms struct {
	Tasks []string
	Bins  int

	Title func(simTime float64) string

	Output   string
	DPI      float64
	FontSize float64
}

var (
	initialColor = color.NRGBA{R: 255, G: 165, A: 128}
	currentColor = color.NRGBA{R: 255, A: 128}
)

// Render draws writes start to start+count-1 of f.
func (hr *Histograms) Render(ctx context.Context, f *snapshot.File, start, count int) error {
	if len(hr.Tasks) == 0 {
		return fmt.Errorf("postproc: no tasks to plot")
	}
	nb := hr.Bins
	if nb == 0 {
		nb = DefaultBins
	}
	initial := make([]Bars, len(hr.Tasks))
	for k, t := range hr.Tasks {
		d, err := f.Field(t, 0)
		if err != nil {
			return err
		}
		if initial[k], err = HistogramBars(d, nb); err != nil {
			return fmt.Errorf("postproc: %s: %v", t, err)
		}
	}
	for i := start; i < start+count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := hr.write(f, initial, nb, i); err != nil {
			return err
		}
	}
	return nil
}

func (hr *Histograms) write(f *snapshot.File, initial []Bars, nb, i int) error {
	st, err := f.SimTime(i)
	if err != nil {
		return err
	}
	wn, err := f.WriteNumber(i)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("t = %.3f", st)
	if hr.Title != nil {
		title = hr.Title(st)
	}
	plots := make([][]*plot.Plot, len(hr.Tasks))
	for k, t := range hr.Tasks {
		d, err := f.Field(t, i)
		if err != nil {
			return err
		}
		cur, err := HistogramBars(d, nb)
		if err != nil {
			return fmt.Errorf("postproc: %s write %d: %v", t, wn, err)
		}
		p := plot.New()
		p.Title.Text = t + " histograms"
		p.X.Label.Text = t
		p.Y.Label.Text = "freq. (# of grid cells)"
		h0, h := initial[k].histogram(initialColor), cur.histogram(currentColor)
		p.Add(h0, h)
		p.Legend.Add("initial distr.", h0)
		p.Legend.Add(title, h)
		p.Legend.Top = true
		setFontSize(p, hr.FontSize)
		plots[k] = []*plot.Plot{p}
	}
	dpi := hr.DPI
	if dpi <= 0 {
		dpi = 100
	}
	const w, h = 5 * vg.Inch, 5 * vg.Inch
	fig := newFigure(w, vg.Length(len(hr.Tasks))*h, dpi)
	t := draw.Tiles{Rows: len(hr.Tasks), Cols: 1, PadY: vg.Millimeter, PadTop: vg.Millimeter, PadBottom: vg.Millimeter}
	canvases := plot.Align(plots, t, fig.dc)
	for k := range plots {
		plots[k][0].Draw(canvases[k][0])
	}
	return fig.save(filepath.Join(hr.Output, HistName(wn)))
}
