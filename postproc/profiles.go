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
	"fmt"
	"image/color"

	"github.com/iwlab/bouss/physics/forcing"
	"github.com/iwlab/bouss/switchboard"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ProfilePlot saves the background profile, and the sponge layer if the
// switchboard uses one, side by side in the PNG file path.
func ProfilePlot(sb *switchboard.Switchboard, path string) error {
	d := sb.Display()
	z := sb.Z()
	bp, err := profilePlot("Background profile", "N (s^-1)", sb.Background(), z, d.Buffer, d.ExtraBuffer)
	if err != nil {
		return err
	}
	row := []*plot.Plot{bp}
	if sb.TakeSpongeSnaps() {
		sp, err := profilePlot("Sponge layer", "ν (m^2/s)", sb.Sponge(), z, d.Buffer, d.ExtraBuffer)
		if err != nil {
			return err
		}
		row = append(row, sp)
	}
	for _, p := range row {
		setFontSize(p, d.FontSize)
	}
	return savePlots([][]*plot.Plot{row}, 3*vg.Inch, 4*vg.Inch, d.DPI, path)
}

// ForcingPlot saves the spatial window and the temporal ramp of the
// boundary forcing, evaluated from the substitutions handed to the solver,
// in the PNG file path. The ramp is drawn over twice the ramp time.
func ForcingPlot(sb *switchboard.Switchboard, path string, points int) error {
	if points < 2 {
		points = 200
	}
	bf := sb.Forcing()
	e, err := forcing.NewEvaluator(bf.Substitutions(), bf.Params())
	if err != nil {
		return err
	}
	dom := sb.Domain()

	x := floats.Span(make([]float64, points), dom.XSim0, dom.XSimF)
	win := make(plotter.XYs, points)
	for i, xi := range x {
		v, err := e.Eval("window", xi, 0, 0)
		if err != nil {
			return err
		}
		win[i].X, win[i].Y = xi, v
	}
	t := floats.Span(make([]float64, points), 0, 2*bf.NT*bf.T)
	ramp := make(plotter.XYs, points)
	for i, ti := range t {
		v, err := e.Eval("ramp", 0, 0, ti)
		if err != nil {
			return err
		}
		ramp[i].X, ramp[i].Y = ti/bf.T, v
	}

	wp, err := linePlot("Forcing window", "x (m)", "window", win)
	if err != nil {
		return err
	}
	rp, err := linePlot("Forcing ramp", "t/T", "ramp", ramp)
	if err != nil {
		return err
	}
	d := sb.Display()
	setFontSize(wp, d.FontSize)
	setFontSize(rp, d.FontSize)
	return savePlots([][]*plot.Plot{{wp}, {rp}}, 6*vg.Inch, 2.5*vg.Inch, d.DPI, path)
}

func linePlot(title, xlabel, ylabel string, xy plotter.XYs) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	l, err := plotter.NewLine(xy)
	if err != nil {
		return nil, fmt.Errorf("postproc: %s: %v", title, err)
	}
	l.LineStyle.Color = color.Black
	p.Add(l, plotter.NewGrid())
	p.Y.Min, p.Y.Max = -0.05, 1.05
	return p, nil
}

// savePlots tiles plots, each w×h, and saves them to path.
func savePlots(plots [][]*plot.Plot, w, h vg.Length, dpi float64, path string) error {
	rows, cols := len(plots), len(plots[0])
	fig := newFigure(vg.Length(cols)*w, vg.Length(rows)*h, dpi)
	t := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Millimeter, PadY: vg.Millimeter,
		PadTop: vg.Millimeter, PadBottom: vg.Millimeter,
		PadLeft: vg.Millimeter, PadRight: vg.Millimeter,
	}
	canvases := plot.Align(plots, t, fig.dc)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}
	return fig.save(path)
}
