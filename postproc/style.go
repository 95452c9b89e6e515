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
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/iwlab/bouss/snapshot"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ExpLabel formats v with one decimal of mantissa. Values between 0.1
// and 1000 are written out in full; others as mantissa·10^exponent.
func ExpLabel(v float64) string {
	s := strconv.FormatFloat(v, 'E', 1, 64)
	i := strings.IndexByte(s, 'E')
	if i < 0 {
		return s
	}
	base := s[:i]
	exp, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return s
	}
	b, err := strconv.ParseFloat(base, 64)
	if err != nil {
		return s
	}
	f := func(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }
	switch exp {
	case -1:
		return f(b / 10)
	case 0:
		return base
	case 1:
		return f(b * 10)
	case 2:
		return f(b * 100)
	default:
		return fmt.Sprintf("%s·10^%d", base, exp)
	}
}

// evenTicks places n labelled ticks evenly between the axis limits.
type evenTicks int

func (n evenTicks) Ticks(min, max float64) []plot.Tick {
	if n <= 1 {
		return []plot.Tick{{Value: (min + max) / 2, Label: ExpLabel((min + max) / 2)}}
	}
	t := make([]plot.Tick, n)
	for i, v := range floats.Span(make([]float64, n), min, max) {
		t[i] = plot.Tick{Value: v, Label: ExpLabel(v)}
	}
	return t
}

// EvenLimit returns the colour limit for a symmetric scale around zero:
// the largest magnitude in vals, or 1 if every value is zero.
func EvenLimit(vals ...[]float64) float64 {
	var m float64
	for _, v := range vals {
		for _, x := range v {
			if a := math.Abs(x); a > m {
				m = a
			}
		}
	}
	if m == 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return 1
	}
	return m
}

// planeGrid exposes the part of a plane inside the display limits as a
// plotter.GridXYZ.
type planeGrid struct {
	p          *snapshot.Plane
	cols, rows []int
}

func within(v []float64, lim [2]float64) []int {
	var o []int
	for i, x := range v {
		if x >= lim[0] && x <= lim[1] {
			o = append(o, i)
		}
	}
	return o
}

func newPlaneGrid(p *snapshot.Plane, xlim, ylim [2]float64) (*planeGrid, error) {
	g := &planeGrid{p: p, cols: within(p.X, xlim), rows: within(p.Y, ylim)}
	if len(g.cols) < 2 || len(g.rows) < 2 {
		return nil, fmt.Errorf("postproc: %d×%d grid points inside display limits %v×%v; need at least 2×2",
			len(g.cols), len(g.rows), xlim, ylim)
	}
	return g, nil
}

func (g *planeGrid) Dims() (c, r int)   { return len(g.cols), len(g.rows) }
func (g *planeGrid) X(c int) float64    { return g.p.X[g.cols[c]] }
func (g *planeGrid) Y(r int) float64    { return g.p.Y[g.rows[r]] }
func (g *planeGrid) Z(c, r int) float64 { return g.p.Values[g.cols[c]][g.rows[r]] }

// values returns every value in the grid.
func (g *planeGrid) values() []float64 {
	o := make([]float64, 0, len(g.cols)*len(g.rows))
	for _, c := range g.cols {
		for _, r := range g.rows {
			o = append(o, g.p.Values[c][r])
		}
	}
	return o
}

// diverging returns a blue-red colour map spanning [-lim, lim].
func diverging(lim float64) palette.ColorMap {
	cm := moreland.SmoothBlueRed()
	cm.SetMin(-lim)
	cm.SetMax(lim)
	return cm
}

// fieldPlot returns a heat map of g with symmetric colour limits.
func fieldPlot(title string, g plotter.GridXYZ, cm palette.ColorMap, xlim, ylim [2]float64) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "z (m)"
	h := plotter.NewHeatMap(g, cm.Palette(255))
	h.Min, h.Max = cm.Min(), cm.Max()
	h.Underflow, h.Overflow = h.Palette.Colors()[0], h.Palette.Colors()[254]
	p.Add(h)
	p.X.Min, p.X.Max = xlim[0], xlim[1]
	p.Y.Min, p.Y.Max = ylim[0], ylim[1]
	return p
}

// colorBarPlot returns a vertical colour bar with n ticks.
func colorBarPlot(cm palette.ColorMap, n int) *plot.Plot {
	p := plot.New()
	p.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})
	p.HideX()
	p.Y.Tick.Marker = evenTicks(n)
	return p
}

// profileLimits pads the data range of a vertical profile. A constant
// profile gets extra on both sides; otherwise buffer. The vertical range
// gets buffer above only.
func profileLimits(values, z []float64, buffer, extra float64) (xlim, ylim [2]float64) {
	xmin, xmax := floats.Min(values), floats.Max(values)
	pad := buffer
	if xmax-xmin == 0 {
		pad = extra
	}
	return [2]float64{xmin - pad, xmax + pad}, [2]float64{floats.Min(z), floats.Max(z) + buffer}
}

// profilePlot draws values against z.
func profilePlot(title, xlabel string, values, z []float64, buffer, extra float64) (*plot.Plot, error) {
	if len(values) == 0 || len(values) != len(z) {
		return nil, fmt.Errorf("postproc: %s: %d values for %d levels", title, len(values), len(z))
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "z (m)"
	xy := make(plotter.XYs, len(z))
	for i := range z {
		xy[i].X, xy[i].Y = values[i], z[i]
	}
	l, err := plotter.NewLine(xy)
	if err != nil {
		return nil, fmt.Errorf("postproc: %s: %v", title, err)
	}
	l.LineStyle.Color = color.Black
	p.Add(l, plotter.NewGrid())
	xlim, ylim := profileLimits(values, z, buffer, extra)
	p.X.Min, p.X.Max = xlim[0], xlim[1]
	p.Y.Min, p.Y.Max = ylim[0], ylim[1]
	return p, nil
}

// setFontSize sets the size of every label of p.
func setFontSize(p *plot.Plot, size float64) {
	if size <= 0 {
		return
	}
	s := vg.Points(size)
	p.Title.TextStyle.Font.Size = s
	p.X.Label.TextStyle.Font.Size = s
	p.Y.Label.TextStyle.Font.Size = s
	p.X.Tick.Label.Font.Size = s * 0.8
	p.Y.Tick.Label.Font.Size = s * 0.8
	p.Legend.TextStyle.Font.Size = s * 0.8
}

// suptitle writes a centred title at the top of c.
func suptitle(c draw.Canvas, title string, size float64) {
	if size <= 0 {
		size = 12
	}
	sty := text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, vg.Points(size*1.2)),
		XAlign:  text.XCenter,
		YAlign:  text.YTop,
		Handler: plot.DefaultTextHandler,
	}
	c.FillText(sty, vg.Point{X: c.Center().X, Y: c.Max.Y - vg.Points(size*0.4)}, title)
}

// figure is a canvas that can be saved as a PNG file.
type figure struct {
	img *vgimg.Canvas
	dc  draw.Canvas
}

func newFigure(w, h vg.Length, dpi float64) *figure {
	img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(int(dpi)))
	dc := draw.New(img)
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())
	return &figure{img: img, dc: dc}
}

func (m *figure) save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("postproc: %v", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: m.img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("postproc: writing %s: %v", path, err)
	}
	return f.Close()
}
