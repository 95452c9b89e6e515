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
	"path/filepath"

	"github.com/iwlab/bouss/snapshot"
	"github.com/iwlab/bouss/switchboard"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Profile is a vertical profile.
type Profile struct {
	Values, Z []float64
}

// FrameName returns the file name of the frame for write number write.
func FrameName(write int) string { return fmt.Sprintf("write_%06d.png", write) }

// Frames renders one image per write: the display's field panels and,
// when the display asks for them, the background and sponge profiles.
type Frames struct {
	Display switchboard.Display
	Output  string

	Background, Sponge *Profile
}

// NewFrames returns a frame renderer writing to output. The profile
// panels are read from the display's profile snapshot files.
func NewFrames(d switchboard.Display, output string) (*Frames, error) {
	fr := &Frames{Display: d, Output: output}
	if !d.Profiles {
		return fr, nil
	}
	v, z, err := snapshot.ReadProfile(d.BackgroundFile, d.BackgroundTask)
	if err != nil {
		return nil, fmt.Errorf("postproc: background profile: %w", err)
	}
	fr.Background = &Profile{Values: v, Z: z}
	if d.PlotSponge {
		v, z, err := snapshot.ReadProfile(d.SpongeFile, d.SpongeTask)
		if err != nil {
			return nil, fmt.Errorf("postproc: sponge profile: %w", err)
		}
		fr.Sponge = &Profile{Values: v, Z: z}
	}
	return fr, nil
}

// frameLayout holds the size of each part of a frame.
type frameLayout struct {
	title    vg.Length
	rowH     vg.Length
	fieldW   vg.Length
	colorW   vg.Length
	profileW vg.Length
	colW     []vg.Length
}

func (fr *Frames) layout() frameLayout {
	d := fr.Display
	scale := d.Scale
	if scale <= 0 {
		scale = 2.5
	}
	unit := vg.Length(scale) * vg.Inch
	l := frameLayout{
		title:  0.5 * vg.Inch,
		rowH:   unit,
		fieldW: unit * vg.Length(d.Aspect),
		colorW: 0.8 * vg.Inch,
	}
	ratio := d.ProfileRatio
	if ratio <= 0 {
		ratio = 2
	}
	l.profileW = unit / vg.Length(ratio)
	if l.profileW < 1.5*vg.Inch {
		l.profileW = 1.5 * vg.Inch
	}
	for j := 0; j < d.Cols; j++ {
		w := l.fieldW + l.colorW
		if d.Profiles && j != 1 {
			w = l.profileW
		}
		l.colW = append(l.colW, w)
	}
	return l
}

func (l frameLayout) size(rows int) (w, h vg.Length) {
	for _, c := range l.colW {
		w += c
	}
	return w, vg.Length(rows)*l.rowH + l.title
}

// region returns the part of c that is w wide and h high with its lower
// left corner at (x, y) relative to c's.
func region(c draw.Canvas, x, y, w, h vg.Length) draw.Canvas {
	cw, ch := c.Max.X-c.Min.X, c.Max.Y-c.Min.Y
	return draw.Crop(c, x, x+w-cw, y, y+h-ch)
}

// cell returns the canvas of the panel at row i, column j, counted from
// the top left.
func (l frameLayout) cell(c draw.Canvas, rows, i, j int) draw.Canvas {
	var x vg.Length
	for k := 0; k < j; k++ {
		x += l.colW[k]
	}
	y := vg.Length(rows-1-i) * l.rowH
	return region(c, x, y, l.colW[j], l.rowH)
}

// Render draws writes start to start+count-1 of f.
func (fr *Frames) Render(ctx context.Context, f *snapshot.File, start, count int) error {
	d := fr.Display
	if d.Profiles && fr.Background == nil {
		return fmt.Errorf("postproc: frames need a background profile")
	}
	if d.PlotSponge && d.Profiles && fr.Sponge == nil {
		return fmt.Errorf("postproc: frames need a sponge profile")
	}
	data := make(map[string]*snapshot.Dataset, len(d.Tasks))
	for _, t := range d.Tasks {
		ds, err := f.Task(t)
		if err != nil {
			return err
		}
		data[t] = ds
	}
	for i := start; i < start+count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fr.frame(f, data, i); err != nil {
			return err
		}
	}
	return nil
}

func (fr *Frames) frame(f *snapshot.File, data map[string]*snapshot.Dataset, i int) error {
	d := fr.Display
	st, err := f.SimTime(i)
	if err != nil {
		return err
	}
	wn, err := f.WriteNumber(i)
	if err != nil {
		return err
	}
	l := fr.layout()
	w, h := l.size(d.Rows)
	fig := newFigure(w, h, d.DPI)
	suptitle(fig.dc, d.Title(st), d.FontSize)
	body := region(fig.dc, 0, 0, w, h-l.title)

	for n, task := range d.Tasks {
		row, col := n/d.Cols, n%d.Cols
		if d.Profiles {
			row, col = 0, 1
		}
		plane, err := data[task].Plane(snapshot.Named(snapshot.TimeDim), i, false)
		if err != nil {
			return err
		}
		g, err := newPlaneGrid(plane, d.XLim, d.ZLim)
		if err != nil {
			return fmt.Errorf("postproc: %s: %v", task, err)
		}
		cm := diverging(EvenLimit(g.values()))
		fp := fieldPlot(task, g, cm, d.XLim, d.ZLim)
		cb := colorBarPlot(cm, d.ColorbarTicks)
		setFontSize(fp, d.FontSize)
		setFontSize(cb, d.FontSize)
		c := l.cell(body, d.Rows, row, col)
		fp.Draw(draw.Crop(c, 0, -l.colorW, 0, 0))
		cb.Draw(draw.Crop(c, l.fieldW, 0, 0, 0))
	}

	if d.Profiles {
		bp, err := profilePlot("Background profile", "N (s^-1)", fr.Background.Values, fr.Background.Z, d.Buffer, d.ExtraBuffer)
		if err != nil {
			return err
		}
		panels := []*plot.Plot{bp}
		cols := []int{0}
		if d.PlotSponge {
			sp, err := profilePlot("Sponge layer", "ν (m^2/s)", fr.Sponge.Values, fr.Sponge.Z, d.Buffer, d.ExtraBuffer)
			if err != nil {
				return err
			}
			panels = append(panels, sp)
			cols = append(cols, 2)
		}
		for k, p := range panels {
			setFontSize(p, d.FontSize)
			p.Draw(l.cell(body, d.Rows, 0, cols[k]))
		}
	}
	return fig.save(filepath.Join(fr.Output, FrameName(wn)))
}
