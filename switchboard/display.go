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
	"path/filepath"

	"github.com/iwlab/bouss/domain"
	"github.com/iwlab/bouss/physics/forcing"
	"gonum.org/v1/gonum/floats"
)

// Display holds the settings the frame renderer needs.
type Display struct {
	Name string

	// XLim and ZLim are the display limits.
	XLim, ZLim [2]float64

	// Aspect is the width-to-height ratio of a field panel.
	Aspect float64

	// Tasks are the fields drawn in each frame, laid out on a Rows×Cols
	// grid. When Profiles is set the first column holds the background
	// profile (and the third the sponge profile when PlotSponge is set)
	// and the field goes in the second column.
	Tasks      []string
	Rows, Cols int
	Profiles   bool
	PlotSponge bool

	// TimeFactor divides the simulation time in frame titles; it is 1 or
	// the forcing period.
	TimeFactor float64
	TimeLabel  string

	Buffer, ExtraBuffer float64
	ProfileRatio        float64
	ConstantBackground  bool

	ColorbarTicks int
	FontSize      float64
	Scale         float64
	DPI           float64

	// BackgroundFile and SpongeFile hold the profile snapshots.
	BackgroundFile, SpongeFile string
	BackgroundTask, SpongeTask string
}

func newDisplay(cfg Config, d *domain.Domain, bf *forcing.Forcing, bp []float64) Display {
	p := cfg.Plot
	o := Display{
		Name:          cfg.Name,
		XLim:          [2]float64{d.X0, d.XF},
		ZLim:          [2]float64{d.ZB, d.Zt},
		Aspect:        d.Aspect(),
		PlotSponge:    p.Sponge && cfg.Sponge.Use,
		Buffer:        p.Buffer,
		ExtraBuffer:   p.ExtraBuffer,
		ProfileRatio:  p.ProfileRatio,
		ColorbarTicks: p.ColorbarTicks,
		FontSize:      p.FontSize,
		Scale:         p.Scale,
		DPI:           p.DPI,

		BackgroundFile: ProfileFile(cfg.Snapshots.Dir, cfg.Snapshots.BackgroundDir),
		SpongeFile:     ProfileFile(cfg.Snapshots.Dir, cfg.Snapshots.SpongeDir),
		BackgroundTask: BackgroundTask,
		SpongeTask:     SpongeTask,
	}
	if len(bp) > 0 {
		o.ConstantBackground = floats.Max(bp) == floats.Min(bp)
	}
	switch {
	case p.AllVariables:
		o.Tasks = []string{"b", "p", "u", "w"}
		o.Rows, o.Cols = 2, 2
	case o.PlotSponge:
		o.Tasks = []string{"w"}
		o.Rows, o.Cols = 1, 3
		o.Profiles = true
	default:
		o.Tasks = []string{"w"}
		o.Rows, o.Cols = 1, 2
		o.Profiles = true
	}
	if cfg.Stop.UseSimTime {
		o.TimeFactor, o.TimeLabel = 1, "t"
	} else {
		o.TimeFactor, o.TimeLabel = bf.T, "t/T"
	}
	return o
}

// Title returns the frame title for a write at simTime.
func (d Display) Title(simTime float64) string {
	return fmt.Sprintf("%s, %s = %2.3f", d.Name, d.TimeLabel, simTime/d.TimeFactor)
}

// The profile snapshot tasks.
const (
	BackgroundTask = "bp"
	SpongeTask     = "sl"
)

// ProfileFile returns the path of the first profile snapshot file in
// subdir of the snapshot directory.
func ProfileFile(dir, subdir string) string {
	return filepath.Join(dir, subdir, subdir+"_s1.nc")
}
