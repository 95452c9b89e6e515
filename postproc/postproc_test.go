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
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/iwlab/bouss/snapshot"
	"github.com/iwlab/bouss/switchboard"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBlocks(t *testing.T) {
	for _, test := range []struct {
		n, workers int
		want       []Block
	}{
		{10, 3, []Block{{0, 4}, {4, 3}, {7, 3}}},
		{2, 4, []Block{{0, 1}, {1, 1}, {2, 0}, {2, 0}}},
		{5, 1, []Block{{0, 5}}},
		{0, 2, []Block{{0, 0}, {0, 0}}},
	} {
		t.Run(fmt.Sprintf("%d/%d", test.n, test.workers), func(t *testing.T) {
			have := Blocks(test.n, test.workers)
			if len(have) != len(test.want) {
				t.Fatalf("have %v, want %v", have, test.want)
			}
			for i := range have {
				if have[i] != test.want[i] {
					t.Errorf("have %v, want %v", have, test.want)
				}
			}
		})
	}
}

func TestSortFrames(t *testing.T) {
	var names []string
	for i := 1; i <= 10; i++ {
		names = append(names, FrameName(i))
	}
	r := rand.New(rand.NewSource(1))
	r.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	SortFrames(names)
	prev := 0
	for _, n := range names {
		var w int
		if _, err := fmt.Sscanf(n, "write_%06d.png", &w); err != nil {
			t.Fatal(err)
		}
		if w <= prev {
			t.Fatalf("frames out of order: %v", names)
		}
		prev = w
	}

	unpadded := []string{"f10.png", "f9.png", "f1.png"}
	SortFrames(unpadded)
	if unpadded[0] != "f1.png" || unpadded[2] != "f10.png" {
		t.Errorf("unpadded: %v", unpadded)
	}
}

func TestExpLabel(t *testing.T) {
	for v, want := range map[float64]string{
		700:   "700",
		25:    "25",
		5:     "5.0",
		0.3:   "0.3",
		0.05:  "5.0·10^-2",
		1234:  "1.2·10^3",
		-2e-4: "-2.0·10^-4",
	} {
		if have := ExpLabel(v); have != want {
			t.Errorf("%g: have %q, want %q", v, have, want)
		}
	}
}

func TestEvenLimit(t *testing.T) {
	if l := EvenLimit([]float64{-3, 2}, []float64{1}); l != 3 {
		t.Errorf("limit %g", l)
	}
	if l := EvenLimit([]float64{0, 0}); l != 1 {
		t.Errorf("zero field limit %g", l)
	}
}

func TestHistogramBars(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = float64(99 - i)
	}
	b, err := HistogramBars(data, 10)
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range b.Counts {
		if c != 10 {
			t.Errorf("bin %d: %g", i, c)
		}
	}
	if math.Abs(b.Width-0.7*9.9) > 1e-12 {
		t.Errorf("width %g", b.Width)
	}
	if math.Abs(b.Centers[0]-4.95) > 1e-12 {
		t.Errorf("first center %g", b.Centers[0])
	}

	c, err := HistogramBars([]float64{2, 2, 2}, 100)
	if err != nil {
		t.Fatal(err)
	}
	var sum float64
	for _, v := range c.Counts {
		sum += v
	}
	if sum != 3 {
		t.Errorf("constant data: %g counted", sum)
	}
	if c.Centers[0] > 2 || c.Centers[99] < 2 {
		t.Errorf("constant data bins [%g, %g]", c.Centers[0], c.Centers[99])
	}

	if _, err := HistogramBars(nil, 10); err == nil {
		t.Error("want an error for no data")
	}
	if _, err := HistogramBars([]float64{1, math.NaN()}, 10); err == nil {
		t.Error("want an error for NaN")
	}
}

func TestProfileLimits(t *testing.T) {
	z := []float64{-0.5, -0.25, 0}
	x, y := profileLimits([]float64{1, 1, 1}, z, 0.04, 0.5)
	if x != [2]float64{0.5, 1.5} {
		t.Errorf("constant profile x limits %v", x)
	}
	if y != [2]float64{-0.5, 0.04} {
		t.Errorf("y limits %v", y)
	}
	x, _ = profileLimits([]float64{1, 2, 3}, z, 0.04, 0.5)
	if x != [2]float64{0.96, 3.04} {
		t.Errorf("x limits %v", x)
	}
}

// testRun builds a small switchboard and writes its profile snapshots and
// a state snapshot file with writes forced by the boundary forcing.
func testRun(t *testing.T, writes int) (*switchboard.Switchboard, string) {
	t.Helper()
	dir := t.TempDir()
	c := switchboard.DefaultConfig()
	c.Grid.Nx, c.Grid.Nz = 24, 16
	c.Snapshots.Dir = dir
	c.Plot.DPI = 40
	c.Plot.Scale = 1
	sb, err := switchboard.Build(c)
	if err != nil {
		t.Fatal(err)
	}
	x, z := sb.X(), sb.Z()
	d := sb.Display()
	for _, p := range []struct {
		path, task string
		v          []float64
	}{
		{d.BackgroundFile, d.BackgroundTask, sb.Background()},
		{d.SpongeFile, d.SpongeTask, sb.Sponge()},
	} {
		if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := snapshot.WriteProfile(p.path, x, z, p.task, p.v); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(dir, "snapshots_s1.nc")
	tasks := []string{"b", "p", "u", "w"}
	w, err := snapshot.Create(path, snapshot.Layout{X: x, Z: z, Tasks: tasks, FirstWrite: 1})
	if err != nil {
		t.Fatal(err)
	}
	bf := sb.Forcing()
	for i := 0; i < writes; i++ {
		st := float64(i+1) * bf.T
		fields := make(map[string][]float64)
		for _, task := range tasks {
			fields[task] = make([]float64, 0, len(x)*len(z))
		}
		for _, xi := range x {
			for _, zj := range z {
				u, wv, b := bf.Fields(xi, zj, st)
				fields["u"] = append(fields["u"], u)
				fields["w"] = append(fields["w"], wv)
				fields["b"] = append(fields["b"], b)
				fields["p"] = append(fields["p"], u*wv)
			}
		}
		if err := w.Append(st, fields); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return sb, path
}

func exists(t *testing.T, path string) {
	t.Helper()
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Errorf("%s is empty", path)
	}
}

func TestVisitWrites(t *testing.T) {
	_, path := testRun(t, 5)
	out := filepath.Join(t.TempDir(), "frames")
	var mu sync.Mutex
	seen := make(map[int]int)
	err := VisitWrites(context.Background(), []string{path}, out, 3, func(_ context.Context, f *snapshot.File, start, count int) error {
		mu.Lock()
		defer mu.Unlock()
		for i := start; i < start+count; i++ {
			seen[i]++
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 5 {
		t.Errorf("visited %d writes", len(seen))
	}
	for i, n := range seen {
		if n != 1 {
			t.Errorf("write %d visited %d times", i, n)
		}
	}
	if fi, err := os.Stat(out); err != nil || !fi.IsDir() {
		t.Errorf("output directory: %v", err)
	}

	fail := errors.New("disk full")
	err = VisitWrites(context.Background(), []string{path}, out, 2, func(context.Context, *snapshot.File, int, int) error {
		return fail
	})
	if !errors.Is(err, fail) {
		t.Errorf("have %v, want %v", err, fail)
	}

	err = VisitWrites(context.Background(), []string{filepath.Join(out, "missing.nc")}, out, 2, func(context.Context, *snapshot.File, int, int) error {
		return nil
	})
	if err == nil {
		t.Error("want an error for a missing snapshot file")
	}
}

func TestFrames(t *testing.T) {
	for _, all := range []bool{false, true} {
		t.Run(fmt.Sprintf("all=%v", all), func(t *testing.T) {
			sb, path := testRun(t, 2)
			d := sb.Display()
			if all {
				d.Tasks, d.Rows, d.Cols, d.Profiles = []string{"b", "p", "u", "w"}, 2, 2, false
			}
			out := t.TempDir()
			fr, err := NewFrames(d, out)
			if err != nil {
				t.Fatal(err)
			}
			if err := VisitWrites(context.Background(), []string{path}, out, 2, fr.Render); err != nil {
				t.Fatal(err)
			}
			exists(t, filepath.Join(out, "write_000001.png"))
			exists(t, filepath.Join(out, "write_000002.png"))
		})
	}
}

func TestFramesMissingProfile(t *testing.T) {
	sb, _ := testRun(t, 1)
	d := sb.Display()
	d.BackgroundFile = filepath.Join(t.TempDir(), "none.nc")
	if _, err := NewFrames(d, t.TempDir()); err == nil {
		t.Error("want an error for a missing background profile")
	}
}

func TestTasksAndHistograms(t *testing.T) {
	sb, path := testRun(t, 2)
	out := t.TempDir()
	d := sb.Display()
	tr := &Tasks{Tasks: []string{"u", "w"}, Contour: "b", Levels: 8, Title: d.Title, Output: out, DPI: 40}
	if err := VisitWrites(context.Background(), []string{path}, out, 1, tr.Render); err != nil {
		t.Fatal(err)
	}
	for _, n := range []string{TasksName(2), TaskName("u", 2), TaskName("w", 1)} {
		exists(t, filepath.Join(out, n))
	}

	hr := &Histograms{Tasks: []string{"b", "w"}, Title: d.Title, Output: out, DPI: 40}
	if err := VisitWrites(context.Background(), []string{path}, out, 2, hr.Render); err != nil {
		t.Fatal(err)
	}
	exists(t, filepath.Join(out, HistName(1)))
	exists(t, filepath.Join(out, HistName(2)))

	bad := &Tasks{Tasks: []string{"v"}, Output: out}
	err := VisitWrites(context.Background(), []string{path}, out, 1, bad.Render)
	if !errors.Is(err, snapshot.ErrUnknownTask) {
		t.Errorf("unknown task: %v", err)
	}
}

func TestTaskPanel(t *testing.T) {
	_, path := testRun(t, 2)
	f, err := snapshot.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	w, err := f.Task("w")
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.Task("b")
	if err != nil {
		t.Fatal(err)
	}
	tp, err := newTaskPanel("w", w, 1, b, contourLevels(EvenLimit(b.Data), 4), 1)
	if err != nil {
		t.Fatal(err)
	}
	if tp.contour == nil {
		t.Error("no contours")
	}
	c, _ := tp.grid.Dims()
	if x := tp.grid.X(0); x != tp.xlim[0] || tp.grid.X(c-1) != tp.xlim[1] {
		t.Errorf("grid spans [%g, %g], want %v", x, tp.grid.X(c-1), tp.xlim)
	}
	if x := f.X(); c != len(x)-len(x)/2 {
		t.Errorf("%d grid columns for %d points", c, len(x))
	}

	combined, _ := tp.plots("w (m/s)", 10)
	single, _ := tp.plots("w (m/s), t = 1", 10)
	if combined.Title.Text == single.Title.Text {
		t.Error("both images have the same title")
	}
	if combined.X.Min != single.X.Min || combined.X.Max != single.X.Max {
		t.Errorf("x limits differ: %g..%g and %g..%g", combined.X.Min, combined.X.Max, single.X.Min, single.X.Max)
	}

	plain, err := newTaskPanel("w", w, 1, nil, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if plain.contour != nil {
		t.Error("contours without a contour task")
	}
}

func TestProfileAndForcingPlots(t *testing.T) {
	sb, _ := testRun(t, 1)
	dir := t.TempDir()
	if err := ProfilePlot(sb, filepath.Join(dir, "profiles.png")); err != nil {
		t.Fatal(err)
	}
	exists(t, filepath.Join(dir, "profiles.png"))
	if err := ForcingPlot(sb, filepath.Join(dir, "forcing.png"), 50); err != nil {
		t.Fatal(err)
	}
	exists(t, filepath.Join(dir, "forcing.png"))
}

func TestAssembleGIF(t *testing.T) {
	dir := t.TempDir()
	order := []int{7, 2, 10, 1, 5, 3, 9, 4, 8, 6}
	for _, i := range order {
		// Earlier frames are wider, so the decoded widths give the order.
		img := image.NewRGBA(image.Rect(0, 0, 11-i, 4))
		for x := 0; x < 11-i; x++ {
			for y := 0; y < 4; y++ {
				img.Set(x, y, color.White)
			}
		}
		f, err := os.Create(filepath.Join(dir, FrameName(i)))
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644); err != nil {
		t.Fatal(err)
	}

	var b bytes.Buffer
	if err := AssembleGIF(&b, dir, 10); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 10 {
		t.Fatalf("%d frames", len(g.Image))
	}
	for k, img := range g.Image {
		if w := img.Bounds().Dx(); w != 10-k {
			t.Errorf("frame %d has width %d, want %d", k, w, 10-k)
		}
	}
	if g.LoopCount != 0 {
		t.Errorf("loop count %d", g.LoopCount)
	}

	if err := AssembleGIF(&b, t.TempDir(), 10); err == nil {
		t.Error("want an error for an empty directory")
	}
}
