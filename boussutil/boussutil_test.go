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

package boussutil

import (
	"bytes"
	"errors"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iwlab/bouss"
	"github.com/iwlab/bouss/physics"
	"github.com/iwlab/bouss/physics/forcing"
	"github.com/iwlab/bouss/postproc"
	"github.com/iwlab/bouss/snapshot"
	"github.com/iwlab/bouss/solver"
	"github.com/iwlab/bouss/switchboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := InitializeConfig()
	c, err := SwitchboardConfig(cfg.Viper)
	require.NoError(t, err)
	if diff := cmp.Diff(switchboard.DefaultConfig(), c); diff != "" {
		t.Errorf("default configuration (-want +have):\n%s", diff)
	}
}

func TestEnv(t *testing.T) {
	t.Setenv("BOUSS_GRID_NX", "64")
	t.Setenv("BOUSS_MODULES_BACKGROUNDPROFILE", "constant")
	t.Setenv("BOUSS_TASKS", "b,w")
	cfg := InitializeConfig()
	c, err := SwitchboardConfig(cfg.Viper)
	require.NoError(t, err)
	assert.Equal(t, 64, c.Grid.Nx)
	assert.Equal(t, "constant", c.Modules.BackgroundProfile)

	tasks, err := stringSlice(cfg.Viper, "tasks")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "w"}, tasks)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tank.toml")
	err := os.WriteFile(path, []byte(`Name = "tank"

[Grid]
Nx = 32

[Modules]
SpongeLayer = "uniform"
BackgroundProfile = ""

[Forcing]
Omega = 0.5
`), 0644)
	require.NoError(t, err)

	cfg := InitializeConfig()
	cfg.Set("config", path)
	require.NoError(t, cfg.setConfig())
	c, err := SwitchboardConfig(cfg.Viper)
	require.NoError(t, err)
	assert.Equal(t, "tank", c.Name)
	assert.Equal(t, 32, c.Grid.Nx)
	assert.Equal(t, 512, c.Grid.Nz)
	assert.Equal(t, 0.5, c.Forcing.Omega)
	assert.Equal(t, physics.Selection{
		BoundaryForcing:   "default",
		BackgroundProfile: "staircase",
		SpongeLayer:       "uniform",
	}, c.Modules)

	cfg = InitializeConfig()
	cfg.Set("config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, cfg.setConfig())
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  interface{}
		is   error
	}{
		{name: "grid", key: "Grid.Nx", val: 0},
		{name: "display", key: "Domain.LxDisplay", val: 1.0},
		{name: "spacing", key: "Snapshots.Dt", val: 0.0},
		{name: "module", key: "Modules.SpongeLayer", val: "foam", is: physics.ErrUnknownModule},
		{name: "regime", key: "Forcing.Omega", val: 2.0, is: forcing.ErrRegime},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := InitializeConfig()
			cfg.Set(test.key, test.val)
			_, err := Build(cfg.Viper)
			require.Error(t, err)
			if test.is != nil && !errors.Is(err, test.is) {
				t.Errorf("have %v, want %v", err, test.is)
			}
		})
	}
}

// execute runs the command line args with the given settings and returns
// its output.
func execute(t *testing.T, settings map[string]interface{}, args ...string) string {
	t.Helper()
	cfg := InitializeConfig()
	for k, v := range settings {
		cfg.Set(k, v)
	}
	var out bytes.Buffer
	cfg.Root.SetOut(&out)
	cfg.Root.SetErr(&out)
	cfg.Root.SetArgs(args)
	if err := cfg.Root.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

// small returns the settings of a small experiment whose snapshots are
// in dir.
func small(dir string) map[string]interface{} {
	return map[string]interface{}{
		"Grid.Nx":       24,
		"Grid.Nz":       16,
		"Snapshots.Dir": filepath.Join(dir, "snapshots"),
		"Plot.DPI":      40.0,
		"Plot.Scale":    1.0,
	}
}

func TestVersion(t *testing.T) {
	out := execute(t, nil, "version")
	assert.Equal(t, "Bouss v"+bouss.Version+"\n", out)
}

func TestParams(t *testing.T) {
	out := execute(t, small(t.TempDir()), "params")
	assert.Contains(t, out, "--Simulation Parameters--")
	assert.Contains(t, out, "n_x = 24")

	s := small(t.TempDir())
	s["toml"] = true
	out = execute(t, s, "params")
	assert.Contains(t, out, `Name = "bouss"`)

	s = small(t.TempDir())
	s["units"] = true
	out = execute(t, s, "params")
	assert.Contains(t, out, "kx            = 31.8")
	assert.Contains(t, out, "m^-1")

	path := filepath.Join(t.TempDir(), "LOG.txt")
	s = small(t.TempDir())
	s["append"] = path
	execute(t, s, "params")
	execute(t, s, "params")
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(b), "--Simulation Parameters--"))
}

func TestPrepare(t *testing.T) {
	dir := t.TempDir()
	s := small(dir)
	s["dir"] = dir
	execute(t, s, "prepare")
	execute(t, s, "prepare")

	f, err := os.Open(filepath.Join(dir, ProblemFile))
	require.NoError(t, err)
	defer f.Close()
	p, err := solver.DecodeProblem(f)
	require.NoError(t, err)
	assert.Equal(t, "bouss", p.Name)
	assert.Equal(t, solver.ModeOverwrite, p.Run.Mode)
	assert.Len(t, p.Snapshots, 3)

	_, err = os.Stat(filepath.Join(dir, ParamsFile))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(dir, LogName("bouss")))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(b), "--Simulation Parameters--"))

	snaps := filepath.Join(dir, "snapshots")
	bp, z, err := snapshot.ReadProfile(switchboard.ProfileFile(snaps, "bp_snaps"), switchboard.BackgroundTask)
	require.NoError(t, err)
	assert.Len(t, bp, 16)
	assert.Len(t, z, 16)
	sl, _, err := snapshot.ReadProfile(switchboard.ProfileFile(snaps, "sl_snaps"), switchboard.SpongeTask)
	require.NoError(t, err)
	assert.Len(t, sl, 16)
}

func TestPrepareNoSponge(t *testing.T) {
	dir := t.TempDir()
	s := small(dir)
	s["dir"] = dir
	s["Sponge.Use"] = false
	execute(t, s, "prepare")
	_, err := os.Stat(switchboard.ProfileFile(filepath.Join(dir, "snapshots"), "sl_snaps"))
	assert.True(t, os.IsNotExist(err), "sponge profile written: %v", err)
}

// writeSnapshots writes a snapshot file of the forced wave for the
// experiment in settings.
// writeSnapshots writes a snapshot file of the forcing fields to the
// snapshot directory of the experiment in dir.
func writeSnapshots(t *testing.T, dir string, settings map[string]interface{}, writes int) string {
	t.Helper()
	cfg := InitializeConfig()
	for k, v := range settings {
		cfg.Set(k, v)
	}
	sb, err := Build(cfg.Viper)
	require.NoError(t, err)
	x, z := sb.X(), sb.Z()
	tasks := []string{"b", "p", "u", "w"}
	snaps := under(dir, sb.Config().Snapshots.Dir)
	require.NoError(t, os.MkdirAll(snaps, 0755))
	path := filepath.Join(snaps, "snapshots_s1.nc")
	w, err := snapshot.Create(path, snapshot.Layout{X: x, Z: z, Tasks: tasks, FirstWrite: 1})
	require.NoError(t, err)
	bf := sb.Forcing()
	for i := 0; i < writes; i++ {
		st := float64(i+1) * bf.T
		fields := make(map[string][]float64)
		for _, xi := range x {
			for _, zj := range z {
				u, wv, b := bf.Fields(xi, zj, st)
				fields["u"] = append(fields["u"], u)
				fields["w"] = append(fields["w"], wv)
				fields["b"] = append(fields["b"], b)
				fields["p"] = append(fields["p"], u*wv)
			}
		}
		require.NoError(t, w.Append(st, fields))
	}
	require.NoError(t, w.Close())
	return path
}

func TestPlot(t *testing.T) {
	dir := t.TempDir()
	s := small(dir)
	s["dir"] = dir
	execute(t, s, "prepare")
	file := writeSnapshots(t, dir, s, 3)

	out := filepath.Join(dir, "frames")
	s["output"] = out
	s["workers"] = 2
	execute(t, s, "plot", "frames", file)
	for i := 1; i <= 3; i++ {
		_, err := os.Stat(filepath.Join(out, postproc.FrameName(i)))
		assert.NoError(t, err)
	}

	tasksOut := filepath.Join(dir, "tasks")
	s["output"] = tasksOut
	execute(t, s, "plot", "tasks", file)
	for _, name := range []string{"wu_000001.png", "w_000002.png", "u_000003.png"} {
		_, err := os.Stat(filepath.Join(tasksOut, name))
		assert.NoError(t, err, name)
	}

	histOut := filepath.Join(dir, "hist")
	s["output"] = histOut
	s["tasks"] = []string{"b", "w"}
	s["bins"] = 10
	execute(t, s, "plot", "hist", file)
	_, err := os.Stat(filepath.Join(histOut, "hist_000003.png"))
	assert.NoError(t, err)

	s["output"] = filepath.Join(dir, "profiles")
	assert.Contains(t, execute(t, s, "plot", "profiles"), "profiles.png")
	assert.Contains(t, execute(t, s, "plot", "forcing"), "forcing.png")

	gifPath := filepath.Join(dir, "wave.gif")
	execute(t, map[string]interface{}{"delay": 5}, "gif", gifPath, out)
	f, err := os.Open(gifPath)
	require.NoError(t, err)
	defer f.Close()
	g, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, g.Image, 3)
	assert.Equal(t, []int{5, 5, 5}, g.Delay)
}

func TestPlotRelativeSnapshots(t *testing.T) {
	dir := t.TempDir()
	s := small(dir)
	s["Snapshots.Dir"] = "snapshots"
	s["dir"] = dir
	execute(t, s, "prepare")
	_, err := os.Stat(filepath.Join(dir, switchboard.ProfileFile("snapshots", "bp_snaps")))
	require.NoError(t, err)
	file := writeSnapshots(t, dir, s, 1)

	out := filepath.Join(dir, "frames")
	s["output"] = out
	execute(t, s, "plot", "frames", file)
	_, err = os.Stat(filepath.Join(out, postproc.FrameName(1)))
	assert.NoError(t, err)

	delete(s, "dir")
	cfg := InitializeConfig()
	for k, v := range s {
		cfg.Set(k, v)
	}
	var buf bytes.Buffer
	cfg.Root.SetOut(&buf)
	cfg.Root.SetErr(&buf)
	cfg.Root.SetArgs([]string{"plot", "frames", file})
	assert.Error(t, cfg.Root.Execute(), "profiles are not in the working directory")
}

func TestPlotMissingFile(t *testing.T) {
	dir := t.TempDir()
	s := small(dir)
	s["dir"] = dir
	execute(t, s, "prepare")

	cfg := InitializeConfig()
	for k, v := range s {
		cfg.Set(k, v)
	}
	cfg.Set("output", filepath.Join(dir, "frames"))
	var out bytes.Buffer
	cfg.Root.SetOut(&out)
	cfg.Root.SetErr(&out)
	cfg.Root.SetArgs([]string{"plot", "frames", filepath.Join(dir, "missing.nc")})
	assert.Error(t, cfg.Root.Execute())
}
