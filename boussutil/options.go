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
	"runtime"

	"github.com/iwlab/bouss/postproc"
	"github.com/iwlab/bouss/switchboard"
	"github.com/spf13/pflag"
)

// option is a configuration option together with the flag sets it is
// available on.
type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

// options returns the configuration options available to Bouss. Experiment
// settings default to the reference experiment and are available to every
// command.
func (cfg *Cfg) options() []option {
	def := switchboard.DefaultConfig()
	all := []*pflag.FlagSet{cfg.Root.PersistentFlags()}
	render := []*pflag.FlagSet{cfg.framesCmd.Flags(), cfg.tasksCmd.Flags(), cfg.histCmd.Flags()}

	return []option{
		{
			name: "config",
			usage: `
              config specifies the configuration file location. TOML, YAML and
              JSON files are recognized by their extension.`,
			defaultVal: "",
			flagsets:   all,
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to a file that log messages are appended to in
              addition to the terminal. It can include environment variables.`,
			defaultVal: "",
			flagsets:   all,
		},
		{
			name: "Name",
			usage: `
              Name identifies the experiment in frame titles and file names.`,
			defaultVal: def.Name,
			flagsets:   all,
		},
		{
			name: "Grid.Nx",
			usage: `
              Grid.Nx is the number of horizontal (Fourier) grid points.`,
			defaultVal: def.Grid.Nx,
			flagsets:   all,
		},
		{
			name: "Grid.Nz",
			usage: `
              Grid.Nz is the number of vertical (Chebyshev) grid points.`,
			defaultVal: def.Grid.Nz,
			flagsets:   all,
		},
		{
			name: "Grid.Dealias",
			usage: `
              Grid.Dealias is the dealiasing factor of both bases.`,
			defaultVal: def.Grid.Dealias,
			flagsets:   all,
		},
		{
			name: "Stop.NPeriods",
			usage: `
              Stop.NPeriods is the simulation time limit in forcing periods. It is
              used unless Stop.UseSimTime is true.`,
			defaultVal: def.Stop.NPeriods,
			flagsets:   all,
		},
		{
			name: "Stop.WallTime",
			usage: `
              Stop.WallTime is the wall clock limit of a run in minutes.`,
			defaultVal: def.Stop.WallTime,
			flagsets:   all,
		},
		{
			name: "Stop.Iteration",
			usage: `
              Stop.Iteration is the iteration limit of a run. 0 means no limit.`,
			defaultVal: def.Stop.Iteration,
			flagsets:   all,
		},
		{
			name: "Stop.SimTime",
			usage: `
              Stop.SimTime is the simulation time limit in seconds when
              Stop.UseSimTime is true.`,
			defaultVal: def.Stop.SimTime,
			flagsets:   all,
		},
		{
			name: "Stop.UseSimTime",
			usage: `
              Stop.UseSimTime selects Stop.SimTime instead of Stop.NPeriods as the
              simulation time limit. Frame titles then show t instead of t/T.`,
			defaultVal: def.Stop.UseSimTime,
			flagsets:   all,
		},
		{
			name: "Timestep.Dt",
			usage: `
              Timestep.Dt is the initial time step in seconds.`,
			defaultVal: def.Timestep.Dt,
			flagsets:   all,
		},
		{
			name: "Timestep.Adaptive",
			usage: `
              Timestep.Adaptive turns on the CFL-limited adaptive time step.`,
			defaultVal: def.Timestep.Adaptive,
			flagsets:   all,
		},
		{
			name: "Restart.AddTime",
			usage: `
              Restart.AddTime is the simulation time in seconds a restarted run
              adds to the stopping time.`,
			defaultVal: def.Restart.AddTime,
			flagsets:   all,
		},
		{
			name: "Restart.File",
			usage: `
              Restart.File is the checkpoint a restarted run continues from.`,
			defaultVal: def.Restart.File,
			flagsets:   all,
		},
		{
			name: "Domain.Lx",
			usage: `
              Domain.Lx is the horizontal extent of the simulated domain [m].`,
			defaultVal: def.Domain.Lx,
			flagsets:   all,
		},
		{
			name: "Domain.Lz",
			usage: `
              Domain.Lz is the vertical extent of the simulated domain [m].`,
			defaultVal: def.Domain.Lz,
			flagsets:   all,
		},
		{
			name: "Domain.Zt",
			usage: `
              Domain.Zt is the height of the top of the domain [m].`,
			defaultVal: def.Domain.Zt,
			flagsets:   all,
		},
		{
			name: "Domain.LxDisplay",
			usage: `
              Domain.LxDisplay is the horizontal extent of the displayed area [m].`,
			defaultVal: def.Domain.LxDisplay,
			flagsets:   all,
		},
		{
			name: "Domain.LzDisplay",
			usage: `
              Domain.LzDisplay is the vertical extent of the displayed area [m].`,
			defaultVal: def.Domain.LzDisplay,
			flagsets:   all,
		},
		{
			name: "Domain.BufferX",
			usage: `
              Domain.BufferX is the width of simulated domain to the left of the
              displayed area [m].`,
			defaultVal: def.Domain.BufferX,
			flagsets:   all,
		},
		{
			name: "Domain.BufferZ",
			usage: `
              Domain.BufferZ is the depth of simulated domain above the displayed
              area [m].`,
			defaultVal: def.Domain.BufferZ,
			flagsets:   all,
		},
		{
			name: "Domain.X0",
			usage: `
              Domain.X0 is the left edge of the displayed area [m].`,
			defaultVal: def.Domain.X0,
			flagsets:   all,
		},
		{
			name: "Domain.Z0",
			usage: `
              Domain.Z0 is the top of the displayed area [m].`,
			defaultVal: def.Domain.Z0,
			flagsets:   all,
		},
		{
			name: "Physics.Nu",
			usage: `
              Physics.Nu is the kinematic viscosity [m²/s].`,
			defaultVal: def.Physics.Nu,
			flagsets:   all,
		},
		{
			name: "Physics.Kappa",
			usage: `
              Physics.Kappa is the thermal diffusivity [m²/s].`,
			defaultVal: def.Physics.Kappa,
			flagsets:   all,
		},
		{
			name: "Physics.Rayleigh",
			usage: `
              Physics.Rayleigh is the Rayleigh number.`,
			defaultVal: def.Physics.Rayleigh,
			flagsets:   all,
		},
		{
			name: "Modules.BoundaryForcing",
			usage: `
              Modules.BoundaryForcing selects the boundary forcing. The only
              option is "default" (alias "bf_default").`,
			defaultVal: def.Modules.BoundaryForcing,
			flagsets:   all,
		},
		{
			name: "Modules.BackgroundProfile",
			usage: `
              Modules.BackgroundProfile selects the background stratification:
              "constant" (alias "bp_N_const") or "staircase" (alias "bp_default").`,
			defaultVal: def.Modules.BackgroundProfile,
			flagsets:   all,
		},
		{
			name: "Modules.SpongeLayer",
			usage: `
              Modules.SpongeLayer selects the sponge layer: "uniform" (alias
              "sl_uniform") or "ramped" (alias "sl_default").`,
			defaultVal: def.Modules.SpongeLayer,
			flagsets:   all,
		},
		{
			name: "Forcing.N0",
			usage: `
              Forcing.N0 is the characteristic buoyancy frequency [rad/s].`,
			defaultVal: def.Forcing.N0,
			flagsets:   all,
		},
		{
			name: "Forcing.K",
			usage: `
              Forcing.K is the total wavenumber of the forced wave [1/m].`,
			defaultVal: def.Forcing.K,
			flagsets:   all,
		},
		{
			name: "Forcing.Omega",
			usage: `
              Forcing.Omega is the forcing frequency [rad/s]. It must lie
              between 0 and Forcing.N0.`,
			defaultVal: def.Forcing.Omega,
			flagsets:   all,
		},
		{
			name: "Forcing.A",
			usage: `
              Forcing.A is the forcing amplitude [m].`,
			defaultVal: def.Forcing.A,
			flagsets:   all,
		},
		{
			name: "Forcing.NT",
			usage: `
              Forcing.NT is the number of forcing periods the start-up ramp
              takes.`,
			defaultVal: def.Forcing.NT,
			flagsets:   all,
		},
		{
			name: "Forcing.Slope",
			usage: `
              Forcing.Slope is the steepness of the forcing window edges.`,
			defaultVal: def.Forcing.Slope,
			flagsets:   all,
		},
		{
			name: "Forcing.WindowLambdas",
			usage: `
              Forcing.WindowLambdas is the width of the forcing window in
              horizontal wavelengths.`,
			defaultVal: def.Forcing.WindowLambdas,
			flagsets:   all,
		},
		{
			name: "Forcing.G",
			usage: `
              Forcing.G is the gravitational acceleration [m/s²].`,
			defaultVal: def.Forcing.G,
			flagsets:   all,
		},
		{
			name: "Background.Interfaces",
			usage: `
              Background.Interfaces is the number of interfaces of the staircase
              stratification. 0 gives a single mixed layer.`,
			defaultVal: def.Background.Interfaces,
			flagsets:   all,
		},
		{
			name: "Background.MixedBottom",
			usage: `
              Background.MixedBottom is the bottom of the mixed-layer band [m].`,
			defaultVal: def.Background.MixedBottom,
			flagsets:   all,
		},
		{
			name: "Background.MixedTop",
			usage: `
              Background.MixedTop is the top of the mixed-layer band [m].`,
			defaultVal: def.Background.MixedTop,
			flagsets:   all,
		},
		{
			name: "Background.Slope",
			usage: `
              Background.Slope is the steepness of the staircase transitions.`,
			defaultVal: def.Background.Slope,
			flagsets:   all,
		},
		{
			name: "Background.NUpper",
			usage: `
              Background.NUpper is the buoyancy frequency above the band [rad/s].`,
			defaultVal: def.Background.NUpper,
			flagsets:   all,
		},
		{
			name: "Background.NLower",
			usage: `
              Background.NLower is the buoyancy frequency below the band [rad/s].`,
			defaultVal: def.Background.NLower,
			flagsets:   all,
		},
		{
			name: "Background.BumpWidth",
			usage: `
              Background.BumpWidth is the width of each interface bump [m].`,
			defaultVal: def.Background.BumpWidth,
			flagsets:   all,
		},
		{
			name: "Sponge.Use",
			usage: `
              Sponge.Use specifies whether the sponge profile is written to
              snapshots and drawn in frames.`,
			defaultVal: def.Sponge.Use,
			flagsets:   all,
		},
		{
			name: "Sponge.Thickness",
			usage: `
              Sponge.Thickness is the thickness of the sponge band at the bottom
              of the domain [m].`,
			defaultVal: def.Sponge.Thickness,
			flagsets:   all,
		},
		{
			name: "Sponge.Slope",
			usage: `
              Sponge.Slope is the steepness of the sponge ramp.`,
			defaultVal: def.Sponge.Slope,
			flagsets:   all,
		},
		{
			name: "Sponge.MaxCoeff",
			usage: `
              Sponge.MaxCoeff is the damping coefficient reached at the bottom of
              the domain.`,
			defaultVal: def.Sponge.MaxCoeff,
			flagsets:   all,
		},
		{
			name: "Plot.AllVariables",
			usage: `
              Plot.AllVariables draws b, p, u and w in every frame instead of w
              next to the profiles.`,
			defaultVal: def.Plot.AllVariables,
			flagsets:   all,
		},
		{
			name: "Plot.Sponge",
			usage: `
              Plot.Sponge adds the sponge profile panel to every frame when
              Sponge.Use is true.`,
			defaultVal: def.Plot.Sponge,
			flagsets:   all,
		},
		{
			name: "Plot.Buffer",
			usage: `
              Plot.Buffer pads the profile panels.`,
			defaultVal: def.Plot.Buffer,
			flagsets:   all,
		},
		{
			name: "Plot.ExtraBuffer",
			usage: `
              Plot.ExtraBuffer pads a profile panel whose profile is constant.`,
			defaultVal: def.Plot.ExtraBuffer,
			flagsets:   all,
		},
		{
			name: "Plot.ProfileRatio",
			usage: `
              Plot.ProfileRatio is the height-to-width ratio of the profile
              panels.`,
			defaultVal: def.Plot.ProfileRatio,
			flagsets:   all,
		},
		{
			name: "Plot.ColorbarTicks",
			usage: `
              Plot.ColorbarTicks is the number of colour bar ticks.`,
			defaultVal: def.Plot.ColorbarTicks,
			flagsets:   all,
		},
		{
			name: "Plot.FontSize",
			usage: `
              Plot.FontSize is the font size of plot text in points.`,
			defaultVal: def.Plot.FontSize,
			flagsets:   all,
		},
		{
			name: "Plot.Scale",
			usage: `
              Plot.Scale is the height of a field panel in inches.`,
			defaultVal: def.Plot.Scale,
			flagsets:   all,
		},
		{
			name: "Plot.DPI",
			usage: `
              Plot.DPI is the resolution of saved images.`,
			defaultVal: def.Plot.DPI,
			flagsets:   all,
		},
		{
			name: "Snapshots.Dir",
			usage: `
              Snapshots.Dir is the directory the solver writes snapshots to. It
              can include environment variables.`,
			defaultVal: def.Snapshots.Dir,
			flagsets:   all,
		},
		{
			name: "Snapshots.Dt",
			usage: `
              Snapshots.Dt is the simulation time between snapshot writes [s].`,
			defaultVal: def.Snapshots.Dt,
			flagsets:   all,
		},
		{
			name: "Snapshots.MaxWrites",
			usage: `
              Snapshots.MaxWrites is the number of writes per snapshot file.`,
			defaultVal: def.Snapshots.MaxWrites,
			flagsets:   all,
		},
		{
			name: "Snapshots.Background",
			usage: `
              Snapshots.Background specifies whether the background profile is
              written to its own snapshot files.`,
			defaultVal: def.Snapshots.Background,
			flagsets:   all,
		},
		{
			name: "Snapshots.BackgroundDir",
			usage: `
              Snapshots.BackgroundDir is the subdirectory of Snapshots.Dir holding
              the background profile snapshots.`,
			defaultVal: def.Snapshots.BackgroundDir,
			flagsets:   all,
		},
		{
			name: "Snapshots.SpongeDir",
			usage: `
              Snapshots.SpongeDir is the subdirectory of Snapshots.Dir holding
              the sponge profile snapshots.`,
			defaultVal: def.Snapshots.SpongeDir,
			flagsets:   all,
		},
		{
			name: "CFL.Cadence",
			usage: `
              CFL.Cadence is the number of iterations between time step updates.`,
			defaultVal: def.CFL.Cadence,
			flagsets:   all,
		},
		{
			name: "CFL.Safety",
			usage: `
              CFL.Safety is the CFL safety factor.`,
			defaultVal: def.CFL.Safety,
			flagsets:   all,
		},
		{
			name: "CFL.MaxChange",
			usage: `
              CFL.MaxChange is the largest factor the time step may grow by.`,
			defaultVal: def.CFL.MaxChange,
			flagsets:   all,
		},
		{
			name: "CFL.MinChange",
			usage: `
              CFL.MinChange is the smallest factor the time step may shrink to.`,
			defaultVal: def.CFL.MinChange,
			flagsets:   all,
		},
		{
			name: "CFL.MaxDt",
			usage: `
              CFL.MaxDt is the largest time step allowed [s].`,
			defaultVal: def.CFL.MaxDt,
			flagsets:   all,
		},
		{
			name: "CFL.Threshold",
			usage: `
              CFL.Threshold is the relative change below which the time step is
              left alone.`,
			defaultVal: def.CFL.Threshold,
			flagsets:   all,
		},
		{
			name: "Flow.Cadence",
			usage: `
              Flow.Cadence is the number of iterations between evaluations of the
              monitored flow property.`,
			defaultVal: def.Flow.Cadence,
			flagsets:   all,
		},
		{
			name: "Flow.Property",
			usage: `
              Flow.Property is the expression of the monitored flow property.`,
			defaultVal: def.Flow.Property,
			flagsets:   all,
		},
		{
			name: "Flow.Name",
			usage: `
              Flow.Name is the name the monitored flow property is logged under.`,
			defaultVal: def.Flow.Name,
			flagsets:   all,
		},
		{
			name: "append",
			usage: `
              append is a file the parameter summary is also appended to.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.paramsCmd.Flags()},
		},
		{
			name: "toml",
			usage: `
              toml prints the resolved parameters in TOML format instead of the
              summary.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{cfg.paramsCmd.Flags()},
		},
		{
			name: "units",
			usage: `
              units prints the dimensional parameters with their units instead
              of the summary.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{cfg.paramsCmd.Flags()},
		},
		{
			name: "dir",
			usage: `
              dir is the experiment directory. prepare writes the problem
              description, parameter files and experiment log to it. Relative
              snapshot directories are taken relative to it, both when prepare
              writes the profile snapshots and when plot frames reads them.`,
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{cfg.prepareCmd.Flags(), cfg.framesCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output is the directory images are saved in.`,
			shorthand:  "o",
			defaultVal: "frames",
			flagsets:   []*pflag.FlagSet{cfg.plotCmd.PersistentFlags()},
		},
		{
			name: "workers",
			usage: `
              workers is the number of writes rendered at once.`,
			shorthand:  "w",
			defaultVal: runtime.GOMAXPROCS(0),
			flagsets:   render,
		},
		{
			name: "tasks",
			usage: `
              tasks are the snapshot tasks drawn.`,
			defaultVal: []string{"w", "u"},
			flagsets:   []*pflag.FlagSet{cfg.tasksCmd.Flags(), cfg.histCmd.Flags()},
		},
		{
			name: "contour",
			usage: `
              contour is the task drawn as contours over every panel. Leave it
              empty for no contours.`,
			defaultVal: "b",
			flagsets:   []*pflag.FlagSet{cfg.tasksCmd.Flags()},
		},
		{
			name: "levels",
			usage: `
              levels is the number of contour levels.`,
			defaultVal: 20,
			flagsets:   []*pflag.FlagSet{cfg.tasksCmd.Flags()},
		},
		{
			name: "bins",
			usage: `
              bins is the number of histogram bins.`,
			defaultVal: postproc.DefaultBins,
			flagsets:   []*pflag.FlagSet{cfg.histCmd.Flags()},
		},
		{
			name: "points",
			usage: `
              points is the number of points the forcing window and ramp are
              evaluated at.`,
			defaultVal: 200,
			flagsets:   []*pflag.FlagSet{cfg.forcingCmd.Flags()},
		},
		{
			name: "delay",
			usage: `
              delay is the time between gif frames in hundredths of a second.`,
			defaultVal: 10,
			flagsets:   []*pflag.FlagSet{cfg.gifCmd.Flags()},
		},
	}
}
