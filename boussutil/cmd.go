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

// Package boussutil holds the command-line interface of Bouss: the
// configuration options, their binding to configuration files, environment
// variables and flags, and the commands built on them.
package boussutil

import (
	"fmt"
	"strings"

	"github.com/iwlab/bouss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Cfg holds configuration information and the command tree that reads it.
type Cfg struct {
	*viper.Viper

	// Root is the main command.
	Root *cobra.Command

	versionCmd, paramsCmd, prepareCmd *cobra.Command
	plotCmd, framesCmd, tasksCmd      *cobra.Command
	histCmd, profilesCmd, forcingCmd  *cobra.Command
	gifCmd                            *cobra.Command
}

// InitializeConfig returns a new configuration with every option bound to
// its command-line flag and to the BOUSS_ environment variables.
func InitializeConfig() *Cfg {
	cfg := &Cfg{Viper: viper.New()}

	cfg.Root = &cobra.Command{
		Use:   "bouss",
		Short: "A configurator for Boussinesq internal-wave experiments.",
		Long: `Bouss sets up two-dimensional Boussinesq internal-wave experiments for a
spectral solver and renders the snapshots the solver writes.
Use the subcommands specified below to access its functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'BOUSS_var' where 'var' is the
name of the variable to be set, with '.' replaced by '_' (for example
BOUSS_GRID_NX). Refer to https://github.com/spf13/viper for additional
configuration information.`,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return cfg.setConfig() },
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	cfg.versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  "version prints the version number of this version of Bouss.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("Bouss v%s\n", bouss.Version)
		},
		DisableAutoGenTag: true,
	}

	cfg.paramsCmd = &cobra.Command{
		Use:   "params",
		Short: "Print the resolved parameters.",
		Long: `params resolves the experiment and prints a summary of its parameters, the
full set of resolved parameters in TOML format if --toml is given, or the
dimensional parameters with their units if --units is given.`,
		Args:              cobra.NoArgs,
		RunE:              cfg.params,
		DisableAutoGenTag: true,
	}

	cfg.prepareCmd = &cobra.Command{
		Use:   "prepare",
		Short: "Write the solver inputs.",
		Long: `prepare resolves the experiment and writes the problem description the
solver runs (problem.toml), the resolved parameters (params.toml) and the
profile snapshots of the background stratification and sponge layer, and
appends a parameter summary to the experiment log LOG_<Name>.txt.`,
		Args:              cobra.NoArgs,
		RunE:              cfg.prepare,
		DisableAutoGenTag: true,
	}

	cfg.plotCmd = &cobra.Command{
		Use:   "plot",
		Short: "Render snapshots and profiles.",
		Long: `plot renders solver snapshots and the resolved profiles as PNG images. Use
the subcommands specified below to choose what to draw.`,
		DisableAutoGenTag: true,
	}

	cfg.framesCmd = &cobra.Command{
		Use:   "frames FILE...",
		Short: "Render one frame per snapshot write.",
		Long: `frames draws the fields of every write of the snapshot files, next to the
background and sponge profiles, and saves one image per write named after
its write number.`,
		Args:              cobra.MinimumNArgs(1),
		RunE:              cfg.frames,
		DisableAutoGenTag: true,
	}

	cfg.tasksCmd = &cobra.Command{
		Use:   "tasks FILE...",
		Short: "Render selected tasks with contours.",
		Long: `tasks draws the selected tasks of every write over the right half of the
domain, with contours of another task on top.`,
		Args:              cobra.MinimumNArgs(1),
		RunE:              cfg.tasks,
		DisableAutoGenTag: true,
	}

	cfg.histCmd = &cobra.Command{
		Use:   "hist FILE...",
		Short: "Render task histograms.",
		Long: `hist draws the distribution of the selected tasks at every write against
their distribution at the first write of the file.`,
		Args:              cobra.MinimumNArgs(1),
		RunE:              cfg.hist,
		DisableAutoGenTag: true,
	}

	cfg.profilesCmd = &cobra.Command{
		Use:               "profiles",
		Short:             "Render the background and sponge profiles.",
		Long:              `profiles saves the resolved background and sponge profiles as profiles.png.`,
		Args:              cobra.NoArgs,
		RunE:              cfg.profiles,
		DisableAutoGenTag: true,
	}

	cfg.forcingCmd = &cobra.Command{
		Use:               "forcing",
		Short:             "Render the forcing window and ramp.",
		Long:              `forcing saves the spatial window and temporal ramp of the boundary forcing as forcing.png.`,
		Args:              cobra.NoArgs,
		RunE:              cfg.forcing,
		DisableAutoGenTag: true,
	}

	cfg.gifCmd = &cobra.Command{
		Use:   "gif FILENAME FRAMES_PATH",
		Short: "Assemble frames into an animated gif.",
		Long: `gif assembles the PNG images in FRAMES_PATH, in write order, into the
looping animated gif FILENAME.`,
		Args:              cobra.ExactArgs(2),
		RunE:              cfg.gif,
		DisableAutoGenTag: true,
	}

	// Link the commands together.
	cfg.Root.AddCommand(cfg.versionCmd, cfg.paramsCmd, cfg.prepareCmd, cfg.plotCmd, cfg.gifCmd)
	cfg.plotCmd.AddCommand(cfg.framesCmd, cfg.tasksCmd, cfg.histCmd, cfg.profilesCmd, cfg.forcingCmd)

	// Set the prefix for configuration environment variables.
	cfg.SetEnvPrefix("BOUSS")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	for _, option := range cfg.options() {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case []string:
				set.StringSliceP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			default:
				panic("invalid argument type")
			}
			cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
	return cfg
}

// setConfig finds and reads in the configuration file, if there is one.
func (cfg *Cfg) setConfig() error {
	if cfgpath := cfg.GetString("config"); cfgpath != "" {
		cfg.SetConfigFile(cfgpath)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("bouss: problem reading configuration file: %v", err)
		}
	}
	return nil
}
