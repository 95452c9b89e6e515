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
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iwlab/bouss/postproc"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (cfg *Cfg) params(cmd *cobra.Command, args []string) error {
	sb, err := Build(cfg.Viper)
	if err != nil {
		return err
	}
	if cfg.GetBool("toml") {
		return sb.EncodeTOML(cmd.OutOrStdout())
	}
	if cfg.GetBool("units") {
		return sb.WriteQuantities(cmd.OutOrStdout())
	}
	if err := sb.WriteLog(cmd.OutOrStdout()); err != nil {
		return err
	}
	if path := os.ExpandEnv(cfg.GetString("append")); path != "" {
		return appendLog(sb, path)
	}
	return nil
}

func (cfg *Cfg) prepare(cmd *cobra.Command, args []string) error {
	log, closeLog, err := cfg.logger(cmd)
	if err != nil {
		return err
	}
	defer closeLog()
	sb, err := Build(cfg.Viper)
	if err != nil {
		return err
	}
	return Prepare(sb, os.ExpandEnv(cfg.GetString("dir")), log)
}

func (cfg *Cfg) frames(cmd *cobra.Command, args []string) error {
	sb, err := Build(cfg.Viper)
	if err != nil {
		return err
	}
	out := os.ExpandEnv(cfg.GetString("output"))
	d := sb.Display()
	dir := os.ExpandEnv(cfg.GetString("dir"))
	d.BackgroundFile = under(dir, d.BackgroundFile)
	d.SpongeFile = under(dir, d.SpongeFile)
	fr, err := postproc.NewFrames(d, out)
	if err != nil {
		return err
	}
	return cfg.render(cmd, "frames", args, out, fr.Render)
}

func (cfg *Cfg) tasks(cmd *cobra.Command, args []string) error {
	sb, err := Build(cfg.Viper)
	if err != nil {
		return err
	}
	tasks, err := stringSlice(cfg.Viper, "tasks")
	if err != nil {
		return err
	}
	d := sb.Display()
	tr := &postproc.Tasks{
		Tasks:    tasks,
		Contour:  cfg.GetString("contour"),
		Levels:   cfg.GetInt("levels"),
		Title:    d.Title,
		Output:   os.ExpandEnv(cfg.GetString("output")),
		DPI:      d.DPI,
		FontSize: d.FontSize,
	}
	return cfg.render(cmd, "tasks", args, tr.Output, tr.Render)
}

func (cfg *Cfg) hist(cmd *cobra.Command, args []string) error {
	sb, err := Build(cfg.Viper)
	if err != nil {
		return err
	}
	tasks, err := stringSlice(cfg.Viper, "tasks")
	if err != nil {
		return err
	}
	d := sb.Display()
	hr := &postproc.Histograms{
		Tasks:    tasks,
		Bins:     cfg.GetInt("bins"),
		Title:    d.Title,
		Output:   os.ExpandEnv(cfg.GetString("output")),
		DPI:      d.DPI,
		FontSize: d.FontSize,
	}
	return cfg.render(cmd, "histograms", args, hr.Output, hr.Render)
}

// render visits every write of files with fn.
func (cfg *Cfg) render(cmd *cobra.Command, what string, files []string, out string, fn postproc.WriteFunc) error {
	log, closeLog, err := cfg.logger(cmd)
	if err != nil {
		return err
	}
	defer closeLog()
	workers := cfg.GetInt("workers")
	log.WithFields(logrus.Fields{
		"files":   len(files),
		"workers": workers,
		"output":  out,
	}).Infof("rendering %s", what)
	start := time.Now()
	if err := postproc.VisitWrites(cmd.Context(), files, out, workers, fn); err != nil {
		return err
	}
	log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Infof("finished rendering %s", what)
	return nil
}

func (cfg *Cfg) profiles(cmd *cobra.Command, args []string) error {
	sb, err := Build(cfg.Viper)
	if err != nil {
		return err
	}
	path, err := cfg.outputFile("profiles.png")
	if err != nil {
		return err
	}
	if err := postproc.ProfilePlot(sb, path); err != nil {
		return err
	}
	cmd.Printf("wrote %s\n", path)
	return nil
}

func (cfg *Cfg) forcing(cmd *cobra.Command, args []string) error {
	sb, err := Build(cfg.Viper)
	if err != nil {
		return err
	}
	path, err := cfg.outputFile("forcing.png")
	if err != nil {
		return err
	}
	if err := postproc.ForcingPlot(sb, path, cfg.GetInt("points")); err != nil {
		return err
	}
	cmd.Printf("wrote %s\n", path)
	return nil
}

// outputFile returns name in the output directory, creating the directory
// if necessary.
func (cfg *Cfg) outputFile(name string) (string, error) {
	out := os.ExpandEnv(cfg.GetString("output"))
	if err := os.MkdirAll(out, 0755); err != nil {
		return "", fmt.Errorf("bouss: creating output directory: %v", err)
	}
	return filepath.Join(out, name), nil
}

func (cfg *Cfg) gif(cmd *cobra.Command, args []string) error {
	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("bouss: %v", err)
	}
	if err := postproc.AssembleGIF(f, args[1], cfg.GetInt("delay")); err != nil {
		f.Close()
		os.Remove(args[0])
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("bouss: %v", err)
	}
	cmd.Printf("wrote %s\n", args[0])
	return nil
}
