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
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// logger returns a logger writing to the error stream of cmd and, if the
// LogFile option is set, appending to that file as well. The returned
// function closes the log file.
func (cfg *Cfg) logger(cmd *cobra.Command) (*logrus.Logger, func(), error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
	log.SetOutput(cmd.ErrOrStderr())

	path := os.ExpandEnv(cfg.GetString("LogFile"))
	if path == "" {
		return log, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("bouss: opening log file: %v", err)
	}
	log.SetOutput(io.MultiWriter(cmd.ErrOrStderr(), f))
	return log, func() { f.Close() }, nil
}
