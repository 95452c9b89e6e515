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

// Package physics holds the types shared by the pluggable physics modules:
// the module categories and the per-run selection of one named
// implementation in each category.
package physics

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Category is a kind of pluggable physics module.
type Category string

// The module categories. Exactly one implementation of each is active
// in a run.
const (
	BoundaryForcing   Category = "boundary forcing"
	BackgroundProfile Category = "background profile"
	SpongeLayer       Category = "sponge layer"
)

// ErrUnknownModule is returned (wrapped in an *UnknownModuleError) when a
// module name has no registered implementation.
var ErrUnknownModule = errors.New("unknown module")

// UnknownModuleError reports a module name that does not match any
// implementation in its category.
type UnknownModuleError struct {
	Category Category
	Name     string
	Valid    []string
}

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("physics: invalid %s option '%s'; valid options are %s",
		e.Category, e.Name, quoteList(e.Valid))
}

// Unwrap allows errors.Is(err, ErrUnknownModule).
func (e *UnknownModuleError) Unwrap() error { return ErrUnknownModule }

// NewUnknownModuleError returns an error for name, listing the names in
// options as the valid choices.
func NewUnknownModuleError[T any](c Category, name string, options map[string]T) error {
	valid := make([]string, 0, len(options))
	for k := range options {
		valid = append(valid, k)
	}
	sort.Strings(valid)
	return &UnknownModuleError{Category: c, Name: name, Valid: valid}
}

func quoteList(s []string) string {
	q := make([]string, len(s))
	for i, v := range s {
		q[i] = "'" + v + "'"
	}
	return strings.Join(q, ", ")
}

// Selection names the implementation chosen for each module category.
type Selection struct {
	BoundaryForcing   string
	BackgroundProfile string
	SpongeLayer       string
}

// DefaultSelection is the module selection used when none is configured.
var DefaultSelection = Selection{
	BoundaryForcing:   "default",
	BackgroundProfile: "staircase",
	SpongeLayer:       "ramped",
}

// Names returns the selected name for each category.
func (s Selection) Names() map[Category]string {
	return map[Category]string{
		BoundaryForcing:   s.BoundaryForcing,
		BackgroundProfile: s.BackgroundProfile,
		SpongeLayer:       s.SpongeLayer,
	}
}
