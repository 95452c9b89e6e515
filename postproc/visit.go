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

// Package postproc renders snapshot files as images and assembles the
// images into animations.
package postproc

import (
	"context"
	"fmt"
	"os"

	"github.com/iwlab/bouss/coord"
	"github.com/iwlab/bouss/snapshot"
	"golang.org/x/sync/errgroup"
)

// WriteFunc processes count writes of f starting at write index start.
type WriteFunc func(ctx context.Context, f *snapshot.File, start, count int) error

// Block is a contiguous range of writes.
type Block struct {
	Start, Count int
}

// Blocks splits n writes into one contiguous block per worker. The first
// n%workers blocks get one extra write.
func Blocks(n, workers int) []Block {
	if workers < 1 {
		workers = 1
	}
	b := make([]Block, workers)
	base, rem := n/workers, n%workers
	start := 0
	for i := range b {
		c := base
		if i < rem {
			c++
		}
		b[i] = Block{Start: start, Count: c}
		start += c
	}
	return b
}

// VisitWrites calls fn for every write of the snapshot files in paths,
// spread over workers goroutines. Worker 0 creates the output directory
// before any worker starts rendering. The first error cancels the
// remaining work and is returned.
func VisitWrites(ctx context.Context, paths []string, output string, workers int, fn WriteFunc) error {
	if workers < 1 {
		workers = 1
	}
	g := coord.New(workers)
	eg, ctx := errgroup.WithContext(ctx)
	for r := 0; r < workers; r++ {
		rank := r
		eg.Go(func() error {
			err := g.Do(ctx, rank, func() error {
				if err := os.MkdirAll(output, 0755); err != nil {
					return fmt.Errorf("postproc: creating output directory: %v", err)
				}
				return nil
			})
			if err != nil {
				return err
			}
			for _, p := range paths {
				if err := visitFile(ctx, p, rank, workers, fn); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return eg.Wait()
}

func visitFile(ctx context.Context, path string, rank, workers int, fn WriteFunc) error {
	f, err := snapshot.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	b := Blocks(f.Writes(), workers)[rank]
	if b.Count == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, f, b.Start, b.Count)
}
