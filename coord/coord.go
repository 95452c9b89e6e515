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

// Package coord lets a group of cooperating workers perform a shared side
// effect, such as creating an output directory, exactly once: the
// coordinator (rank 0) runs it and every worker waits for it to finish
// before going on.
package coord

import (
	"context"
	"fmt"
	"sync"
)

// Group coordinates a fixed number of workers. A Group may be used for
// any number of consecutive phases, but every worker must take part in
// every phase.
type Group struct {
	n int

	mu      sync.Mutex
	arrived int
	cur     *phase
}

// phase is one round of the barrier.
type phase struct {
	err  error
	done chan struct{}
}

// New returns a Group of n workers.
func New(n int) *Group {
	if n < 1 {
		panic(fmt.Sprintf("coord: invalid group size %d", n))
	}
	return &Group{n: n, cur: &phase{done: make(chan struct{})}}
}

// Size returns the number of workers.
func (g *Group) Size() int { return g.n }

// Do runs fn if rank is the coordinator and then blocks until every
// worker of the group has called Do. All workers return fn's error.
// If ctx is canceled first Do returns ctx.Err() and the group must not be
// used again.
func (g *Group) Do(ctx context.Context, rank int, fn func() error) error {
	if rank < 0 || rank >= g.n {
		return fmt.Errorf("coord: rank %d outside group of %d", rank, g.n)
	}
	var err error
	if rank == 0 {
		err = fn()
	}

	g.mu.Lock()
	p := g.cur
	if rank == 0 {
		p.err = err
	}
	g.arrived++
	if g.arrived == g.n {
		g.arrived = 0
		g.cur = &phase{done: make(chan struct{})}
		close(p.done)
	}
	g.mu.Unlock()

	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait blocks until every worker has called Wait or Do.
func (g *Group) Wait(ctx context.Context, rank int) error {
	return g.Do(ctx, rank, func() error { return nil })
}
