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

package background

import (
	"errors"
	"math"
	"testing"

	"github.com/iwlab/bouss/physics"
	"github.com/iwlab/bouss/physics/profile"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func grid(n int) []float64 {
	return floats.Span(make([]float64, n), -0.5, 0)
}

func TestConstant(t *testing.T) {
	b, err := New("constant", DefaultConfig(), 1.3)
	if err != nil {
		t.Fatal(err)
	}
	z := grid(64)
	v := b.Build(z)
	if len(v) != len(z) {
		t.Fatalf("length %d != %d", len(v), len(z))
	}
	for i, vv := range v {
		if vv != 1.3 {
			t.Errorf("element %d = %g, want 1.3", i, vv)
		}
	}
}

func TestStaircaseNoInterfaces(t *testing.T) {
	c := DefaultConfig()
	b, err := New("bp_default", c, 1)
	if err != nil {
		t.Fatal(err)
	}
	z := grid(512)
	zCopy := append([]float64(nil), z...)
	v := b.Build(z)
	if !floats.Equal(z, zCopy) {
		t.Fatal("Build modified z")
	}
	want := profile.TanhStep(z, c.NUpper, c.Slope, c.MixedTop)
	floats.Add(want, profile.TanhStep(z, c.NLower, -c.Slope, c.MixedBottom))
	if !floats.Equal(v, want) {
		t.Error("n=0 staircase should be exactly the two-transition profile")
	}
	// Bulk values away from the band.
	if !scalar.EqualWithinAbs(v[0], c.NLower, 1e-9) {
		t.Errorf("bottom value %g, want %g", v[0], c.NLower)
	}
	if !scalar.EqualWithinAbs(v[len(v)-1], c.NUpper, 1e-9) {
		t.Errorf("top value %g, want %g", v[len(v)-1], c.NUpper)
	}
}

func TestStaircaseInterfaces(t *testing.T) {
	c := DefaultConfig()
	c.MixedBottom, c.MixedTop = -0.4, -0.1
	base, err := NewStaircase(c, 1)
	if err != nil {
		t.Fatal(err)
	}
	z := floats.Span(make([]float64, 3001), -0.5, 0)
	v0 := base.Build(z)
	for _, n := range []int{1, 2, 3} {
		c.Interfaces = n
		b, err := NewStaircase(c, 1)
		if err != nil {
			t.Fatal(err)
		}
		s := b.(Staircase)
		diff := b.Build(z)
		floats.Sub(diff, v0)

		// Find each bump as an interval where the difference exceeds
		// half the bump height.
		half := s.BumpHeight() / 2
		var mids []float64
		var rise float64
		for i := 1; i < len(z); i++ {
			if diff[i-1] < half && diff[i] >= half {
				rise = z[i]
			}
			if diff[i-1] >= half && diff[i] < half {
				mids = append(mids, (rise+z[i-1])/2)
			}
		}
		if len(mids) != n {
			t.Fatalf("n=%d: found %d bumps", n, len(mids))
		}
		centers := s.Centers()
		spacing := (c.MixedTop - c.MixedBottom) / float64(n)
		for i, m := range mids {
			if math.Abs(m-centers[i]) > 1e-3 {
				t.Errorf("n=%d bump %d at %g, want %g", n, i, m, centers[i])
			}
			if i > 0 && math.Abs((mids[i]-mids[i-1])-spacing) > 2e-3 {
				t.Errorf("n=%d uneven spacing %g, want %g", n, mids[i]-mids[i-1], spacing)
			}
		}
		if math.Abs(centers[0]-(c.MixedBottom+spacing/2)) > 1e-12 {
			t.Errorf("first center %g, want %g", centers[0], c.MixedBottom+spacing/2)
		}
	}
}

func TestBumpHeight(t *testing.T) {
	s := Staircase{Config: DefaultConfig()}
	want := 1.24 - 0.5*(1.24-0.95)
	if math.Abs(s.BumpHeight()-want) > 1e-12 {
		t.Errorf("bump height %g, want %g", s.BumpHeight(), want)
	}
}

func TestStaircaseInvalid(t *testing.T) {
	c := DefaultConfig()
	c.Interfaces = -1
	if _, err := NewStaircase(c, 1); err == nil {
		t.Error("negative interface count should fail")
	}
	c = DefaultConfig()
	c.MixedTop = c.MixedBottom
	if _, err := NewStaircase(c, 1); err == nil {
		t.Error("empty mixed layer should fail")
	}
}

func TestUnknown(t *testing.T) {
	_, err := New("bp_linear", DefaultConfig(), 1)
	if !errors.Is(err, physics.ErrUnknownModule) {
		t.Fatalf("want ErrUnknownModule, got %v", err)
	}
}
