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

package forcing

import (
	"errors"
	"math"
	"testing"

	"github.com/iwlab/bouss/physics"
	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-12

func TestResolveReference(t *testing.T) {
	f, err := New("default", DefaultConfig(), Geometry{})
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		name      string
		got, want float64
	}{
		{"theta", f.Theta, 0.7854},
		{"kx", f.Kx, 31.82},
		{"kz", f.Kz, 31.82},
		{"lambda_x", f.LambdaX, 0.1974},
		{"T", f.T, 8.886},
	}
	for _, w := range want {
		if !scalar.EqualWithinRel(w.got, w.want, 1e-3) {
			t.Errorf("%s: got %g, want %g", w.name, w.got, w.want)
		}
	}
}

func TestResolveRelations(t *testing.T) {
	for _, n0 := range []float64{0.1, 1, 3.7} {
		for _, frac := range []float64{-1, -0.3, 0.01, 0.5, 0.99, 1} {
			for _, k := range []float64{1, 45, 300} {
				c := DefaultConfig()
				c.N0, c.K, c.Omega = n0, k, frac*n0
				if c.Omega <= 0 {
					if _, err := Resolve(c, Geometry{}); !errors.Is(err, ErrRegime) {
						t.Errorf("omega=%g: want ErrRegime, got %v", c.Omega, err)
					}
					continue
				}
				f, err := Resolve(c, Geometry{})
				if err != nil {
					t.Fatalf("N0=%g omega=%g: %v", n0, c.Omega, err)
				}
				if !scalar.EqualWithinAbsOrRel(math.Cos(f.Theta), c.Omega/n0, tol, tol) {
					t.Errorf("cos(theta) = %g, want %g", math.Cos(f.Theta), c.Omega/n0)
				}
				if !scalar.EqualWithinAbsOrRel(f.Kx, k*c.Omega/n0, tol, tol) {
					t.Errorf("kx = %g", f.Kx)
				}
				if !scalar.EqualWithinAbsOrRel(f.Kz, k*math.Sin(f.Theta), tol, tol) {
					t.Errorf("kz = %g", f.Kz)
				}
				if !scalar.EqualWithinAbsOrRel(f.LambdaX*f.Kx, 2*math.Pi, tol, tol) {
					t.Errorf("lambda_x·kx = %g", f.LambdaX*f.Kx)
				}
				if !scalar.EqualWithinAbsOrRel(f.T*c.Omega, 2*math.Pi, tol, tol) {
					t.Errorf("T·omega = %g", f.T*c.Omega)
				}
			}
		}
	}
}

func TestResolveRegime(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"omega above N0", func(c *Config) { c.Omega = 1.0001 }},
		{"zero N0", func(c *Config) { c.N0 = 0 }},
		{"NaN omega", func(c *Config) { c.Omega = math.NaN() }},
		{"zero k", func(c *Config) { c.K = 0 }},
		{"negative omega below N0", func(c *Config) { c.Omega = -0.5 * c.N0 }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := DefaultConfig()
			test.mod(&c)
			f, err := Resolve(c, Geometry{})
			if !errors.Is(err, ErrRegime) {
				t.Fatalf("want ErrRegime, got %v", err)
			}
			if f != nil {
				t.Errorf("got a forcing along with the error: %+v", f)
			}
		})
	}
}

func TestWindowPlacement(t *testing.T) {
	c := DefaultConfig()
	ref, err := Resolve(c, Geometry{})
	if err != nil {
		t.Fatal(err)
	}
	half := 0.5 * ref.LambdaX * c.WindowLambdas

	t.Run("tie goes flush left", func(t *testing.T) {
		g := Geometry{BufferX: half, XSim0: -half, X0: 0}
		f, err := Resolve(c, g)
		if err != nil {
			t.Fatal(err)
		}
		if f.Left != g.X0 || f.Right != g.X0+ref.LambdaX {
			t.Errorf("edges = [%g, %g], want [%g, %g]", f.Left, f.Right, g.X0, g.X0+ref.LambdaX)
		}
	})
	t.Run("room in buffer centers", func(t *testing.T) {
		g := Geometry{BufferX: math.Nextafter(half, 1), XSim0: -0.3, X0: 0}
		f, err := Resolve(c, g)
		if err != nil {
			t.Fatal(err)
		}
		if !scalar.EqualWithinAbs(f.Left, -0.3-half, tol) || !scalar.EqualWithinAbs(f.Right, -0.3+half, tol) {
			t.Errorf("edges = [%g, %g], want centered on %g", f.Left, f.Right, g.XSim0)
		}
	})
	t.Run("no buffer", func(t *testing.T) {
		f, err := Resolve(c, Geometry{X0: 0.1, XSim0: 0.1})
		if err != nil {
			t.Fatal(err)
		}
		if f.Left != 0.1 {
			t.Errorf("left edge %g != 0.1", f.Left)
		}
	})
}

func TestPolarization(t *testing.T) {
	c := DefaultConfig()
	c.N0 = 2
	c.Omega = 1
	f, err := Resolve(c, Geometry{})
	if err != nil {
		t.Fatal(err)
	}
	wantW := c.A * c.G * c.Omega / 4
	if !scalar.EqualWithinAbsOrRel(f.Polarization.W, wantW, tol, tol) {
		t.Errorf("W = %g, want %g", f.Polarization.W, wantW)
	}
	if !scalar.EqualWithinAbsOrRel(f.Polarization.U, wantW*f.Kz/f.Kx, tol, tol) {
		t.Errorf("U = %g, want %g", f.Polarization.U, wantW*f.Kz/f.Kx)
	}
	if f.Polarization.B != c.A*c.G {
		t.Errorf("B = %g, want %g", f.Polarization.B, c.A*c.G)
	}
}

func TestRamp(t *testing.T) {
	f, err := Resolve(DefaultConfig(), Geometry{})
	if err != nil {
		t.Fatal(err)
	}
	if r := f.Ramp(0); r > 0.02 {
		t.Errorf("ramp(0) = %g, should start near zero", r)
	}
	if r := f.Ramp(f.NT * f.T / 2); !scalar.EqualWithinAbs(r, 0.5, tol) {
		t.Errorf("ramp at half time = %g, want 0.5", r)
	}
	if r := f.Ramp(2 * f.NT * f.T); r < 0.999 {
		t.Errorf("ramp after 2·nT periods = %g, want ~1", r)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"default", "bf_default"} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	_, err := New("bf_tides", DefaultConfig(), Geometry{})
	if !errors.Is(err, physics.ErrUnknownModule) {
		t.Fatalf("want ErrUnknownModule, got %v", err)
	}
	var ume *physics.UnknownModuleError
	if !errors.As(err, &ume) || ume.Category != physics.BoundaryForcing {
		t.Errorf("error %v does not name the boundary forcing category", err)
	}
}

func TestSubstitutionsMatchFields(t *testing.T) {
	f, err := Resolve(DefaultConfig(), Geometry{BufferX: 0.2, XSim0: -0.2})
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEvaluator(f.Substitutions(), f.Params())
	if err != nil {
		t.Fatal(err)
	}
	points := [][3]float64{{0, 0, 0}, {-0.2, 0, 5}, {-0.15, -0.1, 12.5}, {0.3, -0.4, 30}}
	for _, p := range points {
		x, z, tt := p[0], p[1], p[2]
		u, w, b := f.Fields(x, z, tt)
		checks := []struct {
			name string
			want float64
		}{
			{"window", f.Window(x)},
			{"ramp", f.Ramp(tt)},
			{"fu", u},
			{"fw", w},
			{"fb", b},
		}
		for _, c := range checks {
			got, err := e.Eval(c.name, x, z, tt)
			if err != nil {
				t.Fatal(err)
			}
			if !scalar.EqualWithinAbsOrRel(got, c.want, 1e-12, 1e-9) {
				t.Errorf("%s%v: expression gives %g, Go gives %g", c.name, p, got, c.want)
			}
		}
	}
	if _, err := e.Eval("fp", 0, 0, 0); err == nil {
		t.Error("evaluating an undefined substitution should fail")
	}
}

func TestEvaluatorUndefinedVariable(t *testing.T) {
	_, err := NewEvaluator([]Substitution{{Name: "fu", Expr: "BFu*window"}}, map[string]float64{"BFu": 1})
	if err == nil {
		t.Fatal("want an error for a reference to an undefined substitution")
	}
}
