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
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// exprFuncs are the functions available to substitution expressions.
var exprFuncs = map[string]govaluate.ExpressionFunction{
	"tanh": unary("tanh", math.Tanh),
	"sin":  unary("sin", math.Sin),
	"cos":  unary("cos", math.Cos),
	"exp":  unary("exp", math.Exp),
}

func unary(name string, f func(float64) float64) govaluate.ExpressionFunction {
	return func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("forcing: got %d arguments for function '%s', but needs 1", len(arg), name)
		}
		v, ok := arg[0].(float64)
		if !ok {
			return nil, fmt.Errorf("forcing: argument to '%s' is %T, not a number", name, arg[0])
		}
		return f(v), nil
	}
}

// Evaluator evaluates substitution expressions at a point in space and
// time, the way the solver expands them.
type Evaluator struct {
	params map[string]float64
	names  []string
	exprs  []*govaluate.EvaluableExpression
}

// NewEvaluator parses subs. Each substitution may refer to params, to the
// coordinates x, z and t, and to substitutions before it.
func NewEvaluator(subs []Substitution, params map[string]float64) (*Evaluator, error) {
	e := &Evaluator{params: params}
	known := map[string]bool{"x": true, "z": true, "t": true}
	for k := range params {
		known[k] = true
	}
	for _, s := range subs {
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(s.Expr, exprFuncs)
		if err != nil {
			return nil, fmt.Errorf("forcing: parsing substitution %s: %v", s.Name, err)
		}
		for _, v := range expr.Vars() {
			if !known[v] {
				return nil, fmt.Errorf("forcing: substitution %s refers to undefined variable '%s'", s.Name, v)
			}
		}
		known[s.Name] = true
		e.names = append(e.names, s.Name)
		e.exprs = append(e.exprs, expr)
	}
	return e, nil
}

// Eval returns the value of the substitution called name at (x, z, t).
func (e *Evaluator) Eval(name string, x, z, t float64) (float64, error) {
	vals := make(map[string]interface{}, len(e.params)+len(e.names)+3)
	for k, v := range e.params {
		vals[k] = v
	}
	vals["x"], vals["z"], vals["t"] = x, z, t
	for i, n := range e.names {
		r, err := e.exprs[i].Evaluate(vals)
		if err != nil {
			return math.NaN(), fmt.Errorf("forcing: evaluating %s: %v", n, err)
		}
		v, ok := r.(float64)
		if !ok {
			return math.NaN(), fmt.Errorf("forcing: %s evaluated to %T, not a number", n, r)
		}
		if n == name {
			return v, nil
		}
		vals[n] = v
	}
	return math.NaN(), fmt.Errorf("forcing: no substitution named '%s'", name)
}
