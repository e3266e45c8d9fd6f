// internal/fba/fba.go
//
// Package fba solves flux-balance problems: maximize the flux of one reaction
// subject to steady state (S·v = 0) and per-reaction bounds l ≤ v ≤ u. The
// bounded LP is converted to standard form and handed to gonum's simplex
// solver.
package fba

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Problem is a flattened model: one column per reaction, one steady-state row
// per metabolite. Stoich[j] maps metabolite row index to the coefficient of
// reaction j. Bounds must be finite.
type Problem struct {
	Metabolites int
	Lower       []float64
	Upper       []float64
	Stoich      []map[int]float64
}

// tolerance passed to the simplex solver.
const simplexTol = 1e-10

// Maximize returns the maximum flux of reaction objective, or 0 when the
// problem is infeasible (the convention flux-balance tools use for a model
// that cannot reach steady state under its constraints). An unbounded or
// numerically failed solve is an error.
func Maximize(p Problem, objective int) (float64, error) {
	n := len(p.Lower)
	if n == 0 || len(p.Upper) != n || len(p.Stoich) != n {
		return 0, errors.New("fba: malformed problem")
	}
	if objective < 0 || objective >= n {
		return 0, fmt.Errorf("fba: objective column %d out of range", objective)
	}

	// Substitute v = l + x with x ≥ 0, and add one slack row per reaction to
	// enforce x_j + s_j = u_j - l_j. Columns: n shifted fluxes then n slacks.
	// Rows: Metabolites steady-state rows then n bound rows.
	rows := p.Metabolites + n
	cols := 2 * n
	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	for j := 0; j < n; j++ {
		for i, coef := range p.Stoich[j] {
			if i < 0 || i >= p.Metabolites {
				return 0, fmt.Errorf("fba: stoichiometry row %d out of range", i)
			}
			a.Set(i, j, coef)
			b[i] -= coef * p.Lower[j]
		}
		if p.Upper[j] < p.Lower[j] {
			return 0, fmt.Errorf("fba: column %d: crossed bounds", j)
		}
		a.Set(p.Metabolites+j, j, 1)
		a.Set(p.Metabolites+j, n+j, 1)
		b[p.Metabolites+j] = p.Upper[j] - p.Lower[j]
	}

	c := make([]float64, cols)
	c[objective] = -1 // simplex minimizes; maximize x_obj

	_, x, err := lp.Simplex(c, a, b, simplexTol, nil)
	switch {
	case err == nil:
		return p.Lower[objective] + x[objective], nil
	case errors.Is(err, lp.ErrInfeasible):
		return 0, nil
	default:
		return 0, fmt.Errorf("fba: %w", err)
	}
}
