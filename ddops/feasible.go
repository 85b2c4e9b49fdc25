package ddops

// Copyright (c) 2025 Colin McRae

import (
	"fmt"

	"github.com/predrag3141/polyrep/polytope"
	"github.com/predrag3141/polyrep/rational"
	"github.com/predrag3141/polyrep/tableau"
)

// findValidPoint returns a point of h. The equalities are solved by Gauss
// Jordan elimination and the remaining variables are projected out of the
// inequalities one at a time. Coordinates are then chosen in reverse order
// of projection: the midpoint of the interval the earlier system allows, its
// finite end if it has only one, or 0 if it is unbounded both ways.
func (e *engine) findValidPoint(caller string, h polytope.HRep) ([]rational.Value, error) {
	caller = fmt.Sprintf("%s-findValidPoint", caller)
	s, m, err := tableau.BuildSystem(
		e.ctx, polytope.HRep{Dim: h.Dim, Equalities: h.Equalities, Inequalities: h.Inequalities}, e.cfg.limits(),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", caller, err)
	}
	defer e.ctx.Untrack(s)
	rec, err := e.gauss(caller, s, m)
	if err != nil {
		return nil, err
	}
	f, err := e.newFourier(caller, s, m)
	if err != nil {
		return nil, err
	}
	live := m.Live()
	snapshots := make([][][]rational.Value, len(live))
	for k, col := range live {
		for _, hnd := range s.HandlesOf(tableau.Inequality) {
			row := make([]rational.Value, s.Cols())
			copy(row, s.Row(hnd))
			snapshots[k] = append(snapshots[k], row)
		}
		if err = f.eliminate(caller, col); err != nil {
			return nil, err
		}
	}

	constCol := s.Cols() - 1
	x := make([]rational.Value, constCol)
	half := rational.MustNew(1, 2)
	for k := len(live) - 1; k >= 0; k-- {
		col := live[k]
		err = e.ctx.Do(func(arith rational.Arith) {
			var lower, upper rational.Value
			hasLower, hasUpper := false, false
			for _, row := range snapshots[k] {
				a := row[col]
				if a.IsZero() {
					continue
				}
				rest := row[constCol]
				for j := 0; j < constCol; j++ {
					if (j != col) && !row[j].IsZero() && !x[j].IsZero() {
						rest = arith.Sub(rest, arith.Mul(row[j], x[j]))
					}
				}
				bound := arith.Quo(rest, a)
				if a.Sign() > 0 {
					if !hasUpper || (bound.Cmp(upper) < 0) {
						upper, hasUpper = bound, true
					}
				} else if !hasLower || (bound.Cmp(lower) > 0) {
					lower, hasLower = bound, true
				}
			}
			switch {
			case hasLower && hasUpper:
				x[col] = arith.Mul(arith.Add(lower, upper), half)
			case hasLower:
				x[col] = lower
			case hasUpper:
				x[col] = upper
			default:
				x[col] = rational.Value{}
			}
		})
		if err != nil {
			return nil, fmt.Errorf("%s: column %d: %w", caller, col, err)
		}
	}
	reduced := make([]rational.Value, len(live))
	for i, col := range live {
		reduced[i] = x[col]
	}
	return e.blowUp(caller, s, rec, live, reduced, 1)
}
