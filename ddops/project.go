package ddops

// Copyright (c) 2025 Colin McRae

import (
	"fmt"

	"github.com/predrag3141/polyrep/polytope"
	"github.com/predrag3141/polyrep/rational"
	"github.com/predrag3141/polyrep/tableau"
	"github.com/predrag3141/polyrep/util"
)

// project eliminates the variables that order marks from h and returns the
// equalities and inequalities of the projection in the caller's variable
// order, with zero coefficients on the eliminated variables. order[j] = k > 0
// makes variable j the k-th to be eliminated and order[j] = 0 keeps it.
func (e *engine) project(caller string, h polytope.HRep, order []int) (eqs, ineqs [][]rational.Value, err error) {
	caller = fmt.Sprintf("%s-project", caller)
	perm, numToEliminate, err := util.InvertEliminationOrder(order, h.Dim)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w: %v", caller, ErrMalformedEliminationOrder, err)
	}
	s, m, err := tableau.BuildProjection(e.ctx, h, perm, numToEliminate, e.cfg.limits())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", caller, err)
	}
	defer e.ctx.Untrack(s)
	if _, err = e.gauss(caller, s, m); err != nil {
		return nil, nil, err
	}
	f, err := e.newFourier(caller, s, m)
	if err != nil {
		return nil, nil, err
	}
	if err = f.run(caller, m.LiveOf(true)); err != nil {
		return nil, nil, err
	}

	kept := m.Kept(h.Dim)
	constCol := s.Cols() - 1
	extract := func(hnd tableau.Handle) []rational.Value {
		row := s.Row(hnd)
		out := make([]rational.Value, h.Dim+1)
		for i, col := range kept {
			if col >= 0 {
				out[i] = row[col]
			}
		}
		out[h.Dim] = row[constCol]
		return out
	}
	for _, hnd := range s.HandlesOf(tableau.Equality) {
		eqs = append(eqs, extract(hnd))
	}
	for _, hnd := range s.HandlesOf(tableau.Inequality) {
		row := extract(hnd)
		if isZero(row[:h.Dim]) {
			// 0 <= c with c > 0 holds everywhere
			continue
		}
		ineqs = append(ineqs, row)
	}
	return eqs, ineqs, nil
}
