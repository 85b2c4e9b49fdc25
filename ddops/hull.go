package ddops

// Copyright (c) 2025 Colin McRae

import (
	"fmt"

	"github.com/predrag3141/polyrep/polytope"
	"github.com/predrag3141/polyrep/rational"
	"github.com/predrag3141/polyrep/tableau"
)

// hullResult is the H-representation of conv(points) + cone(rays) in the
// caller's variable order. Every row has dim+1 entries, constant last.
// Inequalities are facets and may include the row 0 <= 1, which is the face
// at infinity of an unbounded polyhedron.
type hullResult struct {
	dim          int
	equalities   [][]rational.Value
	inequalities [][]rational.Value
}

// hull computes the facets and the affine hull of the generators of v by
// eliminating the multipliers of the generators.
func (e *engine) hull(caller string, v polytope.VRep) (*hullResult, error) {
	caller = fmt.Sprintf("%s-hull", caller)
	s, m, err := tableau.BuildHull(e.ctx, v, e.cfg.limits())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", caller, err)
	}
	defer e.ctx.Untrack(s)
	e.observe(s)
	if _, err = e.gauss(caller, s, m); err != nil {
		return nil, err
	}
	f, err := e.newFourier(caller, s, m)
	if err != nil {
		return nil, err
	}
	if err = f.run(caller, m.LiveOf(true)); err != nil {
		return nil, err
	}

	kept := m.Kept(v.Dim)
	constCol := s.Cols() - 1
	extract := func(h tableau.Handle) []rational.Value {
		row := s.Row(h)
		out := make([]rational.Value, v.Dim+1)
		for i, col := range kept {
			out[i] = row[col]
		}
		out[v.Dim] = row[constCol]
		return out
	}
	res := &hullResult{dim: v.Dim}
	for _, h := range s.HandlesOf(tableau.Equality) {
		res.equalities = append(res.equalities, extract(h))
	}
	candidates := make([][]rational.Value, 0, s.Len())
	for _, h := range s.HandlesOf(tableau.Inequality) {
		candidates = append(candidates, extract(h))
	}
	if res.inequalities, err = e.facets(caller, v, candidates); err != nil {
		return nil, err
	}
	e.logger.Debug(
		"hull computed",
		"generators", len(v.Rows),
		"equalities", len(res.equalities),
		"candidates", len(candidates),
		"facets", len(res.inequalities),
	)
	return res, nil
}

// facets keeps the rows a . x <= b of candidates whose tight generators span
// a face of dimension one less than that of the homogenized cone of v, the
// first of any two rows with the same tight generators.
func (e *engine) facets(caller string, v polytope.VRep, candidates [][]rational.Value) ([][]rational.Value, error) {
	caller = fmt.Sprintf("%s-facets", caller)
	gens := make([][]rational.Value, len(v.Rows))
	for k, g := range v.Rows {
		gens[k] = g.Values()
	}
	fullRank, err := e.rank(caller, gens)
	if err != nil {
		return nil, err
	}
	var seen []history
	retVal := make([][]rational.Value, 0, len(candidates))
	for _, row := range candidates {
		tight, err := e.incidence(caller, row, gens)
		if err != nil {
			return nil, err
		}
		duplicate := false
		for _, other := range seen {
			if tight.equal(other) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		tightGens := make([][]rational.Value, 0, len(gens))
		for k := range gens {
			if tight.has(k) {
				tightGens = append(tightGens, gens[k])
			}
		}
		faceRank, err := e.rank(caller, tightGens)
		if err != nil {
			return nil, err
		}
		if faceRank != fullRank-1 {
			continue
		}
		seen = append(seen, tight)
		retVal = append(retVal, row)
	}
	return retVal, nil
}

// incidence returns the set of generators (g | t) with a . g = b t for the
// row (a | b). Generators have t = 1 (points) or t = 0 (rays).
func (e *engine) incidence(caller string, row []rational.Value, gens [][]rational.Value) (history, error) {
	tight := newHistory(len(gens))
	n := len(row) - 1
	for k, g := range gens {
		lhs, err := e.dot(caller, row[:n], g[:n])
		if err != nil {
			return nil, err
		}
		rhs := rational.Value{}
		if !g[n].IsZero() {
			rhs = row[n]
		}
		if lhs.Equal(rhs) {
			tight.set(k)
		}
	}
	return tight, nil
}

// rank returns the rank of the matrix whose rows are rows. The rows are
// copied into a scratch system and reduced with the Gauss-Jordan pivot of
// the eliminator, every column being a candidate pivot column.
func (e *engine) rank(caller string, rows [][]rational.Value) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	caller = fmt.Sprintf("%s-rank", caller)
	cols := len(rows[0])
	s := tableau.NewSystem(cols, tableau.Limits{MaxRows: len(rows), MaxValues: len(rows) * cols})
	for i, row := range rows {
		if _, err := s.Append(tableau.Equality, row); err != nil {
			return 0, fmt.Errorf("%s: row %d: %w", caller, i, err)
		}
	}
	e.ctx.Track(s)
	defer e.ctx.Untrack(s)
	if err := e.ctx.Admit(s); err != nil {
		return 0, fmt.Errorf("%s: %w", caller, err)
	}
	allCols := make([]int, cols)
	for j := range allCols {
		allCols[j] = j
	}
	retVal := 0
	for _, h := range s.Handles() {
		col := firstNonzero(s.Row(h), allCols)
		if col < 0 {
			continue
		}
		if err := e.pivot(caller, s, h, col); err != nil {
			return 0, err
		}
		retVal++
	}
	return retVal, nil
}
