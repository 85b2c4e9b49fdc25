// Package ddops converts between the H-representation and the V-representation
// of a polyhedron with exact rational arithmetic, and projects polyhedra onto
// subsets of their variables.
//
// Every call builds its own precision context and working systems, so calls
// may run concurrently.
package ddops

// Copyright (c) 2025 Colin McRae

import (
	"fmt"

	"github.com/predrag3141/polyrep/polytope"
	"github.com/predrag3141/polyrep/rational"
)

// PointsToInequalities returns the canonical H-representation of
// conv(points) + cone(rays) of v: equalities of the affine hull, then facets,
// each block with integer rows in lexicographic order. If v has only rays the
// result describes their conic hull.
func PointsToInequalities(v polytope.VRep, cfg Config) (*polytope.HRep, *Report, error) {
	const caller = "PointsToInequalities"
	e, err := newEngine(caller, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err = v.Validate(); err != nil {
		return nil, e.finish(), fmt.Errorf("%s: %w", caller, err)
	}
	if len(v.Rows) == 0 {
		return nil, e.finish(), fmt.Errorf("%s: no generators: %w", caller, ErrEmptyPolyhedron)
	}
	hr, err := e.hull(caller, v)
	if err != nil {
		return nil, e.finish(), err
	}
	ineqs := make([][]rational.Value, 0, len(hr.inequalities))
	for _, row := range hr.inequalities {
		if !isZero(row[:v.Dim]) {
			ineqs = append(ineqs, row)
		}
	}
	h, err := e.canonH(caller, v.Dim, hr.equalities, ineqs)
	if err != nil {
		return nil, e.finish(), err
	}
	e.setDimensionH(h)
	return h, e.finish(), nil
}

// InequalitiesToPoints returns the canonical V-representation of h: rays with
// integer coordinates, then points with constant 1, each block in
// lexicographic order. Lines are given as pairs of opposite rays.
//
// h.ValidPoint, if set, must satisfy h. Otherwise the origin is used if it
// satisfies h and a point of h is searched for if not.
func InequalitiesToPoints(h polytope.HRep, cfg Config) (*polytope.VRep, *Report, error) {
	const caller = "InequalitiesToPoints"
	e, err := newEngine(caller, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err = h.Validate(); err != nil {
		return nil, e.finish(), fmt.Errorf("%s: %w", caller, err)
	}
	rays, points, err := e.toPoints(caller, h)
	if err != nil {
		return nil, e.finish(), err
	}
	v, err := e.canonV(caller, h.Dim, rays, points)
	if err != nil {
		return nil, e.finish(), err
	}
	if err = e.setDimensionV(caller, v); err != nil {
		return nil, e.finish(), err
	}
	return v, e.finish(), nil
}

// EliminateVariables projects h onto the variables j with order[j] = 0 by
// eliminating each variable j with order[j] = k > 0 as the k-th. The result
// keeps dimension h.Dim with zero coefficients on the eliminated variables.
// The positive entries of order must be 1, ..., n for some n.
func EliminateVariables(h polytope.HRep, order []int, cfg Config) (*polytope.HRep, *Report, error) {
	const caller = "EliminateVariables"
	e, err := newEngine(caller, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err = h.Validate(); err != nil {
		return nil, e.finish(), fmt.Errorf("%s: %w", caller, err)
	}
	eqs, ineqs, err := e.project(caller, h, order)
	if err != nil {
		return nil, e.finish(), err
	}
	projected, err := e.canonH(caller, h.Dim, eqs, ineqs)
	if err != nil {
		return nil, e.finish(), err
	}
	e.setDimensionH(projected)
	return projected, e.finish(), nil
}

// FindValidPoint returns a point satisfying every equality and inequality of
// h, or an error wrapping ErrEmptyPolyhedron or ErrDegenerateEqualities.
func FindValidPoint(h polytope.HRep, cfg Config) ([]rational.Value, error) {
	const caller = "FindValidPoint"
	e, err := newEngine(caller, cfg)
	if err != nil {
		return nil, err
	}
	if err = h.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", caller, err)
	}
	x, err := e.findValidPoint(caller, h)
	e.finish()
	return x, err
}

// Canonicalize scales every row of h to integers, signs equalities so that
// their first nonzero coefficient is positive, removes duplicates and sorts
// each block. It is idempotent.
func Canonicalize(h polytope.HRep, cfg Config) (*polytope.HRep, *Report, error) {
	const caller = "Canonicalize"
	e, err := newEngine(caller, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err = h.Validate(); err != nil {
		return nil, e.finish(), fmt.Errorf("%s: %w", caller, err)
	}
	eqs := make([][]rational.Value, len(h.Equalities))
	for i, row := range h.Equalities {
		eqs[i] = row.Values()
	}
	ineqs := make([][]rational.Value, len(h.Inequalities))
	for i, row := range h.Inequalities {
		ineqs[i] = row.Values()
	}
	canon, err := e.canonH(caller, h.Dim, eqs, ineqs)
	if err != nil {
		return nil, e.finish(), err
	}
	e.setDimensionH(canon)
	return canon, e.finish(), nil
}

// CanonicalizePoints scales every ray of v to integers, removes duplicates
// and sorts rays before points. It is idempotent.
func CanonicalizePoints(v polytope.VRep, cfg Config) (*polytope.VRep, *Report, error) {
	const caller = "CanonicalizePoints"
	e, err := newEngine(caller, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err = v.Validate(); err != nil {
		return nil, e.finish(), fmt.Errorf("%s: %w", caller, err)
	}
	var rays, points [][]rational.Value
	for _, row := range v.Rows {
		if row.IsPoint() {
			points = append(points, row.Coeffs)
		} else {
			rays = append(rays, row.Coeffs)
		}
	}
	canon, err := e.canonV(caller, v.Dim, rays, points)
	if err != nil {
		return nil, e.finish(), err
	}
	if err = e.setDimensionV(caller, canon); err != nil {
		return nil, e.finish(), err
	}
	return canon, e.finish(), nil
}
