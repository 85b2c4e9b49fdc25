package tableau

// Copyright (c) 2025 Colin McRae

import (
	"fmt"

	"github.com/predrag3141/polyrep/polytope"
	"github.com/predrag3141/polyrep/rational"
)

// BuildHull lays out the system whose projection onto x is conv(points) +
// cone(rays) for the generators g_1, ..., g_n of v. The columns are
// [lambda_1 ... lambda_n | x_1 ... x_d | const], the lambda columns being
// auxiliary. The rows are
//
//	sum_k lambda_k g_k[i] - x_i = 0   for i = 1, ..., d
//	sum_{k a point} lambda_k    = 1   unless every generator is a ray
//	-lambda_k                  <= 0   for k = 1, ..., n
//
// The system is tracked by ctx, which is promoted if the input exceeds its
// capacity.
func BuildHull(ctx *rational.Context, v polytope.VRep, limits Limits) (*System, *VarMap, error) {
	if err := v.Validate(); err != nil {
		return nil, nil, fmt.Errorf("BuildHull: %w", err)
	}
	numGens, dim := len(v.Rows), v.Dim
	numPoints := 0
	for _, g := range v.Rows {
		if g.IsPoint() {
			numPoints++
		}
	}
	cols := make([]Column, numGens+dim)
	for k := 0; k < numGens; k++ {
		cols[k] = Column{Orig: k, Aux: true}
	}
	for i := 0; i < dim; i++ {
		cols[numGens+i] = Column{Orig: i}
	}
	s := NewSystem(numGens+dim+1, limits)
	minusOne, one := rational.FromInt64(-1), rational.FromInt64(1)
	vals := make([]rational.Value, s.Cols())
	for i := 0; i < dim; i++ {
		clear(vals)
		for k, g := range v.Rows {
			vals[k] = g.Coeffs[i]
		}
		vals[numGens+i] = minusOne
		if _, err := s.Append(Equality, vals); err != nil {
			return nil, nil, fmt.Errorf("BuildHull: equality %d: %w", i, err)
		}
	}
	if numPoints > 0 {
		clear(vals)
		for k, g := range v.Rows {
			if g.IsPoint() {
				vals[k] = one
			}
		}
		vals[numGens+dim] = one
		if _, err := s.Append(Equality, vals); err != nil {
			return nil, nil, fmt.Errorf("BuildHull: convexity equality: %w", err)
		}
	}
	for k := 0; k < numGens; k++ {
		clear(vals)
		vals[k] = minusOne
		if _, err := s.Append(Inequality, vals); err != nil {
			return nil, nil, fmt.Errorf("BuildHull: inequality %d: %w", k, err)
		}
	}
	ctx.Track(s)
	if err := ctx.Admit(s); err != nil {
		return nil, nil, fmt.Errorf("BuildHull: %w", err)
	}
	return s, NewVarMap(cols), nil
}

// BuildProjection lays out the equalities and inequalities of h with working
// column j holding original variable perm[j]. The first numAux columns are
// auxiliary, so they are pivoted on first and eliminated. Equalities come
// before inequalities, each in input order.
func BuildProjection(
	ctx *rational.Context, h polytope.HRep, perm []int, numAux int, limits Limits,
) (*System, *VarMap, error) {
	if err := h.Validate(); err != nil {
		return nil, nil, fmt.Errorf("BuildProjection: %w", err)
	}
	if len(perm) != h.Dim {
		return nil, nil, fmt.Errorf(
			"BuildProjection: permutation has %d entries but the dimension is %d", len(perm), h.Dim,
		)
	}
	cols := make([]Column, h.Dim)
	for j, orig := range perm {
		cols[j] = Column{Orig: orig, Aux: j < numAux}
	}
	s := NewSystem(h.Dim+1, limits)
	vals := make([]rational.Value, s.Cols())
	appendRows := func(kind Kind, rows []polytope.Row) error {
		for i, row := range rows {
			for j, orig := range perm {
				vals[j] = row.Coeffs[orig]
			}
			vals[h.Dim] = row.Const
			if _, err := s.Append(kind, vals); err != nil {
				return fmt.Errorf("%s %d: %w", kind, i, err)
			}
		}
		return nil
	}
	if err := appendRows(Equality, h.Equalities); err != nil {
		return nil, nil, fmt.Errorf("BuildProjection: %w", err)
	}
	if err := appendRows(Inequality, h.Inequalities); err != nil {
		return nil, nil, fmt.Errorf("BuildProjection: %w", err)
	}
	ctx.Track(s)
	if err := ctx.Admit(s); err != nil {
		return nil, nil, fmt.Errorf("BuildProjection: %w", err)
	}
	return s, NewVarMap(cols), nil
}

// BuildSystem lays out h with the identity column order and no auxiliary
// columns.
func BuildSystem(ctx *rational.Context, h polytope.HRep, limits Limits) (*System, *VarMap, error) {
	if err := h.Validate(); err != nil {
		return nil, nil, fmt.Errorf("BuildSystem: %w", err)
	}
	perm := make([]int, h.Dim)
	for j := range perm {
		perm[j] = j
	}
	s, m, err := BuildProjection(ctx, h, perm, 0, limits)
	if err != nil {
		return nil, nil, fmt.Errorf("BuildSystem: %w", err)
	}
	return s, m, nil
}
