package ddops

// Copyright (c) 2025 Colin McRae

import (
	"errors"
	"fmt"
	"sort"

	"github.com/predrag3141/polyrep/polytope"
	"github.com/predrag3141/polyrep/rational"
)

// canonRow is a row being canonicalized, with whether it could be scaled to
// integers.
type canonRow struct {
	vals       []rational.Value
	fractional bool
}

// lexLess orders rows by coefficients and then by constant, comparing
// numerically.
func lexLess(a, b []rational.Value) bool {
	for j := range a {
		if c := a[j].Cmp(b[j]); c != 0 {
			return c < 0
		}
	}
	return false
}

func sameRow(a, b []rational.Value) bool {
	for j := range a {
		if !a[j].Equal(b[j]) {
			return false
		}
	}
	return true
}

// integerize scales vals by the minimal positive factor making every entry
// an integer. If that is impossible within fixed width, vals is returned
// unchanged with fractional set, unless StrictIntegers is configured.
func (e *engine) integerize(caller, kind string, index int, vals []rational.Value) (canonRow, error) {
	scaled, err := rational.ScaleToIntegers(e.ctx, vals)
	if err == nil {
		return canonRow{vals: scaled}, nil
	}
	if !errors.Is(err, rational.ErrIntegerizationOverflow) || e.cfg.StrictIntegers {
		return canonRow{}, fmt.Errorf("%s: %w", caller, &RowError{
			Phase: "canonicalize", Kind: kind, Row: index, Err: err,
		})
	}
	return canonRow{vals: scaled, fractional: true}, nil
}

// block sorts rows, removes exact duplicates and records the rows left
// fractional in the report.
func (e *engine) block(kind string, rows []canonRow) [][]rational.Value {
	sort.SliceStable(rows, func(i, j int) bool { return lexLess(rows[i].vals, rows[j].vals) })
	retVal := make([][]rational.Value, 0, len(rows))
	for i, row := range rows {
		if (i > 0) && sameRow(rows[i-1].vals, row.vals) {
			continue
		}
		if row.fractional {
			e.report.Fractional = append(e.report.Fractional, RowError{
				Phase: "canonicalize", Kind: kind, Row: len(retVal), Err: rational.ErrIntegerizationOverflow,
			})
		}
		retVal = append(retVal, row.vals)
	}
	return retVal
}

// canonH returns the canonical H-representation with the given rows, each
// holding dim coefficients and a constant. Equalities are signed so that
// their first nonzero coefficient is positive.
func (e *engine) canonH(caller string, dim int, eqs, ineqs [][]rational.Value) (*polytope.HRep, error) {
	caller = fmt.Sprintf("%s-canonH", caller)
	eqRows := make([]canonRow, 0, len(eqs))
	for i, vals := range eqs {
		row, err := e.integerize(caller, "equality", i, vals)
		if err != nil {
			return nil, err
		}
		if j := firstNonzeroCoeff(row.vals); (j >= 0) && (row.vals[j].Sign() < 0) {
			for k := range row.vals {
				row.vals[k] = row.vals[k].Neg()
			}
		}
		eqRows = append(eqRows, row)
	}
	ineqRows := make([]canonRow, 0, len(ineqs))
	for i, vals := range ineqs {
		row, err := e.integerize(caller, "inequality", i, vals)
		if err != nil {
			return nil, err
		}
		ineqRows = append(ineqRows, row)
	}
	retVal := &polytope.HRep{Dim: dim}
	for _, vals := range e.block("equality", eqRows) {
		retVal.Equalities = append(retVal.Equalities, polytope.FromValues(vals))
	}
	for _, vals := range e.block("inequality", ineqRows) {
		retVal.Inequalities = append(retVal.Inequalities, polytope.FromValues(vals))
	}
	return retVal, nil
}

// canonV returns the canonical V-representation: rays scaled to integers,
// then points with reduced fractional coordinates and constant 1. Rows hold
// dim coordinates and no constant.
func (e *engine) canonV(caller string, dim int, rays, points [][]rational.Value) (*polytope.VRep, error) {
	caller = fmt.Sprintf("%s-canonV", caller)
	rayRows := make([]canonRow, 0, len(rays))
	for i, coords := range rays {
		if isZero(coords) {
			continue
		}
		row, err := e.integerize(caller, "ray", i, coords)
		if err != nil {
			return nil, err
		}
		rayRows = append(rayRows, row)
	}
	pointRows := make([]canonRow, 0, len(points))
	for _, coords := range points {
		vals := make([]rational.Value, len(coords))
		copy(vals, coords)
		pointRows = append(pointRows, canonRow{vals: vals})
	}
	retVal := &polytope.VRep{Dim: dim}
	for _, coords := range e.block("ray", rayRows) {
		retVal.Rows = append(retVal.Rows, polytope.Row{Coeffs: coords, Const: rational.Value{}})
	}
	for _, coords := range e.block("point", pointRows) {
		retVal.Rows = append(retVal.Rows, polytope.Row{Coeffs: coords, Const: rational.FromInt64(1)})
	}
	return retVal, nil
}

func firstNonzeroCoeff(vals []rational.Value) int {
	for j := 0; j < len(vals)-1; j++ {
		if !vals[j].IsZero() {
			return j
		}
	}
	return -1
}
