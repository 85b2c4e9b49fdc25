package ddops

// Copyright (c) 2025 Colin McRae

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/predrag3141/polyrep/polytope"
	"github.com/predrag3141/polyrep/rational"
)

// rows builds rows from integer slices whose last entry is the constant.
func rows(ints ...[]int64) []polytope.Row {
	retVal := make([]polytope.Row, len(ints))
	for i, r := range ints {
		retVal[i] = polytope.IntRow(r[:len(r)-1], r[len(r)-1])
	}
	return retVal
}

func strs(rs []polytope.Row) []string {
	retVal := make([]string, len(rs))
	for i, r := range rs {
		retVal[i] = r.String()
	}
	return retVal
}

func square() polytope.VRep {
	return polytope.VRep{Dim: 2, Rows: []polytope.Row{
		polytope.PointRow(0, 0), polytope.PointRow(1, 0), polytope.PointRow(0, 1), polytope.PointRow(1, 1),
	}}
}

func cube() polytope.VRep {
	v := polytope.VRep{Dim: 3}
	for mask := 0; mask < 8; mask++ {
		v.Rows = append(v.Rows, polytope.PointRow(int64(mask&1), int64((mask>>1)&1), int64((mask>>2)&1)))
	}
	return v
}

// chsh returns the 16 deterministic local strategies of the two party, two
// setting, two outcome Bell scenario in the coordinates
// (a0, a1, b0, b1, a0b0, a0b1, a1b0, a1b1).
func chsh() polytope.VRep {
	v := polytope.VRep{Dim: 8}
	for mask := 0; mask < 16; mask++ {
		sign := func(bit int) int64 {
			if mask&(1<<bit) != 0 {
				return -1
			}
			return 1
		}
		a0, a1, b0, b1 := sign(0), sign(1), sign(2), sign(3)
		v.Rows = append(v.Rows, polytope.PointRow(a0, a1, b0, b1, a0*b0, a0*b1, a1*b0, a1*b1))
	}
	return v
}

func TestInterval(t *testing.T) {
	v := polytope.VRep{Dim: 1, Rows: []polytope.Row{polytope.PointRow(-1), polytope.PointRow(2)}}
	h, report, err := PointsToInequalities(v, Config{})
	require.NoError(t, err)
	require.Empty(t, h.Equalities)
	require.Equal(t, []string{"(-1 | 1)", "(1 | 2)"}, strs(h.Inequalities))
	require.NotEmpty(t, report.RunID)
	require.Equal(t, rational.Fixed, report.Mode)
	require.Zero(t, report.Promotions)
}

func TestSquare(t *testing.T) {
	h, _, err := PointsToInequalities(square(), Config{})
	require.NoError(t, err)
	require.Empty(t, h.Equalities)
	require.Equal(t, []string{"(-1, 0 | 0)", "(0, -1 | 0)", "(0, 1 | 1)", "(1, 0 | 1)"}, strs(h.Inequalities))

	v, _, err := InequalitiesToPoints(*h, Config{})
	require.NoError(t, err)
	require.Equal(t, []string{"(0, 0 | 1)", "(0, 1 | 1)", "(1, 0 | 1)", "(1, 1 | 1)"}, strs(v.Rows))
}

func TestEqualityAndRay(t *testing.T) {
	h := polytope.HRep{
		Dim:          2,
		Equalities:   rows([]int64{1, 0, 1}),
		Inequalities: rows([]int64{0, -1, 0}),
	}
	v, report, err := InequalitiesToPoints(h, Config{})
	require.NoError(t, err)
	require.Equal(t, []string{"(0, 1 | 0)", "(1, 0 | 1)"}, strs(v.Rows))
	require.Len(t, v.Rays(), 1)
	require.Len(t, v.Points(), 1)
	require.Positive(t, report.EqualitiesEliminated)

	// The same result with the valid point supplied
	h.ValidPoint = []rational.Value{rational.FromInt64(1), rational.FromInt64(5)}
	v, _, err = InequalitiesToPoints(h, Config{})
	require.NoError(t, err)
	require.Equal(t, []string{"(0, 1 | 0)", "(1, 0 | 1)"}, strs(v.Rows))
}

func TestHalfPlaneHasLines(t *testing.T) {
	h := polytope.HRep{Dim: 2, Inequalities: rows([]int64{0, -1, 0})}
	v, _, err := InequalitiesToPoints(h, Config{})
	require.NoError(t, err)
	require.Equal(t, []string{"(-1, 0 | 0)", "(0, 1 | 0)", "(1, 0 | 0)", "(0, 0 | 1)"}, strs(v.Rows))

	back, _, err := PointsToInequalities(*v, Config{})
	require.NoError(t, err)
	require.Empty(t, back.Equalities)
	require.Equal(t, []string{"(0, -1 | 0)"}, strs(back.Inequalities))
}

func TestCHSH(t *testing.T) {
	v := chsh()
	h, report, err := PointsToInequalities(v, Config{})
	require.NoError(t, err)
	require.Empty(t, h.Equalities)
	require.Len(t, h.Inequalities, 24)
	require.Zero(t, report.Promotions)
	got := strs(h.Inequalities)
	require.Contains(t, got, "(0, 0, 0, 0, 1, 1, 1, -1 | 2)")
	require.Contains(t, got, "(0, 0, 0, 0, -1, -1, -1, 1 | 2)")
	require.Contains(t, got, "(-1, 0, -1, 0, -1, 0, 0, 0 | 1)")
	numCHSH := 0
	for _, row := range h.Inequalities {
		require.Len(t, row.Coeffs, 8)
		switch row.Const.String() {
		case "2":
			numCHSH++
		case "1":
		default:
			t.Errorf("unexpected constant in %s", row)
		}
		for _, g := range v.Rows {
			require.LessOrEqual(t, polytope.Dot(row.Coeffs, g.Coeffs).Cmp(row.Const), 0)
		}
	}
	require.Equal(t, 8, numCHSH)

	// A capacity of 1 forces promotion but not a different answer
	forced, report, err := PointsToInequalities(v, Config{FixedWidthLimit: 1})
	require.NoError(t, err)
	require.GreaterOrEqual(t, report.Promotions, 1)
	require.Equal(t, rational.Arbitrary, report.Mode)
	require.Equal(t, got, strs(forced.Inequalities))

	long, report, err := PointsToInequalities(v, Config{LongArithmetic: true})
	require.NoError(t, err)
	require.Zero(t, report.Promotions)
	require.Equal(t, got, strs(long.Inequalities))

	_, _, err = PointsToInequalities(v, Config{FixedWidthLimit: 1, DisablePromotion: true})
	require.ErrorIs(t, err, ErrArithmeticOverflow)
}

func TestDuplicates(t *testing.T) {
	v := square()
	v.Rows = append(v.Rows, polytope.PointRow(1, 1))
	h, _, err := PointsToInequalities(v, Config{})
	require.NoError(t, err)
	require.Len(t, h.Inequalities, 4)

	h.Inequalities = append(h.Inequalities, h.Inequalities[2])
	points, _, err := InequalitiesToPoints(*h, Config{})
	require.NoError(t, err)
	require.Len(t, points.Rows, 4)

	canon, _, err := Canonicalize(*h, Config{})
	require.NoError(t, err)
	require.Len(t, canon.Inequalities, 4)
}

func TestRoundTripCube(t *testing.T) {
	h, _, err := PointsToInequalities(cube(), Config{})
	require.NoError(t, err)
	require.Len(t, h.Inequalities, 6)
	v, _, err := InequalitiesToPoints(*h, Config{})
	require.NoError(t, err)
	want, _, err := CanonicalizePoints(cube(), Config{})
	require.NoError(t, err)
	require.Equal(t, strs(want.Rows), strs(v.Rows))
	back, _, err := PointsToInequalities(*v, Config{})
	require.NoError(t, err)
	require.Equal(t, strs(h.Inequalities), strs(back.Inequalities))
}

func TestLowerDimensional(t *testing.T) {
	// A triangle in the plane x + y + z = 1
	v := polytope.VRep{Dim: 3, Rows: []polytope.Row{
		polytope.PointRow(1, 0, 0), polytope.PointRow(0, 1, 0), polytope.PointRow(0, 0, 1),
	}}
	h, _, err := PointsToInequalities(v, Config{})
	require.NoError(t, err)
	require.Len(t, h.Equalities, 1)
	require.Equal(t, "(1, 1, 1 | 1)", h.Equalities[0].String())
	require.Len(t, h.Inequalities, 3)
	for _, row := range append(h.Equalities, h.Inequalities...) {
		require.Len(t, row.Coeffs, 3)
	}

	back, _, err := InequalitiesToPoints(*h, Config{})
	require.NoError(t, err)
	require.Equal(t, []string{"(0, 0, 1 | 1)", "(0, 1, 0 | 1)", "(1, 0, 0 | 1)"}, strs(back.Rows))
}

func TestCone(t *testing.T) {
	v := polytope.VRep{Dim: 2, Rows: []polytope.Row{polytope.RayRow(1, 0), polytope.RayRow(1, 1)}}
	h, _, err := PointsToInequalities(v, Config{})
	require.NoError(t, err)
	require.Equal(t, []string{"(-1, 1 | 0)", "(0, -1 | 0)"}, strs(h.Inequalities))

	back, _, err := InequalitiesToPoints(*h, Config{})
	require.NoError(t, err)
	require.Equal(t, []string{"(1, 0 | 0)", "(1, 1 | 0)", "(0, 0 | 1)"}, strs(back.Rows))
}

func TestDimension(t *testing.T) {
	_, report, err := PointsToInequalities(square(), Config{})
	require.NoError(t, err)
	require.Equal(t, 2, report.Dimension)

	triangle := polytope.VRep{Dim: 3, Rows: []polytope.Row{
		polytope.PointRow(1, 0, 0), polytope.PointRow(0, 1, 0), polytope.PointRow(0, 0, 1),
	}}
	h, report, err := PointsToInequalities(triangle, Config{})
	require.NoError(t, err)
	require.Equal(t, 2, report.Dimension)
	_, report, err = InequalitiesToPoints(*h, Config{})
	require.NoError(t, err)
	require.Equal(t, 2, report.Dimension)

	// A half line in the plane x = 1
	halfLine := polytope.HRep{
		Dim:          2,
		Equalities:   rows([]int64{1, 0, 1}),
		Inequalities: rows([]int64{0, -1, 0}),
	}
	_, report, err = InequalitiesToPoints(halfLine, Config{})
	require.NoError(t, err)
	require.Equal(t, 1, report.Dimension)
	_, report, err = Canonicalize(halfLine, Config{})
	require.NoError(t, err)
	require.Equal(t, 1, report.Dimension)

	cone := polytope.VRep{Dim: 2, Rows: []polytope.Row{polytope.RayRow(1, 0), polytope.RayRow(1, 1)}}
	_, report, err = CanonicalizePoints(cone, Config{})
	require.NoError(t, err)
	require.Equal(t, 2, report.Dimension)

	point := polytope.VRep{Dim: 2, Rows: []polytope.Row{polytope.PointRow(3, 4)}}
	_, report, err = CanonicalizePoints(point, Config{})
	require.NoError(t, err)
	require.Equal(t, 0, report.Dimension)
}

func TestChernikovParity(t *testing.T) {
	simplex := polytope.VRep{Dim: 3, Rows: []polytope.Row{
		polytope.PointRow(0, 0, 0), polytope.PointRow(2, 0, 0), polytope.PointRow(0, 3, 0), polytope.PointRow(0, 0, 5),
	}}
	for _, v := range []polytope.VRep{square(), cube(), simplex} {
		on, _, err := PointsToInequalities(v, Config{})
		require.NoError(t, err)
		off, _, err := PointsToInequalities(v, Config{DisableChernikov: true})
		require.NoError(t, err)
		greedy, _, err := PointsToInequalities(v, Config{OptimizeOrder: true})
		require.NoError(t, err)
		require.Equal(t, strs(on.Inequalities), strs(off.Inequalities))
		require.Equal(t, strs(on.Inequalities), strs(greedy.Inequalities))
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	h := polytope.HRep{
		Dim: 2,
		Equalities: []polytope.Row{{
			Coeffs: []rational.Value{rational.MustNew(-1, 2), rational.MustNew(1, 3)},
			Const:  rational.MustNew(5, 6),
		}},
		Inequalities: []polytope.Row{
			{Coeffs: []rational.Value{rational.FromInt64(4), rational.FromInt64(-2)}, Const: rational.FromInt64(6)},
			{Coeffs: []rational.Value{rational.MustNew(-1, 4), rational.FromInt64(0)}, Const: rational.FromInt64(0)},
		},
	}
	once, _, err := Canonicalize(h, Config{})
	require.NoError(t, err)
	require.Equal(t, []string{"(3, -2 | -5)"}, strs(once.Equalities))
	require.Equal(t, []string{"(-1, 0 | 0)", "(2, -1 | 3)"}, strs(once.Inequalities))
	twice, _, err := Canonicalize(*once, Config{})
	require.NoError(t, err)
	require.Equal(t, strs(once.Equalities), strs(twice.Equalities))
	require.Equal(t, strs(once.Inequalities), strs(twice.Inequalities))

	v, _, err := InequalitiesToPoints(polytope.HRep{Dim: 2, Inequalities: rows(
		[]int64{-1, 0, 0}, []int64{0, -1, 0}, []int64{2, 1, 1},
	)}, Config{})
	require.NoError(t, err)
	require.Equal(t, []string{"(0, 0 | 1)", "(0, 1 | 1)", "(1/2, 0 | 1)"}, strs(v.Rows))
	again, _, err := CanonicalizePoints(*v, Config{})
	require.NoError(t, err)
	require.Equal(t, strs(v.Rows), strs(again.Rows))
}

func TestIntegerizationPolicy(t *testing.T) {
	// The denominators 7, 11 and 13 have a least common multiple above 1000
	h := polytope.HRep{Dim: 2, Inequalities: []polytope.Row{{
		Coeffs: []rational.Value{rational.MustNew(1, 7), rational.MustNew(1, 11)},
		Const:  rational.MustNew(1, 13),
	}}}
	cfg := Config{FixedWidthLimit: 1000, DisablePromotion: true}
	canon, report, err := Canonicalize(h, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"(1/7, 1/11 | 1/13)"}, strs(canon.Inequalities))
	require.Len(t, report.Fractional, 1)
	require.Equal(t, "inequality", report.Fractional[0].Kind)

	cfg.StrictIntegers = true
	_, _, err = Canonicalize(h, cfg)
	require.ErrorIs(t, err, ErrIntegerizationOverflow)

	canon, report, err = Canonicalize(h, Config{FixedWidthLimit: 1000})
	require.NoError(t, err)
	require.Equal(t, []string{"(143, 91 | 77)"}, strs(canon.Inequalities))
	require.Empty(t, report.Fractional)
}

func TestInvalidInteriorPoint(t *testing.T) {
	h := polytope.HRep{
		Dim:          2,
		Inequalities: rows([]int64{-1, 0, 0}, []int64{0, -1, 0}, []int64{1, 0, 1}, []int64{0, 1, 1}),
		ValidPoint:   []rational.Value{rational.FromInt64(2), rational.FromInt64(0)},
	}
	_, report, err := InequalitiesToPoints(h, Config{})
	require.ErrorIs(t, err, ErrInvalidInteriorPoint)
	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	require.Equal(t, "inequality", rowErr.Kind)
	require.Equal(t, 2, rowErr.Row)
	require.Zero(t, report.EqualitiesEliminated)
	require.Zero(t, report.VariablesEliminated)
	require.Zero(t, report.PeakRows)

	h = polytope.HRep{
		Dim:        2,
		Equalities: rows([]int64{1, 1, 1}),
		ValidPoint: []rational.Value{rational.MustNew(1, 2), rational.MustNew(1, 3)},
	}
	_, _, err = InequalitiesToPoints(h, Config{})
	require.True(t, errors.As(err, &rowErr))
	require.Equal(t, "equality", rowErr.Kind)
	require.Equal(t, 0, rowErr.Row)
}

func TestErrors(t *testing.T) {
	degenerate := polytope.HRep{Dim: 2, Equalities: rows([]int64{1, 1, 1}, []int64{2, 2, 3})}
	_, _, err := InequalitiesToPoints(degenerate, Config{})
	require.ErrorIs(t, err, ErrDegenerateEqualities)
	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	require.Equal(t, 1, rowErr.Row)

	empty := polytope.HRep{Dim: 1, Inequalities: rows([]int64{1, -1}, []int64{-1, 0})}
	_, _, err = InequalitiesToPoints(empty, Config{})
	require.ErrorIs(t, err, ErrEmptyPolyhedron)

	_, _, err = EliminateVariables(empty, []int{1, 1}, Config{})
	require.ErrorIs(t, err, ErrMalformedEliminationOrder)

	_, _, err = PointsToInequalities(cube(), Config{MaxRows: 5})
	require.ErrorIs(t, err, ErrResourceExhausted)

	_, _, err = PointsToInequalities(polytope.VRep{Dim: 2, Rows: rows([]int64{1, 0})}, Config{})
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, _, err = PointsToInequalities(polytope.VRep{Dim: 2}, Config{})
	require.ErrorIs(t, err, ErrEmptyPolyhedron)

	_, _, err = PointsToInequalities(square(), Config{FixedWidthLimit: -3})
	require.Error(t, err)
}

func TestEliminateVariables(t *testing.T) {
	h, _, err := PointsToInequalities(cube(), Config{})
	require.NoError(t, err)
	projected, report, err := EliminateVariables(*h, []int{0, 0, 1}, Config{})
	require.NoError(t, err)
	require.Equal(t, 3, projected.Dim)
	require.Empty(t, projected.Equalities)
	require.Equal(t, []string{
		"(-1, 0, 0 | 0)", "(0, -1, 0 | 0)", "(0, 1, 0 | 1)", "(1, 0, 0 | 1)",
	}, strs(projected.Inequalities))
	require.Equal(t, 1, report.VariablesEliminated)

	simplex := polytope.HRep{
		Dim:          3,
		Equalities:   rows([]int64{1, 1, 1, 1}),
		Inequalities: rows([]int64{-1, 0, 0, 0}, []int64{0, -1, 0, 0}, []int64{0, 0, -1, 0}),
	}
	projected, _, err = EliminateVariables(simplex, []int{0, 0, 1}, Config{})
	require.NoError(t, err)
	require.Empty(t, projected.Equalities)
	require.Equal(t, []string{"(-1, 0, 0 | 0)", "(0, -1, 0 | 0)", "(1, 1, 0 | 1)"}, strs(projected.Inequalities))

	// Keeping every variable only canonicalizes
	kept, _, err := EliminateVariables(simplex, []int{0, 0, 0}, Config{})
	require.NoError(t, err)
	require.Equal(t, []string{"(1, 1, 1 | 1)"}, strs(kept.Equalities))
	require.Len(t, kept.Inequalities, 3)
}

func TestFindValidPoint(t *testing.T) {
	h := polytope.HRep{
		Dim:          2,
		Equalities:   rows([]int64{1, 0, 1}),
		Inequalities: rows([]int64{0, -1, 0}),
	}
	x, err := FindValidPoint(h, Config{})
	require.NoError(t, err)
	require.Equal(t, "1", x[0].String())
	require.Equal(t, "0", x[1].String())

	triangle := polytope.HRep{
		Dim:          2,
		Inequalities: rows([]int64{-1, 0, -1}, []int64{0, -1, -1}, []int64{1, 1, 4}),
	}
	x, err = FindValidPoint(triangle, Config{})
	require.NoError(t, err)
	require.Equal(t, -1, triangle.Satisfies(x))
	require.Equal(t, "3/2", x[0].String())
	require.Equal(t, "2", x[1].String())

	_, err = FindValidPoint(polytope.HRep{Dim: 1, Inequalities: rows([]int64{1, -1}, []int64{-1, 0})}, Config{})
	require.ErrorIs(t, err, ErrEmptyPolyhedron)
}
