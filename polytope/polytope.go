// Package polytope defines the rows exchanged with callers: H-representations
// made of equalities and inequalities, and V-representations made of points
// and rays.
package polytope

// Copyright (c) 2025 Colin McRae

import (
	"errors"
	"fmt"
	"strings"

	"github.com/predrag3141/polyrep/rational"
)

// Errors returned by Validate.
var (
	ErrDimensionMismatch = errors.New("row length does not match dimension")
	ErrInvalidGenerator  = errors.New("generator constant must be 0 (ray) or 1 (point)")
)

// Row is coeffs . x <= const, coeffs . x = const, a point (const 1) or a ray
// (const 0), depending on where it appears.
type Row struct {
	Coeffs []rational.Value `json:"coeffs"`
	Const  rational.Value   `json:"const"`
}

// IntRow returns the row with integer coefficients and constant.
func IntRow(coeffs []int64, constant int64) Row {
	row := Row{Coeffs: make([]rational.Value, len(coeffs)), Const: rational.FromInt64(constant)}
	for i, c := range coeffs {
		row.Coeffs[i] = rational.FromInt64(c)
	}
	return row
}

// PointRow returns the point with integer coordinates.
func PointRow(coords ...int64) Row {
	return IntRow(coords, 1)
}

// RayRow returns the ray with integer direction.
func RayRow(dir ...int64) Row {
	return IntRow(dir, 0)
}

// FromValues splits vals into coefficients and a trailing constant. The row
// does not alias vals.
func FromValues(vals []rational.Value) Row {
	n := len(vals) - 1
	row := Row{Coeffs: make([]rational.Value, n), Const: vals[n]}
	copy(row.Coeffs, vals[:n])
	return row
}

// Values returns the coefficients followed by the constant in a new slice.
func (r Row) Values() []rational.Value {
	retVal := make([]rational.Value, len(r.Coeffs)+1)
	copy(retVal, r.Coeffs)
	retVal[len(r.Coeffs)] = r.Const
	return retVal
}

// IsPoint returns whether the generator r is a point rather than a ray.
func (r Row) IsPoint() bool {
	return !r.Const.IsZero()
}

// Equal returns whether r and s have equal entries.
func (r Row) Equal(s Row) bool {
	if (len(r.Coeffs) != len(s.Coeffs)) || !r.Const.Equal(s.Const) {
		return false
	}
	for i := range r.Coeffs {
		if !r.Coeffs[i].Equal(s.Coeffs[i]) {
			return false
		}
	}
	return true
}

// String formats r as "(c1, c2, ... | const)".
func (r Row) String() string {
	parts := make([]string, len(r.Coeffs))
	for i, c := range r.Coeffs {
		parts[i] = c.String()
	}
	return fmt.Sprintf("(%s | %s)", strings.Join(parts, ", "), r.Const.String())
}

// HRep is the polyhedron {x : Equalities hold with equality and
// Inequalities hold with <=}. ValidPoint, if not nil, is a point of the
// polyhedron used to center the polar transform.
type HRep struct {
	Dim          int              `json:"dim"`
	Equalities   []Row            `json:"equalities"`
	Inequalities []Row            `json:"inequalities"`
	ValidPoint   []rational.Value `json:"validPoint,omitempty"`
}

// Validate checks that every row and the valid point have Dim entries.
func (h HRep) Validate() error {
	if h.Dim < 0 {
		return fmt.Errorf("HRep: dimension %d < 0: %w", h.Dim, ErrDimensionMismatch)
	}
	for i, row := range h.Equalities {
		if len(row.Coeffs) != h.Dim {
			return fmt.Errorf(
				"HRep: equality %d has %d coefficients, dimension is %d: %w",
				i, len(row.Coeffs), h.Dim, ErrDimensionMismatch,
			)
		}
	}
	for i, row := range h.Inequalities {
		if len(row.Coeffs) != h.Dim {
			return fmt.Errorf(
				"HRep: inequality %d has %d coefficients, dimension is %d: %w",
				i, len(row.Coeffs), h.Dim, ErrDimensionMismatch,
			)
		}
	}
	if (h.ValidPoint != nil) && (len(h.ValidPoint) != h.Dim) {
		return fmt.Errorf(
			"HRep: valid point has %d coordinates, dimension is %d: %w",
			len(h.ValidPoint), h.Dim, ErrDimensionMismatch,
		)
	}
	return nil
}

// VRep is the polyhedron conv(points) + cone(rays). Rows with constant 1
// are points and rows with constant 0 are rays.
type VRep struct {
	Dim  int   `json:"dim"`
	Rows []Row `json:"rows"`
}

// Validate checks that every row has Dim coefficients and a constant of 0 or 1.
func (v VRep) Validate() error {
	if v.Dim < 0 {
		return fmt.Errorf("VRep: dimension %d < 0: %w", v.Dim, ErrDimensionMismatch)
	}
	one := rational.FromInt64(1)
	for i, row := range v.Rows {
		if len(row.Coeffs) != v.Dim {
			return fmt.Errorf(
				"VRep: row %d has %d coefficients, dimension is %d: %w",
				i, len(row.Coeffs), v.Dim, ErrDimensionMismatch,
			)
		}
		if !row.Const.IsZero() && !row.Const.Equal(one) {
			return fmt.Errorf("VRep: row %d has constant %s: %w", i, row.Const, ErrInvalidGenerator)
		}
	}
	return nil
}

// Points returns the point rows of v.
func (v VRep) Points() []Row {
	retVal := make([]Row, 0, len(v.Rows))
	for _, row := range v.Rows {
		if row.IsPoint() {
			retVal = append(retVal, row)
		}
	}
	return retVal
}

// Rays returns the ray rows of v.
func (v VRep) Rays() []Row {
	retVal := make([]Row, 0, len(v.Rows))
	for _, row := range v.Rows {
		if !row.IsPoint() {
			retVal = append(retVal, row)
		}
	}
	return retVal
}

// Satisfies returns -1 if x satisfies every row of h, otherwise the index of
// the first violated row, counting equalities first and then inequalities.
// x must have h.Dim coordinates.
func (h HRep) Satisfies(x []rational.Value) int {
	for i, row := range h.Equalities {
		if Dot(row.Coeffs, x).Cmp(row.Const) != 0 {
			return i
		}
	}
	for i, row := range h.Inequalities {
		if Dot(row.Coeffs, x).Cmp(row.Const) > 0 {
			return len(h.Equalities) + i
		}
	}
	return -1
}

// Dot returns the exact inner product of a and x in arbitrary precision.
// It is meant for checking results, not for use inside a conversion.
func Dot(a, x []rational.Value) rational.Value {
	arith := rational.NewContext(rational.WithArbitraryPrecision()).Arith()
	sum := rational.Value{}
	for i := range a {
		sum = arith.Add(sum, arith.Mul(a[i], x[i]))
	}
	return sum
}
