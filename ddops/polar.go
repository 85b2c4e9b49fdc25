package ddops

// Copyright (c) 2025 Colin McRae

import (
	"errors"
	"fmt"

	"github.com/predrag3141/polyrep/polytope"
	"github.com/predrag3141/polyrep/rational"
	"github.com/predrag3141/polyrep/tableau"
)

// recenter returns h translated so that x0 is the origin, replacing each
// constant b by b - a . x0. The first equality not satisfied exactly by x0,
// or else the first inequality violated by x0, fails with
// ErrInvalidInteriorPoint.
func (e *engine) recenter(caller string, h polytope.HRep, x0 []rational.Value) (polytope.HRep, error) {
	caller = fmt.Sprintf("%s-recenter", caller)
	shift := func(kind string, rows []polytope.Row) ([]polytope.Row, error) {
		shifted := make([]polytope.Row, len(rows))
		for i, row := range rows {
			lhs, err := e.dot(caller, row.Coeffs, x0)
			if err != nil {
				return nil, err
			}
			var slack rational.Value
			if err = e.ctx.Do(func(arith rational.Arith) { slack = arith.Sub(row.Const, lhs) }); err != nil {
				return nil, fmt.Errorf("%s: %w", caller, err)
			}
			if ((kind == "equality") && !slack.IsZero()) || (slack.Sign() < 0) {
				return nil, fmt.Errorf("%s: %w", caller, &RowError{
					Phase: "valid point", Kind: kind, Row: i, Err: ErrInvalidInteriorPoint,
				})
			}
			shifted[i] = polytope.Row{Coeffs: row.Coeffs, Const: slack}
		}
		return shifted, nil
	}
	eqs, err := shift("equality", h.Equalities)
	if err != nil {
		return polytope.HRep{}, err
	}
	ineqs, err := shift("inequality", h.Inequalities)
	if err != nil {
		return polytope.HRep{}, err
	}
	return polytope.HRep{Dim: h.Dim, Equalities: eqs, Inequalities: ineqs}, nil
}

// centered returns the valid point to use for h, with h recentered at it. A
// supplied valid point must satisfy h. Without one, the origin is used if it
// satisfies h and otherwise a point is searched for.
func (e *engine) centered(caller string, h polytope.HRep) ([]rational.Value, polytope.HRep, error) {
	if h.ValidPoint != nil {
		rh, err := e.recenter(caller, h, h.ValidPoint)
		if err != nil {
			return nil, polytope.HRep{}, err
		}
		return h.ValidPoint, rh, nil
	}
	origin := make([]rational.Value, h.Dim)
	rh, err := e.recenter(caller, h, origin)
	if err == nil {
		return origin, rh, nil
	}
	if !errors.Is(err, ErrInvalidInteriorPoint) {
		return nil, polytope.HRep{}, err
	}
	x0, err := e.findValidPoint(caller, h)
	if err != nil {
		return nil, polytope.HRep{}, err
	}
	e.logger.Debug("valid point found", "point", fmt.Sprint(x0))
	if rh, err = e.recenter(caller, h, x0); err != nil {
		return nil, polytope.HRep{}, err
	}
	return x0, rh, nil
}

// toPoints returns the extreme rays and points of h, lines being given as
// pairs of opposite rays. Rows have h.Dim entries and no constant.
func (e *engine) toPoints(caller string, h polytope.HRep) (rays, points [][]rational.Value, err error) {
	caller = fmt.Sprintf("%s-toPoints", caller)
	x0, rh, err := e.centered(caller, h)
	if err != nil {
		return nil, nil, err
	}
	s, m, err := tableau.BuildSystem(e.ctx, rh, e.cfg.limits())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", caller, err)
	}
	defer e.ctx.Untrack(s)
	rec, err := e.gauss(caller, s, m)
	if err != nil {
		return nil, nil, err
	}

	// Polar of the recentered polyhedron in the live columns
	live := m.Live()
	constCol := s.Cols() - 1
	polar := polytope.VRep{Dim: len(live)}
	for _, hnd := range s.HandlesOf(tableau.Inequality) {
		row := s.Row(hnd)
		a := make([]rational.Value, len(live))
		for i, col := range live {
			a[i] = row[col]
		}
		if isZero(a) {
			continue
		}
		b := row[constCol]
		if b.IsZero() {
			polar.Rows = append(polar.Rows, polytope.Row{Coeffs: a, Const: rational.Value{}})
			continue
		}
		scaled, err := e.scale(caller, a, b)
		if err != nil {
			return nil, nil, err
		}
		polar.Rows = append(polar.Rows, polytope.Row{Coeffs: scaled, Const: rational.FromInt64(1)})
	}
	polar.Rows = append(polar.Rows, polytope.Row{
		Coeffs: make([]rational.Value, len(live)), Const: rational.FromInt64(1),
	})
	e.logger.Debug("polar generators", "dim", polar.Dim, "generators", len(polar.Rows))

	hr, err := e.hull(caller, polar)
	if err != nil {
		return nil, nil, err
	}

	// Facets c . y <= delta of the polar are the points c / delta and the
	// rays c of h; equalities c . y = 0 are lines.
	var reducedRays, reducedPoints [][]rational.Value
	for _, row := range hr.inequalities {
		c, delta := row[:polar.Dim], row[polar.Dim]
		if delta.IsZero() {
			reducedRays = append(reducedRays, c)
			continue
		}
		point, err := e.scale(caller, c, delta)
		if err != nil {
			return nil, nil, err
		}
		reducedPoints = append(reducedPoints, point)
	}
	for _, row := range hr.equalities {
		c := row[:polar.Dim]
		negated := make([]rational.Value, len(c))
		for i := range c {
			negated[i] = c[i].Neg()
		}
		reducedRays = append(reducedRays, c, negated)
	}

	for _, reduced := range reducedRays {
		ray, err := e.blowUp(caller, s, rec, live, reduced, 0)
		if err != nil {
			return nil, nil, err
		}
		rays = append(rays, ray)
	}
	for _, reduced := range reducedPoints {
		point, err := e.blowUp(caller, s, rec, live, reduced, 1)
		if err != nil {
			return nil, nil, err
		}
		shifted := make([]rational.Value, len(point))
		if err = e.ctx.Do(func(arith rational.Arith) {
			for i := range point {
				shifted[i] = arith.Add(point[i], x0[i])
			}
		}); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", caller, err)
		}
		points = append(points, shifted)
	}
	if len(points) == 0 {
		origin := make([]rational.Value, h.Dim)
		copy(origin, x0)
		points = append(points, origin)
	}
	return rays, points, nil
}
