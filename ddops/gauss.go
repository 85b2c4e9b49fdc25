package ddops

// Copyright (c) 2025 Colin McRae

import (
	"fmt"

	"github.com/predrag3141/polyrep/rational"
	"github.com/predrag3141/polyrep/tableau"
)

// eliminationStep is one Gauss-Jordan pivot. Row Handle has a 1 in Column
// and zeros in the columns of all other steps.
type eliminationStep struct {
	Handle tableau.Handle
	Column int
	Aux    bool
}

// eliminationRecord lists the pivots of a Gauss-Jordan pass in the order
// they were taken.
type eliminationRecord struct {
	steps []eliminationStep
}

// kept returns the steps that pivoted on kept columns. Their rows are the
// equalities that survive the pass.
func (rec *eliminationRecord) kept() []eliminationStep {
	retVal := make([]eliminationStep, 0, len(rec.steps))
	for _, st := range rec.steps {
		if !st.Aux {
			retVal = append(retVal, st)
		}
	}
	return retVal
}

// gauss runs Gauss-Jordan elimination over the equality rows of s. The pivot
// of a row is its first nonzero entry in a live auxiliary column or, failing
// that, in a live kept column. Rows pivoted on auxiliary columns are removed
// once the pass is done, while rows pivoted on kept columns stay as
// equalities. An all zero row is dropped if its constant is 0 and otherwise
// fails with ErrDegenerateEqualities.
func (e *engine) gauss(caller string, s *tableau.System, m *tableau.VarMap) (*eliminationRecord, error) {
	caller = fmt.Sprintf("%s-gauss", caller)
	rec := &eliminationRecord{}
	constCol := s.Cols() - 1
	for i, h := range s.HandlesOf(tableau.Equality) {
		row := s.Row(h)
		pivot := firstNonzero(row, m.LiveOf(true))
		aux := pivot >= 0
		if !aux {
			pivot = firstNonzero(row, m.LiveOf(false))
		}
		if pivot < 0 {
			if !row[constCol].IsZero() {
				return nil, fmt.Errorf("%s: %w", caller, &RowError{
					Phase: "gauss", Kind: "equality", Row: i, Err: ErrDegenerateEqualities,
				})
			}
			s.Remove(h)
			continue
		}
		if err := e.pivot(caller, s, h, pivot); err != nil {
			return nil, err
		}
		if err := m.Eliminate(pivot); err != nil {
			return nil, fmt.Errorf("%s: %w", caller, err)
		}
		rec.steps = append(rec.steps, eliminationStep{Handle: h, Column: pivot, Aux: aux})
		e.logger.Debug("gauss pivot", "row", i, "column", pivot, "aux", aux)
	}
	for _, st := range rec.steps {
		if st.Aux {
			s.Remove(st.Handle)
		}
	}
	e.report.EqualitiesEliminated += len(rec.steps)
	e.observe(s)
	return rec, nil
}

// pivot divides row h by its entry in column col and subtracts multiples of
// it from every other live row so that col is zero there.
func (e *engine) pivot(caller string, s *tableau.System, h tableau.Handle, col int) error {
	scratch := make([]rational.Value, s.Cols())
	err := e.ctx.Do(func(arith rational.Arith) {
		row := s.Row(h)
		arith.RowPrim(scratch, row, row[col])
	})
	if err != nil {
		return fmt.Errorf("%s: row %d: %w", caller, h, err)
	}
	copy(s.Row(h), scratch)
	for _, other := range s.Handles() {
		if (other == h) || s.Row(other)[col].IsZero() {
			continue
		}
		err = e.ctx.Do(func(arith rational.Arith) {
			p, r := s.Row(h), s.Row(other)
			factor := r[col]
			for j := range r {
				if p[j].IsZero() {
					scratch[j] = r[j]
					continue
				}
				scratch[j] = arith.Sub(r[j], arith.Mul(factor, p[j]))
			}
		})
		if err != nil {
			return fmt.Errorf("%s: row %d: %w", caller, other, err)
		}
		copy(s.Row(other), scratch)
	}
	return nil
}

func firstNonzero(row []rational.Value, cols []int) int {
	for _, j := range cols {
		if !row[j].IsZero() {
			return j
		}
	}
	return -1
}
