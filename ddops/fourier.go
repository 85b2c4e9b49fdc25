package ddops

// Copyright (c) 2025 Colin McRae

import (
	"fmt"

	"github.com/predrag3141/polyrep/rational"
	"github.com/predrag3141/polyrep/tableau"
)

// fourier eliminates columns from the inequality rows of a system one at a
// time. Every row carries the history of the inequalities, numbered in the
// order they had when elimination started, that it is a positive combination
// of.
type fourier struct {
	e     *engine
	s     *tableau.System
	m     *tableau.VarMap
	hist  []history
	size  int
	steps int
}

// newFourier starts elimination over the current inequality rows of s. Rows
// 0 <= 0 are dropped, and a row 0 <= c with c < 0 fails with
// ErrEmptyPolyhedron.
func (e *engine) newFourier(caller string, s *tableau.System, m *tableau.VarMap) (*fourier, error) {
	handles := s.HandlesOf(tableau.Inequality)
	f := &fourier{
		e:    e,
		s:    s,
		m:    m,
		hist: make([]history, s.NumHandles()),
		size: len(handles),
	}
	constCol := s.Cols() - 1
	for i, h := range handles {
		f.hist[h] = singleton(f.size, i)
		row := s.Row(h)
		if !isZero(row[:constCol]) {
			continue
		}
		if row[constCol].Sign() < 0 {
			return nil, fmt.Errorf("%s: %w", caller, &RowError{
				Phase: "fourier-motzkin", Kind: "inequality", Row: i, Err: ErrEmptyPolyhedron,
			})
		}
		if row[constCol].IsZero() {
			s.Remove(h)
		}
	}
	return f, nil
}

// run eliminates cols in the given order or, with OptimizeOrder, in greedy
// order. It then removes every row whose history is not minimal and tries to
// demote the context.
func (f *fourier) run(caller string, cols []int) error {
	caller = fmt.Sprintf("%s-fourier", caller)
	remaining := make([]int, len(cols))
	copy(remaining, cols)
	for len(remaining) > 0 {
		k := 0
		if f.e.cfg.OptimizeOrder {
			k = f.cheapest(remaining)
		}
		col := remaining[k]
		remaining = append(remaining[:k], remaining[k+1:]...)
		if err := f.eliminate(caller, col); err != nil {
			return err
		}
	}
	f.minimalSupport()
	f.e.ctx.TryDemote()
	return nil
}

// cheapest returns the index in cols of the column whose elimination makes
// the least growth |pos| |neg| - |pos| - |neg|. Ties go to the first column.
func (f *fourier) cheapest(cols []int) int {
	best, bestCost := 0, 0
	handles := f.s.HandlesOf(tableau.Inequality)
	for k, col := range cols {
		numPos, numNeg := 0, 0
		for _, h := range handles {
			switch f.s.Row(h)[col].Sign() {
			case 1:
				numPos++
			case -1:
				numNeg++
			}
		}
		cost := numPos*numNeg - numPos - numNeg
		if (k == 0) || (cost < bestCost) {
			best, bestCost = k, cost
		}
	}
	return best
}

// eliminate replaces the rows with nonzero entries in col by the positive
// combinations of pairs of them with opposite signs in col.
func (f *fourier) eliminate(caller string, col int) error {
	s, arithCtx := f.s, f.e.ctx
	var pos, neg, zero []tableau.Handle
	for _, h := range s.HandlesOf(tableau.Inequality) {
		switch s.Row(h)[col].Sign() {
		case 1:
			pos = append(pos, h)
		case -1:
			neg = append(neg, h)
		default:
			zero = append(zero, h)
		}
	}
	f.steps++
	chernikov := !f.e.cfg.DisableChernikov
	constCol := s.Cols() - 1
	scratch := make([]rational.Value, s.Cols())
	created, skipped := 0, 0
	for _, p := range pos {
		for _, q := range neg {
			combined := f.hist[p].union(f.hist[q])
			if chernikov && (combined.count() > f.steps+1) {
				skipped++
				continue
			}
			err := arithCtx.Do(func(arith rational.Arith) {
				rowP, rowQ := s.Row(p), s.Row(q)
				multP, multQ := rowQ[col].Neg(), rowP[col]
				for j := range scratch {
					switch {
					case j == col:
						scratch[j] = rational.Value{}
					case rowP[j].IsZero() && rowQ[j].IsZero():
						scratch[j] = rational.Value{}
					case rowQ[j].IsZero():
						scratch[j] = arith.Mul(multP, rowP[j])
					case rowP[j].IsZero():
						scratch[j] = arith.Mul(multQ, rowQ[j])
					default:
						scratch[j] = arith.Add(arith.Mul(multP, rowP[j]), arith.Mul(multQ, rowQ[j]))
					}
				}
				normalize(arith, scratch)
			})
			if err != nil {
				return fmt.Errorf("%s: column %d: %w", caller, col, err)
			}
			if isZero(scratch[:constCol]) {
				if scratch[constCol].IsZero() {
					continue
				}
				if scratch[constCol].Sign() < 0 {
					return fmt.Errorf("%s: column %d: %w", caller, col, ErrEmptyPolyhedron)
				}
			}
			h, err := s.Append(tableau.Inequality, scratch)
			if err != nil {
				return fmt.Errorf("%s: column %d: %w", caller, col, err)
			}
			for len(f.hist) <= int(h) {
				f.hist = append(f.hist, nil)
			}
			f.hist[h] = combined
			created++
		}
	}
	f.e.observe(s)
	for _, h := range pos {
		s.Remove(h)
	}
	for _, h := range neg {
		s.Remove(h)
	}
	if chernikov {
		f.minimalSupport()
	}
	if err := f.m.Eliminate(col); err != nil {
		return fmt.Errorf("%s: %w", caller, err)
	}
	f.e.report.VariablesEliminated++
	f.e.logger.Debug(
		"fourier-motzkin column",
		"column", col,
		"pos", len(pos),
		"neg", len(neg),
		"zero", len(zero),
		"created", created,
		"skipped", skipped,
		"kept", s.Len(),
		"mode", arithCtx.Mode(),
	)
	return nil
}

// minimalSupport removes every inequality row whose history strictly
// contains that of another row, or equals that of an earlier row.
func (f *fourier) minimalSupport() {
	handles := f.s.HandlesOf(tableau.Inequality)
	counts := make([]int, len(handles))
	for i, h := range handles {
		counts[i] = f.hist[h].count()
	}
	for i, hi := range handles {
		for j, hj := range handles {
			if (i == j) || (counts[j] > counts[i]) {
				continue
			}
			if !f.hist[hj].subsetOf(f.hist[hi]) {
				continue
			}
			if (counts[j] < counts[i]) || (j < i) {
				f.s.Remove(hi)
				break
			}
		}
	}
}

// normalize divides row by the magnitude of its first nonzero coefficient,
// or of its constant if every coefficient is zero.
func normalize(arith rational.Arith, row []rational.Value) {
	n := len(row) - 1
	for j := 0; j < n; j++ {
		if !row[j].IsZero() {
			arith.RowPrim(row, row, row[j].Abs())
			return
		}
	}
	if !row[n].IsZero() {
		arith.RowPrim(row, row, row[n].Abs())
	}
}
