package ddops

// Copyright (c) 2025 Colin McRae

import (
	"fmt"

	"github.com/predrag3141/polyrep/rational"
	"github.com/predrag3141/polyrep/tableau"
)

// blowUp returns the vector of the system's full width whose live columns
// hold reduced, in the order of live, and whose pivot columns are solved from
// the recorded equalities in reverse order. t is 1 for a point and 0 for a
// ray, so a ray ignores the constants of the equalities.
func (e *engine) blowUp(
	caller string, s *tableau.System, rec *eliminationRecord, live []int, reduced []rational.Value, t int64,
) ([]rational.Value, error) {
	caller = fmt.Sprintf("%s-blowUp", caller)
	constCol := s.Cols() - 1
	full := make([]rational.Value, constCol)
	for i, col := range live {
		full[col] = reduced[i]
	}
	steps := rec.kept()
	for k := len(steps) - 1; k >= 0; k-- {
		st := steps[k]
		var solved rational.Value
		err := e.ctx.Do(func(arith rational.Arith) {
			row := s.Row(st.Handle)
			solved = rational.Value{}
			if t != 0 {
				solved = row[constCol]
			}
			for j := 0; j < constCol; j++ {
				if (j == st.Column) || row[j].IsZero() || full[j].IsZero() {
					continue
				}
				solved = arith.Sub(solved, arith.Mul(row[j], full[j]))
			}
		})
		if err != nil {
			return nil, fmt.Errorf("%s: column %d: %w", caller, st.Column, err)
		}
		full[st.Column] = solved
	}
	return full, nil
}
