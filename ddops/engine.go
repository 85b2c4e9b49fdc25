package ddops

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/predrag3141/polyrep/polytope"
	"github.com/predrag3141/polyrep/rational"
	"github.com/predrag3141/polyrep/tableau"
)

// Report describes how a conversion ran.
type Report struct {
	RunID                string        `json:"runId"`
	Mode                 rational.Mode `json:"mode"`
	Promotions           int           `json:"promotions"`
	Demotions            int           `json:"demotions"`
	EqualitiesEliminated int           `json:"equalitiesEliminated"`
	VariablesEliminated  int           `json:"variablesEliminated"`
	PeakRows             int           `json:"peakRows"`

	// Dimension is the dimension of the resulting polyhedron: the ambient
	// dimension less the number of equalities of an H-representation, or
	// the rank of the homogenized generators less one for a V-representation.
	Dimension int `json:"dimension"`

	// Fractional lists the output rows left with denominators because they
	// could not be scaled to integers within fixed width.
	Fractional []RowError `json:"fractional,omitempty"`
}

// engine is the call-scoped state of one conversion: configuration, precision
// context, logger and report.
type engine struct {
	cfg    Config
	ctx    *rational.Context
	logger *slog.Logger
	report *Report
}

func newEngine(caller string, cfg Config) (*engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", caller, err)
	}
	runID := uuid.NewString()
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("run", runID, "op", caller)
	e := &engine{
		cfg:    cfg,
		ctx:    rational.NewContext(cfg.contextOptions(logger)...),
		logger: logger,
		report: &Report{RunID: runID},
	}
	e.logger.Debug("conversion started", "mode", e.ctx.Mode(), "capacity", e.ctx.Capacity())
	return e, nil
}

// observe records the size of s in the report.
func (e *engine) observe(s *tableau.System) {
	if s.Len() > e.report.PeakRows {
		e.report.PeakRows = s.Len()
	}
}

// finish copies the precision counters into the report and returns it.
func (e *engine) finish() *Report {
	e.report.Mode = e.ctx.Mode()
	e.report.Promotions = e.ctx.Promotions()
	e.report.Demotions = e.ctx.Demotions()
	e.logger.Debug(
		"conversion finished",
		"mode", e.report.Mode,
		"promotions", e.report.Promotions,
		"peakRows", e.report.PeakRows,
		"dimension", e.report.Dimension,
	)
	return e.report
}

// setDimensionH records the dimension of the polyhedron h describes.
func (e *engine) setDimensionH(h *polytope.HRep) {
	e.report.Dimension = h.Dim - len(h.Equalities)
}

// setDimensionV records the dimension of the polyhedron v generates.
func (e *engine) setDimensionV(caller string, v *polytope.VRep) error {
	gens := make([][]rational.Value, len(v.Rows))
	for k, g := range v.Rows {
		gens[k] = g.Values()
	}
	r, err := e.rank(caller, gens)
	if err != nil {
		return err
	}
	if len(v.Points()) > 0 {
		r--
	}
	e.report.Dimension = r
	return nil
}

// dot returns a . x through the context. The evaluation is retried after a
// promotion, so x may be read from a tracked store.
func (e *engine) dot(caller string, a, x []rational.Value) (rational.Value, error) {
	var sum rational.Value
	err := e.ctx.Do(func(arith rational.Arith) {
		sum = rational.Value{}
		for i := range a {
			if a[i].IsZero() || x[i].IsZero() {
				continue
			}
			sum = arith.Add(sum, arith.Mul(a[i], x[i]))
		}
	})
	if err != nil {
		return rational.Value{}, fmt.Errorf("%s: %w", caller, err)
	}
	return sum, nil
}

// scale returns vals / divisor through the context.
func (e *engine) scale(caller string, vals []rational.Value, divisor rational.Value) ([]rational.Value, error) {
	scaled := make([]rational.Value, len(vals))
	err := e.ctx.Do(func(arith rational.Arith) {
		arith.RowPrim(scaled, vals, divisor)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", caller, err)
	}
	return scaled, nil
}

func isZero(vals []rational.Value) bool {
	for _, v := range vals {
		if !v.IsZero() {
			return false
		}
	}
	return true
}
