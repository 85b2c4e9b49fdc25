package ddops

// Copyright (c) 2025 Colin McRae

import (
	"errors"
	"fmt"

	"github.com/predrag3141/polyrep/polytope"
	"github.com/predrag3141/polyrep/rational"
	"github.com/predrag3141/polyrep/tableau"
)

// Errors returned by conversions. Match them with errors.Is.
var (
	ErrInvalidInteriorPoint      = errors.New("valid point violates a constraint")
	ErrDegenerateEqualities      = errors.New("contradictory equalities")
	ErrMalformedEliminationOrder = errors.New("malformed elimination order")
	ErrEmptyPolyhedron           = errors.New("polyhedron is empty")

	ErrDimensionMismatch      = polytope.ErrDimensionMismatch
	ErrArithmeticOverflow     = rational.ErrArithmeticOverflow
	ErrIntegerizationOverflow = rational.ErrIntegerizationOverflow
	ErrResourceExhausted      = tableau.ErrResourceExhausted
)

// RowError ties an error to a row of the caller's input or of the output.
// Kind is "equality", "inequality", "point" or "ray" and Row is the index of
// the row within its kind.
type RowError struct {
	Phase string `json:"phase"`
	Kind  string `json:"kind"`
	Row   int    `json:"row"`
	Err   error  `json:"-"`
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: %s %d: %v", e.Phase, e.Kind, e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
