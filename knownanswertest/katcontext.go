// Package knownanswertest runs conversions whose answers are known, either
// from the structure of the input or from checks every correct answer must
// pass, and logs the results.
package knownanswertest

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"math/rand"

	"github.com/predrag3141/polyrep/polytope"
	"github.com/predrag3141/polyrep/util"
)

// Case is a V-representation with known numbers of equalities and facets.
type Case struct {
	Name          string        `json:"name"`
	Points        polytope.VRep `json:"points"`
	NumEqualities int           `json:"numEqualities"`
	NumFacets     int           `json:"numFacets"`
}

// KnownCases returns the fixed known-answer cases.
func KnownCases() []Case {
	cube := polytope.VRep{Dim: 3}
	for mask := int64(0); mask < 8; mask++ {
		cube.Rows = append(cube.Rows, polytope.PointRow(mask&1, (mask>>1)&1, (mask>>2)&1))
	}
	return []Case{
		{
			Name:      "interval",
			Points:    polytope.VRep{Dim: 1, Rows: []polytope.Row{polytope.PointRow(-1), polytope.PointRow(2)}},
			NumFacets: 2,
		},
		{
			Name: "square",
			Points: polytope.VRep{Dim: 2, Rows: []polytope.Row{
				polytope.PointRow(0, 0), polytope.PointRow(1, 0), polytope.PointRow(0, 1), polytope.PointRow(1, 1),
			}},
			NumFacets: 4,
		},
		{Name: "cube", Points: cube, NumFacets: 6},
		{
			Name: "simplex",
			Points: polytope.VRep{Dim: 3, Rows: []polytope.Row{
				polytope.PointRow(0, 0, 0), polytope.PointRow(1, 0, 0),
				polytope.PointRow(0, 1, 0), polytope.PointRow(0, 0, 1),
			}},
			NumFacets: 4,
		},
		{
			Name: "triangle",
			Points: polytope.VRep{Dim: 3, Rows: []polytope.Row{
				polytope.PointRow(1, 0, 0), polytope.PointRow(0, 1, 0), polytope.PointRow(0, 0, 1),
			}},
			NumEqualities: 1,
			NumFacets:     3,
		},
		{
			Name: "quadrant",
			Points: polytope.VRep{Dim: 2, Rows: []polytope.Row{
				polytope.PointRow(0, 0), polytope.RayRow(1, 0), polytope.RayRow(0, 1),
			}},
			NumFacets: 2,
		},
		{Name: "chsh", Points: chsh(), NumFacets: 24},
	}
}

// chsh returns the 16 deterministic strategies of the two party, two
// setting Bell scenario in the coordinates (a0, a1, b0, b1, a0b0, a0b1, a1b0,
// a1b1). Its hull has 16 positivity facets and 8 CHSH facets.
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

// KATContext is a random polytope whose conversions are checked against its
// generators rather than against stored answers.
type KATContext struct {
	Seed   int64         `json:"seed"`
	Points polytope.VRep `json:"points"`
}

// NewKATContext returns the hull of numPoints random integer points in
// [-coordRange, coordRange]^dim, drawn from a source seeded with seed.
func NewKATContext(seed int64, dim, numPoints, coordRange int) *KATContext {
	rng := rand.New(rand.NewSource(seed))
	retVal := &KATContext{Seed: seed, Points: polytope.VRep{Dim: dim}}
	for i := 0; i < numPoints; i++ {
		coords := make([]int, dim)
		for j := range coords {
			coords[j] = rng.Intn(2*coordRange+1) - coordRange
		}
		retVal.Points.Rows = append(retVal.Points.Rows, polytope.PointRow(util.CopyIntToInt64(coords)...))
	}
	return retVal
}

// CheckInequalities returns an error unless every generator satisfies h and
// every inequality of h is tight at one generator at least.
func (kc *KATContext) CheckInequalities(h *polytope.HRep) error {
	for i, g := range kc.Points.Rows {
		if violated := h.Satisfies(g.Coeffs); violated >= 0 {
			return fmt.Errorf("CheckInequalities: seed %d: generator %d violates row %d", kc.Seed, i, violated)
		}
	}
	for i, row := range h.Inequalities {
		tight := false
		for _, g := range kc.Points.Rows {
			if polytope.Dot(row.Coeffs, g.Coeffs).Equal(row.Const) {
				tight = true
				break
			}
		}
		if !tight {
			return fmt.Errorf("CheckInequalities: seed %d: inequality %d (%s) touches no generator", kc.Seed, i, row)
		}
	}
	return nil
}

// CheckVertices returns an error unless v has no rays and each of its points
// is one of the generators.
func (kc *KATContext) CheckVertices(v *polytope.VRep) error {
	if len(v.Rays()) > 0 {
		return fmt.Errorf("CheckVertices: seed %d: a polytope has %d rays", kc.Seed, len(v.Rays()))
	}
	for i, p := range v.Rows {
		found := false
		for _, g := range kc.Points.Rows {
			if p.Equal(g) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("CheckVertices: seed %d: vertex %d %s is not a generator", kc.Seed, i, p)
		}
	}
	return nil
}
