// Package polyfile reads and writes the PORTA text formats: .poi files
// holding points and rays, and .ieq files holding equalities and
// inequalities.
package polyfile

// Copyright (c) 2025 Colin McRae

import (
	"bufio"
	"fmt"
	"io"

	"github.com/predrag3141/polyrep/polytope"
	"github.com/predrag3141/polyrep/rational"
)

// ReadPoints parses a .poi file. CONV_SECTION rows are points and
// CONE_SECTION rows are rays; both sections may appear more than once. Row
// labels such as "( 3)" are optional.
func ReadPoints(r io.Reader) (*polytope.VRep, error) {
	sc := newScanner(r)
	v := &polytope.VRep{Dim: -1}
	section := ""
	for sc.next() {
		switch kw := keyword(sc.line); kw {
		case "":
		case "DIM":
			dim, err := parseDim(sc.line)
			if err != nil {
				return nil, sc.errorf("%v", err)
			}
			v.Dim = dim
			continue
		case "CONV_SECTION", "CONE_SECTION", "COMMENT":
			section = kw
			continue
		case "END":
			return finishPoints(sc, v)
		default:
			if section != "COMMENT" {
				return nil, sc.errorf("unknown keyword %s", kw)
			}
		}
		switch {
		case section == "COMMENT":
			continue
		case v.Dim < 0:
			return nil, sc.errorf("DIM must precede the points")
		case section == "":
			return nil, sc.errorf("row outside CONV_SECTION and CONE_SECTION")
		}
		coords, err := parseValues(stripLabel(sc.line))
		if err != nil {
			return nil, sc.errorf("%v", err)
		}
		if len(coords) != v.Dim {
			return nil, sc.errorf("row has %d coordinates, DIM is %d", len(coords), v.Dim)
		}
		row := polytope.Row{Coeffs: coords, Const: rational.FromInt64(1)}
		if section == "CONE_SECTION" {
			row.Const = rational.Value{}
		}
		v.Rows = append(v.Rows, row)
	}
	if err := sc.err(); err != nil {
		return nil, err
	}
	return finishPoints(sc, v)
}

func finishPoints(sc *scanner, v *polytope.VRep) (*polytope.VRep, error) {
	if v.Dim < 0 {
		return nil, sc.errorf("missing DIM")
	}
	return v, nil
}

// WritePoints writes v in .poi format with rays in a CONE_SECTION before
// points in a CONV_SECTION, numbering rows from 1 within each section.
func WritePoints(w io.Writer, v polytope.VRep) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "DIM = %d\n", v.Dim)
	writeSection := func(name string, rows []polytope.Row) {
		if len(rows) == 0 {
			return
		}
		fmt.Fprintf(bw, "\n%s\n", name)
		width := labelWidth(len(rows))
		for i, row := range rows {
			fmt.Fprintf(bw, "(%*d) %s\n", width, i+1, formatValues(row.Coeffs))
		}
	}
	writeSection("CONE_SECTION", v.Rays())
	writeSection("CONV_SECTION", v.Points())
	fmt.Fprintf(bw, "\nEND\n")
	return bw.Flush()
}
