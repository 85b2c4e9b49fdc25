package polyfile

// Copyright (c) 2025 Colin McRae

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/predrag3141/polyrep/polytope"
	"github.com/predrag3141/polyrep/rational"
)

// IneqFile is the content of a .ieq file. EliminationOrder, if not nil, has
// one entry per variable as taken by ddops.EliminateVariables.
type IneqFile struct {
	HRep             polytope.HRep
	EliminationOrder []int
}

// ReadInequalities parses a .ieq file. Rows look like "( 1) -x1+1/2x2 <= 3"
// with relation <=, >= or ==; rows using >= are negated. An optional VALID
// section holds a point of the polyhedron and an optional ELIMINATION_ORDER
// section holds one integer per variable.
func ReadInequalities(r io.Reader) (*IneqFile, error) {
	sc := newScanner(r)
	f := &IneqFile{HRep: polytope.HRep{Dim: -1}}
	var valid []rational.Value
	var order []int
	sawValid, sawOrder := false, false
	section := ""
	for sc.next() {
		switch kw := keyword(sc.line); kw {
		case "":
		case "DIM":
			dim, err := parseDim(sc.line)
			if err != nil {
				return nil, sc.errorf("%v", err)
			}
			f.HRep.Dim = dim
			continue
		case "VALID":
			section, sawValid = kw, true
			continue
		case "ELIMINATION_ORDER":
			section, sawOrder = kw, true
			continue
		case "INEQUALITIES_SECTION", "COMMENT":
			section = kw
			continue
		case "END":
			return finishInequalities(sc, f, valid, sawValid, order, sawOrder)
		default:
			if section != "COMMENT" {
				return nil, sc.errorf("unknown keyword %s", kw)
			}
		}
		if section == "COMMENT" {
			continue
		}
		if f.HRep.Dim < 0 {
			return nil, sc.errorf("DIM must precede %s", section)
		}
		switch section {
		case "VALID":
			vals, err := parseValues(sc.line)
			if err != nil {
				return nil, sc.errorf("%v", err)
			}
			valid = append(valid, vals...)
		case "ELIMINATION_ORDER":
			for _, field := range strings.Fields(sc.line) {
				k, err := strconv.Atoi(field)
				if err != nil {
					return nil, sc.errorf("invalid elimination order entry %q", field)
				}
				order = append(order, k)
			}
		case "INEQUALITIES_SECTION":
			row, rel, err := parseRelation(stripLabel(sc.line), f.HRep.Dim)
			if err != nil {
				return nil, sc.errorf("%v", err)
			}
			if rel == "==" {
				f.HRep.Equalities = append(f.HRep.Equalities, row)
			} else {
				f.HRep.Inequalities = append(f.HRep.Inequalities, row)
			}
		default:
			return nil, sc.errorf("row outside INEQUALITIES_SECTION")
		}
	}
	if err := sc.err(); err != nil {
		return nil, err
	}
	return finishInequalities(sc, f, valid, sawValid, order, sawOrder)
}

func finishInequalities(
	sc *scanner, f *IneqFile, valid []rational.Value, sawValid bool, order []int, sawOrder bool,
) (*IneqFile, error) {
	if f.HRep.Dim < 0 {
		return nil, sc.errorf("missing DIM")
	}
	if sawValid {
		if len(valid) != f.HRep.Dim {
			return nil, sc.errorf("VALID has %d coordinates, DIM is %d", len(valid), f.HRep.Dim)
		}
		f.HRep.ValidPoint = valid
	}
	if sawOrder {
		if len(order) != f.HRep.Dim {
			return nil, sc.errorf("ELIMINATION_ORDER has %d entries, DIM is %d", len(order), f.HRep.Dim)
		}
		f.EliminationOrder = order
	}
	return f, nil
}

// parseRelation reads "lhs rel rhs" where lhs is a sum of terms such as
// "-3/2x4" or constants and rhs is a constant. Constants on the left are
// moved to the right and >= is turned into <= by negation.
func parseRelation(s string, dim int) (polytope.Row, string, error) {
	rel := ""
	at := -1
	for _, candidate := range []string{"<=", ">=", "=="} {
		if i := strings.Index(s, candidate); i >= 0 {
			if (at >= 0) || (strings.Count(s, candidate) > 1) {
				return polytope.Row{}, "", fmt.Errorf("more than one relation in %q", s)
			}
			rel, at = candidate, i
		}
	}
	if at < 0 {
		return polytope.Row{}, "", fmt.Errorf("no relation in %q", s)
	}
	arith := rational.NewContext().Arith()
	row := polytope.Row{Coeffs: make([]rational.Value, dim)}
	lhsConst, err := parseTerms(arith, s[:at], row.Coeffs)
	if err != nil {
		return polytope.Row{}, "", err
	}
	rhs, err := rational.Parse(strings.ReplaceAll(s[at+len(rel):], " ", ""))
	if err != nil {
		return polytope.Row{}, "", err
	}
	row.Const = arith.Sub(rhs, lhsConst)
	if rel == ">=" {
		for j := range row.Coeffs {
			row.Coeffs[j] = row.Coeffs[j].Neg()
		}
		row.Const = row.Const.Neg()
	}
	return row, rel, nil
}

// parseTerms adds the coefficients of lhs into coeffs and returns the sum of
// its constant terms.
func parseTerms(arith rational.Arith, lhs string, coeffs []rational.Value) (rational.Value, error) {
	lhs = strings.ReplaceAll(lhs, " ", "")
	if lhs == "" {
		return rational.Value{}, fmt.Errorf("empty left hand side")
	}
	constant := rational.Value{}
	start := 0
	for start < len(lhs) {
		end := start + 1
		for (end < len(lhs)) && (lhs[end] != '+') && (lhs[end] != '-') {
			end++
		}
		term := lhs[start:end]
		start = end

		x := strings.IndexByte(term, 'x')
		if x < 0 {
			v, err := rational.Parse(term)
			if err != nil {
				return rational.Value{}, err
			}
			constant = arith.Add(constant, v)
			continue
		}
		j, err := strconv.Atoi(term[x+1:])
		if (err != nil) || (j < 1) || (j > len(coeffs)) {
			return rational.Value{}, fmt.Errorf("invalid variable in term %q", term)
		}
		coeff := rational.FromInt64(1)
		switch c := term[:x]; c {
		case "", "+":
		case "-":
			coeff = rational.FromInt64(-1)
		default:
			if coeff, err = rational.Parse(c); err != nil {
				return rational.Value{}, err
			}
		}
		coeffs[j-1] = arith.Add(coeffs[j-1], coeff)
	}
	return constant, nil
}

// WriteInequalities writes f in .ieq format, equalities first, numbering
// rows from 1.
func WriteInequalities(w io.Writer, f IneqFile) error {
	bw := bufio.NewWriter(w)
	h := f.HRep
	fmt.Fprintf(bw, "DIM = %d\n", h.Dim)
	if h.ValidPoint != nil {
		fmt.Fprintf(bw, "\nVALID\n%s\n", formatValues(h.ValidPoint))
	}
	if f.EliminationOrder != nil {
		parts := make([]string, len(f.EliminationOrder))
		for i, k := range f.EliminationOrder {
			parts[i] = strconv.Itoa(k)
		}
		fmt.Fprintf(bw, "\nELIMINATION_ORDER\n%s\n", strings.Join(parts, " "))
	}
	fmt.Fprintf(bw, "\nINEQUALITIES_SECTION\n")
	width := labelWidth(len(h.Equalities) + len(h.Inequalities))
	n := 0
	for _, row := range h.Equalities {
		n++
		fmt.Fprintf(bw, "(%*d) %s == %s\n", width, n, formatTerms(row.Coeffs), row.Const)
	}
	for _, row := range h.Inequalities {
		n++
		fmt.Fprintf(bw, "(%*d) %s <= %s\n", width, n, formatTerms(row.Coeffs), row.Const)
	}
	fmt.Fprintf(bw, "\nEND\n")
	return bw.Flush()
}

// formatTerms writes coeffs as "-x1+2x2-1/3x4", or "0" if every coefficient
// is zero.
func formatTerms(coeffs []rational.Value) string {
	var sb strings.Builder
	one := rational.FromInt64(1)
	for j, c := range coeffs {
		if c.IsZero() {
			continue
		}
		if c.Sign() > 0 && sb.Len() > 0 {
			sb.WriteByte('+')
		}
		switch {
		case c.Equal(one):
		case c.Equal(one.Neg()):
			sb.WriteByte('-')
		default:
			sb.WriteString(c.String())
		}
		fmt.Fprintf(&sb, "x%d", j+1)
	}
	if sb.Len() == 0 {
		return "0"
	}
	return sb.String()
}
