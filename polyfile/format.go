package polyfile

// Copyright (c) 2025 Colin McRae

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/predrag3141/polyrep/rational"
)

// ErrSyntax is wrapped by every error reporting malformed input.
var ErrSyntax = errors.New("malformed polyhedron file")

// scanner yields the non-blank lines of a file, trimmed, with their numbers.
type scanner struct {
	s      *bufio.Scanner
	line   string
	lineNo int
}

func newScanner(r io.Reader) *scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &scanner{s: s}
}

func (sc *scanner) next() bool {
	for sc.s.Scan() {
		sc.lineNo++
		sc.line = strings.TrimSpace(sc.s.Text())
		if sc.line != "" {
			return true
		}
	}
	return false
}

func (sc *scanner) err() error {
	if err := sc.s.Err(); err != nil {
		return fmt.Errorf("polyfile: line %d: %w", sc.lineNo, err)
	}
	return nil
}

func (sc *scanner) errorf(format string, args ...any) error {
	return fmt.Errorf("polyfile: line %d: %s: %w", sc.lineNo, fmt.Sprintf(format, args...), ErrSyntax)
}

// keyword returns the leading run of upper case letters and underscores of
// line, which is empty for data rows.
func keyword(line string) string {
	end := 0
	for end < len(line) {
		c := line[end]
		if (c < 'A' || c > 'Z') && c != '_' {
			break
		}
		end++
	}
	return line[:end]
}

// parseDim reads "DIM = d".
func parseDim(line string) (int, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "DIM"))
	rest = strings.TrimSpace(strings.TrimPrefix(rest, "="))
	dim, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("invalid DIM %q", rest)
	}
	if dim < 0 {
		return 0, fmt.Errorf("DIM %d < 0", dim)
	}
	return dim, nil
}

// stripLabel removes a leading row label such as "( 12)".
func stripLabel(line string) string {
	if !strings.HasPrefix(line, "(") {
		return line
	}
	if end := strings.IndexByte(line, ')'); end >= 0 {
		return strings.TrimSpace(line[end+1:])
	}
	return line
}

func parseValues(s string) ([]rational.Value, error) {
	fields := strings.Fields(s)
	retVal := make([]rational.Value, len(fields))
	for i, f := range fields {
		v, err := rational.Parse(f)
		if err != nil {
			return nil, err
		}
		retVal[i] = v
	}
	return retVal, nil
}

func formatValues(vals []rational.Value) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

// labelWidth is the width of row numbers in a section with n rows.
func labelWidth(n int) int {
	return max(2, len(strconv.Itoa(n)))
}
