// Package tableau holds the working rows of a conversion. Rows share one
// backing arena and are addressed by handles that stay valid when the arena
// grows or is compacted.
package tableau

// Copyright (c) 2025 Colin McRae

import (
	"errors"
	"fmt"

	"github.com/predrag3141/polyrep/rational"
)

// ErrResourceExhausted is returned when a System would hold more live rows
// than its bound.
var ErrResourceExhausted = errors.New("row bound exceeded")

// DefaultMaxValues bounds the entries of the live rows of a System whose
// Limits leave MaxValues at 0.
const DefaultMaxValues = 1 << 22

// Limits bounds the size of a System. A zero field takes its default: no
// explicit row bound, and DefaultMaxValues entries.
type Limits struct {
	MaxRows   int
	MaxValues int
}

// rowBound returns the number of live rows of cols columns that l allows.
func (l Limits) rowBound(cols int) int {
	maxValues := l.MaxValues
	if maxValues <= 0 {
		maxValues = DefaultMaxValues
	}
	retVal := max(1, maxValues/max(1, cols))
	if (l.MaxRows > 0) && (l.MaxRows < retVal) {
		retVal = l.MaxRows
	}
	return retVal
}

// Kind tags a row.
type Kind int

const (
	// Equality is a row coeffs . x = const
	Equality Kind = iota

	// Inequality is a row coeffs . x <= const
	Inequality

	// Point is a generator with constant 1
	Point

	// Ray is a generator with constant 0
	Ray
)

// String returns the lower case name of k.
func (k Kind) String() string {
	switch k {
	case Equality:
		return "equality"
	case Inequality:
		return "inequality"
	case Point:
		return "point"
	case Ray:
		return "ray"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Handle identifies a row of a System for the lifetime of the System.
type Handle int

type slot struct {
	off  int
	kind Kind
	live bool
}

// System is an ordered collection of rows with a common column count. The
// last column of every row is its constant.
//
// Slices returned by Row alias the arena and are invalidated by Append and
// Compact. Handles are never invalidated; a removed handle is never reused.
type System struct {
	cols    int
	maxRows int
	arena   []rational.Value
	slots   []slot
	order   []Handle
	numLive int
	numDead int
}

// NewSystem returns an empty System whose rows have cols columns, constant
// included. The number of live rows is bounded by limits.MaxRows, if it is
// positive, and by the number of rows that fit in limits.MaxValues entries.
func NewSystem(cols int, limits Limits) *System {
	return &System{cols: cols, maxRows: limits.rowBound(cols)}
}

// Cols returns the number of columns, constant included.
func (s *System) Cols() int {
	return s.cols
}

// Len returns the number of live rows.
func (s *System) Len() int {
	return s.numLive
}

// MaxRows returns the bound on live rows.
func (s *System) MaxRows() int {
	return s.maxRows
}

// Append copies vals into a new row of the given kind and returns its handle.
// It returns an error wrapping ErrResourceExhausted, and leaves s unchanged,
// if the row bound would be exceeded.
func (s *System) Append(kind Kind, vals []rational.Value) (Handle, error) {
	if len(vals) != s.cols {
		return -1, fmt.Errorf("Append: row has %d entries but the system has %d columns", len(vals), s.cols)
	}
	if s.numLive >= s.maxRows {
		return -1, fmt.Errorf("Append: %d live rows: %w", s.numLive, ErrResourceExhausted)
	}
	if (len(s.arena)+s.cols > cap(s.arena)) && (s.numDead > s.numLive) {
		s.Compact()
	}
	h := Handle(len(s.slots))
	s.slots = append(s.slots, slot{off: len(s.arena), kind: kind, live: true})
	s.arena = append(s.arena, vals...)
	s.order = append(s.order, h)
	s.numLive++
	return h, nil
}

// Row returns the entries of live row h, constant last. The caller may modify
// the entries in place.
func (s *System) Row(h Handle) []rational.Value {
	sl := s.slots[h]
	if !sl.live {
		panic(fmt.Sprintf("Row: handle %d was removed", h))
	}
	return s.arena[sl.off : sl.off+s.cols : sl.off+s.cols]
}

// Kind returns the kind of row h.
func (s *System) Kind(h Handle) Kind {
	return s.slots[h].kind
}

// SetKind changes the kind of row h.
func (s *System) SetKind(h Handle, kind Kind) {
	s.slots[h].kind = kind
}

// Live returns whether h is a live row of s.
func (s *System) Live(h Handle) bool {
	return (0 <= int(h)) && (int(h) < len(s.slots)) && s.slots[h].live
}

// Remove deletes row h. Its storage is reclaimed by the next Compact.
func (s *System) Remove(h Handle) {
	if !s.slots[h].live {
		return
	}
	s.slots[h].live = false
	s.numLive--
	s.numDead++
}

// Handles returns the live rows in the order they were appended.
func (s *System) Handles() []Handle {
	s.pruneOrder()
	retVal := make([]Handle, len(s.order))
	copy(retVal, s.order)
	return retVal
}

// HandlesOf returns the live rows of the given kind in the order they were
// appended.
func (s *System) HandlesOf(kind Kind) []Handle {
	s.pruneOrder()
	retVal := make([]Handle, 0, len(s.order))
	for _, h := range s.order {
		if s.slots[h].kind == kind {
			retVal = append(retVal, h)
		}
	}
	return retVal
}

// NumHandles returns one more than the largest handle ever issued, so that
// per-row data can be kept in slices indexed by Handle.
func (s *System) NumHandles() int {
	return len(s.slots)
}

func (s *System) pruneOrder() {
	if len(s.order) == s.numLive {
		return
	}
	kept := s.order[:0]
	for _, h := range s.order {
		if s.slots[h].live {
			kept = append(kept, h)
		}
	}
	s.order = kept
}

// Compact moves the live rows into a new arena and rewrites their offsets.
// Handles are unchanged.
func (s *System) Compact() {
	s.pruneOrder()
	arena := make([]rational.Value, 0, 2*s.numLive*s.cols+s.cols)
	for _, h := range s.order {
		off := s.slots[h].off
		s.slots[h].off = len(arena)
		arena = append(arena, s.arena[off:off+s.cols]...)
	}
	s.arena = arena
	s.numDead = 0
}

// EachValue implements rational.Store over the live rows.
func (s *System) EachValue(fn func(v *rational.Value)) {
	for h := range s.slots {
		if !s.slots[h].live {
			continue
		}
		off := s.slots[h].off
		for j := off; j < off+s.cols; j++ {
			fn(&s.arena[j])
		}
	}
}
