package tableau

// Copyright (c) 2025 Colin McRae

import "fmt"

// Column describes a working column. Orig is the caller's variable index for
// a kept column, or the index of the generator or variable an auxiliary
// column stands for. Auxiliary columns never appear in output.
type Column struct {
	Orig int
	Aux  bool
}

// VarMap records, for the variable columns of a System, which original
// variable each one is and whether it has been eliminated. Eliminated columns
// are kept in the order they were eliminated.
type VarMap struct {
	cols       []Column
	eliminated []int
	live       []int
	isLive     []bool
}

// NewVarMap returns a map in which every column is live.
func NewVarMap(cols []Column) *VarMap {
	m := &VarMap{
		cols:   make([]Column, len(cols)),
		live:   make([]int, len(cols)),
		isLive: make([]bool, len(cols)),
	}
	copy(m.cols, cols)
	for j := range cols {
		m.live[j] = j
		m.isLive[j] = true
	}
	return m
}

// Len returns the number of variable columns, which excludes the constant.
func (m *VarMap) Len() int {
	return len(m.cols)
}

// Column returns the description of working column j.
func (m *VarMap) Column(j int) Column {
	return m.cols[j]
}

// IsLive returns whether column j has not been eliminated.
func (m *VarMap) IsLive(j int) bool {
	return m.isLive[j]
}

// Live returns the live columns in increasing order.
func (m *VarMap) Live() []int {
	retVal := make([]int, len(m.live))
	copy(retVal, m.live)
	return retVal
}

// LiveOf returns the live columns with the given Aux flag in increasing order.
func (m *VarMap) LiveOf(aux bool) []int {
	retVal := make([]int, 0, len(m.live))
	for _, j := range m.live {
		if m.cols[j].Aux == aux {
			retVal = append(retVal, j)
		}
	}
	return retVal
}

// Eliminated returns the eliminated columns in elimination order.
func (m *VarMap) Eliminated() []int {
	retVal := make([]int, len(m.eliminated))
	copy(retVal, m.eliminated)
	return retVal
}

// Eliminate moves live column j to the end of the eliminated list.
func (m *VarMap) Eliminate(j int) error {
	if (j < 0) || (len(m.cols) <= j) {
		return fmt.Errorf("Eliminate: column %d is not in [0, %d)", j, len(m.cols))
	}
	if !m.isLive[j] {
		return fmt.Errorf("Eliminate: column %d is already eliminated", j)
	}
	m.isLive[j] = false
	m.eliminated = append(m.eliminated, j)
	for i, k := range m.live {
		if k == j {
			m.live = append(m.live[:i], m.live[i+1:]...)
			break
		}
	}
	return nil
}

// Kept returns, for each original variable 0,...,dim-1, its working column,
// or -1 if no kept column stands for it.
func (m *VarMap) Kept(dim int) []int {
	retVal := make([]int, dim)
	for i := range retVal {
		retVal[i] = -1
	}
	for j, col := range m.cols {
		if !col.Aux && (0 <= col.Orig) && (col.Orig < dim) {
			retVal[col.Orig] = j
		}
	}
	return retVal
}
