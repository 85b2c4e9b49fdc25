package util

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"math"
	"math/bits"
)

// AbsInt64 returns |x|. The caller must ensure x != math.MinInt64.
func AbsInt64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// GCD64 returns the non-negative greatest common divisor of u and v, with
// GCD64(0, 0) = 0.
func GCD64(u, v int64) int64 {
	u, v = AbsInt64(u), AbsInt64(v)
	for v != 0 {
		u, v = v, u%v
	}
	return u
}

// MulInt64 returns x * y and whether the product is exact in int64.
func MulInt64(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	if x == math.MinInt64 || y == math.MinInt64 {
		return 0, false
	}
	negative := (x < 0) != (y < 0)
	hi, lo := bits.Mul64(uint64(AbsInt64(x)), uint64(AbsInt64(y)))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, false
	}
	if negative {
		return -int64(lo), true
	}
	return int64(lo), true
}

// AddInt64 returns x + y and whether the sum is exact in int64.
func AddInt64(x, y int64) (int64, bool) {
	sum := x + y
	if (x > 0 && y > 0 && sum < 0) || (x < 0 && y < 0 && sum >= 0) {
		return 0, false
	}
	return sum, true
}

// LCM64 returns the least common multiple of positive u and v, and whether
// it is bounded in absolute value by limit. The check divides back instead of
// trusting the product, the same test used on a running least common multiple
// of a row's denominators.
func LCM64(u, v, limit int64) (int64, bool) {
	g := GCD64(u, v)
	if g == 0 {
		return 0, true
	}
	quotient := AbsInt64(u) / g
	lcm, ok := MulInt64(quotient, AbsInt64(v))
	if !ok || lcm/AbsInt64(v) != quotient || lcm > limit {
		return 0, false
	}
	return lcm, true
}

// FitsCapacity returns whether |x| <= limit.
func FitsCapacity(x, limit int64) bool {
	if x == math.MinInt64 {
		return false
	}
	return AbsInt64(x) <= limit
}

// CopyIntToInt64 converts an int slice to an int64 slice
func CopyIntToInt64(input []int) []int64 {
	retVal := make([]int64, len(input))
	for i := 0; i < len(input); i++ {
		retVal[i] = int64(input[i])
	}
	return retVal
}

// IsPermutation returns whether perm holds each of 0,...,len(perm)-1 exactly once.
func IsPermutation(perm []int) bool {
	seen := make([]bool, len(perm))
	for _, p := range perm {
		if (p < 0) || (len(perm) <= p) || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}

// InvertEliminationOrder turns an elimination order, in which order[j] = k > 0
// means that variable j is the k-th to be eliminated and order[j] = 0 means
// that variable j is kept, into a column permutation. The returned slice lists
// the variables to eliminate in elimination order, followed by the kept
// variables in increasing order. The second return value is the number of
// variables to eliminate.
//
// Negative entries, entries larger than the number of eliminated variables,
// duplicates and holes are reported as errors.
func InvertEliminationOrder(order []int, dim int) ([]int, int, error) {
	if len(order) != dim {
		return nil, 0, fmt.Errorf(
			"InvertEliminationOrder: order has %d entries but the dimension is %d",
			len(order), dim,
		)
	}
	numToEliminate := 0
	for j := 0; j < dim; j++ {
		if order[j] < 0 {
			return nil, 0, fmt.Errorf(
				"InvertEliminationOrder: order[%d] = %d < 0", j, order[j],
			)
		}
		if order[j] > 0 {
			numToEliminate++
		}
	}
	perm := make([]int, dim)
	filled := make([]bool, numToEliminate)
	kept := numToEliminate
	for j := 0; j < dim; j++ {
		k := order[j]
		if k == 0 {
			perm[kept] = j
			kept++
			continue
		}
		if k > numToEliminate {
			return nil, 0, fmt.Errorf(
				"InvertEliminationOrder: order[%d] = %d exceeds the %d variables to eliminate",
				j, k, numToEliminate,
			)
		}
		if filled[k-1] {
			return nil, 0, fmt.Errorf(
				"InvertEliminationOrder: position %d appears more than once", k,
			)
		}
		filled[k-1] = true
		perm[k-1] = j
	}
	for k := 0; k < numToEliminate; k++ {
		if !filled[k] {
			return nil, 0, fmt.Errorf("InvertEliminationOrder: position %d is missing", k+1)
		}
	}
	if !IsPermutation(perm) {
		return nil, 0, fmt.Errorf("InvertEliminationOrder: %v is not a permutation", perm)
	}
	return perm, numToEliminate, nil
}
