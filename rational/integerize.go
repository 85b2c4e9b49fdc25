package rational

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/predrag3141/polyrep/util"
)

// Vector is a slice of Values that can be tracked by a Context.
type Vector []Value

// EachValue implements Store.
func (vec *Vector) EachValue(fn func(v *Value)) {
	for i := range *vec {
		fn(&(*vec)[i])
	}
}

// ScaleToIntegers returns the integer row proportional to row by a positive
// factor whose entries have greatest common divisor 1. A zero row is returned
// unchanged.
//
// The least common multiple of the denominators is accumulated in increasing
// order of denominator. In Fixed mode, if that multiple or a scaled entry
// exceeds the capacity, the row is scaled with math/big when promotion is
// enabled. When promotion is disabled, a copy of row and an error wrapping
// ErrIntegerizationOverflow are returned.
func ScaleToIntegers(ctx *Context, row []Value) ([]Value, error) {
	if ctx.mode == Fixed && allFixed(row) {
		if scaled, ok := scaleFixed(row, ctx.limit); ok {
			return scaled, nil
		}
		if !ctx.allowPromotion {
			kept := make([]Value, len(row))
			copy(kept, row)
			return kept, fmt.Errorf("ScaleToIntegers: capacity %d: %w", ctx.limit, ErrIntegerizationOverflow)
		}
	}
	return scaleBig(row, ctx.mode == Fixed), nil
}

func allFixed(row []Value) bool {
	for _, v := range row {
		if v.compact().big != nil {
			return false
		}
	}
	return true
}

func scaleFixed(row []Value, limit int64) ([]Value, bool) {
	dens := make([]int64, 0, len(row))
	for _, v := range row {
		v = v.compact()
		if v.dm1 != 0 {
			dens = append(dens, v.den())
		}
	}
	sort.Slice(dens, func(i, j int) bool { return dens[i] < dens[j] })
	lcm := int64(1)
	for _, den := range dens {
		var ok bool
		if lcm, ok = util.LCM64(lcm, den, limit); !ok {
			return nil, false
		}
	}
	nums := make([]int64, len(row))
	g := int64(0)
	for i, v := range row {
		v = v.compact()
		num, ok := util.MulInt64(v.num, lcm/v.den())
		if !ok || !util.FitsCapacity(num, limit) {
			return nil, false
		}
		nums[i] = num
		g = util.GCD64(g, num)
	}
	scaled := make([]Value, len(row))
	for i, num := range nums {
		if g > 1 {
			num /= g
		}
		scaled[i] = Value{num: num}
	}
	return scaled, true
}

// scaleBig scales row with math/big. If compact is set, entries that fit int64
// are returned in the fixed encoding.
func scaleBig(row []Value, compact bool) []Value {
	dens := make([]*big.Int, 0, len(row))
	for _, v := range row {
		if !v.IsInt() {
			dens = append(dens, v.Den())
		}
	}
	sort.Slice(dens, func(i, j int) bool { return dens[i].Cmp(dens[j]) < 0 })
	lcm := big.NewInt(1)
	g := new(big.Int)
	for _, den := range dens {
		g.GCD(nil, nil, lcm, den)
		lcm.Mul(lcm, new(big.Int).Quo(den, g))
	}
	nums := make([]*big.Int, len(row))
	g.SetInt64(0)
	for i, v := range row {
		num := new(big.Int).Quo(lcm, v.Den())
		num.Mul(num, v.Num())
		nums[i] = num
		g.GCD(nil, nil, g, new(big.Int).Abs(num))
	}
	scaled := make([]Value, len(row))
	for i, num := range nums {
		if g.Sign() > 0 && g.Cmp(bigOne) != 0 {
			num.Quo(num, g)
		}
		scaled[i] = Value{big: &bigPair{num: num, den: big.NewInt(1)}}
		if compact {
			scaled[i] = scaled[i].compact()
		}
	}
	return scaled
}
