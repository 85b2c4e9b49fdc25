package rational

// Copyright (c) 2025 Colin McRae

import (
	"math/big"

	"github.com/predrag3141/polyrep/util"
)

// Mode names the encoding a Context currently computes in.
type Mode int

const (
	// Fixed is int64 numerators and denominators bounded by a capacity
	Fixed Mode = iota

	// Arbitrary is math/big numerators and denominators
	Arbitrary
)

// String returns "fixed" or "arbitrary".
func (m Mode) String() string {
	if m == Arbitrary {
		return "arbitrary"
	}
	return "fixed"
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "fixed":
		*m = Fixed
	case "arbitrary":
		*m = Arbitrary
	default:
		return ErrFmtInvalid
	}
	return nil
}

// Arith is the arithmetic strategy of a Context. Operands may use either
// encoding. In Fixed mode, a result whose numerator magnitude or denominator
// exceeds the capacity of the Context, or that overflows int64, raises the
// overflow flag of the Context. The returned Value is still exact.
//
// Quo and RowPrim panic with ErrDivByZero on a zero divisor.
type Arith interface {
	Mode() Mode
	Add(a, b Value) Value
	Sub(a, b Value) Value
	Mul(a, b Value) Value
	Quo(a, b Value) Value

	// RowPrim sets dst[i] = src[i] / pivot for every i. dst and src may be
	// the same slice.
	RowPrim(dst, src []Value, pivot Value)
}

// fixedArith computes in int64, flagging its Context when a result does not
// fit the capacity. Results that overflow int64 are computed in math/big.
type fixedArith struct {
	ctx *Context
}

func (f fixedArith) Mode() Mode {
	return Fixed
}

func (f fixedArith) check(v Value) Value {
	if !v.fits(f.ctx.limit) {
		f.ctx.overflow = true
	}
	return v
}

// operands returns whether a and b can both be handled in int64, lowering
// big operands that fit.
func (f fixedArith) operands(a, b Value) (Value, Value, bool) {
	a, b = a.compact(), b.compact()
	if a.big != nil || b.big != nil {
		f.ctx.overflow = true
		return a, b, false
	}
	return a, b, true
}

func (f fixedArith) Add(a, b Value) Value {
	a, b, ok := f.operands(a, b)
	if !ok {
		return bigAdd(a, b)
	}
	if a.dm1 == 0 && b.dm1 == 0 {
		if sum, ok := util.AddInt64(a.num, b.num); ok && sum != minInt64 {
			return f.check(Value{num: sum})
		}
		f.ctx.overflow = true
		return bigAdd(a, b)
	}
	g := util.GCD64(a.den(), b.den())
	aScale, bScale := b.den()/g, a.den()/g
	left, ok1 := util.MulInt64(a.num, aScale)
	right, ok2 := util.MulInt64(b.num, bScale)
	num, ok3 := util.AddInt64(left, right)
	den, ok4 := util.MulInt64(a.den(), aScale)
	if !(ok1 && ok2 && ok3 && ok4) || num == minInt64 {
		f.ctx.overflow = true
		return bigAdd(a, b)
	}
	return f.check(reduceFixed(num, den))
}

func (f fixedArith) Sub(a, b Value) Value {
	return f.Add(a, b.Neg())
}

func (f fixedArith) Mul(a, b Value) Value {
	a, b, ok := f.operands(a, b)
	if !ok {
		return bigMul(a, b)
	}
	if a.num == 0 || b.num == 0 {
		return Value{}
	}
	// Cross reduction keeps intermediate products small
	g1 := util.GCD64(a.num, b.den())
	g2 := util.GCD64(b.num, a.den())
	num, ok1 := util.MulInt64(a.num/g1, b.num/g2)
	den, ok2 := util.MulInt64(a.den()/g2, b.den()/g1)
	if !(ok1 && ok2) {
		f.ctx.overflow = true
		return bigMul(a, b)
	}
	return f.check(Value{num: num, dm1: den - 1})
}

func (f fixedArith) Quo(a, b Value) Value {
	return f.Mul(a, inverse(b))
}

func (f fixedArith) RowPrim(dst, src []Value, pivot Value) {
	inv := inverse(pivot)
	for i := range src {
		dst[i] = f.Mul(src[i], inv)
	}
}

// bigArith computes in math/big and never flags.
type bigArith struct{}

func (bigArith) Mode() Mode {
	return Arbitrary
}

func (bigArith) Add(a, b Value) Value {
	return bigAdd(a, b)
}

func (bigArith) Sub(a, b Value) Value {
	return bigAdd(a, b.Neg())
}

func (bigArith) Mul(a, b Value) Value {
	return bigMul(a, b)
}

func (bigArith) Quo(a, b Value) Value {
	return bigMul(a, inverse(b))
}

func (bigArith) RowPrim(dst, src []Value, pivot Value) {
	inv := inverse(pivot)
	for i := range src {
		dst[i] = bigMul(src[i], inv)
	}
}

const minInt64 = -1 << 63

func bigAdd(a, b Value) Value {
	a, b = a.toBig(), b.toBig()
	num := new(big.Int).Mul(a.big.num, b.big.den)
	num.Add(num, new(big.Int).Mul(b.big.num, a.big.den))
	den := new(big.Int).Mul(a.big.den, b.big.den)
	return normBig(num, den)
}

func bigMul(a, b Value) Value {
	a, b = a.toBig(), b.toBig()
	num := new(big.Int).Mul(a.big.num, b.big.num)
	den := new(big.Int).Mul(a.big.den, b.big.den)
	return normBig(num, den)
}

// inverse returns 1/v in the encoding of v.
func inverse(v Value) Value {
	if v.IsZero() {
		panic(ErrDivByZero)
	}
	if v.big != nil {
		return normBig(new(big.Int).Set(v.big.den), new(big.Int).Set(v.big.num))
	}
	if v.num < 0 {
		// -num cannot overflow since Values never hold math.MinInt64 in the
		// fixed encoding
		return Value{num: -v.den(), dm1: -v.num - 1}
	}
	return Value{num: v.den(), dm1: v.num - 1}
}
