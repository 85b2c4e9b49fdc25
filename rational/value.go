// Package rational provides the exact fractions used by the double description
// engine. A Value is encoded either with int64 numerator and denominator or,
// after promotion of its Context, with math/big integers. Arithmetic is never
// called on Values directly by the algorithms: it goes through the Arith
// strategy selected by the Context.
package rational

// Copyright (c) 2025 Colin McRae

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/predrag3141/polyrep/util"
)

// Common errors returned by functions in this package.
var (
	ErrDivByZero              = errors.New("division by zero")
	ErrFmtInvalid             = errors.New("invalid rational number format")
	ErrArithmeticOverflow     = errors.New("fixed-width arithmetic overflow with promotion disabled")
	ErrIntegerizationOverflow = errors.New("row cannot be scaled to integers within fixed width")
)

// Value is an immutable fraction with positive denominator, always reduced to
// lowest terms.
//
// In the fixed encoding the denominator is stored biased by one, so the zero
// value of Value is 0/1. In the arbitrary encoding big is non-nil and the
// int64 fields are unused. Big integers are never modified after a Value that
// holds them is created, so Values may be copied freely.
type Value struct {
	num int64
	dm1 int64 // denominator minus one
	big *bigPair
}

type bigPair struct {
	num *big.Int
	den *big.Int
}

// FromInt64 returns n/1.
func FromInt64(n int64) Value {
	if n == math.MinInt64 {
		return Value{big: &bigPair{num: big.NewInt(n), den: big.NewInt(1)}}
	}
	return Value{num: n}
}

// New returns num/den in lowest terms, or ErrDivByZero if den is 0.
func New(num, den int64) (Value, error) {
	if den == 0 {
		return Value{}, ErrDivByZero
	}
	if num == math.MinInt64 || den == math.MinInt64 {
		return normBig(big.NewInt(num), big.NewInt(den)), nil
	}
	if den < 0 {
		num, den = -num, -den
	}
	return reduceFixed(num, den), nil
}

// MustNew is like New but panics if den is 0.
func MustNew(num, den int64) Value {
	v, err := New(num, den)
	if err != nil {
		panic(err)
	}
	return v
}

// FromBig returns num/den in lowest terms. The arguments are not retained.
func FromBig(num, den *big.Int) (Value, error) {
	if den.Sign() == 0 {
		return Value{}, ErrDivByZero
	}
	return normBig(new(big.Int).Set(num), new(big.Int).Set(den)), nil
}

// FromRat converts r, choosing the fixed encoding when both parts fit int64.
func FromRat(r *big.Rat) Value {
	v := normBig(new(big.Int).Set(r.Num()), new(big.Int).Set(r.Denom()))
	return v.compact()
}

// Parse reads "n" or "n/d" with base 10 integers of any length. Only the
// numerator may carry a sign. The result uses the fixed encoding when it fits
// int64.
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "/")
	if len(parts) > 2 || parts[0] == "" {
		return Value{}, fmt.Errorf("%w: %q", ErrFmtInvalid, s)
	}
	num, ok := new(big.Int).SetString(strings.TrimPrefix(parts[0], "+"), 10)
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrFmtInvalid, s)
	}
	den := big.NewInt(1)
	if len(parts) == 2 {
		if strings.HasPrefix(parts[1], "-") || strings.HasPrefix(parts[1], "+") {
			return Value{}, fmt.Errorf("%w: %q", ErrFmtInvalid, s)
		}
		den, ok = new(big.Int).SetString(parts[1], 10)
		if !ok {
			return Value{}, fmt.Errorf("%w: %q", ErrFmtInvalid, s)
		}
		if den.Sign() == 0 {
			return Value{}, fmt.Errorf("%w: %q", ErrDivByZero, s)
		}
	}
	return normBig(num, den).compact(), nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// reduceFixed returns n/d in lowest terms. d must be positive and neither
// argument may be math.MinInt64.
func reduceFixed(n, d int64) Value {
	if n == 0 {
		return Value{}
	}
	if g := util.GCD64(n, d); g > 1 {
		n /= g
		d /= g
	}
	return Value{num: n, dm1: d - 1}
}

// normBig returns n/d in lowest terms in the arbitrary encoding. It takes
// ownership of n and d.
func normBig(n, d *big.Int) Value {
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	if n.Sign() == 0 {
		return Value{big: &bigPair{num: n, den: d.SetInt64(1)}}
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), d)
	if g.Cmp(bigOne) != 0 {
		n.Quo(n, g)
		d.Quo(d, g)
	}
	return Value{big: &bigPair{num: n, den: d}}
}

var bigOne = big.NewInt(1)

// IsBig returns whether v uses the arbitrary-precision encoding.
func (v Value) IsBig() bool {
	return v.big != nil
}

func (v Value) den() int64 {
	return v.dm1 + 1
}

// Sign returns -1, 0 or +1.
func (v Value) Sign() int {
	if v.big != nil {
		return v.big.num.Sign()
	}
	switch {
	case v.num < 0:
		return -1
	case v.num > 0:
		return 1
	}
	return 0
}

// IsZero returns whether v is 0.
func (v Value) IsZero() bool {
	return v.Sign() == 0
}

// IsInt returns whether the denominator of v is 1.
func (v Value) IsInt() bool {
	if v.big != nil {
		return v.big.den.Cmp(bigOne) == 0
	}
	return v.dm1 == 0
}

// Num returns a copy of the numerator of v.
func (v Value) Num() *big.Int {
	if v.big != nil {
		return new(big.Int).Set(v.big.num)
	}
	return big.NewInt(v.num)
}

// Den returns a copy of the denominator of v.
func (v Value) Den() *big.Int {
	if v.big != nil {
		return new(big.Int).Set(v.big.den)
	}
	return big.NewInt(v.den())
}

// Rat returns v as a new big.Rat.
func (v Value) Rat() *big.Rat {
	return new(big.Rat).SetFrac(v.Num(), v.Den())
}

// String returns "n" for integers and "n/d" otherwise.
func (v Value) String() string {
	if v.big != nil {
		if v.IsInt() {
			return v.big.num.String()
		}
		return v.big.num.String() + "/" + v.big.den.String()
	}
	if v.dm1 == 0 {
		return fmt.Sprintf("%d", v.num)
	}
	return fmt.Sprintf("%d/%d", v.num, v.den())
}

// MarshalText implements encoding.TextMarshaler.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Value) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Equal compares numerator and denominator. Since Values are always in lowest
// terms this is also numeric equality, whatever the two encodings are.
func (v Value) Equal(w Value) bool {
	if v.big == nil && w.big == nil {
		return v.num == w.num && v.dm1 == w.dm1
	}
	return v.Num().Cmp(w.Num()) == 0 && v.Den().Cmp(w.Den()) == 0
}

// Cmp returns -1, 0 or +1 according to whether v < w, v == w or v > w.
func (v Value) Cmp(w Value) int {
	if v.big == nil && w.big == nil {
		left, ok1 := util.MulInt64(v.num, w.den())
		right, ok2 := util.MulInt64(w.num, v.den())
		if ok1 && ok2 {
			switch {
			case left < right:
				return -1
			case left > right:
				return 1
			}
			return 0
		}
	}
	return v.Rat().Cmp(w.Rat())
}

// Neg returns -v.
func (v Value) Neg() Value {
	if v.big != nil {
		return Value{big: &bigPair{num: new(big.Int).Neg(v.big.num), den: v.big.den}}
	}
	if v.num == math.MinInt64 {
		return normBig(new(big.Int).Neg(big.NewInt(v.num)), big.NewInt(v.den()))
	}
	return Value{num: -v.num, dm1: v.dm1}
}

// Abs returns |v|.
func (v Value) Abs() Value {
	if v.Sign() < 0 {
		return v.Neg()
	}
	return v
}

// toBig returns v in the arbitrary encoding.
func (v Value) toBig() Value {
	if v.big != nil {
		return v
	}
	return Value{big: &bigPair{num: big.NewInt(v.num), den: big.NewInt(v.den())}}
}

// fits returns whether the numerator magnitude and the denominator of v are
// at most limit.
func (v Value) fits(limit int64) bool {
	if v.big != nil {
		if !v.big.num.IsInt64() || !v.big.den.IsInt64() {
			return false
		}
		return util.FitsCapacity(v.big.num.Int64(), limit) && v.big.den.Int64() <= limit
	}
	return util.FitsCapacity(v.num, limit) && v.den() <= limit
}

// compact returns v in the fixed encoding if v fits int64, otherwise v.
func (v Value) compact() Value {
	if v.big == nil || !v.fits(math.MaxInt64-1) {
		return v
	}
	return Value{num: v.big.num.Int64(), dm1: v.big.den.Int64() - 1}
}
