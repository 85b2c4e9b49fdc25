package rational

// Copyright (c) 2025 Colin McRae

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	v, err := New(6, -4)
	require.NoError(t, err)
	require.Equal(t, "-3/2", v.String())
	require.False(t, v.IsBig())
	require.Equal(t, -1, v.Sign())

	v, err = New(0, -7)
	require.NoError(t, err)
	require.True(t, v.IsZero())
	require.True(t, v.Equal(Value{}))
	require.Equal(t, "0", v.String())

	_, err = New(1, 0)
	require.ErrorIs(t, err, ErrDivByZero)

	// math.MinInt64 cannot be negated in int64, so it is held in big integers
	v, err = New(math.MinInt64, -1)
	require.NoError(t, err)
	require.True(t, v.IsBig())
	require.Equal(t, "9223372036854775808", v.String())
}

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  string
		big   bool
	}{
		{"3", "3", false},
		{"-12/8", "-3/2", false},
		{"+5/10", "1/2", false},
		{" 0/9 ", "0", false},
		{"123456789012345678901234567890/3", "41152263004115226300411522630", true},
	} {
		v, err := Parse(tc.input)
		require.NoError(t, err, tc.input)
		require.Equal(t, tc.want, v.String(), tc.input)
		require.Equal(t, tc.big, v.IsBig(), tc.input)
	}
	for _, bad := range []string{"", "1/", "/2", "1/2/3", "x", "1/-2", "1.5"} {
		_, err := Parse(bad)
		require.Errorf(t, err, "%q should not parse", bad)
	}
	_, err := Parse("1/0")
	require.ErrorIs(t, err, ErrDivByZero)
}

func TestEqualAcrossEncodings(t *testing.T) {
	small := MustNew(-7, 3)
	large := small.toBig()
	require.True(t, large.IsBig())
	require.True(t, small.Equal(large))
	require.True(t, large.Equal(small))
	require.Equal(t, 0, small.Cmp(large))
	require.Equal(t, small.String(), large.String())
	require.False(t, large.compact().IsBig())
	require.True(t, large.compact().Equal(small))
	require.True(t, small.Neg().Equal(large.Neg()))
	require.True(t, small.Abs().Equal(MustNew(7, 3)))
}

func TestCmp(t *testing.T) {
	half := MustNew(1, 2)
	third := MustNew(1, 3)
	require.Equal(t, 1, half.Cmp(third))
	require.Equal(t, -1, third.Cmp(half))
	require.Equal(t, -1, half.Neg().Cmp(third.Neg().Neg()))

	// The cross products overflow int64 and the comparison falls back to big.Rat
	x := MustNew(math.MaxInt64-1, math.MaxInt64-2)
	y := MustNew(math.MaxInt64-2, math.MaxInt64-3)
	want := new(big.Rat).SetFrac64(math.MaxInt64-1, math.MaxInt64-2).Cmp(
		new(big.Rat).SetFrac64(math.MaxInt64-2, math.MaxInt64-3),
	)
	require.Equal(t, want, x.Cmp(y))
}

func TestValueJSON(t *testing.T) {
	type holder struct {
		Coeffs []Value `json:"coeffs"`
	}
	h := holder{Coeffs: []Value{MustNew(-1, 2), FromInt64(4), MustParse("99999999999999999999")}}
	data, err := json.Marshal(h)
	require.NoError(t, err)
	require.Equal(t, `{"coeffs":["-1/2","4","99999999999999999999"]}`, string(data))
	var got holder
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got.Coeffs, 3)
	for i := range h.Coeffs {
		require.True(t, h.Coeffs[i].Equal(got.Coeffs[i]))
	}
}
