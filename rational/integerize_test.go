package rational

// Copyright (c) 2025 Colin McRae

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func values(strs ...string) []Value {
	retVal := make([]Value, len(strs))
	for i, s := range strs {
		retVal[i] = MustParse(s)
	}
	return retVal
}

func strs(row []Value) []string {
	retVal := make([]string, len(row))
	for i, v := range row {
		retVal[i] = v.String()
	}
	return retVal
}

func TestScaleToIntegers(t *testing.T) {
	ctx := NewContext()
	for _, tc := range []struct {
		input []string
		want  []string
	}{
		{[]string{"1/2", "-1/3", "0", "5/6"}, []string{"3", "-2", "0", "5"}},
		{[]string{"4", "-6", "8"}, []string{"2", "-3", "4"}},
		{[]string{"-2/7"}, []string{"-1"}},
		{[]string{"0", "0"}, []string{"0", "0"}},
	} {
		scaled, err := ScaleToIntegers(ctx, values(tc.input...))
		require.NoError(t, err)
		require.Equal(t, tc.want, strs(scaled), "%v", tc.input)
	}
	require.Equal(t, Fixed, ctx.Mode())
}

func TestScaleToIntegersOverflow(t *testing.T) {
	// The least common multiple 7*11*13 = 1001 exceeds a capacity of 1000
	input := values("1/7", "1/11", "1/13")

	ctx := NewContext(WithCapacity(1000), WithPromotion(false))
	kept, err := ScaleToIntegers(ctx, input)
	require.ErrorIs(t, err, ErrIntegerizationOverflow)
	require.Equal(t, []string{"1/7", "1/11", "1/13"}, strs(kept))

	ctx = NewContext(WithCapacity(1000))
	scaled, err := ScaleToIntegers(ctx, input)
	require.NoError(t, err)
	require.Equal(t, []string{"143", "91", "77"}, strs(scaled))

	// Big operands are scaled in math/big regardless of mode
	big := values("1/99999999999999999999", "1")
	scaled, err = ScaleToIntegers(NewContext(WithArbitraryPrecision()), big)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "99999999999999999999"}, strs(scaled))
}
