package polyfile

// Copyright (c) 2025 Colin McRae

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/predrag3141/polyrep/polytope"
	"github.com/predrag3141/polyrep/rational"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func samplePoints() polytope.VRep {
	return polytope.VRep{
		Dim: 2,
		Rows: []polytope.Row{
			polytope.PointRow(0, 0),
			{Coeffs: []rational.Value{rational.FromInt64(1), rational.MustNew(1, 2)}, Const: rational.FromInt64(1)},
			polytope.RayRow(1, 0),
		},
	}
}

func sampleInequalities() IneqFile {
	third := rational.MustNew(1, 3)
	return IneqFile{
		HRep: polytope.HRep{
			Dim:        3,
			Equalities: []polytope.Row{polytope.IntRow([]int64{1, 1, 1}, 1)},
			Inequalities: []polytope.Row{
				polytope.IntRow([]int64{-1, 0, 0}, 0),
				{
					Coeffs: []rational.Value{{}, rational.MustNew(1, 2), rational.FromInt64(-1)},
					Const:  rational.MustNew(3, 4),
				},
				polytope.IntRow([]int64{0, 0, 0}, 1),
			},
			ValidPoint: []rational.Value{third, third, third},
		},
		EliminationOrder: []int{0, 1, 0},
	}
}

func requireSameRows(t *testing.T, expected, actual []polytope.Row) {
	require.Equal(t, len(expected), len(actual))
	for i := range expected {
		require.Truef(t, expected[i].Equal(actual[i]), "row %d: expected %v, got %v", i, expected[i], actual[i])
	}
}

func TestWritePoints(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePoints(&buf, samplePoints()))
	newGoldie(t).Assert(t, "points", buf.Bytes())
}

func TestWriteInequalities(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInequalities(&buf, sampleInequalities()))
	newGoldie(t).Assert(t, "inequalities", buf.Bytes())
}

func TestReadGoldenFiles(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "golden", "points.golden"))
	require.NoError(t, err)
	v, err := ReadPoints(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, v.Dim)
	expected := samplePoints()
	requireSameRows(t, expected.Rays(), v.Rays())
	requireSameRows(t, expected.Points(), v.Points())

	data, err = os.ReadFile(filepath.Join("testdata", "golden", "inequalities.golden"))
	require.NoError(t, err)
	f, err := ReadInequalities(bytes.NewReader(data))
	require.NoError(t, err)
	want := sampleInequalities()
	require.Equal(t, 3, f.HRep.Dim)
	require.Equal(t, want.EliminationOrder, f.EliminationOrder)
	requireSameRows(t, want.HRep.Equalities, f.HRep.Equalities)
	requireSameRows(t, want.HRep.Inequalities, f.HRep.Inequalities)
	require.Equal(t, 3, len(f.HRep.ValidPoint))
	for _, c := range f.HRep.ValidPoint {
		require.Equal(t, "1/3", c.String())
	}
}

func TestReadInequalitiesForms(t *testing.T) {
	text := strings.Join([]string{
		"DIM = 2",
		"COMMENT",
		"anything GOES here",
		"INEQUALITIES_SECTION",
		"x1 + x2 >= 1",
		"(2) 2x1 - 1/2x2 + 1 <= 3",
		"x1 + x1 - x2 == 4",
		"0 <= 5",
		"END",
		"ignored after END",
	}, "\n")
	f, err := ReadInequalities(strings.NewReader(text))
	require.NoError(t, err)
	require.Nil(t, f.HRep.ValidPoint)
	require.Nil(t, f.EliminationOrder)
	require.Equal(t, 1, len(f.HRep.Equalities))
	require.Equal(t, "(2, -1 | 4)", f.HRep.Equalities[0].String())
	require.Equal(t, 3, len(f.HRep.Inequalities))
	require.Equal(t, "(-1, -1 | -1)", f.HRep.Inequalities[0].String())
	require.Equal(t, "(2, -1/2 | 2)", f.HRep.Inequalities[1].String())
	require.Equal(t, "(0, 0 | 5)", f.HRep.Inequalities[2].String())
}

func TestReadPointsSections(t *testing.T) {
	text := strings.Join([]string{
		"DIM=3",
		"CONV_SECTION",
		"( 1) 1 2 3",
		"2/4 0 -1",
		"CONE_SECTION",
		"(1) 0 0 1",
		"CONV_SECTION",
		"0 0 0",
	}, "\n")
	v, err := ReadPoints(strings.NewReader(text))
	require.NoError(t, err)
	require.Equal(t, 3, v.Dim)
	require.Equal(t, 4, len(v.Rows))
	require.Equal(t, "(1/2, 0, -1 | 1)", v.Rows[1].String())
	require.Equal(t, "(0, 0, 1 | 0)", v.Rows[2].String())
	require.Equal(t, 3, len(v.Points()))
	require.Equal(t, 1, len(v.Rays()))
}

func TestRoundTrip(t *testing.T) {
	v := samplePoints()
	var buf bytes.Buffer
	require.NoError(t, WritePoints(&buf, v))
	got, err := ReadPoints(&buf)
	require.NoError(t, err)
	requireSameRows(t, v.Rays(), got.Rays())
	requireSameRows(t, v.Points(), got.Points())

	// Large values survive without loss
	huge := rational.MustParse("-123456789012345678901234567890/7")
	f := IneqFile{HRep: polytope.HRep{
		Dim:          2,
		Inequalities: []polytope.Row{{Coeffs: []rational.Value{huge, rational.FromInt64(1)}, Const: huge}},
	}}
	buf.Reset()
	require.NoError(t, WriteInequalities(&buf, f))
	g, err := ReadInequalities(&buf)
	require.NoError(t, err)
	requireSameRows(t, f.HRep.Inequalities, g.HRep.Inequalities)
}

func TestSyntaxErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		ieq  bool
		text string
	}{
		{name: "missing DIM", text: "CONV_SECTION\n1 2\nEND"},
		{name: "short point", text: "DIM = 2\nCONV_SECTION\n1\nEND"},
		{name: "bad value", text: "DIM = 1\nCONV_SECTION\n1/0\nEND"},
		{name: "outside section", text: "DIM = 1\n1\nEND"},
		{name: "unknown keyword", text: "DIM = 1\nLOWER_BOUNDS\n0\nEND"},
		{name: "variable out of range", ieq: true, text: "DIM = 2\nINEQUALITIES_SECTION\nx3 <= 1\nEND"},
		{name: "no relation", ieq: true, text: "DIM = 2\nINEQUALITIES_SECTION\nx1 + x2\nEND"},
		{name: "two relations", ieq: true, text: "DIM = 2\nINEQUALITIES_SECTION\nx1 <= x2 <= 1\nEND"},
		{name: "short valid", ieq: true, text: "DIM = 2\nVALID\n0\nINEQUALITIES_SECTION\nx1 <= 1\nEND"},
		{name: "bad order", ieq: true, text: "DIM = 2\nELIMINATION_ORDER\n1 a\nEND"},
		{name: "negative DIM", ieq: true, text: "DIM = -1\nEND"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			if tc.ieq {
				_, err = ReadInequalities(strings.NewReader(tc.text))
			} else {
				_, err = ReadPoints(strings.NewReader(tc.text))
			}
			require.Error(t, err)
			require.ErrorIs(t, err, ErrSyntax)
		})
	}
}
