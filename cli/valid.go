package cli

// Copyright (c) 2025 Colin McRae

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/predrag3141/polyrep/ddops"
	"github.com/predrag3141/polyrep/polyfile"
	"github.com/predrag3141/polyrep/polytope"
	"github.com/predrag3141/polyrep/rational"
)

// NewValidCommand creates the valid command, which writes a point of the
// polyhedron of a .ieq file as a .poi file.
func NewValidCommand(rootOpts *RootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:          "valid <file.ieq>",
		Short:        "Find a point satisfying every inequality",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValid(rootOpts, output, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&output, "output", "", `output file, "-" for standard output`)
	return cmd
}

func runValid(opts *RootOptions, output, input string, cmd *cobra.Command) error {
	cfg, err := opts.config(cmd)
	if err != nil {
		return err
	}
	f, err := readInequalities(input)
	if err != nil {
		return err
	}
	x, err := ddops.FindValidPoint(f.HRep, cfg)
	if err != nil {
		return err
	}
	v := polytope.VRep{
		Dim:  f.HRep.Dim,
		Rows: []polytope.Row{{Coeffs: x, Const: rational.FromInt64(1)}},
	}
	return writeOutput(cmd, outputPath(output, input, ".poi"), func(w io.Writer) error {
		return polyfile.WritePoints(w, v)
	})
}
