package cli

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/predrag3141/polyrep/ddops"
	"github.com/predrag3141/polyrep/polyfile"
)

// NewFmelCommand creates the fmel command, which projects a .ieq file by
// Fourier-Motzkin elimination along its ELIMINATION_ORDER section.
func NewFmelCommand(rootOpts *RootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "fmel <file.ieq>",
		Short: "Eliminate variables by Fourier-Motzkin elimination",
		Long: `Project the polyhedron of a .ieq file by eliminating the variables named
in its ELIMINATION_ORDER section: an entry k > 0 eliminates the variable as
the k-th and 0 keeps it. The result is written to the input path with .ieq
appended unless --output is given.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmel(rootOpts, output, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&output, "output", "", `output file, "-" for standard output`)
	return cmd
}

func runFmel(opts *RootOptions, output, input string, cmd *cobra.Command) error {
	cfg, err := opts.config(cmd)
	if err != nil {
		return err
	}
	f, err := readInequalities(input)
	if err != nil {
		return err
	}
	if f.EliminationOrder == nil {
		return fmt.Errorf("fmel: %q has no ELIMINATION_ORDER section", input)
	}
	h, report, err := ddops.EliminateVariables(f.HRep, f.EliminationOrder, cfg)
	logReport(cfg.Logger, report)
	if err != nil {
		return err
	}
	return writeOutput(cmd, outputPath(output, input, ".ieq"), func(w io.Writer) error {
		return polyfile.WriteInequalities(w, polyfile.IneqFile{HRep: *h})
	})
}
