package cli

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/predrag3141/polyrep/ddops"
	"github.com/predrag3141/polyrep/polyfile"
)

// NewTrafCommand creates the traf command, which converts a .poi file into
// a .ieq file and a .ieq file into a .poi file.
func NewTrafCommand(rootOpts *RootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "traf <file.poi|file.ieq>",
		Short: "Convert between points and inequalities",
		Long: `Convert the points and rays of a .poi file into the equalities and
facets of their hull, or the equalities and inequalities of a .ieq file into
the vertices and extreme rays of the polyhedron. The result is written to the
input path with .ieq or .poi appended unless --output is given.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraf(rootOpts, output, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&output, "output", "", `output file, "-" for standard output`)
	return cmd
}

func runTraf(opts *RootOptions, output, input string, cmd *cobra.Command) error {
	cfg, err := opts.config(cmd)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(input)); ext {
	case ".poi":
		v, err := readPoints(input)
		if err != nil {
			return err
		}
		h, report, err := ddops.PointsToInequalities(*v, cfg)
		logReport(cfg.Logger, report)
		if err != nil {
			return err
		}
		return writeOutput(cmd, outputPath(output, input, ".ieq"), func(w io.Writer) error {
			return polyfile.WriteInequalities(w, polyfile.IneqFile{HRep: *h})
		})
	case ".ieq":
		f, err := readInequalities(input)
		if err != nil {
			return err
		}
		v, report, err := ddops.InequalitiesToPoints(f.HRep, cfg)
		logReport(cfg.Logger, report)
		if err != nil {
			return err
		}
		return writeOutput(cmd, outputPath(output, input, ".poi"), func(w io.Writer) error {
			return polyfile.WritePoints(w, *v)
		})
	default:
		return fmt.Errorf("traf: %q is neither a .poi nor a .ieq file", input)
	}
}
