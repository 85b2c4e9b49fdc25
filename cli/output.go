package cli

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/predrag3141/polyrep/ddops"
	"github.com/predrag3141/polyrep/polyfile"
	"github.com/predrag3141/polyrep/polytope"
)

// stdout as an --output value writes to the command's standard output.
const stdout = "-"

// outputPath returns the --output value, or input with ext appended as
// PORTA names its result files.
func outputPath(output, input, ext string) string {
	if output != "" {
		return output
	}
	return input + ext
}

// writeOutput creates path, or uses the command's standard output for "-",
// and passes it to write.
func writeOutput(cmd *cobra.Command, path string, write func(w io.Writer) error) error {
	if path == stdout {
		return write(cmd.OutOrStdout())
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", path, err)
	}
	if err = write(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("could not close %q: %w", path, err)
	}
	return nil
}

func readPoints(path string) (*polytope.VRep, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	v, err := polyfile.ReadPoints(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func readInequalities(path string) (*polyfile.IneqFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	f, err := polyfile.ReadInequalities(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// logReport writes a summary of report and a warning for each fractional
// row.
func logReport(logger *slog.Logger, report *ddops.Report) {
	if report == nil {
		return
	}
	logger.Info(
		"done",
		"run", report.RunID,
		"mode", report.Mode,
		"promotions", report.Promotions,
		"peakRows", report.PeakRows,
		"dimension", report.Dimension,
	)
	for _, rowErr := range report.Fractional {
		logger.Warn("row left fractional", "kind", rowErr.Kind, "row", rowErr.Row)
	}
}
