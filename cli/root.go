// Package cli implements the porta command line: traf converts between
// .poi and .ieq files, fmel projects out variables and valid finds a point
// of a polyhedron.
package cli

// Copyright (c) 2025 Colin McRae

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/predrag3141/polyrep/ddops"
)

// RootOptions holds the flags shared by every command.
type RootOptions struct {
	Verbose          bool
	ConfigPath       string
	DisableChernikov bool
	LongArithmetic   bool
	OptimizeOrder    bool
}

// NewRootCommand creates the root porta command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "porta",
		Short: "Exact conversions between vertex and facet descriptions of polyhedra",
		Long: `Convert between points and rays (.poi files) and equalities and
inequalities (.ieq files) with exact rational arithmetic, eliminate variables
by Fourier-Motzkin and find valid points.`,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log each phase to stderr")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML or TOML configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.DisableChernikov, "no-chernikov", "c", false, "disable the Chernikov rule")
	cmd.PersistentFlags().BoolVarP(&opts.LongArithmetic, "long", "l", false, "use arbitrary precision from the start")
	cmd.PersistentFlags().BoolVarP(&opts.OptimizeOrder, "optimize", "o", false, "choose the elimination order heuristically")

	cmd.AddCommand(NewTrafCommand(opts))
	cmd.AddCommand(NewFmelCommand(opts))
	cmd.AddCommand(NewValidCommand(opts))

	return cmd
}

// config returns the configuration file, if any, with the command line
// switches applied on top and a logger writing to the command's stderr.
func (opts *RootOptions) config(cmd *cobra.Command) (ddops.Config, error) {
	var cfg ddops.Config
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = ddops.LoadConfig(opts.ConfigPath); err != nil {
			return cfg, err
		}
	}
	cfg.DisableChernikov = cfg.DisableChernikov || opts.DisableChernikov
	cfg.LongArithmetic = cfg.LongArithmetic || opts.LongArithmetic
	cfg.OptimizeOrder = cfg.OptimizeOrder || opts.OptimizeOrder

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	cfg.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return cfg, nil
}
