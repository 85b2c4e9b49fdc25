package main

// Copyright (c) 2025 Colin McRae

import (
	"os"

	"github.com/predrag3141/polyrep/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
