package utils

import (
	"github.com/fsmodding/moddir/cmd"
	"github.com/spf13/cobra"
)

// utilsCmd represents the base command when called without any subcommands
var utilsCmd = &cobra.Command{
	Use:   "utils",
	Short: "Utilities for working with moddir itself",
}

func init() {
	cmd.Add(utilsCmd)
}
