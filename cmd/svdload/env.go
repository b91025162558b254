package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"omibyte.io/svdload/builder"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print svdload environment information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, line := range builder.Environment().List() {
			fmt.Fprintf(cmd.OutOrStdout(), "set %s\n", line)
		}
	},
}
