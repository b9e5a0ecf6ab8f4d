package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitaehq/converse"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of converse",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("converse version %s\n", strings.TrimSpace(converse.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
