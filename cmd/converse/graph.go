package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitaehq/converse/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [flow-file]",
	Short: "Export the flow graph visualization",
	Long:  `Parses the flow definition and outputs a Mermaid diagram (graph TD) representing the conversation logic.`,
	Run: func(cmd *cobra.Command, args []string) {
		def, err := loadFlow(flowPath(cmd, args))
		if err != nil {
			fmt.Printf("Error loading flow: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(def, nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
