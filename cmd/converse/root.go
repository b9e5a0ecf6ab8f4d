package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vitaehq/converse/pkg/definition"
	"github.com/vitaehq/converse/pkg/domain"
)

var rootCmd = &cobra.Command{
	Use:   "converse",
	Short: "Converse is a branching conversational flow engine",
	Long:  `Converse executes flow definitions (JSON or YAML) as interactive conversations, one user answer at a time.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("flow", "f", "flow.json", "Path to the flow definition file")
}

// loadFlow reads and parses a flow definition, picking the codec from the
// file extension.
func loadFlow(path string) (*domain.FlowDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading flow file: %w", err)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return definition.ParseYAML(data)
	default:
		return definition.Parse(data)
	}
}

// flowPath resolves the flow file from the --flow flag, allowing a bare
// positional argument as shorthand.
func flowPath(cmd *cobra.Command, args []string) string {
	path, _ := cmd.Flags().GetString("flow")
	if !cmd.Flags().Changed("flow") && len(args) > 0 {
		path = args[0]
	}
	return path
}
