package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitaehq/converse/pkg/definition"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flow-file]",
	Short: "Check a flow definition for consistency",
	Long:  `Parses the flow file and reports structural problems: dangling edges, missing branches, duplicate IDs.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Flow is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	def, err := loadFlow(flowPath(cmd, args))
	if err != nil {
		return err
	}

	res := definition.Validate(def)
	if res.IsValid {
		return nil
	}

	for _, e := range res.Errors {
		fmt.Printf("  - %v\n", e)
	}
	return fmt.Errorf("%d problem(s) found", len(res.Errors))
}
