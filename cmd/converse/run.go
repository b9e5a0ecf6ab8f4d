package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vitaehq/converse"
	"github.com/vitaehq/converse/internal/logging"
	"github.com/vitaehq/converse/internal/presentation/tui"
	"github.com/vitaehq/converse/pkg/adapters/webhook"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flow-file]",
	Short: "Run a flow as an interactive conversation",
	Long:  `Starts the engine in interactive mode, asking questions on the terminal and reading answers from stdin.`,
	Run: func(cmd *cobra.Command, args []string) {
		headless, _ := cmd.Flags().GetBool("headless")
		debug, _ := cmd.Flags().GetBool("debug")

		def, err := loadFlow(flowPath(cmd, args))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		opts := []converse.Option{
			converse.WithInvoker(webhook.NewInvoker()),
		}
		if debug {
			opts = append(opts, converse.WithLogger(logging.New(slog.LevelDebug)))
		}

		engine, err := converse.New(def, opts...)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		runner := converse.NewRunner()
		runner.Input = os.Stdin
		runner.Output = os.Stdout
		runner.Headless = headless

		interactive := term.IsTerminal(int(os.Stdout.Fd()))
		if interactive && !headless {
			tui.PrintBanner()
			runner.Renderer = tui.NewRenderer()
		}

		if err := runner.Run(context.Background(), engine); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (plain IO, no banner or system hints)")
	runCmd.Flags().Bool("debug", false, "Enable debug logging")

	// Running without a subcommand starts a conversation.
	rootCmd.Run = runCmd.Run
}
