package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vitaehq/converse"
	"github.com/vitaehq/converse/internal/logging"
	mcpadapter "github.com/vitaehq/converse/pkg/adapters/mcp"
	"github.com/vitaehq/converse/pkg/adapters/memory"
	"github.com/vitaehq/converse/pkg/adapters/webhook"
	"github.com/vitaehq/converse/pkg/session"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [flow-file]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the engine as an MCP server so AI agents can drive conversations as tools.

Supported transports:
- stdio (default): Standard Input/Output, for local process integration.
- sse: Server-Sent Events over HTTP, for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		def, err := loadFlow(flowPath(cmd, args))
		if err != nil {
			log.Fatalf("Error loading flow: %v", err)
		}

		logger := logging.New(slog.LevelDebug)
		slog.SetDefault(logger)

		engine, err := converse.New(def,
			converse.WithInvoker(webhook.NewInvoker()),
			converse.WithLogger(logger),
		)
		if err != nil {
			log.Fatalf("Error initializing engine: %v", err)
		}

		svc := session.NewService(engine, session.NewManager(memory.NewStore()))
		srv := mcpadapter.NewServer(svc, def)

		switch transport {
		case "stdio":
			// Keep logs off Stdout so they don't corrupt JSON-RPC.
			log.SetOutput(os.Stderr)
			slog.Info("Starting Converse MCP server (stdio)")
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting Converse MCP server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				if err != http.ErrServerClosed {
					slog.Error("MCP server execution failed", "error", err)
					os.Exit(1)
				}
			}
			slog.Info("MCP server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
