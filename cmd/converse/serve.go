package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/vitaehq/converse"
	"github.com/vitaehq/converse/internal/logging"
	"github.com/vitaehq/converse/pkg/adapters/httpapi"
	"github.com/vitaehq/converse/pkg/adapters/memory"
	redisstore "github.com/vitaehq/converse/pkg/adapters/redis"
	"github.com/vitaehq/converse/pkg/adapters/sqlite"
	"github.com/vitaehq/converse/pkg/adapters/webhook"
	"github.com/vitaehq/converse/pkg/observability"
	"github.com/vitaehq/converse/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve [flow-file]",
	Short: "Start the HTTP session server",
	Long:  `Starts the engine in server mode, exposing session management and answer submission as a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		storeKind, _ := cmd.Flags().GetString("store")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		sqlitePath, _ := cmd.Flags().GetString("sqlite-path")
		withMetrics, _ := cmd.Flags().GetBool("metrics")

		logger := logging.New(slog.LevelInfo)

		def, err := loadFlow(flowPath(cmd, args))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		mgr, cleanup, err := buildManager(storeKind, redisAddr, sqlitePath, logger)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()

		engineOpts := []converse.Option{
			converse.WithInvoker(webhook.NewInvoker()),
			converse.WithLogger(logger),
		}
		serverOpts := []httpapi.Option{httpapi.WithLogger(logger)}

		if withMetrics {
			reg := prometheus.NewRegistry()
			metrics := observability.NewMetrics(reg)
			engineOpts = append(engineOpts, converse.WithLifecycleHooks(metrics.Hooks()))
			serverOpts = append(serverOpts, httpapi.WithMetrics(reg))
		}

		engine, err := converse.New(def, engineOpts...)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		handler, err := httpapi.NewHandler(session.NewService(engine, mgr), serverOpts...)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		srv := &http.Server{
			Addr:    addr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Converse server on %s\n", srv.Addr)
			fmt.Printf("Serving flow: %s (%s)\n", def.Name, def.ID)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Converse server stopped gracefully")
		}
	},
}

// buildManager wires the session manager for the selected backend. Redis
// additionally gets a distributed lock so multiple server replicas can
// share the store.
func buildManager(kind, redisAddr, sqlitePath string, logger *slog.Logger) (*session.Manager, func(), error) {
	noop := func() {}

	switch kind {
	case "memory":
		return session.NewManager(memory.NewStore(), session.WithLogger(logger)), noop, nil

	case "redis":
		client := backend.NewClient(&backend.Options{Addr: redisAddr})
		store := redisstore.NewFromClient(client)
		mgr := session.NewManager(store,
			session.WithLogger(logger),
			session.WithLocker(redisstore.NewLocker(client, "converse:lock:")),
		)
		return mgr, func() { _ = client.Close() }, nil

	case "sqlite":
		store, err := sqlite.Open(sqlitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("opening sqlite store: %w", err)
		}
		return session.NewManager(store, session.WithLogger(logger)), func() { _ = store.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown store %q (supported: memory, redis, sqlite)", kind)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("store", "memory", "Session store backend: memory, redis or sqlite")
	serveCmd.Flags().String("redis-addr", "localhost:6379", "Redis address (store=redis)")
	serveCmd.Flags().String("sqlite-path", "converse.db", "SQLite database path (store=sqlite)")
	serveCmd.Flags().Bool("metrics", false, "Expose Prometheus metrics on /metrics")
}
