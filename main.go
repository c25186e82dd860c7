package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/peer-survey/cliparse"
	"github.com/danielhkuo/peer-survey/db"
	"github.com/danielhkuo/peer-survey/handlers"
	"github.com/danielhkuo/peer-survey/reconcile"
	"github.com/danielhkuo/peer-survey/router"
	"github.com/danielhkuo/peer-survey/sheet"
	"github.com/danielhkuo/peer-survey/staging"
	"github.com/danielhkuo/peer-survey/status"
)

func main() {
	// Load .env if present; real environment variables win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	os.Exit(run(os.Args[1:]))
}

// run executes one command and returns the process exit code. Deferred
// cleanup runs before main exits.
func run(args []string) int {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		return 1
	}

	dialect := sheet.Dialect(cfg.DatabaseType)

	// Connect to the database
	dbConn, err := db.Open(dialect, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		return 1
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, dialect); err != nil {
		slog.Error("schema creation failed", "error", err)
		return 1
	}

	store := sheet.NewSQLStore(dbConn, dialect)
	if err := staging.CreateSheets(context.Background(), store); err != nil {
		slog.Error("sheet creation failed", "error", err)
		return 1
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	statusStore := status.NewStore(dbConn, dialect)
	reconciler := reconcile.New(store, statusStore)

	if cfg.Command == cliparse.CommandReconcile {
		return runReconcile(reconciler, cfg)
	}

	// Create router
	mux := router.NewRouter(
		handlers.NewSubmissionHandler(staging.NewWriter(store), statusStore, cfg),
		handlers.NewAdminHandler(reconciler, statusStore, store, cfg),
		cfg.OperatorKey,
	)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
		return 1
	}
	slog.Info("Server closed", "error", err)
	return 0
}

// runReconcile performs one consolidation run and returns the exit code.
func runReconcile(reconciler *reconcile.Reconciler, cfg cliparse.Config) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := reconciler.Run(ctx)
	if err != nil {
		slog.Error("reconcile failed", "error", err)
		return 1
	}
	if sum.Skipped {
		slog.Warn("survey is still active; switch it off before reconciling")
	}

	if cfg.SummaryFile != "" {
		if err := reconcile.WriteSummaryFile(cfg.SummaryFile, sum); err != nil {
			slog.Error("failed to write summary", "error", err)
			return 1
		}
		slog.Info("summary written", "path", cfg.SummaryFile)
	}
	return 0
}
