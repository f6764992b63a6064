package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/livevote/cliparse"
	"github.com/danielhkuo/livevote/db"
	"github.com/danielhkuo/livevote/middleware"
	"github.com/danielhkuo/livevote/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect and verify
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Create router
	mux := router.NewRouter(dbConn, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal, then let in-flight ballots commit
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
