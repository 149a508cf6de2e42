package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordering/cmd"
	"ordering/internal/pkg/logger"
)

func main() {
	cfg, err := cmd.LoadConfig(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	gormDB, err := cmd.OpenDatabase(cfg, log)
	if err != nil {
		log.Fatal("failed to open database", "error", err)
	}

	app := cmd.NewCompositionRoot(cfg, gormDB, log)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatal("failed to start jobs", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startWebServer(ctx, &app, cfg.HTTPPort, log)

	jobManager.StopAll()
	log.Info("stopped")
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, log *logger.Logger) {
	e := app.CreateServer().NewEcho()

	go func() {
		log.Info("http server started", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", "error", err)
	}
}
