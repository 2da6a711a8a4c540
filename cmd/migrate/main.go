package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ellenorzo/ellenorzo-backend/internal/app"
)

// migrate applies the school schema to the configured store and exits.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	a, err := app.New(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate failed: %v\n", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.Log.Info("schema up to date", "driver", a.Cfg.DBDriver, "elapsed", time.Since(start).String())
	a.Close(shutdownCtx)
}
