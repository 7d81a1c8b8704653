// Command hoteldesk runs the hotel front desk console.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bissquit/hotel-desk/internal/app"
	"github.com/bissquit/hotel-desk/internal/config"
	"github.com/bissquit/hotel-desk/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Path to yaml configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Println("hoteldesk", version.String())
		return
	}

	if err := run(*configPath); err != nil {
		slog.Error("hoteldesk failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	application, err := app.New(cfg, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	// Interrupts keep their default behavior: the console blocks on stdin.
	runErr := application.Run(context.Background())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := application.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}

	return runErr
}
