package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/speedrun-hq/romanizer/pkg/config"
	"github.com/speedrun-hq/romanizer/pkg/logger"
	"github.com/speedrun-hq/romanizer/pkg/roman"
	"github.com/speedrun-hq/romanizer/pkg/server"
)

func main() {
	// Arguments are converted directly without starting the server
	if len(os.Args) > 1 {
		if err := convertArgs(os.Stdout, os.Args[1:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	// Load configuration from environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.NewStdLogger(cfg.LoggerConfig.Coloring, cfg.LoggerConfig.Level)

	// Set up context with cancellation on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalCh
		l.Notice("Received termination signal, shutting down gracefully...")
		cancel()
	}()

	l.Info("Starting the romanizer service on port %s...", cfg.Port)
	if err := server.NewServer(cfg, l).Start(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// convertArgs writes one "decimal numeral" line per argument, "-" marking
// decimals without a numeral.
func convertArgs(w io.Writer, args []string) error {
	for _, arg := range args {
		decimal, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid decimal %q: %w", arg, err)
		}
		if _, err := fmt.Fprintf(w, "%d %s\n", decimal, roman.Convert(decimal).OrElse("-")); err != nil {
			return err
		}
	}
	return nil
}
