package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	matchboot "github.com/vismithaN/advertisement/internal/match/bootstrap"
	"github.com/vismithaN/advertisement/internal/shared/config"
	"github.com/vismithaN/advertisement/internal/shared/logger"
)

func main() {
	cfg := config.Load()
	log := logger.NewLogger("match-service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	go func() { <-quit; cancel() }()

	matchboot.Run(ctx, cfg, log)
}
