package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/vismithaN/advertisement/internal/shared/config"
	"github.com/vismithaN/advertisement/internal/shared/logger"

	matchboot "github.com/vismithaN/advertisement/internal/match/bootstrap"
)

func main() {
	svc := flag.String("service", "match", "match")
	flag.Parse()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	go func() { <-quit; cancel() }()

	switch *svc {
	case "match":
		log := logger.NewLogger("match-service")
		matchboot.Run(ctx, cfg, log)

	default:
		log := logger.NewLogger("bootstrap")
		log.Fatal(logger.Entry{Action: "invalid_service", Message: *svc})
	}
}
