package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rm-hull/pixel-expander/internal"
)

func Watch(cfg internal.ProcessorConfig, interval time.Duration) {
	internal.ShowVersion()

	cfg.SkipExisting = true
	sched, err := internal.NewScheduler(cfg, interval)
	if err != nil {
		log.Fatal(err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down watcher...")
	if err := sched.Shutdown(); err != nil {
		log.Fatalf("failed to shutdown scheduler: %v", err)
	}
}
