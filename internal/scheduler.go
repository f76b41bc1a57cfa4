package internal

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// NewScheduler runs one batch straight away, then re-runs it every interval.
// Runs never overlap: a tick that arrives while a batch is still going is
// rescheduled rather than started alongside it.
func NewScheduler(cfg ProcessorConfig, interval time.Duration) (gocron.Scheduler, error) {
	if interval <= 0 {
		return nil, errors.New("watch interval must be positive")
	}

	proc, err := NewProcessor(cfg)
	if err != nil {
		return nil, err
	}

	if err := runBatch(proc); err != nil {
		return nil, fmt.Errorf("initial run of job failed: %w", err)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(runBatch, proc),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	log.Printf("Watching %s every %s", cfg.InputDir, interval)
	scheduler.Start()
	return scheduler, nil
}

func runBatch(proc *Processor) error {
	report, err := proc.Run()
	if err != nil {
		log.Printf("Batch failed: %v", err)
		return err
	}
	if len(report.Errors) > 0 {
		log.Printf("Errors occurred: %v", report.Errors)
	}
	return nil
}
