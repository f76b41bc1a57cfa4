package cmd

import (
	"fmt"

	"github.com/rm-hull/pixel-expander/internal"
)

// Batch expands a whole folder. Files that fail are logged and skipped, so
// only an unusable input or output folder is reported as an error.
func Batch(cfg internal.ProcessorConfig) error {
	proc, err := internal.NewProcessor(cfg)
	if err != nil {
		return err
	}

	if _, err := proc.Run(); err != nil {
		return fmt.Errorf("failed to process folder: %w", err)
	}
	return nil
}
