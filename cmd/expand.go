package cmd

import (
	"github.com/rm-hull/pixel-expander/internal"
)

func Expand(cfg internal.SingleFileConfig) error {
	return internal.ExpandFile(cfg, internal.NewFetcher())
}
