package main

import (
	"fmt"
	"io"
	"log/slog"

	"whispersrt/internal/logging"
)

// progressReporter logs numbered pipeline stages and echoes them to the
// terminal when stdout is interactive.
type progressReporter struct {
	out    io.Writer
	logger *slog.Logger
	total  int
	echo   bool
}

func newProgressReporter(out io.Writer, logger *slog.Logger, total int) *progressReporter {
	return &progressReporter{
		out:    out,
		logger: logger,
		total:  total,
		echo:   logging.IsTerminal(out),
	}
}

func (p *progressReporter) step(n int, stage string) {
	if p == nil {
		return
	}
	if p.logger != nil {
		p.logger.Info(stage, logging.Args(logging.Progress(n, p.total, stage)...)...)
	}
	if p.echo {
		fmt.Fprintf(p.out, "[%d/%d] %s\n", n, p.total, stage)
	}
}
