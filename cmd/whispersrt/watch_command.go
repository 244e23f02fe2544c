package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"whispersrt/internal/logging"
	"whispersrt/internal/services/whisperx"
	"whispersrt/internal/srt"
)

const defaultSettleDelay = 500 * time.Millisecond

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var settle time.Duration

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Render WhisperX JSON transcripts into .srt files as they appear in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(strings.TrimSpace(args[0]))
			if err != nil {
				return withExitCode(exitGeneric, fmt.Errorf("resolve watch directory: %w", err))
			}
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				return withExitCode(exitGeneric, fmt.Errorf("watch directory %q not found", dir))
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}
			w := &transcriptWatcher{
				dir:       dir,
				outputDir: strings.TrimSpace(outputDir),
				settle:    settle,
				logger:    logging.NewComponentLogger(logger, "watch"),
				out:       cmd.OutOrStdout(),
			}
			return w.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for rendered subtitles (default: next to each transcript)")
	cmd.Flags().DurationVar(&settle, "settle", defaultSettleDelay, "Quiet period after the last write before a transcript is rendered")
	return cmd
}

type transcriptWatcher struct {
	dir       string
	outputDir string
	settle    time.Duration
	logger    *slog.Logger
	out       io.Writer
	// ready is signalled after each render attempt; used by tests.
	ready chan<- string
}

func (w *transcriptWatcher) run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	w.logger.Info("watching for transcripts", logging.String("dir", w.dir))

	settle := w.settle
	if settle <= 0 {
		settle = defaultSettleDelay
	}
	due := make(chan dueRender)
	schedule := newRenderSchedule()
	defer schedule.stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isTranscript(event.Name) || !(event.Has(fsnotify.Create) || event.Has(fsnotify.Write)) {
				continue
			}
			// Restart the quiet period on every write so partial files are skipped.
			schedule.touch(event.Name, settle, func(d dueRender) {
				select {
				case due <- d:
				case <-ctx.Done():
				}
			})
		case d := <-due:
			if schedule.take(d) {
				w.render(d.path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.WarnWithContext(w.logger, "watcher error", "watch_error",
				logging.Error(err),
				logging.String(logging.FieldImpact, "some transcript events may be missed"),
			)
		}
	}
}

// dueRender is a fired settle timer for one transcript.
type dueRender struct {
	path string
	gen  uint64
}

type pendingRender struct {
	timer *time.Timer
	gen   uint64
}

// renderSchedule debounces transcript events. Each touch supersedes the
// previous timer for the path, and only the latest generation is rendered even
// when an older timer fired before it could be stopped.
type renderSchedule struct {
	pending map[string]*pendingRender
}

func newRenderSchedule() *renderSchedule {
	return &renderSchedule{pending: make(map[string]*pendingRender)}
}

func (s *renderSchedule) touch(path string, settle time.Duration, fire func(dueRender)) {
	p, ok := s.pending[path]
	if !ok {
		p = &pendingRender{}
		s.pending[path] = p
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	p.gen++
	d := dueRender{path: path, gen: p.gen}
	p.timer = time.AfterFunc(settle, func() { fire(d) })
}

// take reports whether d is the current generation for its path and clears
// the pending entry when it is.
func (s *renderSchedule) take(d dueRender) bool {
	p, ok := s.pending[d.path]
	if !ok || p.gen != d.gen {
		return false
	}
	delete(s.pending, d.path)
	return true
}

func (s *renderSchedule) stop() {
	for _, p := range s.pending {
		p.timer.Stop()
	}
}

func (w *transcriptWatcher) render(path string) {
	defer func() {
		if w.ready != nil {
			w.ready <- path
		}
	}()

	target := replaceExt(path, ".srt")
	if w.outputDir != "" {
		target = filepath.Join(w.outputDir, filepath.Base(target))
	}
	runCtx := logging.WithRunID(context.Background(), logging.NewRunID())
	logger := logging.WithContext(runCtx, w.logger)

	stats, err := srt.NewAssembler(logger).WriteFile(target, whisperx.OpenSegments(path))
	switch {
	case err == nil:
		logger.Info("transcript rendered",
			logging.String("transcript", path),
			logging.String("output", target),
			logging.Int("cues", stats.Cues),
		)
		fmt.Fprintf(w.out, "Wrote subtitle: %s (cues: %d)\n", target, stats.Cues)
	case errors.Is(err, srt.ErrNoSpeech):
		logging.WarnWithContext(logger, "transcript has no speech", "transcript_no_speech",
			logging.String("transcript", path),
			logging.String(logging.FieldErrorHint, "check the recognizer language and audio track"),
			logging.String(logging.FieldImpact, "no subtitle written for this transcript"),
		)
	default:
		logging.ErrorWithContext(logger, "transcript render failed", "transcript_render_failed",
			logging.String("transcript", path),
			logging.Error(err),
		)
	}
}

func isTranscript(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
