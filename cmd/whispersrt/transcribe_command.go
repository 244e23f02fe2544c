package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"whispersrt/internal/config"
	"whispersrt/internal/deps"
	"whispersrt/internal/logging"
	"whispersrt/internal/media/audio"
	"whispersrt/internal/media/ffprobe"
	"whispersrt/internal/services/whisperx"
	"whispersrt/internal/srt"
)

const transcribeSteps = 5

type transcribeOptions struct {
	output         string
	model          string
	language       string
	device         string
	beamSize       int
	vad            bool
	wordTimestamps bool
	workDir        string
	keepWork       bool
}

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var opts transcribeOptions

	cmd := &cobra.Command{
		Use:   "transcribe <input>",
		Short: "Transcribe a media file into an .srt subtitle with WhisperX",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("provide the path to an audio or video file. Example: whispersrt transcribe /path/to/video.mkv\nRun whispersrt transcribe --help for more details")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := resolveInput(args[0])
			if err != nil {
				return withExitCode(exitGeneric, err)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			applyTranscribeFlags(cmd, cfg, opts)
			if err := cfg.Normalize(); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}
			runCtx := logging.WithRunID(cmd.Context(), logging.NewRunID())
			logger = logging.WithContext(runCtx, logging.NewComponentLogger(logger, "transcribe"))

			output := opts.output
			if strings.TrimSpace(output) == "" {
				output = replaceExt(source, ".srt")
			}
			run := &transcribeRun{
				cfg:      cfg,
				logger:   logger,
				progress: newProgressReporter(cmd.OutOrStdout(), logger, transcribeSteps),
				source:   source,
				output:   output,
				workDir:  opts.workDir,
				keepWork: opts.keepWork,
				out:      cmd.OutOrStdout(),
			}
			return run.execute(runCtx)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output .srt path (default: input path with .srt extension)")
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "WhisperX model (tiny, base, small, medium, large-v3, ...)")
	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "Spoken language code (default: auto-detect)")
	cmd.Flags().StringVar(&opts.device, "device", "", "Inference device: cpu or cuda (default: cuda when nvidia-smi is present)")
	cmd.Flags().IntVar(&opts.beamSize, "beam-size", 0, "Beam search width")
	cmd.Flags().BoolVar(&opts.vad, "vad", false, "Enable voice activity filtering (helps with noisy audio)")
	cmd.Flags().BoolVar(&opts.wordTimestamps, "word-ts", false, "Keep word-level alignment in the recognizer output")
	cmd.Flags().StringVar(&opts.workDir, "work-dir", "", "Directory for intermediate files (default: paths.work_dir)")
	cmd.Flags().BoolVar(&opts.keepWork, "keep-work", false, "Keep the extracted audio and transcript JSON after the run")

	return cmd
}

// applyTranscribeFlags copies explicitly set flags over configured values.
func applyTranscribeFlags(cmd *cobra.Command, cfg *config.Config, opts transcribeOptions) {
	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Transcription.Model = opts.model
	}
	if flags.Changed("language") {
		cfg.Transcription.Language = opts.language
	}
	if flags.Changed("device") {
		cfg.Transcription.Device = opts.device
	}
	if flags.Changed("beam-size") {
		cfg.Transcription.BeamSize = opts.beamSize
	}
	if flags.Changed("vad") {
		cfg.Transcription.VAD = opts.vad
	}
	if flags.Changed("word-ts") {
		cfg.Transcription.WordTimestamps = opts.wordTimestamps
	}
}

type transcribeRun struct {
	cfg      *config.Config
	logger   *slog.Logger
	progress *progressReporter
	source   string
	output   string
	workDir  string
	keepWork bool
	out      io.Writer
}

func (r *transcribeRun) execute(ctx context.Context) error {
	started := time.Now()

	r.progress.step(1, "Checking tools")
	statuses := deps.CheckBinaries(deps.Requirements(r.cfg.Tools))
	if missing := deps.MissingRequired(statuses); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, status := range missing {
			names = append(names, fmt.Sprintf("%s (%s)", status.Name, status.Detail))
		}
		return withExitCode(exitGeneric, fmt.Errorf("missing required tools: %s; run whispersrt deps for details", strings.Join(names, ", ")))
	}
	workDir, cleanup, err := r.prepareWorkDir()
	if err != nil {
		return withExitCode(exitGeneric, err)
	}
	defer cleanup()

	r.progress.step(2, "Probing media")
	streamIndex := -1
	var duration float64
	if deps.Available(statuses, "FFprobe") {
		streamIndex, duration = r.probe(ctx)
	} else {
		r.logger.Info("ffprobe unavailable; letting ffmpeg choose the audio stream")
	}

	r.progress.step(3, "Extracting audio")
	audioPath := filepath.Join(workDir, "audio.wav")
	if err := audio.ExtractMono16k(ctx, r.cfg.Tools.FFmpeg, r.source, audioPath, audio.ExtractOptions{StreamIndex: streamIndex}); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return withExitCode(exitAudioExtract, err)
	}

	r.progress.step(4, "Transcribing speech")
	service := whisperx.NewService(whisperxConfig(r.cfg.Transcription), r.cfg.Tools.UVX, r.logger)
	r.logger.Info("whisperx transcription started",
		logging.String("model", service.Model()),
		logging.String("device", service.Device()),
		logging.String("language", displayLanguage(r.cfg.Transcription.Language)),
	)
	jsonPath, err := service.Transcribe(ctx, audioPath, filepath.Join(workDir, "whisperx"))
	if err != nil {
		return err
	}

	r.progress.step(5, "Writing subtitles")
	preview := srt.NewPreview(r.cfg.Subtitles.PreviewSegments)
	stats, err := writeSubtitles(r.logger, r.output, preview.Wrap(whisperx.OpenSegments(jsonPath)))
	if err != nil {
		return err
	}

	printPreview(r.out, preview)
	fmt.Fprintf(r.out, "Wrote subtitle: %s (cues: %d, segments: %d, filtered: %d, repeats suppressed: %d)\n",
		r.output, stats.Cues, stats.Segments, stats.Filtered, stats.Suppressed)
	if duration > 0 {
		fmt.Fprintf(r.out, "Media duration: %s\n", srt.FormatSeconds(duration))
	}
	r.logger.Info("transcription complete",
		logging.String("output", r.output),
		logging.Int("cues", stats.Cues),
		logging.Duration("elapsed", time.Since(started)),
	)
	return nil
}

func (r *transcribeRun) prepareWorkDir() (string, func(), error) {
	root := strings.TrimSpace(r.workDir)
	if root == "" {
		root = r.cfg.Paths.WorkDir
	}
	if root == "" {
		root = os.TempDir()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", nil, fmt.Errorf("ensure work directory: %w", err)
	}
	dir, err := os.MkdirTemp(root, "transcribe-")
	if err != nil {
		return "", nil, fmt.Errorf("create work directory: %w", err)
	}
	cleanup := func() {
		if r.keepWork {
			r.logger.Info("keeping work directory", logging.String("path", dir))
			return
		}
		_ = os.RemoveAll(dir)
	}
	return dir, cleanup, nil
}

// probe returns the audio stream to extract and the media duration. Probe
// failures are logged and treated as "unknown".
func (r *transcribeRun) probe(ctx context.Context) (int, float64) {
	result, err := ffprobe.Inspect(ctx, r.cfg.Tools.FFprobe, r.source)
	if err != nil {
		logging.WarnWithContext(r.logger, "media probe failed", "media_probe_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "verify the input is a readable media file"),
			logging.String(logging.FieldImpact, "ffmpeg will pick the audio stream and duration is unknown"),
		)
		return -1, 0
	}
	selection := audio.SelectSpeechStream(result.AudioStreams(), r.cfg.Transcription.Language)
	if !selection.Found() {
		logging.WarnWithContext(r.logger, "no audio stream found", "audio_stream_missing",
			logging.String(logging.FieldErrorHint, "check that the input contains an audio track"),
			logging.String(logging.FieldImpact, "audio extraction is likely to fail"),
		)
		return -1, result.DurationSeconds()
	}
	r.logger.Info("audio stream selected",
		logging.String("stream", selection.Label()),
		logging.String("reason", selection.Reason),
		logging.Float64("duration_seconds", result.DurationSeconds()),
	)
	return selection.Index, result.DurationSeconds()
}

// writeSubtitles assembles segments into path and maps assembler failures
// to exit codes.
func writeSubtitles(logger *slog.Logger, path string, segments iter.Seq2[srt.Segment, error]) (srt.Stats, error) {
	stats, err := srt.NewAssembler(logger).WriteFile(path, segments)
	switch {
	case err == nil:
		return stats, nil
	case errors.Is(err, srt.ErrNoSpeech):
		return stats, withExitCode(exitNoSpeechDetect, fmt.Errorf("%w in %d segments; no subtitle written", err, stats.Segments))
	default:
		return stats, fmt.Errorf("write subtitle %s: %w", path, err)
	}
}

func whisperxConfig(t config.Transcription) whisperx.Config {
	return whisperx.Config{
		Model:          t.Model,
		Language:       t.Language,
		Device:         t.Device,
		BeamSize:       t.BeamSize,
		VAD:            t.VAD,
		VADMethod:      t.VADMethod,
		HFToken:        t.HFToken,
		WordTimestamps: t.WordTimestamps,
	}
}

func resolveInput(path string) (string, error) {
	source := strings.TrimSpace(path)
	if source == "" {
		return "", errors.New("input file path is required")
	}
	source, err := filepath.Abs(source)
	if err != nil {
		return "", fmt.Errorf("resolve input path: %w", err)
	}
	info, err := os.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("input file %q not found", source)
		}
		return "", fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("input path %q is a directory", source)
	}
	return source, nil
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
