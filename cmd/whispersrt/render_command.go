package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"whispersrt/internal/logging"
	"whispersrt/internal/services/whisperx"
	"whispersrt/internal/srt"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <segments.json>",
		Short: "Assemble an .srt subtitle from an existing WhisperX JSON transcript",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("provide the path to a WhisperX JSON transcript. Example: whispersrt render audio.json -o audio.srt")
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
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}
			runCtx := logging.WithRunID(cmd.Context(), logging.NewRunID())
			logger = logging.WithContext(runCtx, logging.NewComponentLogger(logger, "render"))

			target := strings.TrimSpace(output)
			if target == "" {
				target = replaceExt(source, ".srt")
			}

			preview := srt.NewPreview(cfg.Subtitles.PreviewSegments)
			stats, err := writeSubtitles(logger, target, preview.Wrap(whisperx.OpenSegments(source)))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printPreview(out, preview)
			fmt.Fprintf(out, "Wrote subtitle: %s (cues: %d, segments: %d, filtered: %d, repeats suppressed: %d)\n",
				target, stats.Cues, stats.Segments, stats.Filtered, stats.Suppressed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output .srt path (default: transcript path with .srt extension)")
	return cmd
}
