package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// SampleRate is the sample rate of extracted speech audio in Hz.
	SampleRate = 16000
	// Channels is the channel count of extracted speech audio.
	Channels = 1
)

// ErrExtract marks a failed audio extraction.
var ErrExtract = errors.New("audio extraction failed")

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExtractOptions tunes ExtractMono16k.
type ExtractOptions struct {
	// StreamIndex maps a specific container stream; negative lets ffmpeg choose.
	StreamIndex int
	// Runner replaces exec for tests.
	Runner Runner
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput() //nolint:gosec
}

// ExtractMono16k decodes source into a 16 kHz mono signed 16-bit PCM WAV at dest.
func ExtractMono16k(ctx context.Context, ffmpeg, source, dest string, opts ExtractOptions) error {
	ffmpeg = strings.TrimSpace(ffmpeg)
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	if strings.TrimSpace(source) == "" || strings.TrimSpace(dest) == "" {
		return fmt.Errorf("%w: source and destination are required", ErrExtract)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create audio directory: %w", err)
	}

	run := opts.Runner
	if run == nil {
		run = execRunner
	}
	output, err := run(ctx, ffmpeg, buildExtractArgs(source, dest, opts.StreamIndex)...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v: %s", ErrExtract, err, strings.TrimSpace(string(output)))
	}
	info, err := os.Stat(dest)
	if err != nil {
		return fmt.Errorf("%w: output missing: %v", ErrExtract, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: output is empty", ErrExtract)
	}
	return nil
}

func buildExtractArgs(source, dest string, streamIndex int) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error", "-i", source}
	if streamIndex >= 0 {
		args = append(args, "-map", "0:"+strconv.Itoa(streamIndex))
	}
	return append(args,
		"-vn",
		"-ac", strconv.Itoa(Channels),
		"-ar", strconv.Itoa(SampleRate),
		"-c:a", "pcm_s16le",
		dest,
	)
}
