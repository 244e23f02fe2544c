package srt

import (
	"bufio"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrOutputLocked reports that another run is writing the same subtitle file.
var ErrOutputLocked = errors.New("subtitle output is locked by another run")

// WriteFile streams the assembled document to path. The file is locked for
// the duration of the run, and buffered output is flushed and synced on every
// exit path so cues written before a failure are kept. When no cue is emitted
// the empty file is removed and ErrNoSpeech is returned.
func (a *Assembler) WriteFile(path string, segments iter.Seq2[Segment, error]) (stats Stats, err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return a.stats, fmt.Errorf("ensure subtitle directory: %w", err)
		}
	}

	lock := flock.New(path, flock.SetPermissions(0o644))
	locked, err := lock.TryLock()
	if err != nil {
		return a.stats, fmt.Errorf("lock subtitle output: %w", err)
	}
	if !locked {
		return a.stats, fmt.Errorf("%w: %s", ErrOutputLocked, path)
	}
	defer func() { _ = lock.Unlock() }()

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return a.stats, fmt.Errorf("open subtitle output: %w", err)
	}
	buf := bufio.NewWriter(file)

	defer func() {
		if flushErr := buf.Flush(); flushErr != nil && err == nil {
			err = fmt.Errorf("flush subtitle output: %w", flushErr)
		}
		if syncErr := file.Sync(); syncErr != nil && err == nil {
			err = fmt.Errorf("sync subtitle output: %w", syncErr)
		}
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close subtitle output: %w", closeErr)
		}
		if errors.Is(err, ErrNoSpeech) {
			_ = os.Remove(path)
		}
	}()

	return a.Write(buf, segments)
}
