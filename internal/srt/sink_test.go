package srt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"
)

func TestWriteFileWritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.srt")
	stats, err := NewAssembler(nil).WriteFile(path, Slice(textSegments("First line.", "Second line.")))
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if stats.Cues != 2 {
		t.Fatalf("expected 2 cues, got %d", stats.Cues)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "1\n00:00:00,000 --> 00:00:00,500\nFirst line.\n\n2\n") {
		t.Fatalf("unexpected document %q", data)
	}
}

func TestWriteFileCreatesWorldReadableOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.srt")
	if _, err := NewAssembler(nil).WriteFile(path, Slice(textSegments("Words here."))); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// Compare against a plain 0644 file so the process umask applies to both.
	reference := filepath.Join(dir, "reference")
	if err := os.WriteFile(reference, nil, 0o644); err != nil {
		t.Fatalf("write reference: %v", err)
	}
	got, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	want, err := os.Stat(reference)
	if err != nil {
		t.Fatalf("stat reference: %v", err)
	}
	if got.Mode().Perm() != want.Mode().Perm() {
		t.Fatalf("output mode %v, want %v", got.Mode().Perm(), want.Mode().Perm())
	}
}

func TestWriteFileRemovesEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.srt")
	_, err := NewAssembler(nil).WriteFile(path, Slice(textSegments("Hmm.", "..")))
	if !errors.Is(err, ErrNoSpeech) {
		t.Fatalf("expected ErrNoSpeech, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output file, stat returned %v", statErr)
	}
}

func TestWriteFileKeepsCuesBeforeFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.srt")
	boom := errors.New("recognizer crashed")
	seq := func(yield func(Segment, error) bool) {
		if !yield(NewSegment(0, 1, "Survives."), nil) {
			return
		}
		yield(Segment{}, boom)
	}
	_, err := NewAssembler(nil).WriteFile(path, seq)
	if !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read output: %v", readErr)
	}
	if !strings.Contains(string(data), "Survives.") {
		t.Fatalf("expected flushed cue, got %q", data)
	}
}

func TestWriteFileRefusesLockedOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.srt")
	holder := flock.New(path)
	locked, err := holder.TryLock()
	if err != nil || !locked {
		t.Fatalf("acquire test lock: locked=%v err=%v", locked, err)
	}
	defer holder.Unlock()

	_, err = NewAssembler(nil).WriteFile(path, Slice(textSegments("Words here.")))
	if !errors.Is(err, ErrOutputLocked) {
		t.Fatalf("expected ErrOutputLocked, got %v", err)
	}
}
