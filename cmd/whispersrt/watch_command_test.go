package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"whispersrt/internal/logging"
)

func TestTranscriptWatcherRendersNewTranscripts(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	ready := make(chan string, 4)
	var out bytes.Buffer
	w := &transcriptWatcher{
		dir:       dir,
		outputDir: outDir,
		settle:    20 * time.Millisecond,
		logger:    logging.NewNop(),
		out:       &out,
		ready:     ready,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("watch run: %v", err)
		}
	})

	// Give the watcher a moment to register before creating files.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("write txt: %v", err)
	}
	transcript := filepath.Join(dir, "episode.json")
	if err := os.WriteFile(transcript, []byte(speechTranscript), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	select {
	case got := <-ready:
		if got != transcript {
			t.Fatalf("rendered %q, want %q", got, transcript)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for render")
	}

	data, err := os.ReadFile(filepath.Join(outDir, "episode.srt"))
	if err != nil {
		t.Fatalf("read subtitle: %v", err)
	}
	if string(data) != wantSpeechSRT {
		t.Fatalf("unexpected subtitle\n got: %q\nwant: %q", data, wantSpeechSRT)
	}
}

func TestRenderScheduleDropsSupersededTimers(t *testing.T) {
	schedule := newRenderSchedule()
	defer schedule.stop()
	fired := make(chan dueRender, 4)
	fire := func(d dueRender) { fired <- d }

	// A zero settle lets the first timer fire before the second write lands,
	// leaving a stale render queued alongside the current one.
	schedule.touch("episode.json", 0, fire)
	stale := <-fired
	schedule.touch("episode.json", time.Hour, fire)

	if schedule.take(stale) {
		t.Fatal("superseded timer was accepted")
	}
	current := dueRender{path: "episode.json", gen: stale.gen + 1}
	if !schedule.take(current) {
		t.Fatal("current timer was rejected")
	}
	if schedule.take(current) {
		t.Fatal("same transcript rendered twice")
	}
}

func TestTranscriptWatcherRendersBurstOnce(t *testing.T) {
	dir := t.TempDir()
	ready := make(chan string, 8)
	w := &transcriptWatcher{
		dir:       dir,
		outputDir: t.TempDir(),
		settle:    100 * time.Millisecond,
		logger:    logging.NewNop(),
		out:       &bytes.Buffer{},
		ready:     ready,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("watch run: %v", err)
		}
	})

	time.Sleep(50 * time.Millisecond)
	transcript := filepath.Join(dir, "episode.json")
	for range 5 {
		if err := os.WriteFile(transcript, []byte(speechTranscript), 0o644); err != nil {
			t.Fatalf("write transcript: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for render")
	}
	select {
	case got := <-ready:
		t.Fatalf("transcript %q rendered twice", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestIsTranscript(t *testing.T) {
	for path, want := range map[string]bool{
		"a.json": true,
		"B.JSON": true,
		"a.srt":  false,
		"json":   false,
	} {
		if got := isTranscript(path); got != want {
			t.Errorf("isTranscript(%q) = %v, want %v", path, got, want)
		}
	}
}
