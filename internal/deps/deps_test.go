package deps

import (
	"os"
	"path/filepath"
	"testing"

	"whispersrt/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Path != present {
		t.Fatalf("expected first requirement to be available at %s, got %#v", present, results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for blank command: %q", results[2].Detail)
	}
}

func TestRequirementsUseConfiguredTools(t *testing.T) {
	reqs := Requirements(config.Tools{FFmpeg: "/opt/ffmpeg", FFprobe: "/opt/ffprobe", UVX: "/opt/uvx"})
	byName := make(map[string]Requirement, len(reqs))
	for _, req := range reqs {
		byName[req.Name] = req
	}
	if byName["FFmpeg"].Command != "/opt/ffmpeg" || byName["FFmpeg"].Optional {
		t.Fatalf("unexpected ffmpeg requirement %#v", byName["FFmpeg"])
	}
	if byName["uvx"].Command != "/opt/uvx" || byName["uvx"].Optional {
		t.Fatalf("unexpected uvx requirement %#v", byName["uvx"])
	}
	if !byName["FFprobe"].Optional || !byName["nvidia-smi"].Optional {
		t.Fatal("expected ffprobe and nvidia-smi to be optional")
	}
}

func TestMissingRequiredIgnoresOptional(t *testing.T) {
	statuses := []Status{
		{Name: "FFmpeg", Available: true},
		{Name: "uvx", Available: false},
		{Name: "FFprobe", Optional: true, Available: false},
	}
	missing := MissingRequired(statuses)
	if len(missing) != 1 || missing[0].Name != "uvx" {
		t.Fatalf("unexpected missing list %#v", missing)
	}
	if !Available(statuses, "ffmpeg") || Available(statuses, "FFprobe") || Available(statuses, "unknown") {
		t.Fatal("Available returned unexpected results")
	}
}
