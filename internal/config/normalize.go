package config

import (
	"fmt"
	"os"
	"strings"
)

// Normalize trims and lower-cases values, fills defaults and expands paths.
// It is safe to call again after overriding fields.
func (c *Config) Normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscription()
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	var err error
	if c.Paths.WorkDir, err = expandPath(strings.TrimSpace(c.Paths.WorkDir)); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscription() {
	t := &c.Transcription
	t.Model = strings.TrimSpace(t.Model)
	if t.Model == "" {
		t.Model = defaultModel
	}
	t.Language = strings.ToLower(strings.TrimSpace(t.Language))
	if t.Language == "auto" {
		t.Language = ""
	}
	t.Device = strings.ToLower(strings.TrimSpace(t.Device))
	if t.Device == "auto" {
		t.Device = DeviceAuto
	}
	t.VADMethod = strings.ToLower(strings.TrimSpace(t.VADMethod))
	if t.VADMethod == "" {
		t.VADMethod = defaultVADMethod
	}
	t.HFToken = strings.TrimSpace(t.HFToken)
	if t.HFToken == "" {
		if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			t.HFToken = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = valueOrDefault(c.Tools.FFmpeg, defaultFFmpeg)
	c.Tools.FFprobe = valueOrDefault(c.Tools.FFprobe, defaultFFprobe)
	c.Tools.UVX = valueOrDefault(c.Tools.UVX, defaultUVX)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(valueOrDefault(c.Logging.Format, defaultLogFormat))
	c.Logging.Level = strings.ToLower(valueOrDefault(c.Logging.Level, defaultLogLevel))
}

func valueOrDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
