package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTranscription() error {
	t := c.Transcription
	if t.BeamSize < 1 {
		return errors.New("transcription.beam_size must be at least 1")
	}
	switch t.Device {
	case DeviceAuto, DeviceCPU, DeviceCUDA:
	default:
		return fmt.Errorf("transcription.device: unsupported value %q (use cpu, cuda, or leave empty for auto)", t.Device)
	}
	switch t.VADMethod {
	case VADMethodSilero, VADMethodPyannote:
	default:
		return fmt.Errorf("transcription.vad_method: unsupported value %q (use silero or pyannote)", t.VADMethod)
	}
	if t.VAD && t.VADMethod == VADMethodPyannote && t.HFToken == "" {
		return errors.New("transcription.hf_token is required for pyannote VAD. Set HF_TOKEN or switch vad_method to silero")
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if c.Subtitles.PreviewSegments < 0 {
		return errors.New("subtitles.preview_segments must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
