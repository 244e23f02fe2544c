package whisperx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	langpkg "whispersrt/internal/language"
	"whispersrt/internal/logging"
)

// Service provides WhisperX transcription capabilities.
type Service struct {
	cfg           Config
	uvxBinary     string
	logger        *slog.Logger
	commandRunner func(ctx context.Context, name string, args ...string) error
	lookPath      func(file string) (string, error)
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config, uvxBinary string, logger *slog.Logger) *Service {
	if strings.TrimSpace(uvxBinary) == "" {
		uvxBinary = UVXCommand
	}
	return &Service{
		cfg:       cfg,
		uvxBinary: uvxBinary,
		logger:    logging.NewComponentLogger(logger, "whisperx"),
		lookPath:  exec.LookPath,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// WithLookPath replaces PATH lookups used for device detection (for testing).
func (s *Service) WithLookPath(lookPath func(file string) (string, error)) {
	s.lookPath = lookPath
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Device returns the device WhisperX will run on.
func (s *Service) Device() string {
	return ResolveDeviceWith(s.cfg.Device, s.lookPath)
}

// ResolveDevice returns requested when set, else "cuda" when nvidia-smi is
// on PATH, else "cpu".
func ResolveDevice(requested string) string {
	return ResolveDeviceWith(requested, exec.LookPath)
}

// ResolveDeviceWith is ResolveDevice with an injectable PATH lookup.
func ResolveDeviceWith(requested string, lookPath func(string) (string, error)) string {
	switch strings.ToLower(strings.TrimSpace(requested)) {
	case CPUDevice:
		return CPUDevice
	case CUDADevice:
		return CUDADevice
	}
	if lookPath != nil {
		if _, err := lookPath(NvidiaSMICommand); err == nil {
			return CUDADevice
		}
	}
	return CPUDevice
}

// ComputeType returns the CTranslate2 compute type for device.
func ComputeType(device string) string {
	if device == CUDADevice {
		return CUDAComputeType
	}
	return CPUComputeType
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking WhisperX/pyannote.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Transcribe runs WhisperX on audioPath and returns the path of the JSON
// transcript written to outputDir.
func (s *Service) Transcribe(ctx context.Context, audioPath, outputDir string) (string, error) {
	if strings.TrimSpace(audioPath) == "" {
		return "", errors.New("transcribe: audio path required")
	}
	if outputDir == "" {
		outputDir = filepath.Dir(audioPath)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("transcribe: ensure output dir: %w", err)
	}

	device := s.Device()
	args := s.buildArgs(audioPath, outputDir, device)
	s.logger.Debug("running whisperx",
		logging.String("model", s.Model()),
		logging.String("device", device),
		logging.String("compute_type", ComputeType(device)),
		logging.String("command", s.uvxBinary+" "+strings.Join(redactArgs(args), " ")),
	)
	if err := s.run(ctx, s.uvxBinary, args...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("whisperx: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(outputDir, baseName+".json")
	if _, err := os.Stat(jsonPath); err != nil {
		return "", fmt.Errorf("whisperx: transcript not written: %w", err)
	}
	return jsonPath, nil
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(source, outputDir, device string) []string {
	args := make([]string, 0, 32)

	if device == CUDADevice {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	beamSize := s.cfg.BeamSize
	if beamSize <= 0 {
		beamSize = DefaultBeamSize
	}

	args = append(args,
		"whisperx",
		source,
		"--model", s.Model(),
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--beam_size", strconv.Itoa(beamSize),
		"--temperature", Temperature,
		"--condition_on_previous_text", "True",
		"--device", device,
		"--compute_type", ComputeType(device),
	)

	if lang := langpkg.ToISO2(s.cfg.Language); lang != "" {
		args = append(args, "--language", lang)
	}

	if s.cfg.VAD {
		vadMethod := s.cfg.VADMethod
		if vadMethod == "" {
			vadMethod = VADMethodSilero
		}
		args = append(args,
			"--vad_method", vadMethod,
			"--vad_onset", VADOnset,
			"--vad_offset", VADOffset,
		)
		if vadMethod == VADMethodPyannote && s.cfg.HFToken != "" {
			args = append(args, "--hf_token", s.cfg.HFToken)
		}
	}

	if !s.cfg.WordTimestamps {
		args = append(args, "--no_align")
	}

	return args
}

func redactArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i+1 < len(out); i++ {
		if out[i] == "--hf_token" {
			out[i+1] = "***"
		}
	}
	return out
}
