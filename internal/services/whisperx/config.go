package whisperx

// Config captures runtime settings for WhisperX transcription.
type Config struct {
	// Model is the WhisperX model to use (e.g., "small", "large-v3").
	Model string
	// Language is the spoken language; empty lets WhisperX detect it.
	Language string
	// Device is "cpu" or "cuda"; empty resolves through ResolveDevice.
	Device string
	// BeamSize is the beam search width.
	BeamSize int
	// VAD enables voice activity filtering with tuned onset/offset thresholds.
	VAD bool
	// VADMethod selects the voice activity detection method ("silero" or "pyannote").
	VADMethod string
	// HFToken is the Hugging Face token for pyannote VAD.
	HFToken string
	// WordTimestamps keeps the alignment pass that produces word timings.
	WordTimestamps bool
}

// WhisperX configuration constants.
const (
	DefaultModel      = "small"
	DefaultBeamSize   = 5
	CUDAIndexURL      = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL      = "https://pypi.org/simple"
	VADOnset          = "0.5"
	VADOffset         = "0.363"
	Temperature       = "0"
	OutputFormat      = "json"
	CPUDevice         = "cpu"
	CUDADevice        = "cuda"
	CPUComputeType    = "int8"
	CUDAComputeType   = "float16"
	VADMethodPyannote = "pyannote"
	VADMethodSilero   = "silero"
)

// Command names for external tools.
const (
	UVXCommand       = "uvx"
	NvidiaSMICommand = "nvidia-smi"
)
