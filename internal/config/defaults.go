package config

const (
	defaultConfigPath      = "~/.config/whispersrt/config.toml"
	projectConfigName      = "whispersrt.toml"
	defaultWorkDir         = "~/.cache/whispersrt/work"
	defaultModel           = "small"
	defaultBeamSize        = 5
	defaultVADMethod       = VADMethodSilero
	defaultPreviewSegments = 3
	defaultFFmpeg          = "ffmpeg"
	defaultFFprobe         = "ffprobe"
	defaultUVX             = "uvx"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Accepted enumeration values.
const (
	DeviceAuto        = ""
	DeviceCPU         = "cpu"
	DeviceCUDA        = "cuda"
	VADMethodSilero   = "silero"
	VADMethodPyannote = "pyannote"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
		},
		Transcription: Transcription{
			Model:     defaultModel,
			BeamSize:  defaultBeamSize,
			VADMethod: defaultVADMethod,
		},
		Subtitles: Subtitles{
			PreviewSegments: defaultPreviewSegments,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
			UVX:     defaultUVX,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
