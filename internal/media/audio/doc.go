// Package audio prepares speech audio for recognition.
//
// SelectSpeechStream picks the audio track to transcribe from an ffprobe
// result, preferring the requested language, then the container's default
// track, then the first audio stream. ExtractMono16k decodes that track with
// ffmpeg into the 16 kHz mono PCM WAV the recognizer expects.
package audio
