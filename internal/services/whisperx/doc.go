// Package whisperx runs WhisperX speech recognition and reads its output.
//
// Service.Transcribe invokes WhisperX through uvx and returns the path of the
// JSON result. Segments decodes that JSON incrementally, yielding one
// srt.Segment per recognized segment without loading the whole transcript.
//
// Device selection follows ResolveDevice: an explicit device wins, otherwise
// CUDA is used when nvidia-smi is on PATH.
package whisperx
