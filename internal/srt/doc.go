// Package srt assembles SubRip subtitle documents from speech-recognition
// segments.
//
// The Assembler consumes a forward-only segment sequence, drops text that is
// too short or pure filler, suppresses runs of identical consecutive text
// that streaming recognizers emit when the decoder stalls, and streams
// contiguously numbered cues to a sink. A run where nothing survives returns
// ErrNoSpeech instead of an empty document.
package srt
