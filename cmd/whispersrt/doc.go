// Package main hosts the whispersrt CLI entrypoint and command graph.
//
// The Cobra command tree turns a media file into a SubRip subtitle: it checks
// the external tools, extracts speech audio with ffmpeg, runs WhisperX, and
// streams the recognized segments through the subtitle assembler. It also
// renders existing WhisperX transcripts and scaffolds configuration.
//
// Keep this package lean: behaviour lives in the internal packages and is
// surfaced here through commands and flags.
package main
