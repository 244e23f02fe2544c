// Package ffprobe wraps the ffprobe CLI to inspect media containers.
//
// Inspect returns stream and container metadata; callers use it to pick the
// spoken audio track and report the media duration.
package ffprobe
