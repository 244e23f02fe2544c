// Package deps checks that the external executables used by a transcription
// run are installed.
package deps
