package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"whispersrt/internal/config"
)

// NvidiaSMICommand is probed to decide whether CUDA is usable.
const NvidiaSMICommand = "nvidia-smi"

// Requirement defines an external dependency whispersrt relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	// Path is the resolved executable location when available.
	Path   string
	Detail string
}

// Requirements returns the binaries a transcription run uses, taking command
// names from the configured tools.
func Requirements(tools config.Tools) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: tools.FFmpeg, Description: "Extracts 16 kHz mono speech audio"},
		{Name: "uvx", Command: tools.UVX, Description: "Runs WhisperX in an isolated environment"},
		{Name: "FFprobe", Command: tools.FFprobe, Description: "Reports media duration and audio tracks", Optional: true},
		{Name: "nvidia-smi", Command: NvidiaSMICommand, Description: "Enables CUDA device selection", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = resolved
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the unavailable non-optional dependencies.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}

// Available reports whether the named dependency was found.
func Available(statuses []Status, name string) bool {
	for _, status := range statuses {
		if strings.EqualFold(status.Name, name) {
			return status.Available
		}
	}
	return false
}
