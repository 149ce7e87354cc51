package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// CheckTranscoder reports the transcoder binary the pipeline will execute.
//
// Lookup prefers a binary that sits next to the gensubs executable and falls
// back to resolving the configured command from PATH, so a bundled ffmpeg
// wins over a system-wide install.
func CheckTranscoder(command string) Status {
	result := Status{
		Name:        "Transcoder",
		Description: "Extracts the intermediate audio track",
	}

	name := strings.TrimSpace(command)
	if name == "" {
		name = "ffmpeg"
	}

	if selfPath, err := os.Executable(); err == nil {
		if candidate, ok := sidecarCandidate(selfPath, name); ok {
			if info, statErr := os.Stat(candidate); statErr == nil && isExecutable(info) {
				result.Command = candidate
				result.Available = true
				return result
			}
		}
	}

	if resolved, err := exec.LookPath(name); err == nil {
		result.Command = resolved
		result.Available = true
		return result
	}

	result.Command = name
	result.Available = false
	result.Detail = fmt.Sprintf("binary %q not found", name)
	return result
}

func sidecarCandidate(selfPath, name string) (string, bool) {
	if selfPath == "" || name == "" {
		return "", false
	}
	if filepath.Base(name) != name {
		// Explicitly pathed commands are resolved as given.
		return "", false
	}
	if runtime.GOOS == "windows" && !strings.HasSuffix(name, ".exe") {
		name += ".exe"
	}
	return filepath.Join(filepath.Dir(selfPath), name), true
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
