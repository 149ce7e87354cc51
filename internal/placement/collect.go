package placement

import (
	"fmt"
	"os"
	"path/filepath"

	"gensubs/internal/fileutil"
	"gensubs/internal/services/whisper"
)

// CollectSidecars moves every sidecar the recognizer produced for baseName
// from workDir into outDir. A missing extension is not an error; the
// recognizer may emit a subset or may have failed partway. Individual move
// failures are soft: each is recorded and the remaining extensions are still
// attempted.
//
// replace controls what happens when an artifact already exists in outDir:
// a run whose recognizer produced fresh output passes true, while a run
// that kept or skipped an existing subtitle passes false so stale work-dir
// leftovers from an interrupted run can never clobber placed artifacts.
func CollectSidecars(workDir, outDir, baseName string, replace bool) (moved []string, softErrors []error) {
	for _, ext := range whisper.SidecarExtensions {
		src := filepath.Join(workDir, baseName+ext)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dst := filepath.Join(outDir, baseName+ext)
		if _, err := os.Stat(dst); err == nil {
			if !replace {
				continue
			}
			if err := os.Remove(dst); err != nil {
				softErrors = append(softErrors, fmt.Errorf("replace %s: %w", dst, err))
				continue
			}
		}
		if err := fileutil.MoveFile(src, dst); err != nil {
			softErrors = append(softErrors, fmt.Errorf("collect %s: %w", filepath.Base(src), err))
			continue
		}
		moved = append(moved, dst)
	}
	return moved, softErrors
}
