package placement

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gensubs/internal/fileutil"
)

// PlaceVideo relocates the original input video into outDir, never
// overwriting an existing file: on collision the base name gains a numeric
// suffix (_1, _2, ...) probed sequentially until a free name is found. The
// final path is returned.
func PlaceVideo(outDir, originalPath string) (string, error) {
	dest, err := collisionFreePath(outDir, filepath.Base(originalPath))
	if err != nil {
		return "", err
	}
	if err := fileutil.MoveFile(originalPath, dest); err != nil {
		return "", fmt.Errorf("move video into %s: %w", outDir, err)
	}
	return dest, nil
}

func collisionFreePath(dir, name string) (string, error) {
	candidate := filepath.Join(dir, name)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate, nil
	} else if err != nil {
		return "", fmt.Errorf("probe %s: %w", candidate, err)
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		_, err := os.Stat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("probe %s: %w", candidate, err)
		}
	}
}
