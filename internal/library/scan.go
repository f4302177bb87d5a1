// Package library finds wallpaper images on disk, caches their thumbnails
// and watches the wallpaper directories for changes.
package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bnema/wayper/internal/logger"
	"github.com/bnema/wayper/internal/wallpaper"
)

// Scan lists the supported images directly inside dirs, sorted and without
// duplicates. Missing directories are skipped; other read failures are
// returned alongside whatever was found.
func Scan(dirs []string) ([]string, error) {
	var (
		images []string
		errs   []error
	)

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Debugf("library: skipping missing directory %s", dir)
				continue
			}
			errs = append(errs, fmt.Errorf("scan %s: %w", dir, err))
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !wallpaper.IsSupportedFormat(entry.Name()) {
				continue
			}
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}

	slices.Sort(images)
	return slices.Compact(images), errors.Join(errs...)
}
