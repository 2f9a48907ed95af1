package scanner

import (
	"fmt"
	"os"
	"path/filepath"

	"psnreval/logging"

	"github.com/spf13/afero"
)

// CollectImages scans root for image files and maps each file's match key to its path.
// The first file seen for a key wins; later files with the same key are
// recorded as duplicates. Entries are visited in lexical order, so the
// choice between duplicates is stable across runs.
func CollectImages(fs afero.Fs, root string, options CollectOptions) (*CollectResult, error) {
	result := &CollectResult{Files: make(map[string]string)}

	// ReadDir follows a symlinked root; subdirectories are walked with Lstat
	// so symlinked directories below the root are not descended.
	infos, err := afero.ReadDir(fs, root)
	if err != nil {
		return nil, fmt.Errorf("cannot scan %s: %w", root, err)
	}

	for _, info := range infos {
		path := filepath.Join(root, info.Name())
		if !options.Recursive || !info.IsDir() {
			result.consider(fs, path, info, options)
			continue
		}

		err := afero.Walk(fs, path, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				logging.LogWarning("Error accessing path %s: %v", path, err)
				return nil
			}
			result.consider(fs, path, info, options)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("cannot scan %s: %w", path, err)
		}
	}

	logging.DebugLog("Collected %d files from %s (%d duplicates)", len(result.Files), root, len(result.Duplicates))
	return result, nil
}

func (r *CollectResult) consider(fs afero.Fs, path string, info os.FileInfo, options CollectOptions) {
	if !isRegularFile(fs, path, info) {
		return
	}
	if !HasAllowedExtension(path, options.Extensions) {
		return
	}

	key := options.KeyBuilder(path)
	if existing, ok := r.Files[key]; ok {
		logging.DebugLog("Duplicate key %q: keeping %s, skipping %s", key, existing, path)
		r.Duplicates = append(r.Duplicates, path)
		return
	}
	r.Files[key] = path
}

// isRegularFile reports whether path is a regular file, following symlinks
func isRegularFile(fs afero.Fs, path string, info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.Mode()&os.ModeSymlink != 0 {
		resolved, err := fs.Stat(path)
		if err != nil {
			logging.LogWarning("Skipping dangling link %s: %v", path, err)
			return false
		}
		info = resolved
	}
	return info.Mode().IsRegular()
}
