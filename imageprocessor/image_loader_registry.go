package imageprocessor

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"psnreval/logging"

	"github.com/spf13/afero"
	"gocv.io/x/gocv"
)

// ImageLoaderRegistry maps extensions to an ordered chain of loaders
type ImageLoaderRegistry struct {
	loaders       map[string][]ImageLoader
	defaultLoader ImageLoader
	mutex         sync.RWMutex
}

// NewImageLoaderRegistry creates a registry reading from fs where OpenCV
// decodes every format and the native decoder backs it up for the formats
// Go understands
func NewImageLoaderRegistry(fs afero.Fs) *ImageLoaderRegistry {
	registry := &ImageLoaderRegistry{
		loaders: make(map[string][]ImageLoader),
	}

	opencvLoader := NewOpenCVImageLoader(fs)
	nativeLoader := NewNativeImageLoader(fs)
	registry.defaultLoader = opencvLoader

	for ext := range formatExtensions {
		if IsNativeFormat(ext) {
			registry.RegisterLoader(ext, nativeLoader)
		} else {
			registry.loaders[ext] = []ImageLoader{opencvLoader}
		}
	}

	return registry
}

// RegisterLoader appends a loader to the chain for a specific file extension
func (r *ImageLoaderRegistry) RegisterLoader(ext string, loader ImageLoader) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ext = strings.ToLower(ext)
	if _, ok := r.loaders[ext]; !ok {
		r.loaders[ext] = []ImageLoader{r.defaultLoader}
	}
	r.loaders[ext] = append(r.loaders[ext], loader)
}

// GetLoaders returns the loader chain for the given path
func (r *ImageLoaderRegistry) GetLoaders(path string) []ImageLoader {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	ext := strings.ToLower(filepath.Ext(path))
	if chain, ok := r.loaders[ext]; ok {
		return chain
	}
	return []ImageLoader{r.defaultLoader}
}

// LoadImage tries each loader in the chain and returns the first success.
// The error names the path when every loader fails.
func (r *ImageLoaderRegistry) LoadImage(path string) (gocv.Mat, error) {
	var lastErr error
	for _, loader := range r.GetLoaders(path) {
		if !loader.CanLoad(path) {
			continue
		}
		img, err := loader.LoadImage(path)
		if err == nil {
			logging.LogImageLoaded(path, true, "")
			return img, nil
		}
		img.Close()
		logging.LogWarning("Loader %T failed for %s: %v", loader, path, err)
		lastErr = err
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("file is missing or unreadable")
	}
	logging.LogImageLoaded(path, false, lastErr.Error())
	return gocv.NewMat(), fmt.Errorf("failed to read image: %s: %w", path, lastErr)
}
