package imageprocessor

import (
	"fmt"

	"github.com/spf13/afero"
	"gocv.io/x/gocv"
)

// BaseImageLoader provides common functionality for all image loaders
type BaseImageLoader struct {
	// Formats this loader can handle; empty means any format
	SupportedFormats []FormatType

	Fs afero.Fs
}

// CanLoad checks if this loader supports the file's format
func (l *BaseImageLoader) CanLoad(path string) bool {
	if len(l.SupportedFormats) == 0 {
		return fileExists(l.Fs, path)
	}

	format := GetFileFormat(path)
	for _, supported := range l.SupportedFormats {
		if format == supported {
			return fileExists(l.Fs, path)
		}
	}
	return false
}

// OpenCVImageLoader decodes any format OpenCV understands, keeping the
// stored channel count and bit depth
type OpenCVImageLoader struct {
	BaseImageLoader
}

// NewOpenCVImageLoader creates a loader that accepts every extension
func NewOpenCVImageLoader(fs afero.Fs) *OpenCVImageLoader {
	return &OpenCVImageLoader{BaseImageLoader: BaseImageLoader{Fs: fs}}
}

// LoadImage decodes the file with IMReadUnchanged
func (l *OpenCVImageLoader) LoadImage(path string) (gocv.Mat, error) {
	data, err := afero.ReadFile(l.Fs, path)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("cannot read %s: %w", path, err)
	}

	img, err := gocv.IMDecode(data, gocv.IMReadUnchanged)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("opencv could not decode image: %s: %w", path, err)
	}
	if img.Empty() {
		img.Close()
		return gocv.NewMat(), newImageLoadError("opencv could not decode image", path)
	}
	return img, nil
}

// fileExists checks if a file exists and is accessible
func fileExists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// newImageLoadError creates a standardized error for image loading failures
func newImageLoadError(message, path string) error {
	return fmt.Errorf("%s: %s", message, path)
}
