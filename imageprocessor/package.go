// Package imageprocessor loads images without color or depth conversion and
// computes the PSNR between two decoded images.
package imageprocessor

import "gocv.io/x/gocv"

// ImageLoader is the interface that all image loaders must implement
type ImageLoader interface {
	// CanLoad checks if the loader can handle the given file
	CanLoad(path string) bool

	// LoadImage loads and returns the image as stored
	LoadImage(path string) (gocv.Mat, error)
}
