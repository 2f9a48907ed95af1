package imageprocessor

import (
	"path/filepath"
	"strings"
)

// FormatType represents a known image format type
type FormatType string

// Known image format constants
const (
	FormatUnknown FormatType = "unknown"
	FormatJPEG    FormatType = "jpeg"
	FormatPNG     FormatType = "png"
	FormatGIF     FormatType = "gif"
	FormatTIFF    FormatType = "tiff"
	FormatBMP     FormatType = "bmp"
	FormatWEBP    FormatType = "webp"
	FormatPPM     FormatType = "ppm"
	FormatEXR     FormatType = "exr"
	FormatJP2     FormatType = "jp2"
)

// Map of extensions to format types
var formatExtensions = map[string]FormatType{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".jpe":  FormatJPEG,
	".png":  FormatPNG,
	".gif":  FormatGIF,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".bmp":  FormatBMP,
	".dib":  FormatBMP,
	".webp": FormatWEBP,
	".ppm":  FormatPPM,
	".pgm":  FormatPPM,
	".pbm":  FormatPPM,
	".exr":  FormatEXR,
	".jp2":  FormatJP2,
}

// nativeFormats can be decoded without OpenCV
var nativeFormats = []FormatType{FormatJPEG, FormatPNG, FormatBMP, FormatTIFF, FormatWEBP}

// GetFileFormat returns the format type based on file extension
func GetFileFormat(path string) FormatType {
	ext := strings.ToLower(filepath.Ext(path))
	format, exists := formatExtensions[ext]
	if !exists {
		return FormatUnknown
	}
	return format
}

// IsNativeFormat reports whether the native decoder understands the file's format
func IsNativeFormat(path string) bool {
	format := GetFileFormat(path)
	for _, f := range nativeFormats {
		if f == format {
			return true
		}
	}
	return false
}
