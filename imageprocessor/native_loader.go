package imageprocessor

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration

	"github.com/spf13/afero"
	"gocv.io/x/gocv"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// NativeImageLoader decodes common formats with Go's image packages when
// OpenCV cannot. Channels are laid out the way OpenCV would store them;
// 16-bit images are refused rather than narrowed.
type NativeImageLoader struct {
	BaseImageLoader
}

// NewNativeImageLoader creates a loader for the formats Go can decode
func NewNativeImageLoader(fs afero.Fs) *NativeImageLoader {
	return &NativeImageLoader{
		BaseImageLoader: BaseImageLoader{SupportedFormats: nativeFormats, Fs: fs},
	}
}

// LoadImage decodes the file and converts it into a Mat
func (l *NativeImageLoader) LoadImage(path string) (gocv.Mat, error) {
	img, err := tryGoImagePackages(l.Fs, path)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("native decode failed for %s: %w", path, err)
	}
	return gocvMatFromGoImage(img)
}

// tryGoImagePackages decodes an image with the registered Go decoders
func tryGoImagePackages(fs afero.Fs, path string) (image.Image, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// gocvMatFromGoImage converts a decoded 8-bit image into a Mat:
// gray stays single channel, opaque images become BGR, the rest BGRA
func gocvMatFromGoImage(img image.Image) (gocv.Mat, error) {
	switch m := img.(type) {
	case *image.Gray:
		return gocv.ImageGrayToMatGray(m)
	case *image.Gray16, *image.RGBA64, *image.NRGBA64:
		return gocv.NewMat(), fmt.Errorf("16-bit %T images are not supported by the native decoder", img)
	}

	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return gocv.ImageToMatRGB(img)
	}
	return gocv.ImageToMatRGBA(img)
}
