package imageprocessor

import (
	"fmt"
	"math"

	"gocv.io/x/gocv"
)

// MaxPixelValue is the peak signal used by PSNR. It is fixed at the 8-bit
// range whatever the stored depth.
const MaxPixelValue = 255.0

// Shape is the height, width and channel count of a decoded image
type Shape struct {
	Height   int
	Width    int
	Channels int
}

// ShapeOf returns the shape of img
func ShapeOf(img gocv.Mat) Shape {
	return Shape{Height: img.Rows(), Width: img.Cols(), Channels: img.Channels()}
}

// String renders the shape like an array shape: (h, w) or (h, w, c)
func (s Shape) String() string {
	if s.Channels <= 1 {
		return fmt.Sprintf("(%d, %d)", s.Height, s.Width)
	}
	return fmt.Sprintf("(%d, %d, %d)", s.Height, s.Width, s.Channels)
}

// Samples is the number of values in an image of this shape
func (s Shape) Samples() int {
	channels := s.Channels
	if channels < 1 {
		channels = 1
	}
	return s.Height * s.Width * channels
}

// PSNRFromMSE converts a mean squared error into PSNR in dB.
// A zero error gives +Inf.
func PSNRFromMSE(mse float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	return 20.0 * math.Log10(MaxPixelValue/math.Sqrt(mse))
}

// ComputeMSE returns the mean squared error over all samples of two images
// with the same shape. Both are widened to float64 first, so differing
// depths compare by value.
func ComputeMSE(reference, target gocv.Mat) float64 {
	samples := ShapeOf(reference).Samples()
	if samples == 0 {
		return math.NaN()
	}

	ref := gocv.NewMat()
	defer ref.Close()
	tgt := gocv.NewMat()
	defer tgt.Close()

	reference.ConvertTo(&ref, gocv.MatTypeCV64F)
	target.ConvertTo(&tgt, gocv.MatTypeCV64F)

	sse := gocv.NormWithMats(ref, tgt, gocv.NormL2Sqr)
	return sse / float64(samples)
}

// ComputePSNR computes the PSNR between two images with the same shape
func ComputePSNR(reference, target gocv.Mat) float64 {
	return PSNRFromMSE(ComputeMSE(reference, target))
}
