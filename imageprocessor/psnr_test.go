package imageprocessor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gocv.io/x/gocv"
)

func filledMat(t *testing.T, value float64, rows, cols int, mt gocv.MatType) gocv.Mat {
	t.Helper()
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(value, value, value, value), rows, cols, mt)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestPSNRFromMSE(t *testing.T) {
	assert.True(t, math.IsInf(PSNRFromMSE(0), 1))
	assert.InDelta(t, 0.0, PSNRFromMSE(255*255), 1e-9)
	assert.InDelta(t, 20*math.Log10(255.0/2.0), PSNRFromMSE(4), 1e-9)
	assert.InDelta(t, 48.1308, PSNRFromMSE(1), 1e-4)
}

func TestComputePSNR_IdenticalIsInfinite(t *testing.T) {
	a := filledMat(t, 77, 8, 6, gocv.MatTypeCV8UC3)
	b := filledMat(t, 77, 8, 6, gocv.MatTypeCV8UC3)

	assert.True(t, math.IsInf(ComputePSNR(a, b), 1))
}

func TestComputePSNR_ConstantOffset(t *testing.T) {
	a := filledMat(t, 10, 4, 4, gocv.MatTypeCV8UC3)
	b := filledMat(t, 12, 4, 4, gocv.MatTypeCV8UC3)

	assert.InDelta(t, 4.0, ComputeMSE(a, b), 1e-9)
	assert.InDelta(t, 20*math.Log10(255.0/2.0), ComputePSNR(a, b), 1e-9)
}

func TestComputePSNR_NoUnsignedWraparound(t *testing.T) {
	a := filledMat(t, 12, 2, 2, gocv.MatTypeCV8UC1)
	b := filledMat(t, 10, 2, 2, gocv.MatTypeCV8UC1)

	assert.InDelta(t, 4.0, ComputeMSE(a, b), 1e-9)
	assert.InDelta(t, 4.0, ComputeMSE(b, a), 1e-9)
}

func TestComputePSNR_SinglePixel(t *testing.T) {
	a := filledMat(t, 100, 2, 2, gocv.MatTypeCV8UC1)
	b := filledMat(t, 100, 2, 2, gocv.MatTypeCV8UC1)
	b.SetUCharAt(1, 1, 108)

	assert.InDelta(t, 16.0, ComputeMSE(a, b), 1e-9)
}

func TestComputePSNR_DepthDoesNotChangePeak(t *testing.T) {
	a := filledMat(t, 300, 3, 3, gocv.MatTypeCV16UC1)
	b := filledMat(t, 300, 3, 3, gocv.MatTypeCV16UC1)
	assert.True(t, math.IsInf(ComputePSNR(a, b), 1))

	c := filledMat(t, 302, 3, 3, gocv.MatTypeCV16UC1)
	assert.InDelta(t, 20*math.Log10(255.0/2.0), ComputePSNR(a, c), 1e-9)
}

func TestShape(t *testing.T) {
	color := filledMat(t, 0, 480, 640, gocv.MatTypeCV8UC3)
	gray := filledMat(t, 0, 240, 320, gocv.MatTypeCV8UC1)

	assert.Equal(t, Shape{Height: 480, Width: 640, Channels: 3}, ShapeOf(color))
	assert.Equal(t, "(480, 640, 3)", ShapeOf(color).String())
	assert.Equal(t, "(240, 320)", ShapeOf(gray).String())
	assert.Equal(t, 480*640*3, ShapeOf(color).Samples())
	assert.NotEqual(t, ShapeOf(color), ShapeOf(gray))
}
