package imageprocessor

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePair_Identical(t *testing.T) {
	dir := t.TempDir()
	img := colorImage(8, 8, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	ref := writePNG(t, filepath.Join(dir, "ref.png"), img)
	tgt := writePNG(t, filepath.Join(dir, "tgt.png"), img)

	outcome, err := EvaluatePair(NewImageLoaderRegistry(afero.NewOsFs()), ref, tgt)
	require.NoError(t, err)
	assert.False(t, outcome.Mismatch)
	assert.True(t, math.IsInf(outcome.PSNR, 1))
}

func TestEvaluatePair_Offset(t *testing.T) {
	dir := t.TempDir()
	ref := writePNG(t, filepath.Join(dir, "ref.png"), grayImage(4, 4, 100))
	tgt := writePNG(t, filepath.Join(dir, "tgt.png"), grayImage(4, 4, 102))

	outcome, err := EvaluatePair(NewImageLoaderRegistry(afero.NewOsFs()), ref, tgt)
	require.NoError(t, err)
	assert.InDelta(t, 20*math.Log10(255.0/2.0), outcome.PSNR, 1e-9)
}

func TestEvaluatePair_ShapeMismatch(t *testing.T) {
	dir := t.TempDir()
	ref := writePNG(t, filepath.Join(dir, "ref.png"), grayImage(8, 8, 1))
	tgt := writePNG(t, filepath.Join(dir, "tgt.png"), grayImage(4, 4, 1))

	outcome, err := EvaluatePair(NewImageLoaderRegistry(afero.NewOsFs()), ref, tgt)
	require.NoError(t, err)
	assert.True(t, outcome.Mismatch)
	assert.Equal(t, "(8, 8)", outcome.ReferenceShape.String())
	assert.Equal(t, "(4, 4)", outcome.TargetShape.String())
}

func TestEvaluatePair_ChannelMismatch(t *testing.T) {
	dir := t.TempDir()
	ref := writePNG(t, filepath.Join(dir, "ref.png"), grayImage(4, 4, 1))
	tgt := writePNG(t, filepath.Join(dir, "tgt.png"), colorImage(4, 4, color.NRGBA{A: 255}))

	outcome, err := EvaluatePair(NewImageLoaderRegistry(afero.NewOsFs()), ref, tgt)
	require.NoError(t, err)
	assert.True(t, outcome.Mismatch)
}

func TestEvaluatePair_DecodeFailure(t *testing.T) {
	dir := t.TempDir()
	ref := writePNG(t, filepath.Join(dir, "ref.png"), grayImage(4, 4, 1))
	tgt := filepath.Join(dir, "tgt.png")
	require.NoError(t, os.WriteFile(tgt, []byte{0x89, 'P', 'N', 'G'}, 0o644))

	_, err := EvaluatePair(NewImageLoaderRegistry(afero.NewOsFs()), ref, tgt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), tgt)
}
