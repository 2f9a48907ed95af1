package imageprocessor

// PairOutcome is the result of comparing one reference/target pair
type PairOutcome struct {
	ReferenceShape Shape
	TargetShape    Shape
	Mismatch       bool
	PSNR           float64
}

// EvaluatePair loads both images and computes their PSNR.
// A shape mismatch is reported in the outcome, not as an error; a file that
// cannot be decoded is an error. Both images are released before returning.
func EvaluatePair(registry *ImageLoaderRegistry, referencePath, targetPath string) (*PairOutcome, error) {
	ref, err := registry.LoadImage(referencePath)
	if err != nil {
		ref.Close()
		return nil, err
	}
	defer ref.Close()

	tgt, err := registry.LoadImage(targetPath)
	if err != nil {
		tgt.Close()
		return nil, err
	}
	defer tgt.Close()

	outcome := &PairOutcome{
		ReferenceShape: ShapeOf(ref),
		TargetShape:    ShapeOf(tgt),
	}
	if outcome.ReferenceShape != outcome.TargetShape {
		outcome.Mismatch = true
		return outcome, nil
	}

	outcome.PSNR = ComputePSNR(ref, tgt)
	return outcome, nil
}
