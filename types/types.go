package types

import "time"

// PairStatus describes what happened to a matched pair
type PairStatus string

const (
	// PairScored means a PSNR value was computed for the pair
	PairScored PairStatus = "scored"
	// PairShapeMismatch means the pair was skipped because the image shapes differ
	PairShapeMismatch PairStatus = "shape_mismatch"
)

// ScoreEntry holds the PSNR for one reference/target pair
type ScoreEntry struct {
	Label         string  `json:"label"`
	Key           string  `json:"key"`
	ReferencePath string  `json:"reference_path"`
	TargetPath    string  `json:"target_path"`
	PSNR          float64 `json:"psnr"`
}

// PairResult records the outcome of every matched pair, scored or skipped
type PairResult struct {
	ScoreEntry
	Status         PairStatus `json:"status"`
	ReferenceShape string     `json:"reference_shape"`
	TargetShape    string     `json:"target_shape"`
}

// RunRecord summarizes one evaluation run
type RunRecord struct {
	ID            int64     `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	ReferenceDir  string    `json:"reference_dir"`
	TargetDir     string    `json:"target_dir"`
	Extensions    string    `json:"extensions"`
	MatchedPairs  int       `json:"matched_pairs"`
	ScoredPairs   int       `json:"scored_pairs"`
	SkippedPairs  int       `json:"skipped_pairs"`
	AveragePSNR   float64   `json:"average_psnr"`
	RefDuplicates int       `json:"ref_duplicates"`
	TgtDuplicates int       `json:"tgt_duplicates"`
}
