package evaluator

import "psnreval/types"

// Options controls one evaluation run
type Options struct {
	ReferenceDir string
	TargetDir    string

	// Extensions as given on the command line; normalized before use
	Extensions []string
	Recursive  bool
	Quiet      bool

	Delimiter        string
	DropSuffixRef    int
	DropSuffixTarget int
	IgnoreCase       bool
}

// Summary is everything a run produced
type Summary struct {
	RunID         int64
	Results       []types.PairResult
	Scores        []types.ScoreEntry
	AveragePSNR   float64
	RefDuplicates []string
	TgtDuplicates []string
}
