// Package evaluator runs the batch comparison: collect both directories,
// intersect their match keys, score every pair and print the report.
package evaluator

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"psnreval/database"
	"psnreval/imageprocessor"
	"psnreval/logging"
	"psnreval/matcher"
	"psnreval/reporter"
	"psnreval/scanner"
	"psnreval/types"

	"github.com/spf13/afero"
)

var (
	ErrReferenceMissing = errors.New("reference directory not found")
	ErrTargetMissing    = errors.New("target directory not found")
	ErrNoMatches        = errors.New("no matching image pairs")
	ErrNoValidPairs     = errors.New("no valid image pairs")
)

// Evaluator holds the collaborators of a run. DB is optional.
type Evaluator struct {
	Fs       afero.Fs
	Loaders  *imageprocessor.ImageLoaderRegistry
	Reporter *reporter.Reporter
	DB       *sql.DB
}

// New creates an Evaluator reading from fs and reporting through rep
func New(fs afero.Fs, rep *reporter.Reporter, db *sql.DB) *Evaluator {
	return &Evaluator{
		Fs:       fs,
		Loaders:  imageprocessor.NewImageLoaderRegistry(fs),
		Reporter: rep,
		DB:       db,
	}
}

// Run evaluates every matched pair. The user-facing message for each
// sentinel error has already been printed when Run returns it.
func (e *Evaluator) Run(opts Options) (*Summary, error) {
	startedAt := time.Now()

	if err := e.checkDirectories(opts); err != nil {
		return nil, err
	}

	extensions := scanner.NormalizeExtensions(opts.Extensions)
	allowed := scanner.ExtensionSet(extensions)

	refFiles, err := scanner.CollectImages(e.Fs, opts.ReferenceDir, scanner.CollectOptions{
		Extensions: allowed,
		Recursive:  opts.Recursive,
		KeyBuilder: matcher.NewKeyBuilder(opts.DropSuffixRef, opts.Delimiter, opts.IgnoreCase),
	})
	if err != nil {
		return nil, err
	}
	tgtFiles, err := scanner.CollectImages(e.Fs, opts.TargetDir, scanner.CollectOptions{
		Extensions: allowed,
		Recursive:  opts.Recursive,
		KeyBuilder: matcher.NewKeyBuilder(opts.DropSuffixTarget, opts.Delimiter, opts.IgnoreCase),
	})
	if err != nil {
		return nil, err
	}

	e.Reporter.DuplicateWarning(reporter.RoleReference, len(refFiles.Duplicates))
	e.Reporter.DuplicateWarning(reporter.RoleTarget, len(tgtFiles.Duplicates))

	summary := &Summary{
		RefDuplicates: refFiles.Duplicates,
		TgtDuplicates: tgtFiles.Duplicates,
	}

	keys := matcher.CommonKeys(refFiles.Files, tgtFiles.Files)
	logging.LogInfo("Matched %d keys (%d reference, %d target files)", len(keys), len(refFiles.Files), len(tgtFiles.Files))
	if len(keys) == 0 {
		e.Reporter.NoMatches()
		return summary, ErrNoMatches
	}

	for _, key := range keys {
		result, err := e.evaluateKey(key, refFiles.Files[key], tgtFiles.Files[key])
		if err != nil {
			return summary, err
		}
		summary.Results = append(summary.Results, *result)
		if result.Status == types.PairScored {
			summary.Scores = append(summary.Scores, result.ScoreEntry)
		}
	}

	summary.AveragePSNR = reporter.Average(summary.Scores)

	if len(summary.Scores) == 0 {
		e.Reporter.NoValidPairs()
		if err := e.store(opts, extensions, startedAt, summary); err != nil {
			return summary, err
		}
		return summary, ErrNoValidPairs
	}

	e.Reporter.Scores(summary.Scores, opts.Quiet)

	if err := e.store(opts, extensions, startedAt, summary); err != nil {
		return summary, err
	}
	return summary, nil
}

func (e *Evaluator) checkDirectories(opts Options) error {
	if ok, _ := afero.IsDir(e.Fs, opts.ReferenceDir); !ok {
		e.Reporter.DirectoryNotFound(reporter.RoleReference, opts.ReferenceDir)
		return ErrReferenceMissing
	}
	if ok, _ := afero.IsDir(e.Fs, opts.TargetDir); !ok {
		e.Reporter.DirectoryNotFound(reporter.RoleTarget, opts.TargetDir)
		return ErrTargetMissing
	}
	return nil
}

// evaluateKey scores one pair. A shape mismatch is printed and returned as a
// skipped result; a decode failure aborts the run.
func (e *Evaluator) evaluateKey(key, refPath, tgtPath string) (*types.PairResult, error) {
	refName, tgtName := filepath.Base(refPath), filepath.Base(tgtPath)

	outcome, err := imageprocessor.EvaluatePair(e.Loaders, refPath, tgtPath)
	if err != nil {
		return nil, err
	}

	result := &types.PairResult{
		ScoreEntry: types.ScoreEntry{
			Label:         reporter.PairLabel(refName, tgtName),
			Key:           key,
			ReferencePath: refPath,
			TargetPath:    tgtPath,
		},
		ReferenceShape: outcome.ReferenceShape.String(),
		TargetShape:    outcome.TargetShape.String(),
	}

	if outcome.Mismatch {
		e.Reporter.ShapeMismatch(refName, tgtName, outcome.ReferenceShape, outcome.TargetShape)
		result.Status = types.PairShapeMismatch
	} else {
		result.Status = types.PairScored
		result.PSNR = outcome.PSNR
	}

	logging.LogPairProcessed(key, string(result.Status), result.PSNR)
	return result, nil
}

func (e *Evaluator) store(opts Options, extensions []string, startedAt time.Time, summary *Summary) error {
	if e.DB == nil {
		return nil
	}

	run := types.RunRecord{
		StartedAt:     startedAt,
		ReferenceDir:  opts.ReferenceDir,
		TargetDir:     opts.TargetDir,
		Extensions:    strings.Join(extensions, " "),
		MatchedPairs:  len(summary.Results),
		ScoredPairs:   len(summary.Scores),
		SkippedPairs:  len(summary.Results) - len(summary.Scores),
		AveragePSNR:   summary.AveragePSNR,
		RefDuplicates: len(summary.RefDuplicates),
		TgtDuplicates: len(summary.TgtDuplicates),
	}

	runID, err := database.StoreRun(e.DB, run, summary.Results)
	if err != nil {
		return fmt.Errorf("failed to store results: %w", err)
	}
	summary.RunID = runID
	logging.LogInfo("Stored run %d with %d pair results", runID, len(summary.Results))
	return nil
}
