// Package reporter prints the evaluation report: warnings, skipped pairs,
// one CSV-like row per scored pair and the average PSNR.
package reporter

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"psnreval/types"
)

// Role names one side of the comparison
type Role string

const (
	RoleReference Role = "reference"
	RoleTarget    Role = "target"
)

// Header is the first line of the score table
const Header = "Reference/Target,PSNR(dB)"

// Reporter writes the user-facing report
type Reporter struct {
	out io.Writer
}

// New creates a Reporter writing to out
func New(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// DirectoryNotFound reports a missing reference or target directory
func (r *Reporter) DirectoryNotFound(role Role, path string) {
	switch role {
	case RoleReference:
		fmt.Fprintf(r.out, "Reference directory not found: %s\n", path)
	default:
		fmt.Fprintf(r.out, "Target directory not found: %s\n", path)
	}
}

// DuplicateWarning reports how many files were skipped for sharing a match key
func (r *Reporter) DuplicateWarning(role Role, count int) {
	if count <= 0 {
		return
	}
	fmt.Fprintf(r.out, "Warning: skipped %d %s files due to duplicate match keys.\n", count, role)
}

// NoMatches reports that the two directories have no key in common
func (r *Reporter) NoMatches() {
	fmt.Fprintln(r.out, "No matching image pairs found.")
}

// ShapeMismatch reports a pair skipped because the shapes differ
func (r *Reporter) ShapeMismatch(refName, tgtName string, refShape, tgtShape fmt.Stringer) {
	fmt.Fprintf(r.out, "Skip %s <-> %s: shape mismatch %s vs %s\n", refName, tgtName, refShape, tgtShape)
}

// NoValidPairs reports that every matched pair was skipped
func (r *Reporter) NoValidPairs() {
	fmt.Fprintln(r.out, "No valid image pairs after filtering mismatches.")
}

// Scores prints the score table, unless quiet, followed by the average
func (r *Reporter) Scores(entries []types.ScoreEntry, quiet bool) {
	if !quiet {
		fmt.Fprintln(r.out, Header)
		for _, entry := range entries {
			fmt.Fprintf(r.out, "%s,%s\n", entry.Label, FormatPSNR(entry.PSNR))
		}
	}
	fmt.Fprintf(r.out, "Average PSNR: %s dB\n", FormatPSNR(Average(entries)))
}

// Average returns the arithmetic mean of the scores. Infinite scores take
// part like any other value, so one identical pair makes the average +Inf.
func Average(entries []types.ScoreEntry) float64 {
	if len(entries) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, entry := range entries {
		sum += entry.PSNR
	}
	return sum / float64(len(entries))
}

// FormatPSNR renders a score with four decimals, or inf, -inf, nan
func FormatPSNR(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// PairLabel joins the reference and target file names for a report row
func PairLabel(refName, tgtName string) string {
	return refName + " <-> " + tgtName
}
