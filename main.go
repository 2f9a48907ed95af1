package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"psnreval/database"
	"psnreval/evaluator"
	"psnreval/logging"
	"psnreval/reporter"
	"psnreval/signalhandler"
	"psnreval/utils"

	"github.com/spf13/afero"
)

func main() {
	// Set up proper signal handling
	signalhandler.SetupHandler()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one evaluation and returns the process exit code:
// 0 on success, 1 when the run fails, 2 for a bad command line
func run(argv []string, stdout, stderr io.Writer) int {
	args, err := utils.ParseArguments(argv)
	if err != nil {
		utils.PrintUsageError(stderr, err)
		return 2
	}
	if args.Help {
		utils.PrintHelp(stdout)
		return 0
	}

	// Setup debug logging if enabled
	if args.Debug {
		if err := logging.SetupLogger(args.LogFile); err != nil {
			fmt.Fprintf(stderr, "Warning: Failed to setup logging: %v\n", err)
		} else {
			defer logging.CloseLogger()
		}
	}

	evalOptions := utils.BuildOptions(args)
	logging.LogInfo("Reference: %s, target: %s, extensions: %v, recursive: %v",
		evalOptions.ReferenceDir, evalOptions.TargetDir, evalOptions.Extensions, evalOptions.Recursive)
	logging.LogInfo("Delimiter: %q, drop ref: %d, drop target: %d, ignore case: %v",
		evalOptions.Delimiter, evalOptions.DropSuffixRef, evalOptions.DropSuffixTarget, evalOptions.IgnoreCase)

	fs := afero.NewOsFs()
	e := evaluator.New(fs, reporter.New(stdout), nil)

	if args.Database != "" {
		db, err := database.InitDatabase(args.Database)
		if err != nil {
			fmt.Fprintf(stderr, "Error: cannot open database %s: %v\n", args.Database, err)
			return 1
		}
		defer db.Close()
		e.DB = db
	}

	startTime := time.Now()
	summary, err := e.Run(evalOptions)
	logging.LogInfo("Run finished in %v", time.Since(startTime))

	switch {
	case err == nil:
	case errors.Is(err, evaluator.ErrReferenceMissing),
		errors.Is(err, evaluator.ErrTargetMissing),
		errors.Is(err, evaluator.ErrNoMatches),
		errors.Is(err, evaluator.ErrNoValidPairs):
		// already reported
		logging.LogWarning("Run ended early: %v", err)
		return 1
	default:
		logging.LogError("Run failed: %v", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Print stored run statistics in debug mode
	if args.Debug && e.DB != nil && summary.RunID != 0 {
		stats, err := database.GetRunStats(e.DB, summary.RunID)
		if err == nil {
			fmt.Fprintf(stderr, "Stored run %d in %s: %d scored, %d skipped, %d identical, average %s dB\n",
				summary.RunID, args.Database, stats.ScoredPairs, stats.SkippedPairs, stats.IdenticalPairs,
				reporter.FormatPSNR(stats.AveragePSNR))
		}
	}

	return 0
}
