package database

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"psnreval/logging"
	"psnreval/types"

	_ "github.com/mattn/go-sqlite3"
)

// InitDatabase opens the results database and creates the schema if needed
func InitDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		reference_dir TEXT NOT NULL,
		target_dir TEXT NOT NULL,
		extensions TEXT,
		matched_pairs INTEGER,
		scored_pairs INTEGER,
		skipped_pairs INTEGER,
		ref_duplicates INTEGER,
		tgt_duplicates INTEGER,
		average_psnr REAL,
		average_infinite INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS pair_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		match_key TEXT NOT NULL,
		reference_path TEXT NOT NULL,
		target_path TEXT NOT NULL,
		status TEXT NOT NULL,
		psnr REAL,
		identical INTEGER NOT NULL DEFAULT 0,
		reference_shape TEXT,
		target_shape TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_pair_results_run ON pair_results(run_id);
	CREATE INDEX IF NOT EXISTS idx_pair_results_key ON pair_results(match_key);`

	if _, err = db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create schema in %s: %w", dbPath, err)
	}

	logging.DebugLog("Results database ready: %s", dbPath)
	return db, nil
}

// nullableScore maps a PSNR onto a nullable column plus an infinity flag,
// since SQLite has no portable representation of infinity
func nullableScore(v float64) (sql.NullFloat64, bool) {
	if math.IsInf(v, 1) {
		return sql.NullFloat64{}, true
	}
	if math.IsNaN(v) || math.IsInf(v, -1) {
		return sql.NullFloat64{}, false
	}
	return sql.NullFloat64{Float64: v, Valid: true}, false
}

// StoreRun stores a run and all of its pair results in one transaction
func StoreRun(db *sql.DB, run types.RunRecord, results []types.PairResult) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	avg, avgInf := nullableScore(run.AveragePSNR)
	res, err := tx.Exec(`
		INSERT INTO runs (
			started_at, reference_dir, target_dir, extensions, matched_pairs, scored_pairs,
			skipped_pairs, ref_duplicates, tgt_duplicates, average_psnr, average_infinite
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.Format(time.RFC3339),
		run.ReferenceDir,
		run.TargetDir,
		run.Extensions,
		run.MatchedPairs,
		run.ScoredPairs,
		run.SkippedPairs,
		run.RefDuplicates,
		run.TgtDuplicates,
		avg,
		avgInf,
	)
	if err != nil {
		return 0, fmt.Errorf("cannot insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("cannot read run id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO pair_results (
			run_id, match_key, reference_path, target_path, status, psnr, identical, reference_shape, target_shape
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("cannot prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, result := range results {
		score, identical := nullableScore(result.PSNR)
		if result.Status != types.PairScored {
			score, identical = sql.NullFloat64{}, false
		}
		_, err := stmt.Exec(
			runID,
			result.Key,
			result.ReferencePath,
			result.TargetPath,
			string(result.Status),
			score,
			identical,
			result.ReferenceShape,
			result.TargetShape,
		)
		if err != nil {
			return 0, fmt.Errorf("cannot insert result for %s: %w", result.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("cannot commit run: %w", err)
	}
	return runID, nil
}

// RunStats contains statistics about one stored run
type RunStats struct {
	ScoredPairs    int
	SkippedPairs   int
	IdenticalPairs int
	AveragePSNR    float64
}

// GetRunStats retrieves statistics about a stored run
func GetRunStats(db *sql.DB, runID int64) (*RunStats, error) {
	var stats RunStats

	err := db.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status != ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(identical), 0)
		FROM pair_results WHERE run_id = ?`,
		string(types.PairScored), string(types.PairScored), runID,
	).Scan(&stats.ScoredPairs, &stats.SkippedPairs, &stats.IdenticalPairs)
	if err != nil {
		return nil, fmt.Errorf("failed to count results for run %d: %w", runID, err)
	}

	var avg sql.NullFloat64
	var avgInf bool
	err = db.QueryRow("SELECT average_psnr, average_infinite FROM runs WHERE id = ?", runID).Scan(&avg, &avgInf)
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", runID, err)
	}
	switch {
	case avgInf:
		stats.AveragePSNR = math.Inf(1)
	case avg.Valid:
		stats.AveragePSNR = avg.Float64
	default:
		stats.AveragePSNR = math.NaN()
	}

	return &stats, nil
}
