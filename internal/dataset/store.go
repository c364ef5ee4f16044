// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset aggregates converted scripts into the case dataset and
// builds a retrieval index.
// Implements: prd003-dataset (R1-R5);
//
//	docs/ARCHITECTURE § Dataset.
package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

const (
	scriptDir       = "script"
	metadataDir     = "metadata"
	indexDir        = "index"
	dbFile          = "discussions.db"
	discussionsFile = "discussions.json"
)

// Store manages the dataset SQLite database.
type Store struct {
	db             *sql.DB
	datasetDir     string
	transcriptsDir string
	maxResults     int
}

// NewStore opens or creates the dataset SQLite database at
// datasetDir/index/discussions.db. It creates the schema if it does not
// exist.
func NewStore(cfg types.DatasetConfig, transcriptsDir string) (*Store, error) {
	dbDir := filepath.Join(cfg.DatasetDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:             db,
		datasetDir:     cfg.DatasetDir,
		transcriptsDir: transcriptsDir,
		maxResults:     maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS cases (
			id TEXT PRIMARY KEY,
			client TEXT,
			category TEXT,
			turn_count INTEGER,
			rtf_path TEXT,
			script_path TEXT,
			conversion_status TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS turns (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			case_id TEXT NOT NULL REFERENCES cases(id),
			seq INTEGER NOT NULL,
			role TEXT,
			content TEXT NOT NULL,
			UNIQUE(case_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_turns_case_id ON turns(case_id)`,
		`CREATE INDEX IF NOT EXISTS idx_turns_role ON turns(role)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			case_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='turns_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE turns_fts USING fts5(content, content=turns, content_rowid=rowid)`,
			`CREATE TRIGGER turns_ai AFTER INSERT ON turns BEGIN
				INSERT INTO turns_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
			`CREATE TRIGGER turns_ad AFTER DELETE ON turns BEGIN
				INSERT INTO turns_fts(turns_fts, rowid, content) VALUES('delete', old.rowid, old.content);
			END`,
			`CREATE TRIGGER turns_au AFTER UPDATE ON turns BEGIN
				INSERT INTO turns_fts(turns_fts, rowid, content) VALUES('delete', old.rowid, old.content);
				INSERT INTO turns_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a dataset indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of scripts processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads JSONL scripts from transcripts/script/ and populates the
// database. It detects new, changed, and unchanged files for incremental
// updates. On success it writes export.yaml.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	scriptsPath := filepath.Join(s.transcriptsDir, scriptDir)
	metaDir := filepath.Join(s.transcriptsDir, metadataDir)

	entries, err := os.ReadDir(scriptsPath)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading script directory %s: %w", scriptsPath, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		caseID := strings.TrimSuffix(entry.Name(), ".jsonl")
		filePath := filepath.Join(scriptsPath, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", caseID, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		// Check whether the file has changed since last indexing.
		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE case_id = ?`, caseID,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", caseID)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		turns, err := readScript(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", caseID, err)
			summary.Failed++
			continue
		}

		script := loadScriptMetadata(metaDir, caseID)

		if err := s.ingestCase(ctx, caseID, turns, script, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", caseID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d turns)\n", caseID, len(turns))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d turns)\n", caseID, len(turns))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	// Write export.yaml after successful ingestion.
	if summary.Indexed > 0 || summary.Updated > 0 {
		if err := s.ExportYAML(ctx, QueryOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

func (s *Store) ingestCase(ctx context.Context, caseID string, turns []types.Turn, script *types.Script, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Remove old turns if updating.
	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM turns WHERE case_id = ?`, caseID); err != nil {
			return fmt.Errorf("deleting old turns: %w", err)
		}
	}

	// Upsert case record. Client and category come from the metadata record
	// when present, from the filename otherwise.
	client, category := "", ""
	rtfPath, scriptPath, status := "", "", ""
	if script != nil {
		client, category = script.Client, script.Category
		rtfPath, scriptPath = script.RTFPath, script.ScriptPath
		status = string(script.ConversionStatus)
	}
	if client == "" && category == "" {
		if c, cat, err := types.ParseCaseName(caseID); err == nil {
			client, category = c, cat
		}
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO cases (id, client, category, turn_count, rtf_path, script_path, conversion_status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			client=excluded.client, category=excluded.category,
			turn_count=excluded.turn_count, rtf_path=excluded.rtf_path,
			script_path=excluded.script_path, conversion_status=excluded.conversion_status`,
		caseID, client, category, len(turns), rtfPath, scriptPath, status,
	)
	if err != nil {
		return fmt.Errorf("upserting case: %w", err)
	}

	// Insert turns in conversation order.
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO turns (case_id, seq, role, content) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, turn := range turns {
		if _, err := stmt.ExecContext(ctx, caseID, i, turn.Role, turn.Text); err != nil {
			return fmt.Errorf("inserting turn %d: %w", i, err)
		}
	}

	// Update indexing status.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (case_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(case_id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		caseID, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}

// loadScriptMetadata reads a Script record from metaDir/[caseID].yaml.
// Returns nil if the file does not exist or cannot be parsed.
func loadScriptMetadata(metaDir, caseID string) *types.Script {
	path := filepath.Join(metaDir, caseID+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var script types.Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil
	}
	return &script
}
