// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

// QueryOptions holds parameters for dataset queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over turn content.
	Query string

	// Role filters by speaker role.
	Role string

	// Client filters by client name.
	Client string

	// Category filters by discussion category.
	Category string

	// CaseID filters by case.
	CaseID string

	// MaxResults limits result count. Zero uses store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Role == "" && q.Client == "" && q.Category == "" && q.CaseID == ""
}

// QueryResult is a single turn with associated case metadata.
type QueryResult struct {
	CaseID   string `json:"case_id" yaml:"case_id"`
	Seq      int    `json:"seq" yaml:"seq"`
	Role     string `json:"role" yaml:"role"`
	Content  string `json:"content" yaml:"content"`
	Client   string `json:"client" yaml:"client"`
	Category string `json:"category" yaml:"category"`
}

// Retrieve queries the dataset with optional full-text search and structured
// filters. Results are ranked by relevance for full-text queries or sorted
// by case_id, seq for structured-only queries.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT tu.case_id, tu.seq, tu.role, tu.content,
				c.client, c.category, turns_fts.rank
			FROM turns_fts
			JOIN turns tu ON tu.rowid = turns_fts.rowid
			LEFT JOIN cases c ON tu.case_id = c.id
			WHERE turns_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT tu.case_id, tu.seq, tu.role, tu.content,
				c.client, c.category, 0 AS rank
			FROM turns tu
			LEFT JOIN cases c ON tu.case_id = c.id
			WHERE 1=1`)
	}

	if opts.Role != "" {
		qb.WriteString(` AND tu.role = ?`)
		args = append(args, opts.Role)
	}

	if opts.Client != "" {
		qb.WriteString(` AND c.client = ?`)
		args = append(args, opts.Client)
	}

	if opts.Category != "" {
		qb.WriteString(` AND c.category = ?`)
		args = append(args, opts.Category)
	}

	if opts.CaseID != "" {
		qb.WriteString(` AND tu.case_id = ?`)
		args = append(args, opts.CaseID)
	}

	if useFTS {
		qb.WriteString(` ORDER BY turns_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY tu.case_id, tu.seq`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying dataset: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr       QueryResult
			client   sql.NullString
			category sql.NullString
			rank     float64
		)

		if err := rows.Scan(
			&qr.CaseID, &qr.Seq, &qr.Role, &qr.Content,
			&client, &category, &rank,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		if client.Valid {
			qr.Client = client.String
		}
		if category.Valid {
			qr.Category = category.String
		}

		results = append(results, qr)
	}

	return results, rows.Err()
}

// traceWindow is the number of turns shown on each side of the traced turn.
const traceWindow = 2

// Trace returns the conversation context around one turn: the turn itself
// plus up to traceWindow turns on each side, read from the source script in
// transcripts/script/.
func (s *Store) Trace(ctx context.Context, caseID string, seq int) ([]types.Turn, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM turns WHERE case_id = ?`, caseID,
	).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("looking up case: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("case %s not found", caseID)
	}
	if seq < 0 || seq >= count {
		return nil, fmt.Errorf("case %s has no turn %d", caseID, seq)
	}

	scriptPath := filepath.Join(s.transcriptsDir, scriptDir, caseID+".jsonl")
	turns, err := readScript(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", scriptPath, err)
	}
	// The script may have changed since indexing; bound against the file too.
	if seq >= len(turns) {
		return nil, fmt.Errorf("case %s has no turn %d", caseID, seq)
	}

	lo := seq - traceWindow
	if lo < 0 {
		lo = 0
	}
	hi := seq + traceWindow + 1
	if hi > len(turns) {
		hi = len(turns)
	}
	return turns[lo:hi], nil
}
