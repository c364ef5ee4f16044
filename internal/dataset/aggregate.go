// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

// AggregateSummary holds counts from an aggregation run.
type AggregateSummary struct {
	Aggregated int
	Failed     int
}

// Total returns the number of scripts processed.
func (s AggregateSummary) Total() int {
	return s.Aggregated + s.Failed
}

// HasFailures reports whether any scripts failed aggregation.
func (s AggregateSummary) HasFailures() bool {
	return s.Failed > 0
}

// Aggregate reads every JSONL script under transcriptsDir/script, in lexical
// filename order, and builds one CaseRecord per script with client and
// category derived from the filename. In strict mode the first bad script
// aborts the run; otherwise bad scripts are reported to w and skipped.
func Aggregate(transcriptsDir string, strict bool, w io.Writer) (types.DiscussionSet, AggregateSummary, error) {
	dir := filepath.Join(transcriptsDir, scriptDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, AggregateSummary{}, fmt.Errorf("reading script directory %s: %w", dir, err)
	}

	var (
		set     types.DiscussionSet
		summary AggregateSummary
	)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}

		stem := strings.TrimSuffix(entry.Name(), ".jsonl")
		record, err := aggregateScript(filepath.Join(dir, entry.Name()), stem)
		if err != nil {
			if strict {
				return nil, summary, fmt.Errorf("aggregating %s: %w", stem, err)
			}
			fmt.Fprintf(w, "failed:  %s (%v)\n", stem, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "aggregated: %s (%d turns)\n", stem, len(record.Conversation))
		summary.Aggregated++
		set = append(set, record)
	}

	fmt.Fprintf(w, "\nAggregate summary: %d aggregated, %d failed (total: %d)\n",
		summary.Aggregated, summary.Failed, summary.Total())

	return set, summary, nil
}

// aggregateScript builds the CaseRecord for a single script file.
func aggregateScript(path, stem string) (types.CaseRecord, error) {
	client, category, err := types.ParseCaseName(stem)
	if err != nil {
		return types.CaseRecord{}, err
	}

	turns, err := readScript(path)
	if err != nil {
		return types.CaseRecord{}, err
	}

	return types.CaseRecord{
		ClientName:   client,
		Category:     category,
		Conversation: turns,
	}, nil
}

// readScript parses a JSONL script: one JSON turn object per line. Blank
// lines are tolerated.
func readScript(path string) ([]types.Turn, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	turns := []types.Turn{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var turn types.Turn
		if err := json.Unmarshal([]byte(text), &turn); err != nil {
			return nil, fmt.Errorf("script line %d: %w", line, err)
		}
		turns = append(turns, turn)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}

	return turns, nil
}

// WriteDiscussions writes the discussion set to datasetDir/discussions.json
// as pretty-printed JSON.
func WriteDiscussions(set types.DiscussionSet, datasetDir string) error {
	if err := os.MkdirAll(datasetDir, 0o755); err != nil {
		return fmt.Errorf("creating dataset directory: %w", err)
	}
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling discussions: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(filepath.Join(datasetDir, discussionsFile), data, 0o644)
}
