// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportEntry holds a turn with case metadata for export.
type ExportEntry struct {
	CaseID  string      `json:"case_id" yaml:"case_id"`
	Seq     int         `json:"seq" yaml:"seq"`
	Role    string      `json:"role" yaml:"role"`
	Content string      `json:"content" yaml:"content"`
	Case    *ExportCase `json:"case,omitempty" yaml:"case,omitempty"`
}

// ExportCase holds the case-level fields included in each export entry.
type ExportCase struct {
	Client   string `json:"client" yaml:"client"`
	Category string `json:"category" yaml:"category"`
}

const exportLimit = 100000

// ExportYAML writes the dataset index to dataset/index/export.yaml.
// It supports the same filters as Retrieve.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.datasetDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the dataset index to dataset/index/export.json.
// It supports the same filters as Retrieve.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.datasetDir, indexDir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	opts.MaxResults = exportLimit
	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(results))
	for i, r := range results {
		entries[i] = ExportEntry{
			CaseID:  r.CaseID,
			Seq:     r.Seq,
			Role:    r.Role,
			Content: r.Content,
		}
		if r.Client != "" || r.Category != "" {
			entries[i].Case = &ExportCase{
				Client:   r.Client,
				Category: r.Category,
			}
		}
	}

	return entries, nil
}
