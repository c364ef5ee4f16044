// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements document-to-script conversion with pluggable backends.
// Implements: prd002-conversion (R1, R2, R3);
//
//	docs/ARCHITECTURE § Conversion.
package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

const (
	// scriptDir is the subdirectory under the transcripts base for JSONL scripts.
	scriptDir = "script"
	// rawDir is the subdirectory under the transcripts base for raw documents.
	rawDir = "raw"
	// metadataDir is the subdirectory under the transcripts base for script records.
	metadataDir = "metadata"
)

// Converter transforms a color-run document into speaker-attributed turns.
// The production backend runs the rtf parser; tests substitute fakes.
type Converter interface {
	// Convert reads a document at rtfPath and returns its turns in order.
	Convert(rtfPath string) ([]types.Turn, error)
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any documents failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertScript converts a single document to a JSONL script, writing the
// script and its metadata record under the transcripts directory. It returns
// the status of the conversion. If the script output already exists and
// cfg.Force is unset, it skips conversion and returns ConversionNone. The
// script file is written last, so a partial failure reconverts on rerun.
func ConvertScript(c Converter, script types.Script, cfg types.ConvertConfig, w io.Writer) types.ConversionStatus {
	outDir := filepath.Join(cfg.TranscriptsDir, scriptDir)
	base := strings.TrimSuffix(filepath.Base(script.RTFPath), filepath.Ext(script.RTFPath))
	scriptPath := filepath.Join(outDir, base+".jsonl")

	if !cfg.Force {
		if _, err := os.Stat(scriptPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
			return ConversionNone
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	turns, err := c.Convert(script.RTFPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	script.ScriptPath = scriptPath
	script.TurnCount = len(turns)
	script.ConvertedAt = time.Now().UTC()
	script.ConversionStatus = types.ConversionDone

	if err := writeMetadata(cfg.TranscriptsDir, base, script); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	if err := writeScript(scriptPath, turns); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	return types.ConversionDone
}

// ConvertBatch processes a list of documents through the converter, printing
// per-file status to w and returning a summary.
func ConvertBatch(c Converter, scripts []types.Script, cfg types.ConvertConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, s := range scripts {
		status := ConvertScript(c, s, cfg, w)
		switch status {
		case types.ConversionDone:
			result.Converted++
		case ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// ConvertPaths builds Script records from raw document paths and delegates to
// ConvertBatch. Each path is turned into a minimal Script with ID derived from
// the filename; client and category are filled when the filename parses as a
// case name.
func ConvertPaths(c Converter, rtfPaths []string, cfg types.ConvertConfig, w io.Writer) BatchResult {
	scripts := make([]types.Script, len(rtfPaths))
	for i, p := range rtfPaths {
		base := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		scripts[i] = types.Script{
			ID:      base,
			RTFPath: p,
		}
		if client, category, err := types.ParseCaseName(base); err == nil {
			scripts[i].Client = client
			scripts[i].Category = category
		}
	}
	return ConvertBatch(c, scripts, cfg, w)
}

// ListDocuments returns the paths of the .rtf documents directly under the
// raw subdirectory of transcriptsDir, in lexical filename order.
func ListDocuments(transcriptsDir string) ([]string, error) {
	rawPath := filepath.Join(transcriptsDir, rawDir)
	entries, err := os.ReadDir(rawPath)
	if err != nil {
		return nil, fmt.Errorf("reading documents directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".rtf" {
			continue
		}
		paths = append(paths, filepath.Join(rawPath, entry.Name()))
	}
	return paths, nil
}

// ConversionNone is a local alias for "skip" status (script already exists).
const ConversionNone = types.ConversionNone

// writeScript writes turns as JSONL: one JSON object per line, in turn order.
func writeScript(path string, turns []types.Turn) error {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	for _, turn := range turns {
		if err := enc.Encode(turn); err != nil {
			return fmt.Errorf("encoding turn: %w", err)
		}
	}
	return os.WriteFile(path, b.Bytes(), 0o644)
}

// writeMetadata records the Script under the metadata subdirectory.
func writeMetadata(transcriptsDir, base string, script types.Script) error {
	dir := filepath.Join(transcriptsDir, metadataDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(script)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, base+".yaml"), data, 0o644)
}
