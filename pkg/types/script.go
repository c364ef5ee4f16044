// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the state of RTF-to-script conversion for a
// document. Per prd002-conversion R4.4.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Script holds metadata and file paths for one converted transcript.
// Per prd002-conversion R3.2: source path, script path, client, category,
// turn count, and conversion status.
type Script struct {
	// ID is the source filename stem (e.g. "meganDenial").
	ID string `json:"id" yaml:"id"`

	// RTFPath is the local filesystem path to the source document.
	RTFPath string `json:"rtf_path" yaml:"rtf_path"`

	// ScriptPath is the local filesystem path to the converted JSONL script.
	ScriptPath string `json:"script_path" yaml:"script_path"`

	// Client is the client name derived from the filename.
	Client string `json:"client" yaml:"client"`

	// Category is the discussion category derived from the filename.
	Category string `json:"category" yaml:"category"`

	// TurnCount is the number of turns in the converted script.
	TurnCount int `json:"turn_count" yaml:"turn_count"`

	// ConvertedAt is the time of the last successful conversion.
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`

	// ConversionStatus tracks whether the document has been converted.
	ConversionStatus ConversionStatus `json:"conversion_status" yaml:"conversion_status"`
}
