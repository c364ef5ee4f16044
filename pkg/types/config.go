package types

// ConvertConfig holds settings for the conversion stage.
// Per prd002-conversion R5.1-R5.3.
type ConvertConfig struct {
	// TranscriptsDir is the base directory for transcripts
	// (contains raw/, script/, metadata/).
	TranscriptsDir string `json:"transcripts_dir" yaml:"transcripts_dir"`

	// Force reconverts documents whose script file already exists.
	Force bool `json:"force" yaml:"force"`
}

// DatasetConfig holds settings for the dataset stage.
// Per prd003-dataset R1.2, R4.3.
type DatasetConfig struct {
	// DatasetDir is the base directory for dataset output (contains index/).
	DatasetDir string `json:"dataset_dir" yaml:"dataset_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Strict aborts an aggregation run on the first document failure instead
	// of skipping it and reporting a summary.
	Strict bool `json:"strict" yaml:"strict"`
}

// PipelineConfig groups all stage configurations for the pipeline.
// It mirrors the flat key layout of transcript-engine.yaml.
type PipelineConfig struct {
	ConvertConfig `yaml:",inline"`
	DatasetConfig `yaml:",inline"`

	// RoleMapPath is the default role-map file applied when a command is not
	// given an explicit one.
	RoleMapPath string `json:"rolemap" yaml:"rolemap"`

	// Roles is an inline role map, overridden by any file-loaded map.
	Roles RoleMap `json:"roles" yaml:"roles"`
}
