// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LogConfig holds settings for diagnostic logging.
type LogConfig struct {
	// Level is the minimum level logged: trace, debug, info, warn, error.
	Level string `json:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`

	// Format selects the log encoding: console or json.
	Format string `json:"format" yaml:"format" validate:"omitempty,oneof=console json"`
}

// ConversionBackend identifies the PDF-to-text tool.
type ConversionBackend string

const (
	BackendNative    ConversionBackend = "native"
	BackendPdftotext ConversionBackend = "pdftotext"
)

// ConversionConfig holds settings for the convert stage.
type ConversionConfig struct {
	// Backend selects the conversion tool: native or pdftotext.
	Backend ConversionBackend `json:"backend" yaml:"backend" validate:"required,oneof=native pdftotext"`

	// TextDir is the directory that receives one .txt file per PDF.
	TextDir string `json:"text_dir" yaml:"text_dir" validate:"required"`

	// Runtime is the container runtime for the pdftotext backend: docker,
	// podman, or empty to detect one.
	Runtime string `json:"runtime" yaml:"runtime" validate:"omitempty,oneof=docker podman"`

	// Image overrides the pdftotext container image.
	Image string `json:"image" yaml:"image"`
}

// OutputFormat selects the parse output encoding.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ParseConfig holds settings for the parse stage.
type ParseConfig struct {
	// Output is the file the parsed colleges are written to.
	Output string `json:"output" yaml:"output" validate:"required"`

	// Format is json or yaml.
	Format OutputFormat `json:"format" yaml:"format" validate:"required,oneof=json yaml"`
}

// StoreConfig holds settings for the cutoff database.
type StoreConfig struct {
	// DBPath is the SQLite database file (e.g. "data/cutoffs.db").
	DBPath string `json:"db_path" yaml:"db_path" validate:"required"`

	// PageSize is the default number of rows per query page (default 10).
	PageSize int `json:"page_size" yaml:"page_size" validate:"gte=0,lte=100"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Log        LogConfig        `json:"log" yaml:"log"`
	Conversion ConversionConfig `json:"convert" yaml:"convert"`
	Parse      ParseConfig      `json:"parse" yaml:"parse"`
	Store      StoreConfig      `json:"store" yaml:"store"`
}
