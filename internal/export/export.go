// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes parsed colleges to JSON or YAML files and reads the
// files back for seeding the cutoff database.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cutoff-engine/pkg/types"
)

// DefaultFile is the output file name used when none is configured.
const DefaultFile = "cutoff_data.json"

// WriteJSON encodes colleges as indented JSON. Non-ASCII and HTML
// characters are written as-is.
func WriteJSON(w io.Writer, colleges []types.College) error {
	if colleges == nil {
		colleges = []types.College{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(colleges); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// WriteYAML encodes colleges as YAML.
func WriteYAML(w io.Writer, colleges []types.College) error {
	if colleges == nil {
		colleges = []types.College{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(colleges); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// Write encodes colleges in the given format.
func Write(w io.Writer, format types.OutputFormat, colleges []types.College) error {
	switch format {
	case types.FormatJSON, "":
		return WriteJSON(w, colleges)
	case types.FormatYAML:
		return WriteYAML(w, colleges)
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
}

// SaveFile writes colleges to path, creating parent directories as needed.
func SaveFile(path string, format types.OutputFormat, colleges []types.College) error {
	if path == "" {
		path = DefaultFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, format, colleges); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads colleges from a file written by SaveFile. Files ending in
// .yaml or .yml are read as YAML, anything else as JSON.
func LoadFile(path string) ([]types.College, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	unmarshal := json.Unmarshal
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	}
	var colleges []types.College
	if err := unmarshal(data, &colleges); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return colleges, nil
}
