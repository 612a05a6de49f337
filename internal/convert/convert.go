// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns cutoff-list PDFs into plain text with pluggable
// backends. The text keeps one PDF text line per output line so the cutoff
// parser can scan it.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phuslu/log"
)

// textExt is the extension of converted text files.
const textExt = ".txt"

// Converter extracts plain text from a PDF. Different backends (native,
// pdftotext) implement this interface.
type Converter interface {
	// Convert reads the PDF at pdfPath and returns its text.
	Convert(ctx context.Context, pdfPath string) (string, error)
}

// Status is the outcome of converting one PDF.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Options controls where converted text is written.
type Options struct {
	// TextDir receives one <base>.txt file per PDF.
	TextDir string

	// Overwrite replaces existing text files instead of skipping them.
	Overwrite bool
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int

	// Outputs lists the text files written or already present, in input order.
	Outputs []string
}

// Total returns the total number of PDFs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any PDF failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// TextPath returns the text file a PDF converts to inside textDir.
func TextPath(textDir, pdfPath string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(textDir, base+textExt)
}

// ConvertFile converts one PDF and writes the text under opts.TextDir. An
// existing text file is left alone unless opts.Overwrite is set.
func ConvertFile(ctx context.Context, c Converter, pdfPath string, opts Options, w io.Writer) Status {
	txtPath := TextPath(opts.TextDir, pdfPath)
	base := filepath.Base(txtPath)

	if !opts.Overwrite {
		if _, err := os.Stat(txtPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
			return StatusSkipped
		}
	}

	if err := os.MkdirAll(opts.TextDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	start := time.Now()
	text, err := c.Convert(ctx, pdfPath)
	log.Debug().
		Str("pdf", pdfPath).
		Int("bytes", len(text)).
		Dur("duration", time.Since(start)).
		Err(err).
		Msg("extracted text")
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}
	if strings.TrimSpace(text) == "" {
		fmt.Fprintf(w, "failed:  %s (no text extracted)\n", base)
		return StatusFailed
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	if err := os.WriteFile(txtPath, []byte(text), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	return StatusConverted
}

// ConvertBatch converts each PDF in turn, printing per-file status to w and
// returning a summary. It stops early when ctx is canceled.
func ConvertBatch(ctx context.Context, c Converter, pdfPaths []string, opts Options, w io.Writer) (BatchResult, error) {
	var result BatchResult
	for _, p := range pdfPaths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		switch ConvertFile(ctx, c, p, opts, w) {
		case StatusConverted:
			result.Converted++
			result.Outputs = append(result.Outputs, TextPath(opts.TextDir, p))
		case StatusSkipped:
			result.Skipped++
			result.Outputs = append(result.Outputs, TextPath(opts.TextDir, p))
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}
