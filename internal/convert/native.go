// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/phuslu/log"
)

// NativeConverter extracts text in-process. pdfcpu validates the file and
// counts its pages, then ledongthuc/pdf decodes each page (font encodings
// and ToUnicode maps included) into rows of text.
type NativeConverter struct {
	conf *model.Configuration
}

// NewNativeConverter creates a converter with pdfcpu's default validation
// configuration.
func NewNativeConverter() *NativeConverter {
	return &NativeConverter{conf: model.NewDefaultConfiguration()}
}

// Convert reads the PDF at pdfPath and returns its text, one visual row per
// line and pages separated by a blank line.
func (n *NativeConverter) Convert(ctx context.Context, pdfPath string) (string, error) {
	pageCount, err := n.validate(pdfPath)
	if err != nil {
		return "", err
	}

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("reading PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	pages := min(pageCount, r.NumPage())
	log.Debug().Str("pdf", pdfPath).Int("pages", pages).Msg("extracting pages")

	var out []string
	for pageNr := 1; pageNr <= pages; pageNr++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(pageNr)
		if page.V.IsNull() {
			continue
		}
		lines, err := pageLines(page)
		if err != nil {
			return "", fmt.Errorf("page %d of %s: %w", pageNr, pdfPath, err)
		}
		if len(lines) > 0 {
			out = append(out, strings.Join(lines, "\n"))
		}
	}

	if len(out) == 0 {
		return "", fmt.Errorf("no text content found in %s", pdfPath)
	}
	return strings.Join(out, "\n\n"), nil
}

// validate checks the PDF structure with pdfcpu and returns its page count.
func (n *NativeConverter) validate(pdfPath string) (int, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	pdfCtx, err := api.ReadValidateAndOptimize(f, n.conf)
	if err != nil {
		return 0, fmt.Errorf("validating PDF %s: %w", pdfPath, err)
	}
	return pdfCtx.PageCount, nil
}

// pageLines returns the page's text rows from top to bottom. Text runs on one
// row are joined left to right with single spaces.
func pageLines(page pdf.Page) ([]string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, row := range rows {
		parts := make([]string, 0, len(row.Content))
		for _, t := range row.Content {
			parts = append(parts, t.S)
		}
		if line := collapseSpace(strings.Join(parts, " ")); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// collapseSpace trims s and folds runs of whitespace and control characters
// into single spaces.
func collapseSpace(s string) string {
	var b strings.Builder
	prevSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			if !prevSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			prevSpace = true
			continue
		}
		b.WriteRune(r)
		prevSpace = false
	}
	return strings.TrimSpace(b.String())
}
