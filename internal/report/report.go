// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders eligibility query results as a PDF table.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/cutoff-engine/internal/store"
)

// DefaultTitle heads a report when no title is given.
const DefaultTitle = "College Cutoff Results"

const (
	margin      = 10.0
	pageHeight  = 297.0
	titleSize   = 16.0
	headerSize  = 10.0
	bodySize    = 8.0
	rowHeight   = 7.0
	cellPadding = 1.5
)

type column struct {
	title string
	width float64
	align string
	value func(store.CutoffResult) string
}

// columns span the 190mm between the A4 margins.
var columns = []column{
	{"College Name", 75, "L", func(r store.CutoffResult) string { return r.CollegeName }},
	{"Course", 60, "L", func(r store.CutoffResult) string { return r.CourseName }},
	{"Category", 25, "C", func(r store.CutoffResult) string { return r.Category }},
	{"Required %", 30, "C", func(r store.CutoffResult) string {
		return strconv.FormatFloat(r.RequiredPercent, 'f', -1, 64)
	}},
}

// Render writes an A4 PDF with title and one table row per result to w.
// The table header is repeated at the top of every page.
func Render(w io.Writer, title string, results []store.CutoffResult) error {
	if title == "" {
		title = DefaultTitle
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetTitle(title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", titleSize)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	drawHeader(pdf, tr)

	pdf.SetFont("Arial", "", bodySize)
	if len(results) == 0 {
		pdf.CellFormat(0, rowHeight, "No results", "1", 1, "C", false, 0, "")
	}
	for i, r := range results {
		if pdf.GetY()+rowHeight > pageHeight-margin {
			pdf.AddPage()
			drawHeader(pdf, tr)
			pdf.SetFont("Arial", "", bodySize)
		}
		shade := i%2 == 0
		if shade {
			pdf.SetFillColor(249, 249, 249)
		}
		for j, col := range columns {
			text := truncate(pdf, tr(col.value(r)), col.width-2*cellPadding)
			ln := 0
			if j == len(columns)-1 {
				ln = 1
			}
			pdf.CellFormat(col.width, rowHeight, text, "1", ln, col.align, shade, 0, "")
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func drawHeader(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Arial", "B", headerSize)
	pdf.SetFillColor(240, 240, 240)
	for j, col := range columns {
		ln := 0
		if j == len(columns)-1 {
			ln = 1
		}
		pdf.CellFormat(col.width, rowHeight, tr(col.title), "1", ln, col.align, true, 0, "")
	}
}

// truncate shortens s with a trailing ellipsis until it fits width at the
// current font.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	const ellipsis = "..."
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + ellipsis
		if pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ellipsis
}
