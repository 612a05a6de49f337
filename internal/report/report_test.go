// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cutoff-engine/internal/store"
)

func results(n int) []store.CutoffResult {
	out := make([]store.CutoffResult, n)
	for i := range out {
		out[i] = store.CutoffResult{
			CollegeName:     fmt.Sprintf("Government College of Engineering %d", i),
			CourseName:      "Civil Engineering",
			CapRound:        "CAP Round I",
			Stage:           "Stage-I",
			Category:        "GOPEN",
			RequiredPercent: 91.37,
		}
	}
	return out
}

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		results []store.CutoffResult
	}{
		{name: "empty results", results: nil},
		{name: "single page", results: results(3)},
		{name: "many pages", results: results(120)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, "", tt.results))
			assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"), "output is not a PDF")
		})
	}
}

func TestRenderAddsPagesForLongTables(t *testing.T) {
	var short, long bytes.Buffer
	require.NoError(t, Render(&short, "Cutoffs", results(3)))
	require.NoError(t, Render(&long, "Cutoffs", results(120)))

	count := func(b []byte) int {
		return bytes.Count(b, []byte("/Type /Page")) - bytes.Count(b, []byte("/Type /Pages"))
	}
	assert.Equal(t, 1, count(short.Bytes()))
	assert.Greater(t, count(long.Bytes()), 1)
}

func TestTruncate(t *testing.T) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", bodySize)

	assert.Equal(t, "GOPEN", truncate(pdf, "GOPEN", 50))

	long := strings.Repeat("Engineering ", 20)
	got := truncate(pdf, long, 40)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, pdf.GetStringWidth(got), 40.0)

	assert.Equal(t, "...", truncate(pdf, "Engineering", 0.5))
}
