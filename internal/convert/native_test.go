// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCutoffPDF renders pages of rows, each row a list of cells laid out
// left to right on one baseline, and returns the file path.
func writeCutoffPDF(t *testing.T, pages ...[][]string) string {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 10)
	for _, rows := range pages {
		doc.AddPage()
		for _, cells := range rows {
			for i, cell := range cells {
				ln := 0
				if i == len(cells)-1 {
					ln = 1
				}
				doc.CellFormat(60, 8, cell, "", ln, "L", false, 0, "")
			}
		}
	}
	path := filepath.Join(t.TempDir(), "cutoff.pdf")
	require.NoError(t, doc.OutputFileAndClose(path))
	return path
}

func TestNativeConverter(t *testing.T) {
	path := writeCutoffPDF(t, [][]string{
		{"1002 Government College of Engineering, Amravati (Government Autonomous)"},
		{"Choice Code : 100219110"},
		{"Course Name : Civil Engineering"},
		{"Stage", "GOPEN", "GSC"},
		{"Stage-I", "1432 (91.37%)", "9876 (72.10%)"},
	})

	text, err := NewNativeConverter().Convert(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"1002 Government College of Engineering, Amravati (Government Autonomous)",
		"Choice Code : 100219110",
		"Course Name : Civil Engineering",
		"Stage GOPEN GSC",
		"Stage-I 1432 (91.37%) 9876 (72.10%)",
	}, strings.Split(text, "\n"))
}

func TestNativeConverterSeparatesPages(t *testing.T) {
	path := writeCutoffPDF(t,
		[][]string{{"1002 College One (Government)"}},
		[][]string{{"1005 College Two (Government)"}},
	)

	text, err := NewNativeConverter().Convert(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "1002 College One (Government)\n\n1005 College Two (Government)", text)
}

func TestNativeConverterRejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))

	_, err := NewNativeConverter().Convert(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating PDF")
}

func TestNativeConverterMissingFile(t *testing.T) {
	_, err := NewNativeConverter().Convert(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening PDF")
}

func TestNativeConverterCanceled(t *testing.T) {
	path := writeCutoffPDF(t, [][]string{{"Choice Code : 100219110"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewNativeConverter().Convert(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, "a b c", collapseSpace("  a \t b\x00\x01c  "))
	assert.Equal(t, "", collapseSpace(" \n "))
}
