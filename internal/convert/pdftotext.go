// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/cutoff-engine/internal/container"
)

// DefaultPdftotextImage is a poppler-utils image providing pdftotext.
const DefaultPdftotextImage = "minidocks/poppler:latest"

// pdftotextArgs reads the PDF from stdin and writes layout-preserving text
// to stdout.
var pdftotextArgs = []string{"pdftotext", "-layout", "-enc", "UTF-8", "-", "-"}

// PdftotextConverter converts PDFs by piping them through pdftotext in a
// container.
type PdftotextConverter struct {
	runtime container.Runtime
	image   string
}

// NewPdftotextConverter creates a converter running image through rt. An
// empty image selects DefaultPdftotextImage. The image must exist locally.
func NewPdftotextConverter(rt container.Runtime, image string) (*PdftotextConverter, error) {
	if image == "" {
		image = DefaultPdftotextImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &PdftotextConverter{runtime: rt, image: image}, nil
}

// Convert pipes the PDF at pdfPath through pdftotext and returns the text.
func (p *PdftotextConverter) Convert(ctx context.Context, pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := p.runtime.Run(ctx, p.image, pdftotextArgs, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with pdftotext: %w", pdfPath, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("pdftotext produced empty output for %s", pdfPath)
	}

	// pdftotext separates pages with form feeds.
	return string(bytes.ReplaceAll(out.Bytes(), []byte{'\f'}, []byte{'\n'})), nil
}
